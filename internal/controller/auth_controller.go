package controller

import (
	"errors"

	"aprendo_backend/internal/service"
	"aprendo_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type AuthController struct {
	AuthService *service.AuthService
}

func NewAuthController(authService *service.AuthService) *AuthController {
	return &AuthController{AuthService: authService}
}

// Register godoc
// @Summary 注册新用户
// @Description 使用邮箱和密码注册学员账号
// @Tags 认证
// @Accept  json
// @Produce  json
// @Param   body body service.RegisterInput true "用户注册信息"
// @Success 201 {object} util.Response{data=service.AuthOutput} "创建成功"
// @Failure 400 {object} util.Response "请求参数错误"
// @Failure 409 {object} util.Response "邮箱已被注册"
// @Router /api/auth/register [post]
func (c *AuthController) Register(ctx *gin.Context) {
	var input service.RegisterInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	out, err := c.AuthService.Register(input)
	if err != nil {
		if errors.Is(err, util.ErrUserAlreadyExists) {
			util.Conflict(ctx, "该邮箱已被注册")
			return
		}
		util.InternalServerError(ctx, "注册失败")
		return
	}
	util.Created(ctx, out)
}

// Login godoc
// @Summary 用户登录
// @Description 校验凭据并返回访问令牌
// @Tags 认证
// @Accept  json
// @Produce  json
// @Param   body body service.LoginInput true "登录凭据"
// @Success 200 {object} util.Response{data=service.AuthOutput} "登录成功"
// @Failure 400 {object} util.Response "请求参数错误"
// @Failure 401 {object} util.Response "用户名或密码错误"
// @Router /api/auth/login [post]
func (c *AuthController) Login(ctx *gin.Context) {
	var input service.LoginInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	out, err := c.AuthService.Login(input)
	if err != nil {
		if errors.Is(err, util.ErrInvalidCredentials) {
			util.Unauthorized(ctx, "用户名或密码错误")
			return
		}
		if errors.Is(err, util.ErrPermissionDenied) {
			util.Forbidden(ctx, "账号已被禁用")
			return
		}
		util.InternalServerError(ctx, "登录失败")
		return
	}
	util.Success(ctx, out)
}

// Profile godoc
// @Summary 当前用户信息
// @Tags 认证
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=model.User} "用户信息"
// @Failure 401 {object} util.Response "未登录"
// @Router /api/auth/profile [get]
func (c *AuthController) Profile(ctx *gin.Context) {
	userID, ok := util.GetUserID(ctx)
	if !ok {
		util.Unauthorized(ctx, "未登录")
		return
	}

	user, err := c.AuthService.Profile(userID)
	if err != nil {
		if errors.Is(err, util.ErrUserNotFound) {
			util.NotFound(ctx, "用户不存在")
			return
		}
		util.InternalServerError(ctx, "查询失败")
		return
	}
	util.Success(ctx, user)
}
