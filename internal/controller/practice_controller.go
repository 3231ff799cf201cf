package controller

import (
	"errors"

	"aprendo_backend/internal/practice"
	"aprendo_backend/internal/service"
	"aprendo_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type PracticeController struct {
	PracticeService *service.PracticeService
}

func NewPracticeController(practiceService *service.PracticeService) *PracticeController {
	return &PracticeController{PracticeService: practiceService}
}

// StartPracticeRequest 开启练习请求
// swagger:model StartPracticeRequest
type StartPracticeRequest struct {
	TopicID         uint `json:"topicId" binding:"required"`
	DurationMinutes int  `json:"durationMinutes"`
}

// AnswerRequest 作答请求，选项下标从 0 开始
// swagger:model AnswerRequest
type AnswerRequest struct {
	OptionIndex *int `json:"optionIndex" binding:"required"`
}

// SelectRequest 跳题请求
// swagger:model SelectRequest
type SelectRequest struct {
	ExerciseID uint `json:"exerciseId" binding:"required"`
}

// FinishRequest 结束练习请求，必须显式确认
// swagger:model FinishRequest
type FinishRequest struct {
	Confirmed bool `json:"confirmed"`
}

// Start godoc
// @Summary 开启练习会话
// @Description 按主题拉取题目并启动倒计时，同一用户重新开启会丢弃旧会话
// @Tags 练习
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body StartPracticeRequest true "主题与时长"
// @Success 200 {object} util.Response{data=service.PracticeStateView} "会话状态"
// @Failure 400 {object} util.Response "参数错误"
// @Failure 404 {object} util.Response "主题不存在或暂无题目"
// @Router /api/practice/sessions [post]
func (c *PracticeController) Start(ctx *gin.Context) {
	userID, ok := util.GetUserID(ctx)
	if !ok {
		util.Unauthorized(ctx, "未登录")
		return
	}

	var req StartPracticeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	state, err := c.PracticeService.Start(ctx.Request.Context(), userID, req.TopicID, req.DurationMinutes)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrTopicNotFound):
			util.NotFound(ctx, "主题不存在")
		case errors.Is(err, practice.ErrNoExercises):
			util.NotFound(ctx, "该主题暂无练习题")
		case errors.Is(err, util.ErrInvalidDuration):
			util.BadRequest(ctx, "练习时长不合法")
		default:
			util.InternalServerError(ctx, "开启练习失败")
		}
		return
	}
	util.Success(ctx, state)
}

// State godoc
// @Summary 当前练习状态
// @Description 返回当前题目、进度、倒计时与侧边栏的完整快照
// @Tags 练习
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=service.PracticeStateView} "会话状态"
// @Failure 404 {object} util.Response "没有进行中的会话"
// @Router /api/practice/session [get]
func (c *PracticeController) State(ctx *gin.Context) {
	userID, ok := util.GetUserID(ctx)
	if !ok {
		util.Unauthorized(ctx, "未登录")
		return
	}

	state, err := c.PracticeService.State(userID)
	if err != nil {
		c.handleSessionError(ctx, err)
		return
	}
	util.Success(ctx, state)
}

// Answer godoc
// @Summary 提交当前题作答
// @Description 记录所选选项，允许覆盖修改，不返回对错
// @Tags 练习
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body AnswerRequest true "选项下标"
// @Success 200 {object} util.Response{data=service.PracticeStateView} "会话状态"
// @Failure 400 {object} util.Response "选项越界"
// @Failure 409 {object} util.Response "会话已结束"
// @Router /api/practice/session/answer [post]
func (c *PracticeController) Answer(ctx *gin.Context) {
	userID, ok := util.GetUserID(ctx)
	if !ok {
		util.Unauthorized(ctx, "未登录")
		return
	}

	var req AnswerRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	state, err := c.PracticeService.Answer(userID, *req.OptionIndex)
	if err != nil {
		c.handleSessionError(ctx, err)
		return
	}
	util.Success(ctx, state)
}

// Next godoc
// @Summary 下一题
// @Tags 练习
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=service.PracticeStateView} "会话状态"
// @Failure 404 {object} util.Response "没有进行中的会话"
// @Router /api/practice/session/next [post]
func (c *PracticeController) Next(ctx *gin.Context) {
	userID, ok := util.GetUserID(ctx)
	if !ok {
		util.Unauthorized(ctx, "未登录")
		return
	}

	state, err := c.PracticeService.Next(userID)
	if err != nil {
		c.handleSessionError(ctx, err)
		return
	}
	util.Success(ctx, state)
}

// Previous godoc
// @Summary 上一题
// @Tags 练习
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=service.PracticeStateView} "会话状态"
// @Failure 404 {object} util.Response "没有进行中的会话"
// @Router /api/practice/session/previous [post]
func (c *PracticeController) Previous(ctx *gin.Context) {
	userID, ok := util.GetUserID(ctx)
	if !ok {
		util.Unauthorized(ctx, "未登录")
		return
	}

	state, err := c.PracticeService.Previous(userID)
	if err != nil {
		c.handleSessionError(ctx, err)
		return
	}
	util.Success(ctx, state)
}

// Select godoc
// @Summary 跳转到指定题目
// @Tags 练习
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body SelectRequest true "题目 ID"
// @Success 200 {object} util.Response{data=service.PracticeStateView} "会话状态"
// @Failure 400 {object} util.Response "题目不在本次练习中"
// @Router /api/practice/session/select [post]
func (c *PracticeController) Select(ctx *gin.Context) {
	userID, ok := util.GetUserID(ctx)
	if !ok {
		util.Unauthorized(ctx, "未登录")
		return
	}

	var req SelectRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	state, err := c.PracticeService.Select(userID, req.ExerciseID)
	if err != nil {
		c.handleSessionError(ctx, err)
		return
	}
	util.Success(ctx, state)
}

// Finish godoc
// @Summary 结束练习并结算
// @Description 需要 confirmed=true 显式确认；计时归零的自动结算无需确认。
// @Description 成绩落库失败不影响结果返回，仅在消息中提示。
// @Tags 练习
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body FinishRequest true "确认标记"
// @Success 200 {object} util.Response{data=practice.Result} "成绩单；未确认时返回会话状态"
// @Failure 404 {object} util.Response "没有进行中的会话"
// @Router /api/practice/session/finish [post]
func (c *PracticeController) Finish(ctx *gin.Context) {
	userID, ok := util.GetUserID(ctx)
	if !ok {
		util.Unauthorized(ctx, "未登录")
		return
	}

	var req FinishRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	// 未确认即取消结束，会话保持进行中
	if !req.Confirmed {
		state, err := c.PracticeService.State(userID)
		if err != nil {
			c.handleSessionError(ctx, err)
			return
		}
		util.SuccessWithMessage(ctx, "已取消，练习继续", state)
		return
	}

	res, err := c.PracticeService.Finish(ctx.Request.Context(), userID)
	if err != nil && res == nil {
		c.handleSessionError(ctx, err)
		return
	}
	if err != nil {
		// 结果有效但落库失败
		util.SuccessWithMessage(ctx, "成绩保存失败，本次结果仅供查看", res)
		return
	}
	util.Success(ctx, res)
}

// Result godoc
// @Summary 查看成绩单
// @Tags 练习
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=practice.Result} "成绩单"
// @Failure 404 {object} util.Response "练习尚未结束"
// @Router /api/practice/result [get]
func (c *PracticeController) Result(ctx *gin.Context) {
	userID, ok := util.GetUserID(ctx)
	if !ok {
		util.Unauthorized(ctx, "未登录")
		return
	}

	res, err := c.PracticeService.Result(userID)
	if err != nil {
		if errors.Is(err, service.ErrResultNotReady) {
			util.NotFound(ctx, "练习尚未结束")
			return
		}
		c.handleSessionError(ctx, err)
		return
	}
	util.Success(ctx, res)
}

// Discard godoc
// @Summary 放弃当前练习
// @Description 丢弃会话且不计成绩
// @Tags 练习
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response "已放弃"
// @Router /api/practice/session [delete]
func (c *PracticeController) Discard(ctx *gin.Context) {
	userID, ok := util.GetUserID(ctx)
	if !ok {
		util.Unauthorized(ctx, "未登录")
		return
	}

	c.PracticeService.Discard(userID)
	util.SuccessWithMessage(ctx, "已放弃本次练习", nil)
}

// History godoc
// @Summary 历史成绩
// @Tags 练习
// @Produce  json
// @Security ApiKeyAuth
// @Param   limit query int false "返回条数，默认 20"
// @Success 200 {object} util.Response{data=[]service.AttemptView} "历史成绩"
// @Router /api/practice/attempts [get]
func (c *PracticeController) History(ctx *gin.Context) {
	userID, ok := util.GetUserID(ctx)
	if !ok {
		util.Unauthorized(ctx, "未登录")
		return
	}

	limit := 20
	if raw := ctx.Query("limit"); raw != "" {
		if v, err := util.ParseUint(raw); err == nil && v > 0 {
			limit = int(v)
		}
	}

	attempts, err := c.PracticeService.History(userID, limit)
	if err != nil {
		util.InternalServerError(ctx, "查询历史成绩失败")
		return
	}
	util.Success(ctx, attempts)
}

// handleSessionError 会话类错误到 HTTP 状态码的统一映射
func (c *PracticeController) handleSessionError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, practice.ErrNoActiveSession):
		util.NotFound(ctx, "没有进行中的练习会话")
	case errors.Is(err, practice.ErrSessionFinished):
		util.Conflict(ctx, "练习已结束")
	case errors.Is(err, practice.ErrInvalidOption):
		util.BadRequest(ctx, "选项越界")
	case errors.Is(err, practice.ErrExerciseMissing):
		util.BadRequest(ctx, "题目不在本次练习中")
	default:
		util.InternalServerError(ctx, "练习操作失败")
	}
}
