package controller

import (
	"aprendo_backend/internal/service"
	"aprendo_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ProgressController struct {
	ProgressService *service.ProgressService
}

func NewProgressController(progressService *service.ProgressService) *ProgressController {
	return &ProgressController{ProgressService: progressService}
}

// Overview godoc
// @Summary 学习进度总览
// @Description 近一年按月汇总的练习时长与成绩，以及已通过主题数和徽章
// @Tags 进度
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=service.ProgressOverview} "进度总览"
// @Router /api/progress [get]
func (c *ProgressController) Overview(ctx *gin.Context) {
	userID, ok := util.GetUserID(ctx)
	if !ok {
		util.Unauthorized(ctx, "未登录")
		return
	}

	overview, err := c.ProgressService.Overview(userID)
	if err != nil {
		util.InternalServerError(ctx, "查询进度失败")
		return
	}
	util.Success(ctx, overview)
}

// Badges godoc
// @Summary 已获得的徽章
// @Tags 进度
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=[]service.BadgeView} "徽章列表"
// @Router /api/progress/badges [get]
func (c *ProgressController) Badges(ctx *gin.Context) {
	userID, ok := util.GetUserID(ctx)
	if !ok {
		util.Unauthorized(ctx, "未登录")
		return
	}

	badges, err := c.ProgressService.Badges(userID)
	if err != nil {
		util.InternalServerError(ctx, "查询徽章失败")
		return
	}
	util.Success(ctx, badges)
}
