package controller

import (
	"errors"

	"aprendo_backend/internal/service"
	"aprendo_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ContentController struct {
	ContentService *service.ContentService
}

func NewContentController(contentService *service.ContentService) *ContentController {
	return &ContentController{ContentService: contentService}
}

// ListCourses godoc
// @Summary 课程列表
// @Tags 课程内容
// @Produce  json
// @Success 200 {object} util.Response{data=[]service.CourseSummary} "课程列表"
// @Router /api/courses [get]
func (c *ContentController) ListCourses(ctx *gin.Context) {
	courses, err := c.ContentService.ListCourses(ctx.Request.Context())
	if err != nil {
		util.InternalServerError(ctx, "查询课程失败")
		return
	}
	util.Success(ctx, courses)
}

// GetCourse godoc
// @Summary 课程详情（含主题列表）
// @Tags 课程内容
// @Produce  json
// @Param   id path int true "课程 ID"
// @Success 200 {object} util.Response{data=model.Course} "课程详情"
// @Failure 404 {object} util.Response "课程不存在"
// @Router /api/courses/{id} [get]
func (c *ContentController) GetCourse(ctx *gin.Context) {
	id, err := util.ParseUint(ctx.Param("id"))
	if err != nil {
		util.BadRequest(ctx, "课程 ID 非法")
		return
	}

	course, err := c.ContentService.GetCourse(ctx.Request.Context(), id)
	if err != nil {
		if errors.Is(err, util.ErrCourseNotFound) {
			util.NotFound(ctx, "课程不存在")
			return
		}
		util.InternalServerError(ctx, "查询课程失败")
		return
	}
	util.Success(ctx, course)
}

// ListTopics godoc
// @Summary 课程的主题列表
// @Tags 课程内容
// @Produce  json
// @Param   id path int true "课程 ID"
// @Success 200 {object} util.Response{data=[]model.Topic} "主题列表"
// @Failure 404 {object} util.Response "课程不存在"
// @Router /api/courses/{id}/topics [get]
func (c *ContentController) ListTopics(ctx *gin.Context) {
	id, err := util.ParseUint(ctx.Param("id"))
	if err != nil {
		util.BadRequest(ctx, "课程 ID 非法")
		return
	}

	topics, err := c.ContentService.ListTopics(id)
	if err != nil {
		if errors.Is(err, util.ErrCourseNotFound) {
			util.NotFound(ctx, "课程不存在")
			return
		}
		util.InternalServerError(ctx, "查询主题失败")
		return
	}
	util.Success(ctx, topics)
}

// GetTheories godoc
// @Summary 主题的理论内容
// @Tags 课程内容
// @Produce  json
// @Param   id path int true "主题 ID"
// @Success 200 {object} util.Response{data=[]model.Theory} "理论内容"
// @Failure 404 {object} util.Response "主题不存在"
// @Router /api/topics/{id}/theories [get]
func (c *ContentController) GetTheories(ctx *gin.Context) {
	id, err := util.ParseUint(ctx.Param("id"))
	if err != nil {
		util.BadRequest(ctx, "主题 ID 非法")
		return
	}

	theories, err := c.ContentService.GetTheories(id)
	if err != nil {
		if errors.Is(err, util.ErrTopicNotFound) {
			util.NotFound(ctx, "主题不存在")
			return
		}
		util.InternalServerError(ctx, "查询理论内容失败")
		return
	}
	util.Success(ctx, theories)
}

// UploadTheoryMedia godoc
// @Summary 上传理论配图或视频
// @Tags 课程内容
// @Accept  multipart/form-data
// @Produce  json
// @Security ApiKeyAuth
// @Param   file formData file true "媒体文件"
// @Success 200 {object} util.Response{data=object} "文件地址"
// @Failure 400 {object} util.Response "文件缺失"
// @Router /api/theories/media [post]
func (c *ContentController) UploadTheoryMedia(ctx *gin.Context) {
	file, err := ctx.FormFile("file")
	if err != nil {
		util.BadRequest(ctx, "缺少上传文件")
		return
	}

	url, err := c.ContentService.UploadTheoryMedia(ctx.Request.Context(), file)
	if err != nil {
		util.InternalServerError(ctx, "上传失败")
		return
	}
	util.Success(ctx, gin.H{"url": url})
}
