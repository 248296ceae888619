package handler

import (
	"strings"

	"teamtrack-api/internal/application/story"
	"teamtrack-api/internal/interfaces/http/dto"
	"teamtrack-api/pkg/errors"
	"teamtrack-api/pkg/logger"

	"github.com/gin-gonic/gin"
)

// StoryHandler AI 用户故事处理器
type StoryHandler struct {
	generator *story.Generator
	gateway   *story.Gateway
}

// NewStoryHandler 创建 AI 用户故事处理器
func NewStoryHandler(generator *story.Generator, gateway *story.Gateway) *StoryHandler {
	return &StoryHandler{
		generator: generator,
		gateway:   gateway,
	}
}

// Generate 生成用户故事
// @Summary 根据项目描述生成用户故事
// @Tags AI
// @Accept json
// @Produce json
// @Param body body dto.GenerateStoriesRequest true "生成请求"
// @Success 200 {object} dto.Response[dto.GenerateStoriesResponse]
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /v1/ai/user-stories [post]
func (h *StoryHandler) Generate(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.GenerateStoriesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c, "Project description is required")
		return
	}

	if strings.TrimSpace(req.ProjectDescription) == "" {
		dto.BadRequest(c, "Project description is required")
		return
	}

	stories, err := h.generator.GenerateUserStories(ctx, req.ProjectDescription)
	if err != nil {
		if errors.IsCode(err, errors.CodeInvalidParam) {
			dto.BadRequest(c, "Project description is required")
			return
		}
		appErr := errors.AsAppError(err)
		logger.Error(ctx, "user story generation failed", err, "project_id", req.ProjectID)
		dto.ErrorWithDetail(c, 500, "Failed to generate user stories", &dto.ErrorDetail{
			ErrorCode: string(appErr.Code),
			Details:   appErr.Message,
		})
		return
	}

	// 生成成功后尽力落库；未带 project_id 时直接跳过
	if err := h.gateway.SaveAll(ctx, stories, req.ProjectID, c.GetString("user_id")); err != nil {
		logger.Error(ctx, "failed to persist user stories", err, "project_id", req.ProjectID)
		appErr := errors.AsAppError(err)
		dto.ErrorWithDetail(c, 500, "Failed to generate user stories", &dto.ErrorDetail{
			ErrorCode: string(appErr.Code),
			Details:   appErr.Message,
		})
		return
	}

	dto.SuccessWithMessage(c, "User stories generated successfully", &dto.GenerateStoriesResponse{
		UserStories: stories,
		Count:       len(stories),
	})
}

// ListByProject 获取项目下已保存的用户故事
// @Summary 获取项目的用户故事列表
// @Tags AI
// @Produce json
// @Success 200 {object} dto.Response[dto.StoryListResponse]
// @Router /v1/ai/user-stories/{projectId} [get]
func (h *StoryHandler) ListByProject(c *gin.Context) {
	ctx := c.Request.Context()

	projectID := c.Param("projectId")
	stories, err := h.gateway.ListByProject(ctx, projectID)
	if err != nil {
		logger.Error(ctx, "failed to list user stories", err, "project_id", projectID)
		dto.InternalError(c, "failed to list user stories")
		return
	}

	out := dto.ToUserStoryDTOs(stories)
	dto.Success(c, &dto.StoryListResponse{
		UserStories: out,
		Count:       len(out),
	})
}
