package handler

import (
	"context"
	"time"

	"teamtrack-api/internal/domain/entity"
	"teamtrack-api/internal/domain/repository"
	"teamtrack-api/internal/infrastructure/persistence/redis"
	"teamtrack-api/internal/interfaces/http/dto"
	"teamtrack-api/pkg/logger"

	"github.com/gin-gonic/gin"
)

// ProjectHandler 项目管理处理器
type ProjectHandler struct {
	projectRepo repository.ProjectRepository
	taskRepo    repository.TaskRepository
	txManager   repository.Transactor
	cache       *redis.Cache
}

// NewProjectHandler 创建项目管理处理器
func NewProjectHandler(projectRepo repository.ProjectRepository, taskRepo repository.TaskRepository, txManager repository.Transactor, cache *redis.Cache) *ProjectHandler {
	return &ProjectHandler{
		projectRepo: projectRepo,
		taskRepo:    taskRepo,
		txManager:   txManager,
		cache:       cache,
	}
}

// Create 创建项目，项目与初始成员在同一事务中写入
func (h *ProjectHandler) Create(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	project := entity.NewProject(req.Name, req.Description, c.GetString("user_id"))
	if d, ok := parseDate(req.StartDate); ok {
		project.StartDate = d
	}
	if d, ok := parseDate(req.EndDate); ok {
		project.EndDate = d
	}

	err := h.txManager.WithTransaction(ctx, func(txCtx context.Context) error {
		if err := h.projectRepo.Create(txCtx, project); err != nil {
			return err
		}
		// 创建者自动成为项目成员
		creator := &entity.ProjectMember{
			ProjectID: project.ID,
			UserID:    project.CreatedBy,
			Role:      "owner",
		}
		if err := h.projectRepo.AddMember(txCtx, creator); err != nil {
			return err
		}
		for _, memberID := range req.MemberIDs {
			if memberID == project.CreatedBy {
				continue
			}
			member := &entity.ProjectMember{
				ProjectID: project.ID,
				UserID:    memberID,
				Role:      "member",
			}
			if err := h.projectRepo.AddMember(txCtx, member); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		logger.Error(ctx, "failed to create project", err)
		dto.InternalError(c, "failed to create project")
		return
	}

	h.invalidateStats(ctx)
	dto.Created(c, project)
}

// List 获取项目列表
func (h *ProjectHandler) List(c *gin.Context) {
	ctx := c.Request.Context()

	projects, err := h.projectRepo.List(ctx)
	if err != nil {
		logger.Error(ctx, "failed to list projects", err)
		dto.InternalError(c, "failed to list projects")
		return
	}
	if projects == nil {
		projects = []*entity.Project{}
	}

	dto.Success(c, projects)
}

// Get 获取项目详情，包含成员与任务列表
func (h *ProjectHandler) Get(c *gin.Context) {
	ctx := c.Request.Context()
	id := c.Param("id")

	project, err := h.projectRepo.GetByID(ctx, id)
	if err != nil {
		logger.Error(ctx, "failed to get project", err)
		dto.InternalError(c, "failed to get project")
		return
	}
	if project == nil {
		dto.NotFound(c, "project not found")
		return
	}

	members, err := h.projectRepo.ListMembers(ctx, id)
	if err != nil {
		logger.Error(ctx, "failed to list project members", err)
		dto.InternalError(c, "failed to get project")
		return
	}
	if members == nil {
		members = []*entity.ProjectMember{}
	}

	tasks, err := h.taskRepo.List(ctx, &repository.TaskFilter{ProjectID: id})
	if err != nil {
		logger.Error(ctx, "failed to list project tasks", err)
		dto.InternalError(c, "failed to get project")
		return
	}
	if tasks == nil {
		tasks = []*entity.Task{}
	}

	dto.Success(c, &dto.ProjectDetailResponse{
		Project: project,
		Members: members,
		Tasks:   tasks,
	})
}

// Update 更新项目
func (h *ProjectHandler) Update(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.UpdateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	project, err := h.projectRepo.GetByID(ctx, c.Param("id"))
	if err != nil {
		logger.Error(ctx, "failed to get project", err)
		dto.InternalError(c, "failed to update project")
		return
	}
	if project == nil {
		dto.NotFound(c, "project not found")
		return
	}

	if req.Name != "" {
		project.Name = req.Name
	}
	if req.Description != "" {
		project.Description = req.Description
	}
	if d, ok := parseDate(req.StartDate); ok {
		project.StartDate = d
	}
	if d, ok := parseDate(req.EndDate); ok {
		project.EndDate = d
	}

	if err := h.projectRepo.Update(ctx, project); err != nil {
		logger.Error(ctx, "failed to update project", err)
		dto.InternalError(c, "failed to update project")
		return
	}

	h.invalidateStats(ctx)
	dto.Success(c, project)
}

// Delete 删除项目
func (h *ProjectHandler) Delete(c *gin.Context) {
	ctx := c.Request.Context()

	project, err := h.projectRepo.GetByID(ctx, c.Param("id"))
	if err != nil {
		logger.Error(ctx, "failed to get project", err)
		dto.InternalError(c, "failed to delete project")
		return
	}
	if project == nil {
		dto.NotFound(c, "project not found")
		return
	}

	if err := h.projectRepo.Delete(ctx, c.Param("id")); err != nil {
		logger.Error(ctx, "failed to delete project", err)
		dto.InternalError(c, "failed to delete project")
		return
	}

	h.invalidateStats(ctx)
	dto.NoContent(c)
}

// AddMember 添加项目成员
func (h *ProjectHandler) AddMember(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.AddMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	project, err := h.projectRepo.GetByID(ctx, c.Param("id"))
	if err != nil {
		logger.Error(ctx, "failed to get project", err)
		dto.InternalError(c, "failed to add member")
		return
	}
	if project == nil {
		dto.NotFound(c, "project not found")
		return
	}

	role := req.Role
	if role == "" {
		role = "member"
	}

	member := &entity.ProjectMember{
		ProjectID: project.ID,
		UserID:    req.UserID,
		Role:      role,
	}
	if err := h.projectRepo.AddMember(ctx, member); err != nil {
		logger.Error(ctx, "failed to add project member", err)
		dto.InternalError(c, "failed to add member")
		return
	}

	dto.Created(c, member)
}

// ListMembers 获取项目成员列表
func (h *ProjectHandler) ListMembers(c *gin.Context) {
	ctx := c.Request.Context()

	members, err := h.projectRepo.ListMembers(ctx, c.Param("id"))
	if err != nil {
		logger.Error(ctx, "failed to list project members", err)
		dto.InternalError(c, "failed to list members")
		return
	}
	if members == nil {
		members = []*entity.ProjectMember{}
	}

	dto.Success(c, members)
}

// Stats 获取项目统计（带缓存）
func (h *ProjectHandler) Stats(c *gin.Context) {
	ctx := c.Request.Context()

	data, err := h.cache.GetOrLoadSafe(ctx, "stats:projects", 30*time.Second, func() (interface{}, error) {
		return h.projectRepo.GetStats(ctx)
	})
	if err != nil {
		logger.Error(ctx, "failed to get project stats", err)
		dto.InternalError(c, "failed to get project stats")
		return
	}

	c.Data(200, "application/json", wrapCachedData(c, data))
}

// invalidateStats 项目变更后使统计缓存失效
func (h *ProjectHandler) invalidateStats(ctx context.Context) {
	if err := h.cache.InvalidateStats(ctx); err != nil {
		logger.Warn(ctx, "failed to invalidate stats cache", "error", err)
	}
}

// parseDate 解析 YYYY-MM-DD 格式日期
func parseDate(s string) (*time.Time, bool) {
	if s == "" {
		return nil, false
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return nil, false
	}
	return &t, true
}
