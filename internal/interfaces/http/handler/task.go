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

// TaskHandler 任务管理处理器
type TaskHandler struct {
	taskRepo repository.TaskRepository
	cache    *redis.Cache
}

// NewTaskHandler 创建任务管理处理器
func NewTaskHandler(taskRepo repository.TaskRepository, cache *redis.Cache) *TaskHandler {
	return &TaskHandler{
		taskRepo: taskRepo,
		cache:    cache,
	}
}

// Create 创建任务
func (h *TaskHandler) Create(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	task := entity.NewTask(req.Title, req.ProjectID, c.GetString("user_id"))
	task.Description = req.Description
	task.AssignedTo = req.AssignedTo
	if req.Priority != "" {
		task.Priority = entity.TaskPriority(req.Priority)
	}
	if req.Status != "" {
		task.Status = entity.TaskStatus(req.Status)
	}
	if d, ok := parseDeadline(req.Deadline); ok {
		task.Deadline = d
	}

	if err := h.taskRepo.Create(ctx, task); err != nil {
		logger.Error(ctx, "failed to create task", err)
		dto.InternalError(c, "failed to create task")
		return
	}

	h.invalidateStats(ctx)
	dto.Created(c, task)
}

// List 按过滤条件获取任务列表
func (h *TaskHandler) List(c *gin.Context) {
	ctx := c.Request.Context()

	filter := &repository.TaskFilter{
		ProjectID:  c.Query("project_id"),
		AssignedTo: c.Query("assigned_to"),
	}
	if status := c.Query("status"); status != "" {
		s := entity.TaskStatus(status)
		if !s.IsValid() {
			dto.BadRequest(c, "invalid status filter")
			return
		}
		filter.Status = s
	}

	tasks, err := h.taskRepo.List(ctx, filter)
	if err != nil {
		logger.Error(ctx, "failed to list tasks", err)
		dto.InternalError(c, "failed to list tasks")
		return
	}
	if tasks == nil {
		tasks = []*entity.Task{}
	}

	dto.Success(c, tasks)
}

// Get 获取单个任务
func (h *TaskHandler) Get(c *gin.Context) {
	ctx := c.Request.Context()

	task, err := h.taskRepo.GetByID(ctx, c.Param("id"))
	if err != nil {
		logger.Error(ctx, "failed to get task", err)
		dto.InternalError(c, "failed to get task")
		return
	}
	if task == nil {
		dto.NotFound(c, "task not found")
		return
	}

	dto.Success(c, task)
}

// Update 更新任务
func (h *TaskHandler) Update(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	task, err := h.taskRepo.GetByID(ctx, c.Param("id"))
	if err != nil {
		logger.Error(ctx, "failed to get task", err)
		dto.InternalError(c, "failed to update task")
		return
	}
	if task == nil {
		dto.NotFound(c, "task not found")
		return
	}

	if req.Title != "" {
		task.Title = req.Title
	}
	if req.Description != "" {
		task.Description = req.Description
	}
	if req.AssignedTo != "" {
		task.AssignedTo = req.AssignedTo
	}
	if req.Priority != "" {
		task.Priority = entity.TaskPriority(req.Priority)
	}
	if req.Status != "" {
		task.Status = entity.TaskStatus(req.Status)
	}
	if d, ok := parseDeadline(req.Deadline); ok {
		task.Deadline = d
	}

	if err := h.taskRepo.Update(ctx, task); err != nil {
		logger.Error(ctx, "failed to update task", err)
		dto.InternalError(c, "failed to update task")
		return
	}

	h.invalidateStats(ctx)
	dto.Success(c, task)
}

// Delete 删除任务
func (h *TaskHandler) Delete(c *gin.Context) {
	ctx := c.Request.Context()

	task, err := h.taskRepo.GetByID(ctx, c.Param("id"))
	if err != nil {
		logger.Error(ctx, "failed to get task", err)
		dto.InternalError(c, "failed to delete task")
		return
	}
	if task == nil {
		dto.NotFound(c, "task not found")
		return
	}

	if err := h.taskRepo.Delete(ctx, c.Param("id")); err != nil {
		logger.Error(ctx, "failed to delete task", err)
		dto.InternalError(c, "failed to delete task")
		return
	}

	h.invalidateStats(ctx)
	dto.NoContent(c)
}

// Stats 获取任务统计（带缓存）
func (h *TaskHandler) Stats(c *gin.Context) {
	ctx := c.Request.Context()

	data, err := h.cache.GetOrLoadSafe(ctx, "stats:tasks", 30*time.Second, func() (interface{}, error) {
		return h.taskRepo.GetStats(ctx)
	})
	if err != nil {
		logger.Error(ctx, "failed to get task stats", err)
		dto.InternalError(c, "failed to get task stats")
		return
	}

	c.Data(200, "application/json", wrapCachedData(c, data))
}

// invalidateStats 任务变更后使统计缓存失效
func (h *TaskHandler) invalidateStats(ctx context.Context) {
	if err := h.cache.InvalidateStats(ctx); err != nil {
		logger.Warn(ctx, "failed to invalidate stats cache", "error", err)
	}
}

// parseDeadline 解析截止时间，兼容日期和 RFC3339 两种格式
func parseDeadline(s string) (*time.Time, bool) {
	if s == "" {
		return nil, false
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return &t, true
	}
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return &t, true
	}
	return nil, false
}
