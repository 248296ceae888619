// Package repository 定义数据访问层接口
package repository

import (
	"context"

	"teamtrack-api/internal/domain/entity"
)

// TaskFilter 任务列表过滤条件
type TaskFilter struct {
	ProjectID  string
	Status     entity.TaskStatus
	AssignedTo string
}

// TaskRepository 任务仓储接口
type TaskRepository interface {
	Create(ctx context.Context, task *entity.Task) error
	GetByID(ctx context.Context, id string) (*entity.Task, error)
	Update(ctx context.Context, task *entity.Task) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter *TaskFilter) ([]*entity.Task, error)
	GetStats(ctx context.Context) (*entity.TaskStats, error)
}
