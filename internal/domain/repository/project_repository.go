// Package repository 定义数据访问层接口
package repository

import (
	"context"

	"teamtrack-api/internal/domain/entity"
)

// ProjectRepository 项目仓储接口
type ProjectRepository interface {
	Create(ctx context.Context, project *entity.Project) error
	GetByID(ctx context.Context, id string) (*entity.Project, error)
	Update(ctx context.Context, project *entity.Project) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]*entity.Project, error)
	AddMember(ctx context.Context, member *entity.ProjectMember) error
	ListMembers(ctx context.Context, projectID string) ([]*entity.ProjectMember, error)
	GetStats(ctx context.Context) (*entity.ProjectStats, error)
}
