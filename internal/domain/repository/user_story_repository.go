// Package repository 定义数据访问层接口
package repository

import (
	"context"

	"teamtrack-api/internal/domain/entity"
)

// UserStoryRepository 用户故事仓储接口
// Insert 为独立写入：批量落库由调用方并发调度，不共享事务。
type UserStoryRepository interface {
	Insert(ctx context.Context, story *entity.UserStory) error
	ListByProject(ctx context.Context, projectID string) ([]*entity.UserStory, error)
}
