package story

import (
	"context"

	"golang.org/x/sync/errgroup"

	"teamtrack-api/internal/domain/entity"
	"teamtrack-api/internal/domain/repository"
	"teamtrack-api/pkg/errors"
	"teamtrack-api/pkg/logger"
	"teamtrack-api/pkg/metrics"
)

// Gateway 用户故事持久化网关
type Gateway struct {
	stories repository.UserStoryRepository
}

// NewGateway 创建用户故事持久化网关
func NewGateway(stories repository.UserStoryRepository) *Gateway {
	return &Gateway{stories: stories}
}

// SaveAll 将一批故事并发写入指定项目。
// 每条故事一次独立插入，不共享事务：某条失败不影响其余条目，
// 已提交的插入不会回滚，调用方拿到的是第一个失败。
// projectID 为空时不做任何持久化，直接返回 nil。
func (g *Gateway) SaveAll(ctx context.Context, stories []string, projectID, generatedBy string) error {
	if projectID == "" || len(stories) == 0 {
		return nil
	}

	var eg errgroup.Group
	for _, text := range stories {
		eg.Go(func() error {
			err := g.stories.Insert(ctx, &entity.UserStory{
				Story:       text,
				ProjectID:   projectID,
				GeneratedBy: generatedBy,
			})
			if err != nil {
				metrics.StoriesPersisted.WithLabelValues("error").Inc()
				logger.Error(ctx, "failed to insert user story", err, "project_id", projectID)
				return errors.Wrap(err, errors.CodeDatabaseError, "failed to save user story")
			}
			metrics.StoriesPersisted.WithLabelValues("success").Inc()
			return nil
		})
	}
	return eg.Wait()
}

// ListByProject 获取项目的全部用户故事，按创建时间倒序。
// 项目没有故事时返回空切片，不是错误。
func (g *Gateway) ListByProject(ctx context.Context, projectID string) ([]*entity.UserStory, error) {
	stories, err := g.stories.ListByProject(ctx, projectID)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeDatabaseError, "failed to list user stories")
	}
	if stories == nil {
		stories = []*entity.UserStory{}
	}
	return stories, nil
}
