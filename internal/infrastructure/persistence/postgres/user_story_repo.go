package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"teamtrack-api/internal/domain/entity"
	"teamtrack-api/internal/domain/repository"
)

// UserStoryRepository 用户故事仓储实现
type UserStoryRepository struct {
	client *Client
}

// NewUserStoryRepository 创建用户故事仓储
func NewUserStoryRepository(client *Client) repository.UserStoryRepository {
	return &UserStoryRepository{client: client}
}

// Insert 保存单条用户故事
func (r *UserStoryRepository) Insert(ctx context.Context, story *entity.UserStory) error {
	ctx, span := tracer.Start(ctx, "postgres.UserStoryRepository.Insert")
	defer span.End()

	q := getQuerier(ctx, r.client.sqlDB)

	query := `
		INSERT INTO user_stories (id, story, project_id, generated_by, created_at)
		VALUES (gen_random_uuid(), $1, $2, $3, NOW())
		RETURNING id, created_at
	`

	err := q.QueryRowContext(ctx, query,
		story.Story, story.ProjectID, nullString(story.GeneratedBy),
	).Scan(&story.ID, &story.CreatedAt)

	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to insert user story: %w", err)
	}

	return nil
}

// ListByProject 获取项目下的用户故事，按生成时间倒序
func (r *UserStoryRepository) ListByProject(ctx context.Context, projectID string) ([]*entity.UserStory, error) {
	ctx, span := tracer.Start(ctx, "postgres.UserStoryRepository.ListByProject")
	defer span.End()

	q := getQuerier(ctx, r.client.sqlDB)

	query := `
		SELECT s.id, s.story, s.project_id, s.generated_by, s.created_at,
			COALESCE(u.username, '') AS generated_by_name
		FROM user_stories s
		LEFT JOIN users u ON s.generated_by = u.id
		WHERE s.project_id = $1
		ORDER BY s.created_at DESC
	`

	rows, err := q.QueryContext(ctx, query, projectID)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to list user stories: %w", err)
	}
	defer rows.Close()

	var stories []*entity.UserStory
	for rows.Next() {
		var s entity.UserStory
		var generatedBy sql.NullString
		if err := rows.Scan(&s.ID, &s.Story, &s.ProjectID, &generatedBy, &s.CreatedAt, &s.GeneratedByName); err != nil {
			span.RecordError(err)
			return nil, fmt.Errorf("failed to scan user story: %w", err)
		}
		s.GeneratedBy = generatedBy.String
		stories = append(stories, &s)
	}

	if err := rows.Err(); err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to iterate user stories: %w", err)
	}

	return stories, nil
}
