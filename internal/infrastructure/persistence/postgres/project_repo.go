package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"teamtrack-api/internal/domain/entity"
	"teamtrack-api/internal/domain/repository"
)

// ProjectRepository 项目仓储实现
type ProjectRepository struct {
	client *Client
}

// NewProjectRepository 创建项目仓储
func NewProjectRepository(client *Client) repository.ProjectRepository {
	return &ProjectRepository{client: client}
}

// Create 创建项目
func (r *ProjectRepository) Create(ctx context.Context, project *entity.Project) error {
	ctx, span := tracer.Start(ctx, "postgres.ProjectRepository.Create")
	defer span.End()

	q := getQuerier(ctx, r.client.sqlDB)

	query := `
		INSERT INTO projects (id, name, description, start_date, end_date, created_by, created_at, updated_at)
		VALUES (gen_random_uuid(), $1, $2, $3, $4, $5, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`

	var createdBy sql.NullString
	if project.CreatedBy != "" {
		createdBy = sql.NullString{String: project.CreatedBy, Valid: true}
	}

	err := q.QueryRowContext(ctx, query,
		project.Name, project.Description, project.StartDate, project.EndDate, createdBy,
	).Scan(&project.ID, &project.CreatedAt, &project.UpdatedAt)

	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to create project: %w", err)
	}

	return nil
}

// GetByID 根据 ID 获取项目
func (r *ProjectRepository) GetByID(ctx context.Context, id string) (*entity.Project, error) {
	ctx, span := tracer.Start(ctx, "postgres.ProjectRepository.GetByID")
	defer span.End()

	q := getQuerier(ctx, r.client.sqlDB)

	query := `
		SELECT p.id, p.name, p.description, p.start_date, p.end_date, p.created_by,
			p.created_at, p.updated_at,
			COALESCE(u.username, '') AS created_by_name,
			(SELECT COUNT(*) FROM tasks t WHERE t.project_id = p.id) AS task_count,
			(SELECT COUNT(*) FROM project_members pm WHERE pm.project_id = p.id) AS member_count
		FROM projects p
		LEFT JOIN users u ON p.created_by = u.id
		WHERE p.id = $1
	`

	project, err := scanProject(q.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		span.RecordError(err)
		return nil, fmt.Errorf("failed to get project: %w", err)
	}

	return project, nil
}

// Update 更新项目
func (r *ProjectRepository) Update(ctx context.Context, project *entity.Project) error {
	ctx, span := tracer.Start(ctx, "postgres.ProjectRepository.Update")
	defer span.End()

	q := getQuerier(ctx, r.client.sqlDB)

	query := `
		UPDATE projects
		SET name = $1, description = $2, start_date = $3, end_date = $4, updated_at = NOW()
		WHERE id = $5
		RETURNING updated_at
	`

	err := q.QueryRowContext(ctx, query,
		project.Name, project.Description, project.StartDate, project.EndDate, project.ID,
	).Scan(&project.UpdatedAt)

	if err != nil {
		if err == sql.ErrNoRows {
			return fmt.Errorf("project not found: %s", project.ID)
		}
		span.RecordError(err)
		return fmt.Errorf("failed to update project: %w", err)
	}

	return nil
}

// Delete 删除项目
func (r *ProjectRepository) Delete(ctx context.Context, id string) error {
	ctx, span := tracer.Start(ctx, "postgres.ProjectRepository.Delete")
	defer span.End()

	q := getQuerier(ctx, r.client.sqlDB)

	result, err := q.ExecContext(ctx, `DELETE FROM projects WHERE id = $1`, id)
	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to delete project: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("project not found: %s", id)
	}

	return nil
}

// List 获取项目列表
func (r *ProjectRepository) List(ctx context.Context) ([]*entity.Project, error) {
	ctx, span := tracer.Start(ctx, "postgres.ProjectRepository.List")
	defer span.End()

	q := getQuerier(ctx, r.client.sqlDB)

	query := `
		SELECT p.id, p.name, p.description, p.start_date, p.end_date, p.created_by,
			p.created_at, p.updated_at,
			COALESCE(u.username, '') AS created_by_name,
			(SELECT COUNT(*) FROM tasks t WHERE t.project_id = p.id) AS task_count,
			(SELECT COUNT(*) FROM project_members pm WHERE pm.project_id = p.id) AS member_count
		FROM projects p
		LEFT JOIN users u ON p.created_by = u.id
		ORDER BY p.created_at DESC
	`

	rows, err := q.QueryContext(ctx, query)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	defer rows.Close()

	var projects []*entity.Project
	for rows.Next() {
		project, err := scanProject(rows)
		if err != nil {
			span.RecordError(err)
			return nil, fmt.Errorf("failed to scan project: %w", err)
		}
		projects = append(projects, project)
	}

	if err := rows.Err(); err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to iterate projects: %w", err)
	}

	return projects, nil
}

// AddMember 添加项目成员，重复添加时覆盖角色
func (r *ProjectRepository) AddMember(ctx context.Context, member *entity.ProjectMember) error {
	ctx, span := tracer.Start(ctx, "postgres.ProjectRepository.AddMember")
	defer span.End()

	q := getQuerier(ctx, r.client.sqlDB)

	query := `
		INSERT INTO project_members (project_id, user_id, role, joined_at)
		VALUES ($1, $2, $3, NOW())
		ON CONFLICT (project_id, user_id) DO UPDATE SET role = EXCLUDED.role
		RETURNING joined_at
	`

	err := q.QueryRowContext(ctx, query, member.ProjectID, member.UserID, member.Role).
		Scan(&member.JoinedAt)
	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to add project member: %w", err)
	}

	return nil
}

// ListMembers 获取项目成员列表
func (r *ProjectRepository) ListMembers(ctx context.Context, projectID string) ([]*entity.ProjectMember, error) {
	ctx, span := tracer.Start(ctx, "postgres.ProjectRepository.ListMembers")
	defer span.End()

	q := getQuerier(ctx, r.client.sqlDB)

	query := `
		SELECT pm.project_id, pm.user_id, pm.role, pm.joined_at,
			u.username, u.email, u.role AS user_role
		FROM project_members pm
		JOIN users u ON pm.user_id = u.id
		WHERE pm.project_id = $1
		ORDER BY pm.joined_at ASC
	`

	rows, err := q.QueryContext(ctx, query, projectID)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to list project members: %w", err)
	}
	defer rows.Close()

	var members []*entity.ProjectMember
	for rows.Next() {
		var m entity.ProjectMember
		if err := rows.Scan(
			&m.ProjectID, &m.UserID, &m.Role, &m.JoinedAt,
			&m.Username, &m.Email, &m.UserRole,
		); err != nil {
			span.RecordError(err)
			return nil, fmt.Errorf("failed to scan project member: %w", err)
		}
		members = append(members, &m)
	}

	if err := rows.Err(); err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to iterate project members: %w", err)
	}

	return members, nil
}

// GetStats 获取项目统计
func (r *ProjectRepository) GetStats(ctx context.Context) (*entity.ProjectStats, error) {
	ctx, span := tracer.Start(ctx, "postgres.ProjectRepository.GetStats")
	defer span.End()

	q := getQuerier(ctx, r.client.sqlDB)

	query := `
		SELECT
			(SELECT COUNT(*) FROM projects) AS total_projects,
			(SELECT COUNT(*) FROM projects WHERE end_date IS NULL OR end_date >= NOW()) AS active_projects,
			(SELECT COUNT(DISTINCT user_id) FROM project_members) AS total_members
	`

	var stats entity.ProjectStats
	err := q.QueryRowContext(ctx, query).Scan(
		&stats.TotalProjects, &stats.ActiveProjects, &stats.TotalMembers,
	)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to get project stats: %w", err)
	}

	return &stats, nil
}

// rowScanner 兼容 *sql.Row 和 *sql.Rows
type rowScanner interface {
	Scan(dest ...any) error
}

func scanProject(row rowScanner) (*entity.Project, error) {
	var project entity.Project
	var createdBy sql.NullString

	err := row.Scan(
		&project.ID, &project.Name, &project.Description,
		&project.StartDate, &project.EndDate, &createdBy,
		&project.CreatedAt, &project.UpdatedAt,
		&project.CreatedByName, &project.TaskCount, &project.MemberCount,
	)
	if err != nil {
		return nil, err
	}

	if createdBy.Valid {
		project.CreatedBy = createdBy.String
	}

	return &project, nil
}
