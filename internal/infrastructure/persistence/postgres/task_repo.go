package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"teamtrack-api/internal/domain/entity"
	"teamtrack-api/internal/domain/repository"
)

// TaskRepository 任务仓储实现
type TaskRepository struct {
	client *Client
}

// NewTaskRepository 创建任务仓储
func NewTaskRepository(client *Client) repository.TaskRepository {
	return &TaskRepository{client: client}
}

const taskSelectColumns = `
	t.id, t.title, t.description, t.project_id, t.assigned_to, t.priority,
	t.deadline, t.status, t.created_by, t.created_at, t.updated_at,
	COALESCE(p.name, '') AS project_name,
	COALESCE(au.username, '') AS assigned_to_name,
	COALESCE(cu.username, '') AS created_by_name
`

const taskJoins = `
	FROM tasks t
	LEFT JOIN projects p ON t.project_id = p.id
	LEFT JOIN users au ON t.assigned_to = au.id
	LEFT JOIN users cu ON t.created_by = cu.id
`

// Create 创建任务
func (r *TaskRepository) Create(ctx context.Context, task *entity.Task) error {
	ctx, span := tracer.Start(ctx, "postgres.TaskRepository.Create")
	defer span.End()

	q := getQuerier(ctx, r.client.sqlDB)

	query := `
		INSERT INTO tasks (id, title, description, project_id, assigned_to, priority,
			deadline, status, created_by, created_at, updated_at)
		VALUES (gen_random_uuid(), $1, $2, $3, $4, $5, $6, $7, $8, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRowContext(ctx, query,
		task.Title, task.Description, nullString(task.ProjectID), nullString(task.AssignedTo),
		task.Priority, task.Deadline, task.Status, nullString(task.CreatedBy),
	).Scan(&task.ID, &task.CreatedAt, &task.UpdatedAt)

	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to create task: %w", err)
	}

	return nil
}

// GetByID 根据 ID 获取任务
func (r *TaskRepository) GetByID(ctx context.Context, id string) (*entity.Task, error) {
	ctx, span := tracer.Start(ctx, "postgres.TaskRepository.GetByID")
	defer span.End()

	q := getQuerier(ctx, r.client.sqlDB)

	query := `SELECT ` + taskSelectColumns + taskJoins + ` WHERE t.id = $1`

	task, err := scanTask(q.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		span.RecordError(err)
		return nil, fmt.Errorf("failed to get task: %w", err)
	}

	return task, nil
}

// Update 更新任务
func (r *TaskRepository) Update(ctx context.Context, task *entity.Task) error {
	ctx, span := tracer.Start(ctx, "postgres.TaskRepository.Update")
	defer span.End()

	q := getQuerier(ctx, r.client.sqlDB)

	query := `
		UPDATE tasks
		SET title = $1, description = $2, assigned_to = $3, priority = $4,
			deadline = $5, status = $6, updated_at = NOW()
		WHERE id = $7
		RETURNING updated_at
	`

	err := q.QueryRowContext(ctx, query,
		task.Title, task.Description, nullString(task.AssignedTo),
		task.Priority, task.Deadline, task.Status, task.ID,
	).Scan(&task.UpdatedAt)

	if err != nil {
		if err == sql.ErrNoRows {
			return fmt.Errorf("task not found: %s", task.ID)
		}
		span.RecordError(err)
		return fmt.Errorf("failed to update task: %w", err)
	}

	return nil
}

// Delete 删除任务
func (r *TaskRepository) Delete(ctx context.Context, id string) error {
	ctx, span := tracer.Start(ctx, "postgres.TaskRepository.Delete")
	defer span.End()

	q := getQuerier(ctx, r.client.sqlDB)

	result, err := q.ExecContext(ctx, `DELETE FROM tasks WHERE id = $1`, id)
	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to delete task: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("task not found: %s", id)
	}

	return nil
}

// List 按过滤条件获取任务列表
func (r *TaskRepository) List(ctx context.Context, filter *repository.TaskFilter) ([]*entity.Task, error) {
	ctx, span := tracer.Start(ctx, "postgres.TaskRepository.List")
	defer span.End()

	q := getQuerier(ctx, r.client.sqlDB)

	var conditions []string
	var args []any

	if filter != nil {
		if filter.ProjectID != "" {
			args = append(args, filter.ProjectID)
			conditions = append(conditions, fmt.Sprintf("t.project_id = $%d", len(args)))
		}
		if filter.Status != "" {
			args = append(args, filter.Status)
			conditions = append(conditions, fmt.Sprintf("t.status = $%d", len(args)))
		}
		if filter.AssignedTo != "" {
			args = append(args, filter.AssignedTo)
			conditions = append(conditions, fmt.Sprintf("t.assigned_to = $%d", len(args)))
		}
	}

	query := `SELECT ` + taskSelectColumns + taskJoins
	if len(conditions) > 0 {
		query += ` WHERE ` + strings.Join(conditions, " AND ")
	}
	query += ` ORDER BY t.created_at DESC`

	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	defer rows.Close()

	var tasks []*entity.Task
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			span.RecordError(err)
			return nil, fmt.Errorf("failed to scan task: %w", err)
		}
		tasks = append(tasks, task)
	}

	if err := rows.Err(); err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to iterate tasks: %w", err)
	}

	return tasks, nil
}

// GetStats 获取任务统计
func (r *TaskRepository) GetStats(ctx context.Context) (*entity.TaskStats, error) {
	ctx, span := tracer.Start(ctx, "postgres.TaskRepository.GetStats")
	defer span.End()

	q := getQuerier(ctx, r.client.sqlDB)

	rows, err := q.QueryContext(ctx, `
		SELECT status, COUNT(*) FROM tasks GROUP BY status ORDER BY status
	`)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to get task status stats: %w", err)
	}
	defer rows.Close()

	stats := &entity.TaskStats{}
	for rows.Next() {
		var sc entity.TaskStatusCount
		if err := rows.Scan(&sc.Status, &sc.Count); err != nil {
			span.RecordError(err)
			return nil, fmt.Errorf("failed to scan task status stats: %w", err)
		}
		stats.StatusStats = append(stats.StatusStats, sc)
	}
	if err := rows.Err(); err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to iterate task status stats: %w", err)
	}

	err = q.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM tasks WHERE deadline < NOW() AND status != 'done'
	`).Scan(&stats.OverdueTasks)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to get overdue task count: %w", err)
	}

	return stats, nil
}

func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

func scanTask(row rowScanner) (*entity.Task, error) {
	var task entity.Task
	var projectID, assignedTo, createdBy sql.NullString

	err := row.Scan(
		&task.ID, &task.Title, &task.Description, &projectID, &assignedTo,
		&task.Priority, &task.Deadline, &task.Status, &createdBy,
		&task.CreatedAt, &task.UpdatedAt,
		&task.ProjectName, &task.AssignedToName, &task.CreatedByName,
	)
	if err != nil {
		return nil, err
	}

	task.ProjectID = projectID.String
	task.AssignedTo = assignedTo.String
	task.CreatedBy = createdBy.String

	return &task, nil
}
