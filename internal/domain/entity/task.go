// Package entity 定义领域实体
package entity

import (
	"time"
)

// TaskStatus 任务状态
type TaskStatus string

const (
	TaskStatusTodo       TaskStatus = "todo"
	TaskStatusInProgress TaskStatus = "in_progress"
	TaskStatusReview     TaskStatus = "review"
	TaskStatusDone       TaskStatus = "done"
)

// IsValid 检查状态是否合法
func (s TaskStatus) IsValid() bool {
	switch s {
	case TaskStatusTodo, TaskStatusInProgress, TaskStatusReview, TaskStatusDone:
		return true
	}
	return false
}

// TaskPriority 任务优先级
type TaskPriority string

const (
	TaskPriorityLow    TaskPriority = "low"
	TaskPriorityMedium TaskPriority = "medium"
	TaskPriorityHigh   TaskPriority = "high"
)

// Task 任务实体
type Task struct {
	ID          string       `json:"id"`
	Title       string       `json:"title"`
	Description string       `json:"description,omitempty"`
	ProjectID   string       `json:"project_id,omitempty"`
	AssignedTo  string       `json:"assigned_to,omitempty"`
	Priority    TaskPriority `json:"priority"`
	Deadline    *time.Time   `json:"deadline,omitempty"`
	Status      TaskStatus   `json:"status"`
	CreatedBy   string       `json:"created_by,omitempty"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`

	// 列表查询时由 JOIN 填充
	ProjectName    string `json:"project_name,omitempty"`
	AssignedToName string `json:"assigned_to_name,omitempty"`
	CreatedByName  string `json:"created_by_name,omitempty"`
}

// NewTask 创建新任务
func NewTask(title, projectID, createdBy string) *Task {
	now := time.Now()
	return &Task{
		Title:     title,
		ProjectID: projectID,
		Priority:  TaskPriorityMedium,
		Status:    TaskStatusTodo,
		CreatedBy: createdBy,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// IsOverdue 检查任务是否已逾期
func (t *Task) IsOverdue() bool {
	return t.Deadline != nil && t.Deadline.Before(time.Now()) && t.Status != TaskStatusDone
}

// TaskStatusCount 按状态统计
type TaskStatusCount struct {
	Status TaskStatus `json:"status"`
	Count  int64      `json:"count"`
}

// TaskStats 任务统计
type TaskStats struct {
	StatusStats  []TaskStatusCount `json:"status_stats"`
	OverdueTasks int64             `json:"overdue_tasks"`
}
