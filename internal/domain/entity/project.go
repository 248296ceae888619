// Package entity 定义领域实体
package entity

import (
	"time"
)

// Project 项目实体
type Project struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description,omitempty"`
	StartDate   *time.Time `json:"start_date,omitempty"`
	EndDate     *time.Time `json:"end_date,omitempty"`
	CreatedBy   string     `json:"created_by,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`

	// 列表/详情查询时由 JOIN 填充
	CreatedByName string `json:"created_by_name,omitempty"`
	TaskCount     int    `json:"task_count"`
	MemberCount   int    `json:"member_count"`
}

// NewProject 创建新项目
func NewProject(name, description, createdBy string) *Project {
	now := time.Now()
	return &Project{
		Name:        name,
		Description: description,
		CreatedBy:   createdBy,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// ProjectMember 项目成员
type ProjectMember struct {
	ProjectID string    `json:"project_id"`
	UserID    string    `json:"user_id"`
	Role      string    `json:"role"`
	JoinedAt  time.Time `json:"joined_at"`

	// JOIN 填充
	Username string   `json:"username,omitempty"`
	Email    string   `json:"email,omitempty"`
	UserRole UserRole `json:"user_role,omitempty"`
}

// ProjectStats 项目统计
type ProjectStats struct {
	TotalProjects  int64 `json:"total_projects"`
	ActiveProjects int64 `json:"active_projects"`
	TotalMembers   int64 `json:"total_members"`
}
