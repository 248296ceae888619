package dto

import (
	"teamtrack-api/internal/domain/entity"
)

// ProjectDetailResponse 项目详情，含成员与任务
type ProjectDetailResponse struct {
	Project *entity.Project         `json:"project"`
	Members []*entity.ProjectMember `json:"members"`
	Tasks   []*entity.Task          `json:"tasks"`
}

// CreateProjectRequest 创建项目请求
type CreateProjectRequest struct {
	Name        string   `json:"name" binding:"required,max=255"`
	Description string   `json:"description" binding:"omitempty"`
	StartDate   string   `json:"start_date" binding:"omitempty,datetime=2006-01-02"`
	EndDate     string   `json:"end_date" binding:"omitempty,datetime=2006-01-02"`
	MemberIDs   []string `json:"member_ids" binding:"omitempty,dive,uuid"`
}

// UpdateProjectRequest 更新项目请求
type UpdateProjectRequest struct {
	Name        string `json:"name" binding:"omitempty,max=255"`
	Description string `json:"description" binding:"omitempty"`
	StartDate   string `json:"start_date" binding:"omitempty,datetime=2006-01-02"`
	EndDate     string `json:"end_date" binding:"omitempty,datetime=2006-01-02"`
}

// AddMemberRequest 添加项目成员请求
type AddMemberRequest struct {
	UserID string `json:"user_id" binding:"required,uuid"`
	Role   string `json:"role" binding:"omitempty,max=50"`
}
