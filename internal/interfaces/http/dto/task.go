package dto

// CreateTaskRequest 创建任务请求
type CreateTaskRequest struct {
	Title       string `json:"title" binding:"required,max=255"`
	Description string `json:"description" binding:"omitempty"`
	ProjectID   string `json:"project_id" binding:"omitempty,uuid"`
	AssignedTo  string `json:"assigned_to" binding:"omitempty,uuid"`
	Priority    string `json:"priority" binding:"omitempty,oneof=low medium high"`
	Deadline    string `json:"deadline" binding:"omitempty"`
	Status      string `json:"status" binding:"omitempty,oneof=todo in_progress review done"`
}

// UpdateTaskRequest 更新任务请求
type UpdateTaskRequest struct {
	Title       string `json:"title" binding:"omitempty,max=255"`
	Description string `json:"description" binding:"omitempty"`
	AssignedTo  string `json:"assigned_to" binding:"omitempty,uuid"`
	Priority    string `json:"priority" binding:"omitempty,oneof=low medium high"`
	Deadline    string `json:"deadline" binding:"omitempty"`
	Status      string `json:"status" binding:"omitempty,oneof=todo in_progress review done"`
}
