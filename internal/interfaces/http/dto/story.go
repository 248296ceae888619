package dto

import (
	"teamtrack-api/internal/domain/entity"
)

// GenerateStoriesRequest 用户故事生成请求
type GenerateStoriesRequest struct {
	ProjectDescription string `json:"project_description"`
	ProjectID          string `json:"project_id" binding:"omitempty,uuid"`
}

// GenerateStoriesResponse 用户故事生成响应
type GenerateStoriesResponse struct {
	UserStories []string `json:"user_stories"`
	Count       int      `json:"count"`
}

// StoryListResponse 项目已保存用户故事列表响应
type StoryListResponse struct {
	UserStories []*UserStoryDTO `json:"user_stories"`
	Count       int             `json:"count"`
}

// UserStoryDTO 已保存的用户故事
type UserStoryDTO struct {
	ID              string `json:"id"`
	Story           string `json:"story"`
	ProjectID       string `json:"project_id"`
	GeneratedBy     string `json:"generated_by,omitempty"`
	GeneratedByName string `json:"generated_by_name,omitempty"`
	CreatedAt       string `json:"created_at"`
}

// ToUserStoryDTO 将领域实体转换为 DTO
func ToUserStoryDTO(s *entity.UserStory) *UserStoryDTO {
	if s == nil {
		return nil
	}
	return &UserStoryDTO{
		ID:              s.ID,
		Story:           s.Story,
		ProjectID:       s.ProjectID,
		GeneratedBy:     s.GeneratedBy,
		GeneratedByName: s.GeneratedByName,
		CreatedAt:       s.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}

// ToUserStoryDTOs 批量转换，保证返回非 nil 切片
func ToUserStoryDTOs(stories []*entity.UserStory) []*UserStoryDTO {
	out := make([]*UserStoryDTO, 0, len(stories))
	for _, s := range stories {
		out = append(out, ToUserStoryDTO(s))
	}
	return out
}
