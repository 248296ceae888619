// Package entity 定义领域实体
package entity

import (
	"strings"
	"time"
)

// 用户故事必须同时包含的三个标记子串（区分大小写）
const (
	StoryMarkerRole    = "As a"
	StoryMarkerAction  = "I want to"
	StoryMarkerBenefit = "so that"
)

// UserStory AI 生成的用户故事
// 落库后不再变更；删除所属项目时级联删除。
type UserStory struct {
	ID          string    `json:"id"`
	Story       string    `json:"story"`
	ProjectID   string    `json:"project_id,omitempty"`
	GeneratedBy string    `json:"generated_by,omitempty"`
	CreatedAt   time.Time `json:"created_at"`

	// 列表查询时由 JOIN 填充；生成者已被删除时为空
	GeneratedByName string `json:"generated_by_name,omitempty"`
}

// IsWellFormedStory 三标记谓词：判断一句文本是否为合法的用户故事。
// 三个子串可出现在任意位置、任意顺序。
func IsWellFormedStory(s string) bool {
	return strings.Contains(s, StoryMarkerRole) &&
		strings.Contains(s, StoryMarkerAction) &&
		strings.Contains(s, StoryMarkerBenefit)
}
