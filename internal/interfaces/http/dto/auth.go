package dto

import (
	"teamtrack-api/internal/domain/entity"
)

// RegisterRequest 注册请求
type RegisterRequest struct {
	Username string `json:"username" binding:"required,min=3,max=100"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6,max=72"`
	Role     string `json:"role" binding:"omitempty,oneof=admin manager developer"`
}

// LoginRequest 登录请求
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// AuthUserDTO 认证响应中的用户信息
type AuthUserDTO struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     string `json:"role"`
}

// AuthResponse 认证响应
type AuthResponse struct {
	AccessToken string       `json:"access_token"`
	ExpiresIn   int          `json:"expires_in"` // 秒
	User        *AuthUserDTO `json:"user"`
}

// ToAuthUserDTO 将领域实体转换为 DTO
func ToAuthUserDTO(u *entity.User) *AuthUserDTO {
	if u == nil {
		return nil
	}
	return &AuthUserDTO{
		ID:       u.ID,
		Username: u.Username,
		Email:    u.Email,
		Role:     string(u.Role),
	}
}
