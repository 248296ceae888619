// Package handler 提供 HTTP 请求处理器
package handler

import (
	"teamtrack-api/internal/config"
	"teamtrack-api/internal/domain/entity"
	"teamtrack-api/internal/domain/repository"
	"teamtrack-api/internal/interfaces/http/dto"
	"teamtrack-api/pkg/logger"
	"teamtrack-api/pkg/utils"

	"github.com/gin-gonic/gin"
)

// AuthHandler 认证处理器
type AuthHandler struct {
	jwtManager *utils.JWTManager
	jwtCfg     config.JWTConfig
	userRepo   repository.UserRepository
}

// NewAuthHandler 创建认证处理器
func NewAuthHandler(cfg *config.Config, userRepo repository.UserRepository) *AuthHandler {
	return &AuthHandler{
		jwtManager: utils.NewJWTManager(cfg.Security.JWT.Secret, cfg.Security.JWT.Issuer),
		jwtCfg:     cfg.Security.JWT,
		userRepo:   userRepo,
	}
}

// Register 注册
// @Summary 用户注册
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body dto.RegisterRequest true "注册信息"
// @Success 201 {object} dto.Response[dto.AuthResponse]
// @Failure 400 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Router /v1/auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	// 检查邮箱/用户名是否已被占用
	exists, err := h.userRepo.ExistsByEmailOrUsername(ctx, req.Email, req.Username)
	if err != nil {
		logger.Error(ctx, "failed to check user existence", err)
		dto.InternalError(c, "registration failed")
		return
	}
	if exists {
		dto.Conflict(c, "email or username already registered")
		return
	}

	// 创建用户实体，未指定角色时默认 developer
	user := entity.NewUser(req.Username, req.Email, entity.UserRole(req.Role))
	if err := user.SetPassword(req.Password); err != nil {
		logger.Error(ctx, "failed to hash password", err)
		dto.InternalError(c, "registration failed")
		return
	}

	if err := h.userRepo.Create(ctx, user); err != nil {
		logger.Error(ctx, "failed to create user", err)
		dto.InternalError(c, "registration failed")
		return
	}

	tokens, err := h.jwtManager.GenerateTokenPair(user.ID, string(user.Role), h.jwtCfg.Expiration, h.jwtCfg.RefreshExpiration)
	if err != nil {
		dto.InternalError(c, "user created but failed to generate tokens")
		return
	}

	// 设置 RefreshToken 到 Cookie
	c.SetCookie("refresh_token", tokens.RefreshToken, int(h.jwtCfg.RefreshExpiration.Seconds()), "/v1/auth/refresh", "", false, true)

	dto.Created(c, &dto.AuthResponse{
		AccessToken: tokens.AccessToken,
		ExpiresIn:   int(h.jwtCfg.Expiration.Seconds()),
		User:        dto.ToAuthUserDTO(user),
	})
}

// Login 登录
// @Summary 用户登录
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body dto.LoginRequest true "登录信息"
// @Success 200 {object} dto.Response[dto.AuthResponse]
// @Failure 401 {object} dto.ErrorResponse
// @Router /v1/auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	user, err := h.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		logger.Error(ctx, "failed to get user", err)
		dto.InternalError(c, "login failed")
		return
	}

	// 校验存在性及密码
	if user == nil || !user.CheckPassword(req.Password) {
		dto.Unauthorized(c, "invalid email or password")
		return
	}

	tokens, err := h.jwtManager.GenerateTokenPair(user.ID, string(user.Role), h.jwtCfg.Expiration, h.jwtCfg.RefreshExpiration)
	if err != nil {
		dto.InternalError(c, "failed to generate tokens")
		return
	}

	c.SetCookie("refresh_token", tokens.RefreshToken, int(h.jwtCfg.RefreshExpiration.Seconds()), "/v1/auth/refresh", "", false, true)

	dto.Success(c, &dto.AuthResponse{
		AccessToken: tokens.AccessToken,
		ExpiresIn:   int(h.jwtCfg.Expiration.Seconds()),
		User:        dto.ToAuthUserDTO(user),
	})
}

// RefreshToken 刷新 Token
func (h *AuthHandler) RefreshToken(c *gin.Context) {
	refreshToken, err := c.Cookie("refresh_token")
	if err != nil {
		dto.Unauthorized(c, "missing refresh token")
		return
	}

	claims, err := h.jwtManager.ParseToken(refreshToken)
	if err != nil || claims.Type != "refresh" {
		dto.Unauthorized(c, "invalid refresh token")
		return
	}

	newAccessToken, err := h.jwtManager.GenerateToken(claims.UserID, claims.Role, "access", h.jwtCfg.Expiration)
	if err != nil {
		dto.InternalError(c, "failed to generate access token")
		return
	}

	dto.Success(c, gin.H{
		"access_token": newAccessToken,
		"expires_in":   int(h.jwtCfg.Expiration.Seconds()),
	})
}

// Logout 登出
func (h *AuthHandler) Logout(c *gin.Context) {
	c.SetCookie("refresh_token", "", -1, "/v1/auth/refresh", "", false, true)
	dto.Success(c, gin.H{"message": "logged out success"})
}

// Profile 获取当前用户信息
func (h *AuthHandler) Profile(c *gin.Context) {
	ctx := c.Request.Context()

	userID := c.GetString("user_id")
	user, err := h.userRepo.GetByID(ctx, userID)
	if err != nil {
		logger.Error(ctx, "failed to get profile", err)
		dto.InternalError(c, "failed to get profile")
		return
	}
	if user == nil {
		dto.NotFound(c, "user not found")
		return
	}

	dto.Success(c, dto.ToAuthUserDTO(user))
}
