package handler

import (
	"teamtrack-api/internal/domain/entity"
	"teamtrack-api/internal/domain/repository"
	"teamtrack-api/internal/interfaces/http/dto"
	"teamtrack-api/pkg/logger"

	"github.com/gin-gonic/gin"
)

// UserHandler 用户管理处理器
type UserHandler struct {
	userRepo repository.UserRepository
}

// NewUserHandler 创建用户管理处理器
func NewUserHandler(userRepo repository.UserRepository) *UserHandler {
	return &UserHandler{userRepo: userRepo}
}

// Create 创建用户（管理员操作）
func (h *UserHandler) Create(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	exists, err := h.userRepo.ExistsByEmailOrUsername(ctx, req.Email, req.Username)
	if err != nil {
		logger.Error(ctx, "failed to check user existence", err)
		dto.InternalError(c, "failed to create user")
		return
	}
	if exists {
		dto.Conflict(c, "user already exists")
		return
	}

	user := entity.NewUser(req.Username, req.Email, entity.UserRole(req.Role))
	if err := user.SetPassword(req.Password); err != nil {
		logger.Error(ctx, "failed to hash password", err)
		dto.InternalError(c, "failed to create user")
		return
	}

	if err := h.userRepo.Create(ctx, user); err != nil {
		logger.Error(ctx, "failed to create user", err)
		dto.InternalError(c, "failed to create user")
		return
	}

	dto.Created(c, dto.ToAuthUserDTO(user))
}

// List 获取用户列表
func (h *UserHandler) List(c *gin.Context) {
	ctx := c.Request.Context()

	users, err := h.userRepo.List(ctx)
	if err != nil {
		logger.Error(ctx, "failed to list users", err)
		dto.InternalError(c, "failed to list users")
		return
	}

	out := make([]*dto.AuthUserDTO, 0, len(users))
	for _, u := range users {
		out = append(out, dto.ToAuthUserDTO(u))
	}
	dto.Success(c, out)
}

// Get 获取单个用户
func (h *UserHandler) Get(c *gin.Context) {
	ctx := c.Request.Context()

	user, err := h.userRepo.GetByID(ctx, c.Param("id"))
	if err != nil {
		logger.Error(ctx, "failed to get user", err)
		dto.InternalError(c, "failed to get user")
		return
	}
	if user == nil {
		dto.NotFound(c, "user not found")
		return
	}

	dto.Success(c, dto.ToAuthUserDTO(user))
}

// Update 更新用户
func (h *UserHandler) Update(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	user, err := h.userRepo.GetByID(ctx, c.Param("id"))
	if err != nil {
		logger.Error(ctx, "failed to get user", err)
		dto.InternalError(c, "failed to update user")
		return
	}
	if user == nil {
		dto.NotFound(c, "user not found")
		return
	}

	if req.Username != "" {
		user.Username = req.Username
	}
	if req.Email != "" {
		user.Email = req.Email
	}
	if req.Role != "" {
		// 角色变更仅限管理员
		if c.GetString("role") != string(entity.UserRoleAdmin) {
			dto.Forbidden(c, "only admin can change roles")
			return
		}
		user.Role = entity.UserRole(req.Role)
	}
	if req.Password != "" {
		if err := user.SetPassword(req.Password); err != nil {
			logger.Error(ctx, "failed to hash password", err)
			dto.InternalError(c, "failed to update user")
			return
		}
	}

	if err := h.userRepo.Update(ctx, user); err != nil {
		logger.Error(ctx, "failed to update user", err)
		dto.InternalError(c, "failed to update user")
		return
	}

	dto.Success(c, dto.ToAuthUserDTO(user))
}

// Delete 删除用户
func (h *UserHandler) Delete(c *gin.Context) {
	ctx := c.Request.Context()

	id := c.Param("id")

	// 不允许删除自己的账号
	if id == c.GetString("user_id") {
		dto.BadRequest(c, "cannot delete your own account")
		return
	}

	user, err := h.userRepo.GetByID(ctx, id)
	if err != nil {
		logger.Error(ctx, "failed to get user", err)
		dto.InternalError(c, "failed to delete user")
		return
	}
	if user == nil {
		dto.NotFound(c, "user not found")
		return
	}

	if err := h.userRepo.Delete(ctx, id); err != nil {
		logger.Error(ctx, "failed to delete user", err)
		dto.InternalError(c, "failed to delete user")
		return
	}

	dto.NoContent(c)
}
