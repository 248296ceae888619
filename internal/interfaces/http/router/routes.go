package router

import (
	"teamtrack-api/internal/domain/entity"
	"teamtrack-api/internal/interfaces/http/middleware"

	"github.com/gin-gonic/gin"
)

// RegisterV1Routes 注册 v1 版本路由
func RegisterV1Routes(v1 *gin.RouterGroup, h Handlers) {
	// 认证管理
	auth := v1.Group("/auth")
	{
		auth.POST("/register", h.Auth.Register)
		auth.POST("/login", h.Auth.Login)
		auth.POST("/refresh", h.Auth.RefreshToken)
		auth.POST("/logout", h.Auth.Logout)
		auth.GET("/profile", h.Auth.Profile)
	}

	// 用户管理
	users := v1.Group("/users")
	{
		users.GET("", middleware.RequireRole(entity.UserRoleAdmin, entity.UserRoleManager), h.User.List)

		users.POST("", middleware.RequireAdmin(), h.User.Create)
		users.GET("/:id", middleware.RequireAdmin(), h.User.Get)
		users.PUT("/:id", middleware.RequireAdmin(), h.User.Update)
		users.DELETE("/:id", middleware.RequireAdmin(), h.User.Delete)
	}

	// 项目管理
	projects := v1.Group("/projects")
	{
		projects.GET("", middleware.RequirePermission(middleware.PermProjectRead), h.Project.List)
		projects.GET("/stats/overview", middleware.RequirePermission(middleware.PermProjectRead), h.Project.Stats)
		projects.GET("/:id", middleware.RequirePermission(middleware.PermProjectRead), h.Project.Get)
		projects.GET("/:id/members", middleware.RequirePermission(middleware.PermProjectRead), h.Project.ListMembers)

		projects.POST("", middleware.RequirePermission(middleware.PermProjectWrite), h.Project.Create)
		projects.PUT("/:id", middleware.RequirePermission(middleware.PermProjectWrite), h.Project.Update)
		projects.POST("/:id/members", middleware.RequirePermission(middleware.PermProjectWrite), h.Project.AddMember)

		// 删除会级联清除成员、任务与用户故事
		projects.DELETE("/:id", middleware.RequireAdmin(), h.Project.Delete)
	}

	// 任务管理
	tasks := v1.Group("/tasks")
	{
		tasks.GET("", middleware.RequirePermission(middleware.PermTaskRead), h.Task.List)
		tasks.GET("/stats/overview", middleware.RequirePermission(middleware.PermTaskRead), h.Task.Stats)
		tasks.GET("/:id", middleware.RequirePermission(middleware.PermTaskRead), h.Task.Get)

		// 开发者可更新任务状态，创建与删除仅限管理员和项目经理
		tasks.PUT("/:id", middleware.RequirePermission(middleware.PermTaskWrite), h.Task.Update)
		tasks.POST("", middleware.RequireRole(entity.UserRoleAdmin, entity.UserRoleManager), h.Task.Create)
		tasks.DELETE("/:id", middleware.RequireRole(entity.UserRoleAdmin, entity.UserRoleManager), h.Task.Delete)
	}

	// AI 用户故事（仅管理员和项目经理可生成）
	ai := v1.Group("/ai")
	{
		ai.POST("/user-stories",
			middleware.RequireRole(entity.UserRoleAdmin, entity.UserRoleManager),
			h.Story.Generate)
		ai.GET("/user-stories/:projectId",
			middleware.RequirePermission(middleware.PermProjectRead),
			h.Story.ListByProject)
	}
}
