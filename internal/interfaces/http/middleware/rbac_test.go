package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"teamtrack-api/internal/domain/entity"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestHasPermission(t *testing.T) {
	assert.True(t, HasPermission(entity.UserRoleAdmin, PermStoryGenerate))
	assert.True(t, HasPermission(entity.UserRoleAdmin, PermAdminAccess))
	assert.True(t, HasPermission(entity.UserRoleManager, PermStoryGenerate))
	assert.False(t, HasPermission(entity.UserRoleManager, PermAdminAccess))
	assert.True(t, HasPermission(entity.UserRoleDeveloper, PermTaskWrite))
	assert.False(t, HasPermission(entity.UserRoleDeveloper, PermStoryGenerate))
	assert.False(t, HasPermission(entity.UserRoleDeveloper, PermProjectWrite))
	assert.False(t, HasPermission(entity.UserRole("ghost"), PermTaskRead))
}

func performWithRole(t *testing.T, mw gin.HandlerFunc, role string) *httptest.ResponseRecorder {
	t.Helper()

	r := gin.New()
	r.Use(func(c *gin.Context) {
		if role != "" {
			c.Set("role", role)
		}
		c.Next()
	})
	r.GET("/protected", mw, func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	r.ServeHTTP(w, req)
	return w
}

func TestRequirePermission(t *testing.T) {
	mw := RequirePermission(PermStoryGenerate)

	assert.Equal(t, http.StatusOK, performWithRole(t, mw, "admin").Code)
	assert.Equal(t, http.StatusOK, performWithRole(t, mw, "manager").Code)
	assert.Equal(t, http.StatusForbidden, performWithRole(t, mw, "developer").Code)
	assert.Equal(t, http.StatusForbidden, performWithRole(t, mw, "").Code)
}

func TestRequireRole(t *testing.T) {
	mw := RequireRole(entity.UserRoleAdmin, entity.UserRoleManager)

	assert.Equal(t, http.StatusOK, performWithRole(t, mw, "admin").Code)
	assert.Equal(t, http.StatusOK, performWithRole(t, mw, "manager").Code)
	assert.Equal(t, http.StatusForbidden, performWithRole(t, mw, "developer").Code)
	assert.Equal(t, http.StatusForbidden, performWithRole(t, mw, "unknown").Code)
}

func TestRequireAdmin(t *testing.T) {
	mw := RequireAdmin()

	assert.Equal(t, http.StatusOK, performWithRole(t, mw, "admin").Code)
	assert.Equal(t, http.StatusForbidden, performWithRole(t, mw, "manager").Code)
}
