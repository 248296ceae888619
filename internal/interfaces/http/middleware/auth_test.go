package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"teamtrack-api/pkg/utils"
)

func newAuthRouter(cfg AuthConfig) *gin.Engine {
	r := gin.New()
	r.Use(Auth(cfg))
	r.GET("/v1/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"user_id": c.GetString("user_id"),
			"role":    c.GetString("role"),
		})
	})
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	return r
}

func authRequest(r *gin.Engine, path, header string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	r.ServeHTTP(w, req)
	return w
}

func TestAuth_ValidToken(t *testing.T) {
	cfg := AuthConfig{Secret: "test-secret", Issuer: "teamtrack", Enabled: true}
	r := newAuthRouter(cfg)

	m := utils.NewJWTManager(cfg.Secret, cfg.Issuer)
	token, err := m.GenerateToken("user-1", "manager", "access", time.Minute)
	require.NoError(t, err)

	w := authRequest(r, "/v1/ping", "Bearer "+token)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "user-1")
	assert.Contains(t, w.Body.String(), "manager")
}

func TestAuth_MissingHeader(t *testing.T) {
	r := newAuthRouter(AuthConfig{Secret: "test-secret", Issuer: "teamtrack", Enabled: true})

	w := authRequest(r, "/v1/ping", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuth_MalformedHeader(t *testing.T) {
	r := newAuthRouter(AuthConfig{Secret: "test-secret", Issuer: "teamtrack", Enabled: true})

	w := authRequest(r, "/v1/ping", "Token abc")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuth_RefreshTokenRejected(t *testing.T) {
	cfg := AuthConfig{Secret: "test-secret", Issuer: "teamtrack", Enabled: true}
	r := newAuthRouter(cfg)

	m := utils.NewJWTManager(cfg.Secret, cfg.Issuer)
	token, err := m.GenerateToken("user-1", "admin", "refresh", time.Hour)
	require.NoError(t, err)

	w := authRequest(r, "/v1/ping", "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuth_ExpiredToken(t *testing.T) {
	cfg := AuthConfig{Secret: "test-secret", Issuer: "teamtrack", Enabled: true}
	r := newAuthRouter(cfg)

	m := utils.NewJWTManager(cfg.Secret, cfg.Issuer)
	token, err := m.GenerateToken("user-1", "admin", "access", -time.Minute)
	require.NoError(t, err)

	w := authRequest(r, "/v1/ping", "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "token expired")
}

func TestAuth_SkipPaths(t *testing.T) {
	r := newAuthRouter(AuthConfig{
		Secret:    "test-secret",
		Issuer:    "teamtrack",
		SkipPaths: DefaultSkipPaths,
		Enabled:   true,
	})

	w := authRequest(r, "/health", "")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAuth_Disabled(t *testing.T) {
	r := newAuthRouter(AuthConfig{Secret: "test-secret", Issuer: "teamtrack", Enabled: false})

	w := authRequest(r, "/v1/ping", "")
	assert.Equal(t, http.StatusOK, w.Code)
}
