package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"teamtrack-api/internal/application/story"
	"teamtrack-api/internal/config"
	"teamtrack-api/internal/domain/entity"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type stubChatModel struct {
	content   string
	err       error
	callCount int
}

func (m *stubChatModel) Generate(ctx context.Context, input []*schema.Message, opts ...model.Option) (*schema.Message, error) {
	m.callCount++
	if m.err != nil {
		return nil, m.err
	}
	return &schema.Message{Role: schema.Assistant, Content: m.content}, nil
}

func (m *stubChatModel) Stream(ctx context.Context, input []*schema.Message, opts ...model.Option) (*schema.StreamReader[*schema.Message], error) {
	return nil, errors.New("streaming not supported")
}

type stubFactory struct {
	model *stubChatModel
}

func (f *stubFactory) Get(ctx context.Context, name string) (model.BaseChatModel, error) {
	return f.model, nil
}

type memStoryRepo struct {
	mu        sync.Mutex
	saved     []*entity.UserStory
	insertErr error
}

func (r *memStoryRepo) Insert(ctx context.Context, s *entity.UserStory) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.insertErr != nil {
		return r.insertErr
	}
	r.saved = append(r.saved, s)
	return nil
}

func (r *memStoryRepo) ListByProject(ctx context.Context, projectID string) ([]*entity.UserStory, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.UserStory
	for _, s := range r.saved {
		if s.ProjectID == projectID {
			out = append(out, s)
		}
	}
	return out, nil
}

func storyTestConfig() *config.Config {
	return &config.Config{
		LLM: config.LLMConfig{
			DefaultProvider: "test",
			Providers: map[string]config.ProviderConfig{
				"test": {Model: "test-model", MaxTokens: 1000, Temperature: 0.7},
			},
		},
	}
}

func newStoryRouter(chat *stubChatModel, repo *memStoryRepo) *gin.Engine {
	generator := story.NewGenerator(&stubFactory{model: chat}, storyTestConfig())
	gateway := story.NewGateway(repo)
	h := NewStoryHandler(generator, gateway)

	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("user_id", "user-1")
		c.Set("role", "manager")
		c.Next()
	})
	r.POST("/v1/ai/user-stories", h.Generate)
	r.GET("/v1/ai/user-stories/:projectId", h.ListByProject)
	return r
}

func postJSON(r *gin.Engine, path string, body any) *httptest.ResponseRecorder {
	data, _ := json.Marshal(body)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

const validModelOutput = `[
  "As a shopper, I want to search products, so that I can find items fast.",
  "As an admin, I want to review orders, so that fulfilment stays on track."
]`

func TestStoryGenerate_Success(t *testing.T) {
	chat := &stubChatModel{content: validModelOutput}
	repo := &memStoryRepo{}
	r := newStoryRouter(chat, repo)

	w := postJSON(r, "/v1/ai/user-stories", gin.H{
		"project_description": "An online shop",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Data    struct {
			UserStories []string `json:"user_stories"`
			Count       int      `json:"count"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "User stories generated successfully", resp.Message)
	assert.Len(t, resp.Data.UserStories, 2)
	assert.Equal(t, 2, resp.Data.Count)
	// 未携带 project_id，不落库
	assert.Empty(t, repo.saved)
}

func TestStoryGenerate_WithProjectIDPersists(t *testing.T) {
	chat := &stubChatModel{content: validModelOutput}
	repo := &memStoryRepo{}
	r := newStoryRouter(chat, repo)

	w := postJSON(r, "/v1/ai/user-stories", gin.H{
		"project_description": "An online shop",
		"project_id":          "c56a4180-65aa-42ec-a945-5fd21dec0538",
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, repo.saved, 2)
	for _, s := range repo.saved {
		assert.Equal(t, "c56a4180-65aa-42ec-a945-5fd21dec0538", s.ProjectID)
		assert.Equal(t, "user-1", s.GeneratedBy)
	}
}

func TestStoryGenerate_MissingDescription(t *testing.T) {
	chat := &stubChatModel{content: validModelOutput}
	r := newStoryRouter(chat, &memStoryRepo{})

	for _, body := range []gin.H{
		{},
		{"project_description": ""},
		{"project_description": "   "},
	} {
		w := postJSON(r, "/v1/ai/user-stories", body)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "Project description is required")
	}
	// 校验失败不触发模型调用
	assert.Equal(t, 0, chat.callCount)
}

func TestStoryGenerate_ModelFailure(t *testing.T) {
	chat := &stubChatModel{err: errors.New("upstream timeout")}
	r := newStoryRouter(chat, &memStoryRepo{})

	w := postJSON(r, "/v1/ai/user-stories", gin.H{
		"project_description": "An online shop",
	})
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "Failed to generate user stories")
}

func TestStoryGenerate_UnparsableOutput(t *testing.T) {
	chat := &stubChatModel{content: "I cannot do that."}
	r := newStoryRouter(chat, &memStoryRepo{})

	w := postJSON(r, "/v1/ai/user-stories", gin.H{
		"project_description": "An online shop",
	})
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "Failed to generate user stories")
}

func TestStoryGenerate_PersistFailure(t *testing.T) {
	chat := &stubChatModel{content: validModelOutput}
	repo := &memStoryRepo{insertErr: errors.New("disk full")}
	r := newStoryRouter(chat, repo)

	w := postJSON(r, "/v1/ai/user-stories", gin.H{
		"project_description": "An online shop",
		"project_id":          "c56a4180-65aa-42ec-a945-5fd21dec0538",
	})
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "Failed to generate user stories")
}

func TestStoryGenerate_EmptyResultStillSuccess(t *testing.T) {
	chat := &stubChatModel{content: `["no markers here at all"]`}
	r := newStoryRouter(chat, &memStoryRepo{})

	w := postJSON(r, "/v1/ai/user-stories", gin.H{
		"project_description": "An online shop",
	})
	require.Equal(t, http.StatusOK, w.Code)

	// user_stories 必须是空数组而非 null
	assert.Contains(t, w.Body.String(), `"user_stories":[]`)
	assert.Contains(t, w.Body.String(), `"count":0`)
}

func TestStoryListByProject(t *testing.T) {
	chat := &stubChatModel{content: validModelOutput}
	repo := &memStoryRepo{}
	r := newStoryRouter(chat, repo)

	postJSON(r, "/v1/ai/user-stories", gin.H{
		"project_description": "An online shop",
		"project_id":          "c56a4180-65aa-42ec-a945-5fd21dec0538",
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/v1/ai/user-stories/c56a4180-65aa-42ec-a945-5fd21dec0538", nil)
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data struct {
			UserStories []struct {
				Story     string `json:"story"`
				ProjectID string `json:"project_id"`
			} `json:"user_stories"`
			Count int `json:"count"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.Data.UserStories, 2)
	assert.Equal(t, 2, resp.Data.Count)
}

func TestStoryListByProject_EmptyIsArray(t *testing.T) {
	chat := &stubChatModel{content: validModelOutput}
	r := newStoryRouter(chat, &memStoryRepo{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/v1/ai/user-stories/c56a4180-65aa-42ec-a945-5fd21dec0538", nil)
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"user_stories":[]`)
	assert.Contains(t, w.Body.String(), `"count":0`)
}
