package story

import (
	"context"
	"errors"
	"testing"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"teamtrack-api/internal/config"
	apperrors "teamtrack-api/pkg/errors"
)

// fakeChatModel 固定返回预设内容的 ChatModel
type fakeChatModel struct {
	content   string
	err       error
	callCount int
}

func (m *fakeChatModel) Generate(ctx context.Context, input []*schema.Message, opts ...model.Option) (*schema.Message, error) {
	m.callCount++
	if m.err != nil {
		return nil, m.err
	}
	return &schema.Message{
		Role:    schema.Assistant,
		Content: m.content,
	}, nil
}

func (m *fakeChatModel) Stream(ctx context.Context, input []*schema.Message, opts ...model.Option) (*schema.StreamReader[*schema.Message], error) {
	return nil, errors.New("streaming not supported")
}

// fakeFactory 返回固定 ChatModel 的工厂
type fakeFactory struct {
	model *fakeChatModel
	err   error
}

func (f *fakeFactory) Get(ctx context.Context, name string) (model.BaseChatModel, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.model, nil
}

func testConfig() *config.Config {
	return &config.Config{
		LLM: config.LLMConfig{
			DefaultProvider: "test",
			Providers: map[string]config.ProviderConfig{
				"test": {
					Model:       "test-model",
					MaxTokens:   1000,
					Temperature: 0.7,
				},
			},
		},
	}
}

func newTestGenerator(m *fakeChatModel) *Generator {
	return NewGenerator(&fakeFactory{model: m}, testConfig())
}

func TestGenerateUserStories_Success(t *testing.T) {
	m := &fakeChatModel{
		content: `Here you go:
[
  "As a customer, I want to browse products, so that I can find what I need.",
  "As an admin, I want to manage inventory, so that stock stays accurate."
]`,
	}
	g := newTestGenerator(m)

	stories, err := g.GenerateUserStories(context.Background(), "An online shop")
	require.NoError(t, err)
	assert.Len(t, stories, 2)
	assert.Equal(t, 1, m.callCount)
}

func TestGenerateUserStories_FiltersMalformedStories(t *testing.T) {
	m := &fakeChatModel{
		content: `[
  "As a customer, I want to browse products, so that I can find what I need.",
  "Browse products quickly",
  "As an admin, I want to manage inventory.",
  "As a visitor, I want to sign up, so that I can place orders."
]`,
	}
	g := newTestGenerator(m)

	stories, err := g.GenerateUserStories(context.Background(), "An online shop")
	require.NoError(t, err)
	// 缺少任一标记的条目被丢弃
	assert.Len(t, stories, 2)
	for _, s := range stories {
		assert.Contains(t, s, "As a")
		assert.Contains(t, s, "I want to")
		assert.Contains(t, s, "so that")
	}
}

func TestGenerateUserStories_AllFilteredOutIsNotError(t *testing.T) {
	m := &fakeChatModel{content: `["just some text", "another line"]`}
	g := newTestGenerator(m)

	stories, err := g.GenerateUserStories(context.Background(), "A project")
	require.NoError(t, err)
	assert.Empty(t, stories)
}

func TestGenerateUserStories_EmptyDescription(t *testing.T) {
	m := &fakeChatModel{content: `[]`}
	g := newTestGenerator(m)

	for _, desc := range []string{"", "   ", "\n\t"} {
		stories, err := g.GenerateUserStories(context.Background(), desc)
		require.Error(t, err)
		assert.Nil(t, stories)
		assert.True(t, apperrors.IsCode(err, apperrors.CodeInvalidParam))
	}
	// 校验失败时不得发起任何模型调用
	assert.Equal(t, 0, m.callCount)
}

func TestGenerateUserStories_ProviderUnavailable(t *testing.T) {
	g := NewGenerator(&fakeFactory{err: errors.New("no such provider")}, testConfig())

	_, err := g.GenerateUserStories(context.Background(), "A project")
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.CodeLLMProviderError))
}

func TestGenerateUserStories_ModelCallFails(t *testing.T) {
	m := &fakeChatModel{err: errors.New("upstream timeout")}
	g := newTestGenerator(m)

	_, err := g.GenerateUserStories(context.Background(), "A project")
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.CodeLLMProviderError))
}

func TestGenerateUserStories_NoArrayInOutput(t *testing.T) {
	m := &fakeChatModel{content: "Sorry, I cannot help with that."}
	g := newTestGenerator(m)

	_, err := g.GenerateUserStories(context.Background(), "A project")
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.CodeGenerationParseFailed))
}

func TestGenerateUserStories_InvalidJSONInBrackets(t *testing.T) {
	m := &fakeChatModel{content: `[not valid json]`}
	g := newTestGenerator(m)

	_, err := g.GenerateUserStories(context.Background(), "A project")
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.CodeGenerationParseFailed))
}

func TestParseUserStories_Idempotent(t *testing.T) {
	raw := `noise [
  "As a user, I want to log in, so that my data is safe.",
  "not a story"
] trailing`

	first, err := ParseUserStories(raw)
	require.NoError(t, err)
	second, err := ParseUserStories(raw)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Len(t, first, 1)
}

func TestParseUserStories_NonStringElements(t *testing.T) {
	_, err := ParseUserStories(`[1, 2, 3]`)
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.CodeGenerationParseFailed))
}
