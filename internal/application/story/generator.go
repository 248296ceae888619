// Package story 实现 AI 用户故事的生成与落库
package story

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"

	"teamtrack-api/internal/config"
	"teamtrack-api/internal/domain/entity"
	"teamtrack-api/internal/workflow/port"
	"teamtrack-api/pkg/errors"
	"teamtrack-api/pkg/logger"
	"teamtrack-api/pkg/metrics"
)

const systemPrompt = "You are a senior product manager expert at writing user stories. " +
	"Generate clear, concise user stories that follow agile best practices."

const userPromptTemplate = `Generate user stories for the following project description: "%s"

Return ONLY a JSON array of user stories in this exact format:
[
  "As a [role], I want to [action], so that [benefit].",
  "As a [role], I want to [action], so that [benefit]."
]

Generate 5-8 user stories. Make sure each story follows the exact format and is relevant to the project.`

// Generator 用户故事生成器
// 将自由文本的项目描述转换为满足三标记谓词的故事列表。
type Generator struct {
	factory port.ChatModelFactory
	cfg     *config.LLMConfig
}

// NewGenerator 创建用户故事生成器
func NewGenerator(factory port.ChatModelFactory, cfg *config.Config) *Generator {
	return &Generator{
		factory: factory,
		cfg:     &cfg.LLM,
	}
}

// GenerateUserStories 生成用户故事
// 返回的切片可能为空（模型输出全部被过滤掉），这不是错误；
// 每个返回项都满足 entity.IsWellFormedStory。
func (g *Generator) GenerateUserStories(ctx context.Context, projectDescription string) ([]string, error) {
	description := strings.TrimSpace(projectDescription)
	if description == "" {
		// 入参校验失败，不发起任何网络调用
		return nil, errors.New(errors.CodeInvalidParam, "project description is required")
	}

	providerName := g.cfg.DefaultProvider
	providerCfg := g.cfg.Providers[providerName]

	chatModel, err := g.factory.Get(ctx, providerName)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeLLMProviderError, "llm provider unavailable")
	}

	msgs := []*schema.Message{
		schema.SystemMessage(systemPrompt),
		schema.UserMessage(fmt.Sprintf(userPromptTemplate, description)),
	}

	opts := []model.Option{
		model.WithTemperature(float32(providerCfg.Temperature)),
		model.WithMaxTokens(providerCfg.MaxTokens),
	}

	start := time.Now()
	out, err := chatModel.Generate(ctx, msgs, opts...)
	duration := time.Since(start).Seconds()
	metrics.LLMCallDuration.WithLabelValues(providerName, providerCfg.Model).Observe(duration)

	if err != nil {
		metrics.LLMCallTotal.WithLabelValues(providerName, providerCfg.Model, "error").Inc()
		metrics.StoryGenerationTotal.WithLabelValues("provider_error").Inc()
		logger.Error(ctx, "llm call failed", err, "provider", providerName, "model", providerCfg.Model)
		return nil, errors.Wrap(err, errors.CodeLLMProviderError, "llm call failed")
	}
	metrics.LLMCallTotal.WithLabelValues(providerName, providerCfg.Model, "success").Inc()

	if out != nil && out.ResponseMeta != nil && out.ResponseMeta.Usage != nil {
		metrics.LLMTokensUsed.WithLabelValues(providerName, providerCfg.Model, "prompt").
			Add(float64(out.ResponseMeta.Usage.PromptTokens))
		metrics.LLMTokensUsed.WithLabelValues(providerName, providerCfg.Model, "completion").
			Add(float64(out.ResponseMeta.Usage.CompletionTokens))
	}

	var raw string
	if out != nil {
		raw = out.Content
	}

	stories, err := ParseUserStories(raw)
	if err != nil {
		metrics.StoryGenerationTotal.WithLabelValues("parse_error").Inc()
		logger.Error(ctx, "failed to parse user stories from llm output", err,
			"provider", providerName, "output_len", len(raw))
		return nil, err
	}

	metrics.StoryGenerationTotal.WithLabelValues("success").Inc()
	metrics.StoryGenerationDuration.Observe(duration)
	metrics.StoriesGenerated.Observe(float64(len(stories)))

	logger.Info(ctx, "user stories generated", "count", len(stories), "provider", providerName)
	return stories, nil
}

// ParseUserStories 从模型原始输出中提取并过滤用户故事。
// 对同一段输入反复调用结果相同。
func ParseUserStories(raw string) ([]string, error) {
	span, ok := ExtractJSONArray(raw)
	if !ok {
		return nil, errors.New(errors.CodeGenerationParseFailed, "no JSON array found in model output")
	}

	var parsed []string
	if err := json.Unmarshal([]byte(span), &parsed); err != nil {
		return nil, errors.Wrap(err, errors.CodeGenerationParseFailed, "failed to parse user stories json")
	}

	// 不满足三标记谓词的条目直接丢弃；过滤后数量低于请求的 5-8 条也照常接受
	stories := make([]string, 0, len(parsed))
	for _, s := range parsed {
		if entity.IsWellFormedStory(s) {
			stories = append(stories, s)
		}
	}
	return stories, nil
}
