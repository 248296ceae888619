//go:build wireinject
// +build wireinject

// Package wire 提供依赖注入配置
package wire

import (
	"context"

	"github.com/google/wire"

	"teamtrack-api/internal/application/story"
	"teamtrack-api/internal/config"
	"teamtrack-api/internal/infrastructure/llm"
	"teamtrack-api/internal/infrastructure/persistence/postgres"
	"teamtrack-api/internal/infrastructure/persistence/redis"
	"teamtrack-api/internal/interfaces/http/handler"
	"teamtrack-api/internal/interfaces/http/router"
	"teamtrack-api/internal/workflow/port"
)

// InitializeApp 初始化整个应用（带路由器）
func InitializeApp(ctx context.Context, cfg *config.Config) (*router.Router, func(), error) {
	wire.Build(
		PostgresSet,
		RedisSet,
		LLMSet,
		StorySet,
		HandlerSet,
		wire.Struct(new(router.Handlers), "*"),
		router.New,
	)
	return nil, nil, nil
}

// PostgresSet PostgreSQL 提供者集合
var PostgresSet = wire.NewSet(
	ProvidePostgresClient,
	postgres.NewTxManager,
	postgres.NewUserRepository,
	postgres.NewProjectRepository,
	postgres.NewTaskRepository,
	postgres.NewUserStoryRepository,
)

// RedisSet Redis 提供者集合
var RedisSet = wire.NewSet(
	ProvideRedisClient,
	redis.NewCache,
	redis.NewRateLimiter,
)

// LLMSet LLM 提供者集合
var LLMSet = wire.NewSet(
	llm.NewEinoFactory,
	wire.Bind(new(port.ChatModelFactory), new(*llm.EinoFactory)),
)

// StorySet 用户故事应用层集合
var StorySet = wire.NewSet(
	story.NewGenerator,
	story.NewGateway,
)

// HandlerSet HTTP 处理器集合
var HandlerSet = wire.NewSet(
	handler.NewAuthHandler,
	handler.NewUserHandler,
	handler.NewProjectHandler,
	handler.NewTaskHandler,
	handler.NewStoryHandler,
	handler.NewHealthHandler,
)

// ProvidePostgresClient 提供 PostgreSQL 客户端
func ProvidePostgresClient(cfg *config.Config) (*postgres.Client, func(), error) {
	client, err := postgres.NewClient(&cfg.Database.Postgres)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() {
		client.Close()
	}
	return client, cleanup, nil
}

// ProvideRedisClient 提供 Redis 客户端
func ProvideRedisClient(cfg *config.Config) (*redis.Client, func(), error) {
	client, err := redis.NewClient(&cfg.Cache.Redis)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() {
		client.Close()
	}
	return client, cleanup, nil
}
