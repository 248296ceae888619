package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"gorm.io/gorm"

	"teamtrack-api/internal/domain/repository"
	"teamtrack-api/pkg/logger"
)

// Querier 统一的查询接口，兼容 *sql.DB 和 *sql.Tx
type Querier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// getQuerier 从上下文提取事务，没有则返回原始连接
func getQuerier(ctx context.Context, db *sql.DB) Querier {
	if tx, ok := ctx.Value(repository.TxKey{}).(*sql.Tx); ok {
		return tx
	}
	return db
}

// getDB GORM 查询入口，事务中则复用事务句柄
func getDB(ctx context.Context, db *gorm.DB) *gorm.DB {
	if tx, ok := ctx.Value(repository.TxKey{}).(*gorm.DB); ok {
		return tx.WithContext(ctx)
	}
	return db.WithContext(ctx)
}

// TxManager 事务管理器
type TxManager struct {
	client *Client
}

// NewTxManager 创建事务管理器
func NewTxManager(client *Client) repository.Transactor {
	return &TxManager{client: client}
}

// WithTransaction 在事务中执行回调，事务通过 context 向下传递
func (m *TxManager) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	ctx, span := tracer.Start(ctx, "postgres.WithTransaction")
	defer span.End()

	tx, err := m.client.sqlDB.BeginTx(ctx, nil)
	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	txCtx := context.WithValue(ctx, repository.TxKey{}, tx)

	defer func() {
		if p := recover(); p != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				logger.Error(ctx, "failed to rollback after panic", rbErr)
			}
			panic(p)
		}
	}()

	if err := fn(txCtx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			logger.Error(ctx, "failed to rollback transaction", rbErr)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}
