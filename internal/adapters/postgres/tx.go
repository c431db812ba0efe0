// Package postgres реализует хранилища пользователей и блогов поверх PostgreSQL.
package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"

	"bloglist/internal/ports/repositories"
	"bloglist/pkg/logger"
)

// Querier - общий набор операций пула и транзакции.
type Querier interface {
	QueryRow(ctx context.Context, query string, args ...interface{}) pgx.Row
	Exec(ctx context.Context, query string, args ...interface{}) (pgconn.CommandTag, error)
	Query(ctx context.Context, query string, args ...interface{}) (pgx.Rows, error)
}

// PgxPoolInterface - подмножество pgxpool.Pool, которое используют репозитории.
type PgxPoolInterface interface {
	Querier
	Begin(ctx context.Context) (pgx.Tx, error)
	Ping(ctx context.Context) error
	Close()
}

const (
	msgErrRollback = "failed to rollback transaction"

	errCtxBeginTx  = "beginning transaction"
	errCtxCommitTx = "committing transaction"
)

type txKey struct{}

// querier возвращает транзакцию из контекста или пул.
func querier(ctx context.Context, pool PgxPoolInterface) Querier {
	if tx, ok := ctx.Value(txKey{}).(pgx.Tx); ok {
		return tx
	}
	return pool
}

// TxManager выполняет функции в транзакции, которую подхватывают репозитории.
type TxManager struct {
	pool PgxPoolInterface
}

// NewTxManager создает менеджер транзакций.
func NewTxManager(pool PgxPoolInterface) *TxManager {
	return &TxManager{pool: pool}
}

var _ repositories.Transactor = (*TxManager)(nil)

// WithinTransaction выполняет fn в транзакции. Вложенный вызов использует внешнюю транзакцию.
func (m *TxManager) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) (err error) {
	if _, ok := ctx.Value(txKey{}).(pgx.Tx); ok {
		return fn(ctx)
	}

	tx, err := m.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("%s: %w", errCtxBeginTx, err)
	}

	defer func() {
		if p := recover(); p != nil {
			rollback(ctx, tx)
			panic(p)
		}
		if err != nil {
			rollback(ctx, tx)
		}
	}()

	if err = fn(context.WithValue(ctx, txKey{}, tx)); err != nil {
		return err
	}

	if err = tx.Commit(ctx); err != nil {
		return fmt.Errorf("%s: %w", errCtxCommitTx, err)
	}
	return nil
}

func rollback(ctx context.Context, tx pgx.Tx) {
	if err := tx.Rollback(context.WithoutCancel(ctx)); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
		logger.Log(ctx).Error(ctx, msgErrRollback, zap.Error(err))
	}
}

// Коды ошибок PostgreSQL, которые различают репозитории.
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

func hasPgCode(err error, code string) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == code
}
