package postgres

import (
	"context"
	"fmt"

	"bloglist/internal/ports/repositories"
)

const resetQuery = `TRUNCATE user_blogs, blogs, users`

// RepositoryFactory создает все необходимые репозитории для работы с PostgreSQL.
type RepositoryFactory struct {
	pool      PgxPoolInterface
	userRepo  repositories.UserRepository
	blogRepo  repositories.BlogRepository
	txManager *TxManager
}

// NewRepositoryFactory создает новую фабрику репозиториев.
func NewRepositoryFactory(pool PgxPoolInterface) *RepositoryFactory {
	return &RepositoryFactory{
		pool:      pool,
		userRepo:  NewUserRepository(pool),
		blogRepo:  NewBlogRepository(pool),
		txManager: NewTxManager(pool),
	}
}

// UserRepository возвращает репозиторий пользователей.
func (f *RepositoryFactory) UserRepository() repositories.UserRepository {
	return f.userRepo
}

// BlogRepository возвращает репозиторий блогов.
func (f *RepositoryFactory) BlogRepository() repositories.BlogRepository {
	return f.blogRepo
}

// Transactor возвращает менеджер транзакций.
func (f *RepositoryFactory) Transactor() repositories.Transactor {
	return f.txManager
}

// Reset удаляет все данные.
func (f *RepositoryFactory) Reset(ctx context.Context) error {
	if _, err := querier(ctx, f.pool).Exec(ctx, resetQuery); err != nil {
		return fmt.Errorf("error resetting storage: %w", err)
	}
	return nil
}

// Ping проверяет соединение с базой данных.
func (f *RepositoryFactory) Ping(ctx context.Context) error {
	return f.pool.Ping(ctx)
}
