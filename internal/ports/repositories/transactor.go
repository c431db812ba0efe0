package repositories

import "context"

// Transactor выполняет fn в рамках одной транзакции хранилища.
// Репозитории, вызванные с переданным ctx, участвуют в этой транзакции.
type Transactor interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// Resetter очищает хранилище. Используется только служебными маршрутами тестов.
type Resetter interface {
	Reset(ctx context.Context) error
}

// Pinger проверяет доступность хранилища.
type Pinger interface {
	Ping(ctx context.Context) error
}
