// Package cache определяет интерфейс кэширования.
package cache

import (
	"context"
	"time"
)

// Cache определяет интерфейс для кэширования ответов чтения.
// Кэш является мягким: его недоступность не должна превращаться
// в ошибку операции.
type Cache interface {
	Get(ctx context.Context, key string) (string, error)

	Set(ctx context.Context, key string, value string, ttl time.Duration) error

	Delete(ctx context.Context, key string) error

	Close() error
}
