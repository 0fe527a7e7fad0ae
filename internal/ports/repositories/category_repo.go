package repositories

import (
	"context"

	"studynotes/internal/domain/entities"
)

// CategoryRepository определяет интерфейс справочника категорий.
// Категории не обновляются и не удаляются: это справочные данные.
type CategoryRepository interface {
	Create(ctx context.Context, name string) (*entities.Category, error)

	FindByName(ctx context.Context, name string) (*entities.Category, error)

	List(ctx context.Context) ([]*entities.Category, error)
}
