package api

import (
	"context"

	"studynotes/internal/domain/entities"
)

// CategoryUseCase определяет основной порт для работы со справочником категорий.
type CategoryUseCase interface {
	Create(ctx context.Context, name string) (*entities.Category, error)

	List(ctx context.Context) ([]*entities.Category, error)
}
