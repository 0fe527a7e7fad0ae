package api

import (
	"context"

	"studynotes/internal/domain/entities"
)

// FavoriteUseCase определяет основной порт для работы с избранным.
type FavoriteUseCase interface {
	// Toggle переключает отметку и возвращает итоговое состояние.
	Toggle(ctx context.Context, userID, noteID int64) (bool, error)

	ListByUser(ctx context.Context, userID int64) ([]*entities.Note, error)
}
