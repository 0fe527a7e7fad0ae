package repositories

import (
	"context"

	"studynotes/internal/domain/entities"
)

// FavoriteRepository определяет интерфейс журнала избранного.
// Toggle - единственный путь мутации: отдельных операций создания
// и удаления по идентификатору нет.
type FavoriteRepository interface {
	// Toggle атомарно переключает отметку (userID, noteID) и возвращает
	// итоговое состояние: true, если заметка теперь в избранном.
	Toggle(ctx context.Context, userID, noteID int64) (bool, error)

	ListByUser(ctx context.Context, userID int64) ([]*entities.Note, error)
}
