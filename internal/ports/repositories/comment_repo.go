package repositories

import (
	"context"

	"studynotes/internal/domain/entities"
)

// CommentRepository определяет интерфейс журнала комментариев.
type CommentRepository interface {
	Create(ctx context.Context, comment *entities.Comment) (*entities.Comment, error)

	FindByID(ctx context.Context, id int64) (*entities.Comment, error)

	ListByNote(ctx context.Context, noteID int64) ([]*entities.Comment, error)

	Delete(ctx context.Context, id int64) error
}
