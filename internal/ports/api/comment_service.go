package api

import (
	"context"

	"studynotes/internal/domain/entities"
)

// CommentUseCase определяет основной порт для работы с комментариями.
type CommentUseCase interface {
	Create(ctx context.Context, userID, noteID int64, content string) (*entities.Comment, error)

	ListByNote(ctx context.Context, noteID int64) ([]*entities.Comment, error)

	// Delete удаляет комментарий, если он принадлежит userID.
	Delete(ctx context.Context, userID, commentID int64) error
}
