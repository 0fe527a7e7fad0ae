package api

import (
	"context"

	"studynotes/internal/domain/entities"
)

// UpdateNoteInput описывает частичное обновление заметки: заполненные
// поля накладываются на существующую строку.
type UpdateNoteInput struct {
	Title      *string
	Preview    *string
	Rating     *int
	Downloads  *int
	CategoryID *int64
}

// NoteUseCase определяет основной порт для операций с заметками.
type NoteUseCase interface {
	Create(ctx context.Context, userID, categoryID int64, title, preview string) (*entities.Note, error)

	Get(ctx context.Context, id int64) (*entities.NoteDetail, error)

	ListMine(ctx context.Context, userID int64) ([]*entities.Note, error)

	ListByCategory(ctx context.Context, categoryName string) ([]*entities.Note, error)

	Search(ctx context.Context, query string) ([]*entities.Note, error)

	Update(ctx context.Context, userID, noteID int64, input UpdateNoteInput) (*entities.Note, error)

	Delete(ctx context.Context, userID, noteID int64) error

	IncrementDownloads(ctx context.Context, noteID int64) (*entities.Note, error)

	UpdateRating(ctx context.Context, noteID int64, rating int) (*entities.Note, error)
}
