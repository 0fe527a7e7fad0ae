package repositories

import (
	"context"

	"studynotes/internal/domain/entities"
)

// NoteRepository определяет интерфейс хранилища заметок. Все методы
// чтения возвращают обогащенную проекцию: имя автора и название
// категории всегда заполнены.
type NoteRepository interface {
	Create(ctx context.Context, note *entities.Note) (*entities.Note, error)

	FindByID(ctx context.Context, id int64) (*entities.Note, error)

	// FindDetailByID дополнительно подгружает комментарии заметки.
	FindDetailByID(ctx context.Context, id int64) (*entities.NoteDetail, error)

	ListByAuthor(ctx context.Context, userID int64) ([]*entities.Note, error)

	ListByCategory(ctx context.Context, categoryID int64) ([]*entities.Note, error)

	Search(ctx context.Context, query string) ([]*entities.Note, error)

	Update(ctx context.Context, note *entities.Note) (*entities.Note, error)

	Delete(ctx context.Context, id int64) error

	IncrementDownloads(ctx context.Context, id int64) (*entities.Note, error)

	UpdateRating(ctx context.Context, id int64, rating int) (*entities.Note, error)
}
