package entities

import (
	"errors"
	"time"
)

// Ошибки домена заметок.
var (
	ErrNoteNotFound    = errors.New("note not found")
	ErrInvalidCategory = errors.New("note references a non-existent category")
	ErrEmptyTitle      = errors.New("note title cannot be empty")
	ErrTitleTooLong    = errors.New("note title exceeds maximum length")
	ErrForbidden       = errors.New("operation is not permitted for this user")
)

// MaxTitleLength - максимальная длина заголовка заметки.
const MaxTitleLength = 200

// Note представляет заметку в обогащенной проекции: вместе с внешними
// ключами всегда заполняются имя автора и название категории.
type Note struct {
	ID         int64     `json:"id"`
	Title      string    `json:"title"`
	Preview    string    `json:"preview"`
	Rating     int       `json:"rating"`
	Downloads  int       `json:"downloads"`
	CreatedAt  time.Time `json:"created_at"`
	UserID     int64     `json:"user_id"`
	CategoryID int64     `json:"category_id"`
	Author     string    `json:"author"`
	Category   string    `json:"category"`
}

// NoteDetail представляет детальную проекцию заметки с комментариями.
type NoteDetail struct {
	Note
	Comments []*Comment `json:"comments"`
}
