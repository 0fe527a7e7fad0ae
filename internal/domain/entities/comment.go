package entities

import (
	"errors"
	"time"
)

// Ошибки домена комментариев.
var (
	ErrCommentNotFound = errors.New("comment not found")
	ErrEmptyComment    = errors.New("comment content cannot be empty")
)

// Comment представляет комментарий к заметке. Author заполняется
// именем автора при чтении.
type Comment struct {
	ID        int64     `json:"id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
	UserID    int64     `json:"user_id"`
	NoteID    int64     `json:"note_id"`
	Author    string    `json:"author"`
}
