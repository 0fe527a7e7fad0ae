package dto

import (
	"time"

	"studynotes/internal/domain/entities"
)

// CreateNoteRequest содержит данные для публикации заметки.
type CreateNoteRequest struct {
	Title      string `json:"title" validate:"required,max=200"`
	Preview    string `json:"preview"`
	CategoryID int64  `json:"category_id" validate:"required"`
}

// UpdateNoteRequest содержит частичное обновление заметки.
type UpdateNoteRequest struct {
	Title      *string `json:"title"`
	Preview    *string `json:"preview"`
	Rating     *int    `json:"rating"`
	Downloads  *int    `json:"downloads"`
	CategoryID *int64  `json:"category_id"`
}

// RateNoteRequest содержит новое значение рейтинга.
type RateNoteRequest struct {
	Rating int `json:"rating" validate:"min=0"`
}

// NoteResponse содержит публичную проекцию заметки.
type NoteResponse struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Author    string    `json:"author"`
	Rating    int       `json:"rating"`
	Downloads int       `json:"downloads"`
	Preview   string    `json:"preview"`
	Category  string    `json:"category"`
	CreatedAt time.Time `json:"created_at"`
}

// NewNoteResponse строит ответ из доменной проекции заметки.
func NewNoteResponse(note *entities.Note) *NoteResponse {
	return &NoteResponse{
		ID:        note.ID,
		Title:     note.Title,
		Author:    note.Author,
		Rating:    note.Rating,
		Downloads: note.Downloads,
		Preview:   note.Preview,
		Category:  note.Category,
		CreatedAt: note.CreatedAt,
	}
}

// NewNoteListResponse строит список ответов из доменных проекций.
func NewNoteListResponse(notes []*entities.Note) []*NoteResponse {
	responses := make([]*NoteResponse, 0, len(notes))
	for _, note := range notes {
		responses = append(responses, NewNoteResponse(note))
	}
	return responses
}

// NoteDetailResponse содержит заметку вместе с комментариями.
type NoteDetailResponse struct {
	NoteResponse
	Comments []*CommentResponse `json:"comments"`
}

// NewNoteDetailResponse строит детальный ответ из доменной проекции.
func NewNoteDetailResponse(detail *entities.NoteDetail) *NoteDetailResponse {
	return &NoteDetailResponse{
		NoteResponse: *NewNoteResponse(&detail.Note),
		Comments:     NewCommentListResponse(detail.Comments),
	}
}

// FavoriteResponse содержит итоговое состояние отметки избранного.
type FavoriteResponse struct {
	NoteID   int64 `json:"note_id"`
	Favorite bool  `json:"favorite"`
}
