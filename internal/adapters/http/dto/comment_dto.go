package dto

import (
	"time"

	"studynotes/internal/domain/entities"
)

// CreateCommentRequest содержит данные для добавления комментария.
type CreateCommentRequest struct {
	NoteID  int64  `json:"note_id" validate:"required"`
	Content string `json:"content" validate:"required"`
}

// CommentResponse содержит публичную проекцию комментария.
type CommentResponse struct {
	ID        int64     `json:"id"`
	Content   string    `json:"content"`
	Author    string    `json:"author"`
	NoteID    int64     `json:"note_id"`
	CreatedAt time.Time `json:"created_at"`
}

// NewCommentResponse строит ответ из доменной модели комментария.
func NewCommentResponse(comment *entities.Comment) *CommentResponse {
	return &CommentResponse{
		ID:        comment.ID,
		Content:   comment.Content,
		Author:    comment.Author,
		NoteID:    comment.NoteID,
		CreatedAt: comment.CreatedAt,
	}
}

// NewCommentListResponse строит список ответов из доменных моделей.
func NewCommentListResponse(comments []*entities.Comment) []*CommentResponse {
	responses := make([]*CommentResponse, 0, len(comments))
	for _, comment := range comments {
		responses = append(responses, NewCommentResponse(comment))
	}
	return responses
}
