package dto

import (
	"studynotes/internal/domain/entities"
)

// CreateCategoryRequest содержит данные для добавления категории.
type CreateCategoryRequest struct {
	Name string `json:"name" validate:"required,min=1,max=100"`
}

// CategoryResponse содержит публичную проекцию категории.
type CategoryResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// NewCategoryResponse строит ответ из доменной модели категории.
func NewCategoryResponse(category *entities.Category) *CategoryResponse {
	return &CategoryResponse{ID: category.ID, Name: category.Name}
}

// NewCategoryListResponse строит список ответов из доменных моделей.
func NewCategoryListResponse(categories []*entities.Category) []*CategoryResponse {
	responses := make([]*CategoryResponse, 0, len(categories))
	for _, category := range categories {
		responses = append(responses, NewCategoryResponse(category))
	}
	return responses
}
