package entities

import "errors"

// Ошибки домена категорий.
var (
	ErrCategoryNotFound      = errors.New("category not found")
	ErrCategoryAlreadyExists = errors.New("category with this name already exists")
	ErrEmptyCategoryName     = errors.New("category name cannot be empty")
)

// Category представляет справочную категорию заметок.
type Category struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}
