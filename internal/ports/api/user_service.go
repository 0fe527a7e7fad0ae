package api

import (
	"context"

	"studynotes/internal/domain/entities"
)

// UpdateProfileInput описывает частичное обновление профиля.
// Непустой Password повторно хэшируется перед сохранением.
type UpdateProfileInput struct {
	Name     *string
	Email    *string
	Password *string
}

// UserUseCase определяет основной порт для пользовательских операций.
type UserUseCase interface {
	GetProfile(ctx context.Context, userID int64) (*entities.User, error)

	UpdateProfile(ctx context.Context, userID int64, input UpdateProfileInput) (*entities.User, error)
}
