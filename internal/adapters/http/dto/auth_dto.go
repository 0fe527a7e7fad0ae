// Package dto содержит объекты передачи данных HTTP слоя.
package dto

import (
	"time"

	"studynotes/internal/domain/entities"
	"studynotes/internal/domain/services"
)

// RegisterRequest содержит данные для регистрации пользователя.
type RegisterRequest struct {
	Name     string `json:"name" validate:"required,min=1,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

// LoginRequest содержит данные для входа пользователя.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// AuthResponse содержит данные о выданном токене доступа.
type AuthResponse struct {
	UserID    int64     `json:"user_id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// NewAuthResponse строит ответ из доменной модели выданного токена.
func NewAuthResponse(token *services.AuthToken) *AuthResponse {
	return &AuthResponse{
		UserID:    token.UserID,
		Name:      token.Name,
		Email:     token.Email,
		Token:     token.Token,
		ExpiresAt: token.ExpiresAt,
	}
}

// UserProfileResponse содержит данные профиля пользователя.
type UserProfileResponse struct {
	UserID    int64     `json:"user_id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// NewUserProfileResponse строит ответ из доменной модели пользователя.
func NewUserProfileResponse(user *entities.User) *UserProfileResponse {
	return &UserProfileResponse{
		UserID:    user.ID,
		Name:      user.Name,
		Email:     user.Email,
		CreatedAt: user.CreatedAt,
	}
}

// UpdateProfileRequest содержит частичное обновление профиля.
type UpdateProfileRequest struct {
	Name     *string `json:"name"`
	Email    *string `json:"email" validate:"omitempty,email"`
	Password *string `json:"password" validate:"omitempty,min=8"`
}
