package services

import (
	"errors"
	"time"
)

// Ошибки домена аутентификации.
var (
	ErrInvalidCredentials    = errors.New("invalid email or password")
	ErrEmailAlreadyExists    = errors.New("user with this email already exists")
	ErrTokenGenerationFailed = errors.New("failed to generate authentication token")
	ErrUnauthenticated       = errors.New("request is not authenticated")
)

// AuthToken представляет выданный токен доступа вместе с данными пользователя.
type AuthToken struct {
	UserID    int64
	Name      string
	Email     string
	Token     string
	ExpiresAt time.Time
}
