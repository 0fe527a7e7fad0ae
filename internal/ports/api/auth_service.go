package api

import (
	"context"

	"studynotes/internal/domain/services"
)

// AuthUseCase определяет основной порт для операций аутентификации.
type AuthUseCase interface {
	Register(ctx context.Context, name, email, password string) (*services.AuthToken, error)

	Login(ctx context.Context, email, password string) (*services.AuthToken, error)
}
