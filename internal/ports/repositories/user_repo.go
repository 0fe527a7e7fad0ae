package repositories

import (
	"context"

	"studynotes/internal/domain/entities"
)

// UserRepository определяет интерфейс хранилища учетных данных пользователей.
type UserRepository interface {
	Create(ctx context.Context, user *entities.User) (*entities.User, error)

	FindByID(ctx context.Context, id int64) (*entities.User, error)

	FindByEmail(ctx context.Context, email string) (*entities.User, error)

	Update(ctx context.Context, user *entities.User) (*entities.User, error)
}
