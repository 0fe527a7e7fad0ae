package services

import (
	"context"
	"time"

	domain "studynotes/internal/domain/services"
)

// TokenService определяет интерфейс для операций с токенами доступа.
// Проверка токена не обращается к хранилищу: подпись и срок действия
// полностью определяют валидность.
type TokenService interface {
	GenerateToken(ctx context.Context, userID int64, email string) (string, time.Time, error)

	ValidateToken(ctx context.Context, token string) (*domain.JWTClaims, error)
}
