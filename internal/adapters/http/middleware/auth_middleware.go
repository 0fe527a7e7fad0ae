// Package middleware содержит промежуточное ПО для HTTP обработчиков.
package middleware

import (
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"studynotes/internal/ports/services"
	"studynotes/pkg/logger"
)

// Ключи Locals, устанавливаемые после успешной аутентификации.
const (
	LocalsUserID    = "userID"
	LocalsUserEmail = "userEmail"
)

// Константы для логирования.
const (
	LogAuthMiddleware = "auth middleware"

	ErrorNoAuthHeader       = "no authorization header provided"
	ErrorInvalidTokenFormat = "invalid token format"
	ErrorInvalidToken       = "invalid or expired token"
)

// Вспомогательная функция для отказа в аутентификации. Ответ 401
// завершает обработку запроса, поэтому наружу возвращается nil.
func sendUnauthorized(ctx fiber.Ctx, message string) error {
	if err := ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
		"error": message,
	}); err != nil {
		return fmt.Errorf("error sending response: %w", err)
	}
	return nil
}

// NewAuthMiddleware создает новое промежуточное ПО для проверки аутентификации.
// Валидный Bearer токен кладет идентификатор и email пользователя в Locals.
func NewAuthMiddleware(tokenService services.TokenService) fiber.Handler {
	return func(ctx fiber.Ctx) error {
		requestCtx := ctx.Context()
		log := logger.Log(requestCtx).With(zap.String("middleware", "auth"))
		log.Debug(requestCtx, LogAuthMiddleware)

		authHeader := ctx.Get("Authorization")
		if authHeader == "" {
			log.Debug(requestCtx, ErrorNoAuthHeader)
			return sendUnauthorized(ctx, ErrorNoAuthHeader)
		}

		if !strings.HasPrefix(authHeader, "Bearer ") {
			log.Debug(requestCtx, ErrorInvalidTokenFormat)
			return sendUnauthorized(ctx, ErrorInvalidTokenFormat)
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		claims, err := tokenService.ValidateToken(requestCtx, tokenString)
		if err != nil {
			log.Debug(requestCtx, ErrorInvalidToken, zap.Error(err))
			return sendUnauthorized(ctx, ErrorInvalidToken)
		}

		ctx.Locals(LocalsUserID, claims.UserID)
		ctx.Locals(LocalsUserEmail, claims.Email)

		return ctx.Next()
	}
}

// UserID извлекает идентификатор аутентифицированного пользователя из Locals.
func UserID(ctx fiber.Ctx) (int64, bool) {
	userID, ok := ctx.Locals(LocalsUserID).(int64)
	return userID, ok
}
