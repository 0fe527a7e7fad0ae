// Package auth содержит HTTP обработчики регистрации, входа и профиля.
package auth

import (
	"fmt"
	"net/http"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"studynotes/internal/adapters/http/dto"
	"studynotes/internal/adapters/http/httperr"
	"studynotes/internal/adapters/http/middleware"
	"studynotes/internal/ports/api"
	"studynotes/pkg/logger"
)

// Константы для логирования.
const (
	LogHandlerRegister      = "auth handler: register"
	LogHandlerLogin         = "auth handler: login"
	LogHandlerGetProfile    = "auth handler: get profile"
	LogHandlerUpdateProfile = "auth handler: update profile"

	ErrorInvalidRequest       = "invalid request"
	ErrorFailedToServeRequest = "failed to serve request"
	ErrorUnauthorized         = "unauthorized"
)

// Вспомогательная функция для обработки ошибок HTTP. Ответ с ошибкой
// завершает обработку запроса, поэтому наружу возвращается nil.
func sendErrorResponse(ctx fiber.Ctx, statusCode int, message string) error {
	if err := ctx.Status(statusCode).JSON(fiber.Map{
		"error": message,
	}); err != nil {
		return fmt.Errorf("error sending response: %w", err)
	}
	return nil
}

// Handler содержит HTTP обработчики аутентификации и профиля.
type Handler struct {
	authUseCase api.AuthUseCase
	userUseCase api.UserUseCase
}

// NewHandler создает новый экземпляр обработчика аутентификации.
func NewHandler(authUseCase api.AuthUseCase, userUseCase api.UserUseCase) *Handler {
	return &Handler{
		authUseCase: authUseCase,
		userUseCase: userUseCase,
	}
}

// Register обрабатывает запрос на регистрацию нового пользователя.
func (h *Handler) Register(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx)
	log.Info(requestCtx, LogHandlerRegister)

	var req dto.RegisterRequest
	if err := ctx.Bind().JSON(&req); err != nil {
		log.Error(requestCtx, ErrorInvalidRequest, zap.Error(err))
		return sendErrorResponse(ctx, http.StatusBadRequest, ErrorInvalidRequest)
	}

	if req.Email == "" || req.Name == "" || req.Password == "" {
		return sendErrorResponse(ctx, http.StatusBadRequest, "name, email and password are required")
	}

	token, err := h.authUseCase.Register(requestCtx, req.Name, req.Email, req.Password)
	if err != nil {
		log.Error(requestCtx, ErrorFailedToServeRequest, zap.Error(err))
		return sendErrorResponse(ctx, httperr.StatusOf(err), httperr.Message(err))
	}

	if err := ctx.Status(http.StatusCreated).JSON(dto.NewAuthResponse(token)); err != nil {
		return fmt.Errorf("sending response: %w", err)
	}
	return nil
}

// Login обрабатывает запрос на вход пользователя.
func (h *Handler) Login(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx)
	log.Info(requestCtx, LogHandlerLogin)

	var req dto.LoginRequest
	if err := ctx.Bind().JSON(&req); err != nil {
		log.Error(requestCtx, ErrorInvalidRequest, zap.Error(err))
		return sendErrorResponse(ctx, http.StatusBadRequest, ErrorInvalidRequest)
	}

	if req.Email == "" || req.Password == "" {
		return sendErrorResponse(ctx, http.StatusBadRequest, "email and password are required")
	}

	token, err := h.authUseCase.Login(requestCtx, req.Email, req.Password)
	if err != nil {
		log.Error(requestCtx, ErrorFailedToServeRequest, zap.Error(err))
		return sendErrorResponse(ctx, httperr.StatusOf(err), httperr.Message(err))
	}

	if err := ctx.Status(http.StatusOK).JSON(dto.NewAuthResponse(token)); err != nil {
		return fmt.Errorf("sending response: %w", err)
	}
	return nil
}

// GetProfile обрабатывает запрос на получение профиля пользователя.
func (h *Handler) GetProfile(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx)
	log.Info(requestCtx, LogHandlerGetProfile)

	userID, ok := middleware.UserID(ctx)
	if !ok {
		return sendErrorResponse(ctx, http.StatusUnauthorized, ErrorUnauthorized)
	}

	user, err := h.userUseCase.GetProfile(requestCtx, userID)
	if err != nil {
		log.Error(requestCtx, ErrorFailedToServeRequest, zap.Error(err))
		return sendErrorResponse(ctx, httperr.StatusOf(err), httperr.Message(err))
	}

	if err := ctx.Status(http.StatusOK).JSON(dto.NewUserProfileResponse(user)); err != nil {
		return fmt.Errorf("sending response: %w", err)
	}
	return nil
}

// UpdateProfile обрабатывает запрос на частичное обновление профиля.
func (h *Handler) UpdateProfile(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx)
	log.Info(requestCtx, LogHandlerUpdateProfile)

	userID, ok := middleware.UserID(ctx)
	if !ok {
		return sendErrorResponse(ctx, http.StatusUnauthorized, ErrorUnauthorized)
	}

	var req dto.UpdateProfileRequest
	if err := ctx.Bind().JSON(&req); err != nil {
		log.Error(requestCtx, ErrorInvalidRequest, zap.Error(err))
		return sendErrorResponse(ctx, http.StatusBadRequest, ErrorInvalidRequest)
	}

	user, err := h.userUseCase.UpdateProfile(requestCtx, userID, api.UpdateProfileInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		log.Error(requestCtx, ErrorFailedToServeRequest, zap.Error(err))
		return sendErrorResponse(ctx, httperr.StatusOf(err), httperr.Message(err))
	}

	if err := ctx.Status(http.StatusOK).JSON(dto.NewUserProfileResponse(user)); err != nil {
		return fmt.Errorf("sending response: %w", err)
	}
	return nil
}
