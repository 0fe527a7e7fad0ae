// Package categories содержит HTTP обработчики справочника категорий.
package categories

import (
	"fmt"
	"net/http"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"studynotes/internal/adapters/http/dto"
	"studynotes/internal/adapters/http/httperr"
	"studynotes/internal/ports/api"
	"studynotes/pkg/logger"
)

// Константы для логирования.
const (
	LogHandlerList   = "category handler: list"
	LogHandlerCreate = "category handler: create"

	ErrorInvalidRequest       = "invalid request"
	ErrorFailedToServeRequest = "failed to serve request"
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

// Handler содержит HTTP обработчики категорий.
type Handler struct {
	categoryUseCase api.CategoryUseCase
}

// NewHandler создает новый экземпляр обработчика категорий.
func NewHandler(categoryUseCase api.CategoryUseCase) *Handler {
	return &Handler{categoryUseCase: categoryUseCase}
}

// List возвращает все категории справочника.
func (h *Handler) List(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx)
	log.Info(requestCtx, LogHandlerList)

	categories, err := h.categoryUseCase.List(requestCtx)
	if err != nil {
		log.Error(requestCtx, ErrorFailedToServeRequest, zap.Error(err))
		return sendErrorResponse(ctx, httperr.StatusOf(err), httperr.Message(err))
	}

	if err := ctx.Status(http.StatusOK).JSON(dto.NewCategoryListResponse(categories)); err != nil {
		return fmt.Errorf("sending response: %w", err)
	}
	return nil
}

// Create добавляет категорию в справочник.
func (h *Handler) Create(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx)
	log.Info(requestCtx, LogHandlerCreate)

	var req dto.CreateCategoryRequest
	if err := ctx.Bind().JSON(&req); err != nil {
		log.Error(requestCtx, ErrorInvalidRequest, zap.Error(err))
		return sendErrorResponse(ctx, http.StatusBadRequest, ErrorInvalidRequest)
	}

	category, err := h.categoryUseCase.Create(requestCtx, req.Name)
	if err != nil {
		log.Error(requestCtx, ErrorFailedToServeRequest, zap.Error(err))
		return sendErrorResponse(ctx, httperr.StatusOf(err), httperr.Message(err))
	}

	if err := ctx.Status(http.StatusCreated).JSON(dto.NewCategoryResponse(category)); err != nil {
		return fmt.Errorf("sending response: %w", err)
	}
	return nil
}
