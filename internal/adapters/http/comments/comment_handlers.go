// Package comments содержит HTTP обработчики для комментариев.
package comments

import (
	"fmt"
	"net/http"
	"strconv"

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
	LogHandlerListByNote = "comment handler: list by note"
	LogHandlerCreate     = "comment handler: create"
	LogHandlerDelete     = "comment handler: delete"

	ErrorInvalidRequest       = "invalid request"
	ErrorInvalidID            = "invalid id"
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

// Handler содержит HTTP обработчики комментариев.
type Handler struct {
	commentUseCase api.CommentUseCase
}

// NewHandler создает новый экземпляр обработчика комментариев.
func NewHandler(commentUseCase api.CommentUseCase) *Handler {
	return &Handler{commentUseCase: commentUseCase}
}

// parseID извлекает числовой параметр маршрута.
func parseID(ctx fiber.Ctx, name string) (int64, error) {
	id, err := strconv.ParseInt(ctx.Params(name), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parsing %s: %w", name, err)
	}
	if id <= 0 {
		return 0, fmt.Errorf("parsing %s: non-positive value %d", name, id)
	}
	return id, nil
}

// ListByNote возвращает комментарии заметки.
func (h *Handler) ListByNote(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx)
	log.Info(requestCtx, LogHandlerListByNote)

	noteID, err := parseID(ctx, "noteId")
	if err != nil {
		return sendErrorResponse(ctx, http.StatusBadRequest, ErrorInvalidID)
	}

	comments, err := h.commentUseCase.ListByNote(requestCtx, noteID)
	if err != nil {
		log.Error(requestCtx, ErrorFailedToServeRequest, zap.Error(err))
		return sendErrorResponse(ctx, httperr.StatusOf(err), httperr.Message(err))
	}

	if err := ctx.Status(http.StatusOK).JSON(dto.NewCommentListResponse(comments)); err != nil {
		return fmt.Errorf("sending response: %w", err)
	}
	return nil
}

// Create добавляет комментарий к заметке.
func (h *Handler) Create(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx)
	log.Info(requestCtx, LogHandlerCreate)

	userID, ok := middleware.UserID(ctx)
	if !ok {
		return sendErrorResponse(ctx, http.StatusUnauthorized, ErrorUnauthorized)
	}

	var req dto.CreateCommentRequest
	if err := ctx.Bind().JSON(&req); err != nil {
		log.Error(requestCtx, ErrorInvalidRequest, zap.Error(err))
		return sendErrorResponse(ctx, http.StatusBadRequest, ErrorInvalidRequest)
	}

	comment, err := h.commentUseCase.Create(requestCtx, userID, req.NoteID, req.Content)
	if err != nil {
		log.Error(requestCtx, ErrorFailedToServeRequest, zap.Error(err))
		return sendErrorResponse(ctx, httperr.StatusOf(err), httperr.Message(err))
	}

	if err := ctx.Status(http.StatusCreated).JSON(dto.NewCommentResponse(comment)); err != nil {
		return fmt.Errorf("sending response: %w", err)
	}
	return nil
}

// Delete удаляет комментарий. Разрешено только его автору.
func (h *Handler) Delete(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx)
	log.Info(requestCtx, LogHandlerDelete)

	userID, ok := middleware.UserID(ctx)
	if !ok {
		return sendErrorResponse(ctx, http.StatusUnauthorized, ErrorUnauthorized)
	}

	commentID, err := parseID(ctx, "id")
	if err != nil {
		return sendErrorResponse(ctx, http.StatusBadRequest, ErrorInvalidID)
	}

	if err := h.commentUseCase.Delete(requestCtx, userID, commentID); err != nil {
		log.Error(requestCtx, ErrorFailedToServeRequest, zap.Error(err))
		return sendErrorResponse(ctx, httperr.StatusOf(err), httperr.Message(err))
	}

	if err := ctx.Status(http.StatusOK).JSON(fiber.Map{
		"message": "comment deleted",
	}); err != nil {
		return fmt.Errorf("sending response: %w", err)
	}
	return nil
}
