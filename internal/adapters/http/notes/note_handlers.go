// Package notes содержит HTTP обработчики для заметок и избранного.
package notes

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
	LogHandlerListMine       = "note handler: list mine"
	LogHandlerSearch         = "note handler: search"
	LogHandlerListByCategory = "note handler: list by category"
	LogHandlerListFavorites  = "note handler: list favorites"
	LogHandlerGet            = "note handler: get"
	LogHandlerCreate         = "note handler: create"
	LogHandlerUpdate         = "note handler: update"
	LogHandlerDelete         = "note handler: delete"
	LogHandlerToggleFavorite = "note handler: toggle favorite"
	LogHandlerDownload       = "note handler: download"
	LogHandlerRate           = "note handler: rate"

	ErrorInvalidRequest       = "invalid request"
	ErrorInvalidNoteID        = "invalid note id"
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

// Handler содержит HTTP обработчики заметок.
type Handler struct {
	noteUseCase     api.NoteUseCase
	favoriteUseCase api.FavoriteUseCase
}

// NewHandler создает новый экземпляр обработчика заметок.
func NewHandler(noteUseCase api.NoteUseCase, favoriteUseCase api.FavoriteUseCase) *Handler {
	return &Handler{
		noteUseCase:     noteUseCase,
		favoriteUseCase: favoriteUseCase,
	}
}

// parseNoteID извлекает идентификатор заметки из параметров маршрута.
func parseNoteID(ctx fiber.Ctx) (int64, error) {
	id, err := strconv.ParseInt(ctx.Params("id"), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parsing note id: %w", err)
	}
	if id <= 0 {
		return 0, fmt.Errorf("parsing note id: non-positive value %d", id)
	}
	return id, nil
}

// ListMine возвращает заметки аутентифицированного пользователя.
func (h *Handler) ListMine(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx)
	log.Info(requestCtx, LogHandlerListMine)

	userID, ok := middleware.UserID(ctx)
	if !ok {
		return sendErrorResponse(ctx, http.StatusUnauthorized, ErrorUnauthorized)
	}

	notes, err := h.noteUseCase.ListMine(requestCtx, userID)
	if err != nil {
		log.Error(requestCtx, ErrorFailedToServeRequest, zap.Error(err))
		return sendErrorResponse(ctx, httperr.StatusOf(err), httperr.Message(err))
	}

	if err := ctx.Status(http.StatusOK).JSON(dto.NewNoteListResponse(notes)); err != nil {
		return fmt.Errorf("sending response: %w", err)
	}
	return nil
}

// Search ищет заметки по подстроке заголовка.
func (h *Handler) Search(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx)
	log.Info(requestCtx, LogHandlerSearch)

	notes, err := h.noteUseCase.Search(requestCtx, ctx.Query("query"))
	if err != nil {
		log.Error(requestCtx, ErrorFailedToServeRequest, zap.Error(err))
		return sendErrorResponse(ctx, httperr.StatusOf(err), httperr.Message(err))
	}

	if err := ctx.Status(http.StatusOK).JSON(dto.NewNoteListResponse(notes)); err != nil {
		return fmt.Errorf("sending response: %w", err)
	}
	return nil
}

// ListByCategory возвращает заметки категории по ее имени.
func (h *Handler) ListByCategory(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx)
	log.Info(requestCtx, LogHandlerListByCategory)

	notes, err := h.noteUseCase.ListByCategory(requestCtx, ctx.Params("categoryName"))
	if err != nil {
		log.Error(requestCtx, ErrorFailedToServeRequest, zap.Error(err))
		return sendErrorResponse(ctx, httperr.StatusOf(err), httperr.Message(err))
	}

	if err := ctx.Status(http.StatusOK).JSON(dto.NewNoteListResponse(notes)); err != nil {
		return fmt.Errorf("sending response: %w", err)
	}
	return nil
}

// ListFavorites возвращает избранные заметки пользователя.
func (h *Handler) ListFavorites(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx)
	log.Info(requestCtx, LogHandlerListFavorites)

	userID, ok := middleware.UserID(ctx)
	if !ok {
		return sendErrorResponse(ctx, http.StatusUnauthorized, ErrorUnauthorized)
	}

	notes, err := h.favoriteUseCase.ListByUser(requestCtx, userID)
	if err != nil {
		log.Error(requestCtx, ErrorFailedToServeRequest, zap.Error(err))
		return sendErrorResponse(ctx, httperr.StatusOf(err), httperr.Message(err))
	}

	if err := ctx.Status(http.StatusOK).JSON(dto.NewNoteListResponse(notes)); err != nil {
		return fmt.Errorf("sending response: %w", err)
	}
	return nil
}

// Get возвращает детальную проекцию заметки с комментариями.
func (h *Handler) Get(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx)
	log.Info(requestCtx, LogHandlerGet)

	noteID, err := parseNoteID(ctx)
	if err != nil {
		return sendErrorResponse(ctx, http.StatusBadRequest, ErrorInvalidNoteID)
	}

	detail, err := h.noteUseCase.Get(requestCtx, noteID)
	if err != nil {
		log.Error(requestCtx, ErrorFailedToServeRequest, zap.Error(err))
		return sendErrorResponse(ctx, httperr.StatusOf(err), httperr.Message(err))
	}

	if err := ctx.Status(http.StatusOK).JSON(dto.NewNoteDetailResponse(detail)); err != nil {
		return fmt.Errorf("sending response: %w", err)
	}
	return nil
}

// Create публикует новую заметку.
func (h *Handler) Create(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx)
	log.Info(requestCtx, LogHandlerCreate)

	userID, ok := middleware.UserID(ctx)
	if !ok {
		return sendErrorResponse(ctx, http.StatusUnauthorized, ErrorUnauthorized)
	}

	var req dto.CreateNoteRequest
	if err := ctx.Bind().JSON(&req); err != nil {
		log.Error(requestCtx, ErrorInvalidRequest, zap.Error(err))
		return sendErrorResponse(ctx, http.StatusBadRequest, ErrorInvalidRequest)
	}

	note, err := h.noteUseCase.Create(requestCtx, userID, req.CategoryID, req.Title, req.Preview)
	if err != nil {
		log.Error(requestCtx, ErrorFailedToServeRequest, zap.Error(err))
		return sendErrorResponse(ctx, httperr.StatusOf(err), httperr.Message(err))
	}

	if err := ctx.Status(http.StatusCreated).JSON(dto.NewNoteResponse(note)); err != nil {
		return fmt.Errorf("sending response: %w", err)
	}
	return nil
}

// Update частично обновляет заметку. Разрешено только автору.
func (h *Handler) Update(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx)
	log.Info(requestCtx, LogHandlerUpdate)

	userID, ok := middleware.UserID(ctx)
	if !ok {
		return sendErrorResponse(ctx, http.StatusUnauthorized, ErrorUnauthorized)
	}

	noteID, err := parseNoteID(ctx)
	if err != nil {
		return sendErrorResponse(ctx, http.StatusBadRequest, ErrorInvalidNoteID)
	}

	var req dto.UpdateNoteRequest
	if err := ctx.Bind().JSON(&req); err != nil {
		log.Error(requestCtx, ErrorInvalidRequest, zap.Error(err))
		return sendErrorResponse(ctx, http.StatusBadRequest, ErrorInvalidRequest)
	}

	note, err := h.noteUseCase.Update(requestCtx, userID, noteID, api.UpdateNoteInput{
		Title:      req.Title,
		Preview:    req.Preview,
		Rating:     req.Rating,
		Downloads:  req.Downloads,
		CategoryID: req.CategoryID,
	})
	if err != nil {
		log.Error(requestCtx, ErrorFailedToServeRequest, zap.Error(err))
		return sendErrorResponse(ctx, httperr.StatusOf(err), httperr.Message(err))
	}

	if err := ctx.Status(http.StatusOK).JSON(dto.NewNoteResponse(note)); err != nil {
		return fmt.Errorf("sending response: %w", err)
	}
	return nil
}

// Delete удаляет заметку. Разрешено только автору.
func (h *Handler) Delete(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx)
	log.Info(requestCtx, LogHandlerDelete)

	userID, ok := middleware.UserID(ctx)
	if !ok {
		return sendErrorResponse(ctx, http.StatusUnauthorized, ErrorUnauthorized)
	}

	noteID, err := parseNoteID(ctx)
	if err != nil {
		return sendErrorResponse(ctx, http.StatusBadRequest, ErrorInvalidNoteID)
	}

	if err := h.noteUseCase.Delete(requestCtx, userID, noteID); err != nil {
		log.Error(requestCtx, ErrorFailedToServeRequest, zap.Error(err))
		return sendErrorResponse(ctx, httperr.StatusOf(err), httperr.Message(err))
	}

	if err := ctx.Status(http.StatusOK).JSON(fiber.Map{
		"message": "note deleted",
	}); err != nil {
		return fmt.Errorf("sending response: %w", err)
	}
	return nil
}

// ToggleFavorite переключает отметку избранного для заметки.
func (h *Handler) ToggleFavorite(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx)
	log.Info(requestCtx, LogHandlerToggleFavorite)

	userID, ok := middleware.UserID(ctx)
	if !ok {
		return sendErrorResponse(ctx, http.StatusUnauthorized, ErrorUnauthorized)
	}

	noteID, err := parseNoteID(ctx)
	if err != nil {
		return sendErrorResponse(ctx, http.StatusBadRequest, ErrorInvalidNoteID)
	}

	favorite, err := h.favoriteUseCase.Toggle(requestCtx, userID, noteID)
	if err != nil {
		log.Error(requestCtx, ErrorFailedToServeRequest, zap.Error(err))
		return sendErrorResponse(ctx, httperr.StatusOf(err), httperr.Message(err))
	}

	if err := ctx.Status(http.StatusOK).JSON(dto.FavoriteResponse{
		NoteID:   noteID,
		Favorite: favorite,
	}); err != nil {
		return fmt.Errorf("sending response: %w", err)
	}
	return nil
}

// Download увеличивает счетчик загрузок заметки.
func (h *Handler) Download(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx)
	log.Info(requestCtx, LogHandlerDownload)

	noteID, err := parseNoteID(ctx)
	if err != nil {
		return sendErrorResponse(ctx, http.StatusBadRequest, ErrorInvalidNoteID)
	}

	note, err := h.noteUseCase.IncrementDownloads(requestCtx, noteID)
	if err != nil {
		log.Error(requestCtx, ErrorFailedToServeRequest, zap.Error(err))
		return sendErrorResponse(ctx, httperr.StatusOf(err), httperr.Message(err))
	}

	if err := ctx.Status(http.StatusOK).JSON(dto.NewNoteResponse(note)); err != nil {
		return fmt.Errorf("sending response: %w", err)
	}
	return nil
}

// Rate устанавливает рейтинг заметки.
func (h *Handler) Rate(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx)
	log.Info(requestCtx, LogHandlerRate)

	noteID, err := parseNoteID(ctx)
	if err != nil {
		return sendErrorResponse(ctx, http.StatusBadRequest, ErrorInvalidNoteID)
	}

	var req dto.RateNoteRequest
	if err := ctx.Bind().JSON(&req); err != nil {
		log.Error(requestCtx, ErrorInvalidRequest, zap.Error(err))
		return sendErrorResponse(ctx, http.StatusBadRequest, ErrorInvalidRequest)
	}

	note, err := h.noteUseCase.UpdateRating(requestCtx, noteID, req.Rating)
	if err != nil {
		log.Error(requestCtx, ErrorFailedToServeRequest, zap.Error(err))
		return sendErrorResponse(ctx, httperr.StatusOf(err), httperr.Message(err))
	}

	if err := ctx.Status(http.StatusOK).JSON(dto.NewNoteResponse(note)); err != nil {
		return fmt.Errorf("sending response: %w", err)
	}
	return nil
}
