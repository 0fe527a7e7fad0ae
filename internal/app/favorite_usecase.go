package app

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"studynotes/internal/domain/entities"
	"studynotes/internal/ports/api"
	"studynotes/internal/ports/repositories"
	"studynotes/pkg/logger"
)

const (
	methodToggleFavorite = "ToggleFavorite"
	methodListFavorites  = "ListFavorites"

	msgTogglingFavorite   = "toggling favorite"
	msgFavoriteToggled    = "favorite toggled"
	msgErrToggling        = "failed to toggle favorite"
	msgErrListingFavs     = "failed to list favorites"
	msgFavoriteTargetGone = "note to toggle does not exist"

	errCtxResolvingNote    = "resolving note"
	errCtxTogglingFavorite = "toggling favorite"
	errCtxListingFavorites = "listing favorites"
)

// FavoriteUseCaseImpl реализует интерфейс FavoriteUseCase.
type FavoriteUseCaseImpl struct {
	favoriteRepo repositories.FavoriteRepository
	noteRepo     repositories.NoteRepository
}

// NewFavoriteUseCase создает новый экземпляр сервиса избранного.
func NewFavoriteUseCase(
	favoriteRepo repositories.FavoriteRepository,
	noteRepo repositories.NoteRepository,
) api.FavoriteUseCase {
	return &FavoriteUseCaseImpl{
		favoriteRepo: favoriteRepo,
		noteRepo:     noteRepo,
	}
}

// Toggle переключает отметку избранного для пары (userID, noteID) и
// возвращает итоговое состояние: true, если заметка теперь в избранном.
func (f *FavoriteUseCaseImpl) Toggle(ctx context.Context, userID, noteID int64) (bool, error) {
	log := logger.Log(ctx).With(
		zap.String("method", methodToggleFavorite),
		zap.Int64("userID", userID),
		zap.Int64("noteID", noteID),
	)
	log.Debug(ctx, msgTogglingFavorite)

	if _, err := f.noteRepo.FindByID(ctx, noteID); err != nil {
		if errors.Is(err, entities.ErrNoteNotFound) {
			log.Debug(ctx, msgFavoriteTargetGone)
		}
		return false, fmt.Errorf("%s: %w", errCtxResolvingNote, err)
	}

	isFavorite, err := f.favoriteRepo.Toggle(ctx, userID, noteID)
	if err != nil {
		log.Error(ctx, msgErrToggling, zap.Error(err))
		return false, fmt.Errorf("%s: %w", errCtxTogglingFavorite, err)
	}

	log.Info(ctx, msgFavoriteToggled, zap.Bool("isFavorite", isFavorite))
	return isFavorite, nil
}

// ListByUser возвращает заметки из избранного пользователя в обогащенной проекции.
func (f *FavoriteUseCaseImpl) ListByUser(ctx context.Context, userID int64) ([]*entities.Note, error) {
	log := logger.Log(ctx).With(zap.String("method", methodListFavorites), zap.Int64("userID", userID))

	notes, err := f.favoriteRepo.ListByUser(ctx, userID)
	if err != nil {
		log.Error(ctx, msgErrListingFavs, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxListingFavorites, err)
	}

	return notes, nil
}
