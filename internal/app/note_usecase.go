package app

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"go.uber.org/zap"

	"studynotes/internal/domain/entities"
	"studynotes/internal/ports/api"
	"studynotes/internal/ports/cache"
	"studynotes/internal/ports/repositories"
	"studynotes/pkg/logger"
)

const (
	methodCreateNote     = "CreateNote"
	methodGetNote        = "GetNote"
	methodListMine       = "ListMine"
	methodListByCategory = "ListByCategory"
	methodSearchNotes    = "SearchNotes"
	methodUpdateNote     = "UpdateNote"
	methodDeleteNote     = "DeleteNote"
	methodIncDownloads   = "IncrementDownloads"
	methodUpdateRating   = "UpdateRating"

	msgCreatingNote      = "creating note"
	msgNoteCreated       = "note created"
	msgNoteRetrieved     = "note retrieved"
	msgNoteCacheHit      = "note detail served from cache"
	msgEmptySearchQuery  = "empty search query, returning no results"
	msgUnknownCategory   = "unknown category, returning no results"
	msgNotOwner          = "user is not the owner of the note"
	msgNoteUpdated       = "note updated"
	msgNoteDeleted       = "note deleted"
	msgDownloadsBumped   = "note downloads incremented"
	msgRatingUpdated     = "note rating updated"
	msgErrInvalidPayload = "invalid note payload"
	msgErrFindingNote    = "failed to find note"
	msgErrCreatingNote   = "failed to create note"
	msgErrListingNotes   = "failed to list notes"
	msgErrSearchingNotes = "failed to search notes"
	msgErrUpdatingNote   = "failed to update note"
	msgErrDeletingNote   = "failed to delete note"
	msgErrCacheWrite     = "failed to store note detail in cache"
	msgErrCacheDrop      = "failed to invalidate cached note detail"

	errCtxValidatingNote  = "validating note"
	errCtxCreatingNote    = "creating note"
	errCtxFetchingNote    = "fetching note"
	errCtxListingNotes    = "listing notes"
	errCtxResolvingOwner  = "resolving note owner"
	errCtxSearchingNotes  = "searching notes"
	errCtxUpdatingNote    = "updating note"
	errCtxDeletingNote    = "deleting note"
	errCtxOwnershipCheck  = "checking note ownership"
	errCtxBumpingDownload = "incrementing downloads"
	errCtxUpdatingRating  = "updating rating"
)

// noteDetailCacheKey формирует ключ кэша детальной проекции заметки.
func noteDetailCacheKey(id int64) string {
	return "note:detail:" + strconv.FormatInt(id, 10)
}

// NoteUseCaseImpl реализует интерфейс NoteUseCase.
type NoteUseCaseImpl struct {
	noteRepo     repositories.NoteRepository
	categoryRepo repositories.CategoryRepository
	cache        cache.Cache
}

// NewNoteUseCase создает новый экземпляр сервиса заметок.
func NewNoteUseCase(
	noteRepo repositories.NoteRepository,
	categoryRepo repositories.CategoryRepository,
	noteCache cache.Cache,
) api.NoteUseCase {
	return &NoteUseCaseImpl{
		noteRepo:     noteRepo,
		categoryRepo: categoryRepo,
		cache:        noteCache,
	}
}

// Create создает заметку. Rating и downloads начинаются с нуля,
// категория должна существовать.
func (n *NoteUseCaseImpl) Create(ctx context.Context, userID, categoryID int64, title, preview string) (*entities.Note, error) {
	log := logger.Log(ctx).With(zap.String("method", methodCreateNote), zap.Int64("userID", userID))
	log.Debug(ctx, msgCreatingNote)

	if title == "" {
		log.Debug(ctx, msgErrInvalidPayload)
		return nil, fmt.Errorf("%s: %w", errCtxValidatingNote, entities.ErrEmptyTitle)
	}
	if len(title) > entities.MaxTitleLength {
		log.Debug(ctx, msgErrInvalidPayload)
		return nil, fmt.Errorf("%s: %w", errCtxValidatingNote, entities.ErrTitleTooLong)
	}

	note := &entities.Note{
		Title:      title,
		Preview:    preview,
		UserID:     userID,
		CategoryID: categoryID,
	}

	created, err := n.noteRepo.Create(ctx, note)
	if err != nil {
		if errors.Is(err, entities.ErrInvalidCategory) {
			log.Debug(ctx, msgErrInvalidPayload, zap.Int64("categoryID", categoryID))
			return nil, fmt.Errorf("%s: %w", errCtxValidatingNote, err)
		}
		log.Error(ctx, msgErrCreatingNote, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxCreatingNote, err)
	}

	log.Info(ctx, msgNoteCreated, zap.Int64("noteID", created.ID))
	return created, nil
}

// Get возвращает детальную проекцию заметки с комментариями.
func (n *NoteUseCaseImpl) Get(ctx context.Context, id int64) (*entities.NoteDetail, error) {
	log := logger.Log(ctx).With(zap.String("method", methodGetNote), zap.Int64("noteID", id))

	if cached, err := n.cache.Get(ctx, noteDetailCacheKey(id)); err == nil && cached != "" {
		var detail entities.NoteDetail
		if err := json.Unmarshal([]byte(cached), &detail); err == nil {
			log.Debug(ctx, msgNoteCacheHit)
			return &detail, nil
		}
	}

	detail, err := n.noteRepo.FindDetailByID(ctx, id)
	if err != nil {
		if !errors.Is(err, entities.ErrNoteNotFound) {
			log.Error(ctx, msgErrFindingNote, zap.Error(err))
		}
		return nil, fmt.Errorf("%s: %w", errCtxFetchingNote, err)
	}

	if payload, err := json.Marshal(detail); err == nil {
		if err := n.cache.Set(ctx, noteDetailCacheKey(id), string(payload), 0); err != nil {
			log.Debug(ctx, msgErrCacheWrite, zap.Error(err))
		}
	}

	log.Debug(ctx, msgNoteRetrieved)
	return detail, nil
}

// ListMine возвращает заметки пользователя, новые первыми.
func (n *NoteUseCaseImpl) ListMine(ctx context.Context, userID int64) ([]*entities.Note, error) {
	log := logger.Log(ctx).With(zap.String("method", methodListMine), zap.Int64("userID", userID))

	notes, err := n.noteRepo.ListByAuthor(ctx, userID)
	if err != nil {
		log.Error(ctx, msgErrListingNotes, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxListingNotes, err)
	}

	return notes, nil
}

// ListByCategory возвращает заметки категории по ее названию.
// Неизвестное название не является ошибкой: возвращается пустой список.
func (n *NoteUseCaseImpl) ListByCategory(ctx context.Context, categoryName string) ([]*entities.Note, error) {
	log := logger.Log(ctx).With(zap.String("method", methodListByCategory), zap.String("category", categoryName))

	category, err := n.categoryRepo.FindByName(ctx, categoryName)
	if err != nil {
		if errors.Is(err, entities.ErrCategoryNotFound) {
			log.Debug(ctx, msgUnknownCategory)
			return []*entities.Note{}, nil
		}
		log.Error(ctx, msgErrListingNotes, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxListingNotes, err)
	}

	notes, err := n.noteRepo.ListByCategory(ctx, category.ID)
	if err != nil {
		log.Error(ctx, msgErrListingNotes, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxListingNotes, err)
	}

	return notes, nil
}

// Search ищет заметки по подстроке заголовка. Пустой запрос возвращает
// пустой список, а не все заметки.
func (n *NoteUseCaseImpl) Search(ctx context.Context, query string) ([]*entities.Note, error) {
	log := logger.Log(ctx).With(zap.String("method", methodSearchNotes), zap.String("query", query))

	if query == "" {
		log.Debug(ctx, msgEmptySearchQuery)
		return []*entities.Note{}, nil
	}

	notes, err := n.noteRepo.Search(ctx, query)
	if err != nil {
		log.Error(ctx, msgErrSearchingNotes, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxSearchingNotes, err)
	}

	return notes, nil
}

// Update накладывает переданные поля на заметку. Разрешено только владельцу.
func (n *NoteUseCaseImpl) Update(ctx context.Context, userID, noteID int64, input api.UpdateNoteInput) (*entities.Note, error) {
	log := logger.Log(ctx).With(
		zap.String("method", methodUpdateNote),
		zap.Int64("userID", userID),
		zap.Int64("noteID", noteID),
	)

	note, err := n.noteRepo.FindByID(ctx, noteID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtxOwnershipCheck, err)
	}
	if note.UserID != userID {
		log.Debug(ctx, msgNotOwner)
		return nil, fmt.Errorf("%s: %w", errCtxOwnershipCheck, entities.ErrForbidden)
	}

	if input.Title != nil {
		if *input.Title == "" {
			return nil, fmt.Errorf("%s: %w", errCtxValidatingNote, entities.ErrEmptyTitle)
		}
		if len(*input.Title) > entities.MaxTitleLength {
			return nil, fmt.Errorf("%s: %w", errCtxValidatingNote, entities.ErrTitleTooLong)
		}
		note.Title = *input.Title
	}
	if input.Preview != nil {
		note.Preview = *input.Preview
	}
	if input.Rating != nil {
		note.Rating = *input.Rating
	}
	if input.Downloads != nil {
		note.Downloads = *input.Downloads
	}
	if input.CategoryID != nil {
		note.CategoryID = *input.CategoryID
	}

	updated, err := n.noteRepo.Update(ctx, note)
	if err != nil {
		if errors.Is(err, entities.ErrInvalidCategory) {
			return nil, fmt.Errorf("%s: %w", errCtxValidatingNote, err)
		}
		log.Error(ctx, msgErrUpdatingNote, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxUpdatingNote, err)
	}

	n.dropCachedDetail(ctx, noteID)

	log.Info(ctx, msgNoteUpdated)
	return updated, nil
}

// Delete удаляет заметку. Разрешено только владельцу; комментарии и
// отметки избранного каскадно удаляются хранилищем.
func (n *NoteUseCaseImpl) Delete(ctx context.Context, userID, noteID int64) error {
	log := logger.Log(ctx).With(
		zap.String("method", methodDeleteNote),
		zap.Int64("userID", userID),
		zap.Int64("noteID", noteID),
	)

	note, err := n.noteRepo.FindByID(ctx, noteID)
	if err != nil {
		return fmt.Errorf("%s: %w", errCtxOwnershipCheck, err)
	}
	if note.UserID != userID {
		log.Debug(ctx, msgNotOwner)
		return fmt.Errorf("%s: %w", errCtxOwnershipCheck, entities.ErrForbidden)
	}

	if err := n.noteRepo.Delete(ctx, noteID); err != nil {
		log.Error(ctx, msgErrDeletingNote, zap.Error(err))
		return fmt.Errorf("%s: %w", errCtxDeletingNote, err)
	}

	n.dropCachedDetail(ctx, noteID)

	log.Info(ctx, msgNoteDeleted)
	return nil
}

// IncrementDownloads атомарно увеличивает счетчик загрузок на единицу.
func (n *NoteUseCaseImpl) IncrementDownloads(ctx context.Context, noteID int64) (*entities.Note, error) {
	log := logger.Log(ctx).With(zap.String("method", methodIncDownloads), zap.Int64("noteID", noteID))

	note, err := n.noteRepo.IncrementDownloads(ctx, noteID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtxBumpingDownload, err)
	}

	n.dropCachedDetail(ctx, noteID)

	log.Debug(ctx, msgDownloadsBumped, zap.Int("downloads", note.Downloads))
	return note, nil
}

// UpdateRating полностью заменяет рейтинг заметки переданным значением.
func (n *NoteUseCaseImpl) UpdateRating(ctx context.Context, noteID int64, rating int) (*entities.Note, error) {
	log := logger.Log(ctx).With(zap.String("method", methodUpdateRating), zap.Int64("noteID", noteID))

	note, err := n.noteRepo.UpdateRating(ctx, noteID, rating)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtxUpdatingRating, err)
	}

	n.dropCachedDetail(ctx, noteID)

	log.Debug(ctx, msgRatingUpdated, zap.Int("rating", rating))
	return note, nil
}

// dropCachedDetail инвалидирует кэшированную детальную проекцию.
func (n *NoteUseCaseImpl) dropCachedDetail(ctx context.Context, noteID int64) {
	if err := n.cache.Delete(ctx, noteDetailCacheKey(noteID)); err != nil {
		logger.Log(ctx).Debug(ctx, msgErrCacheDrop, zap.Int64("noteID", noteID), zap.Error(err))
	}
}
