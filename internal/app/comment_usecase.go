package app

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"studynotes/internal/domain/entities"
	"studynotes/internal/ports/api"
	"studynotes/internal/ports/cache"
	"studynotes/internal/ports/repositories"
	"studynotes/pkg/logger"
)

const (
	methodCreateComment = "CreateComment"
	methodListComments  = "ListComments"
	methodDeleteComment = "DeleteComment"

	msgCreatingComment    = "creating comment"
	msgCommentCreated     = "comment created"
	msgCommentDeleted     = "comment deleted"
	msgNotCommentOwner    = "user is not the owner of the comment"
	msgErrCreatingComment = "failed to create comment"
	msgErrListingComments = "failed to list comments"
	msgErrDeletingComment = "failed to delete comment"

	errCtxValidatingComment = "validating comment"
	errCtxCreatingComment   = "creating comment"
	errCtxListingComments   = "listing comments"
	errCtxCommentOwnership  = "checking comment ownership"
	errCtxDeletingComment   = "deleting comment"
)

// CommentUseCaseImpl реализует интерфейс CommentUseCase.
type CommentUseCaseImpl struct {
	commentRepo repositories.CommentRepository
	noteRepo    repositories.NoteRepository
	cache       cache.Cache
}

// NewCommentUseCase создает новый экземпляр сервиса комментариев.
func NewCommentUseCase(
	commentRepo repositories.CommentRepository,
	noteRepo repositories.NoteRepository,
	noteCache cache.Cache,
) api.CommentUseCase {
	return &CommentUseCaseImpl{
		commentRepo: commentRepo,
		noteRepo:    noteRepo,
		cache:       noteCache,
	}
}

// Create добавляет комментарий к заметке.
func (c *CommentUseCaseImpl) Create(ctx context.Context, userID, noteID int64, content string) (*entities.Comment, error) {
	log := logger.Log(ctx).With(
		zap.String("method", methodCreateComment),
		zap.Int64("userID", userID),
		zap.Int64("noteID", noteID),
	)
	log.Debug(ctx, msgCreatingComment)

	if content == "" {
		return nil, fmt.Errorf("%s: %w", errCtxValidatingComment, entities.ErrEmptyComment)
	}

	if _, err := c.noteRepo.FindByID(ctx, noteID); err != nil {
		return nil, fmt.Errorf("%s: %w", errCtxResolvingNote, err)
	}

	comment := &entities.Comment{
		Content: content,
		UserID:  userID,
		NoteID:  noteID,
	}

	created, err := c.commentRepo.Create(ctx, comment)
	if err != nil {
		log.Error(ctx, msgErrCreatingComment, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxCreatingComment, err)
	}

	c.dropCachedNote(ctx, noteID)

	log.Info(ctx, msgCommentCreated, zap.Int64("commentID", created.ID))
	return created, nil
}

// ListByNote возвращает комментарии заметки, новые первыми.
func (c *CommentUseCaseImpl) ListByNote(ctx context.Context, noteID int64) ([]*entities.Comment, error) {
	log := logger.Log(ctx).With(zap.String("method", methodListComments), zap.Int64("noteID", noteID))

	comments, err := c.commentRepo.ListByNote(ctx, noteID)
	if err != nil {
		log.Error(ctx, msgErrListingComments, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxListingComments, err)
	}

	return comments, nil
}

// Delete удаляет комментарий. Разрешено только его автору.
func (c *CommentUseCaseImpl) Delete(ctx context.Context, userID, commentID int64) error {
	log := logger.Log(ctx).With(
		zap.String("method", methodDeleteComment),
		zap.Int64("userID", userID),
		zap.Int64("commentID", commentID),
	)

	comment, err := c.commentRepo.FindByID(ctx, commentID)
	if err != nil {
		return fmt.Errorf("%s: %w", errCtxCommentOwnership, err)
	}
	if comment.UserID != userID {
		log.Debug(ctx, msgNotCommentOwner)
		return fmt.Errorf("%s: %w", errCtxCommentOwnership, entities.ErrForbidden)
	}

	if err := c.commentRepo.Delete(ctx, commentID); err != nil {
		log.Error(ctx, msgErrDeletingComment, zap.Error(err))
		return fmt.Errorf("%s: %w", errCtxDeletingComment, err)
	}

	c.dropCachedNote(ctx, comment.NoteID)

	log.Info(ctx, msgCommentDeleted)
	return nil
}

// dropCachedNote инвалидирует детальную проекцию заметки, в которую
// входят комментарии.
func (c *CommentUseCaseImpl) dropCachedNote(ctx context.Context, noteID int64) {
	if err := c.cache.Delete(ctx, noteDetailCacheKey(noteID)); err != nil {
		logger.Log(ctx).Debug(ctx, msgErrCacheDrop, zap.Int64("noteID", noteID), zap.Error(err))
	}
}
