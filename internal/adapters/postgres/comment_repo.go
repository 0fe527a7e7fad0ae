package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"studynotes/internal/domain/entities"
	"studynotes/internal/ports/repositories"
	"studynotes/pkg/logger"
)

// CommentRepository реализует интерфейс repositories.CommentRepository.
type CommentRepository struct {
	pool PgxPoolInterface
}

// NewCommentRepository создает новый экземпляр репозитория комментариев.
func NewCommentRepository(pool PgxPoolInterface) repositories.CommentRepository {
	return &CommentRepository{pool: pool}
}

// Create сохраняет комментарий и возвращает его вместе с именем автора.
// Нарушение внешнего ключа заметки отображается в ErrNoteNotFound.
func (r *CommentRepository) Create(ctx context.Context, comment *entities.Comment) (*entities.Comment, error) {
	log := logger.Log(ctx).With(zap.String("repository", "comment"), zap.String("method", "Create"))

	query := `
        WITH inserted AS (
            INSERT INTO comments (content, user_id, note_id)
            VALUES ($1, $2, $3)
            RETURNING id, content, created_at, user_id, note_id
        )
        SELECT i.id, i.content, i.created_at, i.user_id, i.note_id, u.name AS author
        FROM inserted i
        JOIN users u ON u.id = i.user_id
    `

	var created entities.Comment
	err := r.pool.QueryRow(ctx, query,
		comment.Content,
		comment.UserID,
		comment.NoteID,
	).Scan(
		&created.ID,
		&created.Content,
		&created.CreatedAt,
		&created.UserID,
		&created.NoteID,
		&created.Author,
	)

	if err != nil {
		if isPgError(err, pgForeignKeyViolation) {
			log.Debug(ctx, "note not found for comment", zap.Int64("noteID", comment.NoteID))
			return nil, entities.ErrNoteNotFound
		}
		log.Error(ctx, "error creating comment", zap.Error(err))
		return nil, fmt.Errorf("error creating comment: %w", err)
	}

	return &created, nil
}

// FindByID находит комментарий по ID.
func (r *CommentRepository) FindByID(ctx context.Context, id int64) (*entities.Comment, error) {
	log := logger.Log(ctx).With(zap.String("repository", "comment"), zap.String("method", "FindByID"))

	query := `
        SELECT cm.id, cm.content, cm.created_at, cm.user_id, cm.note_id, u.name AS author
        FROM comments cm
        JOIN users u ON u.id = cm.user_id
        WHERE cm.id = $1
    `

	var comment entities.Comment
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&comment.ID,
		&comment.Content,
		&comment.CreatedAt,
		&comment.UserID,
		&comment.NoteID,
		&comment.Author,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			log.Debug(ctx, "comment not found", zap.Int64("id", id))
			return nil, entities.ErrCommentNotFound
		}
		log.Error(ctx, "error finding comment", zap.Error(err))
		return nil, fmt.Errorf("error querying comment by id: %w", err)
	}

	return &comment, nil
}

// ListByNote возвращает комментарии заметки, новые первыми.
func (r *CommentRepository) ListByNote(ctx context.Context, noteID int64) ([]*entities.Comment, error) {
	log := logger.Log(ctx).With(zap.String("repository", "comment"), zap.String("method", "ListByNote"))

	rows, err := r.pool.Query(ctx,
		`SELECT cm.id, cm.content, cm.created_at, cm.user_id, cm.note_id, u.name AS author
         FROM comments cm
         JOIN users u ON u.id = cm.user_id
         WHERE cm.note_id = $1
         ORDER BY cm.created_at DESC`,
		noteID,
	)
	if err != nil {
		log.Error(ctx, "error listing comments", zap.Error(err))
		return nil, fmt.Errorf("error listing comments: %w", err)
	}
	defer rows.Close()

	comments := make([]*entities.Comment, 0)
	for rows.Next() {
		var comment entities.Comment
		err := rows.Scan(
			&comment.ID,
			&comment.Content,
			&comment.CreatedAt,
			&comment.UserID,
			&comment.NoteID,
			&comment.Author,
		)
		if err != nil {
			log.Error(ctx, "error scanning comment", zap.Error(err))
			return nil, fmt.Errorf("error scanning comment: %w", err)
		}
		comments = append(comments, &comment)
	}

	if err := rows.Err(); err != nil {
		log.Error(ctx, "error iterating comments", zap.Error(err))
		return nil, fmt.Errorf("error iterating comments: %w", err)
	}

	return comments, nil
}

// Delete удаляет комментарий.
func (r *CommentRepository) Delete(ctx context.Context, id int64) error {
	log := logger.Log(ctx).With(zap.String("repository", "comment"), zap.String("method", "Delete"))

	result, err := r.pool.Exec(ctx, `DELETE FROM comments WHERE id = $1`, id)
	if err != nil {
		log.Error(ctx, "error deleting comment", zap.Error(err))
		return fmt.Errorf("error deleting comment: %w", err)
	}

	if result.RowsAffected() == 0 {
		log.Debug(ctx, "comment not found for deletion", zap.Int64("id", id))
		return entities.ErrCommentNotFound
	}

	return nil
}
