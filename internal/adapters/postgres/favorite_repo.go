package postgres

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"studynotes/internal/domain/entities"
	"studynotes/internal/ports/repositories"
	"studynotes/pkg/logger"
)

// FavoriteRepository реализует интерфейс repositories.FavoriteRepository.
type FavoriteRepository struct {
	pool PgxPoolInterface
}

// NewFavoriteRepository создает новый экземпляр репозитория избранного.
func NewFavoriteRepository(pool PgxPoolInterface) repositories.FavoriteRepository {
	return &FavoriteRepository{pool: pool}
}

// Toggle переключает отметку избранного и возвращает новое состояние.
// Сначала пробует удалить существующую отметку; если строки не было,
// вставляет новую. ON CONFLICT DO NOTHING делает вставку безопасной
// при одновременных запросах: отметка в любом случае существует.
func (r *FavoriteRepository) Toggle(ctx context.Context, userID, noteID int64) (bool, error) {
	log := logger.Log(ctx).With(
		zap.String("repository", "favorite"),
		zap.String("method", "Toggle"),
		zap.Int64("userID", userID),
		zap.Int64("noteID", noteID),
	)

	deleted, err := r.pool.Exec(ctx,
		`DELETE FROM favorites WHERE user_id = $1 AND note_id = $2`,
		userID, noteID,
	)
	if err != nil {
		log.Error(ctx, "failed to remove favorite", zap.Error(err))
		return false, fmt.Errorf("failed to remove favorite: %w", err)
	}

	if deleted.RowsAffected() > 0 {
		log.Debug(ctx, "favorite removed")
		return false, nil
	}

	_, err = r.pool.Exec(ctx,
		`INSERT INTO favorites (user_id, note_id) VALUES ($1, $2) ON CONFLICT (user_id, note_id) DO NOTHING`,
		userID, noteID,
	)
	if err != nil {
		if isPgError(err, pgForeignKeyViolation) {
			log.Debug(ctx, "note not found for favorite")
			return false, entities.ErrNoteNotFound
		}
		log.Error(ctx, "failed to add favorite", zap.Error(err))
		return false, fmt.Errorf("failed to add favorite: %w", err)
	}

	log.Debug(ctx, "favorite added")
	return true, nil
}

// ListByUser возвращает избранные заметки пользователя,
// недавно добавленные первыми.
func (r *FavoriteRepository) ListByUser(ctx context.Context, userID int64) ([]*entities.Note, error) {
	log := logger.Log(ctx).With(
		zap.String("repository", "favorite"),
		zap.String("method", "ListByUser"),
		zap.Int64("userID", userID),
	)

	rows, err := r.pool.Query(ctx,
		`SELECT n.id, n.title, n.preview, n.rating, n.downloads, n.created_at,
                n.user_id, n.category_id, u.name AS author, c.name AS category
         FROM favorites f
         JOIN notes n ON n.id = f.note_id
         JOIN users u ON u.id = n.user_id
         JOIN categories c ON c.id = n.category_id
         WHERE f.user_id = $1
         ORDER BY f.created_at DESC`,
		userID,
	)
	if err != nil {
		log.Error(ctx, "failed to list favorites", zap.Error(err))
		return nil, fmt.Errorf("failed to list favorites: %w", err)
	}

	return collectNotes(rows)
}
