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

// selectNote - общий фрагмент выборки обогащенной проекции заметки:
// вместе со строкой notes всегда читаются имя автора и название категории.
const selectNote = `
    SELECT n.id, n.title, n.preview, n.rating, n.downloads, n.created_at,
           n.user_id, n.category_id, u.name AS author, c.name AS category
    FROM notes n
    JOIN users u ON u.id = n.user_id
    JOIN categories c ON c.id = n.category_id
`

// NoteRepository реализует интерфейс repositories.NoteRepository.
type NoteRepository struct {
	pool PgxPoolInterface
}

// NewNoteRepository создает новый экземпляр репозитория заметок.
func NewNoteRepository(pool PgxPoolInterface) repositories.NoteRepository {
	return &NoteRepository{pool: pool}
}

// scanNote читает одну строку обогащенной проекции.
func scanNote(row pgx.Row) (*entities.Note, error) {
	var note entities.Note
	err := row.Scan(
		&note.ID,
		&note.Title,
		&note.Preview,
		&note.Rating,
		&note.Downloads,
		&note.CreatedAt,
		&note.UserID,
		&note.CategoryID,
		&note.Author,
		&note.Category,
	)
	if err != nil {
		return nil, err
	}
	return &note, nil
}

// collectNotes читает все строки обогащенной проекции.
func collectNotes(rows pgx.Rows) ([]*entities.Note, error) {
	defer rows.Close()

	notes := make([]*entities.Note, 0)
	for rows.Next() {
		note, err := scanNote(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning note: %w", err)
		}
		notes = append(notes, note)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating notes: %w", err)
	}

	return notes, nil
}

// Create сохраняет новую заметку и возвращает ее обогащенную проекцию.
// Нарушение внешнего ключа категории отображается в ErrInvalidCategory.
func (r *NoteRepository) Create(ctx context.Context, note *entities.Note) (*entities.Note, error) {
	log := logger.Log(ctx).With(zap.String("repository", "note"), zap.String("method", "Create"))
	log.Debug(ctx, "creating new note", zap.Int64("userID", note.UserID))

	var noteID int64
	err := r.pool.QueryRow(ctx,
		`INSERT INTO notes (title, preview, user_id, category_id) VALUES ($1, $2, $3, $4) RETURNING id`,
		note.Title, note.Preview, note.UserID, note.CategoryID,
	).Scan(&noteID)

	if err != nil {
		if isPgError(err, pgForeignKeyViolation) {
			log.Debug(ctx, "invalid category reference", zap.Int64("categoryID", note.CategoryID))
			return nil, entities.ErrInvalidCategory
		}
		log.Error(ctx, "failed to create note", zap.Error(err))
		return nil, fmt.Errorf("failed to create note: %w", err)
	}

	log.Debug(ctx, "note created", zap.Int64("noteID", noteID))
	return r.FindByID(ctx, noteID)
}

// FindByID получает обогащенную проекцию заметки по ID.
func (r *NoteRepository) FindByID(ctx context.Context, id int64) (*entities.Note, error) {
	log := logger.Log(ctx).With(zap.String("repository", "note"), zap.String("method", "FindByID"))

	note, err := scanNote(r.pool.QueryRow(ctx, selectNote+` WHERE n.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			log.Debug(ctx, "note not found", zap.Int64("noteID", id))
			return nil, entities.ErrNoteNotFound
		}
		log.Error(ctx, "failed to get note", zap.Error(err))
		return nil, fmt.Errorf("failed to get note: %w", err)
	}

	return note, nil
}

// FindDetailByID получает детальную проекцию заметки с комментариями.
func (r *NoteRepository) FindDetailByID(ctx context.Context, id int64) (*entities.NoteDetail, error) {
	log := logger.Log(ctx).With(zap.String("repository", "note"), zap.String("method", "FindDetailByID"))

	note, err := r.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	rows, err := r.pool.Query(ctx,
		`SELECT cm.id, cm.content, cm.created_at, cm.user_id, cm.note_id, u.name AS author
         FROM comments cm
         JOIN users u ON u.id = cm.user_id
         WHERE cm.note_id = $1
         ORDER BY cm.created_at DESC`,
		id,
	)
	if err != nil {
		log.Error(ctx, "failed to load note comments", zap.Error(err))
		return nil, fmt.Errorf("failed to load note comments: %w", err)
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
			log.Error(ctx, "failed to scan comment", zap.Error(err))
			return nil, fmt.Errorf("failed to scan comment: %w", err)
		}
		comments = append(comments, &comment)
	}

	if err := rows.Err(); err != nil {
		log.Error(ctx, "error iterating comments", zap.Error(err))
		return nil, fmt.Errorf("error iterating comments: %w", err)
	}

	return &entities.NoteDetail{Note: *note, Comments: comments}, nil
}

// ListByAuthor получает заметки пользователя, новые первыми.
func (r *NoteRepository) ListByAuthor(ctx context.Context, userID int64) ([]*entities.Note, error) {
	log := logger.Log(ctx).With(zap.String("repository", "note"), zap.String("method", "ListByAuthor"))

	rows, err := r.pool.Query(ctx, selectNote+` WHERE n.user_id = $1 ORDER BY n.created_at DESC`, userID)
	if err != nil {
		log.Error(ctx, "failed to list notes by author", zap.Error(err))
		return nil, fmt.Errorf("failed to list notes by author: %w", err)
	}

	return collectNotes(rows)
}

// ListByCategory получает заметки категории, новые первыми.
func (r *NoteRepository) ListByCategory(ctx context.Context, categoryID int64) ([]*entities.Note, error) {
	log := logger.Log(ctx).With(zap.String("repository", "note"), zap.String("method", "ListByCategory"))

	rows, err := r.pool.Query(ctx, selectNote+` WHERE n.category_id = $1 ORDER BY n.created_at DESC`, categoryID)
	if err != nil {
		log.Error(ctx, "failed to list notes by category", zap.Error(err))
		return nil, fmt.Errorf("failed to list notes by category: %w", err)
	}

	return collectNotes(rows)
}

// Search ищет заметки по подстроке заголовка без учета регистра
// и диакритики (расширение unaccent создается миграцией).
func (r *NoteRepository) Search(ctx context.Context, query string) ([]*entities.Note, error) {
	log := logger.Log(ctx).With(zap.String("repository", "note"), zap.String("method", "Search"))

	rows, err := r.pool.Query(ctx,
		selectNote+` WHERE unaccent(n.title) ILIKE unaccent('%' || $1 || '%') ORDER BY n.created_at DESC`,
		query,
	)
	if err != nil {
		log.Error(ctx, "failed to search notes", zap.Error(err))
		return nil, fmt.Errorf("failed to search notes: %w", err)
	}

	return collectNotes(rows)
}

// Update перезаписывает изменяемые поля заметки и возвращает ее
// обогащенную проекцию.
func (r *NoteRepository) Update(ctx context.Context, note *entities.Note) (*entities.Note, error) {
	log := logger.Log(ctx).With(zap.String("repository", "note"), zap.String("method", "Update"))
	log.Debug(ctx, "updating note", zap.Int64("noteID", note.ID))

	var noteID int64
	err := r.pool.QueryRow(ctx,
		`UPDATE notes
         SET title = $2, preview = $3, rating = $4, downloads = $5, category_id = $6
         WHERE id = $1
         RETURNING id`,
		note.ID, note.Title, note.Preview, note.Rating, note.Downloads, note.CategoryID,
	).Scan(&noteID)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			log.Debug(ctx, "note not found for update", zap.Int64("noteID", note.ID))
			return nil, entities.ErrNoteNotFound
		}
		if isPgError(err, pgForeignKeyViolation) {
			log.Debug(ctx, "invalid category reference", zap.Int64("categoryID", note.CategoryID))
			return nil, entities.ErrInvalidCategory
		}
		log.Error(ctx, "failed to update note", zap.Error(err))
		return nil, fmt.Errorf("failed to update note: %w", err)
	}

	return r.FindByID(ctx, noteID)
}

// Delete удаляет заметку. Связанные комментарии и отметки избранного
// удаляются каскадно на уровне хранилища.
func (r *NoteRepository) Delete(ctx context.Context, id int64) error {
	log := logger.Log(ctx).With(zap.String("repository", "note"), zap.String("method", "Delete"))
	log.Debug(ctx, "deleting note", zap.Int64("noteID", id))

	result, err := r.pool.Exec(ctx, `DELETE FROM notes WHERE id = $1`, id)
	if err != nil {
		log.Error(ctx, "failed to delete note", zap.Error(err))
		return fmt.Errorf("failed to delete note: %w", err)
	}

	if result.RowsAffected() == 0 {
		log.Debug(ctx, "note not found for deletion", zap.Int64("noteID", id))
		return entities.ErrNoteNotFound
	}

	return nil
}

// IncrementDownloads атомарно увеличивает счетчик загрузок на единицу.
func (r *NoteRepository) IncrementDownloads(ctx context.Context, id int64) (*entities.Note, error) {
	log := logger.Log(ctx).With(zap.String("repository", "note"), zap.String("method", "IncrementDownloads"))

	var noteID int64
	err := r.pool.QueryRow(ctx,
		`UPDATE notes SET downloads = downloads + 1 WHERE id = $1 RETURNING id`,
		id,
	).Scan(&noteID)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			log.Debug(ctx, "note not found", zap.Int64("noteID", id))
			return nil, entities.ErrNoteNotFound
		}
		log.Error(ctx, "failed to increment downloads", zap.Error(err))
		return nil, fmt.Errorf("failed to increment downloads: %w", err)
	}

	return r.FindByID(ctx, noteID)
}

// UpdateRating полностью заменяет рейтинг заметки.
func (r *NoteRepository) UpdateRating(ctx context.Context, id int64, rating int) (*entities.Note, error) {
	log := logger.Log(ctx).With(zap.String("repository", "note"), zap.String("method", "UpdateRating"))

	var noteID int64
	err := r.pool.QueryRow(ctx,
		`UPDATE notes SET rating = $2 WHERE id = $1 RETURNING id`,
		id, rating,
	).Scan(&noteID)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			log.Debug(ctx, "note not found", zap.Int64("noteID", id))
			return nil, entities.ErrNoteNotFound
		}
		log.Error(ctx, "failed to update rating", zap.Error(err))
		return nil, fmt.Errorf("failed to update rating: %w", err)
	}

	return r.FindByID(ctx, noteID)
}
