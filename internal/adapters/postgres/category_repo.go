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

// CategoryRepository реализует интерфейс repositories.CategoryRepository.
type CategoryRepository struct {
	pool PgxPoolInterface
}

// NewCategoryRepository создает новый экземпляр репозитория категорий.
func NewCategoryRepository(pool PgxPoolInterface) repositories.CategoryRepository {
	return &CategoryRepository{pool: pool}
}

// Create добавляет категорию. Конфликт уникальности имени отображается
// в entities.ErrCategoryAlreadyExists.
func (r *CategoryRepository) Create(ctx context.Context, name string) (*entities.Category, error) {
	log := logger.Log(ctx).With(zap.String("repository", "category"), zap.String("method", "Create"))

	query := `
        INSERT INTO categories (name)
        VALUES ($1)
        RETURNING id, name
    `

	var category entities.Category
	err := r.pool.QueryRow(ctx, query, name).Scan(&category.ID, &category.Name)
	if err != nil {
		if isPgError(err, pgUniqueViolation) {
			log.Debug(ctx, "duplicate category name", zap.String("name", name))
			return nil, entities.ErrCategoryAlreadyExists
		}
		log.Error(ctx, "error creating category", zap.Error(err))
		return nil, fmt.Errorf("error creating category: %w", err)
	}

	return &category, nil
}

// FindByName находит категорию по точному имени.
func (r *CategoryRepository) FindByName(ctx context.Context, name string) (*entities.Category, error) {
	log := logger.Log(ctx).With(zap.String("repository", "category"), zap.String("method", "FindByName"))

	query := `
        SELECT id, name
        FROM categories
        WHERE name = $1
    `

	var category entities.Category
	err := r.pool.QueryRow(ctx, query, name).Scan(&category.ID, &category.Name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			log.Debug(ctx, "category not found", zap.String("name", name))
			return nil, entities.ErrCategoryNotFound
		}
		log.Error(ctx, "error finding category by name", zap.Error(err))
		return nil, fmt.Errorf("error querying category by name: %w", err)
	}

	return &category, nil
}

// List возвращает все категории в алфавитном порядке.
func (r *CategoryRepository) List(ctx context.Context) ([]*entities.Category, error) {
	log := logger.Log(ctx).With(zap.String("repository", "category"), zap.String("method", "List"))

	rows, err := r.pool.Query(ctx, `SELECT id, name FROM categories ORDER BY name`)
	if err != nil {
		log.Error(ctx, "error listing categories", zap.Error(err))
		return nil, fmt.Errorf("error listing categories: %w", err)
	}
	defer rows.Close()

	categories := make([]*entities.Category, 0)
	for rows.Next() {
		var category entities.Category
		if err := rows.Scan(&category.ID, &category.Name); err != nil {
			log.Error(ctx, "error scanning category", zap.Error(err))
			return nil, fmt.Errorf("error scanning category: %w", err)
		}
		categories = append(categories, &category)
	}

	if err := rows.Err(); err != nil {
		log.Error(ctx, "error iterating categories", zap.Error(err))
		return nil, fmt.Errorf("error iterating categories: %w", err)
	}

	return categories, nil
}
