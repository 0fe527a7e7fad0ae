package app

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"studynotes/internal/domain/entities"
	"studynotes/internal/ports/api"
	"studynotes/internal/ports/cache"
	"studynotes/internal/ports/repositories"
	"studynotes/pkg/logger"
)

const (
	methodCreateCategory = "CreateCategory"
	methodListCategories = "ListCategories"

	categoryListCacheKey = "categories:list"

	msgCreatingCategory     = "creating category"
	msgCategoryCreated      = "category created"
	msgCategoryExists       = "category already exists"
	msgCategoriesCacheHit   = "category list served from cache"
	msgErrCreatingCategory  = "failed to create category"
	msgErrListingCategories = "failed to list categories"
	msgErrCacheCategories   = "failed to cache category list"

	errCtxValidatingCategory = "validating category"
	errCtxCreatingCategory   = "creating category"
	errCtxListingCategories  = "listing categories"
)

// CategoryUseCaseImpl реализует интерфейс CategoryUseCase.
type CategoryUseCaseImpl struct {
	categoryRepo repositories.CategoryRepository
	cache        cache.Cache
}

// NewCategoryUseCase создает новый экземпляр сервиса категорий.
func NewCategoryUseCase(categoryRepo repositories.CategoryRepository, categoryCache cache.Cache) api.CategoryUseCase {
	return &CategoryUseCaseImpl{
		categoryRepo: categoryRepo,
		cache:        categoryCache,
	}
}

// Create добавляет категорию в справочник.
func (c *CategoryUseCaseImpl) Create(ctx context.Context, name string) (*entities.Category, error) {
	log := logger.Log(ctx).With(zap.String("method", methodCreateCategory), zap.String("name", name))
	log.Debug(ctx, msgCreatingCategory)

	if name == "" {
		return nil, fmt.Errorf("%s: %w", errCtxValidatingCategory, entities.ErrEmptyCategoryName)
	}

	category, err := c.categoryRepo.Create(ctx, name)
	if err != nil {
		if errors.Is(err, entities.ErrCategoryAlreadyExists) {
			log.Debug(ctx, msgCategoryExists)
			return nil, fmt.Errorf("%s: %w", errCtxCreatingCategory, err)
		}
		log.Error(ctx, msgErrCreatingCategory, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxCreatingCategory, err)
	}

	if err := c.cache.Delete(ctx, categoryListCacheKey); err != nil {
		log.Debug(ctx, msgErrCacheCategories, zap.Error(err))
	}

	log.Info(ctx, msgCategoryCreated, zap.Int64("categoryID", category.ID))
	return category, nil
}

// List возвращает все категории справочника.
func (c *CategoryUseCaseImpl) List(ctx context.Context) ([]*entities.Category, error) {
	log := logger.Log(ctx).With(zap.String("method", methodListCategories))

	if cached, err := c.cache.Get(ctx, categoryListCacheKey); err == nil && cached != "" {
		var categories []*entities.Category
		if err := json.Unmarshal([]byte(cached), &categories); err == nil {
			log.Debug(ctx, msgCategoriesCacheHit)
			return categories, nil
		}
	}

	categories, err := c.categoryRepo.List(ctx)
	if err != nil {
		log.Error(ctx, msgErrListingCategories, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxListingCategories, err)
	}

	if payload, err := json.Marshal(categories); err == nil {
		if err := c.cache.Set(ctx, categoryListCacheKey, string(payload), 0); err != nil {
			log.Debug(ctx, msgErrCacheCategories, zap.Error(err))
		}
	}

	return categories, nil
}
