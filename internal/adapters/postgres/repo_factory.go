package postgres

import (
	"studynotes/internal/ports/repositories"
)

// RepositoryFactory создает все необходимые репозитории для работы с PostgreSQL.
type RepositoryFactory struct {
	userRepo     repositories.UserRepository
	categoryRepo repositories.CategoryRepository
	noteRepo     repositories.NoteRepository
	favoriteRepo repositories.FavoriteRepository
	commentRepo  repositories.CommentRepository
}

// NewRepositoryFactory создает новую фабрику репозиториев.
func NewRepositoryFactory(pool PgxPoolInterface) *RepositoryFactory {
	return &RepositoryFactory{
		userRepo:     NewUserRepository(pool),
		categoryRepo: NewCategoryRepository(pool),
		noteRepo:     NewNoteRepository(pool),
		favoriteRepo: NewFavoriteRepository(pool),
		commentRepo:  NewCommentRepository(pool),
	}
}

// UserRepository возвращает репозиторий пользователей.
func (f *RepositoryFactory) UserRepository() repositories.UserRepository {
	return f.userRepo
}

// CategoryRepository возвращает репозиторий категорий.
func (f *RepositoryFactory) CategoryRepository() repositories.CategoryRepository {
	return f.categoryRepo
}

// NoteRepository возвращает репозиторий заметок.
func (f *RepositoryFactory) NoteRepository() repositories.NoteRepository {
	return f.noteRepo
}

// FavoriteRepository возвращает репозиторий избранного.
func (f *RepositoryFactory) FavoriteRepository() repositories.FavoriteRepository {
	return f.favoriteRepo
}

// CommentRepository возвращает репозиторий комментариев.
func (f *RepositoryFactory) CommentRepository() repositories.CommentRepository {
	return f.commentRepo
}
