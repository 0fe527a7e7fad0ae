package app_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"studynotes/internal/app"
	"studynotes/internal/domain/entities"
	"studynotes/internal/ports/api"
)

func TestNoteUseCase_Create(t *testing.T) {
	ctx := testContext(t)

	t.Run("Успешное создание заметки", func(t *testing.T) {
		noteRepo := new(mockNoteRepository)

		created := &entities.Note{
			ID:         10,
			Title:      "Integrales dobles",
			UserID:     1,
			CategoryID: 2,
			Author:     "student",
			Category:   "Matemáticas",
		}

		noteRepo.On("Create", mock.Anything, mock.MatchedBy(func(note *entities.Note) bool {
			return note.Title == "Integrales dobles" && note.UserID == 1 && note.CategoryID == 2
		})).Return(created, nil)

		useCase := app.NewNoteUseCase(noteRepo, new(mockCategoryRepository), newStubCache())
		note, err := useCase.Create(ctx, 1, 2, "Integrales dobles", "")

		require.NoError(t, err)
		assert.Equal(t, int64(10), note.ID)
		assert.Equal(t, "Matemáticas", note.Category)
		noteRepo.AssertExpectations(t)
	})

	t.Run("Пустой заголовок отклоняется без обращения к хранилищу", func(t *testing.T) {
		noteRepo := new(mockNoteRepository)

		useCase := app.NewNoteUseCase(noteRepo, new(mockCategoryRepository), newStubCache())
		note, err := useCase.Create(ctx, 1, 2, "", "preview")

		assert.Nil(t, note)
		assert.ErrorIs(t, err, entities.ErrEmptyTitle)
		noteRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("Несуществующая категория", func(t *testing.T) {
		noteRepo := new(mockNoteRepository)

		noteRepo.On("Create", mock.Anything, mock.Anything).
			Return(nil, entities.ErrInvalidCategory)

		useCase := app.NewNoteUseCase(noteRepo, new(mockCategoryRepository), newStubCache())
		note, err := useCase.Create(ctx, 1, 99, "Integrales dobles", "")

		assert.Nil(t, note)
		assert.ErrorIs(t, err, entities.ErrInvalidCategory)
	})
}

func TestNoteUseCase_Get(t *testing.T) {
	ctx := testContext(t)

	detail := &entities.NoteDetail{
		Note: entities.Note{ID: 3, Title: "Cinemática", Author: "student"},
		Comments: []*entities.Comment{
			{ID: 1, Content: "muy útil", NoteID: 3, Author: "reader"},
		},
	}

	t.Run("Промах кэша читает хранилище и наполняет кэш", func(t *testing.T) {
		noteRepo := new(mockNoteRepository)
		noteCache := newStubCache()

		noteRepo.On("FindDetailByID", mock.Anything, int64(3)).Return(detail, nil).Once()

		useCase := app.NewNoteUseCase(noteRepo, new(mockCategoryRepository), noteCache)

		got, err := useCase.Get(ctx, 3)
		require.NoError(t, err)
		assert.Equal(t, "Cinemática", got.Title)

		cached, err := noteCache.Get(ctx, "note:detail:3")
		require.NoError(t, err)
		assert.NotEmpty(t, cached)

		// Повторный запрос обслуживается из кэша.
		got, err = useCase.Get(ctx, 3)
		require.NoError(t, err)
		require.Len(t, got.Comments, 1)
		assert.Equal(t, "muy útil", got.Comments[0].Content)

		noteRepo.AssertExpectations(t)
	})

	t.Run("Попадание в кэш не трогает хранилище", func(t *testing.T) {
		noteRepo := new(mockNoteRepository)
		noteCache := newStubCache()

		payload, err := json.Marshal(detail)
		require.NoError(t, err)
		require.NoError(t, noteCache.Set(ctx, "note:detail:3", string(payload), 0))

		useCase := app.NewNoteUseCase(noteRepo, new(mockCategoryRepository), noteCache)
		got, err := useCase.Get(ctx, 3)

		require.NoError(t, err)
		assert.Equal(t, int64(3), got.ID)
		noteRepo.AssertNotCalled(t, "FindDetailByID", mock.Anything, mock.Anything)
	})

	t.Run("Заметка не найдена", func(t *testing.T) {
		noteRepo := new(mockNoteRepository)

		noteRepo.On("FindDetailByID", mock.Anything, int64(404)).
			Return(nil, entities.ErrNoteNotFound)

		useCase := app.NewNoteUseCase(noteRepo, new(mockCategoryRepository), newStubCache())
		got, err := useCase.Get(ctx, 404)

		assert.Nil(t, got)
		assert.ErrorIs(t, err, entities.ErrNoteNotFound)
	})
}

func TestNoteUseCase_Search(t *testing.T) {
	ctx := testContext(t)

	t.Run("Пустой запрос возвращает пустой список без обращения к хранилищу", func(t *testing.T) {
		noteRepo := new(mockNoteRepository)

		useCase := app.NewNoteUseCase(noteRepo, new(mockCategoryRepository), newStubCache())
		notes, err := useCase.Search(ctx, "")

		require.NoError(t, err)
		assert.Empty(t, notes)
		noteRepo.AssertNotCalled(t, "Search", mock.Anything, mock.Anything)
	})

	t.Run("Непустой запрос делегируется хранилищу", func(t *testing.T) {
		noteRepo := new(mockNoteRepository)

		found := []*entities.Note{{ID: 1, Title: "Álgebra básica"}}
		noteRepo.On("Search", mock.Anything, "alge").Return(found, nil)

		useCase := app.NewNoteUseCase(noteRepo, new(mockCategoryRepository), newStubCache())
		notes, err := useCase.Search(ctx, "alge")

		require.NoError(t, err)
		require.Len(t, notes, 1)
		assert.Equal(t, "Álgebra básica", notes[0].Title)
	})
}

func TestNoteUseCase_ListByCategory(t *testing.T) {
	ctx := testContext(t)

	t.Run("Неизвестная категория возвращает пустой список", func(t *testing.T) {
		categoryRepo := new(mockCategoryRepository)
		noteRepo := new(mockNoteRepository)

		categoryRepo.On("FindByName", mock.Anything, "Astrología").
			Return(nil, entities.ErrCategoryNotFound)

		useCase := app.NewNoteUseCase(noteRepo, categoryRepo, newStubCache())
		notes, err := useCase.ListByCategory(ctx, "Astrología")

		require.NoError(t, err)
		assert.Empty(t, notes)
		noteRepo.AssertNotCalled(t, "ListByCategory", mock.Anything, mock.Anything)
	})

	t.Run("Известная категория возвращает ее заметки", func(t *testing.T) {
		categoryRepo := new(mockCategoryRepository)
		noteRepo := new(mockNoteRepository)

		categoryRepo.On("FindByName", mock.Anything, "Física").
			Return(&entities.Category{ID: 2, Name: "Física"}, nil)
		noteRepo.On("ListByCategory", mock.Anything, int64(2)).
			Return([]*entities.Note{{ID: 4, Title: "Cinemática", Category: "Física"}}, nil)

		useCase := app.NewNoteUseCase(noteRepo, categoryRepo, newStubCache())
		notes, err := useCase.ListByCategory(ctx, "Física")

		require.NoError(t, err)
		require.Len(t, notes, 1)
		assert.Equal(t, "Cinemática", notes[0].Title)
	})
}

func TestNoteUseCase_Update(t *testing.T) {
	ctx := testContext(t)

	stored := func() *entities.Note {
		return &entities.Note{ID: 5, Title: "Old title", Preview: "old", UserID: 1, CategoryID: 2}
	}

	t.Run("Владелец обновляет заметку, кэш инвалидируется", func(t *testing.T) {
		noteRepo := new(mockNoteRepository)
		noteCache := newStubCache()

		require.NoError(t, noteCache.Set(ctx, "note:detail:5", `{"id":5}`, 0))

		newTitle := "New title"
		noteRepo.On("FindByID", mock.Anything, int64(5)).Return(stored(), nil)
		noteRepo.On("Update", mock.Anything, mock.MatchedBy(func(note *entities.Note) bool {
			return note.ID == 5 && note.Title == "New title" && note.Preview == "old"
		})).Return(&entities.Note{ID: 5, Title: "New title", UserID: 1}, nil)

		useCase := app.NewNoteUseCase(noteRepo, new(mockCategoryRepository), noteCache)
		updated, err := useCase.Update(ctx, 1, 5, api.UpdateNoteInput{Title: &newTitle})

		require.NoError(t, err)
		assert.Equal(t, "New title", updated.Title)

		cached, err := noteCache.Get(ctx, "note:detail:5")
		require.NoError(t, err)
		assert.Empty(t, cached)

		noteRepo.AssertExpectations(t)
	})

	t.Run("Чужая заметка недоступна для изменения", func(t *testing.T) {
		noteRepo := new(mockNoteRepository)

		noteRepo.On("FindByID", mock.Anything, int64(5)).Return(stored(), nil)

		newTitle := "Hijacked"
		useCase := app.NewNoteUseCase(noteRepo, new(mockCategoryRepository), newStubCache())
		updated, err := useCase.Update(ctx, 42, 5, api.UpdateNoteInput{Title: &newTitle})

		assert.Nil(t, updated)
		assert.ErrorIs(t, err, entities.ErrForbidden)
		noteRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("Пустой заголовок в обновлении отклоняется", func(t *testing.T) {
		noteRepo := new(mockNoteRepository)

		noteRepo.On("FindByID", mock.Anything, int64(5)).Return(stored(), nil)

		empty := ""
		useCase := app.NewNoteUseCase(noteRepo, new(mockCategoryRepository), newStubCache())
		updated, err := useCase.Update(ctx, 1, 5, api.UpdateNoteInput{Title: &empty})

		assert.Nil(t, updated)
		assert.ErrorIs(t, err, entities.ErrEmptyTitle)
	})
}

func TestNoteUseCase_Delete(t *testing.T) {
	ctx := testContext(t)

	stored := &entities.Note{ID: 6, Title: "to delete", UserID: 1}

	t.Run("Владелец удаляет заметку", func(t *testing.T) {
		noteRepo := new(mockNoteRepository)
		noteCache := newStubCache()

		require.NoError(t, noteCache.Set(ctx, "note:detail:6", `{"id":6}`, 0))

		noteRepo.On("FindByID", mock.Anything, int64(6)).Return(stored, nil)
		noteRepo.On("Delete", mock.Anything, int64(6)).Return(nil)

		useCase := app.NewNoteUseCase(noteRepo, new(mockCategoryRepository), noteCache)
		err := useCase.Delete(ctx, 1, 6)

		require.NoError(t, err)

		cached, err := noteCache.Get(ctx, "note:detail:6")
		require.NoError(t, err)
		assert.Empty(t, cached)
	})

	t.Run("Чужая заметка недоступна для удаления", func(t *testing.T) {
		noteRepo := new(mockNoteRepository)

		noteRepo.On("FindByID", mock.Anything, int64(6)).Return(stored, nil)

		useCase := app.NewNoteUseCase(noteRepo, new(mockCategoryRepository), newStubCache())
		err := useCase.Delete(ctx, 42, 6)

		assert.ErrorIs(t, err, entities.ErrForbidden)
		noteRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})

	t.Run("Удаление несуществующей заметки", func(t *testing.T) {
		noteRepo := new(mockNoteRepository)

		noteRepo.On("FindByID", mock.Anything, int64(404)).
			Return(nil, entities.ErrNoteNotFound)

		useCase := app.NewNoteUseCase(noteRepo, new(mockCategoryRepository), newStubCache())
		err := useCase.Delete(ctx, 1, 404)

		assert.ErrorIs(t, err, entities.ErrNoteNotFound)
	})
}

func TestNoteUseCase_IncrementDownloads(t *testing.T) {
	ctx := testContext(t)

	t.Run("Счетчик увеличивается и кэш инвалидируется", func(t *testing.T) {
		noteRepo := new(mockNoteRepository)
		noteCache := newStubCache()

		require.NoError(t, noteCache.Set(ctx, "note:detail:8", `{"id":8}`, 0))

		noteRepo.On("IncrementDownloads", mock.Anything, int64(8)).
			Return(&entities.Note{ID: 8, Downloads: 4}, nil)

		useCase := app.NewNoteUseCase(noteRepo, new(mockCategoryRepository), noteCache)
		note, err := useCase.IncrementDownloads(ctx, 8)

		require.NoError(t, err)
		assert.Equal(t, 4, note.Downloads)

		cached, err := noteCache.Get(ctx, "note:detail:8")
		require.NoError(t, err)
		assert.Empty(t, cached)
	})

	t.Run("Скачивание несуществующей заметки", func(t *testing.T) {
		noteRepo := new(mockNoteRepository)

		noteRepo.On("IncrementDownloads", mock.Anything, int64(404)).
			Return(nil, entities.ErrNoteNotFound)

		useCase := app.NewNoteUseCase(noteRepo, new(mockCategoryRepository), newStubCache())
		note, err := useCase.IncrementDownloads(ctx, 404)

		assert.Nil(t, note)
		assert.ErrorIs(t, err, entities.ErrNoteNotFound)
	})
}

func TestNoteUseCase_UpdateRating(t *testing.T) {
	ctx := testContext(t)

	t.Run("Рейтинг заменяется переданным значением", func(t *testing.T) {
		noteRepo := new(mockNoteRepository)

		noteRepo.On("UpdateRating", mock.Anything, int64(9), 5).
			Return(&entities.Note{ID: 9, Rating: 5}, nil)

		useCase := app.NewNoteUseCase(noteRepo, new(mockCategoryRepository), newStubCache())
		note, err := useCase.UpdateRating(ctx, 9, 5)

		require.NoError(t, err)
		assert.Equal(t, 5, note.Rating)
	})
}
