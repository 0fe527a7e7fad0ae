package http_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	httpadapter "studynotes/internal/adapters/http"
	"studynotes/internal/domain/entities"
	"studynotes/internal/domain/services"
	"studynotes/internal/ports/api"
)

const (
	testToken  = "valid-token"
	testUserID = int64(1)
)

// stubTokenService принимает единственный заранее известный токен.
type stubTokenService struct{}

func (stubTokenService) GenerateToken(_ context.Context, _ int64, _ string) (string, time.Time, error) {
	return testToken, time.Now().Add(time.Hour), nil
}

func (stubTokenService) ValidateToken(_ context.Context, token string) (*services.JWTClaims, error) {
	if token != testToken {
		return nil, services.ErrInvalidJWTToken
	}
	return &services.JWTClaims{UserID: testUserID, Email: "student@example.com"}, nil
}

type mockAuthUseCase struct {
	mock.Mock
}

func (m *mockAuthUseCase) Register(ctx context.Context, name, email, password string) (*services.AuthToken, error) {
	args := m.Called(ctx, name, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.AuthToken), args.Error(1)
}

func (m *mockAuthUseCase) Login(ctx context.Context, email, password string) (*services.AuthToken, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.AuthToken), args.Error(1)
}

type mockUserUseCase struct {
	mock.Mock
}

func (m *mockUserUseCase) GetProfile(ctx context.Context, userID int64) (*entities.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.User), args.Error(1)
}

func (m *mockUserUseCase) UpdateProfile(ctx context.Context, userID int64, input api.UpdateProfileInput) (*entities.User, error) {
	args := m.Called(ctx, userID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.User), args.Error(1)
}

type mockNoteUseCase struct {
	mock.Mock
}

func (m *mockNoteUseCase) Create(ctx context.Context, userID, categoryID int64, title, preview string) (*entities.Note, error) {
	args := m.Called(ctx, userID, categoryID, title, preview)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Note), args.Error(1)
}

func (m *mockNoteUseCase) Get(ctx context.Context, id int64) (*entities.NoteDetail, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.NoteDetail), args.Error(1)
}

func (m *mockNoteUseCase) ListMine(ctx context.Context, userID int64) ([]*entities.Note, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Note), args.Error(1)
}

func (m *mockNoteUseCase) ListByCategory(ctx context.Context, categoryName string) ([]*entities.Note, error) {
	args := m.Called(ctx, categoryName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Note), args.Error(1)
}

func (m *mockNoteUseCase) Search(ctx context.Context, query string) ([]*entities.Note, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Note), args.Error(1)
}

func (m *mockNoteUseCase) Update(ctx context.Context, userID, noteID int64, input api.UpdateNoteInput) (*entities.Note, error) {
	args := m.Called(ctx, userID, noteID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Note), args.Error(1)
}

func (m *mockNoteUseCase) Delete(ctx context.Context, userID, noteID int64) error {
	args := m.Called(ctx, userID, noteID)
	return args.Error(0)
}

func (m *mockNoteUseCase) IncrementDownloads(ctx context.Context, noteID int64) (*entities.Note, error) {
	args := m.Called(ctx, noteID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Note), args.Error(1)
}

func (m *mockNoteUseCase) UpdateRating(ctx context.Context, noteID int64, rating int) (*entities.Note, error) {
	args := m.Called(ctx, noteID, rating)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Note), args.Error(1)
}

type mockFavoriteUseCase struct {
	mock.Mock
}

func (m *mockFavoriteUseCase) Toggle(ctx context.Context, userID, noteID int64) (bool, error) {
	args := m.Called(ctx, userID, noteID)
	return args.Bool(0), args.Error(1)
}

func (m *mockFavoriteUseCase) ListByUser(ctx context.Context, userID int64) ([]*entities.Note, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Note), args.Error(1)
}

type mockCommentUseCase struct {
	mock.Mock
}

func (m *mockCommentUseCase) Create(ctx context.Context, userID, noteID int64, content string) (*entities.Comment, error) {
	args := m.Called(ctx, userID, noteID, content)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Comment), args.Error(1)
}

func (m *mockCommentUseCase) ListByNote(ctx context.Context, noteID int64) ([]*entities.Comment, error) {
	args := m.Called(ctx, noteID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Comment), args.Error(1)
}

func (m *mockCommentUseCase) Delete(ctx context.Context, userID, commentID int64) error {
	args := m.Called(ctx, userID, commentID)
	return args.Error(0)
}

type mockCategoryUseCase struct {
	mock.Mock
}

func (m *mockCategoryUseCase) Create(ctx context.Context, name string) (*entities.Category, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Category), args.Error(1)
}

func (m *mockCategoryUseCase) List(ctx context.Context) ([]*entities.Category, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Category), args.Error(1)
}

// testUseCases собирает моки всех сценариев, подключенных к маршрутизатору.
type testUseCases struct {
	auth       *mockAuthUseCase
	user       *mockUserUseCase
	notes      *mockNoteUseCase
	favorites  *mockFavoriteUseCase
	comments   *mockCommentUseCase
	categories *mockCategoryUseCase
}

func newTestApp(t *testing.T) (*fiber.App, *testUseCases) {
	t.Helper()

	useCases := &testUseCases{
		auth:       new(mockAuthUseCase),
		user:       new(mockUserUseCase),
		notes:      new(mockNoteUseCase),
		favorites:  new(mockFavoriteUseCase),
		comments:   new(mockCommentUseCase),
		categories: new(mockCategoryUseCase),
	}

	app := fiber.New()
	httpadapter.SetupRouter(app, httpadapter.UseCases{
		Auth:       useCases.auth,
		User:       useCases.user,
		Notes:      useCases.notes,
		Favorites:  useCases.favorites,
		Comments:   useCases.comments,
		Categories: useCases.categories,
	}, stubTokenService{})

	return app, useCases
}

func jsonRequest(method, target, body string) *http.Request {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	req.Header.Set("Content-Type", "application/json")
	return req
}

func decodeBody(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()

	var payload map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&payload))
	return payload
}

func TestRouter_Authentication(t *testing.T) {
	t.Run("Запрос без токена отклоняется до вызова сценария", func(t *testing.T) {
		app, useCases := newTestApp(t)

		resp, err := app.Test(jsonRequest(http.MethodGet, "/api/notes/", ""))

		require.NoError(t, err)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		assert.Equal(t, "no authorization header provided", decodeBody(t, resp)["error"])
		useCases.notes.AssertNotCalled(t, "ListMine", mock.Anything, mock.Anything)
	})

	t.Run("Заголовок без схемы Bearer отклоняется", func(t *testing.T) {
		app, useCases := newTestApp(t)

		req := jsonRequest(http.MethodGet, "/api/notes/", "")
		req.Header.Set("Authorization", "Token "+testToken)
		resp, err := app.Test(req)

		require.NoError(t, err)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		assert.Equal(t, "invalid token format", decodeBody(t, resp)["error"])
		useCases.notes.AssertNotCalled(t, "ListMine", mock.Anything, mock.Anything)
	})

	t.Run("Искаженный токен отклоняется", func(t *testing.T) {
		app, useCases := newTestApp(t)

		req := jsonRequest(http.MethodDelete, "/api/notes/42", "")
		req.Header.Set("Authorization", "Bearer not-a-real-token")
		resp, err := app.Test(req)

		require.NoError(t, err)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		assert.Equal(t, "invalid or expired token", decodeBody(t, resp)["error"])
		useCases.notes.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Удаление без токена отклоняется со статусом 401", func(t *testing.T) {
		app, useCases := newTestApp(t)

		resp, err := app.Test(jsonRequest(http.MethodDelete, "/api/notes/42", ""))

		require.NoError(t, err)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		useCases.notes.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestRouter_ErrorMapping(t *testing.T) {
	t.Run("Несуществующая заметка дает 404", func(t *testing.T) {
		app, useCases := newTestApp(t)

		useCases.notes.On("Get", mock.Anything, int64(42)).
			Return(nil, fmt.Errorf("fetching note: %w", entities.ErrNoteNotFound))

		resp, err := app.Test(jsonRequest(http.MethodGet, "/api/notes/42", ""))

		require.NoError(t, err)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		body := decodeBody(t, resp)
		assert.Contains(t, body["error"], "note not found")
	})

	t.Run("Чужая заметка дает 403", func(t *testing.T) {
		app, useCases := newTestApp(t)

		useCases.notes.On("Delete", mock.Anything, testUserID, int64(42)).
			Return(fmt.Errorf("checking note ownership: %w", entities.ErrForbidden))

		req := jsonRequest(http.MethodDelete, "/api/notes/42", "")
		req.Header.Set("Authorization", "Bearer "+testToken)
		resp, err := app.Test(req)

		require.NoError(t, err)
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	})

	t.Run("Занятый email дает 409", func(t *testing.T) {
		app, useCases := newTestApp(t)

		useCases.auth.On("Register", mock.Anything, "student", "taken@example.com", "long-enough-password").
			Return(nil, fmt.Errorf("email already registered: %w", services.ErrEmailAlreadyExists))

		resp, err := app.Test(jsonRequest(http.MethodPost, "/api/auth/register",
			`{"name":"student","email":"taken@example.com","password":"long-enough-password"}`))

		require.NoError(t, err)
		assert.Equal(t, http.StatusConflict, resp.StatusCode)
	})

	t.Run("Неверные учетные данные дают 401", func(t *testing.T) {
		app, useCases := newTestApp(t)

		useCases.auth.On("Login", mock.Anything, "student@example.com", "wrong-password").
			Return(nil, fmt.Errorf("invalid credentials: %w", services.ErrInvalidCredentials))

		resp, err := app.Test(jsonRequest(http.MethodPost, "/api/auth/login",
			`{"email":"student@example.com","password":"wrong-password"}`))

		require.NoError(t, err)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("Несуществующая категория заметки дает 400", func(t *testing.T) {
		app, useCases := newTestApp(t)

		useCases.notes.On("Create", mock.Anything, testUserID, int64(99), "Integrales dobles", "").
			Return(nil, fmt.Errorf("validating note: %w", entities.ErrInvalidCategory))

		req := jsonRequest(http.MethodPost, "/api/notes/",
			`{"title":"Integrales dobles","category_id":99}`)
		req.Header.Set("Authorization", "Bearer "+testToken)
		resp, err := app.Test(req)

		require.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("Нечисловой идентификатор дает 400 без вызова сценария", func(t *testing.T) {
		app, useCases := newTestApp(t)

		resp, err := app.Test(jsonRequest(http.MethodGet, "/api/notes/abc", ""))

		require.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "invalid note id", decodeBody(t, resp)["error"])
		useCases.notes.AssertNotCalled(t, "Get", mock.Anything, mock.Anything)
	})

	t.Run("Внутренняя ошибка не раскрывает деталей", func(t *testing.T) {
		app, useCases := newTestApp(t)

		useCases.notes.On("Get", mock.Anything, int64(42)).
			Return(nil, errors.New("pg: connection reset by peer"))

		resp, err := app.Test(jsonRequest(http.MethodGet, "/api/notes/42", ""))

		require.NoError(t, err)
		assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)

		raw, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		assert.Contains(t, string(raw), "internal server error")
		assert.NotContains(t, string(raw), "connection reset")
	})
}

func TestRouter_Responses(t *testing.T) {
	t.Run("Профиль не содержит пароля", func(t *testing.T) {
		app, useCases := newTestApp(t)

		useCases.user.On("GetProfile", mock.Anything, testUserID).
			Return(&entities.User{
				ID:           testUserID,
				Name:         "student",
				Email:        "student@example.com",
				PasswordHash: "secret-hash",
			}, nil)

		req := jsonRequest(http.MethodGet, "/api/auth/me", "")
		req.Header.Set("Authorization", "Bearer "+testToken)
		resp, err := app.Test(req)

		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		raw, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		assert.NotContains(t, string(raw), "secret-hash")
		assert.NotContains(t, string(raw), "password")

		var profile map[string]any
		require.NoError(t, json.Unmarshal(raw, &profile))
		assert.Equal(t, "student", profile["name"])
		assert.Equal(t, "student@example.com", profile["email"])
	})

	t.Run("Детальная проекция содержит автора и комментарии", func(t *testing.T) {
		app, useCases := newTestApp(t)

		useCases.notes.On("Get", mock.Anything, int64(7)).
			Return(&entities.NoteDetail{
				Note: entities.Note{ID: 7, Title: "Cinemática", Author: "student", Category: "Física"},
				Comments: []*entities.Comment{
					{ID: 1, Content: "muy útil", NoteID: 7, Author: "reader"},
				},
			}, nil)

		resp, err := app.Test(jsonRequest(http.MethodGet, "/api/notes/7", ""))

		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		body := decodeBody(t, resp)
		assert.Equal(t, "student", body["author"])
		assert.Equal(t, "Física", body["category"])
		comments, ok := body["comments"].([]any)
		require.True(t, ok)
		require.Len(t, comments, 1)
	})

	t.Run("Переключение избранного возвращает итоговое состояние", func(t *testing.T) {
		app, useCases := newTestApp(t)

		useCases.favorites.On("Toggle", mock.Anything, testUserID, int64(5)).Return(true, nil)

		req := jsonRequest(http.MethodPost, "/api/notes/5/favorite", "")
		req.Header.Set("Authorization", "Bearer "+testToken)
		resp, err := app.Test(req)

		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		body := decodeBody(t, resp)
		assert.Equal(t, true, body["favorite"])
	})
}
