package postgres_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"studynotes/internal/adapters/postgres"
	"studynotes/internal/domain/entities"
	"studynotes/internal/domain/services"
	"studynotes/pkg/logger"
)

func testContext(t *testing.T) context.Context {
	t.Helper()

	testLogger, err := logger.NewLogger(logger.Development, "debug")
	require.NoError(t, err)

	return logger.NewContext(context.Background(), testLogger)
}

func TestUserRepository_Create(t *testing.T) {
	ctx := testContext(t)

	inputUser := &entities.User{
		Name:         "newuser",
		Email:        "new@example.com",
		PasswordHash: "hashed_new_password",
	}

	createdAt := time.Now().UTC().Truncate(time.Microsecond)

	t.Run("Успешное создание пользователя", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectQuery("INSERT INTO users .+").
			WithArgs(inputUser.Name, inputUser.Email, inputUser.PasswordHash).
			WillReturnRows(
				pgxmock.NewRows([]string{"id", "name", "email", "password_hash", "created_at"}).
					AddRow(int64(1), inputUser.Name, inputUser.Email, inputUser.PasswordHash, createdAt),
			)

		repo := postgres.NewUserRepository(mock)
		createdUser, err := repo.Create(ctx, inputUser)

		require.NoError(t, err)
		assert.NotNil(t, createdUser)
		assert.Equal(t, int64(1), createdUser.ID)
		assert.Equal(t, inputUser.Email, createdUser.Email)
		assert.Equal(t, inputUser.Name, createdUser.Name)
		assert.Equal(t, createdAt, createdUser.CreatedAt)

		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Дублирующийся email отображается в доменную ошибку", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectQuery("INSERT INTO users .+").
			WithArgs(inputUser.Name, inputUser.Email, inputUser.PasswordHash).
			WillReturnError(&pgconn.PgError{Code: "23505"})

		repo := postgres.NewUserRepository(mock)
		createdUser, err := repo.Create(ctx, inputUser)

		assert.Nil(t, createdUser)
		assert.ErrorIs(t, err, services.ErrEmailAlreadyExists)

		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Общая ошибка БД", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectQuery("INSERT INTO users .+").
			WithArgs(inputUser.Name, inputUser.Email, inputUser.PasswordHash).
			WillReturnError(errors.New("database connection error"))

		repo := postgres.NewUserRepository(mock)
		createdUser, err := repo.Create(ctx, inputUser)

		assert.Nil(t, createdUser)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "error creating user")

		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestUserRepository_FindByEmail(t *testing.T) {
	ctx := testContext(t)

	t.Run("Пользователь найден", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		createdAt := time.Now().UTC().Truncate(time.Microsecond)
		mock.ExpectQuery("SELECT id, name, email, password_hash, created_at").
			WithArgs("user@example.com").
			WillReturnRows(
				pgxmock.NewRows([]string{"id", "name", "email", "password_hash", "created_at"}).
					AddRow(int64(7), "user", "user@example.com", "hash", createdAt),
			)

		repo := postgres.NewUserRepository(mock)
		user, err := repo.FindByEmail(ctx, "user@example.com")

		require.NoError(t, err)
		assert.Equal(t, int64(7), user.ID)
		assert.Equal(t, "user@example.com", user.Email)

		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Пользователь не найден", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectQuery("SELECT id, name, email, password_hash, created_at").
			WithArgs("missing@example.com").
			WillReturnError(pgx.ErrNoRows)

		repo := postgres.NewUserRepository(mock)
		user, err := repo.FindByEmail(ctx, "missing@example.com")

		assert.Nil(t, user)
		assert.ErrorIs(t, err, entities.ErrUserNotFound)

		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestUserRepository_Update(t *testing.T) {
	ctx := testContext(t)

	user := &entities.User{
		ID:           3,
		Name:         "renamed",
		Email:        "renamed@example.com",
		PasswordHash: "hash",
	}

	t.Run("Обновление несуществующего пользователя", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectQuery("UPDATE users .+").
			WithArgs(user.ID, user.Name, user.Email, user.PasswordHash).
			WillReturnError(pgx.ErrNoRows)

		repo := postgres.NewUserRepository(mock)
		updated, err := repo.Update(ctx, user)

		assert.Nil(t, updated)
		assert.ErrorIs(t, err, entities.ErrUserNotFound)

		require.NoError(t, mock.ExpectationsWereMet())
	})
}
