package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/require"

	"github.com/voicedeck/recorder-api/internal/core/domain"
)

func newUserRepoMock(t *testing.T) (pgxmock.PgxPoolIface, *UserRepository) {
	t.Helper()

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)

	return mock, NewUserRepository(mock)
}

func TestUserRepositoryCreate(t *testing.T) {
	mock, repo := newUserRepoMock(t)

	now := time.Now()
	mock.ExpectQuery("INSERT INTO users").
		WithArgs("alice", "alice@example.com", "hash").
		WillReturnRows(pgxmock.NewRows([]string{"id", "created_at"}).AddRow(int64(7), now))

	created, err := repo.Create(context.Background(), &domain.User{
		Username:     "alice",
		Email:        "alice@example.com",
		PasswordHash: "hash",
	})
	require.NoError(t, err)
	require.Equal(t, int64(7), created.ID)
	require.Equal(t, "alice@example.com", created.Email)
	require.Equal(t, now, created.CreatedAt)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepositoryCreateDuplicateEmail(t *testing.T) {
	mock, repo := newUserRepoMock(t)

	mock.ExpectQuery("INSERT INTO users").
		WithArgs("alice", "alice@example.com", "hash").
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"})

	_, err := repo.Create(context.Background(), &domain.User{
		Username:     "alice",
		Email:        "alice@example.com",
		PasswordHash: "hash",
	})
	require.ErrorIs(t, err, domain.ErrUserExists)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepositoryCreateDuplicateUsername(t *testing.T) {
	mock, repo := newUserRepoMock(t)

	// Same username under a fresh email still violates users_username_key.
	mock.ExpectQuery("INSERT INTO users").
		WithArgs("alice", "other@example.com", "hash").
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "users_username_key"})

	_, err := repo.Create(context.Background(), &domain.User{
		Username:     "alice",
		Email:        "other@example.com",
		PasswordHash: "hash",
	})
	require.ErrorIs(t, err, domain.ErrUserExists)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepositoryFindByEmail(t *testing.T) {
	mock, repo := newUserRepoMock(t)

	now := time.Now()
	mock.ExpectQuery("SELECT id, username, email, password_hash, created_at FROM users").
		WithArgs("alice@example.com").
		WillReturnRows(pgxmock.NewRows([]string{"id", "username", "email", "password_hash", "created_at"}).
			AddRow(int64(7), "alice", "alice@example.com", "hash", now))

	u, err := repo.FindByEmail(context.Background(), "alice@example.com")
	require.NoError(t, err)
	require.Equal(t, int64(7), u.ID)
	require.Equal(t, "alice", u.Username)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepositoryFindByEmailNotFound(t *testing.T) {
	mock, repo := newUserRepoMock(t)

	mock.ExpectQuery("SELECT id, username, email, password_hash, created_at FROM users").
		WithArgs("nobody@example.com").
		WillReturnError(pgx.ErrNoRows)

	_, err := repo.FindByEmail(context.Background(), "nobody@example.com")
	require.ErrorIs(t, err, domain.ErrUserNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepositoryFindByIDNotFound(t *testing.T) {
	mock, repo := newUserRepoMock(t)

	mock.ExpectQuery("SELECT id, username, email, password_hash, created_at FROM users").
		WithArgs(int64(42)).
		WillReturnError(pgx.ErrNoRows)

	_, err := repo.FindByID(context.Background(), 42)
	require.ErrorIs(t, err, domain.ErrUserNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepositoryFindByIDQueryError(t *testing.T) {
	mock, repo := newUserRepoMock(t)

	mock.ExpectQuery("SELECT id, username, email, password_hash, created_at FROM users").
		WithArgs(int64(42)).
		WillReturnError(errors.New("connection reset"))

	_, err := repo.FindByID(context.Background(), 42)
	require.Error(t, err)
	require.NotErrorIs(t, err, domain.ErrUserNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}
