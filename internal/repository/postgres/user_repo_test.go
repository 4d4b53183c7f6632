package postgres

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"eventbooking/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/require"
)

var userRowColumns = []string{"id", "email", "password_hash", "name", "role", "is_email_verified", "created_at", "updated_at"}

func TestUserRepository_Create(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 2, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		mock    func(mock sqlmock.Sqlmock)
		wantID  int64
		wantErr bool
		errIs   error
	}{
		{
			name: "success",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`INSERT INTO users`).
					WithArgs("admin@example.com", "hash", "Admin", "ADMIN", true, now, now).
					WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(1)))
			},
			wantID: 1,
		},
		{
			name: "unique violation returns ErrDuplicateEmail",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`INSERT INTO users`).
					WillReturnError(&pq.Error{Code: "23505"})
			},
			wantErr: true,
			errIs:   domain.ErrDuplicateEmail,
		},
		{
			name: "db error",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`INSERT INTO users`).
					WillReturnError(sql.ErrConnDone)
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			tt.mock(mock)
			repo := NewUserRepository(db)
			u := domain.NewUser("admin@example.com", "Admin", domain.RoleAdmin, now, now)
			u.PasswordHash = "hash"
			u.IsEmailVerified = true
			err = repo.Create(ctx, u)
			if tt.wantErr {
				require.Error(t, err)
				if tt.errIs != nil {
					require.ErrorIs(t, err, tt.errIs)
				}
			} else {
				require.NoError(t, err)
				require.Equal(t, tt.wantID, u.ID)
			}
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestUserRepository_GetByEmail(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 2, 1, 12, 0, 0, 0, time.UTC)

	t.Run("success", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`FROM users\s+WHERE email = \$1`).
			WithArgs("alice@example.com").
			WillReturnRows(sqlmock.NewRows(userRowColumns).
				AddRow(int64(7), "alice@example.com", "hash", "Alice", "USER", false, now, now))

		u, err := NewUserRepository(db).GetByEmail(ctx, "alice@example.com")
		require.NoError(t, err)
		require.Equal(t, int64(7), u.ID)
		require.Equal(t, domain.RoleUser, u.Role)
		require.Equal(t, "hash", u.PasswordHash)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("not found", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`FROM users`).WillReturnError(sql.ErrNoRows)

		_, err = NewUserRepository(db).GetByEmail(ctx, "nobody@example.com")
		require.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestUserRepository_GetByID(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 2, 1, 12, 0, 0, 0, time.UTC)

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`FROM users\s+WHERE id = \$1`).
		WithArgs(int64(8)).
		WillReturnRows(sqlmock.NewRows(userRowColumns).
			AddRow(int64(8), "bob@example.com", "hash", "Bob", "USER", true, now, now))

	u, err := NewUserRepository(db).GetByID(ctx, 8)
	require.NoError(t, err)
	require.Equal(t, "bob@example.com", u.Email)
	require.True(t, u.IsEmailVerified)
	require.NoError(t, mock.ExpectationsWereMet())
}
