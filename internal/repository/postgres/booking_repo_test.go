package postgres

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"eventbooking/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
)

func TestBookingRepository_Create(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		mock    func(mock sqlmock.Sqlmock)
		wantID  int64
		wantErr error
	}{
		{
			name: "success",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`INSERT INTO user_events \(user_id, event_id, status, created_at\)`).
					WithArgs(int64(7), int64(1), "BOOKED", now).
					WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(11)))
			},
			wantID: 11,
		},
		{
			name: "event missing inserts nothing",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`WHERE EXISTS \(SELECT 1 FROM events WHERE id = \$2::bigint\)`).
					WithArgs(int64(7), int64(1), "BOOKED", now).
					WillReturnRows(sqlmock.NewRows([]string{"id"}))
			},
			wantErr: domain.ErrNotFound,
		},
		{
			name: "db error",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`INSERT INTO user_events`).
					WillReturnError(sql.ErrConnDone)
			},
			wantErr: sql.ErrConnDone,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			tt.mock(mock)
			repo := NewBookingRepository(db)
			b := domain.NewUserEvent(7, 1, now)
			err = repo.Create(ctx, b)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				require.NoError(t, mock.ExpectationsWereMet())
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.wantID, b.ID)
			require.Equal(t, domain.BookingStatusBooked, b.Status)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}
