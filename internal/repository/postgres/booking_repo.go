package postgres

import (
	"context"
	"database/sql"
	"errors"

	"eventbooking/internal/domain"
)

type bookingRepository struct {
	DB *sql.DB
}

func NewBookingRepository(db *sql.DB) domain.BookingRepository {
	return &bookingRepository{
		DB: db,
	}
}

// Create checks the event and inserts the booking in one statement, so a concurrent
// delete cannot leave a booking pointing at a missing event.
func (r *bookingRepository) Create(ctx context.Context, b *domain.UserEvent) error {
	query := `
		INSERT INTO user_events (user_id, event_id, status, created_at)
		SELECT $1::bigint, $2::bigint, $3::text, $4::timestamptz
		WHERE EXISTS (SELECT 1 FROM events WHERE id = $2::bigint)
		RETURNING id
	`
	err := r.DB.QueryRowContext(ctx, query, b.UserID, b.EventID, string(b.Status), b.CreatedAt).Scan(&b.ID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.ErrNotFound
		}
		return err
	}
	return nil
}
