package domain

import (
	"context"
	"time"
)

// BookingStatus is the state of a booking row.
type BookingStatus string

const (
	BookingStatusBooked BookingStatus = "BOOKED"
)

// UserEvent records one user's reservation against one event.
// The same user may hold several rows for the same event.
// swagger:model UserEvent
type UserEvent struct {
	ID        int64         `json:"id"`
	UserID    int64         `json:"userId"`
	EventID   int64         `json:"eventId"`
	Status    BookingStatus `json:"status"`
	CreatedAt time.Time     `json:"createdAt"`
}

// NewUserEvent returns a booking in the BOOKED state. ID is set by the repository on create.
func NewUserEvent(userID, eventID int64, createdAt time.Time) *UserEvent {
	return &UserEvent{
		UserID:    userID,
		EventID:   eventID,
		Status:    BookingStatusBooked,
		CreatedAt: createdAt,
	}
}

// BookingRepository defines storage operations for bookings.
type BookingRepository interface {
	// Create inserts the booking only if its event exists; otherwise it returns ErrNotFound.
	Create(ctx context.Context, booking *UserEvent) error
}
