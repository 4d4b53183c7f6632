package domain

import (
	"context"
	"time"
)

// Event represents a schedulable happening that users can book.
// swagger:model Event
type Event struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description"`
	Date        time.Time `json:"date"`
	Location    *string   `json:"location"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// NewEvent returns a new Event with the given fields. ID is set by the repository on create.
func NewEvent(name string, description *string, date time.Time, location *string) *Event {
	return &Event{
		Name:        name,
		Description: description,
		Date:        date,
		Location:    location,
	}
}

// EventWithBooking is an event annotated with whether the requesting user has booked it.
// swagger:model EventWithBooking
type EventWithBooking struct {
	Event
	IsBooked bool `json:"isBooked"`
}

// EventFilter narrows a list query. Nil fields are ignored; set fields must match exactly.
type EventFilter struct {
	Name     *string
	Date     *time.Time
	Location *string
}

// IsEmpty reports whether no filter field is set.
func (f EventFilter) IsEmpty() bool {
	return f.Name == nil && f.Date == nil && f.Location == nil
}

// EventUpdate carries the fields of a partial update. Nil fields are left unchanged.
type EventUpdate struct {
	Name        *string
	Description *string
	Date        *time.Time
	Location    *string
}

// IsEmpty reports whether the update would change nothing.
func (u EventUpdate) IsEmpty() bool {
	return u.Name == nil && u.Description == nil && u.Date == nil && u.Location == nil
}

// EventRepository defines the interface for event storage
type EventRepository interface {
	Create(ctx context.Context, event *Event) error
	// List returns one page of events matching filter, each flagged with whether userID booked it.
	List(ctx context.Context, userID int64, filter EventFilter, query EventQuery) ([]*EventWithBooking, error)
	GetByID(ctx context.Context, id int64) (*Event, error)
	Update(ctx context.Context, id int64, update EventUpdate) (*Event, error)
	// Delete removes the event and returns the row as it was before deletion.
	Delete(ctx context.Context, id int64) (*Event, error)
}

// EventService defines the business logic for managing and booking events.
type EventService interface {
	CreateEvent(ctx context.Context, event *Event) error
	ListEvents(ctx context.Context, userID int64, filter EventFilter, opts ListOptions) ([]*EventWithBooking, error)
	GetEventByID(ctx context.Context, id int64) (*Event, error)
	UpdateEvent(ctx context.Context, id int64, update EventUpdate) (*Event, error)
	DeleteEvent(ctx context.Context, id int64) (*Event, error)
	BookEvent(ctx context.Context, userID, eventID int64) (*UserEvent, error)
}
