package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"eventbooking/internal/domain"
)

const eventColumns = `id, name, description, date, location, created_at, updated_at`

// sortColumns maps the sortBy values accepted by List to event columns.
var sortColumns = map[string]string{
	"id":          "e.id",
	"name":        "e.name",
	"description": "e.description",
	"date":        "e.date",
	"location":    "e.location",
	"createdAt":   "e.created_at",
	"created_at":  "e.created_at",
	"updatedAt":   "e.updated_at",
	"updated_at":  "e.updated_at",
}

type eventRepository struct {
	DB *sql.DB
}

func NewEventRepository(db *sql.DB) domain.EventRepository {
	return &eventRepository{
		DB: db,
	}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEvent(row rowScanner, extra ...any) (*domain.Event, error) {
	e := &domain.Event{}
	var descNull, locNull sql.NullString
	dest := append([]any{&e.ID, &e.Name, &descNull, &e.Date, &locNull, &e.CreatedAt, &e.UpdatedAt}, extra...)
	if err := row.Scan(dest...); err != nil {
		return nil, err
	}
	if descNull.Valid {
		e.Description = &descNull.String
	}
	if locNull.Valid {
		e.Location = &locNull.String
	}
	return e, nil
}

func (r *eventRepository) Create(ctx context.Context, e *domain.Event) error {
	query := `
		INSERT INTO events (name, description, date, location)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at
	`
	return r.DB.QueryRowContext(ctx, query, e.Name, e.Description, e.Date, e.Location).
		Scan(&e.ID, &e.CreatedAt, &e.UpdatedAt)
}

func (r *eventRepository) List(ctx context.Context, userID int64, filter domain.EventFilter, q domain.EventQuery) ([]*domain.EventWithBooking, error) {
	orderBy, err := orderClause(q.SortBy, q.SortType)
	if err != nil {
		return nil, err
	}

	args := []any{userID}
	var where []string
	if filter.Name != nil {
		args = append(args, *filter.Name)
		where = append(where, fmt.Sprintf("e.name = $%d", len(args)))
	}
	if filter.Date != nil {
		args = append(args, *filter.Date)
		where = append(where, fmt.Sprintf("e.date = $%d", len(args)))
	}
	if filter.Location != nil {
		args = append(args, *filter.Location)
		where = append(where, fmt.Sprintf("e.location = $%d", len(args)))
	}
	whereClause := ""
	if len(where) > 0 {
		whereClause = "WHERE " + strings.Join(where, " AND ")
	}
	args = append(args, q.Limit, q.Offset)

	query := fmt.Sprintf(`
		SELECT e.id, e.name, e.description, e.date, e.location, e.created_at, e.updated_at,
			EXISTS (SELECT 1 FROM user_events ue WHERE ue.event_id = e.id AND ue.user_id = $1) AS is_booked
		FROM events e
		%s
		ORDER BY %s
		LIMIT $%d OFFSET $%d
	`, whereClause, orderBy, len(args)-1, len(args))

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	events := make([]*domain.EventWithBooking, 0)
	for rows.Next() {
		var booked bool
		e, err := scanEvent(rows, &booked)
		if err != nil {
			return nil, err
		}
		events = append(events, &domain.EventWithBooking{Event: *e, IsBooked: booked})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return events, nil
}

// orderClause builds the ORDER BY expression. id is always the last key so pages never overlap.
func orderClause(sortBy string, sortType domain.SortType) (string, error) {
	if sortBy == "" {
		return "e.id ASC", nil
	}
	col, ok := sortColumns[sortBy]
	if !ok {
		return "", fmt.Errorf("%w: unknown sort field %q", domain.ErrInvalidInput, sortBy)
	}
	var dir string
	switch sortType {
	case domain.SortAsc:
		dir = "ASC"
	case domain.SortDesc:
		dir = "DESC"
	default:
		return "", fmt.Errorf("%w: sort type must be asc or desc", domain.ErrInvalidInput)
	}
	if col == "e.id" {
		return "e.id " + dir, nil
	}
	return fmt.Sprintf("%s %s, e.id %s", col, dir, dir), nil
}

func (r *eventRepository) GetByID(ctx context.Context, id int64) (*domain.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events WHERE id = $1`
	e, err := scanEvent(r.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return e, nil
}

func (r *eventRepository) Update(ctx context.Context, id int64, u domain.EventUpdate) (*domain.Event, error) {
	if u.IsEmpty() {
		return nil, fmt.Errorf("%w: at least one field is required", domain.ErrInvalidInput)
	}
	setClauses := []string{"updated_at = NOW()"}
	args := []any{}
	n := 1
	if u.Name != nil {
		setClauses = append(setClauses, fmt.Sprintf("name = $%d", n))
		args = append(args, *u.Name)
		n++
	}
	if u.Description != nil {
		setClauses = append(setClauses, fmt.Sprintf("description = $%d", n))
		args = append(args, *u.Description)
		n++
	}
	if u.Date != nil {
		setClauses = append(setClauses, fmt.Sprintf("date = $%d", n))
		args = append(args, *u.Date)
		n++
	}
	if u.Location != nil {
		setClauses = append(setClauses, fmt.Sprintf("location = $%d", n))
		args = append(args, *u.Location)
		n++
	}
	args = append(args, id)
	query := fmt.Sprintf(`
		UPDATE events SET %s
		WHERE id = $%d
		RETURNING %s
	`, strings.Join(setClauses, ", "), n, eventColumns)
	e, err := scanEvent(r.DB.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return e, nil
}

func (r *eventRepository) Delete(ctx context.Context, id int64) (*domain.Event, error) {
	query := `DELETE FROM events WHERE id = $1 RETURNING ` + eventColumns
	e, err := scanEvent(r.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return e, nil
}
