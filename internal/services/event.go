package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"eventbooking/internal/domain"
)

type eventService struct {
	eventRepo      domain.EventRepository
	bookingRepo    domain.BookingRepository
	userRepo       domain.UserRepository
	emailService   domain.EmailService
	logger         *slog.Logger
	contextTimeout time.Duration
}

func NewEventService(eventRepo domain.EventRepository,
	bookingRepo domain.BookingRepository,
	userRepo domain.UserRepository,
	emailService domain.EmailService,
	logger *slog.Logger,
	timeout time.Duration,
) domain.EventService {
	return &eventService{
		eventRepo:      eventRepo,
		bookingRepo:    bookingRepo,
		userRepo:       userRepo,
		emailService:   emailService,
		logger:         logger,
		contextTimeout: timeout,
	}
}

// CreateEvent stores the event. Any storage failure is reported as ErrCreateFailed.
func (s *eventService) CreateEvent(ctx context.Context, event *domain.Event) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if err := s.eventRepo.Create(ctx, event); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrCreateFailed, err)
	}
	return nil
}

// ListEvents returns one page of events matching filter. IsBooked reflects only userID's bookings.
func (s *eventService) ListEvents(ctx context.Context, userID int64, filter domain.EventFilter, opts domain.ListOptions) ([]*domain.EventWithBooking, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	events, err := s.eventRepo.List(ctx, userID, filter, opts.Resolve())
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return nil, err
		}
		return nil, fmt.Errorf("list events: %w", err)
	}
	if events == nil {
		events = []*domain.EventWithBooking{}
	}
	return events, nil
}

func (s *eventService) GetEventByID(ctx context.Context, id int64) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.eventRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	return event, nil
}

// UpdateEvent applies the set fields of update. A missing event is ErrNotFound; any other
// storage failure is ErrUpdateFailed.
func (s *eventService) UpdateEvent(ctx context.Context, id int64, update domain.EventUpdate) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if update.IsEmpty() {
		return nil, fmt.Errorf("%w: at least one field is required", domain.ErrInvalidInput)
	}
	updated, err := s.eventRepo.Update(ctx, id, update)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("%w: %v", domain.ErrUpdateFailed, err)
	}
	return updated, nil
}

func (s *eventService) DeleteEvent(ctx context.Context, id int64) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	deleted, err := s.eventRepo.Delete(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("delete event: %w", err)
	}
	return deleted, nil
}

// BookEvent records a BOOKED reservation of eventID for userID. There is no capacity or
// duplicate check: the same user may book the same event any number of times.
func (s *eventService) BookEvent(ctx context.Context, userID, eventID int64) (*domain.UserEvent, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	booking := domain.NewUserEvent(userID, eventID, time.Now())
	if err := s.bookingRepo.Create(ctx, booking); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("create booking: %w", err)
	}

	if err := s.sendConfirmation(ctx, booking); err != nil {
		s.logger.WarnContext(ctx, "booking confirmation not sent", "booking_id", booking.ID, "err", err)
	}
	return booking, nil
}

func (s *eventService) sendConfirmation(ctx context.Context, booking *domain.UserEvent) error {
	if s.emailService == nil || s.userRepo == nil {
		return nil
	}
	user, err := s.userRepo.GetByID(ctx, booking.UserID)
	if err != nil {
		return fmt.Errorf("get user: %w", err)
	}
	event, err := s.eventRepo.GetByID(ctx, booking.EventID)
	if err != nil {
		return fmt.Errorf("get event: %w", err)
	}
	data := &domain.BookingConfirmationEmailData{
		Email:     user.Email,
		Name:      user.Name,
		EventName: event.Name,
		EventDate: event.Date,
		BookingID: booking.ID,
	}
	if event.Location != nil {
		data.Location = *event.Location
	}
	return s.emailService.SendBookingConfirmation(ctx, data)
}
