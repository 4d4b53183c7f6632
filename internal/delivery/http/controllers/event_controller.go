package controllers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	h "eventbooking/internal/delivery/http/helpers"
	"eventbooking/internal/delivery/http/middleware"
	"eventbooking/internal/domain"
)

// CreateEventRequest is the request body for POST /events.
type CreateEventRequest struct {
	Name        string     `json:"name" validate:"required"`
	Description *string    `json:"description"`
	Date        *time.Time `json:"date" validate:"required"`
	Location    *string    `json:"location"`
}

// UpdateEventRequest is the request body for PATCH /events/{eventId}. Omitted fields are unchanged.
type UpdateEventRequest struct {
	Name        *string    `json:"name" validate:"omitempty,min=1"`
	Description *string    `json:"description" validate:"omitempty,min=1"`
	Date        *time.Time `json:"date"`
	Location    *string    `json:"location" validate:"omitempty,min=1"`
}

// Validate implements Validator.
func (u UpdateEventRequest) Validate() []string {
	if u.Name == nil && u.Description == nil && u.Date == nil && u.Location == nil {
		return []string{"at least one field is required"}
	}
	return nil
}

func (u UpdateEventRequest) toDomain() domain.EventUpdate {
	return domain.EventUpdate{
		Name:        u.Name,
		Description: u.Description,
		Date:        u.Date,
		Location:    u.Location,
	}
}

// ListEventsQuery holds the query parameters accepted by GET /events.
type ListEventsQuery struct {
	Name     *string    `query:"name"`
	Date     *time.Time `query:"date"`
	Location *string    `query:"location"`
	SortBy   string     `query:"sortBy"`
	SortType string     `query:"sortType" validate:"omitempty,oneof=asc desc"`
	Limit    *int       `query:"limit" validate:"omitempty,min=1"`
	Page     *int       `query:"page" validate:"omitempty,min=1"`
}

func parseListEventsQuery(r *http.Request) (*ListEventsQuery, []string) {
	q := &ListEventsQuery{
		Name:     h.QueryString(r, "name"),
		Location: h.QueryString(r, "location"),
	}
	if v := h.QueryString(r, "sortBy"); v != nil {
		q.SortBy = *v
	}
	if v := h.QueryString(r, "sortType"); v != nil {
		q.SortType = strings.ToLower(*v)
	}
	var errs []string
	var err error
	if q.Date, err = h.QueryTime(r, "date"); err != nil {
		errs = append(errs, err.Error())
	}
	if q.Limit, err = h.QueryInt(r, "limit"); err != nil {
		errs = append(errs, err.Error())
	}
	if q.Page, err = h.QueryInt(r, "page"); err != nil {
		errs = append(errs, err.Error())
	}
	if len(errs) > 0 {
		return nil, errs
	}
	if errs := h.ValidateStruct(q); len(errs) > 0 {
		return nil, errs
	}
	return q, nil
}

func (q *ListEventsQuery) filter() domain.EventFilter {
	return domain.EventFilter{Name: q.Name, Date: q.Date, Location: q.Location}
}

func (q *ListEventsQuery) options() domain.ListOptions {
	opts := domain.ListOptions{SortBy: q.SortBy, SortType: domain.SortType(q.SortType)}
	if q.Limit != nil {
		opts.Limit = *q.Limit
	}
	if q.Page != nil {
		opts.Page = *q.Page
	}
	return opts
}

// EventSuccessResponse is the success envelope for endpoints returning one event.
type EventSuccessResponse struct {
	Data  *domain.Event `json:"data"`
	Error *h.APIError   `json:"error"`
}

// ListEventsSuccessResponse is the success envelope for GET /events.
type ListEventsSuccessResponse struct {
	Data  []*domain.EventWithBooking `json:"data"`
	Error *h.APIError                `json:"error"`
}

// BookEventSuccessResponse is the success envelope for POST /events/{eventId}/book.
type BookEventSuccessResponse struct {
	Data  *domain.UserEvent `json:"data"`
	Error *h.APIError       `json:"error"`
}

type EventController struct {
	Logger  *slog.Logger
	Service domain.EventService
}

func NewEventController(logger *slog.Logger, svc domain.EventService) *EventController {
	return &EventController{
		Logger:  logger,
		Service: svc,
	}
}

// writeServiceError maps service errors to status codes. Unknown errors are logged and hidden.
func (c *EventController) writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		h.WriteStatusError(w, http.StatusNotFound, "event not found")
	case errors.Is(err, domain.ErrCreateFailed):
		h.WriteStatusError(w, http.StatusBadRequest, domain.ErrCreateFailed.Error())
	case errors.Is(err, domain.ErrUpdateFailed):
		h.WriteStatusError(w, http.StatusBadRequest, domain.ErrUpdateFailed.Error())
	case errors.Is(err, domain.ErrInvalidInput):
		h.WriteStatusError(w, http.StatusBadRequest, err.Error())
	default:
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		h.WriteStatusError(w, http.StatusInternalServerError, "internal server error")
	}
}

// CreateEvent godoc
// @Summary Create a new event
// @Description Create an event. Requires the manageEvents right.
// @Tags events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param event body CreateEventRequest true "Event data"
// @Success 201 {object} controllers.EventSuccessResponse "data contains the created event"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Router /events [post]
func (c *EventController) CreateEvent(w http.ResponseWriter, r *http.Request) {
	var req CreateEventRequest
	if !h.DecodeAndValidate(w, r, &req) {
		return
	}
	event := domain.NewEvent(req.Name, req.Description, *req.Date, req.Location)
	if err := c.Service.CreateEvent(r.Context(), event); err != nil {
		c.writeServiceError(w, r, err)
		return
	}
	h.WriteJSONSuccess(w, http.StatusCreated, event)
}

// ListEvents godoc
// @Summary List events
// @Description Returns one page of events. Each event carries isBooked for the authenticated user.
// @Tags events
// @Produce json
// @Security BearerAuth
// @Param name query string false "Exact event name"
// @Param date query string false "Exact event date (RFC 3339)"
// @Param location query string false "Exact event location"
// @Param sortBy query string false "Sort field, optionally field:asc or field:desc"
// @Param sortType query string false "asc or desc (default desc)"
// @Param limit query int false "Page size (default 10)"
// @Param page query int false "Page number (default 1)"
// @Success 200 {object} controllers.ListEventsSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Router /events [get]
func (c *EventController) ListEvents(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "unauthorized")
		return
	}
	q, errs := parseListEventsQuery(r)
	if len(errs) > 0 {
		h.WriteJSONError(w, http.StatusBadRequest, h.ErrCodeBadRequest, strings.Join(errs, "; "))
		return
	}
	events, err := c.Service.ListEvents(r.Context(), userID, q.filter(), q.options())
	if err != nil {
		c.writeServiceError(w, r, err)
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, events)
}

// GetEvent godoc
// @Summary Get an event by ID
// @Tags events
// @Produce json
// @Security BearerAuth
// @Param eventId path int true "Event ID"
// @Success 200 {object} controllers.EventSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /events/{eventId} [get]
func (c *EventController) GetEvent(w http.ResponseWriter, r *http.Request) {
	id, err := h.PathID(r, "eventId")
	if err != nil {
		h.WriteJSONError(w, http.StatusBadRequest, h.ErrCodeBadRequest, err.Error())
		return
	}
	event, err := c.Service.GetEventByID(r.Context(), id)
	if err != nil {
		c.writeServiceError(w, r, err)
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, event)
}

// UpdateEvent godoc
// @Summary Update an event
// @Description Partially updates an event. At least one field is required. Requires the manageEvents right.
// @Tags events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param eventId path int true "Event ID"
// @Param event body UpdateEventRequest true "Fields to change"
// @Success 200 {object} controllers.EventSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /events/{eventId} [patch]
func (c *EventController) UpdateEvent(w http.ResponseWriter, r *http.Request) {
	id, err := h.PathID(r, "eventId")
	if err != nil {
		h.WriteJSONError(w, http.StatusBadRequest, h.ErrCodeBadRequest, err.Error())
		return
	}
	var req UpdateEventRequest
	if !h.DecodeAndValidate(w, r, &req) {
		return
	}
	event, err := c.Service.UpdateEvent(r.Context(), id, req.toDomain())
	if err != nil {
		c.writeServiceError(w, r, err)
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, event)
}

// DeleteEvent godoc
// @Summary Delete an event
// @Description Removes the event and its bookings. Requires the manageEvents right.
// @Tags events
// @Security BearerAuth
// @Param eventId path int true "Event ID"
// @Success 204 "No Content"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /events/{eventId} [delete]
func (c *EventController) DeleteEvent(w http.ResponseWriter, r *http.Request) {
	id, err := h.PathID(r, "eventId")
	if err != nil {
		h.WriteJSONError(w, http.StatusBadRequest, h.ErrCodeBadRequest, err.Error())
		return
	}
	if _, err := c.Service.DeleteEvent(r.Context(), id); err != nil {
		c.writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// BookEvent godoc
// @Summary Book an event
// @Description Records a booking of the event for the authenticated user.
// @Tags events
// @Produce json
// @Security BearerAuth
// @Param eventId path int true "Event ID"
// @Success 200 {object} controllers.BookEventSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /events/{eventId}/book [post]
func (c *EventController) BookEvent(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "unauthorized")
		return
	}
	id, err := h.PathID(r, "eventId")
	if err != nil {
		h.WriteJSONError(w, http.StatusBadRequest, h.ErrCodeBadRequest, err.Error())
		return
	}
	booking, err := c.Service.BookEvent(r.Context(), userID, id)
	if err != nil {
		c.writeServiceError(w, r, err)
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, booking)
}
