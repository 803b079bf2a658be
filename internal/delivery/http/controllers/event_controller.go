package controllers

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"regexp"
	"strings"
	"time"

	"eventhub/internal/delivery/http/helpers"
	"eventhub/internal/delivery/http/middleware"
	"eventhub/internal/domain"
)

// uuidRegex matches a canonical UUID string (8-4-4-4-12 hex).
var uuidRegex = regexp.MustCompile(`^[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}$`)

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

// CreateEventRequest is the request body for POST /events
type CreateEventRequest struct {
	Title       string     `json:"title"`
	Description *string    `json:"description"`
	Location    *string    `json:"location"`
	StartTime   *time.Time `json:"start_time"`
	EndTime     *time.Time `json:"end_time"`
}

// Validate implements helpers.Validator.
func (c CreateEventRequest) Validate() []string {
	var errs []string
	if strings.TrimSpace(c.Title) == "" {
		errs = append(errs, "title is required")
	}
	if c.StartTime == nil {
		errs = append(errs, "start_time is required")
	}
	if c.EndTime == nil {
		errs = append(errs, "end_time is required")
	}
	if c.StartTime != nil && c.EndTime != nil && c.EndTime.Before(*c.StartTime) {
		errs = append(errs, "end_time must not precede start_time")
	}
	return errs
}

// UpdateEventRequest is the request body for PUT /events/{eventID}.
// All fields are optional; absent fields are left unchanged.
type UpdateEventRequest struct {
	Title       *string    `json:"title"`
	Description *string    `json:"description"`
	Location    *string    `json:"location"`
	StartTime   *time.Time `json:"start_time"`
	EndTime     *time.Time `json:"end_time"`
}

// Validate implements helpers.Validator.
func (u UpdateEventRequest) Validate() []string {
	var errs []string
	if u.Title != nil && strings.TrimSpace(*u.Title) == "" {
		errs = append(errs, "title must not be empty")
	}
	if u.StartTime != nil && u.EndTime != nil && u.EndTime.Before(*u.StartTime) {
		errs = append(errs, "end_time must not precede start_time")
	}
	return errs
}

// BulkEventSpec is one entry in the bulk-create request body.
type BulkEventSpec struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Location    string `json:"location"`
	Date        string `json:"date"`
}

// BulkCreateRequest is the request body for POST /events/bulk
type BulkCreateRequest struct {
	Events []BulkEventSpec `json:"events"`
}

// Validate implements helpers.Validator.
func (b BulkCreateRequest) Validate() []string {
	var errs []string
	if len(b.Events) == 0 {
		errs = append(errs, "events is required and must not be empty")
	}
	for i, spec := range b.Events {
		if strings.TrimSpace(spec.Title) == "" {
			errs = append(errs, fmt.Sprintf("events[%d]: title is required", i))
		}
		if strings.TrimSpace(spec.Date) == "" {
			errs = append(errs, fmt.Sprintf("events[%d]: date is required", i))
		}
	}
	return errs
}

// BulkCreateResponse is the response body for POST /events/bulk
type BulkCreateResponse struct {
	Message string `json:"message"`
	Count   int    `json:"count"`
}

// EventListResponse is the response body for GET /events
type EventListResponse struct {
	Events     []*domain.Event        `json:"events"`
	Pagination helpers.PaginationMeta `json:"pagination"`
}

// List godoc
// @Summary List events
// @Description Lists all events, newest first, paginated. Served from a short-TTL cache that is invalidated on every event write.
// @Tags events
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number (default 1)"
// @Param page_size query int false "Page size (default 20, max 100)"
// @Success 200 {object} helpers.APIResponse "data contains events and pagination"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events [get]
func (c *EventController) List(w http.ResponseWriter, r *http.Request) {
	p := helpers.ParsePagination(r)
	events, total, err := c.Service.List(r.Context(), p)
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, "internal error")
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, EventListResponse{
		Events:     events,
		Pagination: helpers.NewPaginationMeta(p.Page, p.PageSize, total),
	})
}

// Create godoc
// @Summary Create an event
// @Description Creates an event owned by the authenticated caller.
// @Tags events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body CreateEventRequest true "Event data"
// @Success 201 {object} helpers.APIResponse "data contains the created event"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events [post]
func (c *EventController) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}

	var req CreateEventRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}

	event := domain.NewEvent(req.Title, userID, *req.StartTime, *req.EndTime, time.Time{}, time.Time{})
	event.Description = req.Description
	event.Location = req.Location

	if err := c.Service.Create(r.Context(), event); err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, err.Error())
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, "internal error")
		return
	}

	helpers.WriteJSONSuccess(w, http.StatusCreated, event)
}

// BulkCreate godoc
// @Summary Create many events
// @Description Creates all submitted event specs in one transaction; any failure (including an unparsable date) creates none.
// @Tags events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body BulkCreateRequest true "Event specs"
// @Success 201 {object} helpers.APIResponse "data contains message and count"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/bulk [post]
func (c *EventController) BulkCreate(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}

	var req BulkCreateRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}

	specs := make([]domain.EventSpec, 0, len(req.Events))
	for _, e := range req.Events {
		specs = append(specs, domain.EventSpec{
			Title:       e.Title,
			Description: e.Description,
			Location:    e.Location,
			Date:        e.Date,
		})
	}

	count, err := c.Service.BulkCreate(r.Context(), userID, specs)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidDate) || errors.Is(err, domain.ErrInvalidInput) {
			helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, err.Error())
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, "internal error")
		return
	}

	helpers.WriteJSONSuccess(w, http.StatusCreated, BulkCreateResponse{
		Message: fmt.Sprintf("%d events created successfully", count),
		Count:   count,
	})
}

// Get godoc
// @Summary Fetch one event
// @Description Returns the event if it is owned by the caller. Events owned by others read as 404, indistinguishable from nonexistence.
// @Tags events
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID (UUID)"
// @Success 200 {object} helpers.APIResponse "data contains the event"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID} [get]
func (c *EventController) Get(w http.ResponseWriter, r *http.Request) {
	eventID, userID, ok := c.eventRequestIDs(w, r)
	if !ok {
		return
	}

	event, err := c.Service.Get(r.Context(), eventID, userID)
	if err != nil {
		c.writeEventError(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, event)
}

// Update godoc
// @Summary Partially update an event
// @Description Overwrites only the supplied fields; absent fields keep their prior value. Scoped to the caller's own events.
// @Tags events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID (UUID)"
// @Param body body UpdateEventRequest true "Fields to update"
// @Success 200 {object} helpers.APIResponse "data contains the updated event"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID} [put]
func (c *EventController) Update(w http.ResponseWriter, r *http.Request) {
	eventID, userID, ok := c.eventRequestIDs(w, r)
	if !ok {
		return
	}

	var req UpdateEventRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}

	event, err := c.Service.Update(r.Context(), eventID, userID, domain.EventUpdate{
		Title:       req.Title,
		Description: req.Description,
		Location:    req.Location,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
	})
	if err != nil {
		c.writeEventError(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, event)
}

// Delete godoc
// @Summary Delete an event
// @Description Deletes the event and all of its registrations in one transaction. Scoped to the caller's own events.
// @Tags events
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID (UUID)"
// @Success 200 {object} helpers.APIResponse "data contains a confirmation message"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID} [delete]
func (c *EventController) Delete(w http.ResponseWriter, r *http.Request) {
	eventID, userID, ok := c.eventRequestIDs(w, r)
	if !ok {
		return
	}

	if err := c.Service.Delete(r.Context(), eventID, userID); err != nil {
		c.writeEventError(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, map[string]string{"message": "Event deleted successfully"})
}

// eventRequestIDs extracts and validates the event ID path value and the
// authenticated user ID. On failure it writes the error response and returns
// ok=false.
func (c *EventController) eventRequestIDs(w http.ResponseWriter, r *http.Request) (eventID, userID string, ok bool) {
	eventID = r.PathValue("eventID")
	if eventID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing eventID")
		return "", "", false
	}
	if !uuidRegex.MatchString(eventID) {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "invalid eventID")
		return "", "", false
	}
	userID, authed := middleware.UserIDFromContext(r.Context())
	if !authed {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return "", "", false
	}
	return eventID, userID, true
}

func (c *EventController) writeEventError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, domain.ErrNotFound) {
		helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "event not found")
		return
	}
	if errors.Is(err, domain.ErrInvalidInput) {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, err.Error())
		return
	}
	c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
	helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, "internal error")
}
