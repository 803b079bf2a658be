package domain

import (
	"context"
	"errors"
	"time"
)

// Sentinel errors for event operations.
var (
	// ErrNotFound is returned when a resource does not exist or is outside
	// the caller's ownership scope. The two cases are deliberately
	// indistinguishable so that foreign events do not leak their existence.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput is returned when required fields are missing or malformed.
	ErrInvalidInput = errors.New("invalid input")

	// ErrInvalidDate is returned when a bulk event spec carries an unparsable date.
	ErrInvalidDate = errors.New("invalid date format")
)

// Event represents a schedulable item owned by its organizer.
// swagger:model Event
type Event struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description *string    `json:"description,omitempty"`
	Location    *string    `json:"location,omitempty"`
	StartTime   time.Time  `json:"start_time"`
	EndTime     time.Time  `json:"end_time"`
	OrganizerID string     `json:"organizer_id"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// NewEvent returns a new Event with the given fields. ID is typically set by the repository on create.
func NewEvent(title, organizerID string, startTime, endTime time.Time, createdAt, updatedAt time.Time) *Event {
	return &Event{
		Title:       title,
		OrganizerID: organizerID,
		StartTime:   startTime,
		EndTime:     endTime,
		CreatedAt:   createdAt,
		UpdatedAt:   updatedAt,
	}
}

// EventUpdate carries the fields of a partial update. Nil pointers mean
// "leave unchanged"; only non-nil fields are written.
type EventUpdate struct {
	Title       *string
	Description *string
	Location    *string
	StartTime   *time.Time
	EndTime     *time.Time
}

// EventSpec is one entry in a bulk-create request. Date uses the 2006-01-02 layout.
type EventSpec struct {
	Title       string
	Description string
	Location    string
	Date        string
}

// EventRepository defines the interface for event storage
type EventRepository interface {
	Create(ctx context.Context, event *Event) error
	// CreateBatch inserts all events in a single transaction; on any failure
	// none are persisted.
	CreateBatch(ctx context.Context, events []*Event) error
	// List returns a page of events ordered newest first, plus the total count.
	List(ctx context.Context, p PaginationParams) ([]*Event, int, error)
	// GetByID returns the event regardless of ownership.
	GetByID(ctx context.Context, id string) (*Event, error)
	// GetByOwner returns the event only if it is owned by organizerID;
	// otherwise ErrNotFound.
	GetByOwner(ctx context.Context, id, organizerID string) (*Event, error)
	// Update applies the non-nil fields of upd, scoped by organizerID.
	Update(ctx context.Context, id, organizerID string, upd EventUpdate) (*Event, error)
	// Delete removes the event and its registrations in one transaction,
	// scoped by organizerID.
	Delete(ctx context.Context, id, organizerID string) error
}

// EventListingCache is a short-TTL read-through cache over event listings.
// Invalidate must be called on every event write.
type EventListingCache interface {
	Get(key string) (events []*Event, total int, ok bool)
	Set(key string, events []*Event, total int)
	Invalidate()
}

// EventService defines the business logic for event management.
type EventService interface {
	Create(ctx context.Context, event *Event) error
	List(ctx context.Context, p PaginationParams) ([]*Event, int, error)
	Get(ctx context.Context, eventID, callerID string) (*Event, error)
	Update(ctx context.Context, eventID, callerID string, upd EventUpdate) (*Event, error)
	Delete(ctx context.Context, eventID, callerID string) error
	// BulkCreate parses each spec's date, attaches the organizer, and inserts
	// all specs atomically. Returns the number of events created.
	BulkCreate(ctx context.Context, organizerID string, specs []EventSpec) (int, error)
}
