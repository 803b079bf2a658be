package domain

import (
	"context"
	"time"
)

// Registration links a User to an Event they signed up for.
// swagger:model Registration
type Registration struct {
	ID        string    `json:"id"`
	EventID   string    `json:"event_id"`
	UserID    string    `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}

// NewRegistration creates a new Registration. ID is typically set by the repository on create.
func NewRegistration(eventID, userID string, createdAt time.Time) *Registration {
	return &Registration{
		EventID:   eventID,
		UserID:    userID,
		CreatedAt: createdAt,
	}
}

// RegistrationRepository defines storage operations for event registrations.
type RegistrationRepository interface {
	Create(ctx context.Context, reg *Registration) error
	GetByEventAndUser(ctx context.Context, eventID, userID string) (*Registration, error)
	ListByUserID(ctx context.Context, userID string) ([]*Registration, error)
}

// RegistrationWithEvent bundles a registration with its related event.
type RegistrationWithEvent struct {
	Registration *Registration `json:"registration"`
	Event        *Event        `json:"event"`
}

// AttendeeService defines attendee-facing operations such as event registration.
type AttendeeService interface {
	// RegisterForEvent registers the user for the event. Returns (reg,
	// created, err): created is true if a new registration was created,
	// false if the user was already registered.
	RegisterForEvent(ctx context.Context, eventID, userID string) (*Registration, bool, error)
	ListMyRegistrations(ctx context.Context, userID string) ([]*RegistrationWithEvent, error)
}
