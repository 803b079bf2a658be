package services

import (
	"context"
	"errors"
	"testing"

	"eventhub/internal/domain"
)

type mockRegistrationRepository struct {
	regByEventAndUser map[string]*domain.Registration
	regsByUser        map[string][]*domain.Registration
	created           []*domain.Registration
	err               error
}

func (m *mockRegistrationRepository) Create(ctx context.Context, reg *domain.Registration) error {
	if m.err != nil {
		return m.err
	}
	reg.ID = "reg-new"
	m.created = append(m.created, reg)
	return nil
}

func (m *mockRegistrationRepository) GetByEventAndUser(ctx context.Context, eventID, userID string) (*domain.Registration, error) {
	if m.regByEventAndUser != nil {
		if reg, ok := m.regByEventAndUser[eventID+":"+userID]; ok {
			return reg, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *mockRegistrationRepository) ListByUserID(ctx context.Context, userID string) ([]*domain.Registration, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.regsByUser[userID], nil
}

func TestAttendeeService_RegisterForEvent_Success(t *testing.T) {
	eventRepo := &mockEventRepository{
		events: map[string]*domain.Event{"ev-1": {ID: "ev-1", OrganizerID: "someone-else"}},
	}
	regRepo := &mockRegistrationRepository{}
	userRepo := &mockUserRepository{
		usersByID: map[string]*domain.User{"user-1": {ID: "user-1", Username: "alice"}},
	}
	svc := NewAttendeeService(eventRepo, regRepo, userRepo)

	reg, created, err := svc.RegisterForEvent(context.Background(), "ev-1", "user-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !created {
		t.Fatal("expected a new registration")
	}
	if reg.EventID != "ev-1" || reg.UserID != "user-1" {
		t.Fatalf("unexpected registration %+v", reg)
	}
	if len(regRepo.created) != 1 {
		t.Fatalf("expected one created registration, got %d", len(regRepo.created))
	}
}

func TestAttendeeService_RegisterForEvent_EventNotFound(t *testing.T) {
	eventRepo := &mockEventRepository{events: map[string]*domain.Event{}}
	userRepo := &mockUserRepository{
		usersByID: map[string]*domain.User{"user-1": {ID: "user-1"}},
	}
	svc := NewAttendeeService(eventRepo, &mockRegistrationRepository{}, userRepo)

	_, _, err := svc.RegisterForEvent(context.Background(), "ev-missing", "user-1")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestAttendeeService_RegisterForEvent_UnknownUser(t *testing.T) {
	eventRepo := &mockEventRepository{
		events: map[string]*domain.Event{"ev-1": {ID: "ev-1"}},
	}
	svc := NewAttendeeService(eventRepo, &mockRegistrationRepository{}, &mockUserRepository{})

	_, _, err := svc.RegisterForEvent(context.Background(), "ev-1", "ghost")
	if !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestAttendeeService_RegisterForEvent_Idempotent(t *testing.T) {
	existing := &domain.Registration{ID: "reg-1", EventID: "ev-1", UserID: "user-1"}
	eventRepo := &mockEventRepository{
		events: map[string]*domain.Event{"ev-1": {ID: "ev-1"}},
	}
	regRepo := &mockRegistrationRepository{
		regByEventAndUser: map[string]*domain.Registration{"ev-1:user-1": existing},
	}
	userRepo := &mockUserRepository{
		usersByID: map[string]*domain.User{"user-1": {ID: "user-1"}},
	}
	svc := NewAttendeeService(eventRepo, regRepo, userRepo)

	reg, created, err := svc.RegisterForEvent(context.Background(), "ev-1", "user-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created {
		t.Fatal("repeat registration must not create a new row")
	}
	if reg.ID != "reg-1" {
		t.Fatalf("expected existing registration, got %+v", reg)
	}
}

func TestAttendeeService_ListMyRegistrations(t *testing.T) {
	eventRepo := &mockEventRepository{
		events: map[string]*domain.Event{"ev-1": {ID: "ev-1", Title: "Conf"}},
	}
	regRepo := &mockRegistrationRepository{
		regsByUser: map[string][]*domain.Registration{
			"user-1": {
				{ID: "reg-1", EventID: "ev-1", UserID: "user-1"},
				// Event gone; the entry is skipped.
				{ID: "reg-2", EventID: "ev-deleted", UserID: "user-1"},
			},
		},
	}
	svc := NewAttendeeService(eventRepo, regRepo, &mockUserRepository{})

	result, err := svc.ListMyRegistrations(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(result))
	}
	if result[0].Event.Title != "Conf" {
		t.Fatalf("unexpected event %+v", result[0].Event)
	}
}
