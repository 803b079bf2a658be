package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"eventhub/internal/delivery/http/helpers"
	"eventhub/internal/domain"
)

type mockAttendeeService struct {
	reg           *domain.Registration
	created       bool
	registrations []*domain.RegistrationWithEvent
	err           error
}

func (m *mockAttendeeService) RegisterForEvent(ctx context.Context, eventID, userID string) (*domain.Registration, bool, error) {
	if m.err != nil {
		return nil, false, m.err
	}
	return m.reg, m.created, nil
}

func (m *mockAttendeeService) ListMyRegistrations(ctx context.Context, userID string) ([]*domain.RegistrationWithEvent, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.registrations, nil
}

func TestAttendeeController_RegisterForEvent_Created(t *testing.T) {
	svc := &mockAttendeeService{
		reg:     &domain.Registration{ID: "reg-1", EventID: testEventID, UserID: "user-1"},
		created: true,
	}
	ctrl := NewAttendeeController(testLogger(), svc)

	req := authedRequest(http.MethodPost, "/events/"+testEventID+"/register", "")
	req.SetPathValue("eventID", testEventID)
	w := httptest.NewRecorder()
	ctrl.RegisterForEvent(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("expected status %d, got %d", http.StatusCreated, w.Code)
	}
}

func TestAttendeeController_RegisterForEvent_AlreadyRegistered(t *testing.T) {
	svc := &mockAttendeeService{
		reg:     &domain.Registration{ID: "reg-1", EventID: testEventID, UserID: "user-1"},
		created: false,
	}
	ctrl := NewAttendeeController(testLogger(), svc)

	req := authedRequest(http.MethodPost, "/events/"+testEventID+"/register", "")
	req.SetPathValue("eventID", testEventID)
	w := httptest.NewRecorder()
	ctrl.RegisterForEvent(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, w.Code)
	}
}

func TestAttendeeController_RegisterForEvent_EventNotFound(t *testing.T) {
	svc := &mockAttendeeService{err: domain.ErrNotFound}
	ctrl := NewAttendeeController(testLogger(), svc)

	req := authedRequest(http.MethodPost, "/events/"+testEventID+"/register", "")
	req.SetPathValue("eventID", testEventID)
	w := httptest.NewRecorder()
	ctrl.RegisterForEvent(w, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected status %d, got %d", http.StatusNotFound, w.Code)
	}
}

func TestAttendeeController_RegisterForEvent_Unauthorized(t *testing.T) {
	ctrl := NewAttendeeController(testLogger(), &mockAttendeeService{})

	req := httptest.NewRequest(http.MethodPost, "/events/"+testEventID+"/register", nil)
	req.SetPathValue("eventID", testEventID)
	w := httptest.NewRecorder()
	ctrl.RegisterForEvent(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected status %d, got %d", http.StatusUnauthorized, w.Code)
	}
}

func TestAttendeeController_ListMyRegistrations_Success(t *testing.T) {
	svc := &mockAttendeeService{
		registrations: []*domain.RegistrationWithEvent{
			{
				Registration: &domain.Registration{ID: "reg-1", EventID: testEventID, UserID: "user-1"},
				Event:        &domain.Event{ID: testEventID, Title: "Conf"},
			},
		},
	}
	ctrl := NewAttendeeController(testLogger(), svc)

	req := authedRequest(http.MethodGet, "/registrations", "")
	w := httptest.NewRecorder()
	ctrl.ListMyRegistrations(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, w.Code)
	}
	var resp helpers.APIResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	if resp.Error != nil {
		t.Fatalf("expected no error, got %v", resp.Error)
	}
}

func TestAttendeeController_ListMyRegistrations_Error(t *testing.T) {
	svc := &mockAttendeeService{err: errors.New("service error")}
	ctrl := NewAttendeeController(testLogger(), svc)

	req := authedRequest(http.MethodGet, "/registrations", "")
	w := httptest.NewRecorder()
	ctrl.ListMyRegistrations(w, req)

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected status %d, got %d", http.StatusInternalServerError, w.Code)
	}
}
