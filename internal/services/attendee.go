package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"eventhub/internal/domain"
)

type attendeeService struct {
	eventRepo        domain.EventRepository
	registrationRepo domain.RegistrationRepository
	userRepo         domain.UserRepository
}

// NewAttendeeService creates an AttendeeService with the given repositories.
func NewAttendeeService(
	eventRepo domain.EventRepository,
	registrationRepo domain.RegistrationRepository,
	userRepo domain.UserRepository,
) domain.AttendeeService {
	return &attendeeService{
		eventRepo:        eventRepo,
		registrationRepo: registrationRepo,
		userRepo:         userRepo,
	}
}

func (s *attendeeService) RegisterForEvent(ctx context.Context, eventID, userID string) (*domain.Registration, bool, error) {
	// Ensure the target user exists. userID always comes from the
	// authenticated caller, never from the request body.
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, false, domain.ErrUserNotFound
		}
		return nil, false, fmt.Errorf("get user: %w", err)
	}

	// Ensure the event exists. Registration is open to any authenticated
	// user, so the lookup is not ownership-scoped.
	if _, err := s.eventRepo.GetByID(ctx, eventID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, false, domain.ErrNotFound
		}
		return nil, false, fmt.Errorf("get event: %w", err)
	}

	// Check if the user is already registered; make registration idempotent.
	if existing, err := s.registrationRepo.GetByEventAndUser(ctx, eventID, userID); err == nil {
		return existing, false, nil
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, false, fmt.Errorf("get registration: %w", err)
	}

	reg := domain.NewRegistration(eventID, userID, time.Now())
	if err := s.registrationRepo.Create(ctx, reg); err != nil {
		return nil, false, fmt.Errorf("create registration: %w", err)
	}
	return reg, true, nil
}

func (s *attendeeService) ListMyRegistrations(ctx context.Context, userID string) ([]*domain.RegistrationWithEvent, error) {
	regs, err := s.registrationRepo.ListByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list registrations: %w", err)
	}

	result := make([]*domain.RegistrationWithEvent, 0, len(regs))
	for _, reg := range regs {
		ev, err := s.eventRepo.GetByID(ctx, reg.EventID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				// Registration outlived its event; skip the entry.
				continue
			}
			return nil, fmt.Errorf("get event for registration: %w", err)
		}
		result = append(result, &domain.RegistrationWithEvent{
			Registration: reg,
			Event:        ev,
		})
	}
	return result, nil
}
