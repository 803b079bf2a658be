package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"eventhub/internal/domain"
)

// bulkDateLayout is the date format accepted in bulk event specs.
const bulkDateLayout = "2006-01-02"

// bulkEventDuration is the default time window when a bulk spec supplies only a date.
const bulkEventDuration = 24 * time.Hour

type eventService struct {
	eventRepo      domain.EventRepository
	listingCache   domain.EventListingCache
	contextTimeout time.Duration
}

// NewEventService creates an EventService backed by the given repository and
// listing cache.
func NewEventService(eventRepo domain.EventRepository, listingCache domain.EventListingCache, timeout time.Duration) domain.EventService {
	return &eventService{
		eventRepo:      eventRepo,
		listingCache:   listingCache,
		contextTimeout: timeout,
	}
}

func (s *eventService) Create(ctx context.Context, event *domain.Event) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event.Title = strings.TrimSpace(event.Title)
	if event.Title == "" {
		return fmt.Errorf("%w: title is required", domain.ErrInvalidInput)
	}
	if event.OrganizerID == "" {
		return fmt.Errorf("%w: event organizer is required", domain.ErrInvalidInput)
	}
	if event.StartTime.IsZero() || event.EndTime.IsZero() {
		return fmt.Errorf("%w: start_time and end_time are required", domain.ErrInvalidInput)
	}
	if event.EndTime.Before(event.StartTime) {
		return fmt.Errorf("%w: end_time must not precede start_time", domain.ErrInvalidInput)
	}

	event.CreatedAt = time.Now()
	event.UpdatedAt = time.Now()

	if err := s.eventRepo.Create(ctx, event); err != nil {
		return fmt.Errorf("create event: %w", err)
	}
	s.listingCache.Invalidate()
	return nil
}

func (s *eventService) List(ctx context.Context, p domain.PaginationParams) ([]*domain.Event, int, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	key := listingKey(p)
	if events, total, ok := s.listingCache.Get(key); ok {
		return events, total, nil
	}

	events, total, err := s.eventRepo.List(ctx, p)
	if err != nil {
		return nil, 0, fmt.Errorf("list events: %w", err)
	}
	s.listingCache.Set(key, events, total)
	return events, total, nil
}

// listingKey builds the cache key for an event listing page.
func listingKey(p domain.PaginationParams) string {
	return fmt.Sprintf("events:p%d:s%d", p.Page, p.PageSize)
}

func (s *eventService) Get(ctx context.Context, eventID, callerID string) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.eventRepo.GetByOwner(ctx, eventID, callerID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	return event, nil
}

func (s *eventService) Update(ctx context.Context, eventID, callerID string, upd domain.EventUpdate) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if upd.Title != nil {
		trimmed := strings.TrimSpace(*upd.Title)
		if trimmed == "" {
			return nil, fmt.Errorf("%w: title must not be empty", domain.ErrInvalidInput)
		}
		upd.Title = &trimmed
	}
	if upd.StartTime != nil && upd.EndTime != nil && upd.EndTime.Before(*upd.StartTime) {
		return nil, fmt.Errorf("%w: end_time must not precede start_time", domain.ErrInvalidInput)
	}

	event, err := s.eventRepo.Update(ctx, eventID, callerID, upd)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("update event: %w", err)
	}
	s.listingCache.Invalidate()
	return event, nil
}

func (s *eventService) Delete(ctx context.Context, eventID, callerID string) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if err := s.eventRepo.Delete(ctx, eventID, callerID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("delete event: %w", err)
	}
	s.listingCache.Invalidate()
	return nil
}

func (s *eventService) BulkCreate(ctx context.Context, organizerID string, specs []domain.EventSpec) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if organizerID == "" {
		return 0, fmt.Errorf("%w: event organizer is required", domain.ErrInvalidInput)
	}
	if len(specs) == 0 {
		return 0, fmt.Errorf("%w: events list is empty", domain.ErrInvalidInput)
	}

	now := time.Now()
	events := make([]*domain.Event, 0, len(specs))
	for _, spec := range specs {
		title := strings.TrimSpace(spec.Title)
		if title == "" {
			return 0, fmt.Errorf("%w: title is required", domain.ErrInvalidInput)
		}
		start, err := time.Parse(bulkDateLayout, spec.Date)
		if err != nil {
			return 0, fmt.Errorf("%w: %q", domain.ErrInvalidDate, spec.Date)
		}
		event := domain.NewEvent(title, organizerID, start, start.Add(bulkEventDuration), now, now)
		if spec.Description != "" {
			desc := spec.Description
			event.Description = &desc
		}
		if spec.Location != "" {
			loc := spec.Location
			event.Location = &loc
		}
		events = append(events, event)
	}

	if err := s.eventRepo.CreateBatch(ctx, events); err != nil {
		return 0, fmt.Errorf("bulk create events: %w", err)
	}
	s.listingCache.Invalidate()
	return len(events), nil
}
