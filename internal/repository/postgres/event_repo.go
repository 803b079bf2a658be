package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"eventhub/internal/domain"
)

type eventRepository struct {
	DB *sql.DB
}

func NewEventRepository(db *sql.DB) domain.EventRepository {
	return &eventRepository{
		DB: db,
	}
}

const eventColumns = "id, title, description, location, start_time, end_time, organizer_id, created_at, updated_at"

func scanEvent(row interface{ Scan(...any) error }) (*domain.Event, error) {
	e := &domain.Event{}
	var descNull, locNull sql.NullString
	err := row.Scan(
		&e.ID, &e.Title, &descNull, &locNull, &e.StartTime, &e.EndTime,
		&e.OrganizerID, &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
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
		INSERT INTO events (title, description, location, start_time, end_time, organizer_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`
	return r.DB.QueryRowContext(ctx, query,
		e.Title, e.Description, e.Location, e.StartTime, e.EndTime,
		e.OrganizerID, e.CreatedAt, e.UpdatedAt,
	).Scan(&e.ID)
}

func (r *eventRepository) CreateBatch(ctx context.Context, events []*domain.Event) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	query := `
		INSERT INTO events (title, description, location, start_time, end_time, organizer_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`
	for _, e := range events {
		err := tx.QueryRowContext(ctx, query,
			e.Title, e.Description, e.Location, e.StartTime, e.EndTime,
			e.OrganizerID, e.CreatedAt, e.UpdatedAt,
		).Scan(&e.ID)
		if err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (r *eventRepository) List(ctx context.Context, p domain.PaginationParams) ([]*domain.Event, int, error) {
	var total int
	if err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM events`).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM events
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`, eventColumns)
	rows, err := r.DB.QueryContext(ctx, query, p.PageSize, p.Offset())
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	events := make([]*domain.Event, 0)
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, 0, err
		}
		events = append(events, e)
	}
	return events, total, rows.Err()
}

func (r *eventRepository) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM events
		WHERE id = $1
	`, eventColumns)
	e, err := scanEvent(r.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return e, nil
}

func (r *eventRepository) GetByOwner(ctx context.Context, id, organizerID string) (*domain.Event, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM events
		WHERE id = $1 AND organizer_id = $2
	`, eventColumns)
	e, err := scanEvent(r.DB.QueryRowContext(ctx, query, id, organizerID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return e, nil
}

func (r *eventRepository) Update(ctx context.Context, id, organizerID string, upd domain.EventUpdate) (*domain.Event, error) {
	setClauses := []string{"updated_at = NOW()"}
	args := []interface{}{}
	n := 1
	if upd.Title != nil {
		setClauses = append(setClauses, fmt.Sprintf("title = $%d", n))
		args = append(args, *upd.Title)
		n++
	}
	if upd.Description != nil {
		setClauses = append(setClauses, fmt.Sprintf("description = $%d", n))
		args = append(args, *upd.Description)
		n++
	}
	if upd.Location != nil {
		setClauses = append(setClauses, fmt.Sprintf("location = $%d", n))
		args = append(args, *upd.Location)
		n++
	}
	if upd.StartTime != nil {
		setClauses = append(setClauses, fmt.Sprintf("start_time = $%d", n))
		args = append(args, *upd.StartTime)
		n++
	}
	if upd.EndTime != nil {
		setClauses = append(setClauses, fmt.Sprintf("end_time = $%d", n))
		args = append(args, *upd.EndTime)
		n++
	}
	if n == 1 {
		// No fields to update; just fetch current row
		return r.GetByOwner(ctx, id, organizerID)
	}
	args = append(args, id, organizerID)
	query := fmt.Sprintf(`
		UPDATE events SET %s
		WHERE id = $%d AND organizer_id = $%d
		RETURNING %s
	`, strings.Join(setClauses, ", "), n, n+1, eventColumns)
	e, err := scanEvent(r.DB.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return e, nil
}

func (r *eventRepository) Delete(ctx context.Context, id, organizerID string) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	// Registrations go first so the event row never outlives them mid-tx.
	if _, err := tx.ExecContext(ctx, `DELETE FROM registrations WHERE event_id = $1`, id); err != nil {
		return err
	}
	result, err := tx.ExecContext(ctx, `DELETE FROM events WHERE id = $1 AND organizer_id = $2`, id, organizerID)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return tx.Commit()
}
