package postgres

import (
	"context"
	"database/sql"
	"errors"

	"eventhub/internal/domain"
)

type registrationRepository struct {
	DB *sql.DB
}

func NewRegistrationRepository(db *sql.DB) domain.RegistrationRepository {
	return &registrationRepository{DB: db}
}

func (r *registrationRepository) Create(ctx context.Context, reg *domain.Registration) error {
	query := `
		INSERT INTO registrations (event_id, user_id, created_at)
		VALUES ($1, $2, $3)
		RETURNING id
	`
	return r.DB.QueryRowContext(ctx, query, reg.EventID, reg.UserID, reg.CreatedAt).Scan(&reg.ID)
}

func (r *registrationRepository) GetByEventAndUser(ctx context.Context, eventID, userID string) (*domain.Registration, error) {
	query := `
		SELECT id, event_id, user_id, created_at
		FROM registrations
		WHERE event_id = $1 AND user_id = $2
	`
	reg := &domain.Registration{}
	err := r.DB.QueryRowContext(ctx, query, eventID, userID).Scan(&reg.ID, &reg.EventID, &reg.UserID, &reg.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return reg, nil
}

func (r *registrationRepository) ListByUserID(ctx context.Context, userID string) ([]*domain.Registration, error) {
	query := `
		SELECT id, event_id, user_id, created_at
		FROM registrations
		WHERE user_id = $1
		ORDER BY created_at DESC
	`
	rows, err := r.DB.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	regs := make([]*domain.Registration, 0)
	for rows.Next() {
		reg := &domain.Registration{}
		if err := rows.Scan(&reg.ID, &reg.EventID, &reg.UserID, &reg.CreatedAt); err != nil {
			return nil, err
		}
		regs = append(regs, reg)
	}
	return regs, rows.Err()
}
