package postgres

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"eventhub/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
)

var eventCols = []string{"id", "title", "description", "location", "start_time", "end_time", "organizer_id", "created_at", "updated_at"}

func TestEventRepository_Create(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		event   *domain.Event
		mock    func(mock sqlmock.Sqlmock)
		wantID  string
		wantErr bool
	}{
		{
			name: "success",
			event: &domain.Event{
				Title:       "Conf 2025",
				OrganizerID: "user-uuid-1",
				StartTime:   time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC),
				EndTime:     time.Date(2025, 6, 1, 17, 0, 0, 0, time.UTC),
				CreatedAt:   time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
				UpdatedAt:   time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
			},
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`INSERT INTO events \(title, description, location, start_time, end_time, organizer_id, created_at, updated_at\)`).
					WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("ev-uuid-1"))
			},
			wantID:  "ev-uuid-1",
			wantErr: false,
		},
		{
			name: "db error",
			event: &domain.Event{
				Title:       "Conf",
				OrganizerID: "user-1",
			},
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`INSERT INTO events`).
					WillReturnError(sql.ErrConnDone)
			},
			wantID:  "",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			tt.mock(mock)
			repo := NewEventRepository(db)
			err = repo.Create(ctx, tt.event)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.wantID, tt.event.ID)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestEventRepository_CreateBatch(t *testing.T) {
	ctx := context.Background()

	t.Run("all inserted in one transaction", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectBegin()
		mock.ExpectQuery(`INSERT INTO events`).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("ev-1"))
		mock.ExpectQuery(`INSERT INTO events`).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("ev-2"))
		mock.ExpectCommit()

		events := []*domain.Event{
			{Title: "A", OrganizerID: "user-1"},
			{Title: "B", OrganizerID: "user-1"},
		}
		repo := NewEventRepository(db)
		require.NoError(t, repo.CreateBatch(ctx, events))
		require.Equal(t, "ev-1", events[0].ID)
		require.Equal(t, "ev-2", events[1].ID)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("failure rolls back everything", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectBegin()
		mock.ExpectQuery(`INSERT INTO events`).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("ev-1"))
		mock.ExpectQuery(`INSERT INTO events`).
			WillReturnError(sql.ErrConnDone)
		mock.ExpectRollback()

		events := []*domain.Event{
			{Title: "A", OrganizerID: "user-1"},
			{Title: "B", OrganizerID: "user-1"},
		}
		repo := NewEventRepository(db)
		require.Error(t, repo.CreateBatch(ctx, events))
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestEventRepository_List(t *testing.T) {
	ctx := context.Background()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM events`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))
	mock.ExpectQuery(`SELECT id, title, description, location, start_time, end_time, organizer_id, created_at, updated_at`).
		WithArgs(20, 0).
		WillReturnRows(sqlmock.NewRows(eventCols).
			AddRow("ev-1", "Conf", nil, nil, now, now, "user-1", now, now).
			AddRow("ev-2", "Meetup", "desc", "Berlin", now, now, "user-2", now, now))

	repo := NewEventRepository(db)
	events, total, err := repo.List(ctx, domain.PaginationParams{Page: 1, PageSize: 20})
	require.NoError(t, err)
	require.Equal(t, 2, total)
	require.Len(t, events, 2)
	require.Nil(t, events[0].Description)
	require.NotNil(t, events[1].Description)
	require.Equal(t, "desc", *events[1].Description)
	require.Equal(t, "Berlin", *events[1].Location)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestEventRepository_GetByOwner(t *testing.T) {
	ctx := context.Background()

	t.Run("owned event is returned", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
		mock.ExpectQuery(`SELECT id, title, description, location, start_time, end_time, organizer_id, created_at, updated_at`).
			WithArgs("ev-1", "user-1").
			WillReturnRows(sqlmock.NewRows(eventCols).
				AddRow("ev-1", "Conf", nil, nil, now, now, "user-1", now, now))

		repo := NewEventRepository(db)
		event, err := repo.GetByOwner(ctx, "ev-1", "user-1")
		require.NoError(t, err)
		require.Equal(t, "ev-1", event.ID)
		require.Equal(t, "user-1", event.OrganizerID)
	})

	t.Run("foreign event reads as not found", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`SELECT id, title, description, location, start_time, end_time, organizer_id, created_at, updated_at`).
			WithArgs("ev-1", "user-2").
			WillReturnError(sql.ErrNoRows)

		repo := NewEventRepository(db)
		_, err = repo.GetByOwner(ctx, "ev-1", "user-2")
		require.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestEventRepository_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("only supplied fields are set", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
		title := "Renamed"
		mock.ExpectQuery(`UPDATE events SET updated_at = NOW\(\), title = \$1\s+WHERE id = \$2 AND organizer_id = \$3`).
			WithArgs("Renamed", "ev-1", "user-1").
			WillReturnRows(sqlmock.NewRows(eventCols).
				AddRow("ev-1", "Renamed", "old desc", nil, now, now, "user-1", now, now))

		repo := NewEventRepository(db)
		event, err := repo.Update(ctx, "ev-1", "user-1", domain.EventUpdate{Title: &title})
		require.NoError(t, err)
		require.Equal(t, "Renamed", event.Title)
		require.Equal(t, "old desc", *event.Description)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("empty update fetches current row", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
		mock.ExpectQuery(`SELECT id, title, description, location, start_time, end_time, organizer_id, created_at, updated_at`).
			WithArgs("ev-1", "user-1").
			WillReturnRows(sqlmock.NewRows(eventCols).
				AddRow("ev-1", "Conf", nil, nil, now, now, "user-1", now, now))

		repo := NewEventRepository(db)
		event, err := repo.Update(ctx, "ev-1", "user-1", domain.EventUpdate{})
		require.NoError(t, err)
		require.Equal(t, "Conf", event.Title)
	})

	t.Run("foreign event reads as not found", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		title := "X"
		mock.ExpectQuery(`UPDATE events SET`).
			WillReturnError(sql.ErrNoRows)

		repo := NewEventRepository(db)
		_, err = repo.Update(ctx, "ev-1", "intruder", domain.EventUpdate{Title: &title})
		require.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestEventRepository_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("cascades to registrations in one transaction", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectBegin()
		mock.ExpectExec(`DELETE FROM registrations WHERE event_id = \$1`).
			WithArgs("ev-1").
			WillReturnResult(sqlmock.NewResult(0, 3))
		mock.ExpectExec(`DELETE FROM events WHERE id = \$1 AND organizer_id = \$2`).
			WithArgs("ev-1", "user-1").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		repo := NewEventRepository(db)
		require.NoError(t, repo.Delete(ctx, "ev-1", "user-1"))
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("foreign event rolls back and reads as not found", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectBegin()
		mock.ExpectExec(`DELETE FROM registrations WHERE event_id = \$1`).
			WithArgs("ev-1").
			WillReturnResult(sqlmock.NewResult(0, 3))
		mock.ExpectExec(`DELETE FROM events WHERE id = \$1 AND organizer_id = \$2`).
			WithArgs("ev-1", "intruder").
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectRollback()

		repo := NewEventRepository(db)
		err = repo.Delete(ctx, "ev-1", "intruder")
		require.ErrorIs(t, err, domain.ErrNotFound)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}
