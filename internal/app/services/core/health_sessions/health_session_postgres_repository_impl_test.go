package healthSessions

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"telehealth-service/internal/app/models"
	"telehealth-service/internal/pkg/exceptions"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var healthSessionRowColumns = []string{
	"id", "reference", "patient_id", "professional_id", "session_date", "session_time", "timezone",
	"status", "external_event_id", "other_event_reference", "meeting_url", "event_link", "created_at", "updated_at",
}

func newMockDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { mockDB.Close() })
	return sqlx.NewDb(mockDB, "sqlmock"), mock
}

func TestHealthSessionPostgresRepository_FindByReference(t *testing.T) {
	ctx := context.Background()
	now := time.Now()

	t.Run("Returns session", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewHealthSessionPostgresRepository(db)
		rows := sqlmock.NewRows(healthSessionRowColumns).
			AddRow(1, "HS-1", "pat-1", "pro-1", "2026-03-01", "09:00", "UTC", "SCHEDULED", "evt-1", "", "", "", now, now)
		mock.ExpectQuery("FROM health_sessions").WithArgs("HS-1").WillReturnRows(rows)

		session, err := repo.FindByReference(ctx, "HS-1")

		require.NoError(t, err)
		assert.Equal(t, models.SessionStatusScheduled, session.Status)
		assert.Equal(t, "2026-03-01", session.Date)
		assert.Equal(t, "evt-1", session.ExternalEventID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Locks row when loading for update", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewHealthSessionPostgresRepository(db)
		rows := sqlmock.NewRows(healthSessionRowColumns).
			AddRow(1, "HS-1", "pat-1", "pro-1", "2026-03-01", "09:00", "UTC", "PENDING", "", "", "", "", now, now)
		mock.ExpectQuery("FOR UPDATE").WithArgs("HS-1").WillReturnRows(rows)

		session, err := repo.FindByReferenceForUpdate(ctx, "HS-1")

		require.NoError(t, err)
		assert.Equal(t, models.SessionStatusPending, session.Status)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Missing session returns nil", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewHealthSessionPostgresRepository(db)
		mock.ExpectQuery("FROM health_sessions").WithArgs("HS-404").WillReturnRows(sqlmock.NewRows(healthSessionRowColumns))

		session, err := repo.FindByReference(ctx, "HS-404")

		assert.NoError(t, err)
		assert.Nil(t, session)
	})

	t.Run("Database error is retryable", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewHealthSessionPostgresRepository(db)
		mock.ExpectQuery("FROM health_sessions").WillReturnError(errors.New("connection refused"))

		_, err := repo.FindByReference(ctx, "HS-1")

		assert.True(t, exceptions.IsRetryable(err))
	})
}

func TestHealthSessionPostgresRepository_Slots(t *testing.T) {
	ctx := context.Background()
	heldSince := time.Date(2026, 3, 1, 8, 30, 0, 0, time.UTC)

	t.Run("Lock is taken on the slot key", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewHealthSessionPostgresRepository(db)
		mock.ExpectExec("pg_advisory_xact_lock").
			WithArgs("pro-1", "2026-03-01", "09:00").
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.LockSlot(ctx, "pro-1", "2026-03-01", "09:00")

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Active check passes the hold cutoff", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewHealthSessionPostgresRepository(db)
		mock.ExpectQuery(`hs.status = 'PENDING'\s+AND hs.created_at > \$4`).
			WithArgs("pro-1", "2026-03-01", "09:00", heldSince).
			WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

		taken, err := repo.ExistsActiveAtSlot(ctx, "pro-1", "2026-03-01", "09:00", heldSince)

		require.NoError(t, err)
		assert.True(t, taken)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Scheduled check ignores pending holds", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewHealthSessionPostgresRepository(db)
		mock.ExpectQuery(`status IN \('SCHEDULED', 'RESCHEDULED'\)\s+\)`).
			WithArgs("pro-1", "2026-03-01", "09:00").
			WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))

		taken, err := repo.ExistsScheduledAtSlot(ctx, "pro-1", "2026-03-01", "09:00")

		require.NoError(t, err)
		assert.False(t, taken)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Lock failure is retryable", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewHealthSessionPostgresRepository(db)
		mock.ExpectExec("pg_advisory_xact_lock").WillReturnError(errors.New("connection reset"))

		err := repo.LockSlot(ctx, "pro-1", "2026-03-01", "09:00")

		assert.True(t, exceptions.IsRetryable(err))
	})
}

func TestHealthSessionPostgresRepository_FindAwaitingMeeting(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewHealthSessionPostgresRepository(db)
	cutoff := time.Date(2026, 3, 1, 8, 45, 0, 0, time.UTC)
	stale := cutoff.Add(-time.Hour)
	rows := sqlmock.NewRows(healthSessionRowColumns).
		AddRow(1, "HS-1", "pat-1", "pro-1", "2026-03-01", "09:00", "UTC", "SCHEDULED", "", "", "", "", stale, stale).
		AddRow(2, "HS-2", "pat-2", "pro-1", "2026-03-02", "09:00", "UTC", "RESCHEDULED", "", "", "", "", stale, stale)
	mock.ExpectQuery("external_event_id = ''").
		WithArgs(cutoff, 20).
		WillReturnRows(rows)

	sessions, err := repo.FindAwaitingMeeting(context.Background(), cutoff, 20)

	require.NoError(t, err)
	require.Len(t, sessions, 2)
	assert.Equal(t, "HS-1", sessions[0].Reference)
	assert.Equal(t, models.SessionStatusRescheduled, sessions[1].Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHealthSessionPostgresRepository_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("Populates generated columns", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewHealthSessionPostgresRepository(db)
		now := time.Now()
		mock.ExpectQuery("INSERT INTO health_sessions").
			WithArgs("HS-1", "pat-1", "pro-1", "2026-03-01", "09:00", "UTC", "PENDING").
			WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(7, now, now))
		session := &models.HealthSession{
			Reference: "HS-1", PatientID: "pat-1", ProfessionalID: "pro-1",
			Date: "2026-03-01", Time: "09:00", Timezone: "UTC", Status: models.SessionStatusPending,
		}

		err := repo.Create(ctx, session)

		require.NoError(t, err)
		assert.Equal(t, int64(7), session.ID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Unique violation means slot is taken", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewHealthSessionPostgresRepository(db)
		mock.ExpectQuery("INSERT INTO health_sessions").WillReturnError(&pq.Error{Code: "23505"})

		err := repo.Create(ctx, &models.HealthSession{Reference: "HS-1", ProfessionalID: "pro-1"})

		assert.Equal(t, http.StatusConflict, exceptions.StatusCodeOf(err))
		assert.False(t, exceptions.IsRetryable(err))
	})
}

func TestHealthSessionPostgresRepository_UpdateMeetingLinkage(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewHealthSessionPostgresRepository(db)
	mock.ExpectQuery("UPDATE health_sessions").
		WithArgs("HS-1", "evt-1", "evt-1@google.com", "https://meet.google.com/abc", "https://calendar.google.com/e", "SCHEDULED").
		WillReturnRows(sqlmock.NewRows([]string{"updated_at"}).AddRow(time.Now()))

	err := repo.UpdateMeetingLinkage(context.Background(), &models.HealthSession{
		Reference:           "HS-1",
		ExternalEventID:     "evt-1",
		OtherEventReference: "evt-1@google.com",
		MeetingURL:          "https://meet.google.com/abc",
		EventLink:           "https://calendar.google.com/e",
		Status:              models.SessionStatusScheduled,
	})

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
