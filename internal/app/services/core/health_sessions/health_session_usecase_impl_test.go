package healthSessions

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"telehealth-service/internal/app/mocks"
	"telehealth-service/internal/app/models"
	"telehealth-service/internal/pkg/exceptions"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func scheduledSession() models.HealthSession {
	return models.HealthSession{
		Reference:       "HS-1",
		PatientID:       "pat-1",
		ProfessionalID:  "pro-1",
		Date:            "2026-03-01",
		Time:            "09:00",
		Timezone:        "UTC",
		Status:          models.SessionStatusScheduled,
		ExternalEventID: "evt-1",
		MeetingURL:      "https://meet.google.com/evt-1",
	}
}

func TestCancelSession(t *testing.T) {
	ctx := context.Background()

	t.Run("Cancels scheduled session and publishes meeting cancellation", func(t *testing.T) {
		store := mocks.NewStore()
		store.AddSession(scheduledSession())
		publisher := &mocks.MeetingPublisher{}
		uc := NewHealthSessionUsecase(mocks.NewUnitOfWork(store), publisher, zap.NewNop())

		session, err := uc.CancelSession(ctx, "HS-1", "pat-1")

		require.NoError(t, err)
		assert.Equal(t, models.SessionStatusCanceled, session.Status)
		assert.Equal(t, models.SessionStatusCanceled, store.Session("HS-1").Status)
		require.Len(t, publisher.Canceled(), 1)
		assert.Equal(t, "evt-1", publisher.Canceled()[0].EventIDOrReference)
	})

	t.Run("Cancels pending session without meeting", func(t *testing.T) {
		store := mocks.NewStore()
		pending := scheduledSession()
		pending.Status = models.SessionStatusPending
		pending.ExternalEventID = ""
		store.AddSession(pending)
		publisher := &mocks.MeetingPublisher{}
		uc := NewHealthSessionUsecase(mocks.NewUnitOfWork(store), publisher, zap.NewNop())

		session, err := uc.CancelSession(ctx, "HS-1", "pat-1")

		require.NoError(t, err)
		assert.Equal(t, models.SessionStatusCanceled, session.Status)
		assert.Empty(t, publisher.Canceled(), "nothing to cancel remotely")
	})

	t.Run("Already canceled session is returned unchanged", func(t *testing.T) {
		store := mocks.NewStore()
		canceled := scheduledSession()
		canceled.Status = models.SessionStatusCanceled
		store.AddSession(canceled)
		publisher := &mocks.MeetingPublisher{}
		uc := NewHealthSessionUsecase(mocks.NewUnitOfWork(store), publisher, zap.NewNop())

		session, err := uc.CancelSession(ctx, "HS-1", "pat-1")

		require.NoError(t, err)
		assert.Equal(t, models.SessionStatusCanceled, session.Status)
		assert.Empty(t, publisher.Canceled())
	})

	t.Run("Unknown session returns not found", func(t *testing.T) {
		uc := NewHealthSessionUsecase(mocks.NewUnitOfWork(mocks.NewStore()), &mocks.MeetingPublisher{}, zap.NewNop())

		session, err := uc.CancelSession(ctx, "HS-404", "pat-1")

		assert.Nil(t, session)
		assert.Equal(t, http.StatusNotFound, exceptions.StatusCodeOf(err))
	})

	t.Run("Other member cannot cancel", func(t *testing.T) {
		store := mocks.NewStore()
		store.AddSession(scheduledSession())
		uc := NewHealthSessionUsecase(mocks.NewUnitOfWork(store), &mocks.MeetingPublisher{}, zap.NewNop())

		_, err := uc.CancelSession(ctx, "HS-1", "pat-2")

		assert.Equal(t, http.StatusForbidden, exceptions.StatusCodeOf(err))
		assert.Equal(t, models.SessionStatusScheduled, store.Session("HS-1").Status)
	})

	t.Run("Storage failure publishes nothing", func(t *testing.T) {
		store := mocks.NewStore()
		store.AddSession(scheduledSession())
		store.UpdateSessionErr = errors.New("connection reset")
		publisher := &mocks.MeetingPublisher{}
		uc := NewHealthSessionUsecase(mocks.NewUnitOfWork(store), publisher, zap.NewNop())

		_, err := uc.CancelSession(ctx, "HS-1", "pat-1")

		assert.Error(t, err)
		assert.Empty(t, publisher.Canceled())
		assert.Equal(t, models.SessionStatusScheduled, store.Session("HS-1").Status)
	})

	t.Run("Publish failure does not fail cancellation", func(t *testing.T) {
		store := mocks.NewStore()
		store.AddSession(scheduledSession())
		publisher := &mocks.MeetingPublisher{Err: errors.New("broker down")}
		uc := NewHealthSessionUsecase(mocks.NewUnitOfWork(store), publisher, zap.NewNop())

		session, err := uc.CancelSession(ctx, "HS-1", "pat-1")

		require.NoError(t, err)
		assert.Equal(t, models.SessionStatusCanceled, session.Status)
	})
}
