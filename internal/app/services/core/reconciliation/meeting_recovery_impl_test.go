package reconciliation

import (
	"context"
	"errors"
	"testing"
	"time"

	"telehealth-service/internal/app/config"
	"telehealth-service/internal/app/mocks"
	"telehealth-service/internal/app/models"
	"telehealth-service/internal/pkg/exceptions"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestRecovery(store *mocks.Store, publisher *mocks.MeetingPublisher, now time.Time) *meetingRecovery {
	internalConfig := &config.InternalConfig{}
	internalConfig.App.MeetingDurationInMinutes = 45
	internalConfig.MeetingQueue.RecoveryAfterInMinutes = 15
	recovery := NewMeetingRecovery(mocks.NewUnitOfWork(store), store.SessionRepository(), publisher, zap.NewNop(), internalConfig).(*meetingRecovery)
	recovery.now = func() time.Time { return now }
	return recovery
}

func recoveryStore(clock *time.Time) *mocks.Store {
	store := mocks.NewStore()
	store.Now = func() time.Time { return *clock }
	store.AddMember(models.Member{ID: "pat-1", Email: "pat@example.com", FirstName: "Tunde", LastName: "Bello", MemberType: models.MemberTypePatient})
	store.AddMember(models.Member{ID: "pro-1", Email: "pro@example.com", FirstName: "Ada", LastName: "Obi", MemberType: models.MemberTypeProfessional})
	return store
}

func confirmedSession(reference string, status models.SessionStatus, updatedAt time.Time) models.HealthSession {
	return models.HealthSession{
		Reference:      reference,
		PatientID:      "pat-1",
		ProfessionalID: "pro-1",
		Date:           "2026-04-01",
		Time:           "10:00",
		Timezone:       "Africa/Lagos",
		Status:         status,
		UpdatedAt:      updatedAt,
	}
}

func TestRecoverMissingMeetings(t *testing.T) {
	ctx := context.Background()
	scheduledAt := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

	t.Run("Stale confirmed session is published once per window", func(t *testing.T) {
		clock := scheduledAt.Add(20 * time.Minute)
		store := recoveryStore(&clock)
		store.AddSession(confirmedSession("HS-1", models.SessionStatusScheduled, scheduledAt))
		publisher := &mocks.MeetingPublisher{}

		recovered, err := newTestRecovery(store, publisher, clock).RecoverMissingMeetings(ctx)

		require.NoError(t, err)
		assert.Equal(t, 1, recovered)
		require.Len(t, publisher.Created(), 1)
		assert.ElementsMatch(t, []string{"pat@example.com", "pro@example.com"}, publisher.Created()[0].Attendees)
		assert.Equal(t, clock, store.Session("HS-1").UpdatedAt, "recovered row is touched")
		assert.Equal(t, models.SessionStatusScheduled, store.Session("HS-1").Status)

		again, err := newTestRecovery(store, publisher, clock.Add(time.Minute)).RecoverMissingMeetings(ctx)

		require.NoError(t, err)
		assert.Equal(t, 0, again)
		assert.Len(t, publisher.Created(), 1)
	})

	t.Run("Rescheduled session is recovered too", func(t *testing.T) {
		clock := scheduledAt.Add(time.Hour)
		store := recoveryStore(&clock)
		store.AddSession(confirmedSession("HS-1", models.SessionStatusRescheduled, scheduledAt))
		publisher := &mocks.MeetingPublisher{}

		recovered, err := newTestRecovery(store, publisher, clock).RecoverMissingMeetings(ctx)

		require.NoError(t, err)
		assert.Equal(t, 1, recovered)
	})

	t.Run("Recent session is left to its pending intent", func(t *testing.T) {
		clock := scheduledAt.Add(5 * time.Minute)
		store := recoveryStore(&clock)
		store.AddSession(confirmedSession("HS-1", models.SessionStatusScheduled, scheduledAt))
		publisher := &mocks.MeetingPublisher{}

		recovered, err := newTestRecovery(store, publisher, clock).RecoverMissingMeetings(ctx)

		require.NoError(t, err)
		assert.Equal(t, 0, recovered)
		assert.Empty(t, publisher.Created())
	})

	t.Run("Sessions that need no recovery are skipped", func(t *testing.T) {
		clock := scheduledAt.Add(time.Hour)
		store := recoveryStore(&clock)
		linked := confirmedSession("HS-LINKED", models.SessionStatusScheduled, scheduledAt)
		linked.ExternalEventID = "evt-1"
		store.AddSession(linked)
		store.AddSession(confirmedSession("HS-UNPAID", models.SessionStatusPending, scheduledAt))
		store.AddSession(confirmedSession("HS-CANCELED", models.SessionStatusCanceled, scheduledAt))
		publisher := &mocks.MeetingPublisher{}

		recovered, err := newTestRecovery(store, publisher, clock).RecoverMissingMeetings(ctx)

		require.NoError(t, err)
		assert.Equal(t, 0, recovered)
		assert.Empty(t, publisher.Created())
	})

	t.Run("Failed republish is tried again after the next window", func(t *testing.T) {
		clock := scheduledAt.Add(20 * time.Minute)
		store := recoveryStore(&clock)
		store.AddSession(confirmedSession("HS-1", models.SessionStatusScheduled, scheduledAt))
		publisher := &mocks.MeetingPublisher{Err: errors.New("channel closed")}

		_, err := newTestRecovery(store, publisher, clock).RecoverMissingMeetings(ctx)
		require.NoError(t, err)
		require.Empty(t, publisher.Created())

		publisher.Err = nil
		recovered, err := newTestRecovery(store, publisher, clock.Add(16*time.Minute)).RecoverMissingMeetings(ctx)

		require.NoError(t, err)
		assert.Equal(t, 1, recovered)
		assert.Len(t, publisher.Created(), 1)
	})

	t.Run("Member lookup failure rolls back the touch", func(t *testing.T) {
		clock := scheduledAt.Add(20 * time.Minute)
		store := recoveryStore(&clock)
		store.AddSession(confirmedSession("HS-1", models.SessionStatusScheduled, scheduledAt))
		store.FindMemberErr = exceptions.ErrPostgresDBFindData(errors.New("connection refused"))
		publisher := &mocks.MeetingPublisher{}

		_, err := newTestRecovery(store, publisher, clock).RecoverMissingMeetings(ctx)

		assert.True(t, exceptions.IsRetryable(err))
		assert.Equal(t, scheduledAt, store.Session("HS-1").UpdatedAt)
		assert.Empty(t, publisher.Created())
	})
}
