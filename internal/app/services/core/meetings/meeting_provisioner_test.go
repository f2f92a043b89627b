package meetings

import (
	"context"
	"errors"
	"testing"
	"time"

	"telehealth-service/internal/app/mocks"
	"telehealth-service/internal/app/models"
	"telehealth-service/internal/pkg/exceptions"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func createIntent(sessionReference string) *models.MeetingIntent {
	startsAt := time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC)
	return &models.MeetingIntent{
		Kind: models.MeetingIntentCreate,
		Create: &models.CreateSessionMeetingEvent{
			SessionReference: sessionReference,
			StartsAt:         startsAt,
			EndsAt:           startsAt.Add(time.Hour),
			Timezone:         "UTC",
			Attendees:        []string{"pat@example.com", "pro@example.com"},
		},
	}
}

func newTestProvisioner(store *mocks.Store, calendar *mocks.Calendar) *meetingProvisioner {
	return NewMeetingProvisioner(mocks.NewUnitOfWork(store), store.SessionRepository(), calendar, zap.NewNop()).(*meetingProvisioner)
}

func storeWithSession(status models.SessionStatus) *mocks.Store {
	store := mocks.NewStore()
	store.AddSession(models.HealthSession{
		Reference:      "HS-1",
		PatientID:      "pat-1",
		ProfessionalID: "pro-1",
		Date:           "2026-04-01",
		Time:           "09:00",
		Timezone:       "UTC",
		Status:         status,
	})
	return store
}

func TestMeetingProvisioner_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("Links created event to scheduled session", func(t *testing.T) {
		store := storeWithSession(models.SessionStatusScheduled)
		calendar := &mocks.Calendar{}

		err := newTestProvisioner(store, calendar).Provision(ctx, createIntent("HS-1"))

		require.NoError(t, err)
		session := store.Session("HS-1")
		assert.Equal(t, "evt-1", session.ExternalEventID)
		assert.Equal(t, "evt-1@google.com", session.OtherEventReference)
		assert.Equal(t, "https://meet.google.com/evt-1", session.MeetingURL)
		assert.Equal(t, models.SessionStatusScheduled, session.Status)
		assert.Empty(t, calendar.Canceled())
	})

	t.Run("Pending session becomes scheduled", func(t *testing.T) {
		store := storeWithSession(models.SessionStatusPending)

		err := newTestProvisioner(store, &mocks.Calendar{}).Provision(ctx, createIntent("HS-1"))

		require.NoError(t, err)
		assert.Equal(t, models.SessionStatusScheduled, store.Session("HS-1").Status)
	})

	t.Run("Already linked session creates nothing", func(t *testing.T) {
		store := storeWithSession(models.SessionStatusScheduled)
		calendar := &mocks.Calendar{}
		provisioner := newTestProvisioner(store, calendar)
		require.NoError(t, provisioner.Provision(ctx, createIntent("HS-1")))

		err := provisioner.Provision(ctx, createIntent("HS-1"))

		require.NoError(t, err)
		assert.Len(t, calendar.Created(), 1)
	})

	t.Run("Canceled session creates nothing", func(t *testing.T) {
		store := storeWithSession(models.SessionStatusCanceled)
		calendar := &mocks.Calendar{}

		err := newTestProvisioner(store, calendar).Provision(ctx, createIntent("HS-1"))

		require.NoError(t, err)
		assert.Empty(t, calendar.Created())
	})

	t.Run("Missing session creates nothing", func(t *testing.T) {
		calendar := &mocks.Calendar{}

		err := newTestProvisioner(mocks.NewStore(), calendar).Provision(ctx, createIntent("HS-404"))

		require.NoError(t, err)
		assert.Empty(t, calendar.Created())
	})

	t.Run("Cancellation during creation discards the event", func(t *testing.T) {
		store := storeWithSession(models.SessionStatusScheduled)
		calendar := &mocks.Calendar{}
		calendar.BeforeReturn = func() {
			canceled := store.Session("HS-1")
			canceled.Status = models.SessionStatusCanceled
			require.NoError(t, store.SessionRepository().UpdateStatus(ctx, canceled))
		}

		err := newTestProvisioner(store, calendar).Provision(ctx, createIntent("HS-1"))

		require.NoError(t, err)
		assert.Equal(t, []string{"evt-1"}, calendar.Canceled())
		assert.Empty(t, store.Session("HS-1").ExternalEventID)
	})

	t.Run("Linking failure discards the event and reports the error", func(t *testing.T) {
		store := storeWithSession(models.SessionStatusScheduled)
		store.UpdateSessionErr = exceptions.ErrPostgresDBUpdateData(errors.New("connection reset"))
		calendar := &mocks.Calendar{}

		err := newTestProvisioner(store, calendar).Provision(ctx, createIntent("HS-1"))

		assert.True(t, exceptions.IsRetryable(err))
		assert.Equal(t, []string{"evt-1"}, calendar.Canceled())
	})

	t.Run("Calendar failure is returned", func(t *testing.T) {
		store := storeWithSession(models.SessionStatusScheduled)
		calendarErr := exceptions.ErrCalendarCreateEvent(errors.New("503"), "HS-1")

		err := newTestProvisioner(store, &mocks.Calendar{CreateErr: calendarErr}).Provision(ctx, createIntent("HS-1"))

		assert.ErrorIs(t, err, calendarErr)
		assert.Empty(t, store.Session("HS-1").ExternalEventID)
	})
}

func TestMeetingProvisioner_Cancel(t *testing.T) {
	ctx := context.Background()

	testCases := []struct {
		name     string
		event    *models.CancelSessionMeetingEvent
		expected []string
	}{
		{
			name:     "Cancels by event id",
			event:    &models.CancelSessionMeetingEvent{SessionReference: "HS-1", EventIDOrReference: "evt-9", OtherEventReference: "evt-9@google.com"},
			expected: []string{"evt-9"},
		},
		{
			name:     "Falls back to the other reference",
			event:    &models.CancelSessionMeetingEvent{SessionReference: "HS-1", OtherEventReference: "evt-9@google.com"},
			expected: []string{"evt-9@google.com"},
		},
		{
			name:     "Nothing to cancel",
			event:    &models.CancelSessionMeetingEvent{SessionReference: "HS-1"},
			expected: nil,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			calendar := &mocks.Calendar{}
			intent := &models.MeetingIntent{Kind: models.MeetingIntentCancel, Cancel: tc.event}

			err := newTestProvisioner(mocks.NewStore(), calendar).Provision(ctx, intent)

			require.NoError(t, err)
			assert.Equal(t, tc.expected, calendar.Canceled())
		})
	}
}

func TestMeetingProvisioner_MalformedIntent(t *testing.T) {
	provisioner := newTestProvisioner(mocks.NewStore(), &mocks.Calendar{})

	for _, intent := range []*models.MeetingIntent{
		{Kind: models.MeetingIntentCreate},
		{Kind: models.MeetingIntentCancel},
		{Kind: "RESCHEDULE"},
	} {
		err := provisioner.Provision(context.Background(), intent)
		assert.ErrorIs(t, err, errMalformedIntent)
		assert.False(t, exceptions.IsRetryable(err))
	}
}
