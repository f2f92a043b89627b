package meetings

import (
	"context"
	"errors"
	"testing"

	"telehealth-service/internal/app/mocks"
	"telehealth-service/internal/app/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestMeetingEventPublisher(t *testing.T) {
	ctx := context.Background()

	t.Run("Enqueues one create intent per event", func(t *testing.T) {
		queue := &mocks.MeetingQueue{}
		publisher := NewMeetingEventPublisher(queue, zap.NewNop())

		err := publisher.PublishCreateSession(ctx, []models.CreateSessionMeetingEvent{
			{SessionReference: "HS-1"},
			{SessionReference: "HS-2"},
		})

		require.NoError(t, err)
		require.Len(t, queue.Enqueued, 2)
		assert.Equal(t, models.MeetingIntentCreate, queue.Enqueued[0].Kind)
		assert.Equal(t, "HS-1", queue.Enqueued[0].Create.SessionReference)
		assert.Equal(t, "HS-2", queue.Enqueued[1].Create.SessionReference)
	})

	t.Run("Enqueues cancel intent", func(t *testing.T) {
		queue := &mocks.MeetingQueue{}
		publisher := NewMeetingEventPublisher(queue, zap.NewNop())

		err := publisher.PublishCancelSession(ctx, models.CancelSessionMeetingEvent{SessionReference: "HS-1", EventIDOrReference: "evt-1"})

		require.NoError(t, err)
		require.Len(t, queue.Enqueued, 1)
		assert.Equal(t, models.MeetingIntentCancel, queue.Enqueued[0].Kind)
		assert.Equal(t, "evt-1", queue.Enqueued[0].Cancel.EventIDOrReference)
	})

	t.Run("Queue failure is reported", func(t *testing.T) {
		brokerDown := errors.New("broker down")
		publisher := NewMeetingEventPublisher(&mocks.MeetingQueue{EnqueueErr: brokerDown}, zap.NewNop())

		err := publisher.PublishCreateSession(ctx, []models.CreateSessionMeetingEvent{{SessionReference: "HS-1"}})

		assert.ErrorIs(t, err, brokerDown)
	})
}
