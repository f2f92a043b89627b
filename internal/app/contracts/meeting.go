package contracts

import (
	"context"

	"telehealth-service/internal/app/models"
)

type MeetingEventPublisher interface {
	PublishCreateSession(ctx context.Context, events []models.CreateSessionMeetingEvent) error
	PublishCancelSession(ctx context.Context, event models.CancelSessionMeetingEvent) error
}

type MeetingQueueService interface {
	Enqueue(ctx context.Context, intent *models.MeetingIntent) error
	Reenqueue(ctx context.Context, intent *models.MeetingIntent) error
	EnqueueToDeadQueue(ctx context.Context, intent *models.MeetingIntent) error
	FetchN(ctx context.Context, max int) ([]models.QueuedMeetingIntent, error)
	AckMessage(ctx context.Context, deliveryTag uint64) error
}

// MeetingProvisioner applies a single dequeued intent against the calendar
// and the session store.
type MeetingProvisioner interface {
	Provision(ctx context.Context, intent *models.MeetingIntent) error
}

// MeetingRecovery re-publishes create intents for confirmed sessions whose
// meeting was never provisioned, e.g. because the post-commit publish failed.
type MeetingRecovery interface {
	RecoverMissingMeetings(ctx context.Context) (int, error)
}
