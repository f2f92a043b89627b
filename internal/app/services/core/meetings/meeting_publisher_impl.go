package meetings

import (
	"context"
	"errors"

	"telehealth-service/internal/app/contracts"
	"telehealth-service/internal/app/models"
	"telehealth-service/internal/pkg/constvars"
	"telehealth-service/internal/pkg/utils"

	"go.uber.org/zap"
)

type meetingEventPublisher struct {
	Queue contracts.MeetingQueueService
	Log   *zap.Logger
}

func NewMeetingEventPublisher(queue contracts.MeetingQueueService, logger *zap.Logger) contracts.MeetingEventPublisher {
	return &meetingEventPublisher{
		Queue: queue,
		Log:   logger,
	}
}

// PublishCreateSession enqueues one intent per event. Every event is
// attempted; the returned error joins the ones that failed.
func (p *meetingEventPublisher) PublishCreateSession(ctx context.Context, events []models.CreateSessionMeetingEvent) error {
	requestID := utils.GetRequestID(ctx)
	p.Log.Info("meetingEventPublisher.PublishCreateSession called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int(constvars.LoggingCountKey, len(events)),
	)

	var errs []error
	for i := range events {
		event := events[i]
		intent := &models.MeetingIntent{
			Kind:   models.MeetingIntentCreate,
			Create: &event,
		}
		if err := p.Queue.Enqueue(ctx, intent); err != nil {
			p.Log.Error("meetingEventPublisher.PublishCreateSession error enqueueing intent",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.String(constvars.LoggingSessionRefKey, event.SessionReference),
				zap.Error(err),
			)
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (p *meetingEventPublisher) PublishCancelSession(ctx context.Context, event models.CancelSessionMeetingEvent) error {
	requestID := utils.GetRequestID(ctx)
	p.Log.Info("meetingEventPublisher.PublishCancelSession called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingSessionRefKey, event.SessionReference),
	)

	intent := &models.MeetingIntent{
		Kind:   models.MeetingIntentCancel,
		Cancel: &event,
	}
	if err := p.Queue.Enqueue(ctx, intent); err != nil {
		p.Log.Error("meetingEventPublisher.PublishCancelSession error enqueueing intent",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingSessionRefKey, event.SessionReference),
			zap.Error(err),
		)
		return err
	}
	return nil
}
