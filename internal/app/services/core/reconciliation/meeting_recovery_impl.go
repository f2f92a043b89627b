package reconciliation

import (
	"context"
	"time"

	"telehealth-service/internal/app/config"
	"telehealth-service/internal/app/contracts"
	"telehealth-service/internal/app/models"
	"telehealth-service/internal/pkg/constvars"
	"telehealth-service/internal/pkg/exceptions"
	"telehealth-service/internal/pkg/utils"

	"go.uber.org/zap"
)

const (
	defaultRecoverAfter      = 15 * time.Minute
	defaultRecoveryBatchSize = 20
)

type meetingRecovery struct {
	UnitOfWork      contracts.UnitOfWork
	Sessions        contracts.HealthSessionRepository
	Publisher       contracts.MeetingEventPublisher
	Log             *zap.Logger
	MeetingDuration time.Duration
	RecoverAfter    time.Duration
	BatchSize       int
	now             func() time.Time
}

func NewMeetingRecovery(
	unitOfWork contracts.UnitOfWork,
	sessions contracts.HealthSessionRepository,
	publisher contracts.MeetingEventPublisher,
	logger *zap.Logger,
	internalConfig *config.InternalConfig,
) contracts.MeetingRecovery {
	meetingDuration := defaultMeetingDuration
	if internalConfig.App.MeetingDurationInMinutes > 0 {
		meetingDuration = time.Duration(internalConfig.App.MeetingDurationInMinutes) * time.Minute
	}
	recoverAfter := time.Duration(internalConfig.MeetingQueue.RecoveryAfterInMinutes) * time.Minute
	if recoverAfter <= 0 {
		recoverAfter = defaultRecoverAfter
	}
	batchSize := internalConfig.MeetingQueue.BatchSize
	if batchSize <= 0 {
		batchSize = defaultRecoveryBatchSize
	}

	return &meetingRecovery{
		UnitOfWork:      unitOfWork,
		Sessions:        sessions,
		Publisher:       publisher,
		Log:             logger,
		MeetingDuration: meetingDuration,
		RecoverAfter:    recoverAfter,
		BatchSize:       batchSize,
		now:             time.Now,
	}
}

// RecoverMissingMeetings finds SCHEDULED or RESCHEDULED sessions that have sat
// without a calendar event for longer than RecoverAfter and publishes their
// create intents again. Each recovered row is touched in the same commit, so
// it is not picked up again before another RecoverAfter has passed. The
// provisioner skips sessions that already got their event, which makes a
// duplicate intent harmless.
func (r *meetingRecovery) RecoverMissingMeetings(ctx context.Context) (int, error) {
	requestID := utils.GetRequestID(ctx)
	cutoff := r.now().Add(-r.RecoverAfter)

	candidates, err := r.Sessions.FindAwaitingMeeting(ctx, cutoff, r.BatchSize)
	if err != nil {
		return 0, err
	}
	if len(candidates) == 0 {
		return 0, nil
	}

	var events []models.CreateSessionMeetingEvent
	err = r.UnitOfWork.Do(ctx, func(ctx context.Context, scope contracts.TransactionScope) error {
		for _, candidate := range candidates {
			session, err := scope.HealthSessions().FindByReferenceForUpdate(ctx, candidate.Reference)
			if err != nil {
				return err
			}
			if session == nil || !awaitingMeeting(session, cutoff) {
				continue
			}

			event, err := buildCreateMeetingEvent(ctx, scope.Members(), session, r.MeetingDuration)
			if err != nil {
				if exceptions.IsRetryable(err) {
					return err
				}
				r.Log.Error("meetingRecovery.RecoverMissingMeetings cannot rebuild meeting event",
					zap.String(constvars.LoggingRequestIDKey, requestID),
					zap.String(constvars.LoggingSessionRefKey, session.Reference),
					zap.Error(err),
				)
				continue
			}

			if err := scope.HealthSessions().UpdateStatus(ctx, session); err != nil {
				return err
			}
			events = append(events, *event)
		}

		if len(events) > 0 {
			scope.AfterCommit(func(ctx context.Context) {
				if err := r.Publisher.PublishCreateSession(ctx, events); err != nil {
					r.Log.Error("meetingRecovery.RecoverMissingMeetings error publishing meeting events",
						zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(ctx)),
						zap.Int(constvars.LoggingCountKey, len(events)),
						zap.Error(err),
					)
				}
			})
		}
		return nil
	})
	if err != nil {
		r.Log.Error("meetingRecovery.RecoverMissingMeetings error",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return 0, err
	}

	if len(events) > 0 {
		utils.LogBusinessEvent(r.Log, "meeting_intents_recovered", requestID,
			zap.Int(constvars.LoggingCountKey, len(events)),
		)
	}
	return len(events), nil
}

func awaitingMeeting(session *models.HealthSession, cutoff time.Time) bool {
	if session.Status != models.SessionStatusScheduled && session.Status != models.SessionStatusRescheduled {
		return false
	}
	return !session.HasExternalMeeting() && session.UpdatedAt.Before(cutoff)
}
