package meetings

import (
	"context"
	"errors"

	"telehealth-service/internal/app/contracts"
	"telehealth-service/internal/app/models"
	healthSessions "telehealth-service/internal/app/services/core/health_sessions"
	"telehealth-service/internal/pkg/constvars"
	"telehealth-service/internal/pkg/utils"

	"go.uber.org/zap"
)

// errMalformedIntent is never retried.
var errMalformedIntent = errors.New("malformed meeting intent")

type meetingProvisioner struct {
	UnitOfWork contracts.UnitOfWork
	Sessions   contracts.HealthSessionRepository
	Calendar   contracts.CalendarService
	Log        *zap.Logger
}

func NewMeetingProvisioner(
	unitOfWork contracts.UnitOfWork,
	sessions contracts.HealthSessionRepository,
	calendar contracts.CalendarService,
	logger *zap.Logger,
) contracts.MeetingProvisioner {
	return &meetingProvisioner{
		UnitOfWork: unitOfWork,
		Sessions:   sessions,
		Calendar:   calendar,
		Log:        logger,
	}
}

func (p *meetingProvisioner) Provision(ctx context.Context, intent *models.MeetingIntent) error {
	switch intent.Kind {
	case models.MeetingIntentCreate:
		if intent.Create == nil {
			return errMalformedIntent
		}
		return p.createMeeting(ctx, intent.Create)
	case models.MeetingIntentCancel:
		if intent.Cancel == nil {
			return errMalformedIntent
		}
		return p.cancelMeeting(ctx, intent.Cancel)
	}
	return errMalformedIntent
}

// createMeeting creates the remote event and links it to the session. If
// the session was cancelled or linked by someone else while the event was
// being created, the new event is cancelled again.
func (p *meetingProvisioner) createMeeting(ctx context.Context, event *models.CreateSessionMeetingEvent) error {
	requestID := utils.GetRequestID(ctx)
	p.Log.Info("meetingProvisioner.createMeeting called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingSessionRefKey, event.SessionReference),
	)

	session, err := p.Sessions.FindByReference(ctx, event.SessionReference)
	if err != nil {
		return err
	}
	if skip, reason := skipMeetingCreation(session); skip {
		p.Log.Info("meetingProvisioner.createMeeting skipped",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingSessionRefKey, event.SessionReference),
			zap.String(constvars.LoggingOutcomeKey, reason),
		)
		return nil
	}

	created, err := p.Calendar.CreateEvent(ctx, event)
	if err != nil {
		return err
	}

	var linked bool
	err = p.UnitOfWork.Do(ctx, func(ctx context.Context, scope contracts.TransactionScope) error {
		locked, err := scope.HealthSessions().FindByReferenceForUpdate(ctx, event.SessionReference)
		if err != nil {
			return err
		}
		if skip, _ := skipMeetingCreation(locked); skip {
			return nil
		}

		if locked.Status == models.SessionStatusPending {
			if err := healthSessions.Transition(locked, models.SessionStatusScheduled); err != nil {
				return err
			}
		}
		locked.ExternalEventID = created.ID
		locked.OtherEventReference = created.ICalUID
		locked.MeetingURL = created.MeetingURL
		locked.EventLink = created.HTMLLink
		if err := scope.HealthSessions().UpdateMeetingLinkage(ctx, locked); err != nil {
			return err
		}
		linked = true
		return nil
	})
	if err != nil || !linked {
		p.discardEvent(ctx, event.SessionReference, created.ID)
		return err
	}

	utils.LogBusinessEvent(p.Log, "session_meeting_created", requestID,
		zap.String(constvars.LoggingSessionRefKey, event.SessionReference),
		zap.String(constvars.LoggingMeetingEventIDKey, created.ID),
	)
	return nil
}

func (p *meetingProvisioner) cancelMeeting(ctx context.Context, event *models.CancelSessionMeetingEvent) error {
	requestID := utils.GetRequestID(ctx)
	p.Log.Info("meetingProvisioner.cancelMeeting called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingSessionRefKey, event.SessionReference),
		zap.String(constvars.LoggingMeetingEventIDKey, event.EventIDOrReference),
	)

	eventID := event.EventIDOrReference
	if eventID == "" {
		eventID = event.OtherEventReference
	}
	if eventID == "" {
		return nil
	}
	if err := p.Calendar.CancelEvent(ctx, eventID); err != nil {
		return err
	}

	utils.LogBusinessEvent(p.Log, "session_meeting_canceled", requestID,
		zap.String(constvars.LoggingSessionRefKey, event.SessionReference),
		zap.String(constvars.LoggingMeetingEventIDKey, eventID),
	)
	return nil
}

func (p *meetingProvisioner) discardEvent(ctx context.Context, sessionReference, eventID string) {
	if err := p.Calendar.CancelEvent(ctx, eventID); err != nil {
		p.Log.Error("meetingProvisioner.createMeeting error discarding unlinked event",
			zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(ctx)),
			zap.String(constvars.LoggingSessionRefKey, sessionReference),
			zap.String(constvars.LoggingMeetingEventIDKey, eventID),
			zap.Error(err),
		)
	}
}

func skipMeetingCreation(session *models.HealthSession) (bool, string) {
	switch {
	case session == nil:
		return true, "session_not_found"
	case session.Status == models.SessionStatusCanceled:
		return true, "session_canceled"
	case session.ExternalEventID != "":
		return true, "meeting_already_linked"
	}
	return false, ""
}
