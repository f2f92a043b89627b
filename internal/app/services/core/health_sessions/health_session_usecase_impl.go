package healthSessions

import (
	"context"

	"telehealth-service/internal/app/contracts"
	"telehealth-service/internal/app/models"
	"telehealth-service/internal/pkg/constvars"
	"telehealth-service/internal/pkg/exceptions"
	"telehealth-service/internal/pkg/utils"

	"go.uber.org/zap"
)

type healthSessionUsecase struct {
	UnitOfWork contracts.UnitOfWork
	Publisher  contracts.MeetingEventPublisher
	Log        *zap.Logger
}

func NewHealthSessionUsecase(
	unitOfWork contracts.UnitOfWork,
	publisher contracts.MeetingEventPublisher,
	logger *zap.Logger,
) contracts.HealthSessionUsecase {
	return &healthSessionUsecase{
		UnitOfWork: unitOfWork,
		Publisher:  publisher,
		Log:        logger,
	}
}

// CancelSession cancels a session owned by requesterID. Transactions linked to
// the session are never touched. Cancelling an already cancelled session
// returns it unchanged.
func (uc *healthSessionUsecase) CancelSession(ctx context.Context, sessionReference, requesterID string) (*models.HealthSession, error) {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Info("healthSessionUsecase.CancelSession called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingSessionRefKey, sessionReference),
		zap.String(constvars.LoggingMemberIDKey, requesterID),
	)

	var session *models.HealthSession
	err := uc.UnitOfWork.Do(ctx, func(ctx context.Context, scope contracts.TransactionScope) error {
		found, err := scope.HealthSessions().FindByReferenceForUpdate(ctx, sessionReference)
		if err != nil {
			return err
		}
		if found == nil {
			return exceptions.ErrSessionNotFound(sessionReference)
		}
		if found.PatientID != requesterID {
			return exceptions.ErrSessionNotOwned(requesterID, sessionReference)
		}

		session = found
		if found.Status == models.SessionStatusCanceled {
			uc.Log.Info("healthSessionUsecase.CancelSession session already canceled",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.String(constvars.LoggingSessionRefKey, sessionReference),
			)
			return nil
		}

		previous := found.Status
		if err := Transition(found, models.SessionStatusCanceled); err != nil {
			return err
		}
		if err := scope.HealthSessions().UpdateStatus(ctx, found); err != nil {
			return err
		}

		if found.HasExternalMeeting() {
			event := models.CancelSessionMeetingEvent{
				SessionReference:    found.Reference,
				EventIDOrReference:  found.ExternalEventID,
				OtherEventReference: found.OtherEventReference,
			}
			scope.AfterCommit(func(ctx context.Context) {
				uc.publishCancel(ctx, event)
			})
		}

		utils.LogBusinessEvent(uc.Log, "health_session_canceled", requestID,
			zap.String(constvars.LoggingSessionRefKey, found.Reference),
			zap.String(constvars.LoggingPreviousStatusKey, string(previous)),
		)
		return nil
	})
	if err != nil {
		uc.Log.Error("healthSessionUsecase.CancelSession error",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingSessionRefKey, sessionReference),
			zap.Error(err),
		)
		return nil, err
	}

	return session, nil
}

func (uc *healthSessionUsecase) publishCancel(ctx context.Context, event models.CancelSessionMeetingEvent) {
	if err := uc.Publisher.PublishCancelSession(ctx, event); err != nil {
		uc.Log.Error("healthSessionUsecase.CancelSession error publishing meeting cancellation",
			zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(ctx)),
			zap.String(constvars.LoggingSessionRefKey, event.SessionReference),
			zap.String(constvars.LoggingMeetingEventIDKey, event.EventIDOrReference),
			zap.Error(err),
		)
	}
}
