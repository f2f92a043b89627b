package webhook

import (
	"context"

	"telehealth-service/internal/app/contracts"
	"telehealth-service/internal/app/models"
	"telehealth-service/internal/pkg/constvars"
	"telehealth-service/internal/pkg/exceptions"
	"telehealth-service/internal/pkg/utils"

	"go.uber.org/zap"
)

type webhookUsecase struct {
	Normalizer            contracts.WebhookNormalizer
	TransactionReconciler contracts.TransactionReconciler
	WithdrawalReconciler  contracts.WithdrawalReconciler
	RetryQueue            contracts.ReconciliationRetryQueue
	Archive               contracts.WebhookArchive
	Log                   *zap.Logger
}

func NewWebhookUsecase(
	normalizer contracts.WebhookNormalizer,
	transactionReconciler contracts.TransactionReconciler,
	withdrawalReconciler contracts.WithdrawalReconciler,
	retryQueue contracts.ReconciliationRetryQueue,
	archive contracts.WebhookArchive,
	logger *zap.Logger,
) contracts.WebhookUsecase {
	return &webhookUsecase{
		Normalizer:            normalizer,
		TransactionReconciler: transactionReconciler,
		WithdrawalReconciler:  withdrawalReconciler,
		RetryQueue:            retryQueue,
		Archive:               archive,
		Log:                   logger,
	}
}

// ValidateAndCompleteTransaction has no error result: the gateway is
// acknowledged whatever happens here. Failures worth another attempt are
// handed to the retry queue instead.
func (uc *webhookUsecase) ValidateAndCompleteTransaction(ctx context.Context, rawBody []byte, gatewayHint string) {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Info("webhookUsecase.ValidateAndCompleteTransaction called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingGatewayKey, gatewayHint),
		zap.Int(constvars.LoggingPayloadSizeKey, len(rawBody)),
	)

	event := uc.Normalizer.Normalize(ctx, rawBody, gatewayHint)
	uc.archive(ctx, event.Gateway, rawBody)

	switch event.Kind {
	case models.EventKindCharge:
		if err := uc.TransactionReconciler.ReconcileCharge(ctx, event.Payment); err != nil {
			uc.scheduleRetry(ctx, event, err)
		}
	case models.EventKindTransfer:
		if err := uc.WithdrawalReconciler.ReconcileTransfer(ctx, event.Transfer); err != nil {
			uc.scheduleRetry(ctx, event, err)
		}
	case models.EventKindUnknown:
		uc.Log.Info("webhookUsecase.ValidateAndCompleteTransaction dropping unknown event",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingEventTypeKey, event.EventType),
		)
	default:
		uc.Log.Warn("webhookUsecase.ValidateAndCompleteTransaction unhandled event kind",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingEventKindKey, string(event.Kind)),
		)
	}
}

func (uc *webhookUsecase) scheduleRetry(ctx context.Context, event models.WebhookEvent, cause error) {
	requestID := utils.GetRequestID(ctx)
	if !exceptions.IsRetryable(cause) {
		uc.Log.Error("webhookUsecase.ValidateAndCompleteTransaction reconciliation failed",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingEventTypeKey, event.EventType),
			zap.Error(cause),
		)
		return
	}

	var err error
	switch event.Kind {
	case models.EventKindCharge:
		err = uc.RetryQueue.ScheduleChargeRetry(ctx, event.Payment)
	case models.EventKindTransfer:
		err = uc.RetryQueue.ScheduleTransferRetry(ctx, event.Transfer)
	}
	if err != nil {
		uc.Log.Error("webhookUsecase.ValidateAndCompleteTransaction error scheduling retry",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingEventTypeKey, event.EventType),
			zap.NamedError("cause", cause),
			zap.Error(err),
		)
		return
	}

	uc.Log.Info("webhookUsecase.ValidateAndCompleteTransaction retry scheduled",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingEventTypeKey, event.EventType),
		zap.NamedError("cause", cause),
	)
}

// archive stores the raw body in the background. Archival never delays or
// changes the acknowledgement.
func (uc *webhookUsecase) archive(ctx context.Context, gateway models.PaymentGateway, rawBody []byte) {
	if uc.Archive == nil {
		return
	}
	body := make([]byte, len(rawBody))
	copy(body, rawBody)
	detached := utils.DetachedContext(ctx)

	go func() {
		objectName, err := uc.Archive.Archive(detached, gateway, body)
		if err != nil {
			uc.Log.Warn("webhookUsecase.archive error storing webhook body",
				zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(detached)),
				zap.Error(err),
			)
			return
		}
		uc.Log.Debug("webhookUsecase.archive stored webhook body",
			zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(detached)),
			zap.String(constvars.LoggingObjectKey, objectName),
		)
	}()
}
