package reconciliation

import (
	"context"
	"strings"
	"time"

	"telehealth-service/internal/app/config"
	"telehealth-service/internal/app/contracts"
	"telehealth-service/internal/app/models"
	healthSessions "telehealth-service/internal/app/services/core/health_sessions"
	"telehealth-service/internal/pkg/constvars"
	"telehealth-service/internal/pkg/exceptions"
	"telehealth-service/internal/pkg/utils"

	"go.uber.org/zap"
)

const (
	defaultMeetingDuration     = 60 * time.Minute
	defaultVerificationTimeout = 10 * time.Second
)

type transactionReconciler struct {
	UnitOfWork          contracts.UnitOfWork
	Transactions        contracts.SessionTransactionRepository
	StatusClients       map[models.PaymentGateway]contracts.GatewayStatusClient
	Publisher           contracts.MeetingEventPublisher
	Log                 *zap.Logger
	MeetingDuration     time.Duration
	VerificationTimeout time.Duration
}

func NewTransactionReconciler(
	unitOfWork contracts.UnitOfWork,
	transactions contracts.SessionTransactionRepository,
	statusClients []contracts.GatewayStatusClient,
	publisher contracts.MeetingEventPublisher,
	logger *zap.Logger,
	internalConfig *config.InternalConfig,
) contracts.TransactionReconciler {
	clients := make(map[models.PaymentGateway]contracts.GatewayStatusClient, len(statusClients))
	for _, client := range statusClients {
		clients[client.Gateway()] = client
	}

	meetingDuration := defaultMeetingDuration
	if internalConfig.App.MeetingDurationInMinutes > 0 {
		meetingDuration = time.Duration(internalConfig.App.MeetingDurationInMinutes) * time.Minute
	}
	verificationTimeout := defaultVerificationTimeout
	if internalConfig.PaymentGateway.RequestTimeoutInSeconds > 0 {
		verificationTimeout = time.Duration(internalConfig.PaymentGateway.RequestTimeoutInSeconds) * time.Second
	}

	return &transactionReconciler{
		UnitOfWork:          unitOfWork,
		Transactions:        transactions,
		StatusClients:       clients,
		Publisher:           publisher,
		Log:                 logger,
		MeetingDuration:     meetingDuration,
		VerificationTimeout: verificationTimeout,
	}
}

// ReconcileCharge settles every pending row of the charged group. The group
// is pre-read without locks so the gateway is never queried while rows are
// locked; the locked re-read inside the unit of work is authoritative.
func (r *transactionReconciler) ReconcileCharge(ctx context.Context, validation *models.PaymentValidation) error {
	requestID := utils.GetRequestID(ctx)
	reference := validation.TransactionReference
	r.Log.Info("transactionReconciler.ReconcileCharge called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingGatewayKey, string(validation.Gateway)),
		zap.String(constvars.LoggingGroupRefKey, reference),
		zap.String(constvars.LoggingReportedStatusKey, validation.Status),
	)

	if reference == "" {
		r.Log.Warn("transactionReconciler.ReconcileCharge empty reference, ignoring",
			zap.String(constvars.LoggingRequestIDKey, requestID),
		)
		return nil
	}

	group, err := r.Transactions.FindByGroupReference(ctx, reference)
	if err != nil {
		return err
	}
	if len(group) == 0 {
		r.Log.Info("transactionReconciler.ReconcileCharge no transactions for reference",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingGroupRefKey, reference),
		)
		return nil
	}
	if allTerminal(group) {
		r.Log.Info("transactionReconciler.ReconcileCharge group already settled",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingGroupRefKey, reference),
		)
		return nil
	}

	outcome, err := r.verify(ctx, validation)
	if err != nil {
		r.Log.Warn("transactionReconciler.ReconcileCharge verification inconclusive",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingGroupRefKey, reference),
			zap.Error(err),
		)
		return err
	}

	var settled int
	err = r.UnitOfWork.Do(ctx, func(ctx context.Context, scope contracts.TransactionScope) error {
		locked, err := scope.SessionTransactions().FindByGroupReferenceForUpdate(ctx, reference)
		if err != nil {
			return err
		}

		var sessionReferences []string
		seen := make(map[string]struct{})
		for i := range locked {
			transaction := &locked[i]
			if transaction.Status.IsTerminal() {
				continue
			}
			transaction.Status = outcome
			if validation.ExternalReference != "" {
				transaction.ExternalReference = validation.ExternalReference
			}
			if validation.Currency != "" {
				transaction.Currency = strings.ToUpper(validation.Currency)
			}
			if err := scope.SessionTransactions().UpdateOutcome(ctx, transaction); err != nil {
				return err
			}
			settled++

			if outcome != models.TransactionStatusSuccess || transaction.SessionReference == "" {
				continue
			}
			if _, ok := seen[transaction.SessionReference]; ok {
				continue
			}
			seen[transaction.SessionReference] = struct{}{}
			sessionReferences = append(sessionReferences, transaction.SessionReference)
		}

		var events []models.CreateSessionMeetingEvent
		for _, sessionReference := range sessionReferences {
			event, err := r.scheduleSession(ctx, scope, sessionReference)
			if err != nil {
				return err
			}
			if event != nil {
				events = append(events, *event)
			}
		}

		if len(events) > 0 {
			scope.AfterCommit(func(ctx context.Context) {
				r.publishCreate(ctx, events)
			})
		}
		return nil
	})
	if err != nil {
		r.Log.Error("transactionReconciler.ReconcileCharge error",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingGroupRefKey, reference),
			zap.Error(err),
		)
		return err
	}

	if settled > 0 {
		utils.LogBusinessEvent(r.Log, "transaction_group_reconciled", requestID,
			zap.String(constvars.LoggingGatewayKey, string(validation.Gateway)),
			zap.String(constvars.LoggingGroupRefKey, reference),
			zap.String(constvars.LoggingOutcomeKey, string(outcome)),
			zap.Int(constvars.LoggingCountKey, settled),
		)
	}
	return nil
}

// verify trusts a reported success only when the gateway's own status query
// agrees. Any failure to obtain that status is inconclusive, never FAILED.
func (r *transactionReconciler) verify(ctx context.Context, validation *models.PaymentValidation) (models.TransactionStatus, error) {
	if !isSuccessStatus(validation.Status) {
		return models.TransactionStatusFailed, nil
	}

	client, ok := r.StatusClients[validation.Gateway]
	if !ok {
		return "", exceptions.ErrGatewayNotSupported(string(validation.Gateway))
	}

	verifyCtx, cancel := context.WithTimeout(ctx, r.VerificationTimeout)
	defer cancel()

	verified, err := client.GetTransactionStatusByReference(verifyCtx, validation.TransactionReference)
	if err != nil {
		return "", exceptions.ErrVerificationInconclusive(err, string(validation.Gateway), validation.TransactionReference)
	}
	if strings.TrimSpace(verified) == "" {
		return "", exceptions.ErrVerificationInconclusive(
			exceptions.ErrGatewayEmptyStatus(string(validation.Gateway), validation.TransactionReference),
			string(validation.Gateway), validation.TransactionReference,
		)
	}

	r.Log.Info("transactionReconciler.verify status compared",
		zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(ctx)),
		zap.String(constvars.LoggingGroupRefKey, validation.TransactionReference),
		zap.String(constvars.LoggingReportedStatusKey, validation.Status),
		zap.String(constvars.LoggingVerifiedStatusKey, verified),
	)

	if isSuccessStatus(verified) {
		return models.TransactionStatusSuccess, nil
	}
	utils.LogSecurityEvent(r.Log, "webhook_status_mismatch", utils.GetRequestID(ctx), constvars.LoggingSeverityMedium,
		zap.String(constvars.LoggingGatewayKey, string(validation.Gateway)),
		zap.String(constvars.LoggingGroupRefKey, validation.TransactionReference),
		zap.String(constvars.LoggingReportedStatusKey, validation.Status),
		zap.String(constvars.LoggingVerifiedStatusKey, verified),
	)
	return models.TransactionStatusFailed, nil
}

// scheduleSession locks the paid session and, when it still needs a meeting,
// moves it to SCHEDULED and returns the meeting to create. A nil event means
// nothing is to be provisioned.
func (r *transactionReconciler) scheduleSession(ctx context.Context, scope contracts.TransactionScope, sessionReference string) (*models.CreateSessionMeetingEvent, error) {
	requestID := utils.GetRequestID(ctx)

	session, err := scope.HealthSessions().FindByReferenceForUpdate(ctx, sessionReference)
	if err != nil {
		return nil, err
	}
	if session == nil {
		r.Log.Warn("transactionReconciler.scheduleSession session not found",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingSessionRefKey, sessionReference),
		)
		return nil, nil
	}
	if !healthSessions.NeedsMeeting(session) {
		return nil, nil
	}
	if !healthSessions.CanTransition(session.Status, models.SessionStatusScheduled) {
		r.Log.Warn("transactionReconciler.scheduleSession session cannot be scheduled",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingSessionRefKey, sessionReference),
			zap.String(constvars.LoggingSessionStatusKey, string(session.Status)),
		)
		return nil, nil
	}

	if session.Status == models.SessionStatusPending {
		lost, err := r.slotLost(ctx, scope, session)
		if err != nil {
			return nil, err
		}
		if lost {
			return nil, nil
		}
	}

	event, err := buildCreateMeetingEvent(ctx, scope.Members(), session, r.MeetingDuration)
	if err != nil {
		r.Log.Error("transactionReconciler.scheduleSession error building meeting event",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingSessionRefKey, sessionReference),
			zap.Error(err),
		)
		if exceptions.IsRetryable(err) {
			return nil, err
		}
		return nil, nil
	}

	if err := healthSessions.Transition(session, models.SessionStatusScheduled); err != nil {
		return nil, err
	}
	if err := scope.HealthSessions().UpdateStatus(ctx, session); err != nil {
		return nil, err
	}
	return event, nil
}

// slotLost reports whether another session was confirmed for the slot after
// this one's hold expired. The payment still settles; the session stays
// PENDING for a refund or rebooking.
func (r *transactionReconciler) slotLost(ctx context.Context, scope contracts.TransactionScope, session *models.HealthSession) (bool, error) {
	if err := scope.HealthSessions().LockSlot(ctx, session.ProfessionalID, session.Date, session.Time); err != nil {
		return false, err
	}
	taken, err := scope.HealthSessions().ExistsScheduledAtSlot(ctx, session.ProfessionalID, session.Date, session.Time)
	if err != nil {
		return false, err
	}
	if taken {
		utils.LogBusinessEvent(r.Log, "paid_session_slot_taken", utils.GetRequestID(ctx),
			zap.String(constvars.LoggingSessionRefKey, session.Reference),
			zap.String(constvars.LoggingMemberIDKey, session.PatientID),
		)
	}
	return taken, nil
}

func (r *transactionReconciler) publishCreate(ctx context.Context, events []models.CreateSessionMeetingEvent) {
	if err := r.Publisher.PublishCreateSession(ctx, events); err != nil {
		r.Log.Error("transactionReconciler.ReconcileCharge error publishing meeting events",
			zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(ctx)),
			zap.Int(constvars.LoggingCountKey, len(events)),
			zap.Error(err),
		)
	}
}

func allTerminal(group []models.SessionTransaction) bool {
	for _, transaction := range group {
		if !transaction.Status.IsTerminal() {
			return false
		}
	}
	return true
}
