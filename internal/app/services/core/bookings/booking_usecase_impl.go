package bookings

import (
	"context"
	"time"

	"telehealth-service/internal/app/config"
	"telehealth-service/internal/app/contracts"
	"telehealth-service/internal/app/models"
	"telehealth-service/internal/pkg/constvars"
	"telehealth-service/internal/pkg/dto/requests"
	"telehealth-service/internal/pkg/exceptions"
	"telehealth-service/internal/pkg/utils"

	"go.uber.org/zap"
)

const (
	defaultReferenceGenerationAttempts = 5
	defaultSlotHold                    = 30 * time.Minute
)

type bookingUsecase struct {
	UnitOfWork  contracts.UnitOfWork
	Log         *zap.Logger
	MaxAttempts int
	SlotHold    time.Duration
	generateRef func(prefix string) string
	now         func() time.Time
}

func NewBookingUsecase(
	unitOfWork contracts.UnitOfWork,
	logger *zap.Logger,
	internalConfig *config.InternalConfig,
) contracts.BookingUsecase {
	attempts := internalConfig.App.ReferenceGenerationAttempts
	if attempts <= 0 {
		attempts = defaultReferenceGenerationAttempts
	}
	slotHold := time.Duration(internalConfig.App.SlotHoldInMinutes) * time.Minute
	if slotHold <= 0 {
		slotHold = defaultSlotHold
	}
	return &bookingUsecase{
		UnitOfWork:  unitOfWork,
		Log:         logger,
		MaxAttempts: attempts,
		SlotHold:    slotHold,
		generateRef: utils.GenerateReference,
		now:         time.Now,
	}
}

// BookSession reserves a professional's slot for the patient and records the
// pending payment that will confirm it. An unpaid reservation holds the slot
// for SlotHold; a failed payment releases it at once.
func (uc *bookingUsecase) BookSession(ctx context.Context, request *requests.BookSessionRequest, patientID string) (*models.SessionTransaction, error) {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Info("bookingUsecase.BookSession called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingMemberIDKey, patientID),
	)

	if err := utils.ValidateStruct(request); err != nil {
		uc.Log.Error("bookingUsecase.BookSession error validating request",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, exceptions.ErrInputValidation(err)
	}

	gateway, _ := models.ParsePaymentGateway(request.Gateway)
	location, err := time.LoadLocation(request.Timezone)
	if err != nil {
		return nil, exceptions.ErrInvalidTimezone(err, request.Timezone)
	}
	startsAt, err := time.ParseInLocation(constvars.SessionDateLayout+" "+constvars.SessionTimeLayout, request.Date+" "+request.Time, location)
	if err != nil {
		return nil, exceptions.ErrInvalidSessionSchedule(err, request.Date, request.Time)
	}
	if !startsAt.After(uc.now()) {
		return nil, exceptions.ErrSessionDateInPast(startsAt.Format(time.RFC3339))
	}

	var booked *models.SessionTransaction
	err = uc.UnitOfWork.Do(ctx, func(ctx context.Context, scope contracts.TransactionScope) error {
		professional, err := scope.Members().FindByID(ctx, request.ProfessionalID)
		if err != nil {
			return err
		}
		if professional == nil || professional.MemberType != models.MemberTypeProfessional {
			return exceptions.ErrProfessionalNotFound(request.ProfessionalID)
		}

		if err := scope.HealthSessions().LockSlot(ctx, request.ProfessionalID, request.Date, request.Time); err != nil {
			return err
		}
		heldSince := uc.now().Add(-uc.SlotHold)
		taken, err := scope.HealthSessions().ExistsActiveAtSlot(ctx, request.ProfessionalID, request.Date, request.Time, heldSince)
		if err != nil {
			return err
		}
		if taken {
			return exceptions.ErrSlotUnavailable(request.ProfessionalID, request.Date, request.Time)
		}

		sessionRef, err := uc.uniqueReference(ctx, constvars.SessionReferencePrefix, scope.HealthSessions().ExistsByReference)
		if err != nil {
			return err
		}
		transactionRef, err := uc.uniqueReference(ctx, constvars.TransactionReferencePrefix, scope.SessionTransactions().ExistsByReference)
		if err != nil {
			return err
		}
		groupRef, err := uc.uniqueReference(ctx, constvars.GroupReferencePrefix, func(ctx context.Context, reference string) (bool, error) {
			group, err := scope.SessionTransactions().FindByGroupReference(ctx, reference)
			return len(group) > 0, err
		})
		if err != nil {
			return err
		}

		session := &models.HealthSession{
			Reference:      sessionRef,
			PatientID:      patientID,
			ProfessionalID: request.ProfessionalID,
			Date:           request.Date,
			Time:           request.Time,
			Timezone:       request.Timezone,
			Status:         models.SessionStatusPending,
		}
		if err := scope.HealthSessions().Create(ctx, session); err != nil {
			return err
		}

		transaction := &models.SessionTransaction{
			TransactionHeader: models.TransactionHeader{
				Kind:      models.TransactionKindSession,
				Reference: transactionRef,
				PayerID:   patientID,
				Gateway:   gateway,
				Status:    models.TransactionStatusPending,
				Amount:    request.Amount,
				Currency:  request.Currency,
			},
			GroupReference:   groupRef,
			SessionReference: sessionRef,
		}
		if err := scope.SessionTransactions().Create(ctx, transaction); err != nil {
			return err
		}

		booked = transaction
		return nil
	})
	if err != nil {
		uc.Log.Error("bookingUsecase.BookSession error",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	utils.LogBusinessEvent(uc.Log, "health_session_booked", requestID,
		zap.String(constvars.LoggingSessionRefKey, booked.SessionReference),
		zap.String(constvars.LoggingTransactionRefKey, booked.Reference),
		zap.String(constvars.LoggingGroupRefKey, booked.GroupReference),
		zap.String(constvars.LoggingGatewayKey, string(booked.Gateway)),
	)
	return booked, nil
}

func (uc *bookingUsecase) uniqueReference(ctx context.Context, prefix string, exists func(ctx context.Context, reference string) (bool, error)) (string, error) {
	for attempt := 0; attempt < uc.MaxAttempts; attempt++ {
		reference := uc.generateRef(prefix)
		taken, err := exists(ctx, reference)
		if err != nil {
			return "", err
		}
		if !taken {
			return reference, nil
		}
		uc.Log.Warn("bookingUsecase.BookSession reference collision",
			zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(ctx)),
			zap.String(constvars.LoggingReferenceKey, reference),
		)
	}
	return "", exceptions.ErrReferenceGenerationExhausted(prefix, uc.MaxAttempts)
}
