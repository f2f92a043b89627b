package contracts

import (
	"context"

	"telehealth-service/internal/app/models"
)

type TransactionReconciler interface {
	ReconcileCharge(ctx context.Context, validation *models.PaymentValidation) error
}

type WithdrawalReconciler interface {
	ReconcileTransfer(ctx context.Context, validation *models.TransferValidation) error
}

// ReconciliationRetryQueue schedules another reconciliation attempt for an
// event whose outcome could not be settled yet.
type ReconciliationRetryQueue interface {
	ScheduleChargeRetry(ctx context.Context, validation *models.PaymentValidation) error
	ScheduleTransferRetry(ctx context.Context, validation *models.TransferValidation) error
}
