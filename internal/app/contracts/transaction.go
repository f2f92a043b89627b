package contracts

import (
	"context"

	"telehealth-service/internal/app/models"
)

type SessionTransactionRepository interface {
	FindByGroupReference(ctx context.Context, groupReference string) ([]models.SessionTransaction, error)
	FindByGroupReferenceForUpdate(ctx context.Context, groupReference string) ([]models.SessionTransaction, error)
	ExistsByReference(ctx context.Context, reference string) (bool, error)
	Create(ctx context.Context, transaction *models.SessionTransaction) error
	UpdateOutcome(ctx context.Context, transaction *models.SessionTransaction) error
}

type WithdrawalTransactionRepository interface {
	FindByReferenceForUpdate(ctx context.Context, reference string) (*models.WithdrawalTransaction, error)
	UpdateOutcome(ctx context.Context, withdrawal *models.WithdrawalTransaction) error
}

type EarningsRepository interface {
	ReverseTransactionAndUpdateEarnings(ctx context.Context, withdrawal *models.WithdrawalTransaction) error
}
