package earnings

import (
	"context"

	"telehealth-service/internal/app/contracts"
	"telehealth-service/internal/app/models"
	"telehealth-service/internal/pkg/exceptions"
	"telehealth-service/internal/pkg/queries"

	"github.com/jmoiron/sqlx"
)

const ledgerEntryReversal = "REVERSAL"

type earningsPostgresRepository struct {
	DB sqlx.ExtContext
}

func NewEarningsPostgresRepository(db sqlx.ExtContext) contracts.EarningsRepository {
	return &earningsPostgresRepository{
		DB: db,
	}
}

// ReverseTransactionAndUpdateEarnings credits a failed payout back to the
// professional's available balance. The ledger row keyed on the withdrawal
// reference makes a repeated reversal a no-op.
func (repo *earningsPostgresRepository) ReverseTransactionAndUpdateEarnings(ctx context.Context, withdrawal *models.WithdrawalTransaction) error {
	result, err := repo.DB.ExecContext(ctx, queries.InsertEarningsLedgerEntry,
		withdrawal.PayerID,
		withdrawal.Reference,
		ledgerEntryReversal,
		withdrawal.Amount,
	)
	if err != nil {
		return exceptions.ErrPostgresDBCreateData(err)
	}
	inserted, err := result.RowsAffected()
	if err != nil {
		return exceptions.ErrPostgresDBCreateData(err)
	}
	if inserted == 0 {
		return nil
	}

	result, err = repo.DB.ExecContext(ctx, queries.CreditBackProfessionalEarnings, withdrawal.PayerID, withdrawal.Amount)
	if err != nil {
		return exceptions.ErrPostgresDBUpdateData(err)
	}
	updated, err := result.RowsAffected()
	if err != nil {
		return exceptions.ErrPostgresDBUpdateData(err)
	}
	if updated == 0 {
		return exceptions.ErrEarningsAccountNotFound(withdrawal.PayerID)
	}
	return nil
}
