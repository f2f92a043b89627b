package transactions

import (
	"context"
	"database/sql"
	"errors"

	"telehealth-service/internal/app/contracts"
	"telehealth-service/internal/app/models"
	"telehealth-service/internal/pkg/exceptions"
	"telehealth-service/internal/pkg/queries"

	"github.com/jmoiron/sqlx"
)

type withdrawalTransactionPostgresRepository struct {
	DB sqlx.ExtContext
}

func NewWithdrawalTransactionPostgresRepository(db sqlx.ExtContext) contracts.WithdrawalTransactionRepository {
	return &withdrawalTransactionPostgresRepository{
		DB: db,
	}
}

func (repo *withdrawalTransactionPostgresRepository) FindByReferenceForUpdate(ctx context.Context, reference string) (*models.WithdrawalTransaction, error) {
	var withdrawal models.WithdrawalTransaction
	err := sqlx.GetContext(ctx, repo.DB, &withdrawal, queries.GetWithdrawalTransactionByReferenceForUpdate, reference)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, exceptions.ErrPostgresDBFindData(err)
	}
	return &withdrawal, nil
}

func (repo *withdrawalTransactionPostgresRepository) UpdateOutcome(ctx context.Context, withdrawal *models.WithdrawalTransaction) error {
	row := repo.DB.QueryRowxContext(ctx, queries.UpdateWithdrawalTransactionOutcome,
		withdrawal.Reference,
		withdrawal.Status,
		withdrawal.WithdrawalStatus,
		withdrawal.ExternalReference,
		withdrawal.Currency,
		withdrawal.BankName,
		withdrawal.AccountNumber,
		withdrawal.AccountName,
		withdrawal.BankCode,
		withdrawal.Fee,
	)
	if err := row.Scan(&withdrawal.UpdatedAt); err != nil {
		return exceptions.ErrPostgresDBUpdateData(err)
	}
	return nil
}
