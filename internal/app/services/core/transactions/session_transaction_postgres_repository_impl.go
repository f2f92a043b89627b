package transactions

import (
	"context"

	"telehealth-service/internal/app/contracts"
	"telehealth-service/internal/app/models"
	"telehealth-service/internal/pkg/exceptions"
	"telehealth-service/internal/pkg/queries"
	"telehealth-service/internal/pkg/utils"

	"github.com/jmoiron/sqlx"
)

type sessionTransactionPostgresRepository struct {
	DB sqlx.ExtContext
}

// NewSessionTransactionPostgresRepository accepts either *sqlx.DB or *sqlx.Tx.
func NewSessionTransactionPostgresRepository(db sqlx.ExtContext) contracts.SessionTransactionRepository {
	return &sessionTransactionPostgresRepository{
		DB: db,
	}
}

func (repo *sessionTransactionPostgresRepository) FindByGroupReference(ctx context.Context, groupReference string) ([]models.SessionTransaction, error) {
	return repo.selectGroup(ctx, queries.GetSessionTransactionsByGroupReference, groupReference)
}

func (repo *sessionTransactionPostgresRepository) FindByGroupReferenceForUpdate(ctx context.Context, groupReference string) ([]models.SessionTransaction, error) {
	return repo.selectGroup(ctx, queries.GetSessionTransactionsByGroupReferenceForUpdate, groupReference)
}

func (repo *sessionTransactionPostgresRepository) selectGroup(ctx context.Context, query, groupReference string) ([]models.SessionTransaction, error) {
	var transactions []models.SessionTransaction
	if err := sqlx.SelectContext(ctx, repo.DB, &transactions, query, groupReference); err != nil {
		return nil, exceptions.ErrPostgresDBFindData(err)
	}
	return transactions, nil
}

func (repo *sessionTransactionPostgresRepository) ExistsByReference(ctx context.Context, reference string) (bool, error) {
	var exists bool
	if err := sqlx.GetContext(ctx, repo.DB, &exists, queries.ExistsTransactionByReference, reference); err != nil {
		return false, exceptions.ErrPostgresDBFindData(err)
	}
	return exists, nil
}

func (repo *sessionTransactionPostgresRepository) Create(ctx context.Context, transaction *models.SessionTransaction) error {
	row := repo.DB.QueryRowxContext(ctx, queries.CreateSessionTransaction,
		transaction.Reference,
		transaction.GroupReference,
		transaction.SessionReference,
		transaction.PayerID,
		transaction.Gateway,
		transaction.Status,
		transaction.Amount,
		transaction.Currency,
	)
	if err := row.Scan(&transaction.ID, &transaction.CreatedAt, &transaction.UpdatedAt); err != nil {
		if utils.IsUniqueViolation(err) {
			return exceptions.ErrPostgresDBUniqueViolation(err)
		}
		return exceptions.ErrPostgresDBCreateData(err)
	}
	transaction.Kind = models.TransactionKindSession
	return nil
}

func (repo *sessionTransactionPostgresRepository) UpdateOutcome(ctx context.Context, transaction *models.SessionTransaction) error {
	row := repo.DB.QueryRowxContext(ctx, queries.UpdateSessionTransactionOutcome,
		transaction.Reference,
		transaction.Status,
		transaction.ExternalReference,
		transaction.Currency,
	)
	if err := row.Scan(&transaction.UpdatedAt); err != nil {
		return exceptions.ErrPostgresDBUpdateData(err)
	}
	return nil
}
