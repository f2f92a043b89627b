package transactions

import (
	"context"
	"testing"
	"time"

	"telehealth-service/internal/app/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var withdrawalRowColumns = []string{
	"id", "kind", "reference", "external_reference", "payer_id", "gateway", "status", "amount", "currency",
	"withdrawal_type", "withdrawal_status", "bank_name", "account_number", "account_name", "bank_code", "fee",
	"created_at", "updated_at",
}

func TestWithdrawalTransactionPostgresRepository_FindByReferenceForUpdate(t *testing.T) {
	ctx := context.Background()

	t.Run("Returns locked withdrawal", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewWithdrawalTransactionPostgresRepository(db)
		now := time.Now()
		rows := sqlmock.NewRows(withdrawalRowColumns).AddRow(
			3, "WITHDRAWAL", "WD-1", "", "pro-1", "PAYSTACK", "PENDING", "20000", "NGN",
			"EARNINGS_WITHDRAWAL", "", "", "0123456789", "Ada Obi", "058", "50", now, now,
		)
		mock.ExpectQuery("FOR UPDATE").WithArgs("WD-1").WillReturnRows(rows)

		withdrawal, err := repo.FindByReferenceForUpdate(ctx, "WD-1")

		require.NoError(t, err)
		assert.True(t, withdrawal.IsEarningsWithdrawal())
		assert.Equal(t, "058", withdrawal.BankCode)
		assert.True(t, withdrawal.Fee.Equal(decimal.NewFromInt(50)))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Missing withdrawal returns nil", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewWithdrawalTransactionPostgresRepository(db)
		mock.ExpectQuery("FOR UPDATE").WithArgs("WD-404").WillReturnRows(sqlmock.NewRows(withdrawalRowColumns))

		withdrawal, err := repo.FindByReferenceForUpdate(ctx, "WD-404")

		assert.NoError(t, err)
		assert.Nil(t, withdrawal)
	})
}

func TestWithdrawalTransactionPostgresRepository_UpdateOutcome(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewWithdrawalTransactionPostgresRepository(db)
	mock.ExpectQuery("UPDATE transactions").
		WithArgs("WD-1", "FAILED", "failed", "trf-1", "NGN", "GTBank", "0123456789", "Ada Obi", "058", sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"updated_at"}).AddRow(time.Now()))

	err := repo.UpdateOutcome(context.Background(), &models.WithdrawalTransaction{
		TransactionHeader: models.TransactionHeader{
			Reference:         "WD-1",
			Status:            models.TransactionStatusFailed,
			ExternalReference: "trf-1",
			Currency:          "NGN",
		},
		WithdrawalStatus: "failed",
		BankName:         "GTBank",
		AccountNumber:    "0123456789",
		AccountName:      "Ada Obi",
		BankCode:         "058",
		Fee:              decimal.NewFromInt(50),
	})

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
