package contracts

import (
	"context"

	"telehealth-service/internal/app/models"
)

// GatewayStatusClient queries a payment gateway directly, independent of any
// webhook it sent.
type GatewayStatusClient interface {
	Gateway() models.PaymentGateway
	GetTransactionStatusByReference(ctx context.Context, reference string) (string, error)
}

type BankListProvider interface {
	ListBanks(ctx context.Context, currency string) ([]models.Bank, error)
}

type BankingService interface {
	GetBanks(ctx context.Context, currency string) ([]models.Bank, error)
	FindBankName(ctx context.Context, currency, bankCode string) (string, error)
}
