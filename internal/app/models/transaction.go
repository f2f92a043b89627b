package models

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type PaymentGateway string

const (
	GatewayPaystack    PaymentGateway = "PAYSTACK"
	GatewayFlutterwave PaymentGateway = "FLUTTERWAVE"
)

func (g PaymentGateway) Valid() bool {
	return g == GatewayPaystack || g == GatewayFlutterwave
}

// ParsePaymentGateway accepts the gateway name in any letter case.
func ParsePaymentGateway(value string) (PaymentGateway, bool) {
	gateway := PaymentGateway(strings.ToUpper(strings.TrimSpace(value)))
	return gateway, gateway.Valid()
}

type TransactionStatus string

const (
	TransactionStatusPending  TransactionStatus = "PENDING"
	TransactionStatusSuccess  TransactionStatus = "SUCCESS"
	TransactionStatusFailed   TransactionStatus = "FAILED"
	TransactionStatusReversed TransactionStatus = "REVERSED"
)

// IsTerminal reports whether a webhook may no longer change the status.
func (s TransactionStatus) IsTerminal() bool {
	switch s {
	case TransactionStatusSuccess, TransactionStatusFailed, TransactionStatusReversed:
		return true
	}
	return false
}

// TransactionKind discriminates the ledger variants sharing TransactionHeader.
type TransactionKind string

const (
	TransactionKindSession    TransactionKind = "SESSION"
	TransactionKindWithdrawal TransactionKind = "WITHDRAWAL"
)

type WithdrawalType string

const (
	WithdrawalTypeEarnings WithdrawalType = "EARNINGS_WITHDRAWAL"
	WithdrawalTypeRefund   WithdrawalType = "REFUND_PAYOUT"
)

type TransactionHeader struct {
	ID                int64             `db:"id" json:"-"`
	Kind              TransactionKind   `db:"kind" json:"kind"`
	Reference         string            `db:"reference" json:"reference"`
	ExternalReference string            `db:"external_reference" json:"external_reference"`
	PayerID           string            `db:"payer_id" json:"payer_id"`
	Gateway           PaymentGateway    `db:"gateway" json:"gateway"`
	Status            TransactionStatus `db:"status" json:"status"`
	Amount            decimal.Decimal   `db:"amount" json:"amount"`
	Currency          string            `db:"currency" json:"currency"`
	CreatedAt         time.Time         `db:"created_at" json:"created_at"`
	UpdatedAt         time.Time         `db:"updated_at" json:"updated_at"`
}

type SessionTransaction struct {
	TransactionHeader
	GroupReference   string `db:"group_reference" json:"group_reference"`
	SessionReference string `db:"session_reference" json:"session_reference"`
}

type WithdrawalTransaction struct {
	TransactionHeader
	Type             WithdrawalType  `db:"withdrawal_type" json:"withdrawal_type"`
	WithdrawalStatus string          `db:"withdrawal_status" json:"withdrawal_status"`
	BankName         string          `db:"bank_name" json:"bank_name"`
	AccountNumber    string          `db:"account_number" json:"account_number"`
	AccountName      string          `db:"account_name" json:"account_name"`
	BankCode         string          `db:"bank_code" json:"bank_code"`
	Fee              decimal.Decimal `db:"fee" json:"fee"`
}

func (w *WithdrawalTransaction) IsEarningsWithdrawal() bool {
	return w.Type == WithdrawalTypeEarnings
}
