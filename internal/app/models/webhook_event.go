package models

import "github.com/shopspring/decimal"

type EventKind string

const (
	EventKindCharge   EventKind = "CHARGE"
	EventKindTransfer EventKind = "TRANSFER"
	EventKindUnknown  EventKind = "UNKNOWN"
)

// PaymentValidation is the gateway-agnostic outcome of a customer charge.
type PaymentValidation struct {
	Gateway              PaymentGateway `json:"gateway"`
	TransactionReference string         `json:"transaction_reference"`
	Status               string         `json:"status"`
	Currency             string         `json:"currency"`
	ExternalReference    string         `json:"external_reference"`
}

// TransferValidation is the gateway-agnostic outcome of a payout transfer.
type TransferValidation struct {
	Gateway           PaymentGateway  `json:"gateway"`
	TransferReference string          `json:"transfer_reference"`
	Status            string          `json:"status"`
	Currency          string          `json:"currency"`
	ExternalReference string          `json:"external_reference"`
	BankName          string          `json:"bank_name"`
	AccountNumber     string          `json:"account_number"`
	AccountName       string          `json:"account_name"`
	BankCode          string          `json:"bank_code"`
	Fee               decimal.Decimal `json:"fee"`
}

// WebhookEvent carries exactly one of Payment or Transfer, selected by Kind.
type WebhookEvent struct {
	Kind      EventKind           `json:"kind"`
	Gateway   PaymentGateway      `json:"gateway"`
	EventType string              `json:"event_type"`
	Payment   *PaymentValidation  `json:"payment,omitempty"`
	Transfer  *TransferValidation `json:"transfer,omitempty"`
}

func UnknownWebhookEvent(eventType string) WebhookEvent {
	return WebhookEvent{Kind: EventKindUnknown, EventType: eventType}
}
