package requests

import "github.com/shopspring/decimal"

type BookSessionRequest struct {
	ProfessionalID string          `json:"professional_id" validate:"required"`
	Date           string          `json:"date" validate:"required,datetime=2006-01-02"`
	Time           string          `json:"time" validate:"required,datetime=15:04"`
	Timezone       string          `json:"timezone" validate:"required,timezone"`
	Gateway        string          `json:"gateway" validate:"required,oneof=PAYSTACK FLUTTERWAVE"`
	Amount         decimal.Decimal `json:"amount" validate:"gt=0"`
	Currency       string          `json:"currency" validate:"required,iso4217"`
}
