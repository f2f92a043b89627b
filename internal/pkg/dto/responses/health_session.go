package responses

import "github.com/shopspring/decimal"

type BookSessionResponse struct {
	SessionReference     string          `json:"session_reference"`
	TransactionReference string          `json:"transaction_reference"`
	GroupReference       string          `json:"group_reference"`
	Gateway              string          `json:"gateway"`
	Amount               decimal.Decimal `json:"amount"`
	Currency             string          `json:"currency"`
	Status               string          `json:"status"`
}

type CancelSessionResponse struct {
	Reference string `json:"reference"`
	Status    string `json:"status"`
}

type HealthCheckResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}
