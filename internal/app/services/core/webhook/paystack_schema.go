package webhook

import (
	"strings"

	"telehealth-service/internal/app/models"

	"github.com/goccy/go-json"
	"github.com/shopspring/decimal"
)

type paystackChargeEvent struct {
	Event string `json:"event"`
	Data  struct {
		ID        json.Number `json:"id"`
		Reference string      `json:"reference"`
		Status    string      `json:"status"`
		Currency  string      `json:"currency"`
	} `json:"data"`
}

type paystackTransferEvent struct {
	Event string `json:"event"`
	Data  struct {
		Reference    string `json:"reference"`
		TransferCode string `json:"transfer_code"`
		Status       string `json:"status"`
		Currency     string `json:"currency"`
		// FeeCharged is in the currency's minor unit.
		FeeCharged int64 `json:"fee_charged"`
		Recipient  struct {
			Details struct {
				AccountNumber string `json:"account_number"`
				AccountName   string `json:"account_name"`
				BankCode      string `json:"bank_code"`
				BankName      string `json:"bank_name"`
			} `json:"details"`
		} `json:"recipient"`
	} `json:"data"`
}

func parsePaystackCharge(rawBody []byte) (*models.PaymentValidation, *models.TransferValidation, error) {
	var event paystackChargeEvent
	if err := json.Unmarshal(rawBody, &event); err != nil {
		return nil, nil, err
	}
	return &models.PaymentValidation{
		Gateway:              models.GatewayPaystack,
		TransactionReference: strings.TrimSpace(event.Data.Reference),
		Status:               event.Data.Status,
		Currency:             event.Data.Currency,
		ExternalReference:    event.Data.ID.String(),
	}, nil, nil
}

func parsePaystackTransfer(rawBody []byte) (*models.PaymentValidation, *models.TransferValidation, error) {
	var event paystackTransferEvent
	if err := json.Unmarshal(rawBody, &event); err != nil {
		return nil, nil, err
	}
	details := event.Data.Recipient.Details
	return nil, &models.TransferValidation{
		Gateway:           models.GatewayPaystack,
		TransferReference: strings.TrimSpace(event.Data.Reference),
		Status:            event.Data.Status,
		Currency:          event.Data.Currency,
		ExternalReference: event.Data.TransferCode,
		BankName:          details.BankName,
		AccountNumber:     details.AccountNumber,
		AccountName:       details.AccountName,
		BankCode:          details.BankCode,
		Fee:               decimal.New(event.Data.FeeCharged, -2),
	}, nil
}
