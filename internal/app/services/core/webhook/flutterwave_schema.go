package webhook

import (
	"strings"

	"telehealth-service/internal/app/models"

	"github.com/goccy/go-json"
	"github.com/shopspring/decimal"
)

type flutterwaveChargeEvent struct {
	Event string `json:"event"`
	Data  struct {
		ID       json.Number `json:"id"`
		TxRef    string      `json:"tx_ref"`
		FlwRef   string      `json:"flw_ref"`
		Status   string      `json:"status"`
		Currency string      `json:"currency"`
	} `json:"data"`
}

type flutterwaveTransferEvent struct {
	Event string `json:"event"`
	Data  struct {
		ID            json.Number     `json:"id"`
		AccountNumber string          `json:"account_number"`
		BankName      string          `json:"bank_name"`
		BankCode      string          `json:"bank_code"`
		FullName      string          `json:"fullname"`
		Currency      string          `json:"currency"`
		Fee           decimal.Decimal `json:"fee"`
		Status        string          `json:"status"`
		Reference     string          `json:"reference"`
	} `json:"data"`
}

func parseFlutterwaveCharge(rawBody []byte) (*models.PaymentValidation, *models.TransferValidation, error) {
	var event flutterwaveChargeEvent
	if err := json.Unmarshal(rawBody, &event); err != nil {
		return nil, nil, err
	}
	externalReference := event.Data.FlwRef
	if externalReference == "" {
		externalReference = event.Data.ID.String()
	}
	return &models.PaymentValidation{
		Gateway:              models.GatewayFlutterwave,
		TransactionReference: strings.TrimSpace(event.Data.TxRef),
		Status:               event.Data.Status,
		Currency:             event.Data.Currency,
		ExternalReference:    externalReference,
	}, nil, nil
}

func parseFlutterwaveTransfer(rawBody []byte) (*models.PaymentValidation, *models.TransferValidation, error) {
	var event flutterwaveTransferEvent
	if err := json.Unmarshal(rawBody, &event); err != nil {
		return nil, nil, err
	}
	return nil, &models.TransferValidation{
		Gateway:           models.GatewayFlutterwave,
		TransferReference: strings.TrimSpace(event.Data.Reference),
		Status:            event.Data.Status,
		Currency:          event.Data.Currency,
		ExternalReference: event.Data.ID.String(),
		BankName:          event.Data.BankName,
		AccountNumber:     event.Data.AccountNumber,
		AccountName:       event.Data.FullName,
		BankCode:          event.Data.BankCode,
		Fee:               event.Data.Fee,
	}, nil
}
