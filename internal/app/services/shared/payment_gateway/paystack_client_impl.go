package payment_gateway

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"telehealth-service/internal/app/config"
	"telehealth-service/internal/app/contracts"
	"telehealth-service/internal/app/models"
	"telehealth-service/internal/pkg/constvars"
	"telehealth-service/internal/pkg/utils"

	"go.uber.org/zap"
)

type paystackVerifyResponse struct {
	Status bool `json:"status"`
	Data   struct {
		Status    string `json:"status"`
		Reference string `json:"reference"`
	} `json:"data"`
}

type paystackBankListResponse struct {
	Status bool `json:"status"`
	Data   []struct {
		Name     string `json:"name"`
		Code     string `json:"code"`
		Currency string `json:"currency"`
	} `json:"data"`
}

// PaystackClient reads transaction status and the bank list from Paystack.
type PaystackClient struct {
	http *gatewayHTTPClient
	log  *zap.Logger
}

func NewPaystackClient(internalConfig *config.InternalConfig, logger *zap.Logger) *PaystackClient {
	cfg := internalConfig.PaymentGateway
	return &PaystackClient{
		http: newGatewayHTTPClient(strings.TrimRight(cfg.PaystackBaseUrl, "/"), cfg.PaystackSecretKey, cfg, logger),
		log:  logger,
	}
}

var (
	_ contracts.GatewayStatusClient = (*PaystackClient)(nil)
	_ contracts.BankListProvider    = (*PaystackClient)(nil)
)

func (c *PaystackClient) Gateway() models.PaymentGateway {
	return models.GatewayPaystack
}

func (c *PaystackClient) GetTransactionStatusByReference(ctx context.Context, reference string) (string, error) {
	c.log.Info("PaystackClient.GetTransactionStatusByReference called",
		zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(ctx)),
		zap.String(constvars.LoggingReferenceKey, reference),
	)

	endpoint := fmt.Sprintf("%s/transaction/verify/%s", c.http.BaseUrl, url.PathEscape(reference))
	var response paystackVerifyResponse
	if err := c.http.getJSON(ctx, "PaystackClient.GetTransactionStatusByReference", endpoint, &response); err != nil {
		return "", err
	}
	return response.Data.Status, nil
}

func (c *PaystackClient) ListBanks(ctx context.Context, currency string) ([]models.Bank, error) {
	c.log.Info("PaystackClient.ListBanks called",
		zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(ctx)),
		zap.String(constvars.LoggingCurrencyKey, currency),
	)

	endpoint := fmt.Sprintf("%s/bank?currency=%s", c.http.BaseUrl, url.QueryEscape(currency))
	var response paystackBankListResponse
	if err := c.http.getJSON(ctx, "PaystackClient.ListBanks", endpoint, &response); err != nil {
		return nil, err
	}

	banks := make([]models.Bank, 0, len(response.Data))
	for _, bank := range response.Data {
		banks = append(banks, models.Bank{
			Name:     bank.Name,
			Code:     bank.Code,
			Currency: bank.Currency,
		})
	}
	return banks, nil
}
