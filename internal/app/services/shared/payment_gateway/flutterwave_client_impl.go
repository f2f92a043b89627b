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

type flutterwaveVerifyResponse struct {
	Status string `json:"status"`
	Data   struct {
		Status string `json:"status"`
		TxRef  string `json:"tx_ref"`
	} `json:"data"`
}

type FlutterwaveClient struct {
	http *gatewayHTTPClient
	log  *zap.Logger
}

func NewFlutterwaveClient(internalConfig *config.InternalConfig, logger *zap.Logger) *FlutterwaveClient {
	cfg := internalConfig.PaymentGateway
	return &FlutterwaveClient{
		http: newGatewayHTTPClient(strings.TrimRight(cfg.FlutterwaveBaseUrl, "/"), cfg.FlutterwaveSecretKey, cfg, logger),
		log:  logger,
	}
}

var _ contracts.GatewayStatusClient = (*FlutterwaveClient)(nil)

func (c *FlutterwaveClient) Gateway() models.PaymentGateway {
	return models.GatewayFlutterwave
}

func (c *FlutterwaveClient) GetTransactionStatusByReference(ctx context.Context, reference string) (string, error) {
	c.log.Info("FlutterwaveClient.GetTransactionStatusByReference called",
		zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(ctx)),
		zap.String(constvars.LoggingReferenceKey, reference),
	)

	endpoint := fmt.Sprintf("%s/transactions/verify_by_reference?tx_ref=%s", c.http.BaseUrl, url.QueryEscape(reference))
	var response flutterwaveVerifyResponse
	if err := c.http.getJSON(ctx, "FlutterwaveClient.GetTransactionStatusByReference", endpoint, &response); err != nil {
		return "", err
	}
	return response.Data.Status, nil
}
