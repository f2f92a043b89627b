package controllers

import (
	"context"
	"io"
	"net/http"
	"time"

	"telehealth-service/internal/app/config"
	"telehealth-service/internal/app/contracts"
	"telehealth-service/internal/pkg/constvars"
	"telehealth-service/internal/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

const (
	maxWebhookBodyBytes   = 1 << 20
	defaultWebhookTimeout = 30 * time.Second
)

type WebhookController struct {
	Log            *zap.Logger
	WebhookUsecase contracts.WebhookUsecase
	Timeout        time.Duration
}

func NewWebhookController(logger *zap.Logger, webhookUsecase contracts.WebhookUsecase, internalConfig *config.InternalConfig) *WebhookController {
	timeout := time.Duration(internalConfig.App.RequestTimeoutInSeconds) * time.Second
	if timeout <= 0 {
		timeout = defaultWebhookTimeout
	}
	return &WebhookController{
		Log:            logger,
		WebhookUsecase: webhookUsecase,
		Timeout:        timeout,
	}
}

// HandleWebhook serves POST /webhooks and POST /webhooks/{gateway}. The
// response is always 200 so the gateway does not redeliver because of an
// internal outcome; its own redelivery policy stays in charge.
func (ctrl *WebhookController) HandleWebhook(w http.ResponseWriter, r *http.Request) {
	requestID := utils.GetRequestID(r.Context())
	gatewayHint := chi.URLParam(r, constvars.URLParamGateway)

	utils.LogSecurityEvent(ctrl.Log, "payment_webhook_received", requestID, constvars.LoggingSeverityLow,
		zap.String(constvars.LoggingGatewayKey, gatewayHint),
		zap.String(constvars.LoggingRemoteAddrKey, r.RemoteAddr),
		zap.String(constvars.LoggingUserAgentKey, r.UserAgent()),
	)

	rawBody, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxWebhookBodyBytes))
	if err != nil {
		ctrl.Log.Warn("WebhookController.HandleWebhook error reading body",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.ResponseSuccessWebhookReceived, nil)
		return
	}

	// The reconciliation must not be abandoned halfway because the gateway
	// hung up.
	ctx, cancel := context.WithTimeout(utils.DetachedContext(r.Context()), ctrl.Timeout)
	defer cancel()

	ctrl.WebhookUsecase.ValidateAndCompleteTransaction(ctx, rawBody, gatewayHint)

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.ResponseSuccessWebhookReceived, nil)
}
