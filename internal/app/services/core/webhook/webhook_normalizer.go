package webhook

import (
	"context"
	"strings"

	"telehealth-service/internal/app/contracts"
	"telehealth-service/internal/app/models"
	"telehealth-service/internal/pkg/constvars"
	"telehealth-service/internal/pkg/utils"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

type eventRoute struct {
	Gateway models.PaymentGateway
	Kind    models.EventKind
}

type payloadParser func(rawBody []byte) (*models.PaymentValidation, *models.TransferValidation, error)

// Event names are unique across both gateways, so the name alone selects the
// route and the route selects the schema.
var eventRoutes = map[string]eventRoute{
	"charge.success":     {Gateway: models.GatewayPaystack, Kind: models.EventKindCharge},
	"transfer.success":   {Gateway: models.GatewayPaystack, Kind: models.EventKindTransfer},
	"transfer.failed":    {Gateway: models.GatewayPaystack, Kind: models.EventKindTransfer},
	"transfer.reversed":  {Gateway: models.GatewayPaystack, Kind: models.EventKindTransfer},
	"charge.completed":   {Gateway: models.GatewayFlutterwave, Kind: models.EventKindCharge},
	"transfer.completed": {Gateway: models.GatewayFlutterwave, Kind: models.EventKindTransfer},
}

var payloadParsers = map[eventRoute]payloadParser{
	{Gateway: models.GatewayPaystack, Kind: models.EventKindCharge}:      parsePaystackCharge,
	{Gateway: models.GatewayPaystack, Kind: models.EventKindTransfer}:    parsePaystackTransfer,
	{Gateway: models.GatewayFlutterwave, Kind: models.EventKindCharge}:   parseFlutterwaveCharge,
	{Gateway: models.GatewayFlutterwave, Kind: models.EventKindTransfer}: parseFlutterwaveTransfer,
}

type envelope struct {
	Event string `json:"event"`
}

type webhookNormalizer struct {
	Log *zap.Logger
}

func NewWebhookNormalizer(logger *zap.Logger) contracts.WebhookNormalizer {
	return &webhookNormalizer{
		Log: logger,
	}
}

// Normalize never fails: anything it cannot route or parse becomes an Unknown
// event for the caller to drop.
func (n *webhookNormalizer) Normalize(ctx context.Context, rawBody []byte, gatewayHint string) models.WebhookEvent {
	requestID := utils.GetRequestID(ctx)

	var head envelope
	if err := json.Unmarshal(rawBody, &head); err != nil {
		n.Log.Warn("webhookNormalizer.Normalize malformed payload",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Int(constvars.LoggingPayloadSizeKey, len(rawBody)),
			zap.Error(err),
		)
		return models.UnknownWebhookEvent("")
	}

	eventType := strings.TrimSpace(head.Event)
	route, ok := eventRoutes[eventType]
	if !ok {
		n.Log.Info("webhookNormalizer.Normalize unrecognized event",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingEventTypeKey, eventType),
		)
		return models.UnknownWebhookEvent(eventType)
	}

	if gatewayHint != "" {
		hinted, valid := models.ParsePaymentGateway(gatewayHint)
		if !valid || hinted != route.Gateway {
			utils.LogSecurityEvent(n.Log, "webhook_gateway_mismatch", requestID, constvars.LoggingSeverityHigh,
				zap.String(constvars.LoggingGatewayKey, gatewayHint),
				zap.String(constvars.LoggingEventTypeKey, eventType),
			)
			return models.UnknownWebhookEvent(eventType)
		}
	}

	payment, transfer, err := payloadParsers[route](rawBody)
	if err != nil {
		n.Log.Warn("webhookNormalizer.Normalize payload does not match gateway schema",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingGatewayKey, string(route.Gateway)),
			zap.String(constvars.LoggingEventTypeKey, eventType),
			zap.Error(err),
		)
		return models.UnknownWebhookEvent(eventType)
	}

	return models.WebhookEvent{
		Kind:      route.Kind,
		Gateway:   route.Gateway,
		EventType: eventType,
		Payment:   payment,
		Transfer:  transfer,
	}
}
