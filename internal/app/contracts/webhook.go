package contracts

import (
	"context"

	"telehealth-service/internal/app/models"
)

type WebhookNormalizer interface {
	Normalize(ctx context.Context, rawBody []byte, gatewayHint string) models.WebhookEvent
}

type WebhookUsecase interface {
	ValidateAndCompleteTransaction(ctx context.Context, rawBody []byte, gatewayHint string)
}

type WebhookArchive interface {
	Archive(ctx context.Context, gateway models.PaymentGateway, rawBody []byte) (string, error)
}
