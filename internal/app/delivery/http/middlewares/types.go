package middlewares

import (
	"context"

	"telehealth-service/internal/app/config"
	"telehealth-service/internal/app/services/shared/jwtmanager"

	"go.uber.org/zap"
)

type TokenVerifier interface {
	VerifyToken(ctx context.Context, in *jwtmanager.VerifyTokenInput) (*jwtmanager.VerifyTokenOutput, error)
}

type Middlewares struct {
	Log            *zap.Logger
	TokenVerifier  TokenVerifier
	InternalConfig *config.InternalConfig
}

func NewMiddlewares(logger *zap.Logger, tokenVerifier TokenVerifier, internalConfig *config.InternalConfig) *Middlewares {
	return &Middlewares{
		Log:            logger,
		TokenVerifier:  tokenVerifier,
		InternalConfig: internalConfig,
	}
}
