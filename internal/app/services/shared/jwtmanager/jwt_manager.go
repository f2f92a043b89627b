package jwtmanager

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"telehealth-service/internal/app/config"
	"telehealth-service/internal/pkg/constvars"
	"telehealth-service/internal/pkg/utils"

	"github.com/golang-jwt/jwt/v4"
	"go.uber.org/zap"
)

const defaultTokenTTL = time.Hour

// JWTManager issues and verifies HS256 member tokens. The member id is the
// subject claim.
type JWTManager struct {
	log    *zap.Logger
	secret []byte
	issuer string
	ttl    time.Duration
}

type CreateTokenInput struct {
	Subject string
	TTL     time.Duration
}

type CreateTokenOutput struct {
	Token string
}

type VerifyTokenInput struct {
	Token string
}

type VerifyTokenOutput struct {
	MemberID  string
	ExpiresAt time.Time
}

func NewJWTManager(cfg *config.InternalConfig, log *zap.Logger) (*JWTManager, error) {
	secret := strings.TrimSpace(cfg.JWT.Secret)
	if secret == "" {
		return nil, fmt.Errorf("JWT_SECRET is empty")
	}
	return &JWTManager{
		log:    log,
		secret: []byte(secret),
		issuer: cfg.JWT.Issuer,
		ttl:    defaultTokenTTL,
	}, nil
}

func (j *JWTManager) CreateToken(ctx context.Context, in *CreateTokenInput) (*CreateTokenOutput, error) {
	j.log.Info("JWTManager.CreateToken called", zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(ctx)))

	if in == nil || strings.TrimSpace(in.Subject) == "" {
		return nil, fmt.Errorf("subject is required")
	}
	ttl := in.TTL
	if ttl <= 0 {
		ttl = j.ttl
	}

	now := time.Now().UTC()
	claims := jwt.RegisteredClaims{
		Subject:   in.Subject,
		Issuer:    j.issuer,
		IssuedAt:  jwt.NewNumericDate(now),
		NotBefore: jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(j.secret)
	if err != nil {
		return nil, err
	}
	return &CreateTokenOutput{Token: signed}, nil
}

// VerifyToken accepts only HS256 tokens from the configured issuer that
// carry a subject.
func (j *JWTManager) VerifyToken(ctx context.Context, in *VerifyTokenInput) (*VerifyTokenOutput, error) {
	if in == nil || strings.TrimSpace(in.Token) == "" {
		return nil, errors.New("token is required")
	}

	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(in.Token, claims, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return j.secret, nil
	})
	if err != nil {
		j.log.Warn("JWTManager.VerifyToken rejected token",
			zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(ctx)),
			zap.Error(err),
		)
		return nil, err
	}
	if !token.Valid {
		return nil, errors.New("token is invalid")
	}
	if j.issuer != "" && !claims.VerifyIssuer(j.issuer, true) {
		return nil, errors.New("token issuer mismatch")
	}
	if claims.Subject == "" {
		return nil, errors.New("token subject is empty")
	}

	out := &VerifyTokenOutput{MemberID: claims.Subject}
	if claims.ExpiresAt != nil {
		out.ExpiresAt = claims.ExpiresAt.Time
	}
	return out, nil
}
