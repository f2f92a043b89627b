package middlewares

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"telehealth-service/internal/app/services/shared/jwtmanager"
	"telehealth-service/internal/pkg/constvars"
	"telehealth-service/internal/pkg/exceptions"
	"telehealth-service/internal/pkg/utils"

	"go.uber.org/zap"
)

const bearerPrefix = "Bearer "

// Authenticate requires a valid bearer token and stores its member id on
// the request context.
func (m *Middlewares) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get(constvars.HeaderAuthorization)
		if !strings.HasPrefix(header, bearerPrefix) {
			utils.BuildErrorResponse(m.Log, w, exceptions.ErrTokenMissing(errors.New("bearer token missing")))
			return
		}

		out, err := m.TokenVerifier.VerifyToken(r.Context(), &jwtmanager.VerifyTokenInput{
			Token: strings.TrimSpace(strings.TrimPrefix(header, bearerPrefix)),
		})
		if err != nil {
			utils.LogSecurityEvent(m.Log, "invalid_bearer_token", utils.GetRequestID(r.Context()), constvars.LoggingSeverityLow,
				zap.String(constvars.LoggingEndpointKey, r.URL.Path),
				zap.String(constvars.LoggingRemoteAddrKey, r.RemoteAddr),
			)
			utils.BuildErrorResponse(m.Log, w, exceptions.ErrTokenInvalidOrExpired(err))
			return
		}

		ctx := context.WithValue(r.Context(), constvars.CONTEXT_MEMBER_ID_KEY, out.MemberID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
