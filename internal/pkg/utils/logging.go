package utils

import (
	"context"
	"time"

	"telehealth-service/internal/pkg/constvars"

	"go.uber.org/zap"
)

func LogBusinessEvent(logger *zap.Logger, event string, requestID string, fields ...zap.Field) {
	allFields := []zap.Field{
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingBusinessEventKey, event),
		zap.Time(constvars.LoggingTimestampKey, time.Now()),
	}
	allFields = append(allFields, fields...)

	logger.Info("Business event occurred", allFields...)
}

func LogSecurityEvent(logger *zap.Logger, event string, requestID string, severity string, fields ...zap.Field) {
	allFields := []zap.Field{
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingSecurityEventKey, event),
		zap.String(constvars.LoggingSecuritySeverity, severity),
		zap.Time(constvars.LoggingTimestampKey, time.Now()),
	}
	allFields = append(allFields, fields...)

	logger.Warn("Security event detected", allFields...)
}

func GetRequestID(ctx context.Context) string {
	if requestID, ok := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string); ok {
		return requestID
	}
	return ""
}

func GetMemberID(ctx context.Context) string {
	if memberID, ok := ctx.Value(constvars.CONTEXT_MEMBER_ID_KEY).(string); ok {
		return memberID
	}
	return ""
}

// DetachedContext keeps request-scoped values such as the request ID but drops
// the parent's cancellation, for work that outlives the request.
func DetachedContext(ctx context.Context) context.Context {
	return context.WithoutCancel(ctx)
}
