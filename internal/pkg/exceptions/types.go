package exceptions

import (
	"errors"
	"fmt"

	"telehealth-service/internal/pkg/constvars"
)

var (
	ErrCannotParseJSON = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusBadRequest, constvars.ErrClientCannotProcessRequest, constvars.ErrDevCannotParseJSON)
	}
	ErrCannotMarshalJSON = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevCannotMarshalJSON)
	}
	ErrInputValidation = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusBadRequest, FormatFirstValidationError(err), constvars.ErrDevValidationFailed)
	}
	ErrServerDeadlineExceeded = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusGatewayTimeout, constvars.ErrClientServerLongRespond, constvars.ErrDevServerDeadlineExceeded)
	}
	ErrTokenMissing = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusUnauthorized, constvars.ErrClientNotLoggedIn, constvars.ErrDevAuthTokenMissing)
	}
	ErrTokenInvalidOrExpired = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusUnauthorized, constvars.ErrClientNotLoggedIn, constvars.ErrDevAuthTokenInvalidOrExpired)
	}
)

var (
	ErrSessionNotFound = func(reference string) *CustomError {
		return BuildNewCustomError(nil, constvars.StatusNotFound, constvars.ErrClientSessionNotFound, fmt.Sprintf(constvars.ErrDevSessionNotFound, reference))
	}
	ErrSessionNotOwned = func(memberID, reference string) *CustomError {
		return BuildNewCustomError(nil, constvars.StatusForbidden, constvars.ErrClientSessionNotOwned, fmt.Sprintf(constvars.ErrDevSessionNotOwned, memberID, reference))
	}
	ErrInvalidSessionTransition = func(from, to string) *CustomError {
		return BuildNewCustomError(nil, constvars.StatusConflict, constvars.ErrClientSessionInvalidTransition, fmt.Sprintf(constvars.ErrDevSessionInvalidTransition, from, to))
	}
	ErrSlotUnavailable = func(professionalID, date, time string) *CustomError {
		return BuildNewCustomError(nil, constvars.StatusConflict, constvars.ErrClientSlotUnavailable, fmt.Sprintf(constvars.ErrDevSlotUnavailable, professionalID, date, time))
	}
	ErrProfessionalNotFound = func(professionalID string) *CustomError {
		return BuildNewCustomError(nil, constvars.StatusNotFound, constvars.ErrClientProfessionalNotFound, fmt.Sprintf(constvars.ErrDevProfessionalNotFound, professionalID))
	}
	ErrSessionDateInPast = func(start string) *CustomError {
		return BuildNewCustomError(nil, constvars.StatusBadRequest, constvars.ErrClientSessionDateInPast, fmt.Sprintf(constvars.ErrDevSessionDateInPast, start))
	}
	ErrInvalidTimezone = func(err error, timezone string) *CustomError {
		return BuildNewCustomError(err, constvars.StatusBadRequest, constvars.ErrClientCannotProcessRequest, fmt.Sprintf(constvars.ErrDevInvalidTimezone, timezone))
	}
	ErrInvalidSessionSchedule = func(err error, date, time string) *CustomError {
		return BuildNewCustomError(err, constvars.StatusBadRequest, constvars.ErrClientCannotProcessRequest, fmt.Sprintf(constvars.ErrDevInvalidSessionSchedule, date, time))
	}
	ErrReferenceGenerationExhausted = func(kind string, attempts int) *CustomError {
		return BuildNewCustomError(nil, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, fmt.Sprintf(constvars.ErrDevReferenceGenerationExhausted, kind, attempts))
	}
	ErrVerificationInconclusive = func(err error, gateway, reference string) *CustomError {
		return AsRetryable(BuildNewCustomError(err, constvars.StatusServiceUnavailable, constvars.ErrClientSomethingWrongWithApplication, fmt.Sprintf(constvars.ErrDevVerificationInconclusive, reference, gateway)))
	}
	// ErrEarningsReversalFailed stays retryable unless the cause is a domain
	// error already marked final.
	ErrEarningsReversalFailed = func(err error, reference string) *CustomError {
		wrapped := BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, fmt.Sprintf(constvars.ErrDevEarningsReversalFailed, reference))
		var cause *CustomError
		if errors.As(err, &cause) && !cause.Retryable {
			return wrapped
		}
		return AsRetryable(wrapped)
	}
	ErrEarningsAccountNotFound = func(memberID string) *CustomError {
		return BuildNewCustomError(nil, constvars.StatusUnprocessableEntity, constvars.ErrClientSomethingWrongWithApplication, fmt.Sprintf(constvars.ErrDevEarningsAccountNotFound, memberID))
	}
)

var (
	ErrCreateHTTPRequest = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevCreateHTTPRequest)
	}
	ErrSendHTTPRequest = func(err error) *CustomError {
		return AsRetryable(BuildNewCustomError(err, constvars.StatusBadGateway, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevSendHTTPRequest))
	}
	ErrUnexpectedHTTPStatus = func(statusCode int, target string) *CustomError {
		return AsRetryable(BuildNewCustomError(nil, constvars.StatusBadGateway, constvars.ErrClientSomethingWrongWithApplication, fmt.Sprintf(constvars.ErrDevUnexpectedHTTPStatus, statusCode, target)))
	}
	ErrGatewayEmptyStatus = func(gateway, reference string) *CustomError {
		return AsRetryable(BuildNewCustomError(nil, constvars.StatusBadGateway, constvars.ErrClientSomethingWrongWithApplication, fmt.Sprintf(constvars.ErrDevGatewayEmptyStatus, gateway, reference)))
	}
	ErrGatewayNotSupported = func(gateway string) *CustomError {
		return BuildNewCustomError(nil, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, fmt.Sprintf(constvars.ErrDevGatewayNotSupported, gateway))
	}
	ErrCalendarCreateEvent = func(err error, sessionReference string) *CustomError {
		return AsRetryable(BuildNewCustomError(err, constvars.StatusBadGateway, constvars.ErrClientSomethingWrongWithApplication, fmt.Sprintf(constvars.ErrDevCalendarCreateEvent, sessionReference)))
	}
	ErrCalendarCancelEvent = func(err error, eventID string) *CustomError {
		return AsRetryable(BuildNewCustomError(err, constvars.StatusBadGateway, constvars.ErrClientSomethingWrongWithApplication, fmt.Sprintf(constvars.ErrDevCalendarCancelEvent, eventID)))
	}
	ErrEnqueueTask = func(err error, taskType string) *CustomError {
		return AsRetryable(BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, fmt.Sprintf(constvars.ErrDevEnqueueTask, taskType)))
	}
	ErrBankNotFound = func(bankCode, currency string) *CustomError {
		return BuildNewCustomError(nil, constvars.StatusNotFound, constvars.ErrClientSomethingWrongWithApplication, fmt.Sprintf(constvars.ErrDevBankNotFound, bankCode, currency))
	}
)

var (
	ErrPostgresDBFindData = func(err error) *CustomError {
		return AsRetryable(BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevDBFailedToFindData))
	}
	ErrPostgresDBCreateData = func(err error) *CustomError {
		return AsRetryable(BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevDBFailedToCreateData))
	}
	ErrPostgresDBUpdateData = func(err error) *CustomError {
		return AsRetryable(BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevDBFailedToUpdateData))
	}
	ErrPostgresDBBeginTx = func(err error) *CustomError {
		return AsRetryable(BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevDBFailedToBeginTx))
	}
	ErrPostgresDBCommitTx = func(err error) *CustomError {
		return AsRetryable(BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevDBFailedToCommitTx))
	}
	ErrPostgresDBUniqueViolation = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusConflict, constvars.ErrClientCannotProcessRequest, constvars.ErrDevDBUniqueViolation)
	}
)

var (
	ErrRedisSet = func(err error, key string) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, fmt.Sprintf(constvars.ErrDevRedisSet, key))
	}
	ErrRedisGet = func(err error, key string) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, fmt.Sprintf(constvars.ErrDevRedisGet, key))
	}
	ErrRedisDelete = func(err error, key string) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, fmt.Sprintf(constvars.ErrDevRedisDelete, key))
	}
	ErrRedisExists = func(err error, key string) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, fmt.Sprintf(constvars.ErrDevRedisExists, key))
	}
	ErrRedisSetNX = func(err error, key string) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, fmt.Sprintf(constvars.ErrDevRedisSetNX, key))
	}
)

var (
	ErrRabbitMQOpenChannel = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevRabbitMQOpenChannel)
	}
	ErrRabbitMQDeclareQueue = func(err error, queue string) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, fmt.Sprintf(constvars.ErrDevRabbitMQDeclareQueue, queue))
	}
	ErrRabbitMQPublishMessage = func(err error, queue string) *CustomError {
		return AsRetryable(BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, fmt.Sprintf(constvars.ErrDevRabbitMQPublishMessage, queue)))
	}
	ErrRabbitMQPublishNotAcked = func(queue string) *CustomError {
		return AsRetryable(BuildNewCustomError(nil, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, fmt.Sprintf(constvars.ErrDevRabbitMQPublishNotAcked, queue)))
	}
	ErrRabbitMQConsumeMessage = func(err error, queue string) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, fmt.Sprintf(constvars.ErrDevRabbitMQConsumeMessage, queue))
	}
	ErrRabbitMQAckMessage = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevRabbitMQAckMessage)
	}
	ErrMinioCreateObject = func(err error, bucketName string) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, fmt.Sprintf(constvars.ErrDevMinioCreateObject, bucketName))
	}
)
