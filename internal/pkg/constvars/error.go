package constvars

const (
	ErrClientCannotProcessRequest          = "failed to process your request"
	ErrClientSomethingWrongWithApplication = "there is something wrong with the application"
	ErrClientServerLongRespond             = "the app taking too long to respond"
	ErrClientNotAuthorized                 = "you can't access this feature"
	ErrClientNotLoggedIn                   = "your session ended, please login again"
	ErrClientSessionNotFound               = "health session not found"
	ErrClientSessionNotOwned               = "you can only manage your own health sessions"
	ErrClientSessionInvalidTransition      = "this health session can no longer be changed"
	ErrClientSlotUnavailable               = "the selected time slot is no longer available"
	ErrClientProfessionalNotFound          = "professional not found"
	ErrClientSessionDateInPast             = "session date and time must be in the future"
	ErrClientTooManyRequests               = "too many requests, please try again later"
)

const (
	ErrDevInvalidInput                 = "invalid input"
	ErrDevCannotParseJSON              = "cannot parse JSON"
	ErrDevCannotMarshalJSON            = "cannot marshal JSON"
	ErrDevValidationFailed             = "validation failed"
	ErrDevInvalidRequestPayload        = "invalid request payload"
	ErrDevServerDeadlineExceeded       = "server deadline exceeded"
	ErrDevCreateHTTPRequest            = "failed to create HTTP request"
	ErrDevSendHTTPRequest              = "failed to send HTTP request"
	ErrDevUnexpectedHTTPStatus         = "unexpected HTTP status %d from %s"
	ErrDevAuthTokenMissing             = "authorization token missing"
	ErrDevAuthTokenInvalidOrExpired    = "authorization token invalid or expired"
	ErrDevAuthSigningMethod            = "unexpected signing method"
	ErrDevSessionNotFound              = "health session %s not found"
	ErrDevSessionNotOwned              = "member %s does not own health session %s"
	ErrDevSessionInvalidTransition     = "invalid health session transition %s -> %s"
	ErrDevSlotUnavailable              = "professional %s already has a session at %s %s"
	ErrDevProfessionalNotFound         = "professional %s not found"
	ErrDevSessionDateInPast            = "session start %s is in the past"
	ErrDevReferenceGenerationExhausted = "could not generate a unique %s reference after %d attempts"
	ErrDevVerificationInconclusive     = "status verification for %s on %s was inconclusive"
	ErrDevGatewayEmptyStatus           = "gateway %s returned an empty status for %s"
	ErrDevGatewayNotSupported          = "no status client registered for gateway %s"
	ErrDevEarningsReversalFailed       = "earnings reversal failed for withdrawal %s"
	ErrDevEarningsAccountNotFound      = "no earnings account for member %s"
	ErrDevInvalidTimezone              = "invalid session timezone %s"
	ErrDevInvalidSessionSchedule       = "invalid session schedule %s %s"
)

const (
	ErrDevDBFailedToFindData      = "failed to find data in postgres"
	ErrDevDBFailedToCreateData    = "failed to create data in postgres"
	ErrDevDBFailedToUpdateData    = "failed to update data in postgres"
	ErrDevDBFailedToBeginTx       = "failed to begin postgres transaction"
	ErrDevDBFailedToCommitTx      = "failed to commit postgres transaction"
	ErrDevDBFailedToRollbackTx    = "failed to rollback postgres transaction"
	ErrDevDBUniqueViolation       = "unique constraint violated in postgres"
	ErrDevRedisSet                = "failed to set redis key %s"
	ErrDevRedisGet                = "failed to get redis key %s"
	ErrDevRedisDelete             = "failed to delete redis key %s"
	ErrDevRedisExists             = "failed to check redis key %s"
	ErrDevRedisSetNX              = "failed to set redis key %s if absent"
	ErrDevRabbitMQOpenChannel     = "failed to open rabbitMQ channel"
	ErrDevRabbitMQDeclareQueue    = "failed to declare rabbitMQ queue %s"
	ErrDevRabbitMQPublishMessage  = "failed to publish message to rabbitMQ queue %s"
	ErrDevRabbitMQConsumeMessage  = "failed to consume message from rabbitMQ queue %s"
	ErrDevRabbitMQAckMessage      = "failed to acknowledge rabbitMQ message"
	ErrDevRabbitMQPublishNotAcked = "rabbitMQ broker did not confirm message on queue %s"
	ErrDevMinioCreateObject       = "failed to create object in minio bucket %s"
	ErrDevCalendarCreateEvent     = "failed to create calendar event for session %s"
	ErrDevCalendarCancelEvent     = "failed to cancel calendar event %s"
	ErrDevEnqueueTask             = "failed to enqueue task %s"
	ErrDevBankNotFound            = "bank %s not found for currency %s"
)

const (
	ResponseUnknown = "unknown"
)
