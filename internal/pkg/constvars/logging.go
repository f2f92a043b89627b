package constvars

const (
	LoggingRequestIDKey       = "request_id"
	LoggingMethodKey          = "method"
	LoggingEndpointKey        = "endpoint"
	LoggingRemoteAddrKey      = "remote_addr"
	LoggingUserAgentKey       = "user_agent"
	LoggingQueryKey           = "query"
	LoggingStatusCodeKey      = "status_code"
	LoggingDurationKey        = "duration"
	LoggingSuccessKey         = "success"
	LoggingOperationKey       = "operation"
	LoggingErrorCodeKey       = "error_code"
	LoggingErrorMessageKey    = "error_message"
	LoggingGatewayKey         = "gateway"
	LoggingEventKindKey       = "event_kind"
	LoggingEventTypeKey       = "event_type"
	LoggingTransactionRefKey  = "transaction_reference"
	LoggingGroupRefKey        = "group_reference"
	LoggingSessionRefKey      = "session_reference"
	LoggingWithdrawalRefKey   = "withdrawal_reference"
	LoggingExternalRefKey     = "external_reference"
	LoggingReferenceKey       = "reference"
	LoggingReportedStatusKey  = "reported_status"
	LoggingVerifiedStatusKey  = "verified_status"
	LoggingOutcomeKey         = "outcome"
	LoggingMemberIDKey        = "member_id"
	LoggingQueueNameKey       = "queue_name"
	LoggingFailedCountKey     = "failed_count"
	LoggingCountKey           = "count"
	LoggingTaskTypeKey        = "task_type"
	LoggingObjectKey          = "object_key"
	LoggingSeverityHigh       = "high"
	LoggingSeverityMedium     = "medium"
	LoggingSeverityLow        = "low"
	LoggingBusinessEventKey   = "business_event"
	LoggingSecurityEventKey   = "security_event"
	LoggingSecuritySeverity   = "severity"
	LoggingTimestampKey       = "timestamp"
	LoggingPayloadSizeKey     = "payload_size"
	LoggingSessionStatusKey   = "session_status"
	LoggingPreviousStatusKey  = "previous_status"
	LoggingWithdrawalTypeKey  = "withdrawal_type"
	LoggingMeetingEventIDKey  = "meeting_event_id"
	LoggingIsClientRequestKey = "is_client_request_id"
	LoggingRedisKey           = "redis_key"
	LoggingLockValueKey       = "lock_value"
	LoggingLockExpirationKey  = "lock_expiration"
	LoggingCurrencyKey        = "currency"
	LoggingBankCodeKey        = "bank_code"
)
