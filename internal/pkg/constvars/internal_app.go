package constvars

type ContextKey string

const (
	CONTEXT_REQUEST_ID_KEY           ContextKey = "request_id"
	CONTEXT_IS_CLIENT_REQUEST_ID_KEY ContextKey = "is_client_request_id"
	CONTEXT_MEMBER_ID_KEY            ContextKey = "member_id"
)

const (
	REQUEST_ID_PREFIX = "THS_SVC_"
)

const (
	ResourceWebhooks       = "webhooks"
	ResourceHealthSessions = "health-sessions"
	ResourceHealth         = "health"
)

const (
	URLParamGateway   = "gateway"
	URLParamReference = "reference"
)

const (
	SessionReferencePrefix     = "HS-"
	TransactionReferencePrefix = "TXN-"
	GroupReferencePrefix       = "GRP-"
	ReferenceRandomLength      = 12
)

const (
	SessionDateLayout = "2006-01-02"
	SessionTimeLayout = "15:04"
)

const (
	RedisBankListKeyPrefix     = "banks:"
	RedisMeetingWorkerLockKey  = "lock:meeting_worker"
	WebhookArchiveObjectFormat = "webhooks/%s/%s/%s.json"
	WebhookArchiveUnknownDir   = "unknown"
)

const (
	TaskTypeReconcileCharge   = "reconcile:charge"
	TaskTypeReconcileTransfer = "reconcile:transfer"
)
