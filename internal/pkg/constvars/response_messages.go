package constvars

const (
	ResponseSuccessWebhookReceived = "webhook received"
	ResponseSuccessSessionBooked   = "health session booked"
	ResponseSuccessSessionCanceled = "health session canceled"
	ResponseSuccessHealthy         = "service is healthy"
)
