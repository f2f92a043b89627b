package reconciliation

import (
	"strings"

	"telehealth-service/internal/app/models"
)

// successVocabulary holds every token a gateway uses for a settled charge.
var successVocabulary = map[string]struct{}{
	"success":    {},
	"successful": {},
}

func isSuccessStatus(status string) bool {
	_, ok := successVocabulary[strings.ToLower(strings.TrimSpace(status))]
	return ok
}

// normalizeTransferStatus maps a gateway transfer status onto the closed
// withdrawal outcome set. ok is false for statuses that are not final yet.
func normalizeTransferStatus(status string) (models.TransactionStatus, bool) {
	switch strings.ToLower(strings.TrimSpace(status)) {
	case "success", "successful":
		return models.TransactionStatusSuccess, true
	case "failed", "failure":
		return models.TransactionStatusFailed, true
	case "reversed":
		return models.TransactionStatusReversed, true
	}
	return "", false
}
