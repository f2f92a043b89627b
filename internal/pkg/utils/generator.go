package utils

import (
	"strings"

	"telehealth-service/internal/pkg/constvars"

	"github.com/google/uuid"
)

func GenerateRequestID() string {
	return constvars.REQUEST_ID_PREFIX + uuid.NewString()
}

// GenerateReference returns prefix followed by an uppercase random token of
// constvars.ReferenceRandomLength characters.
func GenerateReference(prefix string) string {
	token := strings.ReplaceAll(uuid.NewString(), "-", "")
	return prefix + strings.ToUpper(token[:constvars.ReferenceRandomLength])
}
