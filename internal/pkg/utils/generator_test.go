package utils

import (
	"strings"
	"testing"

	"telehealth-service/internal/pkg/constvars"

	"github.com/stretchr/testify/assert"
)

func TestGenerateReference(t *testing.T) {
	t.Run("Uses prefix and uppercase token", func(t *testing.T) {
		reference := GenerateReference(constvars.SessionReferencePrefix)

		assert.True(t, strings.HasPrefix(reference, "HS-"))
		assert.Len(t, reference, len("HS-")+constvars.ReferenceRandomLength)
		assert.Equal(t, strings.ToUpper(reference), reference)
	})

	t.Run("Generates distinct references", func(t *testing.T) {
		seen := make(map[string]bool)
		for i := 0; i < 100; i++ {
			seen[GenerateReference("TXN-")] = true
		}
		assert.Len(t, seen, 100)
	})
}

func TestGenerateRequestID(t *testing.T) {
	assert.True(t, strings.HasPrefix(GenerateRequestID(), constvars.REQUEST_ID_PREFIX))
}
