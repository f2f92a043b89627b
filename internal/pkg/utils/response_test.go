package utils

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"telehealth-service/internal/pkg/exceptions"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestBuildErrorResponse(t *testing.T) {
	logger := zap.NewNop()

	t.Run("Custom error keeps its status and client message", func(t *testing.T) {
		rr := httptest.NewRecorder()

		BuildErrorResponse(logger, rr, exceptions.ErrSessionNotFound("HS-1"))

		assert.Equal(t, http.StatusNotFound, rr.Code)
		var body map[string]interface{}
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
		assert.Equal(t, false, body["success"])
		assert.NotEmpty(t, body["message"])
		assert.NotContains(t, rr.Body.String(), "HS-1", "developer message should not leak to the client")
	})

	t.Run("Plain error becomes internal server error", func(t *testing.T) {
		rr := httptest.NewRecorder()

		BuildErrorResponse(logger, rr, errors.New("boom"))

		assert.Equal(t, http.StatusInternalServerError, rr.Code)
		assert.NotContains(t, rr.Body.String(), "boom")
	})
}

func TestBuildSuccessResponse(t *testing.T) {
	rr := httptest.NewRecorder()

	BuildSuccessResponse(rr, http.StatusCreated, "created", map[string]string{"reference": "TXN-1"})

	assert.Equal(t, http.StatusCreated, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"success":true,"message":"created","data":{"reference":"TXN-1"}}`, rr.Body.String())
}
