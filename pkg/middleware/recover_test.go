package middleware

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/barecheradouane2/ShoppingStorev1/pkg/logger"
	"github.com/barecheradouane2/ShoppingStorev1/pkg/reqid"
)

func TestRecoveryReturns500(t *testing.T) {
	h := Recovery(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/orders", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "Internal Server Error")
}

func TestRecoveryLogsWithRequestID(t *testing.T) {
	var buf bytes.Buffer
	prev := logger.L
	logger.L = slog.New(slog.NewTextHandler(&buf, nil))
	defer func() { logger.L = prev }()

	// Production order: request id, then logger, then recovery, so the
	// panic entry goes through the request-scoped logger.
	h := reqid.Middleware()(Logger(Recovery(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/orders", nil))

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	out := buf.String()
	assert.Contains(t, out, "panic recovered")
	assert.Contains(t, out, "request_id")
	// The access log line still completes after the recovery.
	assert.Contains(t, out, "status=500")
}
