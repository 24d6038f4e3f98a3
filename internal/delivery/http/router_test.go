package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestRecoverer(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	logger := zap.New(core)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(requestLogger(logger))
	r.Use(recoverer(logger))
	r.Get("/boom", func(http.ResponseWriter, *http.Request) { panic("boom") })

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/boom", nil))

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"errors":[{"code":"INTERNAL_SERVER_ERROR"}]}`, rec.Body.String())

	require.Equal(t, 1, logs.FilterMessage("panic recovered").Len())
	reqLogs := logs.FilterMessage("http request").All()
	require.Len(t, reqLogs, 1)
	assert.EqualValues(t, http.StatusInternalServerError, reqLogs[0].ContextMap()["status"])
	assert.NotEmpty(t, reqLogs[0].ContextMap()["request_id"])
}
