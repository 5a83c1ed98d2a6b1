package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestLoggerRecordsRequest(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)

	router := chi.NewRouter()
	router.Use(Logger(zap.New(core)))
	router.Get("/ingredients/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
		_, _ = w.Write([]byte("short and stout"))
	})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ingredients/retinol", nil))

	entries := logs.FilterMessage("HTTP Request").All()
	require.Len(t, entries, 1)
	assert.Equal(t, zapcore.WarnLevel, entries[0].Level)

	fields := entries[0].ContextMap()
	assert.Equal(t, "GET", fields["method"])
	assert.Equal(t, "/ingredients/retinol", fields["path"])
	assert.Equal(t, "/ingredients/{id}", fields["route"])
	assert.EqualValues(t, http.StatusTeapot, fields["status"])
	assert.EqualValues(t, len("short and stout"), fields["bytes"])
}

func TestRequestLevel(t *testing.T) {
	tests := []struct {
		path   string
		status int
		want   zapcore.Level
	}{
		{"/api/v1/ingredients", http.StatusOK, zapcore.InfoLevel},
		{"/health", http.StatusOK, zapcore.DebugLevel},
		{"/ready", http.StatusServiceUnavailable, zapcore.ErrorLevel},
		{"/api/v1/compatibility", http.StatusBadRequest, zapcore.WarnLevel},
		{"/api/v1/routines/build", http.StatusInternalServerError, zapcore.ErrorLevel},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, requestLevel(tt.path, tt.status))
		})
	}
}
