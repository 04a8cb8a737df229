package middleware_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ndewijer/portfolio-tracker/internal/api/middleware"
)

func TestLogger(t *testing.T) {
	tests := []struct {
		name      string
		status    int
		wantLevel string
	}{
		{"success logs at info", http.StatusOK, "info"},
		{"client error logs at warn", http.StatusNotFound, "warn"},
		{"server error logs at error", http.StatusInternalServerError, "error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			log := zerolog.New(&buf)

			next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte("hello"))
			})
			handler := chimiddleware.RequestID(middleware.Logger(log)(next))

			req := httptest.NewRequest(http.MethodGet, "/api/overview", nil)
			req.URL.Path = "/api/overview\r\nforged"
			handler.ServeHTTP(httptest.NewRecorder(), req)

			var entry map[string]any
			require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
			assert.Equal(t, tt.wantLevel, entry["level"])
			assert.Equal(t, "GET", entry["method"])
			assert.Equal(t, float64(tt.status), entry["status"])
			assert.Equal(t, float64(5), entry["bytes"])
			assert.NotEmpty(t, entry["request_id"])
			assert.NotContains(t, entry["path"], "\n")
		})
	}
}
