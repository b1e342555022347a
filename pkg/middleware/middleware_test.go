package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/sales-dashboard-api/pkg/log"
	"github.com/vfg2006/sales-dashboard-api/pkg/metrics"
)

func TestLoggingMiddleware(t *testing.T) {
	log.SetupTestLogger()
	recorder := metrics.NewRecorder()

	var seenCorrelationID string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seenCorrelationID = log.GetCorrelationID(r.Context())
		w.WriteHeader(http.StatusTeapot)
	})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/v1/dashboard", nil)
	LoggingMiddleware(recorder)(next).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusTeapot, rec.Code)
	assert.NotEmpty(t, seenCorrelationID)
	assert.Equal(t, seenCorrelationID, rec.Header().Get(CorrelationIDHeader))

	snapshots := recorder.Snapshot()
	require.Len(t, snapshots, 1)
	assert.Equal(t, "http", snapshots[0].Name)
	assert.Equal(t, int64(1), snapshots[0].Count)
}

func TestLogPanicMiddleware(t *testing.T) {
	log.SetupTestLogger()

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("coluna ausente")
	})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)

	assert.NotPanics(t, func() {
		LogPanicMiddleware()(next).ServeHTTP(rec, req)
	})
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "SRV_001")
}

func TestCors(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	tests := []struct {
		name        string
		method      string
		origin      string
		wantStatus  int
		wantAllowed bool
	}{
		{name: "Origem permitida", method: http.MethodGet, origin: "http://localhost:3000", wantStatus: http.StatusNoContent, wantAllowed: true},
		{name: "Origem desconhecida", method: http.MethodGet, origin: "https://example.com", wantStatus: http.StatusNoContent},
		{name: "Preflight responde direto", method: http.MethodOptions, origin: "http://localhost:3000", wantStatus: http.StatusOK, wantAllowed: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(tt.method, "/v1/dashboard", nil)
			req.Header.Set("Origin", tt.origin)

			Cors()(next).ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantAllowed {
				assert.Equal(t, tt.origin, rec.Header().Get("Access-Control-Allow-Origin"))
			} else {
				assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
			}
		})
	}
}
