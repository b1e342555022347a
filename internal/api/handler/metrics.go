package handler

import (
	"net/http"

	"github.com/vfg2006/sales-dashboard-api/pkg/metrics"
)

// GetLatency retorna os percentis de latência registrados desde o início do processo
func GetLatency(recorder *metrics.Recorder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, map[string]any{
			"operations": recorder.Snapshot(),
		})
	}
}
