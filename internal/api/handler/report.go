package handler

import (
	"net/http"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/sales-dashboard-api/pkg/apiErrors"
)

// SummaryReporter dispara e consulta o relatório resumido
type SummaryReporter interface {
	TriggerManualRun() (string, bool)
	GetStatus() map[string]any
}

// RunSummaryReport executa manualmente o relatório resumido
func RunSummaryReport(reporter SummaryReporter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - RunSummaryReport")

		if reporter == nil {
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Serviço de relatório não disponível", nil)
			return
		}

		runID, started := reporter.TriggerManualRun()
		if !started {
			apiErrors.WriteError(w, apiErrors.ErrConflict, "Relatório já em andamento", nil)
			return
		}

		writeJSONStatus(w, http.StatusAccepted, map[string]any{
			"message": "Relatório iniciado com sucesso",
			"run_id":  runID,
		})
	}
}

// GetSummaryReportStatus retorna o status do relatório resumido
func GetSummaryReportStatus(reporter SummaryReporter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if reporter == nil {
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Serviço de relatório não disponível", nil)
			return
		}

		writeJSON(w, reporter.GetStatus())
	}
}
