package handler

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/vfg2006/sales-dashboard-api/internal/domain"
	"github.com/vfg2006/sales-dashboard-api/internal/usecases/dashboarding"
	"github.com/vfg2006/sales-dashboard-api/pkg/log"
)

// GetFilterOptions retorna os valores disponíveis para cada filtro
func GetFilterOptions(service dashboarding.Dashboarder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, service.GetFilterOptions())
	}
}

// GetDashboard retorna a visão completa do painel para os filtros da query string
func GetDashboard(service dashboarding.Dashboarder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, service.GetDashboard(parseFilters(r)))
	}
}

// GetRawData retorna as linhas filtradas sem modificações
func GetRawData(service dashboarding.Dashboarder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, service.GetRawData(parseFilters(r)))
	}
}

// GetChart devolve o PNG de um painel
func GetChart(service dashboarding.Dashboarder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name := domain.ChartName(httprouter.ParamsFromContext(r.Context()).ByName("chart"))

		image, err := service.GetChart(name, parseFilters(r))
		if err != nil {
			log.ForContext(r.Context()).WithError(err).WithField("chart", name).Warn("Não foi possível gerar o gráfico")
			writeServiceError(w, err, "Não foi possível gerar o gráfico")
			return
		}

		w.Header().Set("Content-Type", "image/png")
		w.Header().Set("Cache-Control", "no-store")
		if _, err := w.Write(image); err != nil {
			log.ForContext(r.Context()).WithError(err).Error("Erro ao enviar gráfico")
		}
	}
}
