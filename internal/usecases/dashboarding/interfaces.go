package dashboarding

import (
	"github.com/vfg2006/sales-dashboard-api/internal/domain"
)

//go:generate mockgen -source=interfaces.go -destination=mocks/mock_interfaces.go -package=mocks

// Dashboarder expõe a visão do painel para a camada HTTP
type Dashboarder interface {
	// GetFilterOptions retorna os valores disponíveis para os três filtros
	GetFilterOptions() *domain.FilterOptions

	// GetDashboard calcula todos os agregados sobre a visão filtrada
	GetDashboard(filters domain.Filters) *domain.DashboardView

	// GetRawData retorna as linhas da visão filtrada sem modificações
	GetRawData(filters domain.Filters) *domain.RawData

	// GetChart gera a imagem PNG de um painel de gráfico
	GetChart(name domain.ChartName, filters domain.Filters) ([]byte, error)
}

// ChartRenderer desenha um painel a partir da visão já calculada
type ChartRenderer interface {
	Render(panel domain.ChartPanel, view *domain.DashboardView) ([]byte, error)
}
