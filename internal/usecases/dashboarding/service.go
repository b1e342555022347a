// Package dashboarding contém o motor de filtro e agregação do painel de vendas
package dashboarding

import (
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/sales-dashboard-api/internal/domain"
	"github.com/vfg2006/sales-dashboard-api/pkg/apiErrors"
	"github.com/vfg2006/sales-dashboard-api/pkg/metrics"
)

// Service mantém a tabela imutável carregada na inicialização
type Service struct {
	table    *domain.SalesTable
	options  *domain.FilterOptions
	renderer ChartRenderer
	recorder *metrics.Recorder
}

// NewService cria o serviço do painel. A tabela não deve ser alterada depois desta chamada.
func NewService(table *domain.SalesTable, renderer ChartRenderer, recorder *metrics.Recorder) Dashboarder {
	if table == nil {
		table = &domain.SalesTable{}
	}

	return &Service{
		table:    table,
		options:  ComputeFilterOptions(table),
		renderer: renderer,
		recorder: recorder,
	}
}

// GetFilterOptions retorna os valores distintos de cada filtro
func (s *Service) GetFilterOptions() *domain.FilterOptions {
	return s.options
}

// GetDashboard recalcula a visão completa para os filtros informados
func (s *Service) GetDashboard(filters domain.Filters) *domain.DashboardView {
	defer s.recorder.Since("compute_view", time.Now())

	view := ComputeView(s.table, filters)

	logrus.WithFields(logrus.Fields{
		"filter_salesman": valueOrAll(filters.Salesman),
		"filter_product":  valueOrAll(filters.Product),
		"filter_region":   valueOrAll(filters.Region),
		"rows":            view.RowCount,
	}).Debug("Visão do painel calculada")

	return view
}

// GetRawData retorna a visão filtrada sem modificações
func (s *Service) GetRawData(filters domain.Filters) *domain.RawData {
	defer s.recorder.Since("raw_data", time.Now())

	return ComputeRawData(s.table, filters)
}

// GetChart calcula a visão e desenha o painel solicitado
func (s *Service) GetChart(name domain.ChartName, filters domain.Filters) ([]byte, error) {
	panel, ok := domain.FindChartPanel(name)
	if !ok {
		return nil, NewDashboardError(ErrUnknownChart, apiErrors.ErrInvalidFormat, string(name))
	}

	if s.renderer == nil {
		return nil, NewDashboardError(ErrChartRender, apiErrors.ErrRendering, "nenhum renderizador configurado")
	}

	view := s.GetDashboard(filters)

	start := time.Now()
	image, err := s.renderer.Render(panel, view)
	s.recorder.Since("render_chart", start)
	if err != nil {
		logrus.WithError(err).WithField("chart", name).Error("Erro ao gerar gráfico")
		return nil, NewDashboardError(ErrChartRender, apiErrors.ErrRendering, err.Error())
	}

	return image, nil
}

func valueOrAll(value *string) string {
	if value == nil {
		return "*"
	}
	return *value
}
