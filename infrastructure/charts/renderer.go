// Package charts desenha os painéis do dashboard em PNG
package charts

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/vfg2006/sales-dashboard-api/internal/domain"
)

// Cores dos painéis
const (
	colorSalesBySalesman = "ffaa00"
	colorSalesByProduct  = "F08080"
	colorRevenueByRegion = "90EE90"
	colorCallsBySalesman = "D3D3D3"
	colorPositive        = "008000"
	colorNegative        = "FF0000"
	colorDistribution    = "FA8072"
	colorDistributionKDE = "B22222"
)

var pastelPalette = []string{
	"a1c9f4", "ffb482", "8de5a1", "ff9f9b", "d0bbff",
	"debb9b", "fab0e4", "cfcfcf", "fffea3", "b9f2f0",
}

// Renderer gera as imagens dos painéis com tamanho fixo em pixels
type Renderer struct {
	width  int
	height int
}

// NewRenderer cria um renderizador de gráficos
func NewRenderer(width, height int) *Renderer {
	return &Renderer{width: width, height: height}
}

// Render desenha o painel a partir da visão já calculada
func (r *Renderer) Render(panel domain.ChartPanel, view *domain.DashboardView) ([]byte, error) {
	if view == nil {
		return r.placeholder(panel.Title)
	}

	var (
		image []byte
		err   error
	)

	switch panel.Name {
	case domain.ChartSalesBySalesman:
		image, err = r.bars(panel.Title, totalsToBars(view.SalesBySalesman, colorSalesBySalesman))
	case domain.ChartSalesByProduct:
		image, err = r.bars(panel.Title, totalsToBars(view.SalesByProduct, colorSalesByProduct))
	case domain.ChartRevenueByRegion:
		image, err = r.bars(panel.Title, totalsToBars(view.RevenueByRegion, colorRevenueByRegion))
	case domain.ChartCallsBySalesman:
		image, err = r.bars(panel.Title, totalsToBars(view.CallsBySalesman, colorCallsBySalesman))
	case domain.ChartFeedback:
		image, err = r.bars(panel.Title, []bar{
			{label: "Positive", value: view.Feedback.Positive, color: colorPositive},
			{label: "Negative", value: view.Feedback.Negative, color: colorNegative},
		})
	case domain.ChartSalesShareByProduct:
		image, err = r.pie(panel.Title, view.SalesShareByProduct, false)
	case domain.ChartRevenueShareByRegion:
		image, err = r.pie(panel.Title, view.RevenueShareByRegion, true)
	case domain.ChartSatisfactionOverTime:
		image, err = r.timeSeries(panel.Title, view.SatisfactionOverTime)
	case domain.ChartSatisfactionDistribution:
		image, err = r.histogram(panel.Title, view.SatisfactionDistribution)
	default:
		return nil, fmt.Errorf("painel desconhecido: %s", panel.Name)
	}

	if err != nil {
		return nil, errors.Wrapf(err, "erro ao desenhar %s", panel.Name)
	}

	return image, nil
}

type bar struct {
	label string
	value float64
	color string
}

func totalsToBars(groups []domain.GroupTotal, color string) []bar {
	bars := make([]bar, 0, len(groups))
	for _, g := range groups {
		bars = append(bars, bar{label: g.Key, value: g.Value, color: color})
	}
	return bars
}
