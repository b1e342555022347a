package charts

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/sales-dashboard-api/internal/domain"
)

var pngMagic = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}

func sampleView() *domain.DashboardView {
	day := func(d int) time.Time { return time.Date(2024, 1, d, 0, 0, 0, 0, time.UTC) }

	return &domain.DashboardView{
		RowCount: 3,
		SalesBySalesman: []domain.GroupTotal{{Key: "Bruno", Value: 30}, {Key: "Ana", Value: 20}},
		SalesByProduct:  []domain.GroupTotal{{Key: "Widget", Value: 40}, {Key: "Gadget", Value: 10}},
		RevenueByRegion: []domain.GroupTotal{{Key: "West", Value: 310}, {Key: "East", Value: 300}},
		CallsBySalesman: []domain.GroupTotal{{Key: "Bruno", Value: 10}, {Key: "Ana", Value: 8}},
		SatisfactionOverTime: []domain.SatisfactionSeries{
			{Salesman: "Ana", Points: []domain.SatisfactionPoint{{Date: day(1), Mean: 3}, {Date: day(2), Mean: 5}}},
			{Salesman: "Bruno", Points: []domain.SatisfactionPoint{{Date: day(1), Mean: 2}, {Date: day(2), Mean: domain.UndefinedMean}}},
		},
		SatisfactionDistribution: []domain.HistogramBin{
			{Lower: 2, Upper: 3, Count: 2},
			{Lower: 3, Upper: 4, Count: 0},
			{Lower: 4, Upper: 5, Count: 1},
		},
		Feedback:             domain.Feedback{Positive: 11, Negative: 8},
		SalesShareByProduct:  []domain.GroupShare{{Key: "Gadget", Value: 10, Percent: 20}, {Key: "Widget", Value: 40, Percent: 80}},
		RevenueShareByRegion: []domain.GroupShare{{Key: "East", Value: 300, Percent: 49.18}, {Key: "West", Value: 310, Percent: 50.82}},
	}
}

func TestRenderer_RenderAllPanels(t *testing.T) {
	renderer := NewRenderer(480, 320)
	view := sampleView()

	for _, panel := range domain.ChartPanels {
		t.Run(string(panel.Name), func(t *testing.T) {
			image, err := renderer.Render(panel, view)

			require.NoError(t, err)
			assert.True(t, bytes.HasPrefix(image, pngMagic), "deve gerar PNG")
		})
	}
}

func TestRenderer_EmptyView(t *testing.T) {
	renderer := NewRenderer(320, 240)
	empty := &domain.DashboardView{
		Summary: domain.Summary{AverageSatisfaction: domain.UndefinedMean},
	}

	for _, panel := range domain.ChartPanels {
		t.Run(string(panel.Name), func(t *testing.T) {
			image, err := renderer.Render(panel, empty)

			require.NoError(t, err)
			assert.True(t, bytes.HasPrefix(image, pngMagic), "painel vazio também é PNG")
		})
	}
}

func TestRenderer_OnlyUndefinedMeans(t *testing.T) {
	renderer := NewRenderer(320, 240)
	view := &domain.DashboardView{
		SatisfactionOverTime: []domain.SatisfactionSeries{
			{Salesman: "Ana", Points: []domain.SatisfactionPoint{{Date: time.Now(), Mean: domain.UndefinedMean}}},
		},
	}
	panel, _ := domain.FindChartPanel(domain.ChartSatisfactionOverTime)

	image, err := renderer.Render(panel, view)

	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(image, pngMagic))
}

func TestRenderer_UnknownPanel(t *testing.T) {
	renderer := NewRenderer(320, 240)

	_, err := renderer.Render(domain.ChartPanel{Name: "pizza"}, sampleView())

	assert.Error(t, err)
}

func TestBarWidth(t *testing.T) {
	assert.Equal(t, 80, barWidth(640, 2))
	assert.Equal(t, 32, barWidth(640, 10))
	assert.Equal(t, 8, barWidth(100, 50))
	assert.Equal(t, 640, barWidth(640, 0))
}

func TestKDECurve(t *testing.T) {
	bins := []domain.HistogramBin{
		{Lower: 1, Upper: 2, Count: 1},
		{Lower: 2, Upper: 3, Count: 4},
		{Lower: 3, Upper: 4, Count: 4},
		{Lower: 4, Upper: 5, Count: 1},
	}

	curve, ok := kdeCurve(bins)
	require.True(t, ok)

	assert.Greater(t, curve(3), curve(1), "pico no centro")
	assert.InDelta(t, curve(2.5), curve(3.5), 1e-9, "simétrica")

	// a área sob a curva equivale à área das barras: total * largura da faixa
	area, step := 0.0, 0.001
	for x := -10.0; x < 16; x += step {
		area += curve(x) * step
	}
	assert.InDelta(t, 10.0, area, 0.01)
}

func TestKDECurve_WithoutSpread(t *testing.T) {
	single := []domain.HistogramBin{
		{Lower: 3.5, Upper: 3.55, Count: 0},
		{Lower: 3.55, Upper: 3.6, Count: 5},
	}
	_, ok := kdeCurve(single)
	assert.False(t, ok, "todos os valores na mesma faixa")

	_, ok = kdeCurve([]domain.HistogramBin{{Lower: 1, Upper: 2, Count: 1}})
	assert.False(t, ok, "um único valor")
}
