package charts

import (
	"bytes"
	"fmt"

	"github.com/vfg2006/sales-dashboard-api/internal/domain"
	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// bars desenha um gráfico de barras. Sem valores diferentes de zero o go-chart não consegue
// montar o eixo, então cai no painel vazio.
func (r *Renderer) bars(title string, bars []bar) ([]byte, error) {
	values := make([]chart.Value, 0, len(bars))
	nonZero := false
	for _, b := range bars {
		if b.value != 0 {
			nonZero = true
		}
		color := drawing.ColorFromHex(b.color)
		values = append(values, chart.Value{
			Label: b.label,
			Value: b.value,
			Style: chart.Style{
				FillColor:   color,
				StrokeColor: color,
			},
		})
	}
	if !nonZero {
		return r.placeholder(title)
	}

	graph := chart.BarChart{
		Title:      title,
		Width:      r.width,
		Height:     r.height,
		BarWidth:   barWidth(r.width, len(values)),
		Background: chart.Style{Padding: chart.Box{Top: 40, Left: 10, Right: 10, Bottom: 10}},
		Bars:       values,
	}

	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func barWidth(width, count int) int {
	if count == 0 {
		return width
	}
	w := width / (count * 2)
	if w > 80 {
		w = 80
	}
	if w < 8 {
		w = 8
	}
	return w
}

// pie desenha a participação de cada grupo; donut deixa o centro vazado
func (r *Renderer) pie(title string, groups []domain.GroupShare, donut bool) ([]byte, error) {
	values := make([]chart.Value, 0, len(groups))
	for i, g := range groups {
		if g.Value <= 0 {
			continue
		}
		values = append(values, chart.Value{
			Label: fmt.Sprintf("%s %.1f%%", g.Key, g.Percent),
			Value: g.Value,
			Style: chart.Style{
				FillColor:   drawing.ColorFromHex(pastelPalette[i%len(pastelPalette)]),
				StrokeColor: drawing.ColorWhite,
			},
		})
	}
	if len(values) == 0 {
		return r.placeholder(title)
	}

	var buf bytes.Buffer
	if donut {
		graph := chart.DonutChart{
			Title:  title,
			Width:  r.width,
			Height: r.height,
			Values: values,
		}
		if err := graph.Render(chart.PNG, &buf); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	}

	graph := chart.PieChart{
		Title:  title,
		Width:  r.width,
		Height: r.height,
		Values: values,
	}
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
