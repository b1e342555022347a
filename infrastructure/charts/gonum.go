package charts

import (
	"bytes"
	"math"

	"github.com/vfg2006/sales-dashboard-api/internal/domain"
	"github.com/wcharczuk/go-chart/v2/drawing"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// DPI padrão do gonum para PNG
const pngDPI = 96

// kdeSamples é a resolução da curva de densidade
const kdeSamples = 200

// timeSeries desenha uma linha por vendedor; pontos sem média definida ficam de fora
func (r *Renderer) timeSeries(title string, series []domain.SatisfactionSeries) ([]byte, error) {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "Date"
	p.Y.Label.Text = "Client Satisfaction"
	p.X.Tick.Marker = plot.TimeTicks{Format: "2006-01-02"}
	p.Legend.Top = true
	p.Add(plotter.NewGrid())

	plotted := 0
	for i, s := range series {
		points := make(plotter.XYs, 0, len(s.Points))
		for _, point := range s.Points {
			if !point.Mean.Defined() {
				continue
			}
			points = append(points, plotter.XY{
				X: float64(point.Date.Unix()),
				Y: float64(point.Mean),
			})
		}
		if len(points) == 0 {
			continue
		}

		line, markers, err := plotter.NewLinePoints(points)
		if err != nil {
			return nil, err
		}
		line.Color = plotutil.Color(i)
		line.Width = vg.Points(1.5)
		markers.GlyphStyle.Color = plotutil.Color(i)
		markers.GlyphStyle.Shape = draw.CircleGlyph{}

		p.Add(line, markers)
		p.Legend.Add(s.Salesman, line, markers)
		plotted++
	}

	if plotted == 0 {
		return r.placeholder(title)
	}

	return r.save(p)
}

// histogram desenha as faixas já calculadas da distribuição
func (r *Renderer) histogram(title string, bins []domain.HistogramBin) ([]byte, error) {
	if len(bins) == 0 {
		return r.placeholder(title)
	}

	h := &plotter.Histogram{
		Bins:      make([]plotter.HistogramBin, len(bins)),
		Width:     bins[0].Upper - bins[0].Lower,
		FillColor: drawing.ColorFromHex(colorDistribution),
		LineStyle: plotter.DefaultLineStyle,
	}
	for i, b := range bins {
		h.Bins[i] = plotter.HistogramBin{Min: b.Lower, Max: b.Upper, Weight: float64(b.Count)}
	}

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "Client Satisfaction"
	p.Y.Label.Text = "Count"
	p.Add(h)

	if curve, ok := kdeCurve(bins); ok {
		fn := plotter.NewFunction(curve)
		fn.XMin = bins[0].Lower
		fn.XMax = bins[len(bins)-1].Upper
		fn.Samples = kdeSamples
		fn.Color = drawing.ColorFromHex(colorDistributionKDE)
		fn.Width = vg.Points(1.5)
		p.Add(fn)

		// a curva não entra no ajuste automático dos eixos
		step := (fn.XMax - fn.XMin) / kdeSamples
		for i := 0; i <= kdeSamples; i++ {
			if y := curve(fn.XMin + float64(i)*step); y > p.Y.Max {
				p.Y.Max = y
			}
		}
	}

	return r.save(p)
}

// kdeCurve estima a densidade gaussiana (regra de Scott) a partir dos centros das faixas,
// escalada para contagens, como a curva sobreposta ao histograma.
// Com todos os valores em uma única faixa não há curva.
func kdeCurve(bins []domain.HistogramBin) (func(x float64) float64, bool) {
	centers := make([]float64, len(bins))
	weights := make([]float64, len(bins))
	n, filled := 0.0, 0
	for i, b := range bins {
		centers[i] = (b.Lower + b.Upper) / 2
		weights[i] = float64(b.Count)
		n += weights[i]
		if b.Count > 0 {
			filled++
		}
	}
	if n < 2 || filled < 2 {
		return nil, false
	}

	std := stat.StdDev(centers, weights)
	if std == 0 || math.IsNaN(std) {
		return nil, false
	}

	bandwidth := std * math.Pow(n, -0.2)
	binWidth := bins[0].Upper - bins[0].Lower
	kernels := make([]distuv.Normal, 0, len(bins))
	kernelWeights := make([]float64, 0, len(bins))
	for i := range centers {
		if weights[i] == 0 {
			continue
		}
		kernels = append(kernels, distuv.Normal{Mu: centers[i], Sigma: bandwidth})
		kernelWeights = append(kernelWeights, weights[i])
	}

	return func(x float64) float64 {
		density := 0.0
		for i, k := range kernels {
			density += kernelWeights[i] * k.Prob(x)
		}
		return density * binWidth
	}, true
}

// placeholder desenha um painel vazio quando a visão filtrada não tem dados
func (r *Renderer) placeholder(title string) ([]byte, error) {
	p := plot.New()
	p.Title.Text = title
	p.HideAxes()
	p.X.Min, p.X.Max = 0, 1
	p.Y.Min, p.Y.Max = 0, 1

	labels, err := plotter.NewLabels(plotter.XYLabels{
		XYs:    []plotter.XY{{X: 0.5, Y: 0.5}},
		Labels: []string{"No data"},
	})
	if err != nil {
		return nil, err
	}
	labels.TextStyle[0].XAlign = draw.XCenter
	labels.TextStyle[0].Font.Size = vg.Points(14)
	p.Add(labels)

	return r.save(p)
}

func (r *Renderer) save(p *plot.Plot) ([]byte, error) {
	width := vg.Length(r.width) * vg.Inch / pngDPI
	height := vg.Length(r.height) * vg.Inch / pngDPI

	writer, err := p.WriterTo(width, height, "png")
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if _, err := writer.WriteTo(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
