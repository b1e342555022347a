// Package metrics mantém histogramas de latência em memória
package metrics

import (
	"sort"
	"sync"
	"time"

	hdrhistogram "github.com/HdrHistogram/hdrhistogram-go"
)

const (
	minTrackable   int64 = 1 // 1 µs
	maxTrackable   int64 = int64(60 * time.Second / time.Microsecond)
	significantDig       = 3
)

// LatencySnapshot resume um histograma em microssegundos
type LatencySnapshot struct {
	Name  string  `json:"name"`
	Count int64   `json:"count"`
	Min   int64   `json:"min_us"`
	Max   int64   `json:"max_us"`
	Mean  float64 `json:"mean_us"`
	P50   int64   `json:"p50_us"`
	P90   int64   `json:"p90_us"`
	P99   int64   `json:"p99_us"`
}

// Recorder agrupa histogramas de latência por nome
type Recorder struct {
	mu         sync.Mutex
	histograms map[string]*hdrhistogram.Histogram
}

// NewRecorder cria um Recorder vazio
func NewRecorder() *Recorder {
	return &Recorder{histograms: make(map[string]*hdrhistogram.Histogram)}
}

// Observe registra uma duração. Valores fora da faixa são limitados a ela.
func (r *Recorder) Observe(name string, d time.Duration) {
	if r == nil {
		return
	}

	us := d.Microseconds()
	if us < minTrackable {
		us = minTrackable
	}
	if us > maxTrackable {
		us = maxTrackable
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	h, ok := r.histograms[name]
	if !ok {
		h = hdrhistogram.New(minTrackable, maxTrackable, significantDig)
		r.histograms[name] = h
	}
	_ = h.RecordValue(us)
}

// Since é um atalho para Observe(name, time.Since(start))
func (r *Recorder) Since(name string, start time.Time) {
	r.Observe(name, time.Since(start))
}

// Snapshot retorna o resumo de todos os histogramas
func (r *Recorder) Snapshot() []LatencySnapshot {
	if r == nil {
		return nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	snapshots := make([]LatencySnapshot, 0, len(r.histograms))
	for name, h := range r.histograms {
		snapshots = append(snapshots, LatencySnapshot{
			Name:  name,
			Count: h.TotalCount(),
			Min:   h.Min(),
			Max:   h.Max(),
			Mean:  h.Mean(),
			P50:   h.ValueAtQuantile(50),
			P90:   h.ValueAtQuantile(90),
			P99:   h.ValueAtQuantile(99),
		})
	}

	sort.Slice(snapshots, func(i, j int) bool {
		return snapshots[i].Name < snapshots[j].Name
	})

	return snapshots
}
