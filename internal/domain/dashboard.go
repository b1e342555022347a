package domain

import (
	"math"
	"strconv"
	"time"
)

// Mean é uma média que pode ser indefinida (NaN) quando não há valores.
// É serializada como null nesse caso.
type Mean float64

// UndefinedMean é o valor de uma média sem amostras
var UndefinedMean = Mean(math.NaN())

// Defined indica se a média tem valor
func (m Mean) Defined() bool {
	return !math.IsNaN(float64(m))
}

func (m Mean) MarshalJSON() ([]byte, error) {
	if !m.Defined() {
		return []byte("null"), nil
	}
	return strconv.AppendFloat(nil, float64(m), 'f', -1, 64), nil
}

func (m *Mean) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*m = UndefinedMean
		return nil
	}
	v, err := strconv.ParseFloat(string(data), 64)
	if err != nil {
		return err
	}
	*m = Mean(v)
	return nil
}

// Summary são os cartões de resumo do painel
type Summary struct {
	TotalSales          float64 `json:"total_sales"`
	TotalRevenue        float64 `json:"total_revenue"`
	AverageSatisfaction Mean    `json:"average_satisfaction"`
}

// GroupTotal é a soma de uma métrica para um valor de dimensão
type GroupTotal struct {
	Key   string  `json:"key"`
	Value float64 `json:"value"`
}

// GroupShare é uma soma agrupada com a participação percentual no total
type GroupShare struct {
	Key     string  `json:"key"`
	Value   float64 `json:"value"`
	Percent float64 `json:"percent"`
}

// SatisfactionPoint é a satisfação média de um vendedor em uma data
type SatisfactionPoint struct {
	Date time.Time `json:"date"`
	Mean Mean      `json:"mean"`
}

// SatisfactionSeries é a série temporal de satisfação de um vendedor
type SatisfactionSeries struct {
	Salesman string              `json:"salesman"`
	Points   []SatisfactionPoint `json:"points"`
}

// Feedback soma os retornos positivos e negativos
type Feedback struct {
	Positive float64 `json:"positive"`
	Negative float64 `json:"negative"`
}

// HistogramBin é uma faixa da distribuição de satisfação. A última faixa inclui o limite superior.
type HistogramBin struct {
	Lower float64 `json:"lower"`
	Upper float64 `json:"upper"`
	Count int     `json:"count"`
}

// DashboardView é o modelo completo consumido pela camada de apresentação
type DashboardView struct {
	Filters                  Filters              `json:"filters"`
	RowCount                 int                  `json:"row_count"`
	Summary                  Summary              `json:"summary"`
	SalesBySalesman          []GroupTotal         `json:"sales_by_salesman"`
	SalesByProduct           []GroupTotal         `json:"sales_by_product"`
	RevenueByRegion          []GroupTotal         `json:"revenue_by_region"`
	SatisfactionOverTime     []SatisfactionSeries `json:"satisfaction_over_time"`
	SatisfactionDistribution []HistogramBin       `json:"satisfaction_distribution"`
	Feedback                 Feedback             `json:"feedback"`
	CallsBySalesman          []GroupTotal         `json:"calls_by_salesman"`
	SalesShareByProduct      []GroupShare         `json:"sales_share_by_product"`
	RevenueShareByRegion     []GroupShare         `json:"revenue_share_by_region"`
}

// RawData é a visão filtrada sem modificações, na ordem original das colunas
type RawData struct {
	Columns []string   `json:"columns"`
	Rows    [][]string `json:"rows"`
}
