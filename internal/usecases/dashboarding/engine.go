package dashboarding

import (
	"math"
	"sort"
	"time"

	"github.com/vfg2006/sales-dashboard-api/internal/domain"
)

// HistogramBins é a quantidade de faixas da distribuição de satisfação
const HistogramBins = 20

// FilterRecords retorna a visão filtrada: as linhas que satisfazem todos os filtros
// selecionados (igualdade exata, combinados com AND). Sem filtros, retorna a própria tabela.
func FilterRecords(table *domain.SalesTable, filters domain.Filters) *domain.SalesTable {
	if table == nil {
		return &domain.SalesTable{}
	}
	if filters.IsEmpty() {
		return table
	}

	filtered := &domain.SalesTable{
		Columns: table.Columns,
		Records: make([]domain.SaleRecord, 0),
	}
	for i := range table.Records {
		if filters.Matches(&table.Records[i]) {
			filtered.Records = append(filtered.Records, table.Records[i])
		}
	}

	return filtered
}

// ComputeView calcula todos os agregados do painel sobre a visão filtrada.
// É uma função pura: não altera a tabela e não depende de estado externo.
func ComputeView(table *domain.SalesTable, filters domain.Filters) *domain.DashboardView {
	records := FilterRecords(table, filters).Records

	salesman := func(r *domain.SaleRecord) string { return r.Salesman }
	product := func(r *domain.SaleRecord) string { return r.Product }
	region := func(r *domain.SaleRecord) string { return r.Region }

	sales := func(r *domain.SaleRecord) float64 { return r.Sales }
	revenue := func(r *domain.SaleRecord) float64 { return r.Revenue }
	calls := func(r *domain.SaleRecord) float64 { return r.Calls }

	salesByProduct := sumBy(records, product, sales)
	revenueByRegion := sumBy(records, region, revenue)

	return &domain.DashboardView{
		Filters:  filters,
		RowCount: len(records),
		Summary: domain.Summary{
			TotalSales:          sum(records, sales),
			TotalRevenue:        sum(records, revenue),
			AverageSatisfaction: mean(records, func(r *domain.SaleRecord) float64 { return r.ClientSatisfaction }),
		},
		SalesBySalesman:          sortDescending(sumBy(records, salesman, sales)),
		SalesByProduct:           sortDescending(cloneTotals(salesByProduct)),
		RevenueByRegion:          sortDescending(cloneTotals(revenueByRegion)),
		SatisfactionOverTime:     satisfactionOverTime(records),
		SatisfactionDistribution: satisfactionDistribution(records),
		Feedback: domain.Feedback{
			Positive: sum(records, func(r *domain.SaleRecord) float64 { return r.Positive }),
			Negative: sum(records, func(r *domain.SaleRecord) float64 { return r.Negative }),
		},
		CallsBySalesman:      sortDescending(sumBy(records, salesman, calls)),
		SalesShareByProduct:  shares(salesByProduct),
		RevenueShareByRegion: shares(revenueByRegion),
	}
}

// ComputeFilterOptions lista os valores distintos de cada dimensão na ordem de primeira aparição
func ComputeFilterOptions(table *domain.SalesTable) *domain.FilterOptions {
	options := &domain.FilterOptions{
		Salesmen: []string{},
		Products: []string{},
		Regions:  []string{},
	}
	if table == nil {
		return options
	}

	salesmen, products, regions := distinct{}, distinct{}, distinct{}
	for i := range table.Records {
		options.Salesmen = salesmen.add(options.Salesmen, table.Records[i].Salesman)
		options.Products = products.add(options.Products, table.Records[i].Product)
		options.Regions = regions.add(options.Regions, table.Records[i].Region)
	}

	return options
}

type distinct map[string]struct{}

func (d distinct) add(values []string, value string) []string {
	if value == "" {
		return values
	}
	if _, ok := d[value]; ok {
		return values
	}
	d[value] = struct{}{}
	return append(values, value)
}

// ComputeRawData devolve a visão filtrada sem modificações, na ordem original das colunas
func ComputeRawData(table *domain.SalesTable, filters domain.Filters) *domain.RawData {
	filtered := FilterRecords(table, filters)

	raw := &domain.RawData{
		Columns: filtered.Columns,
		Rows:    make([][]string, 0, len(filtered.Records)),
	}
	if raw.Columns == nil {
		raw.Columns = []string{}
	}
	for i := range filtered.Records {
		raw.Rows = append(raw.Rows, filtered.Records[i].Raw)
	}

	return raw
}

// sum ignora valores ausentes; conjunto vazio soma zero
func sum(records []domain.SaleRecord, value func(*domain.SaleRecord) float64) float64 {
	total := 0.0
	for i := range records {
		if v := value(&records[i]); !math.IsNaN(v) {
			total += v
		}
	}
	return total
}

// mean ignora valores ausentes; sem valores, a média é indefinida
func mean(records []domain.SaleRecord, value func(*domain.SaleRecord) float64) domain.Mean {
	total, count := 0.0, 0
	for i := range records {
		if v := value(&records[i]); !math.IsNaN(v) {
			total += v
			count++
		}
	}
	if count == 0 {
		return domain.UndefinedMean
	}
	return domain.Mean(total / float64(count))
}

// sumBy soma a métrica por valor da dimensão, em ordem crescente de chave.
// Linhas com chave vazia não entram em nenhum grupo.
func sumBy(
	records []domain.SaleRecord,
	key func(*domain.SaleRecord) string,
	value func(*domain.SaleRecord) float64,
) []domain.GroupTotal {
	totals := make(map[string]float64)
	for i := range records {
		k := key(&records[i])
		if k == "" {
			continue
		}
		v := value(&records[i])
		if math.IsNaN(v) {
			v = 0
		}
		totals[k] += v
	}

	groups := make([]domain.GroupTotal, 0, len(totals))
	for k, v := range totals {
		groups = append(groups, domain.GroupTotal{Key: k, Value: v})
	}
	sort.Slice(groups, func(i, j int) bool {
		return groups[i].Key < groups[j].Key
	})

	return groups
}

// sortDescending ordena por valor decrescente; empates mantêm a ordem crescente de chave
func sortDescending(groups []domain.GroupTotal) []domain.GroupTotal {
	sort.SliceStable(groups, func(i, j int) bool {
		return groups[i].Value > groups[j].Value
	})
	return groups
}

func cloneTotals(groups []domain.GroupTotal) []domain.GroupTotal {
	out := make([]domain.GroupTotal, len(groups))
	copy(out, groups)
	return out
}

// shares calcula a participação percentual de cada grupo no total
func shares(groups []domain.GroupTotal) []domain.GroupShare {
	total := 0.0
	for _, g := range groups {
		total += g.Value
	}

	out := make([]domain.GroupShare, 0, len(groups))
	for _, g := range groups {
		percent := 0.0
		if total != 0 {
			percent = g.Value / total * 100
		}
		out = append(out, domain.GroupShare{Key: g.Key, Value: g.Value, Percent: percent})
	}

	return out
}

type dateSalesmanKey struct {
	date     time.Time
	salesman string
}

// satisfactionOverTime agrupa a satisfação média por (data, vendedor) e devolve uma série por vendedor
func satisfactionOverTime(records []domain.SaleRecord) []domain.SatisfactionSeries {
	type acc struct {
		total float64
		count int
	}

	groups := make(map[dateSalesmanKey]*acc)
	for i := range records {
		r := &records[i]
		if r.SaleDate.IsZero() || r.Salesman == "" {
			continue
		}

		key := dateSalesmanKey{date: r.SaleDate, salesman: r.Salesman}
		a, ok := groups[key]
		if !ok {
			a = &acc{}
			groups[key] = a
		}
		if !math.IsNaN(r.ClientSatisfaction) {
			a.total += r.ClientSatisfaction
			a.count++
		}
	}

	bySalesman := make(map[string][]domain.SatisfactionPoint)
	for key, a := range groups {
		point := domain.SatisfactionPoint{Date: key.date, Mean: domain.UndefinedMean}
		if a.count > 0 {
			point.Mean = domain.Mean(a.total / float64(a.count))
		}
		bySalesman[key.salesman] = append(bySalesman[key.salesman], point)
	}

	series := make([]domain.SatisfactionSeries, 0, len(bySalesman))
	for salesman, points := range bySalesman {
		sort.Slice(points, func(i, j int) bool {
			return points[i].Date.Before(points[j].Date)
		})
		series = append(series, domain.SatisfactionSeries{Salesman: salesman, Points: points})
	}
	sort.Slice(series, func(i, j int) bool {
		return series[i].Salesman < series[j].Salesman
	})

	return series
}

// satisfactionDistribution monta um histograma de faixas iguais entre o menor e o maior valor.
// Com um único valor distinto, a faixa vai de valor-0.5 a valor+0.5.
func satisfactionDistribution(records []domain.SaleRecord) []domain.HistogramBin {
	values := make([]float64, 0, len(records))
	for i := range records {
		if v := records[i].ClientSatisfaction; !math.IsNaN(v) {
			values = append(values, v)
		}
	}
	if len(values) == 0 {
		return []domain.HistogramBin{}
	}

	lower, upper := values[0], values[0]
	for _, v := range values[1:] {
		lower = math.Min(lower, v)
		upper = math.Max(upper, v)
	}
	if lower == upper {
		lower -= 0.5
		upper += 0.5
	}

	width := (upper - lower) / HistogramBins
	bins := make([]domain.HistogramBin, HistogramBins)
	for i := range bins {
		bins[i].Lower = lower + float64(i)*width
		bins[i].Upper = lower + float64(i+1)*width
	}
	bins[HistogramBins-1].Upper = upper

	for _, v := range values {
		idx := int((v - lower) / width)
		if idx >= HistogramBins {
			idx = HistogramBins - 1
		}
		if idx < 0 {
			idx = 0
		}
		bins[idx].Count++
	}

	return bins
}
