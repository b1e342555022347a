package handler

import (
	"fmt"
	"html/template"
	"net/http"

	"github.com/vfg2006/sales-dashboard-api/internal/domain"
	"github.com/vfg2006/sales-dashboard-api/internal/usecases/dashboarding"
	"github.com/vfg2006/sales-dashboard-api/pkg/log"
)

var pageTemplate = template.Must(template.New("dashboard").Funcs(template.FuncMap{
	"number": formatNumber,
	"mean":   formatMean,
	"selected": func(current *string, option string) bool {
		return current != nil && *current == option
	},
}).Parse(`<!doctype html>
<html><head>
<meta charset="utf-8"><meta name="viewport" content="width=device-width,initial-scale=1">
<title>Sales Dashboard</title>
<style>
body{font-family:system-ui,Segoe UI,Roboto,Arial;margin:0;display:flex;color:#1f2430}
aside{width:240px;padding:20px;background:#f0f2f6;min-height:100vh;box-sizing:border-box}
main{flex:1;padding:20px 32px}
h1.section{text-align:center}
label{display:block;margin-top:12px;font-weight:600}
select{width:100%;padding:6px;margin-top:4px}
button{margin-top:16px;padding:8px 12px;border:none;border-radius:6px;background:#ff4b4b;color:#fff;cursor:pointer}
.cards,.panels{display:grid;grid-template-columns:repeat(3,1fr);gap:16px}
.card{border:1px solid #e6e9ef;border-radius:10px;padding:16px}
.card .value{font-size:2em}
.panels img{max-width:100%}
table{border-collapse:collapse;width:100%;font-size:.9em}
th,td{border-bottom:1px solid #e6e9ef;padding:6px;text-align:left}
</style>
</head><body>
<aside>
<h2>Filters</h2>
<form method="GET" action="/">
  <label for="salesman">Salesman</label>
  <select id="salesman" name="salesman">
    <option value="">None</option>
    {{range .Options.Salesmen}}<option value="{{.}}"{{if selected $.View.Filters.Salesman .}} selected{{end}}>{{.}}</option>{{end}}
  </select>
  <label for="product">Product</label>
  <select id="product" name="product">
    <option value="">None</option>
    {{range .Options.Products}}<option value="{{.}}"{{if selected $.View.Filters.Product .}} selected{{end}}>{{.}}</option>{{end}}
  </select>
  <label for="region">Region</label>
  <select id="region" name="region">
    <option value="">None</option>
    {{range .Options.Regions}}<option value="{{.}}"{{if selected $.View.Filters.Region .}} selected{{end}}>{{.}}</option>{{end}}
  </select>
  <label><input type="checkbox" name="show_raw" value="1"{{if .ShowRaw}} checked{{end}}> Show Raw Data</label>
  <button type="submit">Apply</button>
</form>
</aside>
<main>
<h1>Sales Dashboard</h1>

<h1 class="section">Summary Cards</h1>
<div class="cards">
  <div class="card"><div>Total Sales</div><div class="value">{{number .View.Summary.TotalSales}}</div></div>
  <div class="card"><div>Total Revenue</div><div class="value">{{number .View.Summary.TotalRevenue}}</div></div>
  <div class="card"><div>Average Satisfaction</div><div class="value">{{mean .View.Summary.AverageSatisfaction}}</div></div>
</div>

{{range .Sections}}
<h1 class="section">{{.Title}}</h1>
<div class="panels">
  {{range .Panels}}<div><h4>{{.Title}}</h4><img src="{{.URL}}" alt="{{.Title}}"></div>{{end}}
</div>
{{end}}

{{if .Raw}}
<h1 class="section">Raw Data</h1>
<table>
  <thead><tr>{{range .Raw.Columns}}<th>{{.}}</th>{{end}}</tr></thead>
  <tbody>{{range .Raw.Rows}}<tr>{{range .}}<td>{{.}}</td>{{end}}</tr>{{end}}</tbody>
</table>
{{end}}
</main>
</body></html>
`))

type pagePanel struct {
	Title string
	URL   string
}

type pageSection struct {
	Title  string
	Panels []pagePanel
}

type pageData struct {
	Options  *domain.FilterOptions
	View     *domain.DashboardView
	Sections []pageSection
	ShowRaw  bool
	Raw      *domain.RawData
}

// buildSections agrupa os painéis por seção, preservando a ordem de exibição
func buildSections(filters domain.Filters) []pageSection {
	query := filtersQuery(filters)

	sections := make([]pageSection, 0)
	for _, panel := range domain.ChartPanels {
		if len(sections) == 0 || sections[len(sections)-1].Title != panel.Section {
			sections = append(sections, pageSection{Title: panel.Section})
		}

		url := "/v1/dashboard/charts/" + string(panel.Name)
		if query != "" {
			url += "?" + query
		}

		current := &sections[len(sections)-1]
		current.Panels = append(current.Panels, pagePanel{Title: panel.Title, URL: url})
	}

	return sections
}

// DashboardPage desenha a página do painel com os filtros da query string
func DashboardPage(service dashboarding.Dashboarder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filters := parseFilters(r)

		data := pageData{
			Options:  service.GetFilterOptions(),
			View:     service.GetDashboard(filters),
			Sections: buildSections(filters),
			ShowRaw:  r.URL.Query().Get("show_raw") == "1",
		}
		if data.ShowRaw {
			data.Raw = service.GetRawData(filters)
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := pageTemplate.Execute(w, data); err != nil {
			log.ForContext(r.Context()).WithError(err).Error("Erro ao montar página do painel")
		}
	}
}

func formatNumber(value float64) string {
	if value == float64(int64(value)) {
		return fmt.Sprintf("%d", int64(value))
	}
	return fmt.Sprintf("%.2f", value)
}

func formatMean(value domain.Mean) string {
	if !value.Defined() {
		return "N/A"
	}
	return fmt.Sprintf("%.2f", float64(value))
}
