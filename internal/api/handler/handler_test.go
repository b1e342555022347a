package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/sales-dashboard-api/internal/api/handler/router"
	"github.com/vfg2006/sales-dashboard-api/internal/domain"
	"github.com/vfg2006/sales-dashboard-api/internal/usecases/dashboarding"
	"github.com/vfg2006/sales-dashboard-api/internal/usecases/dashboarding/mocks"
	"github.com/vfg2006/sales-dashboard-api/pkg/apiErrors"
	"github.com/vfg2006/sales-dashboard-api/pkg/metrics"
	"go.uber.org/mock/gomock"
)

func stringPtr(s string) *string {
	return &s
}

func serve(rt http.Handler, method, target string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	rt.ServeHTTP(rec, httptest.NewRequest(method, target, nil))
	return rec
}

func TestParseFilters(t *testing.T) {
	tests := []struct {
		name   string
		target string
		want   domain.Filters
	}{
		{name: "Sem filtros", target: "/v1/dashboard", want: domain.Filters{}},
		{name: "Valores vazios", target: "/v1/dashboard?salesman=&product=&region=", want: domain.Filters{}},
		{
			name:   "Todos os filtros",
			target: "/v1/dashboard?salesman=Ana&product=Widget&region=West",
			want:   domain.Filters{Salesman: stringPtr("Ana"), Product: stringPtr("Widget"), Region: stringPtr("West")},
		},
		{name: "Valor com espaço", target: "/v1/dashboard?region=North+East", want: domain.Filters{Region: stringPtr("North East")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parseFilters(httptest.NewRequest(http.MethodGet, tt.target, nil))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFiltersQuery(t *testing.T) {
	assert.Equal(t, "", filtersQuery(domain.Filters{}))
	assert.Equal(t, "product=Widget&region=West", filtersQuery(domain.Filters{Product: stringPtr("Widget"), Region: stringPtr("West")}))
}

func TestDashboardRoutes(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockService := mocks.NewMockDashboarder(ctrl)
	rt := router.New(router.WithRoutes(Dashboard(mockService)...))

	tests := []struct {
		name       string
		target     string
		setup      func()
		wantStatus int
		validate   func(t *testing.T, rec *httptest.ResponseRecorder)
	}{
		{
			name:   "Opções de filtro",
			target: "/v1/dashboard/filters",
			setup: func() {
				mockService.EXPECT().GetFilterOptions().Return(&domain.FilterOptions{
					Salesmen: []string{"Ana"}, Products: []string{"Widget"}, Regions: []string{"West"},
				})
			},
			wantStatus: http.StatusOK,
			validate: func(t *testing.T, rec *httptest.ResponseRecorder) {
				assert.JSONEq(t, `{"salesmen":["Ana"],"products":["Widget"],"regions":["West"]}`, rec.Body.String())
			},
		},
		{
			name:   "Visão filtrada por região",
			target: "/v1/dashboard?region=West",
			setup: func() {
				mockService.EXPECT().
					GetDashboard(domain.Filters{Region: stringPtr("West")}).
					Return(&domain.DashboardView{
						Filters:  domain.Filters{Region: stringPtr("West")},
						RowCount: 0,
						Summary:  domain.Summary{AverageSatisfaction: domain.UndefinedMean},
					})
			},
			wantStatus: http.StatusOK,
			validate: func(t *testing.T, rec *httptest.ResponseRecorder) {
				var body map[string]any
				require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
				summary := body["summary"].(map[string]any)
				assert.Nil(t, summary["average_satisfaction"], "média indefinida vira null")
				assert.Equal(t, 0.0, summary["total_sales"])
				assert.Equal(t, map[string]any{"region": "West"}, body["filters"])
			},
		},
		{
			name:   "Dados brutos",
			target: "/v1/dashboard/raw?salesman=Ana",
			setup: func() {
				mockService.EXPECT().
					GetRawData(domain.Filters{Salesman: stringPtr("Ana")}).
					Return(&domain.RawData{Columns: []string{"Salesman", "Sales"}, Rows: [][]string{{"Ana", "10"}}})
			},
			wantStatus: http.StatusOK,
			validate: func(t *testing.T, rec *httptest.ResponseRecorder) {
				assert.JSONEq(t, `{"columns":["Salesman","Sales"],"rows":[["Ana","10"]]}`, rec.Body.String())
			},
		},
		{
			name:   "Gráfico gerado",
			target: "/v1/dashboard/charts/feedback?product=Widget",
			setup: func() {
				mockService.EXPECT().
					GetChart(domain.ChartFeedback, domain.Filters{Product: stringPtr("Widget")}).
					Return([]byte("\x89PNG"), nil)
			},
			wantStatus: http.StatusOK,
			validate: func(t *testing.T, rec *httptest.ResponseRecorder) {
				assert.Equal(t, "image/png", rec.Header().Get("Content-Type"))
				assert.Equal(t, "\x89PNG", rec.Body.String())
			},
		},
		{
			name:   "Gráfico desconhecido",
			target: "/v1/dashboard/charts/pizza",
			setup: func() {
				mockService.EXPECT().
					GetChart(domain.ChartName("pizza"), domain.Filters{}).
					Return(nil, dashboarding.NewDashboardError(dashboarding.ErrUnknownChart, apiErrors.ErrInvalidFormat, "pizza"))
			},
			wantStatus: http.StatusBadRequest,
			validate: func(t *testing.T, rec *httptest.ResponseRecorder) {
				assert.Contains(t, rec.Body.String(), apiErrors.ErrInvalidFormat)
			},
		},
		{
			name:   "Falha ao desenhar",
			target: "/v1/dashboard/charts/feedback",
			setup: func() {
				mockService.EXPECT().
					GetChart(domain.ChartFeedback, domain.Filters{}).
					Return(nil, dashboarding.NewDashboardError(dashboarding.ErrChartRender, apiErrors.ErrRendering, "falhou"))
			},
			wantStatus: http.StatusInternalServerError,
			validate: func(t *testing.T, rec *httptest.ResponseRecorder) {
				assert.Contains(t, rec.Body.String(), apiErrors.ErrRendering)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setup()

			rec := serve(rt, http.MethodGet, tt.target)

			assert.Equal(t, tt.wantStatus, rec.Code)
			tt.validate(t, rec)
		})
	}
}

func TestDashboardPage(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockService := mocks.NewMockDashboarder(ctrl)
	rt := router.New(router.WithRoutes(Page(mockService)...))

	filters := domain.Filters{Region: stringPtr("West")}
	mockService.EXPECT().GetFilterOptions().Return(&domain.FilterOptions{
		Salesmen: []string{"Ana"}, Products: []string{"Widget"}, Regions: []string{"West", "East"},
	}).Times(2)
	mockService.EXPECT().GetDashboard(filters).Return(&domain.DashboardView{
		Filters: filters,
		Summary: domain.Summary{TotalSales: 35, TotalRevenue: 310.5, AverageSatisfaction: 3.5},
	}).Times(2)
	mockService.EXPECT().GetRawData(filters).Return(&domain.RawData{
		Columns: []string{"Salesman", "Region"},
		Rows:    [][]string{{"Ana", "West"}},
	})

	t.Run("Sem dados brutos", func(t *testing.T) {
		rec := serve(rt, http.MethodGet, "/?region=West")

		require.Equal(t, http.StatusOK, rec.Code)
		body := rec.Body.String()
		assert.Contains(t, body, `<option value="West" selected>West</option>`)
		assert.Contains(t, body, "310.50")
		assert.Contains(t, body, "3.50")
		assert.Contains(t, body, "/v1/dashboard/charts/revenue-share-by-region?region=West")
		assert.Equal(t, len(domain.ChartPanels), strings.Count(body, "<img "))
		assert.NotContains(t, body, "<h1 class=\"section\">Raw Data</h1>")
	})

	t.Run("Com dados brutos", func(t *testing.T) {
		rec := serve(rt, http.MethodGet, "/?region=West&show_raw=1")

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "<h1 class=\"section\">Raw Data</h1>")
		assert.Contains(t, rec.Body.String(), "<td>Ana</td>")
	})
}

func TestBuildSections(t *testing.T) {
	sections := buildSections(domain.Filters{})

	require.Len(t, sections, 3)
	assert.Equal(t, "Sales Overview", sections[0].Title)
	assert.Equal(t, "Client Satisfaction and Feedback", sections[1].Title)
	assert.Equal(t, "Other Metrics", sections[2].Title)
	for _, section := range sections {
		assert.Len(t, section.Panels, 3)
	}
	assert.Equal(t, "/v1/dashboard/charts/sales-by-salesman", sections[0].Panels[0].URL)
}

func TestFormatters(t *testing.T) {
	assert.Equal(t, "65", formatNumber(65))
	assert.Equal(t, "12.35", formatNumber(12.345))
	assert.Equal(t, "N/A", formatMean(domain.UndefinedMean))
	assert.Equal(t, "3.20", formatMean(3.2))
}

type fakeReporter struct {
	started bool
	status  map[string]any
}

func (f *fakeReporter) TriggerManualRun() (string, bool) {
	if !f.started {
		return "", false
	}
	return "abc123", true
}

func (f *fakeReporter) GetStatus() map[string]any {
	return f.status
}

func TestReportRoutes(t *testing.T) {
	tests := []struct {
		name       string
		reporter   *fakeReporter
		method     string
		target     string
		wantStatus int
		wantBody   string
	}{
		{
			name:       "Execução manual iniciada",
			reporter:   &fakeReporter{started: true},
			method:     http.MethodPost,
			target:     "/v1/reports/summary/run",
			wantStatus: http.StatusAccepted,
			wantBody:   "abc123",
		},
		{
			name:       "Execução já em andamento",
			reporter:   &fakeReporter{started: false},
			method:     http.MethodPost,
			target:     "/v1/reports/summary/run",
			wantStatus: http.StatusConflict,
			wantBody:   apiErrors.ErrConflict,
		},
		{
			name:       "Status",
			reporter:   &fakeReporter{status: map[string]any{"report_running": false}},
			method:     http.MethodGet,
			target:     "/v1/reports/summary/status",
			wantStatus: http.StatusOK,
			wantBody:   `"report_running":false`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rt := router.New(router.WithRoutes(Reports(tt.reporter)...))

			rec := serve(rt, tt.method, tt.target)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.wantBody)
		})
	}
}

func TestMetricsRoute(t *testing.T) {
	recorder := metrics.NewRecorder()
	recorder.Observe("compute_view", 1500)
	rt := router.New(router.WithRoutes(Metrics(recorder)...))

	rec := serve(rt, http.MethodGet, "/v1/metrics/latency")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"compute_view"`)
}

func TestHealthcheck(t *testing.T) {
	rt := router.New(router.WithRoutes(Healthcheck()...))

	rec := serve(rt, http.MethodGet, "/healthcheck")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Body.String())
}
