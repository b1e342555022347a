package handler

import (
	"net/http"

	"github.com/vfg2006/sales-dashboard-api/internal/api/handler/router"
	"github.com/vfg2006/sales-dashboard-api/internal/usecases/dashboarding"
	"github.com/vfg2006/sales-dashboard-api/pkg/metrics"
)

func Healthcheck() []router.Route {
	return []router.Route{
		{
			Path:    "/healthcheck",
			Method:  http.MethodGet,
			Handler: HealthcheckHandler(),
		},
	}
}

func Page(service dashboarding.Dashboarder) []router.Route {
	return []router.Route{
		{
			Path:    "/",
			Method:  http.MethodGet,
			Handler: DashboardPage(service),
		},
	}
}

func Dashboard(service dashboarding.Dashboarder) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/dashboard",
			Method:  http.MethodGet,
			Handler: GetDashboard(service),
		},
		{
			Path:    "/v1/dashboard/filters",
			Method:  http.MethodGet,
			Handler: GetFilterOptions(service),
		},
		{
			Path:    "/v1/dashboard/raw",
			Method:  http.MethodGet,
			Handler: GetRawData(service),
		},
		{
			Path:    "/v1/dashboard/charts/:chart",
			Method:  http.MethodGet,
			Handler: GetChart(service),
		},
	}
}

func Metrics(recorder *metrics.Recorder) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/metrics/latency",
			Method:  http.MethodGet,
			Handler: GetLatency(recorder),
		},
	}
}

func Reports(reporter SummaryReporter) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/reports/summary/run",
			Method:  http.MethodPost,
			Handler: RunSummaryReport(reporter),
		},
		{
			Path:    "/v1/reports/summary/status",
			Method:  http.MethodGet,
			Handler: GetSummaryReportStatus(reporter),
		},
	}
}
