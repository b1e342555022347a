package scheduler

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/sales-dashboard-api/internal/config"
	"github.com/vfg2006/sales-dashboard-api/internal/domain"
	"github.com/vfg2006/sales-dashboard-api/internal/usecases/dashboarding/mocks"
	"github.com/vfg2006/sales-dashboard-api/pkg/metrics"
	"go.uber.org/mock/gomock"
)

func newTestService(dashboard *mocks.MockDashboarder, timeout time.Duration) *SummaryReportService {
	return NewSummaryReportService(dashboard, metrics.NewRecorder(), &config.Config{
		SummaryReport: config.SummaryReport{
			CronSchedule: "0 7 * * *",
			Enabled:      false,
			Timeout:      timeout,
		},
	})
}

func TestSummaryReportService_runSummaryReport(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockDashboard := mocks.NewMockDashboarder(ctrl)

	tests := []struct {
		name     string
		setup    func()
		validate func(t *testing.T, status map[string]any)
	}{
		{
			name: "Registra os indicadores da visão sem filtros",
			setup: func() {
				mockDashboard.EXPECT().
					GetDashboard(domain.Filters{}).
					Return(&domain.DashboardView{
						RowCount: 3,
						Summary: domain.Summary{
							TotalSales:          30,
							TotalRevenue:        450,
							AverageSatisfaction: 4,
						},
						SalesBySalesman: []domain.GroupTotal{{Key: "Ana", Value: 20}, {Key: "Bruno", Value: 10}},
					})
			},
			validate: func(t *testing.T, status map[string]any) {
				assert.Equal(t, 3, status["last_row_count"])
				summary, ok := status["last_summary"].(*domain.Summary)
				require.True(t, ok)
				assert.Equal(t, 450.0, summary.TotalRevenue)
				assert.Equal(t, "", status["last_run_error"])
			},
		},
		{
			name: "Tabela vazia mantém média indefinida",
			setup: func() {
				mockDashboard.EXPECT().
					GetDashboard(domain.Filters{}).
					Return(&domain.DashboardView{
						Summary: domain.Summary{AverageSatisfaction: domain.UndefinedMean},
					})
			},
			validate: func(t *testing.T, status map[string]any) {
				assert.Equal(t, 0, status["last_row_count"])
				summary := status["last_summary"].(*domain.Summary)
				assert.True(t, math.IsNaN(float64(summary.AverageSatisfaction)))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := newTestService(mockDashboard, time.Second)
			tt.setup()

			service.runSummaryReport(context.Background(), "run-1")

			status := service.GetStatus()
			assert.Equal(t, false, status["report_running"])
			assert.Equal(t, "run-1", status["last_run_id"])
			tt.validate(t, status)
		})
	}
}

func TestSummaryReportService_Timeout(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockDashboard := mocks.NewMockDashboarder(ctrl)
	mockDashboard.EXPECT().
		GetDashboard(gomock.Any()).
		DoAndReturn(func(domain.Filters) *domain.DashboardView {
			time.Sleep(200 * time.Millisecond)
			return &domain.DashboardView{}
		})

	service := newTestService(mockDashboard, 10*time.Millisecond)

	service.runSummaryReport(context.Background(), "run-timeout")

	status := service.GetStatus()
	assert.Contains(t, status["last_run_error"], "deadline exceeded")
	assert.Nil(t, status["last_summary"])
}

func TestSummaryReportService_IgnoresConcurrentRun(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	// Nenhuma chamada ao painel é esperada
	mockDashboard := mocks.NewMockDashboarder(ctrl)
	service := newTestService(mockDashboard, time.Second)
	service.runRunning = true

	service.runSummaryReport(context.Background(), "run-2")
	runID, started := service.TriggerManualRun()

	assert.False(t, started)
	assert.Empty(t, runID)
	assert.Empty(t, service.GetStatus()["last_run_id"])
}

func TestSummaryReportService_TriggerManualRun(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockDashboard := mocks.NewMockDashboarder(ctrl)
	mockDashboard.EXPECT().
		GetDashboard(domain.Filters{}).
		Return(&domain.DashboardView{RowCount: 7})

	service := newTestService(mockDashboard, time.Second)

	runID, started := service.TriggerManualRun()

	require.True(t, started)
	assert.NotEmpty(t, runID)
	assert.Eventually(t, func() bool {
		status := service.GetStatus()
		return status["last_run_id"] == runID && status["report_running"] == false && status["last_row_count"] == 7
	}, time.Second, 10*time.Millisecond)
}

func TestSummaryReportService_StartDisabled(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	service := newTestService(mocks.NewMockDashboarder(ctrl), time.Second)

	assert.NoError(t, service.Start(context.Background()))
}

func TestSummaryReportService_StartInvalidCron(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	service := newTestService(mocks.NewMockDashboarder(ctrl), time.Second)
	service.config.Enabled = true
	service.config.CronSchedule = "não é cron"

	assert.Error(t, service.Start(context.Background()))
}
