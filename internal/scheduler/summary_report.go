package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/sales-dashboard-api/internal/config"
	"github.com/vfg2006/sales-dashboard-api/internal/domain"
	"github.com/vfg2006/sales-dashboard-api/internal/usecases/dashboarding"
	"github.com/vfg2006/sales-dashboard-api/pkg/metrics"
	"github.com/vfg2006/sales-dashboard-api/pkg/utils"
)

// SummaryReportService agenda o relatório com os indicadores do painel sem filtros
type SummaryReportService struct {
	scheduler  *gocron.Scheduler
	config     config.SummaryReport
	dashboard  dashboarding.Dashboarder
	recorder   *metrics.Recorder
	runRunning bool
	runMutex   sync.Mutex

	lastRunID          string
	lastRunStartedAt   time.Time
	lastRunCompletedAt time.Time
	lastSummary        *domain.Summary
	lastRowCount       int
	lastRunError       string
}

// NewSummaryReportService cria uma nova instância do serviço de relatório resumido
func NewSummaryReportService(
	dashboard dashboarding.Dashboarder,
	recorder *metrics.Recorder,
	appConfig *config.Config,
) *SummaryReportService {
	reportConfig := appConfig.SummaryReport
	if reportConfig.Timeout <= 0 {
		reportConfig.Timeout = 30 * time.Second
	}

	logrus.WithFields(logrus.Fields{
		"cron_schedule":  reportConfig.CronSchedule,
		"report_enabled": reportConfig.Enabled,
		"timeout":        reportConfig.Timeout.String(),
	}).Info("Configuração do relatório resumido carregada")

	return &SummaryReportService{
		scheduler: gocron.NewScheduler(time.Local),
		config:    reportConfig,
		dashboard: dashboard,
		recorder:  recorder,
	}
}

// Start inicia o agendador
func (s *SummaryReportService) Start(ctx context.Context) error {
	if !s.config.Enabled {
		logrus.Info("Relatório resumido desabilitado por configuração")
		return nil
	}

	logrus.WithField("cron", s.config.CronSchedule).Info("Iniciando agendador do relatório resumido")

	_, err := s.scheduler.Cron(s.config.CronSchedule).Do(func() {
		s.runSummaryReport(ctx, newRunID())
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar relatório resumido: %w", err)
	}

	s.scheduler.StartAsync()

	go func() {
		<-ctx.Done()
		logrus.Info("Parando agendador do relatório resumido")
		s.scheduler.Stop()
	}()

	return nil
}

// runSummaryReport calcula a visão sem filtros e registra os indicadores no log
func (s *SummaryReportService) runSummaryReport(ctx context.Context, runID string) {
	s.runMutex.Lock()
	if s.runRunning {
		s.runMutex.Unlock()
		logrus.Info("Relatório resumido já em andamento, ignorando")
		return
	}
	s.runRunning = true
	s.lastRunID = runID
	s.lastRunStartedAt = time.Now()
	s.runMutex.Unlock()

	defer func() {
		s.runMutex.Lock()
		s.runRunning = false
		s.lastRunCompletedAt = time.Now()
		s.runMutex.Unlock()
	}()

	logger := logrus.WithField("run_id", runID)
	logger.Info("Iniciando relatório resumido")

	ctx, cancel := context.WithTimeout(ctx, s.config.Timeout)
	defer cancel()

	done := make(chan *domain.DashboardView, 1)
	go func() {
		done <- s.dashboard.GetDashboard(domain.Filters{})
	}()

	select {
	case <-ctx.Done():
		logger.WithError(ctx.Err()).Error("Relatório resumido não concluído")
		s.setResult(nil, 0, ctx.Err())
		return
	case view := <-done:
		s.setResult(&view.Summary, view.RowCount, nil)

		fields := logrus.Fields{
			"rows":          view.RowCount,
			"total_sales":   utils.RoundWithTwoDecimalPlace(view.Summary.TotalSales),
			"total_revenue": utils.RoundWithTwoDecimalPlace(view.Summary.TotalRevenue),
		}
		if view.Summary.AverageSatisfaction.Defined() {
			fields["average_satisfaction"] = utils.RoundWithTwoDecimalPlace(float64(view.Summary.AverageSatisfaction))
		}
		if len(view.SalesBySalesman) > 0 {
			fields["top_salesman"] = view.SalesBySalesman[0].Key
		}
		if len(view.RevenueByRegion) > 0 {
			fields["top_region"] = view.RevenueByRegion[0].Key
		}
		logger.WithFields(fields).Info("Relatório resumido do painel")

		for _, snapshot := range s.recorder.Snapshot() {
			logger.WithFields(logrus.Fields{
				"operation": snapshot.Name,
				"count":     snapshot.Count,
				"p50_us":    snapshot.P50,
				"p99_us":    snapshot.P99,
			}).Info("Latência acumulada")
		}
	}
}

func newRunID() string {
	id, err := utils.GenerateID()
	if err != nil {
		logrus.WithError(err).Warn("Erro ao gerar identificador da execução")
		return time.Now().Format("20060102150405")
	}
	return id
}

func (s *SummaryReportService) setResult(summary *domain.Summary, rows int, err error) {
	s.runMutex.Lock()
	defer s.runMutex.Unlock()

	s.lastSummary = summary
	s.lastRowCount = rows
	s.lastRunError = ""
	if err != nil {
		s.lastRunError = err.Error()
	}
}

// TriggerManualRun inicia manualmente o relatório. Retorna false se já houver uma execução em andamento.
func (s *SummaryReportService) TriggerManualRun() (string, bool) {
	s.runMutex.Lock()
	if s.runRunning {
		s.runMutex.Unlock()
		logrus.Info("Relatório resumido já em andamento, ignorando solicitação manual")
		return "", false
	}
	s.runMutex.Unlock()

	runID := newRunID()
	logrus.WithField("run_id", runID).Info("Iniciando relatório resumido manual")
	go s.runSummaryReport(context.Background(), runID)

	return runID, true
}

// GetStatus retorna o status atual do relatório
func (s *SummaryReportService) GetStatus() map[string]any {
	s.runMutex.Lock()
	defer s.runMutex.Unlock()

	return map[string]any{
		"report_running":        s.runRunning,
		"report_cron":           s.config.CronSchedule,
		"report_enabled":        s.config.Enabled,
		"last_run_id":           s.lastRunID,
		"last_run_started_at":   s.lastRunStartedAt,
		"last_run_completed_at": s.lastRunCompletedAt,
		"last_row_count":        s.lastRowCount,
		"last_summary":          s.lastSummary,
		"last_run_error":        s.lastRunError,
	}
}
