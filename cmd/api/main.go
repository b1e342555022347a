package main

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/sales-dashboard-api/infrastructure/charts"
	"github.com/vfg2006/sales-dashboard-api/infrastructure/database/postgres"
	"github.com/vfg2006/sales-dashboard-api/infrastructure/dataset"
	"github.com/vfg2006/sales-dashboard-api/internal/api"
	"github.com/vfg2006/sales-dashboard-api/internal/config"
	"github.com/vfg2006/sales-dashboard-api/internal/domain"
	"github.com/vfg2006/sales-dashboard-api/internal/scheduler"
	"github.com/vfg2006/sales-dashboard-api/internal/usecases/dashboarding"
	"github.com/vfg2006/sales-dashboard-api/pkg/metrics"
)

func main() {
	// Inicializa configuração de logs
	configureLogger()

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}

	// Define o nível de log com base na configuração
	logLevel, err := logrus.ParseLevel(cfg.App.LogLevel)
	if err != nil {
		logrus.Warnf("Nível de log inválido: %s, usando 'info'", cfg.App.LogLevel)
		logLevel = logrus.InfoLevel
	}
	logrus.SetLevel(logLevel)
	logrus.Infof("Nível de log configurado para: %s", logLevel)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// A conexão com o banco só existe quando a base vem do PostgreSQL
	var queryer postgres.Queryer
	if cfg.Dataset.Source == config.SourcePostgres {
		pgConn := pgconn(ctx, cfg.Database)
		defer pgConn.Close()
		queryer = pgConn
	}

	table := loadDataset(ctx, cfg, queryer)

	recorder := metrics.NewRecorder()
	renderer := charts.NewRenderer(cfg.Chart.Width, cfg.Chart.Height)
	dashboardService := dashboarding.NewService(table, renderer, recorder)

	summaryReportService := scheduler.NewSummaryReportService(dashboardService, recorder, cfg)
	if err := summaryReportService.Start(ctx); err != nil {
		logrus.WithError(err).Error("Erro ao iniciar o agendador do relatório resumido")
	} else {
		logrus.Info("Agendador do relatório resumido iniciado com sucesso")
	}

	server, err := api.New(cfg, dashboardService, summaryReportService, recorder)
	if err != nil {
		logrus.Fatal(err)
	}

	if err := server.Run(ctx); err != nil {
		logrus.Error(err)
	}
}

// configureLogger configura o formato e comportamento dos logs
func configureLogger() {
	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
	})
}

// loadDataset lê a base de vendas uma única vez; sem ela o painel não sobe
func loadDataset(ctx context.Context, cfg *config.Config, queryer postgres.Queryer) *domain.SalesTable {
	loader, err := dataset.NewLoader(cfg, queryer)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao configurar a leitura da base de vendas")
	}

	start := time.Now()
	table, err := loader.Load(ctx)
	if err != nil {
		logrus.WithError(err).WithFields(logrus.Fields{
			"dataset_source": cfg.Dataset.Source,
			"dataset_path":   cfg.Dataset.Path,
		}).Fatal("Erro ao carregar a base de vendas")
	}

	logrus.WithFields(logrus.Fields{
		"dataset_source": cfg.Dataset.Source,
		"rows":           table.Len(),
		"columns":        len(table.Columns),
		"duration_ms":    time.Since(start).Milliseconds(),
	}).Info("Base de vendas carregada")

	return table
}

// pgconn cria uma conexão com o banco de dados
func pgconn(ctx context.Context, dbConfig config.Database) *postgres.Connection {
	conn, err := postgres.NewConnection(ctx, dbConfig)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao conectar ao PostgreSQL")
	}

	err = conn.Ping(ctx)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao testar conexão com PostgreSQL")
	}

	logrus.Info("Conexão com PostgreSQL estabelecida com sucesso")
	return conn
}
