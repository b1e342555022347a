package main

import (
	"context"
	"flag"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/sales-dashboard-api/infrastructure/database/postgres"
	"github.com/vfg2006/sales-dashboard-api/infrastructure/dataset"
	"github.com/vfg2006/sales-dashboard-api/infrastructure/migration"
	"github.com/vfg2006/sales-dashboard-api/internal/config"
)

// Carrega a planilha (ou CSV) configurada em DATASET_PATH para a tabela DATASET_TABLE do PostgreSQL
func main() {
	var (
		source    = flag.String("source", config.SourceXLSX, "formato do arquivo de origem (xlsx ou csv)")
		batchSize = flag.Int("batch", migration.DefaultBatchSize, fmt.Sprintf("linhas por INSERT (máximo %d)", migration.MaxBatchSize))
	)
	flag.Parse()

	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
	})
	logrus.Info("Iniciando carga da tabela de vendas...")

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}

	ctx := context.Background()

	fileConfig := *cfg
	fileConfig.Dataset.Source = *source
	loader, err := dataset.NewLoader(&fileConfig, nil)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao configurar leitura do arquivo")
	}

	sales, err := loader.Load(ctx)
	if err != nil {
		logrus.WithError(err).WithField("dataset_path", cfg.Dataset.Path).Fatal("Erro ao ler o arquivo de vendas")
	}

	conn, err := postgres.NewConnection(ctx, cfg.Database)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao conectar ao PostgreSQL")
	}
	defer conn.Close()

	inserted, err := migration.SeedSales(ctx, conn.DB, cfg.Dataset.Table, sales, *batchSize)
	if err != nil {
		logrus.WithError(err).Fatal("Erro durante a carga da tabela de vendas")
	}

	logrus.WithFields(logrus.Fields{
		"rows":          inserted,
		"dataset_table": cfg.Dataset.Table,
	}).Info("Carga inicial concluída")
}
