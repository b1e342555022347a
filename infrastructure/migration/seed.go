// Package migration prepara a tabela de vendas usada pela fonte postgres
package migration

import (
	"context"
	"database/sql"
	"fmt"
	"math"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/sales-dashboard-api/infrastructure/dataset"
	"github.com/vfg2006/sales-dashboard-api/internal/domain"
)

// DefaultBatchSize é a quantidade de linhas por INSERT
const DefaultBatchSize = 500

// maxBindParameters é o limite de parâmetros por comando do protocolo do PostgreSQL
const maxBindParameters = 65535

// MaxBatchSize é o maior lote que cabe em um único INSERT
var MaxBatchSize = maxBindParameters / len(dataset.DatabaseColumns())

// effectiveBatchSize aplica o padrão para valores não positivos e o teto de parâmetros
func effectiveBatchSize(size int) int {
	if size <= 0 {
		return DefaultBatchSize
	}
	if size > MaxBatchSize {
		logrus.WithFields(logrus.Fields{
			"requested": size,
			"max":       MaxBatchSize,
		}).Warn("Tamanho de lote acima do limite do PostgreSQL, usando o máximo")
		return MaxBatchSize
	}
	return size
}

// CreateTableStatement devolve o DDL da tabela de vendas
func CreateTableStatement(table string) (string, error) {
	if err := dataset.ValidateTableName(table); err != nil {
		return "", err
	}

	return fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
	salesman TEXT,
	product TEXT,
	region TEXT,
	sale_date DATE,
	sales DOUBLE PRECISION,
	revenue DOUBLE PRECISION,
	client_satisfaction DOUBLE PRECISION,
	calls DOUBLE PRECISION,
	positive DOUBLE PRECISION,
	negative DOUBLE PRECISION
)`, table), nil
}

// InsertStatement monta um INSERT com várias linhas
func InsertStatement(table string, records []domain.SaleRecord) (string, []interface{}, error) {
	if err := dataset.ValidateTableName(table); err != nil {
		return "", nil, err
	}
	if len(records) == 0 {
		return "", nil, errors.New("nenhuma linha para inserir")
	}

	insert := squirrel.
		Insert(table).
		Columns(dataset.DatabaseColumns()...).
		PlaceholderFormat(squirrel.Dollar)

	for i := range records {
		insert = insert.Values(recordValues(&records[i])...)
	}

	return insert.ToSql()
}

// recordValues converte valores ausentes em NULL
func recordValues(r *domain.SaleRecord) []interface{} {
	var saleDate interface{}
	if !r.SaleDate.IsZero() {
		saleDate = r.SaleDate
	}

	return []interface{}{
		nullableText(r.Salesman),
		nullableText(r.Product),
		nullableText(r.Region),
		saleDate,
		nullableNumber(r.Sales),
		nullableNumber(r.Revenue),
		nullableNumber(r.ClientSatisfaction),
		nullableNumber(r.Calls),
		nullableNumber(r.Positive),
		nullableNumber(r.Negative),
	}
}

func nullableText(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}

func nullableNumber(f float64) interface{} {
	if math.IsNaN(f) {
		return nil
	}
	return f
}

// SeedSales recria o conteúdo da tabela a partir da base carregada, em uma única transação
func SeedSales(ctx context.Context, db *sql.DB, table string, sales *domain.SalesTable, batchSize int) (int, error) {
	batchSize = effectiveBatchSize(batchSize)

	ddl, err := CreateTableStatement(table)
	if err != nil {
		return 0, err
	}

	startTime := time.Now()

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return 0, errors.Wrap(err, "erro ao iniciar transação")
	}
	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				logrus.WithError(rbErr).Error("Erro ao reverter transação")
			}
		}
	}()

	if _, err = tx.ExecContext(ctx, ddl); err != nil {
		return 0, errors.Wrap(err, "erro ao criar tabela de vendas")
	}
	if _, err = tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
		return 0, errors.Wrap(err, "erro ao limpar tabela de vendas")
	}

	inserted := 0
	for _, batch := range batches(sales.Records, batchSize) {
		query, args, buildErr := InsertStatement(table, batch)
		if buildErr != nil {
			err = buildErr
			return 0, errors.Wrap(err, "erro ao construir insert")
		}
		if _, err = tx.ExecContext(ctx, query, args...); err != nil {
			return 0, errors.Wrapf(err, "erro ao inserir linhas %d a %d", inserted+1, inserted+len(batch))
		}

		inserted += len(batch)
		logrus.WithFields(logrus.Fields{
			"rows":  inserted,
			"total": len(sales.Records),
		}).Debug("Progresso da carga de vendas")
	}

	if err = tx.Commit(); err != nil {
		return 0, errors.Wrap(err, "erro ao confirmar transação")
	}

	logrus.WithFields(logrus.Fields{
		"dataset_table": table,
		"rows":          inserted,
		"duration_ms":   time.Since(startTime).Milliseconds(),
	}).Info("Carga da tabela de vendas concluída")

	return inserted, nil
}

func batches(records []domain.SaleRecord, size int) [][]domain.SaleRecord {
	var out [][]domain.SaleRecord
	for start := 0; start < len(records); start += size {
		end := start + size
		if end > len(records) {
			end = len(records)
		}
		out = append(out, records[start:end])
	}
	return out
}
