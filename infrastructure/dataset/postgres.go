package dataset

import (
	"context"
	"database/sql"
	"math"
	"regexp"
	"strconv"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/sales-dashboard-api/infrastructure/database/postgres"
	"github.com/vfg2006/sales-dashboard-api/internal/domain"
)

var tableNamePattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*(\.[A-Za-z_][A-Za-z0-9_]*)?$`)

// postgresColumns mapeia as colunas do banco para as colunas da planilha, na ordem exibida
var postgresColumns = []struct {
	db    string
	sheet string
}{
	{"salesman", domain.ColumnSalesman},
	{"product", domain.ColumnProduct},
	{"region", domain.ColumnRegion},
	{"sale_date", domain.ColumnSaleDate},
	{"sales", domain.ColumnSales},
	{"revenue", domain.ColumnRevenue},
	{"client_satisfaction", domain.ColumnClientSatisfaction},
	{"calls", domain.ColumnCalls},
	{"positive", domain.ColumnPositive},
	{"negative", domain.ColumnNegative},
}

// PostgresLoader lê a base de uma tabela do PostgreSQL
type PostgresLoader struct {
	conn  postgres.Queryer
	table string
}

// ValidateTableName aceita apenas identificadores simples, com schema opcional
func ValidateTableName(table string) error {
	if !tableNamePattern.MatchString(table) {
		return errors.Errorf("nome de tabela inválido: %q", table)
	}
	return nil
}

// DatabaseColumns lista as colunas da tabela de vendas no banco, na ordem da planilha
func DatabaseColumns() []string {
	columns := make([]string, len(postgresColumns))
	for i, c := range postgresColumns {
		columns[i] = c.db
	}
	return columns
}

func NewPostgresLoader(conn postgres.Queryer, table string) (*PostgresLoader, error) {
	if err := ValidateTableName(table); err != nil {
		return nil, err
	}
	return &PostgresLoader{conn: conn, table: table}, nil
}

// buildQuery monta o SELECT preservando a ordem de inserção
func (l *PostgresLoader) buildQuery() (string, []interface{}, error) {
	return squirrel.
		Select(DatabaseColumns()...).
		From(l.table).
		OrderBy("ctid").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
}

func (l *PostgresLoader) Load(ctx context.Context) (*domain.SalesTable, error) {
	query, args, err := l.buildQuery()
	if err != nil {
		return nil, errors.Wrap(err, "erro ao construir a query")
	}

	rows, err := l.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao executar a query")
	}
	defer rows.Close()

	header := make([]string, len(postgresColumns))
	for i, c := range postgresColumns {
		header[i] = c.sheet
	}

	table := &domain.SalesTable{Columns: header}
	for rows.Next() {
		record, err := scanSaleRecord(rows)
		if err != nil {
			return nil, errors.Wrap(err, "erro ao escanear linha de vendas")
		}
		table.Records = append(table.Records, *record)
	}

	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "erro durante a iteração de linhas")
	}

	logrus.WithFields(logrus.Fields{
		"dataset_table": l.table,
		"rows":          len(table.Records),
	}).Info("Tabela de vendas lida do PostgreSQL")

	return table, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSaleRecord(row rowScanner) (*domain.SaleRecord, error) {
	var (
		salesman, product, region sql.NullString
		saleDate                  sql.NullTime
		numbers                   [6]sql.NullFloat64
	)

	err := row.Scan(
		&salesman, &product, &region, &saleDate,
		&numbers[0], &numbers[1], &numbers[2], &numbers[3], &numbers[4], &numbers[5],
	)
	if err != nil {
		return nil, err
	}

	record := &domain.SaleRecord{
		Salesman:           salesman.String,
		Product:            product.String,
		Region:             region.String,
		Sales:              nullableNumber(numbers[0]),
		Revenue:            nullableNumber(numbers[1]),
		ClientSatisfaction: nullableNumber(numbers[2]),
		Calls:              nullableNumber(numbers[3]),
		Positive:           nullableNumber(numbers[4]),
		Negative:           nullableNumber(numbers[5]),
	}
	if saleDate.Valid {
		record.SaleDate = saleDate.Time
	}

	record.Raw = []string{
		record.Salesman,
		record.Product,
		record.Region,
		formatDate(record.SaleDate),
		formatNumber(record.Sales),
		formatNumber(record.Revenue),
		formatNumber(record.ClientSatisfaction),
		formatNumber(record.Calls),
		formatNumber(record.Positive),
		formatNumber(record.Negative),
	}

	return record, nil
}

func nullableNumber(n sql.NullFloat64) float64 {
	if !n.Valid {
		return math.NaN()
	}
	return n.Float64
}

func formatNumber(f float64) string {
	if math.IsNaN(f) {
		return ""
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("2006-01-02")
}
