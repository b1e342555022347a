// Package dataset carrega a base de vendas a partir da fonte configurada
package dataset

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/sales-dashboard-api/infrastructure/database/postgres"
	"github.com/vfg2006/sales-dashboard-api/internal/config"
	"github.com/vfg2006/sales-dashboard-api/internal/domain"
	"github.com/vfg2006/sales-dashboard-api/pkg/utils"
)

var (
	ErrMissingColumn = errors.New("coluna obrigatória ausente")
	ErrInvalidCell   = errors.New("célula com valor inválido")
	ErrEmptySource   = errors.New("fonte de dados sem cabeçalho")
)

// Loader lê a fonte inteira para memória. É chamado uma única vez na inicialização.
type Loader interface {
	Load(ctx context.Context) (*domain.SalesTable, error)
}

// NewLoader escolhe a implementação de acordo com DATASET_SOURCE.
// conn só é usada pela fonte postgres e pode ser nil nas demais.
func NewLoader(cfg *config.Config, conn postgres.Queryer) (Loader, error) {
	switch cfg.Dataset.Source {
	case config.SourceXLSX:
		return NewXLSXLoader(cfg.Dataset.Path, cfg.Dataset.Sheet), nil
	case config.SourceCSV:
		return NewCSVLoader(cfg.Dataset.Path), nil
	case config.SourcePostgres:
		if conn == nil {
			return nil, fmt.Errorf("fonte postgres exige conexão com o banco")
		}
		return NewPostgresLoader(conn, cfg.Dataset.Table)
	default:
		return nil, fmt.Errorf("fonte de dados desconhecida: %s", cfg.Dataset.Source)
	}
}

// cellParser converte as células de data e número de uma fonte
type cellParser struct {
	date   func(value string) (time.Time, error)
	number func(value string) (float64, error)
}

var textCells = cellParser{
	date:   utils.ParseDate,
	number: utils.ParseNumber,
}

// buildTable monta a tabela a partir do cabeçalho e das linhas.
// display contém as células como exibidas na fonte (guardadas em Raw); parse contém
// os valores usados na conversão. Quando parse é nil, display é usado nos dois papéis.
func buildTable(header []string, display, parse [][]string, parser cellParser) (*domain.SalesTable, error) {
	if len(header) == 0 {
		return nil, ErrEmptySource
	}
	if parse == nil {
		parse = display
	}

	columns := make([]string, len(header))
	index := make(map[string]int, len(header))
	for i, name := range header {
		columns[i] = strings.TrimSpace(name)
		if _, exists := index[columns[i]]; !exists {
			index[columns[i]] = i
		}
	}

	var missing []string
	for _, required := range domain.RequiredColumns {
		if _, ok := index[required]; !ok {
			missing = append(missing, required)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrMissingColumn, strings.Join(missing, ", "))
	}

	table := &domain.SalesTable{
		Columns: columns,
		Records: make([]domain.SaleRecord, 0, len(display)),
	}

	for i := range display {
		raw := padRow(display[i], len(columns))
		var values []string
		if i < len(parse) {
			values = padRow(parse[i], len(columns))
		} else {
			values = raw
		}

		if isBlankRow(values) {
			continue
		}

		record, err := parseRecord(values, index, parser)
		if err != nil {
			// +2: linha 1 é o cabeçalho e as linhas da planilha começam em 1
			return nil, fmt.Errorf("linha %d: %w", i+2, err)
		}
		record.Raw = raw

		table.Records = append(table.Records, record)
	}

	logrus.WithFields(logrus.Fields{
		"columns": len(columns),
		"rows":    len(table.Records),
	}).Debug("Tabela de vendas montada")

	return table, nil
}

func parseRecord(values []string, index map[string]int, parser cellParser) (domain.SaleRecord, error) {
	cell := func(column string) string {
		return strings.TrimSpace(values[index[column]])
	}

	// Dimensões ficam exatamente como na fonte: "West" e "West " são chaves distintas
	record := domain.SaleRecord{
		Salesman: values[index[domain.ColumnSalesman]],
		Product:  values[index[domain.ColumnProduct]],
		Region:   values[index[domain.ColumnRegion]],
	}

	if value := cell(domain.ColumnSaleDate); value != "" {
		date, err := parser.date(value)
		if err != nil {
			return record, fmt.Errorf("%w: coluna %s: %v", ErrInvalidCell, domain.ColumnSaleDate, err)
		}
		record.SaleDate = date
	}

	numbers := []struct {
		column string
		target *float64
	}{
		{domain.ColumnSales, &record.Sales},
		{domain.ColumnRevenue, &record.Revenue},
		{domain.ColumnClientSatisfaction, &record.ClientSatisfaction},
		{domain.ColumnCalls, &record.Calls},
		{domain.ColumnPositive, &record.Positive},
		{domain.ColumnNegative, &record.Negative},
	}
	for _, n := range numbers {
		v, err := parser.number(cell(n.column))
		if err != nil {
			return record, fmt.Errorf("%w: coluna %s: %v", ErrInvalidCell, n.column, err)
		}
		*n.target = v
	}

	return record, nil
}

func padRow(row []string, size int) []string {
	out := make([]string, size)
	copy(out, row)
	return out
}

func isBlankRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
