package dataset

import (
	"context"
	"encoding/csv"
	"os"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/sales-dashboard-api/internal/domain"
)

// CSVLoader lê a base de um arquivo CSV com o mesmo cabeçalho da planilha
type CSVLoader struct {
	path string
}

func NewCSVLoader(path string) *CSVLoader {
	return &CSVLoader{path: path}
}

func (l *CSVLoader) Load(ctx context.Context) (*domain.SalesTable, error) {
	file, err := os.Open(l.path)
	if err != nil {
		return nil, errors.Wrapf(err, "erro ao abrir arquivo %s", l.path)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, errors.Wrapf(err, "erro ao ler CSV %s", l.path)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if len(records) == 0 {
		return nil, errors.Wrapf(ErrEmptySource, "arquivo %s", l.path)
	}

	logrus.WithFields(logrus.Fields{
		"dataset_path": l.path,
		"rows":         len(records) - 1,
	}).Info("Arquivo CSV de vendas lido")

	table, err := buildTable(records[0], records[1:], nil, textCells)
	if err != nil {
		return nil, errors.Wrapf(err, "arquivo %s", l.path)
	}

	return table, nil
}
