package dataset

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/sales-dashboard-api/internal/domain"
	"github.com/vfg2006/sales-dashboard-api/pkg/utils"
	"github.com/xuri/excelize/v2"
)

// XLSXLoader lê a base de uma planilha Excel
type XLSXLoader struct {
	path  string
	sheet string
}

// NewXLSXLoader cria o carregador. sheet vazio usa a primeira planilha da pasta de trabalho.
func NewXLSXLoader(path, sheet string) *XLSXLoader {
	return &XLSXLoader{path: path, sheet: sheet}
}

func (l *XLSXLoader) Load(ctx context.Context) (*domain.SalesTable, error) {
	f, err := excelize.OpenFile(l.path)
	if err != nil {
		return nil, errors.Wrapf(err, "erro ao abrir planilha %s", l.path)
	}
	defer func() {
		if err := f.Close(); err != nil {
			logrus.WithError(err).Warn("Erro ao fechar planilha")
		}
	}()

	sheet, err := l.resolveSheet(f)
	if err != nil {
		return nil, err
	}

	// Valores exibidos vão para Raw; valores brutos (datas como número serial) são usados na conversão
	display, err := f.GetRows(sheet)
	if err != nil {
		return nil, errors.Wrapf(err, "erro ao ler planilha %s", sheet)
	}
	parse, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, errors.Wrapf(err, "erro ao ler valores brutos da planilha %s", sheet)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if len(display) == 0 {
		return nil, errors.Wrapf(ErrEmptySource, "planilha %s", sheet)
	}

	date1904 := false
	if props, err := f.GetWorkbookProps(); err == nil && props.Date1904 != nil {
		date1904 = *props.Date1904
	}

	logrus.WithFields(logrus.Fields{
		"dataset_path":  l.path,
		"dataset_sheet": sheet,
		"rows":          len(display) - 1,
	}).Info("Planilha de vendas lida")

	var values [][]string
	if len(parse) > 1 {
		values = parse[1:]
	}

	table, err := buildTable(display[0], display[1:], values, excelCells(date1904))
	if err != nil {
		return nil, errors.Wrapf(err, "planilha %s", sheet)
	}

	return table, nil
}

func (l *XLSXLoader) resolveSheet(f *excelize.File) (string, error) {
	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return "", errors.Wrap(ErrEmptySource, "pasta de trabalho sem planilhas")
	}

	if l.sheet == "" {
		return sheets[0], nil
	}

	for _, name := range sheets {
		if strings.EqualFold(name, l.sheet) {
			return name, nil
		}
	}

	return "", errors.Errorf("planilha %q não encontrada. Disponíveis: %s", l.sheet, strings.Join(sheets, ", "))
}

// excelCells aceita datas como número serial do Excel ou como texto
func excelCells(date1904 bool) cellParser {
	return cellParser{
		date: func(value string) (time.Time, error) {
			if serial, err := strconv.ParseFloat(value, 64); err == nil {
				return excelize.ExcelDateToTime(serial, date1904)
			}
			return utils.ParseDate(value)
		},
		number: utils.ParseNumber,
	}
}
