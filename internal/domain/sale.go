// Package domain contém as estruturas de dados do domínio da aplicação
package domain

import "time"

// Colunas obrigatórias da planilha de vendas
const (
	ColumnSalesman           = "Salesman"
	ColumnProduct            = "Product"
	ColumnRegion             = "Region"
	ColumnSaleDate           = "Sale Date"
	ColumnSales              = "Sales"
	ColumnRevenue            = "Revenue"
	ColumnClientSatisfaction = "Client Satisfaction"
	ColumnCalls              = "Calls"
	ColumnPositive           = "Positive"
	ColumnNegative           = "Negative"
)

// RequiredColumns lista as colunas que toda fonte de dados precisa ter
var RequiredColumns = []string{
	ColumnSalesman,
	ColumnProduct,
	ColumnRegion,
	ColumnSaleDate,
	ColumnSales,
	ColumnRevenue,
	ColumnClientSatisfaction,
	ColumnCalls,
	ColumnPositive,
	ColumnNegative,
}

// SaleRecord representa uma linha da tabela de vendas.
// Valores numéricos ausentes na fonte são NaN e ignorados nas somas e médias.
type SaleRecord struct {
	Salesman           string
	Product            string
	Region             string
	SaleDate           time.Time
	Sales              float64
	Revenue            float64
	ClientSatisfaction float64
	Calls              float64
	Positive           float64
	Negative           float64

	// Raw guarda as células originais, alinhadas com SalesTable.Columns
	Raw []string
}

// SalesTable é a tabela carregada uma única vez na inicialização. Não deve ser alterada depois.
type SalesTable struct {
	Columns []string
	Records []SaleRecord
}

// Len retorna a quantidade de linhas da tabela
func (t *SalesTable) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Records)
}
