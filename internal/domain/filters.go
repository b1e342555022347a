package domain

// Filters representa as seleções opcionais do painel. Campo nil significa "sem filtro".
type Filters struct {
	Salesman *string `json:"salesman,omitempty"`
	Product  *string `json:"product,omitempty"`
	Region   *string `json:"region,omitempty"`
}

// IsEmpty indica se nenhum filtro foi selecionado
func (f Filters) IsEmpty() bool {
	return f.Salesman == nil && f.Product == nil && f.Region == nil
}

// Matches verifica se o registro satisfaz todos os filtros selecionados
func (f Filters) Matches(record *SaleRecord) bool {
	if f.Salesman != nil && record.Salesman != *f.Salesman {
		return false
	}
	if f.Product != nil && record.Product != *f.Product {
		return false
	}
	if f.Region != nil && record.Region != *f.Region {
		return false
	}
	return true
}

// FilterOptions lista os valores distintos disponíveis para cada filtro, na ordem em que aparecem na fonte
type FilterOptions struct {
	Salesmen []string `json:"salesmen"`
	Products []string `json:"products"`
	Regions  []string `json:"regions"`
}
