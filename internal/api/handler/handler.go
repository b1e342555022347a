package handler

import (
	"errors"
	"net/http"
	"net/url"

	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/sales-dashboard-api/internal/domain"
	"github.com/vfg2006/sales-dashboard-api/internal/usecases/dashboarding"
	"github.com/vfg2006/sales-dashboard-api/pkg/apiErrors"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Parâmetros de filtro aceitos na query string
const (
	queryParamSalesman = "salesman"
	queryParamProduct  = "product"
	queryParamRegion   = "region"
)

// parseFilters lê os filtros da query string. Valor vazio ou ausente significa "sem filtro".
func parseFilters(r *http.Request) domain.Filters {
	query := r.URL.Query()

	optional := func(key string) *string {
		value := query.Get(key)
		if value == "" {
			return nil
		}
		return &value
	}

	return domain.Filters{
		Salesman: optional(queryParamSalesman),
		Product:  optional(queryParamProduct),
		Region:   optional(queryParamRegion),
	}
}

// filtersQuery monta a query string equivalente aos filtros selecionados
func filtersQuery(filters domain.Filters) string {
	values := url.Values{}
	if filters.Salesman != nil {
		values.Set(queryParamSalesman, *filters.Salesman)
	}
	if filters.Product != nil {
		values.Set(queryParamProduct, *filters.Product)
	}
	if filters.Region != nil {
		values.Set(queryParamRegion, *filters.Region)
	}
	return values.Encode()
}

func writeJSON(w http.ResponseWriter, payload any) {
	writeJSONStatus(w, http.StatusOK, payload)
}

func writeJSONStatus(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logrus.WithError(err).Error("Erro ao enviar resposta")
	}
}

// writeServiceError traduz os erros do painel para o formato padronizado da API
func writeServiceError(w http.ResponseWriter, err error, message string) {
	var dashErr *dashboarding.DashboardError
	if errors.As(err, &dashErr) {
		apiErrors.WriteError(w, dashErr.Code, message, dashErr.Details)
		return
	}

	apiErrors.WriteError(w, apiErrors.ErrInternalServer, message, nil)
}
