package utils

import (
	"fmt"
	"strings"
	"time"
)

// dateLayouts são os formatos aceitos para datas em texto, na ordem de tentativa
var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	time.RFC3339,
	"01/02/2006",
	"02/01/2006",
	"01-02-06",
	"2006/01/02",
}

// ParseDate interpreta uma data em texto nos formatos mais comuns de planilhas.
// Formatos ambíguos (mm/dd x dd/mm) preferem mm/dd, como o Excel em inglês.
func ParseDate(dateStr string) (time.Time, error) {
	value := strings.TrimSpace(dateStr)
	if value == "" {
		return time.Time{}, fmt.Errorf("data vazia")
	}

	for _, layout := range dateLayouts {
		if date, err := time.Parse(layout, value); err == nil {
			return date, nil
		}
	}

	return time.Time{}, fmt.Errorf("formato de data não reconhecido: %q", dateStr)
}
