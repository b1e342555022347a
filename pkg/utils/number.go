package utils

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

func RoundWithTwoDecimalPlace(f float64) float64 {
	if f == 0 {
		return 0
	}

	return math.Round(f*100) / 100
}

// ParseNumber converte o texto de uma célula numérica. Célula vazia vira NaN (valor ausente).
func ParseNumber(value string) (float64, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return math.NaN(), nil
	}

	f, err := strconv.ParseFloat(strings.ReplaceAll(trimmed, ",", ""), 64)
	if err != nil {
		return 0, fmt.Errorf("valor numérico inválido: %q", value)
	}

	return f, nil
}
