package pipeline

import (
	"strconv"
	"strings"
	"unicode"
)

// FormatAmerican formata uma odd americana com sinal explícito ("+130", "-150")
func FormatAmerican(odds int) string {
	if odds > 0 {
		return "+" + strconv.Itoa(odds)
	}
	return strconv.Itoa(odds)
}

// FormatMarketName traduz a chave do mercado para o nome exibido no dashboard
// Chaves desconhecidas viram title-case com underscores trocados por espaço
func FormatMarketName(key string) string {
	switch key {
	case "h2h":
		return "Moneyline"
	case "spreads":
		return "Spread"
	case "totals":
		return "Total"
	}
	return titleCase(strings.ReplaceAll(key, "_", " "))
}

// FormatSelection monta o rótulo da seleção anexando a linha quando presente
// Convenção: point já vem com sinal do provedor; o prefixo "+" é acrescentado
// na formatação para valores positivos ("Lakers -4.5", "Warriors +4.5")
func FormatSelection(name string, point *float64) string {
	if point == nil {
		return name
	}
	formatted := strconv.FormatFloat(*point, 'f', -1, 64)
	if *point > 0 {
		formatted = "+" + formatted
	}
	return name + " " + formatted
}

func titleCase(s string) string {
	fields := strings.Fields(s)
	for i, f := range fields {
		r := []rune(f)
		r[0] = unicode.ToUpper(r[0])
		fields[i] = string(r)
	}
	return strings.Join(fields, " ")
}
