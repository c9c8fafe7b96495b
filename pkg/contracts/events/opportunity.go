package events

import "time"

// Confidence classifica a qualidade de uma oportunidade detectada
type Confidence string

const (
	ConfidenceLow    Confidence = "low"
	ConfidenceMedium Confidence = "medium"
	ConfidenceHigh   Confidence = "high"
)

// StatusActive é o status inicial de toda oportunidade emitida pelo pipeline
const StatusActive = "active"

// Opportunity é o registro normalizado emitido pelo pipeline de transformação
// e persistido pelo worker. Campos formatados seguem o contrato do dashboard:
// Odds é o preço do bookmaker, BookOdds é o preço justo pós-remoção de vig,
// ambos como string americana com sinal ("+130", "-150").
type Opportunity struct {
	Sport          string     `json:"sport"`
	Match          string     `json:"match"` // "home vs. away"
	Market         string     `json:"market"`
	Selection      string     `json:"selection"`
	Odds           string     `json:"odds"`
	BookOdds       string     `json:"book_odds"`
	EdgePercentage float64    `json:"edge_percentage"` // arredondado em 2 casas
	ExpectedValue  string     `json:"expected_value"`  // "$x.xx" para a aposta de referência
	EventTime      time.Time  `json:"event_time"`
	Confidence     Confidence `json:"confidence"`
	Status         string     `json:"status"`
	Result         *string    `json:"result"`
}

// Key identifica a oportunidade para deduplicação e upsert
// O banco mantém unicidade em (match, market, selection)
func (o Opportunity) Key() string {
	return o.Match + "|" + o.Market + "|" + o.Selection
}
