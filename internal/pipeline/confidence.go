package pipeline

import (
	"time"

	"github.com/radieske/value-bet-platform-poc/pkg/contracts/events"
)

// Heurística fixa de confiança. Os pesos e cortes são parte do contrato de
// saída do pipeline e não podem mudar sem quebrar paridade com o dashboard.
//
// Pontuação aditiva:
//   - tamanho do edge:       >10 -> +3 | >7 -> +2 | >4 -> +1 | >2 -> +0.5
//   - magnitude da odd:      [-150,150] -> +0.5 | além de ±300 -> -0.5
//   - tipo de mercado:       h2h/spreads/totals -> +1
//   - tempo até o evento:    <2h -> +1 | <6h -> +0.5
//
// Total >= 4.0 -> high, >= 2.0 -> medium, senão low

func classifyConfidence(edgePct float64, marketKey string, timeToEvent time.Duration, bookOdds int) events.Confidence {
	var score float64

	switch {
	case edgePct > 10:
		score += 3
	case edgePct > 7:
		score += 2
	case edgePct > 4:
		score += 1
	case edgePct > 2:
		score += 0.5
	}

	// mercados perto do pick'em são mais líquidos; extremos são mais finos
	switch {
	case bookOdds >= -150 && bookOdds <= 150:
		score += 0.5
	case bookOdds > 300 || bookOdds < -300:
		score -= 0.5
	}

	if isCoreMarket(marketKey) {
		score += 1
	}

	// edge que sobrevive perto do início do jogo é mais confiável
	switch {
	case timeToEvent < 2*time.Hour:
		score += 1
	case timeToEvent < 6*time.Hour:
		score += 0.5
	}

	switch {
	case score >= 4.0:
		return events.ConfidenceHigh
	case score >= 2.0:
		return events.ConfidenceMedium
	default:
		return events.ConfidenceLow
	}
}

// isCoreMarket indica os três mercados principais; props/derivativos/outrights ficam de fora
func isCoreMarket(key string) bool {
	switch key {
	case "h2h", "spreads", "totals":
		return true
	}
	return false
}
