package dto

import (
	"time"

	"github.com/radieske/value-bet-platform-poc/pkg/contracts/events"
)

// OpportunityRow é a visão REST de uma oportunidade persistida
type OpportunityRow struct {
	ID             int64             `json:"id"`
	Sport          string            `json:"sport"`
	Match          string            `json:"match"`
	Market         string            `json:"market"`
	Selection      string            `json:"selection"`
	Odds           string            `json:"odds"`
	BookOdds       string            `json:"bookOdds"`
	EdgePercentage float64           `json:"edgePercentage"`
	ExpectedValue  string            `json:"expectedValue"`
	EventTime      time.Time         `json:"eventTime"`
	Confidence     events.Confidence `json:"confidence"`
	Status         string            `json:"status"`
	Result         *string           `json:"result"`
	UpdatedAt      time.Time         `json:"updatedAt"`
}

// OddsHistoryEntry é um ponto da série de movimento de odds de uma oportunidade
type OddsHistoryEntry struct {
	Odds       string    `json:"odds"`
	RecordedAt time.Time `json:"recordedAt"`
}

// Sport agrega a contagem de oportunidades ativas por esporte
type Sport struct {
	Sport string `json:"sport"`
	Count int    `json:"count"`
}

// KellyRequest é o payload do preview de dimensionamento de aposta
type KellyRequest struct {
	Bankroll float64 `json:"bankroll"`
	BookOdds int     `json:"bookOdds"`
	FairOdds int     `json:"fairOdds"`
}

// KellyResponse devolve o valor recomendado pelo critério de Kelly
type KellyResponse struct {
	Stake    float64 `json:"stake"`
	Fraction float64 `json:"fraction"`
}

// ResultUpdate é o payload de liquidação de uma oportunidade
type ResultUpdate struct {
	Result string `json:"result"` // "win" | "loss" | "push"
}
