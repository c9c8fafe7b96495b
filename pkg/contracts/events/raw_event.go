package events

import (
	"fmt"
	"time"
)

// Payload bruto recebido do provedor de odds (formato The Odds API v4).
// Os preços seguem a convenção americana: positivo = retorno por 100 apostados,
// negativo = valor necessário para lucrar 100.

// RawOutcome representa um lado de um mercado cotado pelo bookmaker
type RawOutcome struct {
	Name  string   `json:"name"`
	Price int      `json:"price"`
	Point *float64 `json:"point,omitempty"` // linha de spread/total, quando existir (já com sinal)
}

// RawMarket representa um mercado de aposta (h2h, spreads, totals, outrights...)
type RawMarket struct {
	Key        string       `json:"key"`
	LastUpdate string       `json:"last_update"`
	Outcomes   []RawOutcome `json:"outcomes"`
}

// RawBookmaker agrupa os mercados cotados por uma casa de aposta
type RawBookmaker struct {
	Key        string      `json:"key"`
	Title      string      `json:"title"`
	LastUpdate string      `json:"last_update"`
	Markets    []RawMarket `json:"markets"`
}

// RawEvent representa um evento esportivo com as cotações por bookmaker
type RawEvent struct {
	ID           string         `json:"id"`
	SportKey     string         `json:"sport_key"`
	SportTitle   string         `json:"sport_title"`
	CommenceTime time.Time      `json:"commence_time"`
	HomeTeam     string         `json:"home_team"`
	AwayTeam     string         `json:"away_team"`
	Bookmakers   []RawBookmaker `json:"bookmakers"`
}

// Validate confere os campos obrigatórios de um evento do provedor
// A checagem é estrutural; degenerescências numéricas (preço 0 etc.)
// são tratadas outcome a outcome dentro do pipeline
func (e RawEvent) Validate() error {
	if e.ID == "" {
		return fmt.Errorf("event: missing id")
	}
	if e.SportKey == "" {
		return fmt.Errorf("event %s: missing sport_key", e.ID)
	}
	if e.HomeTeam == "" || e.AwayTeam == "" {
		return fmt.Errorf("event %s: missing home_team/away_team", e.ID)
	}
	if e.CommenceTime.IsZero() {
		return fmt.Errorf("event %s: missing commence_time", e.ID)
	}
	for _, b := range e.Bookmakers {
		if b.Key == "" {
			return fmt.Errorf("event %s: bookmaker without key", e.ID)
		}
		for _, m := range b.Markets {
			if m.Key == "" {
				return fmt.Errorf("event %s: market without key (bookmaker %s)", e.ID, b.Key)
			}
		}
	}
	return nil
}

// ValidateAll valida a resposta completa do provedor
// Qualquer falha rejeita a resposta inteira (nunca consumo parcial)
func ValidateAll(evs []RawEvent) error {
	for i, e := range evs {
		if err := e.Validate(); err != nil {
			return fmt.Errorf("invalid provider response at index %d: %w", i, err)
		}
	}
	return nil
}
