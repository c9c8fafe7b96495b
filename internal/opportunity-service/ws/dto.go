package ws

import "github.com/radieske/value-bet-platform-poc/pkg/contracts/events"

// ClientMsg representa uma mensagem recebida do cliente WebSocket
// Type: subscribe | unsubscribe | ping
// Sport: obrigatório para subscribe/unsubscribe (ex: "NBA")
type ClientMsg struct {
	Type  string `json:"type"`  // subscribe | unsubscribe | ping
	Sport string `json:"sport"` // requerido em subscribe/unsubscribe
}

// OpportunityUpdate representa oportunidades recém-detectadas enviadas aos clientes
type OpportunityUpdate struct {
	Sport   string               `json:"sport"`
	Payload []events.Opportunity `json:"payload"`
}
