package topics

const (
	// Eventos brutos do provedor de odds
	OddsEvents = "odds_events"

	// Mensagens que falharam decodificação/validação no worker
	OddsEventsDLQ = "odds_events_dlq"
)
