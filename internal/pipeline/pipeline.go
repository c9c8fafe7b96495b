package pipeline

import (
	"fmt"
	"math"
	"time"

	"go.uber.org/zap"

	"github.com/radieske/value-bet-platform-poc/pkg/contracts/events"
	"github.com/radieske/value-bet-platform-poc/pkg/oddsmath"
)

// Pipeline transforma eventos brutos do provedor em oportunidades de aposta:
// seleciona o feed do bookmaker alvo, remove o vig de cada mercado, calcula
// edge/EV/confiança por outcome e emite os registros normalizados.
//
// É computação pura sobre memória: nenhum I/O, nenhum estado entre execuções.
// Entrada degenerada (evento/mercado/outcome malformado) é pulada com
// diagnóstico e o lote segue até o fim; nunca aborta nem propaga erro.

// Config define os parâmetros de transformação consumidos do ambiente
type Config struct {
	Bookmakers       []string // chaves aceitas; a primeira é o alvo padrão ("draftkings")
	Stake            float64  // aposta de referência para o cálculo de EV
	PositiveEdgeOnly bool     // default emite tudo; o filtro por edge > 0 é política do consumidor
}

// Pipeline executa a transformação. Now é injetável para que os testes
// fixem o tempo-até-evento usado na classificação de confiança
type Pipeline struct {
	Log    *zap.Logger
	Cfg    Config
	Now    func() time.Time
	OnSkip func(stage string) // métricas (counter por motivo de skip)
}

// New cria um pipeline com defaults (stake 100, draftkings, emite todo edge)
func New(log *zap.Logger, cfg Config) *Pipeline {
	if len(cfg.Bookmakers) == 0 {
		cfg.Bookmakers = []string{"draftkings"}
	}
	if cfg.Stake == 0 {
		cfg.Stake = 100
	}
	return &Pipeline{
		Log: log,
		Cfg: cfg,
		Now: time.Now,
	}
}

// Transform processa o lote de eventos e devolve as oportunidades na ordem
// de iteração eventos -> mercados -> outcomes (saída determinística)
func (p *Pipeline) Transform(evs []events.RawEvent) []events.Opportunity {
	now := p.Now()
	out := make([]events.Opportunity, 0, len(evs))

	for _, ev := range evs {
		book := p.findBookmaker(ev)
		if book == nil {
			// sem o bookmaker alvo não há resultado parcial: o evento inteiro sai
			p.skip("bookmaker_missing")
			p.Log.Debug("target bookmaker not present, skipping event",
				zap.String("event_id", ev.ID))
			continue
		}

		match := fmt.Sprintf("%s vs. %s", ev.HomeTeam, ev.AwayTeam)
		timeToEvent := ev.CommenceTime.Sub(now)

		for _, market := range book.Markets {
			prices := make([]int, len(market.Outcomes))
			for i, o := range market.Outcomes {
				prices[i] = o.Price
			}

			fair := oddsmath.FairPrices(prices)
			if len(fair) == 0 {
				p.skip("market_degenerate")
				p.Log.Debug("market has no priceable outcomes, skipping",
					zap.String("event_id", ev.ID),
					zap.String("market", market.Key))
				continue
			}

			for _, f := range fair {
				raw := market.Outcomes[f.Index]

				edge, err := oddsmath.CalculateEdge(raw.Price, f.Price)
				if err != nil {
					p.skip("outcome_invalid")
					p.Log.Debug("edge computation failed, skipping outcome",
						zap.String("event_id", ev.ID),
						zap.String("market", market.Key),
						zap.String("outcome", raw.Name),
						zap.Error(err))
					continue
				}
				if p.Cfg.PositiveEdgeOnly && edge <= 0 {
					continue
				}

				ev100, err := oddsmath.CalculateEV(p.Cfg.Stake, raw.Price, f.Price)
				if err != nil {
					p.skip("outcome_invalid")
					continue
				}

				out = append(out, events.Opportunity{
					Sport:          ev.SportTitle,
					Match:          match,
					Market:         FormatMarketName(market.Key),
					Selection:      FormatSelection(raw.Name, raw.Point),
					Odds:           FormatAmerican(raw.Price),
					BookOdds:       FormatAmerican(f.Price),
					EdgePercentage: round2(edge),
					ExpectedValue:  fmt.Sprintf("$%.2f", ev100),
					EventTime:      ev.CommenceTime,
					Confidence:     classifyConfidence(edge, market.Key, timeToEvent, raw.Price),
					Status:         events.StatusActive,
					Result:         nil,
				})
			}
		}
	}

	return out
}

// findBookmaker localiza o primeiro grupo de mercados de um bookmaker aceito
func (p *Pipeline) findBookmaker(ev events.RawEvent) *events.RawBookmaker {
	for _, key := range p.Cfg.Bookmakers {
		for i := range ev.Bookmakers {
			if ev.Bookmakers[i].Key == key {
				return &ev.Bookmakers[i]
			}
		}
	}
	return nil
}

func (p *Pipeline) skip(stage string) {
	if p.OnSkip != nil {
		p.OnSkip(stage)
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
