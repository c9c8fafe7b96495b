package service

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/radieske/value-bet-platform-poc/internal/odds-ingest/provider"
	"github.com/radieske/value-bet-platform-poc/internal/odds-ingest/publisher"
)

// Poller coleta odds do provedor em ciclos e publica cada evento no Kafka.
// Cada esporte é buscado em uma goroutine própria; as coletas são
// independentes entre si e uma falha não interrompe as demais.
type Poller struct {
	Log       *zap.Logger
	Client    *provider.Client
	Publisher *publisher.KafkaPublisher
	Sports    []string
	Interval  time.Duration

	OnFetched func(sport string, count int) // métricas por ciclo
	OnError   func(sport string)            // métricas de falha
}

// Run executa uma coleta imediata e depois uma por intervalo até o contexto encerrar
func (p *Poller) Run(ctx context.Context) {
	p.fetchAll(ctx)

	ticker := time.NewTicker(p.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			p.Log.Info("context canceled, stopping poller")
			return
		case <-ticker.C:
			p.fetchAll(ctx)
		}
	}
}

// fetchAll dispara a coleta de todos os esportes em paralelo (fan-out por esporte)
func (p *Poller) fetchAll(ctx context.Context) {
	var wg sync.WaitGroup
	for _, sport := range p.Sports {
		wg.Add(1)
		go func(sport string) {
			defer wg.Done()
			p.fetchSport(ctx, sport)
		}(sport)
	}
	wg.Wait()
}

// fetchSport busca um esporte e publica os eventos válidos no tópico de odds
func (p *Poller) fetchSport(ctx context.Context, sport string) {
	markets := provider.MarketsFor(sport)

	evs, err := p.Client.FetchOdds(ctx, sport, markets)
	if err != nil {
		// resposta rejeitada (rede, status ou validação): o ciclo segue sem esse esporte
		p.Log.Warn("fetch failed", zap.String("sport", sport), zap.Error(err))
		if p.OnError != nil {
			p.OnError(sport)
		}
		return
	}

	published := 0
	for _, ev := range evs {
		if err := p.Publisher.Publish(ctx, ev); err != nil {
			p.Log.Error("failed to publish to Kafka",
				zap.String("sport", sport),
				zap.String("event_id", ev.ID),
				zap.Error(err))
			continue
		}
		published++
	}

	p.Log.Info("sport cycle done",
		zap.String("sport", sport),
		zap.String("markets", markets),
		zap.Int("events", len(evs)),
		zap.Int("published", published))
	if p.OnFetched != nil {
		p.OnFetched(sport, published)
	}
}
