package consumer

import (
	"context"
	"encoding/json"
	"time"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/radieske/value-bet-platform-poc/internal/opportunity-worker/cache"
	"github.com/radieske/value-bet-platform-poc/internal/opportunity-worker/repository"
	"github.com/radieske/value-bet-platform-poc/internal/pipeline"
	"github.com/radieske/value-bet-platform-poc/pkg/contracts/events"
)

// Worker consome eventos brutos de odds do Kafka, roda o pipeline de
// transformação, deduplica e persiste as oportunidades resultantes.
// Callbacks de métricas podem ser usadas para monitoramento de cada etapa.
//
// Uma mensagem malformada nunca derruba o loop: vai para a DLQ (quando
// configurada) e o consumo segue.
type Worker struct {
	Log      *zap.Logger
	Reader   *kafka.Reader
	DLQ      *kafka.Writer // opcional
	Pipeline *pipeline.Pipeline
	Repo     *repository.PostgresRepo
	Cache    *cache.RedisCache

	OnConsumed func()       // métricas (counter++)
	OnDetected func(int)    // métricas: oportunidades emitidas pelo pipeline
	OnPersist  func()       // métricas
	OnError    func(string) // métricas por fase

	// Após persistência bem-sucedida, recebe as oportunidades novas do evento
	// (usado para broadcast via Redis Pub/Sub)
	OnAfterPersist func(sport string, ops []events.Opportunity)
}

// Run inicia o loop principal de consumo e processamento das mensagens Kafka
func (w *Worker) Run(ctx context.Context) error {
	for {
		m, err := w.Reader.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err() // encerra se o contexto for cancelado
			}
			w.Log.Warn("kafka read failed", zap.Error(err))
			if w.OnError != nil {
				w.OnError("read")
			}
			time.Sleep(500 * time.Millisecond)
			continue
		}

		if w.OnConsumed != nil {
			w.OnConsumed() // callback de métrica: mensagem consumida
		}

		var ev events.RawEvent
		if err := json.Unmarshal(m.Value, &ev); err != nil {
			w.Log.Warn("invalid message", zap.Error(err))
			w.toDLQ(ctx, m)
			if w.OnError != nil {
				w.OnError("decode")
			}
			continue
		}
		if err := ev.Validate(); err != nil {
			w.Log.Warn("event failed validation", zap.Error(err))
			w.toDLQ(ctx, m)
			if w.OnError != nil {
				w.OnError("validate")
			}
			continue
		}

		w.process(ctx, ev)
	}
}

// process transforma um evento e persiste as oportunidades derivadas
func (w *Worker) process(ctx context.Context, ev events.RawEvent) {
	ops := w.Pipeline.Transform([]events.RawEvent{ev})
	if w.OnDetected != nil {
		w.OnDetected(len(ops))
	}
	if len(ops) == 0 {
		w.Log.Debug("no opportunities for event", zap.String("event_id", ev.ID))
		return
	}

	// Deduplica dentro do lote pela tripla (match, market, selection);
	// a primeira ocorrência vence, como no upsert
	seen := make(map[string]struct{}, len(ops))
	unique := ops[:0]
	for _, o := range ops {
		k := o.Key()
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		unique = append(unique, o)
	}

	now := time.Now().UTC()
	persisted := make([]events.Opportunity, 0, len(unique))
	for _, o := range unique {
		id, err := w.Repo.UpsertOpportunity(ctx, o)
		if err != nil {
			w.Log.Warn("db upsert failed",
				zap.String("match", o.Match),
				zap.String("selection", o.Selection),
				zap.Error(err))
			if w.OnError != nil {
				w.OnError("db_upsert")
			}
			continue
		}
		// histórico de movimento de odds acompanha cada upsert
		if err := w.Repo.InsertOddsHistory(ctx, id, o.Odds, now); err != nil {
			w.Log.Warn("db insert history failed", zap.Error(err))
			if w.OnError != nil {
				w.OnError("db_history")
			}
			continue
		}
		persisted = append(persisted, o)
	}

	if len(persisted) == 0 {
		return
	}
	if w.OnPersist != nil {
		w.OnPersist() // callback de métrica: persistência concluída
	}

	// Atualiza o cache com as oportunidades correntes do evento
	if err := w.Cache.SetEvent(ctx, ev.ID, persisted); err != nil {
		w.Log.Warn("redis set failed", zap.Error(err))
		if w.OnError != nil {
			w.OnError("cache")
		}
		// não bloqueia o broadcast se falhar o cache
	}

	if w.OnAfterPersist != nil {
		w.OnAfterPersist(ev.SportTitle, persisted)
	}
}

// toDLQ encaminha a mensagem original para a fila de descarte, quando configurada
func (w *Worker) toDLQ(ctx context.Context, m kafka.Message) {
	if w.DLQ == nil {
		return
	}
	dctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	err := w.DLQ.WriteMessages(dctx, kafka.Message{Key: m.Key, Value: m.Value, Time: time.Now()})
	if err != nil {
		w.Log.Warn("dlq write failed", zap.Error(err))
	}
}
