package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/radieske/value-bet-platform-poc/pkg/contracts/events"

	"github.com/radieske/value-bet-platform-poc/internal/opportunity-worker/cache"
	"github.com/radieske/value-bet-platform-poc/internal/opportunity-worker/consumer"
	"github.com/radieske/value-bet-platform-poc/internal/opportunity-worker/pubsub"
	"github.com/radieske/value-bet-platform-poc/internal/opportunity-worker/repository"
	"github.com/radieske/value-bet-platform-poc/internal/pipeline"
	sharedcache "github.com/radieske/value-bet-platform-poc/internal/shared/cache"
	"github.com/radieske/value-bet-platform-poc/internal/shared/config"
	"github.com/radieske/value-bet-platform-poc/internal/shared/db"
	sharedkafka "github.com/radieske/value-bet-platform-poc/internal/shared/kafka"
	"github.com/radieske/value-bet-platform-poc/internal/shared/logger"
)

func main() {
	cfg := config.Load()
	log, err := logger.New(cfg.ServiceName, cfg.Env)
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	// Inicializa dependências: Postgres e Redis
	pg, err := db.ConnectPostgres(cfg.PostgresDSN)
	if err != nil {
		log.Fatal("postgres connect", zap.Error(err))
	}
	defer pg.Close()

	redisClient, err := sharedcache.ConnectRedis(cfg.RedisAddr)
	if err != nil {
		log.Fatal("redis connect", zap.Error(err))
	}
	defer redisClient.Close()

	// Instancia cache Redis e repositório Postgres para oportunidades
	ttl := 60 * time.Second
	rcache := cache.NewRedisCache(redisClient, ttl)
	repo := repository.NewPostgresRepo(pg)

	// Configura o consumer Kafka (consumer group opportunity-worker)
	reader := sharedkafka.NewReader(cfg.KafkaBrokers, cfg.TopicOddsEvents, "opportunity-worker")
	defer reader.Close()

	// Writer da DLQ para mensagens que falham decodificação/validação
	dlq := sharedkafka.NewWriter(cfg.KafkaBrokers, cfg.TopicOddsEventsDLQ)
	defer dlq.Close()

	// Métricas Prometheus para monitoramento do processamento
	consumed := prometheus.NewCounter(prometheus.CounterOpts{Name: "opp_worker_messages_consumed_total", Help: "mensagens consumidas"})
	detected := prometheus.NewCounter(prometheus.CounterOpts{Name: "opp_worker_opportunities_detected_total", Help: "oportunidades emitidas pelo pipeline"})
	persist := prometheus.NewCounter(prometheus.CounterOpts{Name: "opp_worker_db_writes_total", Help: "escritas no banco (upsert+history)"})
	errorsBy := prometheus.NewCounterVec(prometheus.CounterOpts{Name: "opp_worker_errors_total", Help: "erros por estágio"}, []string{"stage"})
	skipsBy := prometheus.NewCounterVec(prometheus.CounterOpts{Name: "opp_worker_pipeline_skips_total", Help: "entradas puladas pelo pipeline por motivo"}, []string{"reason"})
	prometheus.MustRegister(consumed, detected, persist, errorsBy, skipsBy)

	// Pipeline de transformação (puro, sem I/O)
	pipe := pipeline.New(log, pipeline.Config{
		Bookmakers:       cfg.Bookmakers(),
		Stake:            cfg.StakeAmount,
		PositiveEdgeOnly: cfg.PositiveEdgeOnly,
	})
	pipe.OnSkip = func(reason string) { skipsBy.WithLabelValues(reason).Inc() }

	// Broadcaster para publicar oportunidades no Redis Pub/Sub (usado pelo opportunity-service/ws)
	broadcaster := pubsub.NewRedisBroadcaster(redisClient)

	// Instancia o worker, conectando callbacks de métricas e broadcast
	worker := &consumer.Worker{
		Log:        log,
		Reader:     reader,
		DLQ:        dlq,
		Pipeline:   pipe,
		Repo:       repo,
		Cache:      rcache,
		OnConsumed: func() { consumed.Inc() },
		OnDetected: func(n int) { detected.Add(float64(n)) },
		OnPersist:  func() { persist.Inc() },
		OnError:    func(stage string) { errorsBy.WithLabelValues(stage).Inc() },

		// Após sucesso de persistência, envia as novas oportunidades para o WS via Redis Pub/Sub
		OnAfterPersist: func(sport string, ops []events.Opportunity) {
			msg := pubsub.WSUpdate{Sport: sport, Payload: ops}
			b, _ := json.Marshal(msg)

			ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
			defer cancel()

			if err := broadcaster.Publish(ctx, cfg.RedisPubSubChannel, b); err != nil {
				log.Warn("ws broadcast publish failed", zap.Error(err))
			}
		},
	}

	// Servidor HTTP para métricas e health check
	go func() {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.Handler())
		mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
			ctx, cancel := context.WithTimeout(r.Context(), 500*time.Millisecond)
			defer cancel()
			if err := pg.PingContext(ctx); err != nil {
				http.Error(w, "pg", http.StatusServiceUnavailable)
				return
			}
			if err := redisClient.Ping(ctx).Err(); err != nil {
				http.Error(w, "redis", http.StatusServiceUnavailable)
				return
			}
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte("ok"))
		})
		addr := fmt.Sprintf(":%s", cfg.MetricsPort)
		log.Info("metrics/health listening", zap.String("addr", addr))
		_ = http.ListenAndServe(addr, mux)
	}()

	// Sinalização para shutdown gracioso (SIGINT/SIGTERM)
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	log.Info("opportunity-worker started")
	if err := worker.Run(ctx); err != nil && ctx.Err() == nil {
		log.Fatal("worker stopped with error", zap.Error(err))
	}
	log.Info("opportunity-worker stopped")
}
