package main

import (
	"context"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	svcache "github.com/radieske/value-bet-platform-poc/internal/opportunity-service/cache"
	httpapi "github.com/radieske/value-bet-platform-poc/internal/opportunity-service/http"
	"github.com/radieske/value-bet-platform-poc/internal/opportunity-service/repo"
	"github.com/radieske/value-bet-platform-poc/internal/opportunity-service/ws"
	"github.com/radieske/value-bet-platform-poc/internal/shared/cache"
	"github.com/radieske/value-bet-platform-poc/internal/shared/config"
	"github.com/radieske/value-bet-platform-poc/internal/shared/db"
	"github.com/radieske/value-bet-platform-poc/internal/shared/logger"
	"github.com/radieske/value-bet-platform-poc/internal/shared/metrics"
)

func main() {
	// carrega config
	cfg := config.Load()

	// inicia logger
	log, err := logger.New(cfg.ServiceName, cfg.Env)
	if err != nil {
		panic(fmt.Errorf("logger init: %w", err))
	}
	defer log.Sync()

	log.Info("starting service", zap.String("service", cfg.ServiceName), zap.String("env", cfg.Env))

	// conecta com db Postgres
	pg, err := db.ConnectPostgres(cfg.PostgresDSN)
	if err != nil {
		log.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()
	log.Info("postgres connected")

	// conecta com cache Redis
	redisClient, err := cache.ConnectRedis(cfg.RedisAddr)
	if err != nil {
		log.Fatal("failed to connect redis", zap.Error(err))
	}
	defer redisClient.Close()
	log.Info("redis connected")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// API REST de consulta
	api := &httpapi.API{
		ReadRepo: &repo.ReadRepo{DB: pg},
		Cache:    svcache.New(redisClient),
	}

	// Hub WebSocket alimentado pelo Redis Pub/Sub (oportunidades novas do worker)
	hub := ws.NewHub(func(r *http.Request) bool { return true }) // origem liberada no PoC
	ws.StartRedisSubscriber(ctx, redisClient, cfg.RedisPubSubChannel, hub)

	mux := http.NewServeMux()
	mux.Handle("/", api.Router())
	mux.HandleFunc("/ws", hub.HandleWS)

	// sobe servidor de métricas e health em porta separada
	metrics.StartMetricsServer(cfg.MetricsPort, func(ctx context.Context) error {
		if err := pg.PingContext(ctx); err != nil {
			return fmt.Errorf("postgres: %w", err)
		}
		if err := redisClient.Ping(ctx).Err(); err != nil {
			return fmt.Errorf("redis: %w", err)
		}
		return nil
	})

	srv := &http.Server{
		Addr:    ":" + cfg.HTTPPort,
		Handler: mux,
	}

	log.Info("http server starting", zap.String("addr", srv.Addr))
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal("http server failed", zap.Error(err))
	}
}
