package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/radieske/value-bet-platform-poc/internal/odds-ingest/provider"
	"github.com/radieske/value-bet-platform-poc/internal/odds-ingest/publisher"
	"github.com/radieske/value-bet-platform-poc/internal/odds-ingest/service"
	"github.com/radieske/value-bet-platform-poc/internal/shared/config"
	"github.com/radieske/value-bet-platform-poc/internal/shared/logger"
)

func main() {
	cfg := config.Load()
	log, err := logger.New(cfg.ServiceName, cfg.Env)
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	if cfg.OddsAPIKey == "" {
		// sem credencial não há o que coletar; erro de configuração é fatal aqui
		log.Fatal("ODDS_API_KEY not set")
	}

	log.Info("Kafka brokers", zap.String("brokers", cfg.KafkaBrokers))
	log.Info("tracking sports", zap.Strings("sports", cfg.SportKeys))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Kafka Publisher
	pub := publisher.NewKafkaPublisher(
		strings.Split(cfg.KafkaBrokers, ","),
		cfg.TopicOddsEvents,
		log,
	)
	defer pub.Close()

	// Cliente HTTP do provedor de odds
	client := provider.NewClient(cfg.OddsAPIBaseURL, cfg.OddsAPIKey, cfg.Bookmakers(), log)

	// Métricas Prometheus por ciclo de coleta
	fetched := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "odds_ingest_events_published_total",
		Help: "eventos publicados por esporte",
	}, []string{"sport"})
	fetchErrors := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "odds_ingest_fetch_errors_total",
		Help: "falhas de coleta por esporte",
	}, []string{"sport"})
	prometheus.MustRegister(fetched, fetchErrors)

	// Poller com fan-out por esporte
	poller := &service.Poller{
		Log:       log,
		Client:    client,
		Publisher: pub,
		Sports:    cfg.SportKeys,
		Interval:  cfg.FetchInterval,
		OnFetched: func(sport string, count int) { fetched.WithLabelValues(sport).Add(float64(count)) },
		OnError:   func(sport string) { fetchErrors.WithLabelValues(sport).Inc() },
	}
	go poller.Run(ctx)

	// Metrics e health
	go func() {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.Handler())
		mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		})

		addr := fmt.Sprintf(":%s", cfg.MetricsPort)
		log.Info("metrics/health listening", zap.String("addr", addr))
		_ = http.ListenAndServe(addr, mux)
	}()

	// graceful shutdown
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig
	log.Info("shutdown signal received")
	cancel()
	time.Sleep(2 * time.Second)
}
