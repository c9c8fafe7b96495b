package main

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/radieske/value-bet-platform-poc/internal/shared/config"
	"github.com/radieske/value-bet-platform-poc/internal/shared/logger"
	"github.com/radieske/value-bet-platform-poc/pkg/contracts/events"
)

// Simulador do provedor de odds para desenvolvimento local.
// Serve o mesmo formato do The Odds API v4 (/v4/sports/{sport}/odds/)
// com um catálogo fixo de partidas e preços com jitter a cada requisição.

var (
	// Métricas Prometheus para monitoramento das requisições servidas
	oddsRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "provider_sim_odds_requests_total",
		Help: "Requisições de odds servidas por esporte",
	}, []string{"sport"})
)

// matchup descreve uma partida fixa do catálogo simulado
type matchup struct {
	id       string
	home     string
	away     string
	homeML   int     // moneyline base do mandante
	awayML   int     // moneyline base do visitante
	spread   float64 // linha base de spread (referente ao mandante)
	total    float64 // linha base de total de pontos
	hoursOut int     // horas até o início
}

// Catálogo fixo por esporte para geração de odds
var catalog = map[string][]matchup{
	"basketball_nba": {
		{id: "SIM_NBA_001", home: "Los Angeles Lakers", away: "Golden State Warriors", homeML: -150, awayML: 130, spread: -3.5, total: 224.5, hoursOut: 5},
		{id: "SIM_NBA_002", home: "Boston Celtics", away: "Miami Heat", homeML: -200, awayML: 170, spread: -5.5, total: 210.5, hoursOut: 26},
	},
	"americanfootball_nfl": {
		{id: "SIM_NFL_001", home: "Kansas City Chiefs", away: "Buffalo Bills", homeML: -125, awayML: 105, spread: -1.5, total: 47.5, hoursOut: 49},
	},
	"baseball_mlb": {
		{id: "SIM_MLB_001", home: "New York Yankees", away: "Boston Red Sox", homeML: -140, awayML: 120, spread: -1.5, total: 8.5, hoursOut: 8},
	},
}

// jitter desloca uma odd americana em até ±15 pontos, evitando a faixa inválida (-100,100)
func jitter(odds int) int {
	v := odds + rand.Intn(31) - 15
	if v > -100 && v < 100 {
		if odds < 0 {
			return -100
		}
		return 100
	}
	return v
}

func ptr(v float64) *float64 { return &v }

// buildEvents monta o payload de eventos de um esporte com preços atualizados
func buildEvents(sportKey string) []events.RawEvent {
	titles := map[string]string{
		"basketball_nba":       "NBA",
		"americanfootball_nfl": "NFL",
		"baseball_mlb":         "MLB",
	}

	now := time.Now().UTC()
	lastUpdate := now.Format(time.RFC3339)

	var evs []events.RawEvent
	for _, m := range catalog[sportKey] {
		homeSpread := m.spread
		awaySpread := -m.spread

		markets := []events.RawMarket{
			{
				Key:        "h2h",
				LastUpdate: lastUpdate,
				Outcomes: []events.RawOutcome{
					{Name: m.home, Price: jitter(m.homeML)},
					{Name: m.away, Price: jitter(m.awayML)},
				},
			},
			{
				Key:        "spreads",
				LastUpdate: lastUpdate,
				Outcomes: []events.RawOutcome{
					{Name: m.home, Price: jitter(-110), Point: ptr(homeSpread)},
					{Name: m.away, Price: jitter(-110), Point: ptr(awaySpread)},
				},
			},
			{
				Key:        "totals",
				LastUpdate: lastUpdate,
				Outcomes: []events.RawOutcome{
					{Name: "Over", Price: jitter(-110), Point: ptr(m.total)},
					{Name: "Under", Price: jitter(-110), Point: ptr(m.total)},
				},
			},
		}

		evs = append(evs, events.RawEvent{
			ID:           m.id,
			SportKey:     sportKey,
			SportTitle:   titles[sportKey],
			CommenceTime: now.Add(time.Duration(m.hoursOut) * time.Hour),
			HomeTeam:     m.home,
			AwayTeam:     m.away,
			Bookmakers: []events.RawBookmaker{
				{
					Key:        "draftkings",
					Title:      "DraftKings",
					LastUpdate: lastUpdate,
					Markets:    markets,
				},
			},
		})
	}
	return evs
}

func main() {
	cfg := config.Load()
	log, err := logger.New(cfg.ServiceName, cfg.Env)
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	prometheus.MustRegister(oddsRequests)

	r := chi.NewRouter()
	r.Get("/v4/sports/{sport}/odds/", func(w http.ResponseWriter, req *http.Request) {
		sport := chi.URLParam(req, "sport")
		evs := buildEvents(sport)
		oddsRequests.WithLabelValues(sport).Inc()

		log.Debug("serving simulated odds",
			zap.String("sport", sport),
			zap.Int("events", len(evs)))

		// esporte desconhecido devolve lista vazia, como o provedor real
		if evs == nil {
			evs = []events.RawEvent{}
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(evs)
	})

	// Metrics e health em porta separada
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

	addr := ":" + cfg.HTTPPort
	log.Info("provider simulator listening", zap.String("addr", addr))
	if err := http.ListenAndServe(addr, r); err != nil {
		log.Fatal("http server failed", zap.Error(err))
	}
}
