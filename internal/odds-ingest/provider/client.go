package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/radieske/value-bet-platform-poc/pkg/contracts/events"
)

// Client consome o provedor de odds (formato The Odds API v4) via HTTP.
// A resposta é validada estruturalmente na borda: qualquer falha rejeita o
// payload inteiro com diagnóstico, nunca consumo parcial.
type Client struct {
	BaseURL    string
	APIKey     string
	Bookmakers []string // restringe o feed às casas de interesse
	HTTP       *http.Client
	Log        *zap.Logger
}

// NewClient cria um cliente com timeout padrão de 15s
func NewClient(baseURL, apiKey string, bookmakers []string, log *zap.Logger) *Client {
	return &Client{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		APIKey:     apiKey,
		Bookmakers: bookmakers,
		HTTP:       &http.Client{Timeout: 15 * time.Second},
		Log:        log,
	}
}

// FetchOdds busca os eventos com odds americanas de um esporte
// markets é a lista de mercados pedida ao provedor (ex: "h2h,spreads,totals")
func (c *Client) FetchOdds(ctx context.Context, sportKey, markets string) ([]events.RawEvent, error) {
	q := url.Values{}
	q.Set("apiKey", c.APIKey)
	q.Set("regions", "us")
	q.Set("markets", markets)
	q.Set("oddsFormat", "american")
	if len(c.Bookmakers) > 0 {
		q.Set("bookmakers", strings.Join(c.Bookmakers, ","))
	}

	endpoint := fmt.Sprintf("%s/v4/sports/%s/odds/?%s", c.BaseURL, url.PathEscape(sportKey), q.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch odds for %s: %w", sportKey, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("provider returned status %d for %s: %s", resp.StatusCode, sportKey, string(body))
	}

	var evs []events.RawEvent
	if err := json.NewDecoder(resp.Body).Decode(&evs); err != nil {
		return nil, fmt.Errorf("decode provider response for %s: %w", sportKey, err)
	}

	// Validação estrutural da resposta completa: tudo ou nada
	if err := events.ValidateAll(evs); err != nil {
		c.Log.Warn("provider response failed validation, rejecting batch",
			zap.String("sport", sportKey),
			zap.Error(err))
		return nil, err
	}

	return evs, nil
}

// MarketsFor decide os mercados pedidos ao provedor conforme o esporte
// Esportes de vencedor de temporada/torneio só cotam outrights
func MarketsFor(sportKey string) string {
	if strings.Contains(sportKey, "_winner") ||
		strings.Contains(sportKey, "futures") ||
		strings.HasPrefix(sportKey, "politics_") {
		return "outrights"
	}
	return "h2h,spreads,totals"
}
