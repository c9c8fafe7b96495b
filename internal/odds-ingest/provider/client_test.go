package provider

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const validResponse = `[
  {
    "id": "evt-1",
    "sport_key": "basketball_nba",
    "sport_title": "NBA",
    "commence_time": "2025-03-10T23:00:00Z",
    "home_team": "Los Angeles Lakers",
    "away_team": "Golden State Warriors",
    "bookmakers": [
      {
        "key": "draftkings",
        "title": "DraftKings",
        "last_update": "2025-03-10T18:00:00Z",
        "markets": [
          {
            "key": "h2h",
            "last_update": "2025-03-10T18:00:00Z",
            "outcomes": [
              {"name": "Los Angeles Lakers", "price": -150},
              {"name": "Golden State Warriors", "price": 130}
            ]
          }
        ]
      }
    ]
  }
]`

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL, "test-key", []string{"draftkings"}, zap.NewNop())
}

func TestFetchOdds(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v4/sports/basketball_nba/odds/", r.URL.Path)
		q := r.URL.Query()
		assert.Equal(t, "test-key", q.Get("apiKey"))
		assert.Equal(t, "american", q.Get("oddsFormat"))
		assert.Equal(t, "h2h,spreads,totals", q.Get("markets"))
		assert.Equal(t, "draftkings", q.Get("bookmakers"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(validResponse))
	})

	evs, err := c.FetchOdds(context.Background(), "basketball_nba", "h2h,spreads,totals")
	require.NoError(t, err)
	require.Len(t, evs, 1)
	assert.Equal(t, "evt-1", evs[0].ID)
	assert.Equal(t, "Los Angeles Lakers", evs[0].HomeTeam)
	require.Len(t, evs[0].Bookmakers, 1)
	assert.Equal(t, -150, evs[0].Bookmakers[0].Markets[0].Outcomes[0].Price)
}

func TestFetchOddsNonOKStatus(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message":"invalid api key"}`, http.StatusUnauthorized)
	})

	evs, err := c.FetchOdds(context.Background(), "basketball_nba", "h2h")
	require.Error(t, err)
	assert.Nil(t, evs)
	assert.Contains(t, err.Error(), "status 401")
}

// payload que falha validação estrutural rejeita a resposta inteira
func TestFetchOddsInvalidSchema(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		// segundo evento sem home_team: nada do lote pode ser consumido
		_, _ = w.Write([]byte(`[
		  {"id":"a","sport_key":"basketball_nba","sport_title":"NBA",
		   "commence_time":"2025-03-10T23:00:00Z","home_team":"X","away_team":"Y","bookmakers":[]},
		  {"id":"b","sport_key":"basketball_nba","sport_title":"NBA",
		   "commence_time":"2025-03-10T23:00:00Z","away_team":"Y","bookmakers":[]}
		]`))
	})

	evs, err := c.FetchOdds(context.Background(), "basketball_nba", "h2h")
	require.Error(t, err)
	assert.Nil(t, evs)
}

func TestFetchOddsMalformedJSON(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{not json`))
	})

	_, err := c.FetchOdds(context.Background(), "basketball_nba", "h2h")
	require.Error(t, err)
}

func TestMarketsFor(t *testing.T) {
	assert.Equal(t, "h2h,spreads,totals", MarketsFor("basketball_nba"))
	assert.Equal(t, "h2h,spreads,totals", MarketsFor("baseball_mlb"))
	assert.Equal(t, "outrights", MarketsFor("basketball_nba_championship_winner"))
	assert.Equal(t, "outrights", MarketsFor("politics_us_presidential_election"))
	assert.Equal(t, "outrights", MarketsFor("golf_masters_tournament_futures"))
}
