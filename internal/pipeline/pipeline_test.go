package pipeline

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/radieske/value-bet-platform-poc/pkg/contracts/events"
)

var testNow = time.Date(2025, 3, 10, 18, 0, 0, 0, time.UTC)

func ptr(v float64) *float64 { return &v }

// newTestPipeline fixa o relógio para tornar o termo tempo-até-evento determinístico
func newTestPipeline(cfg Config) *Pipeline {
	p := New(zap.NewNop(), cfg)
	p.Now = func() time.Time { return testNow }
	return p
}

func nbaEvent() events.RawEvent {
	return events.RawEvent{
		ID:           "evt-001",
		SportKey:     "basketball_nba",
		SportTitle:   "NBA",
		CommenceTime: testNow.Add(1 * time.Hour),
		HomeTeam:     "Los Angeles Lakers",
		AwayTeam:     "Golden State Warriors",
		Bookmakers: []events.RawBookmaker{
			{
				Key:   "draftkings",
				Title: "DraftKings",
				Markets: []events.RawMarket{
					{
						Key: "h2h",
						Outcomes: []events.RawOutcome{
							{Name: "Los Angeles Lakers", Price: -150},
							{Name: "Golden State Warriors", Price: 130},
						},
					},
					{
						Key: "spreads",
						Outcomes: []events.RawOutcome{
							{Name: "Lakers", Price: -110, Point: ptr(-4.5)},
							{Name: "Warriors", Price: -110, Point: ptr(4.5)},
						},
					},
				},
			},
		},
	}
}

func TestTransformMoneyline(t *testing.T) {
	p := newTestPipeline(Config{})
	out := p.Transform([]events.RawEvent{nbaEvent()})
	require.Len(t, out, 4) // 2 do moneyline + 2 do spread

	fav := out[0]
	assert.Equal(t, "NBA", fav.Sport)
	assert.Equal(t, "Los Angeles Lakers vs. Golden State Warriors", fav.Match)
	assert.Equal(t, "Moneyline", fav.Market)
	assert.Equal(t, "Los Angeles Lakers", fav.Selection)
	assert.Equal(t, "-150", fav.Odds)
	// Shin para -150/+130 encolhe os dois lados; favorito segue negativo
	assert.Equal(t, "-139", fav.BookOdds)
	assert.InDelta(t, -3.07, fav.EdgePercentage, 0.001)
	assert.Equal(t, "$-3.07", fav.ExpectedValue)
	assert.Equal(t, events.ConfidenceMedium, fav.Confidence)
	assert.Equal(t, "active", fav.Status)
	assert.Nil(t, fav.Result)

	dog := out[1]
	assert.Equal(t, "Golden State Warriors", dog.Selection)
	assert.Equal(t, "+130", dog.Odds)
	assert.Equal(t, "+139", dog.BookOdds)
	assert.InDelta(t, -3.77, dog.EdgePercentage, 0.001)
	assert.Equal(t, "$-3.77", dog.ExpectedValue)
}

func TestTransformSpreadSelectionLabels(t *testing.T) {
	p := newTestPipeline(Config{})
	out := p.Transform([]events.RawEvent{nbaEvent()})
	require.Len(t, out, 4)

	// linha vem assinada do provedor; "+" é acrescentado só para positivos
	assert.Equal(t, "Lakers -4.5", out[2].Selection)
	assert.Equal(t, "Warriors +4.5", out[3].Selection)
	assert.Equal(t, "Spread", out[2].Market)

	// -110/-110 devig para +100/+100
	assert.Equal(t, "+100", out[2].BookOdds)
	assert.InDelta(t, -4.55, out[2].EdgePercentage, 0.001)
}

func TestTransformEvenMarket(t *testing.T) {
	ev := nbaEvent()
	ev.Bookmakers[0].Markets = []events.RawMarket{{
		Key: "h2h",
		Outcomes: []events.RawOutcome{
			{Name: "Los Angeles Lakers", Price: 100},
			{Name: "Golden State Warriors", Price: 100},
		},
	}}

	p := newTestPipeline(Config{})
	out := p.Transform([]events.RawEvent{ev})
	require.Len(t, out, 2)

	// overround zero: preço justo igual ao bruto, edge e EV zerados
	for _, o := range out {
		assert.Equal(t, "+100", o.Odds)
		assert.Equal(t, "+100", o.BookOdds)
		assert.Equal(t, 0.0, o.EdgePercentage)
		assert.Equal(t, "$0.00", o.ExpectedValue)
	}
}

func TestTransformMissingBookmaker(t *testing.T) {
	other := nbaEvent()
	other.ID = "evt-002"
	other.Bookmakers[0].Key = "fanduel"

	p := newTestPipeline(Config{})
	out := p.Transform([]events.RawEvent{other, nbaEvent()})

	// evento sem o bookmaker alvo sai inteiro; o resto do lote segue intacto
	require.Len(t, out, 4)
	for _, o := range out {
		assert.Equal(t, "Los Angeles Lakers vs. Golden State Warriors", o.Match)
	}
}

func TestTransformMultiBookmaker(t *testing.T) {
	ev := nbaEvent()
	ev.Bookmakers[0].Key = "fanduel"

	p := newTestPipeline(Config{Bookmakers: []string{"draftkings", "fanduel"}})
	out := p.Transform([]events.RawEvent{ev})
	assert.Len(t, out, 4)
}

func TestTransformZeroPriceOutcome(t *testing.T) {
	ev := nbaEvent()
	ev.Bookmakers[0].Markets = []events.RawMarket{{
		Key: "h2h",
		Outcomes: []events.RawOutcome{
			{Name: "A", Price: -110},
			{Name: "B", Price: 0}, // preço inválido: excluído sem derrubar o mercado
			{Name: "C", Price: -110},
		},
	}}

	p := newTestPipeline(Config{})
	out := p.Transform([]events.RawEvent{ev})
	require.Len(t, out, 2)
	assert.Equal(t, "A", out[0].Selection)
	assert.Equal(t, "C", out[1].Selection)
}

func TestTransformMarketWithTooFewOutcomes(t *testing.T) {
	ev := nbaEvent()
	ev.Bookmakers[0].Markets = []events.RawMarket{{
		Key:      "h2h",
		Outcomes: []events.RawOutcome{{Name: "A", Price: -110}},
	}}

	p := newTestPipeline(Config{})
	skips := map[string]int{}
	p.OnSkip = func(stage string) { skips[stage]++ }

	out := p.Transform([]events.RawEvent{ev})
	assert.Empty(t, out)
	assert.Equal(t, 1, skips["market_degenerate"])
}

func TestTransformEdgeFilter(t *testing.T) {
	// com vig presente todo edge do próprio book é <= 0,
	// então o filtro de edge positivo zera a saída
	p := newTestPipeline(Config{})
	require.Len(t, p.Transform([]events.RawEvent{nbaEvent()}), 4)

	filtered := newTestPipeline(Config{PositiveEdgeOnly: true})
	assert.Empty(t, filtered.Transform([]events.RawEvent{nbaEvent()}))
}

func TestTransformIdempotent(t *testing.T) {
	p := newTestPipeline(Config{})
	in := []events.RawEvent{nbaEvent()}

	first := p.Transform(in)
	second := p.Transform(in)
	assert.Equal(t, first, second)
}

func TestTransformEmptyBatch(t *testing.T) {
	p := newTestPipeline(Config{})
	assert.Empty(t, p.Transform(nil))
}
