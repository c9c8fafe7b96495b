package pipeline

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/radieske/value-bet-platform-poc/pkg/contracts/events"
)

func confidenceRank(c events.Confidence) int {
	switch c {
	case events.ConfidenceLow:
		return 0
	case events.ConfidenceMedium:
		return 1
	case events.ConfidenceHigh:
		return 2
	}
	return -1
}

func TestClassifyConfidenceTiers(t *testing.T) {
	cases := []struct {
		name        string
		edge        float64
		market      string
		timeToEvent time.Duration
		odds        int
		want        events.Confidence
	}{
		// 3 (edge) + 1 (core) + 1 (<2h) + 0.5 (odds líquidas) = 5.5
		{"edge forte perto do jogo", 11, "h2h", 1 * time.Hour, 100, events.ConfidenceHigh},
		// 2 + 1 + 0.5 + 0 = 3.5
		{"edge bom mercado core", 8, "spreads", 5 * time.Hour, 200, events.ConfidenceMedium},
		// 0.5 + 1 + 1 + 0.5 = 3.0
		{"edge pequeno mas jogo próximo", 2.5, "totals", 1 * time.Hour, -120, events.ConfidenceMedium},
		// 1 + 0 + 0 - 0.5 = 0.5
		{"prop de longshot longe do jogo", 5, "player_points", 24 * time.Hour, 400, events.ConfidenceLow},
		// 0 + 1 + 0 + 0.5 = 1.5
		{"sem edge", 0, "h2h", 24 * time.Hour, -110, events.ConfidenceLow},
		// 3 + 0 + 1 + 0.5 = 4.5
		{"outright com edge forte e jogo próximo", 10.5, "outrights", 90 * time.Minute, -150, events.ConfidenceHigh},
	}
	for _, c := range cases {
		got := classifyConfidence(c.edge, c.market, c.timeToEvent, c.odds)
		assert.Equal(t, c.want, got, c.name)
	}
}

// a classificação nunca pode cair quando só o edge cresce
func TestClassifyConfidenceMonotonicInEdge(t *testing.T) {
	prev := -1
	for edge := 0.0; edge <= 15.0; edge += 0.25 {
		got := classifyConfidence(edge, "h2h", 10*time.Hour, 100)
		rank := confidenceRank(got)
		assert.GreaterOrEqual(t, rank, prev, "edge %.2f", edge)
		prev = rank
	}
}

func TestClassifyConfidenceOddsMagnitude(t *testing.T) {
	base := classifyConfidence(7.5, "h2h", 90*time.Minute, 200) // 2+1+1 = 4.0 high
	assert.Equal(t, events.ConfidenceHigh, base)

	// longshot extremo perde meio ponto: 2+1+1-0.5 = 3.5 medium
	extreme := classifyConfidence(7.5, "h2h", 90*time.Minute, 450)
	assert.Equal(t, events.ConfidenceMedium, extreme)
}

func TestIsCoreMarket(t *testing.T) {
	for _, key := range []string{"h2h", "spreads", "totals"} {
		assert.True(t, isCoreMarket(key), key)
	}
	for _, key := range []string{"outrights", "player_points", "alternate_spreads", ""} {
		assert.False(t, isCoreMarket(key), key)
	}
}
