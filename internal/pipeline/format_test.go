package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatAmerican(t *testing.T) {
	assert.Equal(t, "+130", FormatAmerican(130))
	assert.Equal(t, "-150", FormatAmerican(-150))
	assert.Equal(t, "+100", FormatAmerican(100))
}

func TestFormatMarketName(t *testing.T) {
	assert.Equal(t, "Moneyline", FormatMarketName("h2h"))
	assert.Equal(t, "Spread", FormatMarketName("spreads"))
	assert.Equal(t, "Total", FormatMarketName("totals"))

	// chave desconhecida cai no fallback title-case
	assert.Equal(t, "Outrights", FormatMarketName("outrights"))
	assert.Equal(t, "Player Points", FormatMarketName("player_points"))
	assert.Equal(t, "Alternate Spreads", FormatMarketName("alternate_spreads"))
}

func TestFormatSelection(t *testing.T) {
	assert.Equal(t, "Lakers", FormatSelection("Lakers", nil))
	assert.Equal(t, "Lakers -4.5", FormatSelection("Lakers", ptr(-4.5)))
	assert.Equal(t, "Warriors +4.5", FormatSelection("Warriors", ptr(4.5)))
	assert.Equal(t, "Over +49.5", FormatSelection("Over", ptr(49.5)))
	assert.Equal(t, "Under -49.5", FormatSelection("Under", ptr(-49.5)))
}
