package oddsmath

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sumOf(ps []float64) float64 {
	var s float64
	for _, p := range ps {
		s += p
	}
	return s
}

func TestFairProbabilitiesMoneyline(t *testing.T) {
	// -150 / +130: implícitas 0.6 e 0.4348, overround ~3.48%
	p1, err := AmericanToImpliedProbability(-150)
	require.NoError(t, err)
	p2, err := AmericanToImpliedProbability(130)
	require.NoError(t, err)

	fair := FairProbabilities([]float64{p1, p2})
	require.Len(t, fair, 2)

	assert.InDelta(t, 1.0, sumOf(fair), 1e-6, "probabilidades justas somam 1")

	// ambas encolhem (o vig é retirado dos dois lados, proporcional a sqrt(p))
	assert.Less(t, fair[0], p1)
	assert.Less(t, fair[1], p2)

	// favorito segue favorito
	assert.Greater(t, fair[0], 0.5)
}

func TestFairProbabilitiesNoOverround(t *testing.T) {
	// soma exatamente 1: nada a ajustar, retorna como está
	in := []float64{0.5, 0.5}
	fair := FairProbabilities(in)
	assert.Equal(t, in, fair)

	// soma < 1 (feed sem margem ou malformado): idem
	in = []float64{0.4, 0.5}
	assert.Equal(t, in, FairProbabilities(in))
}

func TestFairProbabilitiesEmpty(t *testing.T) {
	assert.Nil(t, FairProbabilities(nil))
}

func TestFairProbabilitiesSumToOne(t *testing.T) {
	markets := [][]int{
		{-110, -110},
		{-150, 130},
		{-200, 170},
		{150, 220, 180},        // 3 vias
		{300, 450, 600, -120},  // outright pequeno
		{-10000, 2500},         // favorito extremo
	}
	for _, prices := range markets {
		implied := make([]float64, len(prices))
		for i, o := range prices {
			p, err := AmericanToImpliedProbability(o)
			require.NoError(t, err)
			implied[i] = p
		}
		if sumOf(implied) <= 1.0 {
			continue
		}
		fair := FairProbabilities(implied)
		assert.InDelta(t, 1.0, sumOf(fair), 1e-6, "mercado %v", prices)
		// o overround agregado sempre diminui
		assert.Less(t, sumOf(fair), sumOf(implied), "mercado %v", prices)
	}
}

func TestFairPricesMoneyline(t *testing.T) {
	fair := FairPrices([]int{-150, 130})
	require.Len(t, fair, 2)

	// favorito permanece com odd negativa, azarão com positiva
	assert.Equal(t, 0, fair[0].Index)
	assert.Negative(t, fair[0].Price)
	assert.Equal(t, 1, fair[1].Index)
	assert.Positive(t, fair[1].Price)

	// valores esperados do método de Shin para -150/+130
	assert.Equal(t, -139, fair[0].Price)
	assert.Equal(t, 139, fair[1].Price)
}

func TestFairPricesEvenMarket(t *testing.T) {
	// +100/+100: overround zero, curto-circuito devolve os preços originais
	fair := FairPrices([]int{100, 100})
	require.Len(t, fair, 2)
	assert.Equal(t, 100, fair[0].Price)
	assert.Equal(t, 100, fair[1].Price)
	assert.InDelta(t, 0.5, fair[0].Probability, 1e-9)
}

func TestFairPricesExcludesZeroPrice(t *testing.T) {
	// preço 0 exclui só aquele outcome; o resto do mercado segue
	fair := FairPrices([]int{-110, 0, -110})
	require.Len(t, fair, 2)
	assert.Equal(t, 0, fair[0].Index)
	assert.Equal(t, 2, fair[1].Index)
	for _, f := range fair {
		assert.False(t, math.IsNaN(f.Probability))
		assert.False(t, math.IsInf(f.Probability, 0))
	}
}

func TestFairPricesTooFewValidOutcomes(t *testing.T) {
	assert.Nil(t, FairPrices([]int{0, -110}))
	assert.Nil(t, FairPrices([]int{-110}))
	assert.Nil(t, FairPrices(nil))
}
