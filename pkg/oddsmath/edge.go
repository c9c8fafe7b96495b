package oddsmath

import (
	"fmt"
	"math"
)

// CalculateEdge retorna o edge percentual da odd do bookmaker contra a odd justa
// Edge = (fairProb - bookProb) / bookProb * 100
// Positivo significa que o book paga melhor que o preço justo (favorável ao apostador)
func CalculateEdge(bookOdds, fairOdds int) (float64, error) {
	bookProb, err := AmericanToImpliedProbability(bookOdds)
	if err != nil {
		return 0, fmt.Errorf("book odds: %w", err)
	}
	fairProb, err := AmericanToImpliedProbability(fairOdds)
	if err != nil {
		return 0, fmt.Errorf("fair odds: %w", err)
	}
	return (fairProb - bookProb) / bookProb * 100.0, nil
}

// CalculateEV calcula o valor esperado de uma aposta de valor stake na odd do book,
// assumindo a probabilidade implícita da odd justa como a probabilidade real
// EV = fairProb * ganhoPotencial - (1 - fairProb) * stake
func CalculateEV(stake float64, bookOdds, fairOdds int) (float64, error) {
	fairProb, err := AmericanToImpliedProbability(fairOdds)
	if err != nil {
		return 0, fmt.Errorf("fair odds: %w", err)
	}
	if bookOdds == 0 {
		return 0, fmt.Errorf("book odds: %w: american odds cannot be 0", ErrInvalidOdds)
	}

	var potentialWin float64
	if bookOdds > 0 {
		potentialWin = stake * float64(bookOdds) / 100.0
	} else {
		potentialWin = stake * 100.0 / float64(-bookOdds)
	}

	return fairProb*potentialWin - (1.0-fairProb)*stake, nil
}

// CalculateKelly retorna o valor de aposta recomendado pelo critério de Kelly
// Kelly = (b*p - q) / b, com b = oddDecimal-1, p = fairProb, q = 1-p
// O resultado nunca é negativo (sem aposta quando não há edge)
func CalculateKelly(bankroll float64, bookOdds, fairOdds int) (float64, error) {
	fairProb, err := AmericanToImpliedProbability(fairOdds)
	if err != nil {
		return 0, fmt.Errorf("fair odds: %w", err)
	}
	decimal, err := AmericanToDecimal(bookOdds)
	if err != nil {
		return 0, fmt.Errorf("book odds: %w", err)
	}

	b := decimal - 1.0
	p := fairProb
	q := 1.0 - p

	fraction := math.Max(0, (b*p-q)/b)
	return bankroll * fraction, nil
}
