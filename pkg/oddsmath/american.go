package oddsmath

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidOdds indica odds fora do domínio válido (americana 0, decimal <= 1,
// probabilidade fora de (0,1)). A validação pesada acontece na borda do
// pipeline; aqui a checagem é repetida porque o pacote também é usado em
// contextos de consulta (preview de Kelly na API) com dados parciais.
var ErrInvalidOdds = errors.New("invalid odds")

// AmericanToDecimal converte odd americana para decimal
// +150 -> 2.50, -150 -> 1.6667. Odd americana 0 não existe.
func AmericanToDecimal(american int) (float64, error) {
	if american == 0 {
		return 0, fmt.Errorf("%w: american odds cannot be 0", ErrInvalidOdds)
	}
	if american > 0 {
		return float64(american)/100.0 + 1.0, nil
	}
	return 100.0/float64(-american) + 1.0, nil
}

// DecimalToAmerican converte odd decimal para americana
// 2.50 -> +150, 1.6667 -> -150. Decimal <= 1 é indefinida (divisão por zero).
func DecimalToAmerican(decimal float64) (int, error) {
	if decimal <= 1.0 || math.IsInf(decimal, 0) || math.IsNaN(decimal) {
		return 0, fmt.Errorf("%w: decimal odds must be > 1", ErrInvalidOdds)
	}
	if decimal >= 2.0 {
		return int(math.Round((decimal - 1.0) * 100.0)), nil
	}
	return int(math.Round(-100.0 / (decimal - 1.0))), nil
}

// ImpliedProbability retorna a probabilidade implícita de uma odd decimal (1/decimal)
func ImpliedProbability(decimal float64) (float64, error) {
	if decimal <= 1.0 || math.IsInf(decimal, 0) || math.IsNaN(decimal) {
		return 0, fmt.Errorf("%w: decimal odds must be > 1", ErrInvalidOdds)
	}
	return 1.0 / decimal, nil
}

// AmericanToImpliedProbability converte odd americana direto para probabilidade implícita
func AmericanToImpliedProbability(american int) (float64, error) {
	d, err := AmericanToDecimal(american)
	if err != nil {
		return 0, err
	}
	return ImpliedProbability(d)
}

// ProbabilityToAmerican converte probabilidade justa para odd americana
// p > 0.5 cai no ramo de favorito (odd negativa), p <= 0.5 no de azarão
func ProbabilityToAmerican(p float64) (int, error) {
	if p <= 0 || p >= 1 || math.IsNaN(p) {
		return 0, fmt.Errorf("%w: probability must be in (0,1)", ErrInvalidOdds)
	}
	if p > 0.5 {
		return int(math.Round(-100.0 * p / (1.0 - p))), nil
	}
	return int(math.Round(100.0 * (1.0 - p) / p)), nil
}
