package oddsmath

import "math"

// Remoção de vig pelo método de Shin: o overround é redistribuído em proporção
// à raiz quadrada da probabilidade de cada resultado, em vez do rateio
// proporcional simples. Isso corrige a assimetria favorito/azarão sem nenhum
// parâmetro ajustável.

// FairPrice é o preço justo de um outcome após a remoção do vig
// Index referencia a posição do outcome na lista original do mercado
type FairPrice struct {
	Index       int
	Price       int     // odd americana justa
	Probability float64 // probabilidade justa
}

// FairProbabilities aplica o método de Shin sobre probabilidades implícitas
// de um mercado completo (mutuamente exclusivas, soma > 1 por causa do vig)
//
// Passos:
//  1. overround = sum(p) - 1; se <= 0 não há ajuste possível/necessário
//  2. z = overround / sum(sqrt(p))
//  3. pFair = max(0, p - z*sqrt(p))
//  4. renormaliza para somar exatamente 1
//
// Mercados degenerados (soma de raízes 0, massa pós-piso 0) caem para
// normalização proporcional, ou divisão igualitária se a soma também for 0
func FairProbabilities(implied []float64) []float64 {
	n := len(implied)
	if n == 0 {
		return nil
	}

	var sum float64
	for _, p := range implied {
		sum += p
	}

	overround := sum - 1.0
	if overround <= 0 {
		// feed sem margem (ou malformado): devolve as probabilidades como estão
		out := make([]float64, n)
		copy(out, implied)
		return out
	}

	var sumSqrt float64
	for _, p := range implied {
		sumSqrt += math.Sqrt(p)
	}
	if sumSqrt == 0 {
		return normalize(implied)
	}

	z := overround / sumSqrt

	fair := make([]float64, n)
	var fairSum float64
	for i, p := range implied {
		f := p - z*math.Sqrt(p)
		if f < 0 {
			f = 0 // o ajuste nunca pode gerar massa negativa
		}
		fair[i] = f
		fairSum += f
	}

	if fairSum == 0 {
		// mercado degenerado: todo o ajuste zerou a massa
		return normalize(implied)
	}

	for i := range fair {
		fair[i] /= fairSum
	}
	return fair
}

// normalize rateia proporcionalmente, ou divide igualmente quando a soma é 0
func normalize(probs []float64) []float64 {
	n := len(probs)
	out := make([]float64, n)

	var sum float64
	for _, p := range probs {
		sum += p
	}
	if sum == 0 {
		for i := range out {
			out[i] = 1.0 / float64(n)
		}
		return out
	}
	for i, p := range probs {
		out[i] = p / sum
	}
	return out
}

// FairPrices remove o vig de um mercado cotado em odds americanas e devolve
// o preço justo por outcome. Política de casos degenerados:
//   - preço que não converte para decimal finita > 1 exclui só aquele outcome
//   - mercado com menos de 2 outcomes válidos é descartado inteiro (nil)
//   - probabilidade justa 0 ou >= 1 não tem preço: o outcome sai do resultado
func FairPrices(prices []int) []FairPrice {
	idx := make([]int, 0, len(prices))
	implied := make([]float64, 0, len(prices))
	for i, price := range prices {
		p, err := AmericanToImpliedProbability(price)
		if err != nil {
			continue
		}
		idx = append(idx, i)
		implied = append(implied, p)
	}

	if len(implied) < 2 {
		return nil
	}

	fair := FairProbabilities(implied)

	out := make([]FairPrice, 0, len(fair))
	for i, p := range fair {
		american, err := ProbabilityToAmerican(p)
		if err != nil {
			continue // p == 0 ou p >= 1: outcome sem preço válido
		}
		out = append(out, FairPrice{Index: idx[i], Price: american, Probability: p})
	}
	return out
}
