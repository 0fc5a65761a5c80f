package correlation

import (
	"fmt"
	"math"
	"sort"

	"github.com/rs/zerolog"

	"github.com/wonny/argus/internal/contracts"
)

const (
	// MinObservations 상관 분석에 필요한 최소 수익률 관측치
	MinObservations = 30

	highCorrelationMin = 0.7
	lowCorrelationMax  = 0.3
)

// Engine computes pairwise return correlations over a symbol set.
// ⭐ SSOT: 상관/베타 계산은 여기서만
type Engine struct {
	log zerolog.Logger
}

// NewEngine 새 상관 엔진 생성
func NewEngine(log zerolog.Logger) *Engine {
	return &Engine{
		log: log.With().Str("component", "correlation.engine").Logger(),
	}
}

// Correlate computes the Pearson and Spearman matrices plus the
// redundant / diversifying pair lists.
// 모든 시계열은 동일 구간이어야 함 (짧은 쪽 기준 절단 없음)
func (e *Engine) Correlate(histories []*contracts.PriceHistory) (*contracts.CorrelationMatrix, *contracts.DiversificationScore, error) {
	if len(histories) < 2 {
		return nil, nil, fmt.Errorf("correlate: need at least 2 symbols, have %d: %w",
			len(histories), contracts.ErrInvalidInput)
	}

	symbols := make([]string, len(histories))
	returns := make([][]float64, len(histories))
	for i, h := range histories {
		if h == nil || h.Len() < MinObservations {
			got := 0
			sym := "?"
			if h != nil {
				got = h.Len()
				sym = h.Symbol
			}
			return nil, nil, fmt.Errorf("correlate %s: need %d observations, have %d: %w",
				sym, MinObservations, got, contracts.ErrInsufficientData)
		}
		symbols[i] = h.Symbol
		returns[i] = h.DailyReturns()
	}

	n := len(returns[0])
	for i := 1; i < len(returns); i++ {
		if len(returns[i]) != n {
			return nil, nil, fmt.Errorf("correlate %s: %d returns, expected %d: %w",
				symbols[i], len(returns[i]), n, contracts.ErrInvalidInput)
		}
	}

	matrix := &contracts.CorrelationMatrix{
		Symbols:  symbols,
		Pearson:  identityMatrix(len(symbols)),
		Spearman: identityMatrix(len(symbols)),
	}

	var pairSum float64
	var pairCount int

	for i := 0; i < len(returns); i++ {
		for j := i + 1; j < len(returns); j++ {
			pearson := Pearson(returns[i], returns[j])
			spearman := Spearman(returns[i], returns[j])

			matrix.Pearson[i][j] = pearson
			matrix.Pearson[j][i] = pearson
			matrix.Spearman[i][j] = spearman
			matrix.Spearman[j][i] = spearman

			pair := contracts.CorrelatedPair{
				SymbolA:     symbols[i],
				SymbolB:     symbols[j],
				Correlation: pearson,
			}
			if math.Abs(pearson) > highCorrelationMin {
				matrix.HighPairs = append(matrix.HighPairs, pair)
			} else if math.Abs(pearson) < lowCorrelationMax {
				matrix.LowPairs = append(matrix.LowPairs, pair)
			}

			pairSum += pearson
			pairCount++
		}
	}

	// Redundant pairs: strongest first. Diversifying pairs: weakest first.
	sort.Slice(matrix.HighPairs, func(a, b int) bool {
		return math.Abs(matrix.HighPairs[a].Correlation) > math.Abs(matrix.HighPairs[b].Correlation)
	})
	sort.Slice(matrix.LowPairs, func(a, b int) bool {
		return math.Abs(matrix.LowPairs[a].Correlation) < math.Abs(matrix.LowPairs[b].Correlation)
	})

	meanCorr := pairSum / float64(pairCount)
	score := scoreDiversification(meanCorr)

	e.log.Info().
		Int("symbols", len(symbols)).
		Int("high_pairs", len(matrix.HighPairs)).
		Int("low_pairs", len(matrix.LowPairs)).
		Float64("mean_correlation", meanCorr).
		Float64("diversification_score", score.Score).
		Msg("correlation analysis completed")

	return matrix, score, nil
}

// scoreDiversification maps mean pairwise correlation to 0~100
// score = clamp((1 − meanCorr)·100, 0, 100)
func scoreDiversification(meanCorr float64) *contracts.DiversificationScore {
	score := (1 - meanCorr) * 100
	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}

	recommendation := "Poorly diversified: holdings move together, consider adding uncorrelated assets"
	switch {
	case score >= 70:
		recommendation = "Well diversified: holdings are largely independent"
	case score >= 40:
		recommendation = "Moderately diversified: some overlapping exposure"
	}

	return &contracts.DiversificationScore{
		MeanCorrelation: meanCorr,
		Score:           score,
		Recommendation:  recommendation,
	}
}

func identityMatrix(n int) [][]float64 {
	m := make([][]float64, n)
	for i := range m {
		m[i] = make([]float64, n)
		m[i][i] = 1.0
	}
	return m
}
