package contracts

// CorrelatedPair is one symbol pair with its correlation coefficient
type CorrelatedPair struct {
	SymbolA     string  `json:"symbol_a"`
	SymbolB     string  `json:"symbol_b"`
	Correlation float64 `json:"correlation"`
}

// CorrelationMatrix holds pairwise correlations for a symbol set.
// Invariants: diagonal == 1.0, matrix is symmetric.
type CorrelationMatrix struct {
	Symbols  []string    `json:"symbols"`
	Pearson  [][]float64 `json:"pearson"`
	Spearman [][]float64 `json:"spearman"`

	// |corr| > 0.7, sorted by magnitude descending
	HighPairs []CorrelatedPair `json:"high_pairs"`
	// |corr| < 0.3, sorted by magnitude ascending
	LowPairs []CorrelatedPair `json:"low_pairs"`
}

// DiversificationScore is the inverse of mean pairwise correlation
type DiversificationScore struct {
	MeanCorrelation float64 `json:"mean_correlation"`
	Score           float64 `json:"score"` // 0 ~ 100
	Recommendation  string  `json:"recommendation"`
}

// BetaResult maps an asset's beta versus the benchmark to a risk band
type BetaResult struct {
	Symbol   string  `json:"symbol"`
	Beta     float64 `json:"beta"`
	RiskBand string  `json:"risk_band"`
}
