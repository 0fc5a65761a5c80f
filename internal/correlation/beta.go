package correlation

import (
	"fmt"

	"github.com/wonny/argus/internal/contracts"
)

// betaBand maps a beta ceiling to a qualitative risk band
type betaBand struct {
	maxBeta float64
	label   string
}

// Ordered band table, lowest ceiling first
var betaBands = []betaBand{
	{0.0, "inverse"},
	{0.5, "defensive"},
	{1.0, "below market"},
	{1.5, "market-like"},
}

const betaElse = "aggressive"

// AssetBeta computes the asset's beta versus the benchmark series and
// maps it to its risk band.
func (e *Engine) AssetBeta(asset, benchmark *contracts.PriceHistory) (*contracts.BetaResult, error) {
	for _, h := range []*contracts.PriceHistory{asset, benchmark} {
		if h == nil || h.Len() < MinObservations {
			got := 0
			sym := "?"
			if h != nil {
				got = h.Len()
				sym = h.Symbol
			}
			return nil, fmt.Errorf("beta %s: need %d observations, have %d: %w",
				sym, MinObservations, got, contracts.ErrInsufficientData)
		}
	}

	assetReturns := asset.DailyReturns()
	benchReturns := benchmark.DailyReturns()
	if len(assetReturns) != len(benchReturns) {
		return nil, fmt.Errorf("beta %s: %d vs %d returns: %w",
			asset.Symbol, len(assetReturns), len(benchReturns), contracts.ErrInvalidInput)
	}

	beta := Beta(assetReturns, benchReturns)

	result := &contracts.BetaResult{
		Symbol:   asset.Symbol,
		Beta:     beta,
		RiskBand: resolveBetaBand(beta),
	}

	e.log.Debug().
		Str("symbol", asset.Symbol).
		Str("benchmark", benchmark.Symbol).
		Float64("beta", beta).
		Str("risk_band", result.RiskBand).
		Msg("beta computed")

	return result, nil
}

// resolveBetaBand maps beta to its band row
func resolveBetaBand(beta float64) string {
	for _, band := range betaBands {
		if beta < band.maxBeta {
			return band.label
		}
	}
	return betaElse
}
