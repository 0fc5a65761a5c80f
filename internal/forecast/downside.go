package forecast

import (
	"fmt"
	"sort"

	"github.com/wonny/argus/internal/contracts"
)

// sizingBand maps a VaR95 ceiling to a position-sizing suggestion.
// 정책 상수 테이블
type sizingBand struct {
	maxVaR95 float64
	label    string
}

var sizingBands = []sizingBand{
	{0.02, "full position"},
	{0.04, "three-quarter position"},
	{0.06, "half position"},
}

const sizingElse = "quarter position"

// DownsideRisk computes historical-simulation tail statistics over the
// daily-return series. 손실은 양수로 표현.
func (f *Forecaster) DownsideRisk(history *contracts.PriceHistory) (*contracts.DownsideRisk, error) {
	if history == nil || history.Len() < MinObservations {
		got := 0
		if history != nil {
			got = history.Len()
		}
		return nil, fmt.Errorf("downside risk %s: need %d observations, have %d: %w",
			symbolOf(history), MinObservations, got, contracts.ErrInsufficientData)
	}

	returns := history.DailyReturns()
	sorted := make([]float64, len(returns))
	copy(sorted, returns)
	sort.Float64s(sorted)

	risk := &contracts.DownsideRisk{
		Symbol:   history.Symbol,
		VaR95:    lossOf(percentile(sorted, 5)),
		VaR99:    lossOf(percentile(sorted, 1)),
		WorstDay: lossOf(sorted[0]),
	}

	// Bottom quartile of daily returns
	quartile := len(sorted) / 4
	if quartile == 0 {
		quartile = 1
	}
	risk.BottomQuartileMean = lossOf(mean(sorted[:quartile]))

	risk.PositionSizing = resolveSizing(risk.VaR95)

	f.log.Debug().
		Str("symbol", history.Symbol).
		Float64("var_95", risk.VaR95).
		Float64("var_99", risk.VaR99).
		Float64("worst_day", risk.WorstDay).
		Str("position_sizing", risk.PositionSizing).
		Msg("downside risk computed")

	return risk, nil
}

// lossOf converts a return to a positive loss (gains clamp to 0)
func lossOf(ret float64) float64 {
	if ret < 0 {
		return -ret
	}
	return 0
}

// resolveSizing maps VaR95 to its sizing band
func resolveSizing(var95 float64) string {
	for _, band := range sizingBands {
		if var95 < band.maxVaR95 {
			return band.label
		}
	}
	return sizingElse
}
