package screener

import "github.com/wonny/argus/internal/contracts"

// Rolling lookback for support/resistance (trading days)
const levelLookback = 20

// Expected-move multiplier per timeframe
var moveMultiplier = map[contracts.Timeframe]float64{
	contracts.TimeframeShort:  0.8,
	contracts.TimeframeMedium: 2.0,
	contracts.TimeframeLong:   5.0,
}

// levels holds the rolling support/resistance estimate
type levels struct {
	Support    float64
	Resistance float64
	Pivot      float64
}

// computeLevels derives support/resistance from the rolling 20-period
// high/low and the standard pivot = (high+low+lastClose)/3.
func computeLevels(history *contracts.PriceHistory) levels {
	if history == nil || history.Len() == 0 {
		return levels{}
	}

	points := history.Points
	if len(points) > levelLookback {
		points = points[len(points)-levelLookback:]
	}

	low := points[0].Low
	high := points[0].High
	for _, p := range points[1:] {
		if p.Low < low {
			low = p.Low
		}
		if p.High > high {
			high = p.High
		}
	}

	lastClose := points[len(points)-1].Close

	return levels{
		Support:    low,
		Resistance: high,
		Pivot:      (high + low + lastClose) / 3,
	}
}

// expectedMovePct scales the normalized ATR by the timeframe multiplier
// ATR 누락 시 0 (기대 변동폭 미산출)
func expectedMovePct(ind contracts.TechnicalIndicators, tf contracts.Timeframe) float64 {
	if ind.ATR == nil || ind.Price <= 0 {
		return 0
	}
	return *ind.ATR / ind.Price * 100 * moveMultiplier[tf]
}
