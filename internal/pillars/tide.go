package pillars

import "github.com/wonny/argus/internal/contracts"

// Volatility regime thresholds (VIX level)
const (
	lowVolatilityMax      = 15.0
	moderateVolatilityMax = 25.0
)

// Benchmark daily-change thresholds (%)
const (
	bullishChangeMin = 0.5
	bearishChangeMax = -0.5
)

// Tide point scale per macro label
var tidePoints = map[string]float64{
	"bullish": 80,
	"neutral": 50,
	"bearish": 20,
}

// Volatility penalty applied to the tide points
var volatilityPenalty = map[string]float64{
	"low":      0,
	"moderate": 5,
	"high":     15,
}

// scoreTide classifies the macro regime from the volatility index and
// the benchmark's daily change.
// 입력 누락 시 중립 처리 (50 기준, 저변동 가정 없음)
func scoreTide(macro contracts.MacroSnapshot) (contracts.TideResult, []string) {
	var degraded []string

	volRegime := "moderate"
	if macro.VolatilityIndex == nil {
		degraded = append(degraded, "volatility_index")
	} else {
		switch vix := *macro.VolatilityIndex; {
		case vix < lowVolatilityMax:
			volRegime = "low"
		case vix < moderateVolatilityMax:
			volRegime = "moderate"
		default:
			volRegime = "high"
		}
	}

	label := "neutral"
	if macro.BenchmarkChangePct == nil {
		degraded = append(degraded, "benchmark_change")
	} else {
		switch change := *macro.BenchmarkChangePct; {
		case change >= bullishChangeMin:
			label = "bullish"
		case change <= bearishChangeMax:
			label = "bearish"
		}
	}

	marketRisk := "moderate"
	switch {
	case volRegime == "high" || (volRegime == "moderate" && label == "bearish"):
		marketRisk = "high"
	case volRegime == "low" && label != "bearish":
		marketRisk = "low"
	}

	points := tidePoints[label] - volatilityPenalty[volRegime]
	if points < 0 {
		points = 0
	}

	return contracts.TideResult{
		Label:            label,
		VolatilityRegime: volRegime,
		MarketRisk:       marketRisk,
		Points:           points,
	}, degraded
}
