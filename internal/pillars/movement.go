package pillars

import "github.com/wonny/argus/internal/contracts"

// Vote dead zones: values inside cast no directional vote
const (
	rsiBullishMin   = 55.0
	rsiBearishMax   = 45.0
	stochBullishMin = 60.0
	stochBearishMax = 40.0
)

// Movement point scale by (direction, strength)
var movementPoints = map[string]map[string]float64{
	"bullish": {"strong": 90, "moderate": 70, "weak": 55},
	"neutral": {"strong": 50, "moderate": 50, "weak": 50},
	"bearish": {"strong": 10, "moderate": 30, "weak": 45},
}

// scoreMovement tallies up to 3 independent directional votes:
// RSI 구간, MACD 부호, 스토캐스틱 구간
func scoreMovement(ind contracts.TechnicalIndicators) (contracts.MovementResult, []string) {
	var degraded []string
	result := contracts.MovementResult{}

	// Vote 1: RSI zone
	if ind.RSI == nil {
		degraded = append(degraded, "rsi")
	} else {
		result.VotesCast++
		switch rsi := *ind.RSI; {
		case rsi >= rsiBullishMin:
			result.BullishVotes++
		case rsi <= rsiBearishMax:
			result.BearishVotes++
		}
	}

	// Vote 2: MACD sign (line vs signal)
	if ind.MACDLine == nil || ind.MACDSignal == nil {
		degraded = append(degraded, "macd")
	} else {
		result.VotesCast++
		if *ind.MACDLine > *ind.MACDSignal {
			result.BullishVotes++
		} else if *ind.MACDLine < *ind.MACDSignal {
			result.BearishVotes++
		}
	}

	// Vote 3: stochastic zone
	if ind.StochK == nil {
		degraded = append(degraded, "stochastic")
	} else {
		result.VotesCast++
		switch stoch := *ind.StochK; {
		case stoch >= stochBullishMin:
			result.BullishVotes++
		case stoch <= stochBearishMax:
			result.BearishVotes++
		}
	}

	result.ConsensusPct = float64(result.VotesCast) / 3.0 * 100

	winning := result.BullishVotes
	result.Direction = "bullish"
	if result.BearishVotes > result.BullishVotes {
		winning = result.BearishVotes
		result.Direction = "bearish"
	} else if result.BearishVotes == result.BullishVotes {
		result.Direction = "neutral"
	}

	// 3/3 strong, 2/3 moderate, 그 외 weak
	switch winning {
	case 3:
		result.Strength = "strong"
	case 2:
		result.Strength = "moderate"
	default:
		result.Strength = "weak"
	}
	if result.Direction == "neutral" {
		result.Strength = "weak"
	}

	result.Points = movementPoints[result.Direction][result.Strength]

	return result, degraded
}
