package screener

import "github.com/wonny/argus/internal/contracts"

// Directional vote thresholds
const (
	rsiOverboughtMin = 70.0
	rsiOversoldMax   = 30.0
	rsiTrendBuyMin   = 55.0
	rsiTrendSellMax  = 45.0

	bollingerLowerZone = 0.2
	bollingerUpperZone = 0.8
)

// voteSet is the 5-element directional vote vector for one symbol.
// 각 투표 ∈ {-1, 0, +1}; 입력 누락 시 0 (기권)
type voteSet struct {
	RSI       int
	MACD      int
	MA        int
	Bollinger int
	Momentum  int
}

func (v voteSet) all() [5]int {
	return [5]int{v.RSI, v.MACD, v.MA, v.Bollinger, v.Momentum}
}

// BuyVotes counts +1 votes
func (v voteSet) BuyVotes() int {
	n := 0
	for _, vote := range v.all() {
		if vote > 0 {
			n++
		}
	}
	return n
}

// SellVotes counts -1 votes
func (v voteSet) SellVotes() int {
	n := 0
	for _, vote := range v.all() {
		if vote < 0 {
			n++
		}
	}
	return n
}

// mean averages the 5 votes into [-1, +1]
func (v voteSet) mean() float64 {
	sum := 0
	for _, vote := range v.all() {
		sum += vote
	}
	return float64(sum) / 5.0
}

// castVotes builds the vote vector for one timeframe.
//
// SHORT는 평균회귀 관점: 과매수는 매도, 밴드 하단은 매수, 단기
// 모멘텀 급등은 매도 신호. MEDIUM/LONG은 추세추종 관점으로 부호가
// 뒤집힌다.
func castVotes(ind contracts.TechnicalIndicators, tf contracts.Timeframe) voteSet {
	votes := voteSet{}
	meanReverting := tf == contracts.TimeframeShort

	// RSI
	if ind.RSI != nil {
		rsi := *ind.RSI
		if meanReverting {
			switch {
			case rsi <= rsiOversoldMax:
				votes.RSI = 1
			case rsi >= rsiOverboughtMin:
				votes.RSI = -1
			}
		} else {
			switch {
			case rsi >= rsiTrendBuyMin:
				votes.RSI = 1
			case rsi <= rsiTrendSellMax:
				votes.RSI = -1
			}
		}
	}

	// MACD: 모든 타임프레임에서 추세 신호
	if ind.MACDLine != nil && ind.MACDSignal != nil {
		if *ind.MACDLine > *ind.MACDSignal {
			votes.MACD = 1
		} else if *ind.MACDLine < *ind.MACDSignal {
			votes.MACD = -1
		}
	}

	// Moving average: LONG uses the slower MA50, others MA20
	ma := ind.MA20
	if tf == contracts.TimeframeLong {
		ma = ind.MA50
	}
	if ma != nil && ind.Price > 0 {
		if ind.Price > *ma {
			votes.MA = 1
		} else if ind.Price < *ma {
			votes.MA = -1
		}
	}

	// Bollinger band position
	if ind.BollingerUpper != nil && ind.BollingerLower != nil &&
		*ind.BollingerUpper > *ind.BollingerLower {
		position := (ind.Price - *ind.BollingerLower) / (*ind.BollingerUpper - *ind.BollingerLower)
		if meanReverting {
			switch {
			case position <= bollingerLowerZone:
				votes.Bollinger = 1
			case position >= bollingerUpperZone:
				votes.Bollinger = -1
			}
		} else {
			switch {
			case position >= bollingerUpperZone:
				votes.Bollinger = 1
			case position <= bollingerLowerZone:
				votes.Bollinger = -1
			}
		}
	}

	// Momentum: sign flip for SHORT
	if ind.Momentum != nil {
		momentum := *ind.Momentum
		direction := 0
		if momentum > 0 {
			direction = 1
		} else if momentum < 0 {
			direction = -1
		}
		if meanReverting {
			direction = -direction
		}
		votes.Momentum = direction
	}

	return votes
}
