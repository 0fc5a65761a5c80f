package contracts

import "time"

// SignalSet carries all pre-computed inputs for one evaluation
// ⭐ SSOT: 평가 입력 데이터는 이 구조체로만 전달
// Immutable per evaluation: scorers never mutate it.
type SignalSet struct {
	Symbol    string    `json:"symbol"`
	Timestamp time.Time `json:"timestamp"`

	Technical   TechnicalIndicators `json:"technical"`
	Fundamental FundamentalRatios   `json:"fundamental"`
	Macro       MacroSnapshot       `json:"macro"`
	Sentiment   SentimentSnapshot   `json:"sentiment"`
}

// TechnicalIndicators holds pre-computed technical indicator values.
// Indicator formulas are an external collaborator's concern.
type TechnicalIndicators struct {
	Price float64 `json:"price"`

	RSI        *float64 `json:"rsi,omitempty"`
	MACDLine   *float64 `json:"macd_line,omitempty"`
	MACDSignal *float64 `json:"macd_signal,omitempty"`
	MACDHist   *float64 `json:"macd_hist,omitempty"`
	StochK     *float64 `json:"stoch_k,omitempty"`
	StochD     *float64 `json:"stoch_d,omitempty"`

	MA20  *float64 `json:"ma20,omitempty"`
	MA50  *float64 `json:"ma50,omitempty"`
	MA200 *float64 `json:"ma200,omitempty"`

	BollingerUpper *float64 `json:"bollinger_upper,omitempty"`
	BollingerMid   *float64 `json:"bollinger_mid,omitempty"`
	BollingerLower *float64 `json:"bollinger_lower,omitempty"`

	ATR       *float64 `json:"atr,omitempty"`
	Volume    *float64 `json:"volume,omitempty"`
	VolumeSMA *float64 `json:"volume_sma,omitempty"`

	// 10일 모멘텀 (수익률)
	Momentum *float64 `json:"momentum,omitempty"`
}

// FundamentalRatios holds fundamental valuation ratios.
// nil means the upstream service had no figure (e.g. negative earnings).
type FundamentalRatios struct {
	PER            *float64 `json:"per,omitempty"`
	PBR            *float64 `json:"pbr,omitempty"`
	ROE            *float64 `json:"roe,omitempty"`        // percent
	DebtEquity     *float64 `json:"debt_equity,omitempty"`
	MarketCap      *float64 `json:"market_cap,omitempty"` // USD
	EarningsGrowth *float64 `json:"earnings_growth,omitempty"` // percent YoY
}

// MacroSnapshot holds market-regime indicators
type MacroSnapshot struct {
	VolatilityIndex    *float64 `json:"volatility_index,omitempty"` // VIX level
	BenchmarkChangePct *float64 `json:"benchmark_change_pct,omitempty"`
	YieldSpread        *float64 `json:"yield_spread,omitempty"` // 10Y-2Y
	Unemployment       *float64 `json:"unemployment,omitempty"`
	Inflation          *float64 `json:"inflation,omitempty"`
}

// SentimentSnapshot holds categorical sentiment inputs.
// Empty string means the input was unavailable.
type SentimentSnapshot struct {
	AnalystRating      string   `json:"analyst_rating,omitempty"`      // strong_buy..strong_sell
	InsiderSentiment   string   `json:"insider_sentiment,omitempty"`   // positive|neutral|negative
	NewsSentiment      string   `json:"news_sentiment,omitempty"`      // positive|neutral|negative
	TechnicalSentiment string   `json:"technical_sentiment,omitempty"` // bullish|neutral|bearish
	RelativeStrength   *float64 `json:"relative_strength,omitempty"`   // % vs benchmark, 3M
}

// ScoreKind identifies one of the three normalized sub-scores
type ScoreKind string

const (
	ScoreTechnical   ScoreKind = "technical"
	ScoreFundamental ScoreKind = "fundamental"
	ScoreSentiment   ScoreKind = "sentiment"
)

// Factor records one contribution to a sub-score
type Factor struct {
	Name   string  `json:"name"`
	Points float64 `json:"points"`
	Detail string  `json:"detail,omitempty"`
}

// SubScore is a normalized 0-100 score with its contributing factors
type SubScore struct {
	Kind   ScoreKind `json:"kind"`
	Value  float64   `json:"value"` // 0 ~ 100
	Factors []Factor `json:"factors"`

	// Inputs that were missing and replaced by a neutral default
	Degraded []string `json:"degraded,omitempty"`
}

// IsDegraded reports whether any input was defaulted
func (s *SubScore) IsDegraded() bool {
	return len(s.Degraded) > 0
}
