package contracts

// Tendency labels the short-horizon forecast direction
type Tendency string

const (
	TendencyBullish  Tendency = "BULLISH"
	TendencyBearish  Tendency = "BEARISH"
	TendencySideways Tendency = "SIDEWAYS"
)

// ForecastResult is the blended short-horizon forecast
type ForecastResult struct {
	Symbol       string  `json:"symbol"`
	CurrentPrice float64 `json:"current_price"`
	HorizonDays  int     `json:"horizon_days"`

	PointEstimate float64 `json:"point_estimate"`
	RangeLow      float64 `json:"range_low"`  // min across models
	RangeHigh     float64 `json:"range_high"` // max across models

	// Normalized model weights, sum to 1.0
	ModelWeights map[string]float64 `json:"model_weights"`

	Tendency Tendency `json:"tendency"`
}

// LongHorizonProjection is the deterministic lognormal scenario model
type LongHorizonProjection struct {
	Symbol string `json:"symbol"`
	Years  int    `json:"years"`

	CurrentPrice     float64 `json:"current_price"`
	AnnualReturn     float64 `json:"annual_return"`
	AnnualVolatility float64 `json:"annual_volatility"`

	// bearish <= base <= bullish (95% lognormal band)
	Bullish float64 `json:"bullish"`
	Base    float64 `json:"base"`
	Bearish float64 `json:"bearish"`
}

// DownsideRisk summarizes tail-risk statistics of daily returns
type DownsideRisk struct {
	Symbol string `json:"symbol"`

	VaR95    float64 `json:"var_95"` // 손실은 양수로 표현
	VaR99    float64 `json:"var_99"`
	WorstDay float64 `json:"worst_day"`

	// Mean of the bottom quartile of daily returns (loss, positive)
	BottomQuartileMean float64 `json:"bottom_quartile_mean"`

	PositionSizing string `json:"position_sizing"`
}
