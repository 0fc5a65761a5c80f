package contracts

import "time"

// Timeframe is an evaluation horizon bucket
type Timeframe string

const (
	TimeframeShort  Timeframe = "SHORT"  // 1~3일
	TimeframeMedium Timeframe = "MEDIUM" // 1~4주
	TimeframeLong   Timeframe = "LONG"   // 3~12개월
)

// Valid reports whether the timeframe is one of the known buckets
func (t Timeframe) Valid() bool {
	switch t {
	case TimeframeShort, TimeframeMedium, TimeframeLong:
		return true
	}
	return false
}

// ScreenerEntry is one ranked screener result
type ScreenerEntry struct {
	Symbol    string    `json:"symbol"`
	Timeframe Timeframe `json:"timeframe"`

	Score float64 `json:"score"` // 0 ~ 100
	Tier  Action  `json:"tier"`

	BuyVotes  int `json:"buy_votes"`
	SellVotes int `json:"sell_votes"`

	ExpectedMovePct float64 `json:"expected_move_pct"`
	Support         float64 `json:"support"`
	Resistance      float64 `json:"resistance"`
	Pivot           float64 `json:"pivot"`
}

// SymbolError records a per-item failure inside a batch operation
type SymbolError struct {
	Symbol string `json:"symbol"`
	Err    error  `json:"-"`
	Reason string `json:"reason"`
}

// ScreenerRun is the write-only audit record of one screener run
type ScreenerRun struct {
	ID          string    `json:"id"`
	Timeframe   Timeframe `json:"timeframe"`
	SymbolCount int       `json:"symbol_count"`
	TopSymbols  []string  `json:"top_symbols"`
	CreatedAt   time.Time `json:"created_at"`
}
