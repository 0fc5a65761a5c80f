package contracts

import (
	"math"
	"time"
)

// DataKind identifies a class of upstream data served by the gateway
type DataKind string

const (
	KindQuote        DataKind = "quote"
	KindIndicators   DataKind = "indicators"
	KindFundamentals DataKind = "fundamentals"
	KindMacro        DataKind = "macro"
	KindSentiment    DataKind = "sentiment"
	KindHistory      DataKind = "history"
)

// Quote represents a validated market snapshot for one symbol
type Quote struct {
	Symbol    string    `json:"symbol"`
	Price     float64   `json:"price"`
	Open      float64   `json:"open"`
	High      float64   `json:"high"`
	Low       float64   `json:"low"`
	Volume    float64   `json:"volume"`
	ChangePct float64   `json:"change_pct"`
	AsOf      time.Time `json:"as_of"`
}

// PricePoint represents one OHLCV observation
type PricePoint struct {
	Date   time.Time `json:"date"`
	Open   float64   `json:"open"`
	High   float64   `json:"high"`
	Low    float64   `json:"low"`
	Close  float64   `json:"close"`
	Volume float64   `json:"volume"`
}

// PriceHistory represents a daily OHLCV series, oldest first
type PriceHistory struct {
	Symbol string       `json:"symbol"`
	Points []PricePoint `json:"points"`
}

// Len returns the number of observations
func (h *PriceHistory) Len() int {
	return len(h.Points)
}

// Closes returns the closing price series, oldest first
func (h *PriceHistory) Closes() []float64 {
	closes := make([]float64, len(h.Points))
	for i, p := range h.Points {
		closes[i] = p.Close
	}
	return closes
}

// DailyReturns returns the simple daily return series
// returns[i] = (close[i+1] - close[i]) / close[i]
func (h *PriceHistory) DailyReturns() []float64 {
	if len(h.Points) < 2 {
		return nil
	}

	returns := make([]float64, 0, len(h.Points)-1)
	for i := 0; i < len(h.Points)-1; i++ {
		prev := h.Points[i].Close
		if prev == 0 {
			continue
		}
		returns = append(returns, (h.Points[i+1].Close-prev)/prev)
	}
	return returns
}

// LastClose returns the most recent closing price, 0 when empty
func (h *PriceHistory) LastClose() float64 {
	if len(h.Points) == 0 {
		return 0
	}
	return h.Points[len(h.Points)-1].Close
}

// AnnualizedVolatility returns the annualized standard deviation of
// daily returns (252 trading days)
func (h *PriceHistory) AnnualizedVolatility() float64 {
	returns := h.DailyReturns()
	if len(returns) < 2 {
		return 0
	}

	var sum float64
	for _, r := range returns {
		sum += r
	}
	mean := sum / float64(len(returns))

	var sumSq float64
	for _, r := range returns {
		diff := r - mean
		sumSq += diff * diff
	}
	daily := math.Sqrt(sumSq / float64(len(returns)-1))

	return daily * math.Sqrt(252)
}

// AnnualizedReturn returns the geometric annualized return of the series
func (h *PriceHistory) AnnualizedReturn() float64 {
	if len(h.Points) < 2 {
		return 0
	}

	first := h.Points[0].Close
	last := h.Points[len(h.Points)-1].Close
	if first <= 0 || last <= 0 {
		return 0
	}

	years := float64(len(h.Points)-1) / 252.0
	if years <= 0 {
		return 0
	}

	return math.Pow(last/first, 1/years) - 1
}
