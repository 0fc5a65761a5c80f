package forecast

import (
	"fmt"
	"math"

	"github.com/wonny/argus/internal/contracts"
)

// z-score for the 95% lognormal band
const scenarioZ = 1.96

// ProjectLongTerm builds a deterministic lognormal scenario model:
//
//	base    = price·(1+annualReturn)^years
//	accVol  = annualVol·√years
//	bullish = base·exp(+1.96·accVol)
//	bearish = base·exp(−1.96·accVol)
//
// 몬테카를로 없이 결정적 — 동일 입력이면 동일 출력
func (f *Forecaster) ProjectLongTerm(history *contracts.PriceHistory, years int) (*contracts.LongHorizonProjection, error) {
	if history == nil || history.Len() < MinObservations {
		got := 0
		if history != nil {
			got = history.Len()
		}
		return nil, fmt.Errorf("projection %s: need %d observations, have %d: %w",
			symbolOf(history), MinObservations, got, contracts.ErrInsufficientData)
	}
	if years <= 0 {
		return nil, fmt.Errorf("projection %s: %d years: %w",
			history.Symbol, years, contracts.ErrInvalidInput)
	}

	price := history.LastClose()
	annualReturn := history.AnnualizedReturn()
	annualVol := history.AnnualizedVolatility()

	base := price * math.Pow(1+annualReturn, float64(years))
	accVol := annualVol * math.Sqrt(float64(years))

	projection := &contracts.LongHorizonProjection{
		Symbol:           history.Symbol,
		Years:            years,
		CurrentPrice:     price,
		AnnualReturn:     annualReturn,
		AnnualVolatility: annualVol,
		Base:             base,
		Bullish:          base * math.Exp(scenarioZ*accVol),
		Bearish:          base * math.Exp(-scenarioZ*accVol),
	}

	f.log.Info().
		Str("symbol", history.Symbol).
		Int("years", years).
		Float64("base", projection.Base).
		Float64("bullish", projection.Bullish).
		Float64("bearish", projection.Bearish).
		Msg("long-horizon projection completed")

	return projection, nil
}
