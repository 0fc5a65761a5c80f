package forecast

import (
	"fmt"
	"math"

	"github.com/rs/zerolog"

	"github.com/wonny/argus/internal/contracts"
)

const (
	// MinObservations 예측에 필요한 최소 관측치 수
	// 이보다 짧으면 중립 폴백 없이 하드 실패
	MinObservations = 30

	// Held-out slice fraction for out-of-sample weighting
	holdoutFraction = 0.2
	minHoldoutRows  = 3

	// Tendency dead band around current price (%)
	tendencyBandPct = 5.0

	// Weight bounds: w = clamp((R²+1)·50, minModelWeight, maxModelWeight)
	minModelWeight = 0.1
	maxModelWeight = 100.0
)

// Forecaster blends at least two independently parameterized regressors,
// weighted by out-of-sample R².
// ⭐ SSOT: 단기 예측은 여기서만
type Forecaster struct {
	log zerolog.Logger
}

// NewForecaster 새 예측기 생성
func NewForecaster(log zerolog.Logger) *Forecaster {
	return &Forecaster{
		log: log.With().Str("component", "forecast.ensemble").Logger(),
	}
}

// Forecast produces a blended short-horizon point estimate with the
// min/max across individual models and a tendency label.
// 관측치 부족 시 ErrInsufficientData (팬텀 데이터 금지)
func (f *Forecaster) Forecast(history *contracts.PriceHistory, horizonDays int) (*contracts.ForecastResult, error) {
	if history == nil || history.Len() < MinObservations {
		got := 0
		if history != nil {
			got = history.Len()
		}
		return nil, fmt.Errorf("forecast %s: need %d observations, have %d: %w",
			symbolOf(history), MinObservations, got, contracts.ErrInsufficientData)
	}
	if horizonDays <= 0 {
		return nil, fmt.Errorf("forecast %s: horizon %d days: %w",
			history.Symbol, horizonDays, contracts.ErrInvalidInput)
	}

	closes := history.Closes()
	rows := buildDataset(closes, featureWindow)
	if len(rows) < minHoldoutRows*2 {
		return nil, fmt.Errorf("forecast %s: %d usable windows: %w",
			history.Symbol, len(rows), contracts.ErrInsufficientData)
	}

	// Train / held-out split: 최근 구간을 검증에 사용
	holdout := int(float64(len(rows)) * holdoutFraction)
	if holdout < minHoldoutRows {
		holdout = minHoldoutRows
	}
	train := rows[:len(rows)-holdout]
	held := rows[len(rows)-holdout:]

	models := []*ridgeModel{
		newRidgeModel("ridge_tight", 0.1),
		newRidgeModel("ridge_loose", 10.0),
	}

	type scored struct {
		model  *ridgeModel
		weight float64
		point  float64
	}
	var candidates []scored

	for _, model := range models {
		if err := model.Fit(train); err != nil {
			f.log.Warn().Err(err).
				Str("symbol", history.Symbol).
				Str("model", model.name).
				Msg("model fit failed, excluded from ensemble")
			continue
		}

		actual := make([]float64, len(held))
		predicted := make([]float64, len(held))
		for i, row := range held {
			actual[i] = row.label
			predicted[i] = model.Predict(row.features)
		}
		r2 := rSquared(actual, predicted)
		weight := clampFloat((r2+1)*50, minModelWeight, maxModelWeight)

		point := f.project(model, closes, horizonDays)

		f.log.Debug().
			Str("symbol", history.Symbol).
			Str("model", model.name).
			Float64("r_squared", r2).
			Float64("weight", weight).
			Float64("point", point).
			Msg("model evaluated")

		candidates = append(candidates, scored{model: model, weight: weight, point: point})
	}

	if len(candidates) < 2 {
		return nil, fmt.Errorf("forecast %s: %d of %d models fitted: %w",
			history.Symbol, len(candidates), len(models), contracts.ErrInsufficientData)
	}

	var weightSum float64
	for _, c := range candidates {
		weightSum += c.weight
	}

	result := &contracts.ForecastResult{
		Symbol:       history.Symbol,
		CurrentPrice: history.LastClose(),
		HorizonDays:  horizonDays,
		RangeLow:     math.Inf(1),
		RangeHigh:    math.Inf(-1),
		ModelWeights: make(map[string]float64, len(candidates)),
	}

	for _, c := range candidates {
		norm := c.weight / weightSum
		result.ModelWeights[c.model.name] = norm
		result.PointEstimate += norm * c.point
		if c.point < result.RangeLow {
			result.RangeLow = c.point
		}
		if c.point > result.RangeHigh {
			result.RangeHigh = c.point
		}
	}

	result.Tendency = resolveTendency(result.CurrentPrice, result.PointEstimate)

	f.log.Info().
		Str("symbol", history.Symbol).
		Int("horizon_days", horizonDays).
		Float64("current", result.CurrentPrice).
		Float64("point_estimate", result.PointEstimate).
		Str("tendency", string(result.Tendency)).
		Msg("forecast completed")

	return result, nil
}

// project rolls the model forward horizonDays steps, feeding each
// prediction back into the window.
func (f *Forecaster) project(model *ridgeModel, closes []float64, horizonDays int) float64 {
	series := make([]float64, len(closes))
	copy(series, closes)

	for step := 0; step < horizonDays; step++ {
		window := series[len(series)-featureWindow:]
		ratio := model.Predict(extractFeatures(window))

		// 하루 변동폭 제한: 발산 방지
		ratio = clampFloat(ratio, 0.8, 1.2)
		series = append(series, window[len(window)-1]*ratio)
	}

	return series[len(series)-1]
}

// resolveTendency labels the forecast direction from a ±5% band
func resolveTendency(current, estimate float64) contracts.Tendency {
	if current <= 0 {
		return contracts.TendencySideways
	}
	changePct := (estimate - current) / current * 100
	switch {
	case changePct > tendencyBandPct:
		return contracts.TendencyBullish
	case changePct < -tendencyBandPct:
		return contracts.TendencyBearish
	default:
		return contracts.TendencySideways
	}
}

func symbolOf(history *contracts.PriceHistory) string {
	if history == nil {
		return "?"
	}
	return history.Symbol
}
