package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/wonny/argus/internal/batch"
	"github.com/wonny/argus/internal/contracts"
	"github.com/wonny/argus/internal/correlation"
	"github.com/wonny/argus/internal/forecast"
	"github.com/wonny/argus/internal/gateway"
	"github.com/wonny/argus/internal/pillars"
	"github.com/wonny/argus/internal/scoring"
	"github.com/wonny/argus/internal/screener"
	"github.com/wonny/argus/pkg/config"
	"github.com/wonny/argus/pkg/logger"
)

// AuditStore persists screener-run audit records.
// 선택적 의존성: nil이면 감사 기록 생략
type AuditStore interface {
	SaveRun(ctx context.Context, run *contracts.ScreenerRun) error
}

// Engine is the facade over acquisition, scoring, forecasting,
// correlation and screening.
// ⭐ SSOT: 평가 파이프라인 조율은 여기서만
type Engine struct {
	gateway *gateway.Gateway

	technical   *scoring.TechnicalScorer
	fundamental *scoring.FundamentalScorer
	sentiment   *scoring.SentimentScorer
	combiner    *scoring.Combiner
	pillars     *pillars.Scorer

	forecaster  *forecast.Forecaster
	correlator  *correlation.Engine
	ranker      *screener.Ranker
	auditStore  AuditStore

	batchCfg      batch.Config
	batchDeadline time.Duration
	topN          int

	now    func() time.Time
	logger *logger.Logger
}

// New creates the engine facade
func New(
	gw *gateway.Gateway,
	forecaster *forecast.Forecaster,
	correlator *correlation.Engine,
	ranker *screener.Ranker,
	auditStore AuditStore,
	cfg *config.Config,
	log *logger.Logger,
) *Engine {
	return &Engine{
		gateway:     gw,
		technical:   scoring.NewTechnicalScorer(log),
		fundamental: scoring.NewFundamentalScorer(log),
		sentiment:   scoring.NewSentimentScorer(log),
		combiner:    scoring.NewCombiner(log),
		pillars:     pillars.NewScorer(log),
		forecaster:  forecaster,
		correlator:  correlator,
		ranker:      ranker,
		auditStore:  auditStore,
		batchCfg:    batch.Config{Workers: cfg.Batch.Workers},
		batchDeadline: cfg.Batch.Deadline,
		topN:          cfg.Screener.TopN,
		now:           time.Now,
		logger:        log.WithField("module", "engine"),
	}
}

// WithClock replaces the clock, for tests
func (e *Engine) WithClock(now func() time.Time) *Engine {
	e.now = now
	return e
}

// Evaluate scores one pre-assembled signal set through the combiner.
// 순수 함수: 외부 조회 없음, 동일 입력이면 동일 출력.
func (e *Engine) Evaluate(set *contracts.SignalSet) *contracts.Recommendation {
	technical := e.technical.Score(set)
	fundamental := e.fundamental.Score(set)
	sentiment := e.sentiment.Score(set)
	return e.combiner.Combine(set, technical, fundamental, sentiment)
}

// EvaluateBothLenses runs the combiner and the pillar scorer over the
// same signal set. The two lenses are surfaced side by side, never
// merged.
func (e *Engine) EvaluateBothLenses(set *contracts.SignalSet) *contracts.DualLensResult {
	return &contracts.DualLensResult{
		Recommendation: e.Evaluate(set),
		Pillars:        e.pillars.Score(set),
	}
}

// EvaluateSymbol assembles the signal set through the gateway and
// evaluates it.
func (e *Engine) EvaluateSymbol(ctx context.Context, symbol string) (*contracts.Recommendation, error) {
	set, err := e.BuildSignalSet(ctx, symbol)
	if err != nil {
		return nil, err
	}
	return e.Evaluate(set), nil
}

// BuildSignalSet fetches all evaluation inputs for one symbol.
// Indicators are required; fundamentals, macro and sentiment degrade to
// empty snapshots so the scorers can fall back to neutral defaults.
func (e *Engine) BuildSignalSet(ctx context.Context, symbol string) (*contracts.SignalSet, error) {
	indicators, err := fetchAs[*contracts.TechnicalIndicators](ctx, e.gateway, symbol, contracts.KindIndicators)
	if err != nil {
		return nil, fmt.Errorf("build signal set %s: %w", symbol, err)
	}

	set := &contracts.SignalSet{
		Symbol:    symbol,
		Timestamp: e.now().UTC(),
		Technical: *indicators,
	}

	if quote, err := fetchAs[*contracts.Quote](ctx, e.gateway, symbol, contracts.KindQuote); err == nil {
		set.Timestamp = quote.AsOf
		set.Technical.Price = quote.Price
	} else {
		e.logger.WithError(err).WithField("symbol", symbol).Warn("Quote unavailable, using indicator price")
	}

	if fundamentals, err := fetchAs[*contracts.FundamentalRatios](ctx, e.gateway, symbol, contracts.KindFundamentals); err == nil {
		set.Fundamental = *fundamentals
	} else {
		e.logger.WithError(err).WithField("symbol", symbol).Warn("Fundamentals unavailable, scoring degraded")
	}

	if macro, err := fetchAs[*contracts.MacroSnapshot](ctx, e.gateway, symbol, contracts.KindMacro); err == nil {
		set.Macro = *macro
	} else {
		e.logger.WithError(err).WithField("symbol", symbol).Warn("Macro snapshot unavailable, scoring degraded")
	}

	if sentiment, err := fetchAs[*contracts.SentimentSnapshot](ctx, e.gateway, symbol, contracts.KindSentiment); err == nil {
		set.Sentiment = *sentiment
	} else {
		e.logger.WithError(err).WithField("symbol", symbol).Warn("Sentiment unavailable, scoring degraded")
	}

	return set, nil
}

// Forecast fetches the price history and produces the blended
// short-horizon forecast.
func (e *Engine) Forecast(ctx context.Context, symbol string, horizonDays int) (*contracts.ForecastResult, error) {
	history, err := fetchAs[*contracts.PriceHistory](ctx, e.gateway, symbol, contracts.KindHistory)
	if err != nil {
		return nil, err
	}
	return e.forecaster.Forecast(history, horizonDays)
}

// ProjectLongTerm fetches the price history and builds the lognormal
// scenario projection.
func (e *Engine) ProjectLongTerm(ctx context.Context, symbol string, years int) (*contracts.LongHorizonProjection, error) {
	history, err := fetchAs[*contracts.PriceHistory](ctx, e.gateway, symbol, contracts.KindHistory)
	if err != nil {
		return nil, err
	}
	return e.forecaster.ProjectLongTerm(history, years)
}

// DownsideRisk fetches the price history and computes tail statistics
func (e *Engine) DownsideRisk(ctx context.Context, symbol string) (*contracts.DownsideRisk, error) {
	history, err := fetchAs[*contracts.PriceHistory](ctx, e.gateway, symbol, contracts.KindHistory)
	if err != nil {
		return nil, err
	}
	return e.forecaster.DownsideRisk(history)
}

// Correlate fetches histories for the symbol set over the worker pool
// and computes the correlation matrices. Per-symbol fetch failures are
// reported, not fatal, as long as two series survive.
func (e *Engine) Correlate(ctx context.Context, symbols []string) (*contracts.CorrelationMatrix, *contracts.DiversificationScore, []contracts.SymbolError, error) {
	ctx, cancel := context.WithTimeout(ctx, e.batchDeadline)
	defer cancel()

	results := batch.Run(ctx, e.logger, e.batchCfg, symbols,
		func(ctx context.Context, symbol string) (*contracts.PriceHistory, error) {
			return fetchAs[*contracts.PriceHistory](ctx, e.gateway, symbol, contracts.KindHistory)
		})

	var histories []*contracts.PriceHistory
	for _, result := range results {
		if result.Err == nil {
			histories = append(histories, result.Value)
		}
	}
	symbolErrs := batch.Errors(results)

	matrix, score, err := e.correlator.Correlate(histories)
	if err != nil {
		return nil, nil, symbolErrs, err
	}
	return matrix, score, symbolErrs, nil
}

// Screen scores the symbol universe for one timeframe over the worker
// pool and returns the top entries ranked by score.
func (e *Engine) Screen(ctx context.Context, symbols []string, tf contracts.Timeframe) ([]contracts.ScreenerEntry, []contracts.SymbolError, error) {
	if !tf.Valid() {
		return nil, nil, fmt.Errorf("screen: timeframe %q: %w", tf, contracts.ErrInvalidInput)
	}

	ctx, cancel := context.WithTimeout(ctx, e.batchDeadline)
	defer cancel()

	results := batch.Run(ctx, e.logger, e.batchCfg, symbols,
		func(ctx context.Context, symbol string) (*contracts.ScreenerEntry, error) {
			indicators, err := fetchAs[*contracts.TechnicalIndicators](ctx, e.gateway, symbol, contracts.KindIndicators)
			if err != nil {
				return nil, err
			}
			// History is optional: without it the levels stay zero
			history, err := fetchAs[*contracts.PriceHistory](ctx, e.gateway, symbol, contracts.KindHistory)
			if err != nil {
				history = nil
			}
			return e.ranker.Score(screener.Input{
				Symbol:    symbol,
				Technical: *indicators,
				History:   history,
			}, tf)
		})

	var entries []contracts.ScreenerEntry
	for _, result := range results {
		if result.Err == nil && result.Value != nil {
			entries = append(entries, *result.Value)
		}
	}
	symbolErrs := batch.Errors(results)

	top := e.ranker.Rank(entries, e.topN)

	if e.auditStore != nil {
		run := screener.NewRun(tf, len(symbols), top, e.now().UTC())
		if err := e.auditStore.SaveRun(ctx, run); err != nil {
			e.logger.WithError(err).Warn("Failed to save screener audit record")
		}
	}

	return top, symbolErrs, nil
}

// fetchAs wraps the gateway fetch with the expected payload type
func fetchAs[T any](ctx context.Context, gw *gateway.Gateway, symbol string, kind contracts.DataKind) (T, error) {
	var zero T
	value, err := gw.Fetch(ctx, symbol, kind)
	if err != nil {
		return zero, err
	}
	typed, ok := value.(T)
	if !ok {
		return zero, fmt.Errorf("%w: unexpected payload type %T for kind %q",
			contracts.ErrInvalidData, value, kind)
	}
	return typed, nil
}
