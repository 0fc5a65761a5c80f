package engine

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/argus/internal/contracts"
	"github.com/wonny/argus/internal/correlation"
	"github.com/wonny/argus/internal/forecast"
	"github.com/wonny/argus/internal/gateway"
	"github.com/wonny/argus/internal/screener"
	"github.com/wonny/argus/pkg/config"
	"github.com/wonny/argus/pkg/logger"
)

func testLogger() *logger.Logger {
	return logger.New(&config.Config{Env: "test", LogLevel: "error"})
}

func f(v float64) *float64 {
	return &v
}

// stubProvider serves canned payloads per symbol
type stubProvider struct {
	kind    contracts.DataKind
	payload func(symbol string) (any, error)
}

func (p *stubProvider) Kind() contracts.DataKind { return p.kind }
func (p *stubProvider) Fetch(_ context.Context, symbol string) (any, error) {
	return p.payload(symbol)
}

func testGatewayConfig() config.GatewayConfig {
	return config.GatewayConfig{
		MinRequestInterval: time.Nanosecond,
		FetchTimeout:       time.Second,
		MaxRetries:         1,
		RetryInitialDelay:  time.Nanosecond,
		QuoteTTL:           time.Minute,
		IndicatorTTL:       time.Minute,
		FundamentalTTL:     time.Minute,
		MacroTTL:           time.Minute,
		SentimentTTL:       time.Minute,
		HistoryTTL:         time.Minute,
	}
}

func testConfig() *config.Config {
	return &config.Config{
		Env:      "test",
		LogLevel: "error",
		Batch:    config.BatchConfig{Workers: 4, Deadline: 30 * time.Second},
		Screener: config.ScreenerConfig{TopN: 3},
	}
}

func testHistory(symbol string, n int) *contracts.PriceHistory {
	start := time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC)
	points := make([]contracts.PricePoint, n)
	price := 100.0
	for i := range points {
		price *= 1.002
		points[i] = contracts.PricePoint{
			Date: start.AddDate(0, 0, i), Open: price,
			High: price * 1.01, Low: price * 0.99, Close: price, Volume: 1000,
		}
	}
	return &contracts.PriceHistory{Symbol: symbol, Points: points}
}

func testIndicators() *contracts.TechnicalIndicators {
	return &contracts.TechnicalIndicators{
		Price:      110,
		RSI:        f(62),
		MACDLine:   f(1.2),
		MACDSignal: f(0.8),
		MA20:       f(105),
		MA50:       f(100),
		ATR:        f(2),
		Momentum:   f(0.05),
	}
}

type fakeAudit struct {
	runs []*contracts.ScreenerRun
}

func (a *fakeAudit) SaveRun(_ context.Context, run *contracts.ScreenerRun) error {
	a.runs = append(a.runs, run)
	return nil
}

func newTestEngine(t *testing.T, providers []gateway.Provider, audit AuditStore) *Engine {
	t.Helper()
	log := testLogger()
	gw := gateway.New(testGatewayConfig(), providers, log)
	return New(
		gw,
		forecast.NewForecaster(zerolog.Nop()),
		correlation.NewEngine(zerolog.Nop()),
		screener.NewRanker(log),
		audit,
		testConfig(),
		log,
	).WithClock(func() time.Time {
		return time.Date(2025, 6, 2, 21, 0, 0, 0, time.UTC)
	})
}

func fullProviders() []gateway.Provider {
	asOf := time.Date(2025, 6, 2, 20, 0, 0, 0, time.UTC)
	return []gateway.Provider{
		&stubProvider{contracts.KindIndicators, func(string) (any, error) {
			return testIndicators(), nil
		}},
		&stubProvider{contracts.KindQuote, func(symbol string) (any, error) {
			return &contracts.Quote{
				Symbol: symbol, Price: 110, Open: 108, High: 111, Low: 107,
				Volume: 1_000_000, ChangePct: 1.2, AsOf: asOf,
			}, nil
		}},
		&stubProvider{contracts.KindFundamentals, func(string) (any, error) {
			return &contracts.FundamentalRatios{PER: f(14), ROE: f(18)}, nil
		}},
		&stubProvider{contracts.KindMacro, func(string) (any, error) {
			return &contracts.MacroSnapshot{VolatilityIndex: f(14), BenchmarkChangePct: f(0.6)}, nil
		}},
		&stubProvider{contracts.KindSentiment, func(string) (any, error) {
			return &contracts.SentimentSnapshot{AnalystRating: "buy", NewsSentiment: "positive"}, nil
		}},
		&stubProvider{contracts.KindHistory, func(symbol string) (any, error) {
			return testHistory(symbol, 120), nil
		}},
	}
}

func TestBuildSignalSetUsesQuoteTimestamp(t *testing.T) {
	e := newTestEngine(t, fullProviders(), nil)

	set, err := e.BuildSignalSet(context.Background(), "aapl")
	require.NoError(t, err)

	assert.Equal(t, time.Date(2025, 6, 2, 20, 0, 0, 0, time.UTC), set.Timestamp)
	assert.Equal(t, 110.0, set.Technical.Price)
	require.NotNil(t, set.Fundamental.PER)
	assert.Equal(t, 14.0, *set.Fundamental.PER)
}

func TestEvaluateSymbolIdempotent(t *testing.T) {
	e := newTestEngine(t, fullProviders(), nil)

	first, err := e.EvaluateSymbol(context.Background(), "AAPL")
	require.NoError(t, err)
	second, err := e.EvaluateSymbol(context.Background(), "AAPL")
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, time.Date(2025, 6, 2, 20, 0, 0, 0, time.UTC), first.AsOf)
}

func TestBuildSignalSetRequiresIndicators(t *testing.T) {
	providers := []gateway.Provider{
		&stubProvider{contracts.KindIndicators, func(string) (any, error) {
			return nil, contracts.ErrInvalidData
		}},
	}
	e := newTestEngine(t, providers, nil)

	_, err := e.BuildSignalSet(context.Background(), "AAPL")
	assert.Error(t, err)
}

func TestBuildSignalSetDegradesWithoutOptionalInputs(t *testing.T) {
	providers := []gateway.Provider{
		&stubProvider{contracts.KindIndicators, func(string) (any, error) {
			return testIndicators(), nil
		}},
	}
	e := newTestEngine(t, providers, nil)

	set, err := e.BuildSignalSet(context.Background(), "AAPL")
	require.NoError(t, err)

	// No quote provider: falls back to the injected clock
	assert.Equal(t, time.Date(2025, 6, 2, 21, 0, 0, 0, time.UTC), set.Timestamp)
	assert.Nil(t, set.Fundamental.PER)

	rec := e.Evaluate(set)
	assert.NotEmpty(t, rec.DegradedInputs)
}

func TestEvaluateBothLensesSurfacesBoth(t *testing.T) {
	e := newTestEngine(t, fullProviders(), nil)

	set, err := e.BuildSignalSet(context.Background(), "AAPL")
	require.NoError(t, err)

	dual := e.EvaluateBothLenses(set)
	require.NotNil(t, dual.Recommendation)
	require.NotNil(t, dual.Pillars)
	assert.Equal(t, dual.Recommendation.AsOf, dual.Pillars.AsOf)
}

func TestForecastThroughGateway(t *testing.T) {
	e := newTestEngine(t, fullProviders(), nil)

	result, err := e.Forecast(context.Background(), "AAPL", 30)
	require.NoError(t, err)
	assert.Equal(t, "AAPL", result.Symbol)
	assert.Len(t, result.ModelWeights, 2)
}

func TestProjectLongTermThroughGateway(t *testing.T) {
	e := newTestEngine(t, fullProviders(), nil)

	proj, err := e.ProjectLongTerm(context.Background(), "AAPL", 5)
	require.NoError(t, err)
	assert.LessOrEqual(t, proj.Bearish, proj.Base)
	assert.GreaterOrEqual(t, proj.Bullish, proj.Base)
}

func TestCorrelateIsolatesFailures(t *testing.T) {
	providers := []gateway.Provider{
		&stubProvider{contracts.KindHistory, func(symbol string) (any, error) {
			if symbol == "BAD" {
				return nil, contracts.ErrInvalidData
			}
			return testHistory(symbol, 90), nil
		}},
	}
	e := newTestEngine(t, providers, nil)

	matrix, score, symbolErrs, err := e.Correlate(context.Background(), []string{"A", "BAD", "B"})
	require.NoError(t, err)

	assert.Len(t, matrix.Symbols, 2)
	require.Len(t, symbolErrs, 1)
	assert.Equal(t, "BAD", symbolErrs[0].Symbol)
	assert.NotNil(t, score)
}

func TestCorrelateFailsWhenTooFewSurvive(t *testing.T) {
	providers := []gateway.Provider{
		&stubProvider{contracts.KindHistory, func(symbol string) (any, error) {
			return nil, contracts.ErrInvalidData
		}},
	}
	e := newTestEngine(t, providers, nil)

	_, _, _, err := e.Correlate(context.Background(), []string{"A", "B"})
	assert.True(t, errors.Is(err, contracts.ErrInvalidInput))
}

func TestScreenRanksAndAudits(t *testing.T) {
	audit := &fakeAudit{}
	e := newTestEngine(t, fullProviders(), audit)

	entries, symbolErrs, err := e.Screen(context.Background(),
		[]string{"AAPL", "MSFT", "NVDA", "AMZN", "META"}, contracts.TimeframeMedium)
	require.NoError(t, err)
	assert.Empty(t, symbolErrs)

	// TopN 3 from config
	require.Len(t, entries, 3)
	for i := 1; i < len(entries); i++ {
		assert.GreaterOrEqual(t, entries[i-1].Score, entries[i].Score)
	}

	require.Len(t, audit.runs, 1)
	assert.Equal(t, 5, audit.runs[0].SymbolCount)
	assert.Len(t, audit.runs[0].TopSymbols, 3)
}

func TestScreenRejectsBadTimeframe(t *testing.T) {
	e := newTestEngine(t, fullProviders(), nil)
	_, _, err := e.Screen(context.Background(), []string{"AAPL"}, contracts.Timeframe("HOURLY"))
	assert.True(t, errors.Is(err, contracts.ErrInvalidInput))
}
