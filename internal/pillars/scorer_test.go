package pillars

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/argus/internal/contracts"
	"github.com/wonny/argus/pkg/config"
	"github.com/wonny/argus/pkg/logger"
)

func testLogger() *logger.Logger {
	return logger.New(&config.Config{Env: "test", LogLevel: "error"})
}

func f(v float64) *float64 {
	return &v
}

func bullishSignals() *contracts.SignalSet {
	return &contracts.SignalSet{
		Symbol:    "AAPL",
		Timestamp: time.Date(2025, 6, 2, 21, 0, 0, 0, time.UTC),
		Technical: contracts.TechnicalIndicators{
			Price:      190,
			RSI:        f(62),
			MACDLine:   f(1.4),
			MACDSignal: f(0.9),
			StochK:     f(72),
		},
		Fundamental: contracts.FundamentalRatios{
			PER:        f(12),
			MarketCap:  f(2.9e12),
			DebtEquity: f(0.3),
		},
		Macro: contracts.MacroSnapshot{
			VolatilityIndex:    f(13),
			BenchmarkChangePct: f(0.8),
		},
		Sentiment: contracts.SentimentSnapshot{
			InsiderSentiment: "positive",
			AnalystRating:    "buy",
		},
	}
}

func TestPillarWeightsSumToOne(t *testing.T) {
	assert.InDelta(t, 1.0, WeightTide+WeightMovement+WeightSocial, 1e-9)
}

func TestScoreBullishScenario(t *testing.T) {
	scorer := NewScorer(testLogger())
	score := scorer.Score(bullishSignals())
	require.NotNil(t, score)

	// Tide: bullish (80) minus low-vol penalty (0)
	assert.Equal(t, "bullish", score.Tide.Label)
	assert.Equal(t, "low", score.Tide.VolatilityRegime)
	assert.Equal(t, "low", score.Tide.MarketRisk)
	assert.Equal(t, 80.0, score.Tide.Points)

	// Movement: 3/3 bullish votes
	assert.Equal(t, 3, score.Movement.BullishVotes)
	assert.Equal(t, "strong", score.Movement.Strength)
	assert.Equal(t, 90.0, score.Movement.Points)

	// Social: every band positive
	assert.Equal(t, contracts.AssessmentPositive, score.Social.Assessment)
	assert.Equal(t, 80.0, score.Social.Points)

	// 0.4*80 + 0.4*90 + 0.2*80 = 84
	assert.InDelta(t, 84.0, score.WeightedScore, 1e-9)
	assert.Equal(t, contracts.ActionStrongBuy, score.Tier)
	assert.Equal(t, "75-90%", score.SuccessProbability)
}

func TestScoreBearishScenario(t *testing.T) {
	set := &contracts.SignalSet{
		Symbol:    "XYZ",
		Timestamp: time.Date(2025, 6, 2, 21, 0, 0, 0, time.UTC),
		Technical: contracts.TechnicalIndicators{
			Price:      4.2,
			RSI:        f(28),
			MACDLine:   f(-0.6),
			MACDSignal: f(-0.2),
			StochK:     f(18),
		},
		Fundamental: contracts.FundamentalRatios{
			PER:        f(55),
			MarketCap:  f(120e6),
			DebtEquity: f(3.4),
		},
		Macro: contracts.MacroSnapshot{
			VolatilityIndex:    f(32),
			BenchmarkChangePct: f(-1.4),
		},
		Sentiment: contracts.SentimentSnapshot{
			InsiderSentiment: "negative",
			AnalystRating:    "sell",
		},
	}

	score := NewScorer(testLogger()).Score(set)

	// Tide: bearish (20) minus high-vol penalty (15)
	assert.Equal(t, 5.0, score.Tide.Points)
	assert.Equal(t, "high", score.Tide.MarketRisk)
	// Movement: 3/3 bearish
	assert.Equal(t, 10.0, score.Movement.Points)
	// Social: every band negative
	assert.Equal(t, contracts.AssessmentNegative, score.Social.Assessment)

	// 0.4*5 + 0.4*10 + 0.2*20 = 10
	assert.InDelta(t, 10.0, score.WeightedScore, 1e-9)
	assert.Equal(t, contracts.ActionStrongSell, score.Tier)
}

func TestScoreAllInputsMissing(t *testing.T) {
	set := &contracts.SignalSet{
		Symbol:    "EMPTY",
		Timestamp: time.Date(2025, 6, 2, 21, 0, 0, 0, time.UTC),
	}

	score := NewScorer(testLogger()).Score(set)

	// Tide defaults to neutral/moderate: 50 - 5 = 45
	assert.Equal(t, 45.0, score.Tide.Points)
	// No votes cast: neutral/weak = 50
	assert.Equal(t, 0, score.Movement.VotesCast)
	assert.Equal(t, 50.0, score.Movement.Points)
	// No bands resolvable: neutral = 50
	assert.Equal(t, contracts.AssessmentNeutral, score.Social.Assessment)

	// 0.4*45 + 0.4*50 + 0.2*50 = 48 → HOLD
	assert.InDelta(t, 48.0, score.WeightedScore, 1e-9)
	assert.Equal(t, contracts.ActionHold, score.Tier)
}

func TestResolveTier(t *testing.T) {
	tests := []struct {
		score  float64
		action contracts.Action
	}{
		{100, contracts.ActionStrongBuy},
		{75, contracts.ActionStrongBuy},
		{74.9, contracts.ActionBuy},
		{60, contracts.ActionBuy},
		{59.9, contracts.ActionHold},
		{40, contracts.ActionHold},
		{39.9, contracts.ActionSell},
		{25, contracts.ActionSell},
		{24.9, contracts.ActionStrongSell},
		{0, contracts.ActionStrongSell},
	}

	for _, tt := range tests {
		action, prob := resolveTier(tt.score)
		assert.Equal(t, tt.action, action, "score %.1f", tt.score)
		assert.NotEmpty(t, prob)
	}
}

func TestScoreDeterministic(t *testing.T) {
	scorer := NewScorer(testLogger())
	set := bullishSignals()

	first := scorer.Score(set)
	second := scorer.Score(set)

	assert.Equal(t, first, second)
	assert.Equal(t, set.Timestamp, first.AsOf)
}

func TestMovementMixedVotes(t *testing.T) {
	// RSI bullish, MACD bearish, stochastic in the dead zone
	result, degraded := scoreMovement(contracts.TechnicalIndicators{
		RSI:        f(60),
		MACDLine:   f(-0.3),
		MACDSignal: f(0.1),
		StochK:     f(50),
	})

	assert.Empty(t, degraded)
	assert.Equal(t, 3, result.VotesCast)
	assert.Equal(t, 1, result.BullishVotes)
	assert.Equal(t, 1, result.BearishVotes)
	assert.Equal(t, "neutral", result.Direction)
	assert.Equal(t, 50.0, result.Points)
}

func TestTideHighVolatilityNeverNegative(t *testing.T) {
	result, _ := scoreTide(contracts.MacroSnapshot{
		VolatilityIndex:    f(45),
		BenchmarkChangePct: f(-3.0),
	})
	assert.GreaterOrEqual(t, result.Points, 0.0)
	assert.Equal(t, "high", result.VolatilityRegime)
}

func TestSocialDegradedInputsNeutral(t *testing.T) {
	result, degraded := scoreSocial(contracts.FundamentalRatios{}, contracts.SentimentSnapshot{})
	assert.Equal(t, contracts.AssessmentNeutral, result.Assessment)
	assert.Len(t, degraded, 3)
}
