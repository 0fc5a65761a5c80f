package screener

import (
	"errors"
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

// trendingUp is a fully bullish trend-follower setup:
// RSI 62, MACD crossed up, price above both MAs, riding the upper band,
// positive momentum.
func trendingUp() contracts.TechnicalIndicators {
	return contracts.TechnicalIndicators{
		Price:          110,
		RSI:            f(62),
		MACDLine:       f(1.2),
		MACDSignal:     f(0.8),
		MA20:           f(105),
		MA50:           f(100),
		BollingerUpper: f(112),
		BollingerLower: f(98),
		ATR:            f(2.2),
		Momentum:       f(0.08),
	}
}

func TestCastVotesTrendFollowing(t *testing.T) {
	votes := castVotes(trendingUp(), contracts.TimeframeMedium)

	assert.Equal(t, 1, votes.RSI)
	assert.Equal(t, 1, votes.MACD)
	assert.Equal(t, 1, votes.MA)
	assert.Equal(t, 1, votes.Bollinger) // band position 12/14 > 0.8
	assert.Equal(t, 1, votes.Momentum)
	assert.Equal(t, 5, votes.BuyVotes())
}

func TestCastVotesShortTimeframeFlips(t *testing.T) {
	// Same indicators, SHORT lens: upper-band ride and hot momentum
	// become sell signals, RSI 62 sits in the dead zone.
	votes := castVotes(trendingUp(), contracts.TimeframeShort)

	assert.Equal(t, 0, votes.RSI)
	assert.Equal(t, 1, votes.MACD)
	assert.Equal(t, -1, votes.Bollinger)
	assert.Equal(t, -1, votes.Momentum)
}

func TestCastVotesMissingInputsAbstain(t *testing.T) {
	votes := castVotes(contracts.TechnicalIndicators{Price: 50}, contracts.TimeframeMedium)
	assert.Equal(t, 0, votes.BuyVotes())
	assert.Equal(t, 0, votes.SellVotes())
}

func TestScoreFullySigned(t *testing.T) {
	r := NewRanker(testLogger())

	entry, err := r.Score(Input{Symbol: "AAPL", Technical: trendingUp()}, contracts.TimeframeMedium)
	require.NoError(t, err)

	// 5/5 buy votes: mean(votes)*50+50 = 100
	assert.Equal(t, 100.0, entry.Score)
	assert.Equal(t, contracts.ActionStrongBuy, entry.Tier)
	assert.Equal(t, 5, entry.BuyVotes)
}

func TestScoreRejectsBadTimeframe(t *testing.T) {
	r := NewRanker(testLogger())
	_, err := r.Score(Input{Symbol: "AAPL"}, contracts.Timeframe("WEEKLY"))
	assert.True(t, errors.Is(err, contracts.ErrInvalidInput))
}

func TestScoreBoundedAfterBias(t *testing.T) {
	r := NewRanker(testLogger())

	// LONG bias pushes beyond 100 before the clamp
	entry, err := r.Score(Input{Symbol: "MSFT", Technical: trendingUp()}, contracts.TimeframeLong)
	require.NoError(t, err)
	assert.LessOrEqual(t, entry.Score, 100.0)
	assert.GreaterOrEqual(t, entry.Score, 0.0)
}

func TestResolveTierRequiresVoteAgreement(t *testing.T) {
	// High score but only 2 agreeing votes: extreme tiers are gated
	votes := voteSet{RSI: 1, MACD: 1}
	assert.Equal(t, contracts.ActionHold, resolveTier(80, votes))

	// Same score with 4 agreeing votes
	votes = voteSet{RSI: 1, MACD: 1, MA: 1, Momentum: 1}
	assert.Equal(t, contracts.ActionStrongBuy, resolveTier(80, votes))

	// Sell side mirror
	votes = voteSet{RSI: -1, MACD: -1, MA: -1, Bollinger: -1}
	assert.Equal(t, contracts.ActionStrongSell, resolveTier(20, votes))

	votes = voteSet{RSI: -1, MACD: -1, MA: -1}
	assert.Equal(t, contracts.ActionSell, resolveTier(30, votes))
}

func TestTimeframeBias(t *testing.T) {
	ind := trendingUp()

	assert.Equal(t, 0.0, timeframeBias(ind, voteSet{RSI: 0}, contracts.TimeframeShort))
	assert.Equal(t, 5.0, timeframeBias(ind, voteSet{RSI: 1}, contracts.TimeframeShort))
	assert.Equal(t, -5.0, timeframeBias(ind, voteSet{RSI: -1}, contracts.TimeframeShort))

	// LONG: price 110 above MA50 100
	assert.Equal(t, 5.0, timeframeBias(ind, voteSet{}, contracts.TimeframeLong))
	ind.Price = 90
	assert.Equal(t, -5.0, timeframeBias(ind, voteSet{}, contracts.TimeframeLong))

	assert.Equal(t, 0.0, timeframeBias(ind, voteSet{RSI: 1}, contracts.TimeframeMedium))
}

func TestComputeLevels(t *testing.T) {
	start := time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC)
	points := make([]contracts.PricePoint, 30)
	for i := range points {
		base := 100 + float64(i)
		points[i] = contracts.PricePoint{
			Date: start.AddDate(0, 0, i), Open: base,
			High: base + 2, Low: base - 2, Close: base, Volume: 1000,
		}
	}
	history := &contracts.PriceHistory{Symbol: "T", Points: points}

	lv := computeLevels(history)

	// Rolling window covers the last 20 points only: i = 10..29
	assert.Equal(t, 108.0, lv.Support)    // low at i=10: 110-2
	assert.Equal(t, 131.0, lv.Resistance) // high at i=29: 129+2
	assert.InDelta(t, (131.0+108.0+129.0)/3, lv.Pivot, 1e-9)
}

func TestComputeLevelsEmptyHistory(t *testing.T) {
	lv := computeLevels(nil)
	assert.Zero(t, lv.Support)
	assert.Zero(t, lv.Resistance)
}

func TestExpectedMovePct(t *testing.T) {
	ind := contracts.TechnicalIndicators{Price: 100, ATR: f(2)}

	// Normalized ATR 2% scaled per timeframe
	assert.InDelta(t, 1.6, expectedMovePct(ind, contracts.TimeframeShort), 1e-9)
	assert.InDelta(t, 4.0, expectedMovePct(ind, contracts.TimeframeMedium), 1e-9)
	assert.InDelta(t, 10.0, expectedMovePct(ind, contracts.TimeframeLong), 1e-9)

	assert.Zero(t, expectedMovePct(contracts.TechnicalIndicators{Price: 100}, contracts.TimeframeShort))
}

func TestRankTopN(t *testing.T) {
	r := NewRanker(testLogger())

	entries := []contracts.ScreenerEntry{
		{Symbol: "C", Score: 55},
		{Symbol: "A", Score: 90},
		{Symbol: "B", Score: 70},
		{Symbol: "D", Score: 90},
	}

	ranked := r.Rank(entries, 3)

	require.Len(t, ranked, 3)
	// Ties break alphabetically for a deterministic order
	assert.Equal(t, "A", ranked[0].Symbol)
	assert.Equal(t, "D", ranked[1].Symbol)
	assert.Equal(t, "B", ranked[2].Symbol)
}

func TestNewRun(t *testing.T) {
	at := time.Date(2025, 6, 2, 17, 0, 0, 0, time.UTC)
	top := []contracts.ScreenerEntry{{Symbol: "A"}, {Symbol: "B"}}

	run := NewRun(contracts.TimeframeMedium, 40, top, at)

	assert.NotEmpty(t, run.ID)
	assert.Equal(t, contracts.TimeframeMedium, run.Timeframe)
	assert.Equal(t, 40, run.SymbolCount)
	assert.Equal(t, []string{"A", "B"}, run.TopSymbols)
	assert.Equal(t, at, run.CreatedAt)
}
