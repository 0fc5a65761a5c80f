package screener

import (
	"fmt"
	"sort"

	"github.com/wonny/argus/internal/contracts"
	"github.com/wonny/argus/pkg/logger"
)

// Timeframe bias weight (points added per biased vote)
const biasPoints = 5.0

// tierRule gates a tier on BOTH a score threshold and a minimum vote
// agreement. 점수만으로는 극단 티어(STRONG_*) 불가.
type tierRule struct {
	action   contracts.Action
	minScore float64
	minVotes int
	sellSide bool
}

// Ordered: first matching rule wins
var tierRules = []tierRule{
	{contracts.ActionStrongBuy, 75, 4, false},
	{contracts.ActionBuy, 60, 3, false},
	{contracts.ActionStrongSell, 75, 4, true},
	{contracts.ActionSell, 60, 3, true},
}

// Input carries the pre-fetched signals for one screener candidate
type Input struct {
	Symbol    string
	Technical contracts.TechnicalIndicators
	History   *contracts.PriceHistory
}

// Ranker scores symbols for one timeframe and ranks the results
// ⭐ SSOT: 스크리너 점수/랭킹은 여기서만
type Ranker struct {
	logger *logger.Logger
}

// NewRanker creates a new ranker
func NewRanker(log *logger.Logger) *Ranker {
	return &Ranker{
		logger: log.WithField("module", "screener"),
	}
}

// Score evaluates one symbol for the timeframe
func (r *Ranker) Score(input Input, tf contracts.Timeframe) (*contracts.ScreenerEntry, error) {
	if !tf.Valid() {
		return nil, fmt.Errorf("screener %s: timeframe %q: %w",
			input.Symbol, tf, contracts.ErrInvalidInput)
	}
	if input.Symbol == "" {
		return nil, fmt.Errorf("screener: empty symbol: %w", contracts.ErrInvalidInput)
	}

	votes := castVotes(input.Technical, tf)
	score := votes.mean()*50 + 50
	score += timeframeBias(input.Technical, votes, tf)
	score = clamp100(score)

	lv := computeLevels(input.History)

	entry := &contracts.ScreenerEntry{
		Symbol:          input.Symbol,
		Timeframe:       tf,
		Score:           score,
		Tier:            resolveTier(score, votes),
		BuyVotes:        votes.BuyVotes(),
		SellVotes:       votes.SellVotes(),
		ExpectedMovePct: expectedMovePct(input.Technical, tf),
		Support:         lv.Support,
		Resistance:      lv.Resistance,
		Pivot:           lv.Pivot,
	}

	r.logger.WithFields(map[string]interface{}{
		"symbol":     input.Symbol,
		"timeframe":  string(tf),
		"score":      score,
		"tier":       string(entry.Tier),
		"buy_votes":  entry.BuyVotes,
		"sell_votes": entry.SellVotes,
	}).Debug("Symbol scored")

	return entry, nil
}

// Rank sorts entries by score descending and keeps the top N
func (r *Ranker) Rank(entries []contracts.ScreenerEntry, topN int) []contracts.ScreenerEntry {
	sorted := make([]contracts.ScreenerEntry, len(entries))
	copy(sorted, entries)

	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Score != sorted[j].Score {
			return sorted[i].Score > sorted[j].Score
		}
		// 동점은 심볼 사전순 (결정적 출력)
		return sorted[i].Symbol < sorted[j].Symbol
	})

	if topN > 0 && len(sorted) > topN {
		sorted = sorted[:topN]
	}

	r.logger.WithFields(map[string]interface{}{
		"total": len(entries),
		"kept":  len(sorted),
	}).Info("Ranking completed")

	return sorted
}

// timeframeBias applies the per-timeframe weighting adjustment:
// SHORT gives RSI an extra say, LONG leans on the MA50 trend.
func timeframeBias(ind contracts.TechnicalIndicators, votes voteSet, tf contracts.Timeframe) float64 {
	switch tf {
	case contracts.TimeframeShort:
		return float64(votes.RSI) * biasPoints
	case contracts.TimeframeLong:
		if ind.MA50 == nil || ind.Price <= 0 {
			return 0
		}
		if ind.Price > *ind.MA50 {
			return biasPoints
		}
		return -biasPoints
	}
	return 0
}

// resolveTier gates tiers on score AND vote agreement
func resolveTier(score float64, votes voteSet) contracts.Action {
	for _, rule := range tierRules {
		if rule.sellSide {
			if 100-score >= rule.minScore && votes.SellVotes() >= rule.minVotes {
				return rule.action
			}
		} else {
			if score >= rule.minScore && votes.BuyVotes() >= rule.minVotes {
				return rule.action
			}
		}
	}
	return contracts.ActionHold
}

func clamp100(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
