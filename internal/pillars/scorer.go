package pillars

import (
	"github.com/wonny/argus/internal/contracts"
	"github.com/wonny/argus/pkg/logger"
)

// Pillar weights. Must sum to 1.0.
const (
	WeightTide     = 0.4
	WeightMovement = 0.4
	WeightSocial   = 0.2
)

// tier is one row of the recommendation tier table.
// 성공 확률 라벨은 통계 추정치가 아니라 정책 상수
type tier struct {
	minScore    float64
	action      contracts.Action
	probability string
}

// Ordered tier table, highest first
var tierTable = []tier{
	{75, contracts.ActionStrongBuy, "75-90%"},
	{60, contracts.ActionBuy, "60-75%"},
	{40, contracts.ActionHold, "45-60%"},
	{25, contracts.ActionSell, "60-75% downside"},
	{0, contracts.ActionStrongSell, "75-90% downside"},
}

// Scorer is the independent three-pillar lens over the same inputs as
// the combiner. The two scorers evolved separately and are surfaced
// side by side; neither overrides the other.
// ⭐ SSOT: 3기둥 점수 계산은 여기서만
type Scorer struct {
	logger *logger.Logger
}

// NewScorer creates a new pillar scorer
func NewScorer(log *logger.Logger) *Scorer {
	return &Scorer{
		logger: log.WithField("module", "pillars"),
	}
}

// Score computes the three pillars and their weighted tier.
// Deterministic: identical inputs yield an identical PillarScore.
func (s *Scorer) Score(set *contracts.SignalSet) *contracts.PillarScore {
	tide, tideDegraded := scoreTide(set.Macro)
	movement, movementDegraded := scoreMovement(set.Technical)
	social, socialDegraded := scoreSocial(set.Fundamental, set.Sentiment)

	weighted := tide.Points*WeightTide +
		movement.Points*WeightMovement +
		social.Points*WeightSocial

	action, probability := resolveTier(weighted)

	score := &contracts.PillarScore{
		Symbol:             set.Symbol,
		Tide:               tide,
		Movement:           movement,
		Social:             social,
		WeightedScore:      weighted,
		Tier:               action,
		SuccessProbability: probability,
		AsOf:               set.Timestamp,
	}

	degraded := len(tideDegraded) + len(movementDegraded) + len(socialDegraded)
	if degraded > 0 {
		s.logger.WithFields(map[string]interface{}{
			"symbol":         set.Symbol,
			"degraded_count": degraded,
		}).Warn("Pillar score computed with defaulted inputs")
	}

	s.logger.WithFields(map[string]interface{}{
		"symbol":   set.Symbol,
		"tide":     tide.Points,
		"movement": movement.Points,
		"social":   social.Points,
		"weighted": weighted,
		"tier":     string(action),
	}).Debug("Pillar score computed")

	return score
}

// resolveTier maps the weighted score to its tier row
func resolveTier(score float64) (contracts.Action, string) {
	for _, t := range tierTable {
		if score >= t.minScore {
			return t.action, t.probability
		}
	}
	last := tierTable[len(tierTable)-1]
	return last.action, last.probability
}
