package scoring

import (
	"fmt"

	"github.com/wonny/argus/internal/contracts"
	"github.com/wonny/argus/pkg/logger"
)

// SentimentScorer maps categorical sentiment inputs to a 0-100
// sub-score
// ⭐ SSOT: 센티먼트 점수 계산은 여기서만
type SentimentScorer struct {
	logger *logger.Logger
}

// NewSentimentScorer creates a new sentiment scorer
func NewSentimentScorer(log *logger.Logger) *SentimentScorer {
	return &SentimentScorer{
		logger: log.WithField("scorer", "sentiment"),
	}
}

// Score computes the sentiment sub-score from the categorical maps
// plus the relative-strength band. Missing categories earn the table
// default and are recorded in Degraded.
func (s *SentimentScorer) Score(set *contracts.SignalSet) contracts.SubScore {
	sent := set.Sentiment
	score := contracts.SubScore{Kind: contracts.ScoreSentiment}

	s.applyCategory(&score, analystTable, sent.AnalystRating)
	s.applyCategory(&score, insiderTable, sent.InsiderSentiment)
	s.applyCategory(&score, newsTable, sent.NewsSentiment)
	s.applyCategory(&score, technicalSentimentTable, sent.TechnicalSentiment)
	s.applyRelativeStrength(&score, sent.RelativeStrength)

	var total float64
	for _, factor := range score.Factors {
		total += factor.Points
	}
	score.Value = clamp100(total)

	if score.IsDegraded() {
		s.logger.WithFields(map[string]interface{}{
			"symbol":   set.Symbol,
			"degraded": score.Degraded,
		}).Warn("Sentiment score computed with defaulted inputs")
	}

	return score
}

func (s *SentimentScorer) applyCategory(score *contracts.SubScore, table CategoryTable, category string) {
	points, found := table.Lookup(category)
	if !found {
		score.Degraded = append(score.Degraded, table.Name)
		score.Factors = append(score.Factors, contracts.Factor{
			Name: table.Name, Points: points, Detail: "missing, neutral default",
		})
		return
	}

	score.Factors = append(score.Factors, contracts.Factor{
		Name: table.Name, Points: points, Detail: category,
	})
}

// applyRelativeStrength: 벤치마크 대비 3개월 상대 성과 밴딩
func (s *SentimentScorer) applyRelativeStrength(score *contracts.SubScore, rs *float64) {
	if rs == nil {
		score.Degraded = append(score.Degraded, "relative_strength")
		score.Factors = append(score.Factors, contracts.Factor{
			Name: "relative_strength", Points: relativeStrengthUnknownPoints, Detail: "missing, neutral default",
		})
		return
	}

	band := relativeStrengthTable.Lookup(*rs)
	score.Factors = append(score.Factors, contracts.Factor{
		Name:   "relative_strength",
		Points: band.Points,
		Detail: fmt.Sprintf("%s (%+.1f%% vs benchmark)", band.Name, *rs),
	})
}
