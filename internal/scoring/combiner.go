package scoring

import (
	"math"

	"github.com/wonny/argus/internal/contracts"
	"github.com/wonny/argus/pkg/logger"
)

// Sub-score weights. Must sum to 1.0.
const (
	WeightTechnical   = 0.40
	WeightFundamental = 0.35
	WeightSentiment   = 0.25
)

// Divergence spread boundaries
const (
	agreementSpread = 15.0
	minorSpread     = 30.0
)

// actionThresholds is one divergence class's recommendation table.
// 임계값은 단조: strongBuy > buy > hold band > sell > strongSell
type actionThresholds struct {
	strongBuy  float64 // score >= → STRONG_BUY
	buy        float64 // score >= → BUY
	sell       float64 // score <  → SELL
	strongSell float64 // score <  → STRONG_SELL
}

// Per-class tables. MAJOR_DIVERGENCE deliberately narrows the
// actionable bands so disagreeing pillars land on HOLD: 리스크 회피
// 정책이지 버그가 아님.
var thresholdsByClass = map[contracts.Divergence]actionThresholds{
	contracts.DivergenceAgreement: {strongBuy: 85, buy: 70, sell: 30, strongSell: 15},
	contracts.DivergenceMinor:     {strongBuy: 90, buy: 75, sell: 25, strongSell: 10},
	contracts.DivergenceMajor:     {strongBuy: 95, buy: 85, sell: 15, strongSell: 5},
}

// Confidence base per divergence class
var confidenceBase = map[contracts.Divergence]float64{
	contracts.DivergenceAgreement: 85,
	contracts.DivergenceMinor:     70,
	contracts.DivergenceMajor:     55,
}

// Combiner weights the three sub-scores into a bounded recommendation
// ⭐ SSOT: 최종 추천 결합은 여기서만
type Combiner struct {
	logger *logger.Logger
}

// NewCombiner creates a new combiner
func NewCombiner(log *logger.Logger) *Combiner {
	return &Combiner{
		logger: log.WithField("module", "combiner"),
	}
}

// Combine produces the recommendation for one evaluated SignalSet.
// Deterministic: identical inputs yield an identical Recommendation.
func (c *Combiner) Combine(set *contracts.SignalSet, technical, fundamental, sentiment contracts.SubScore) *contracts.Recommendation {
	combined := technical.Value*WeightTechnical +
		fundamental.Value*WeightFundamental +
		sentiment.Value*WeightSentiment

	verdict := Classify(technical.Value, fundamental.Value, sentiment.Value)
	action := resolveAction(combined, verdict.Class)
	confidence := calculateConfidence(verdict.Class, technical.Value, fundamental.Value, sentiment.Value)

	degraded := collectDegraded(technical, fundamental, sentiment)

	rec := &contracts.Recommendation{
		Symbol:         set.Symbol,
		Action:         action,
		CombinedScore:  combined,
		Confidence:     confidence,
		Verdict:        verdict,
		RiskLevel:      riskLevelFor(verdict.Class),
		SubScores:      []contracts.SubScore{technical, fundamental, sentiment},
		DegradedInputs: degraded,
		AsOf:           set.Timestamp,
	}
	rec.Rationale = buildRationale(rec)

	c.logger.WithFields(map[string]interface{}{
		"symbol":     set.Symbol,
		"combined":   combined,
		"action":     string(action),
		"divergence": string(verdict.Class),
		"confidence": confidence,
	}).Debug("Combined recommendation")

	return rec
}

// Classify derives the divergence verdict from the three sub-scores.
// Invariant under permutation of its arguments.
func Classify(a, b, c float64) contracts.DivergenceVerdict {
	spread := math.Max(a, math.Max(b, c)) - math.Min(a, math.Min(b, c))

	var class contracts.Divergence
	switch {
	case spread < agreementSpread:
		class = contracts.DivergenceAgreement
	case spread < minorSpread:
		class = contracts.DivergenceMinor
	default:
		class = contracts.DivergenceMajor
	}

	return contracts.DivergenceVerdict{Class: class, Spread: spread}
}

// resolveAction applies the class-specific threshold table
func resolveAction(score float64, class contracts.Divergence) contracts.Action {
	t := thresholdsByClass[class]
	switch {
	case score >= t.strongBuy:
		return contracts.ActionStrongBuy
	case score >= t.buy:
		return contracts.ActionBuy
	case score < t.strongSell:
		return contracts.ActionStrongSell
	case score < t.sell:
		return contracts.ActionSell
	}
	return contracts.ActionHold
}

// calculateConfidence starts at the class base and subtracts half the
// mean pairwise disagreement, clamped to [20, 100]
func calculateConfidence(class contracts.Divergence, a, b, c float64) float64 {
	meanDisagreement := (math.Abs(a-b) + math.Abs(a-c) + math.Abs(b-c)) / 3

	confidence := confidenceBase[class] - meanDisagreement*0.5
	if confidence < 20 {
		return 20
	}
	if confidence > 100 {
		return 100
	}
	return confidence
}

func riskLevelFor(class contracts.Divergence) contracts.RiskLevel {
	switch class {
	case contracts.DivergenceAgreement:
		return contracts.RiskLow
	case contracts.DivergenceMinor:
		return contracts.RiskMedium
	}
	return contracts.RiskHigh
}

// collectDegraded merges degraded-input lists in stable order
func collectDegraded(scores ...contracts.SubScore) []string {
	var merged []string
	for _, s := range scores {
		for _, name := range s.Degraded {
			merged = append(merged, string(s.Kind)+"."+name)
		}
	}
	return merged
}
