package contracts

import "time"

// Action is a bounded trading recommendation
type Action string

const (
	ActionStrongBuy  Action = "STRONG_BUY"
	ActionBuy        Action = "BUY"
	ActionHold       Action = "HOLD"
	ActionSell       Action = "SELL"
	ActionStrongSell Action = "STRONG_SELL"
)

// Divergence classifies disagreement between the three sub-scores
type Divergence string

const (
	DivergenceAgreement Divergence = "AGREEMENT"
	DivergenceMinor     Divergence = "MINOR_DIVERGENCE"
	DivergenceMajor     Divergence = "MAJOR_DIVERGENCE"
)

// RiskLevel is a qualitative risk label attached to a recommendation
type RiskLevel string

const (
	RiskLow    RiskLevel = "LOW"
	RiskMedium RiskLevel = "MEDIUM"
	RiskHigh   RiskLevel = "HIGH"
)

// DivergenceVerdict is the classified spread between sub-scores
type DivergenceVerdict struct {
	Class  Divergence `json:"class"`
	Spread float64    `json:"spread"` // max(scores) - min(scores)
}

// Recommendation is the combined, explainable output of one evaluation
// 동일 입력 → 동일 출력 (숨은 랜덤성 없음)
type Recommendation struct {
	Symbol        string            `json:"symbol"`
	Action        Action            `json:"action"`
	CombinedScore float64           `json:"combined_score"` // 0 ~ 100
	Confidence    float64           `json:"confidence"`     // 20 ~ 100
	Verdict       DivergenceVerdict `json:"verdict"`
	RiskLevel     RiskLevel         `json:"risk_level"`
	Rationale     string            `json:"rationale"`

	SubScores      []SubScore `json:"sub_scores"`
	DegradedInputs []string   `json:"degraded_inputs,omitempty"`

	// Mirrors SignalSet.Timestamp so identical inputs produce
	// identical output bytes.
	AsOf time.Time `json:"as_of"`
}

// PillarAssessment labels the social-factor pillar outcome
type PillarAssessment string

const (
	AssessmentPositive PillarAssessment = "POSITIVE"
	AssessmentNeutral  PillarAssessment = "NEUTRAL"
	AssessmentNegative PillarAssessment = "NEGATIVE"
)

// TideResult is the macro-regime pillar outcome
type TideResult struct {
	Label            string  `json:"label"` // bullish|bearish|neutral
	VolatilityRegime string  `json:"volatility_regime"`
	MarketRisk       string  `json:"market_risk"`
	Points           float64 `json:"points"` // 0 ~ 100
}

// MovementResult is the local technical-consensus pillar outcome
type MovementResult struct {
	BullishVotes int     `json:"bullish_votes"`
	BearishVotes int     `json:"bearish_votes"`
	VotesCast    int     `json:"votes_cast"` // out of 3
	Direction    string  `json:"direction"`  // bullish|bearish|neutral
	Strength     string  `json:"strength"`   // strong|moderate|weak
	ConsensusPct float64 `json:"consensus_pct"`
	Points       float64 `json:"points"` // 0 ~ 100
}

// SocialResult is the social-factor pillar outcome
type SocialResult struct {
	Assessment PillarAssessment `json:"assessment"`
	Factors    []string         `json:"factors"`
	Points     float64          `json:"points"` // 0 ~ 100
}

// PillarScore is the independent three-pillar assessment
// Combiner와는 별도의 렌즈로 노출 (병합하지 않음)
type PillarScore struct {
	Symbol   string         `json:"symbol"`
	Tide     TideResult     `json:"tide"`
	Movement MovementResult `json:"movement"`
	Social   SocialResult   `json:"social"`

	WeightedScore      float64 `json:"weighted_score"` // 0 ~ 100
	Tier               Action  `json:"tier"`
	SuccessProbability string  `json:"success_probability"`

	AsOf time.Time `json:"as_of"`
}

// DualLensResult surfaces both scorers side by side.
// The two lenses evolved independently and may disagree; callers see
// both rather than a silently merged answer.
type DualLensResult struct {
	Recommendation *Recommendation `json:"recommendation"`
	Pillars        *PillarScore    `json:"pillars"`
}
