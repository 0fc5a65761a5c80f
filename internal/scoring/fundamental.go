package scoring

import (
	"fmt"

	"github.com/wonny/argus/internal/contracts"
	"github.com/wonny/argus/pkg/logger"
)

// FundamentalScorer maps valuation ratios to a 0-100 sub-score
// ⭐ SSOT: 펀더멘털 점수 계산은 여기서만
type FundamentalScorer struct {
	logger *logger.Logger
}

// NewFundamentalScorer creates a new fundamental scorer
func NewFundamentalScorer(log *logger.Logger) *FundamentalScorer {
	return &FundamentalScorer{
		logger: log.WithField("scorer", "fundamental"),
	}
}

// Score computes the fundamental sub-score from the banding tables.
// nil ratios earn their documented unknown points and are recorded in
// Degraded.
func (s *FundamentalScorer) Score(set *contracts.SignalSet) contracts.SubScore {
	fund := set.Fundamental
	score := contracts.SubScore{Kind: contracts.ScoreFundamental}

	s.applyBand(&score, "per", fund.PER, perTable, perUnknownPoints)
	s.applyBand(&score, "roe", fund.ROE, roeTable, roeUnknownPoints)
	s.applyBand(&score, "debt_equity", fund.DebtEquity, debtEquityTable, debtEquityUnknownPoints)
	s.applyBand(&score, "earnings_growth", fund.EarningsGrowth, growthTable, growthUnknownPoints)
	s.applyBand(&score, "market_cap", fund.MarketCap, marketCapTable, marketCapUnknownPoints)

	var total float64
	for _, factor := range score.Factors {
		total += factor.Points
	}
	score.Value = clamp100(total)

	if score.IsDegraded() {
		s.logger.WithFields(map[string]interface{}{
			"symbol":   set.Symbol,
			"degraded": score.Degraded,
		}).Warn("Fundamental score computed with defaulted inputs")
	}

	return score
}

// applyBand scores one ratio against its ordered band table.
// 음수 PER(적자)은 unknown 취급 — 밴딩 불가
func (s *FundamentalScorer) applyBand(
	score *contracts.SubScore,
	name string,
	value *float64,
	table BandTable,
	unknownPoints float64,
) {
	if value == nil || (name == "per" && *value <= 0) {
		score.Degraded = append(score.Degraded, name)
		score.Factors = append(score.Factors, contracts.Factor{
			Name: name, Points: unknownPoints, Detail: "unknown, neutral default",
		})
		return
	}

	band := table.Lookup(*value)
	score.Factors = append(score.Factors, contracts.Factor{
		Name:   name,
		Points: band.Points,
		Detail: fmt.Sprintf("%s (%.2f)", band.Name, *value),
	})
}
