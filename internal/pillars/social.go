package pillars

import "github.com/wonny/argus/internal/contracts"

// Social-factor band boundaries
const (
	cheapPERMax       = 15.0
	expensivePERMin   = 40.0
	largeCapMin       = 10e9
	microCapMax       = 300e6
	lowLeverageMax    = 0.5
	highLeverageMin   = 2.0
)

// Social point scale per assessment
var socialPoints = map[contracts.PillarAssessment]float64{
	contracts.AssessmentPositive: 80,
	contracts.AssessmentNeutral:  50,
	contracts.AssessmentNegative: 20,
}

// scoreSocial reduces valuation/size/leverage bands, enriched with
// insider and analyst sentiment when present, to a single assessment.
func scoreSocial(fund contracts.FundamentalRatios, sent contracts.SentimentSnapshot) (contracts.SocialResult, []string) {
	var degraded []string
	var factors []string
	net := 0

	// Valuation band
	if fund.PER == nil || *fund.PER <= 0 {
		degraded = append(degraded, "per")
	} else if *fund.PER < cheapPERMax {
		net++
		factors = append(factors, "attractive valuation")
	} else if *fund.PER > expensivePERMin {
		net--
		factors = append(factors, "stretched valuation")
	}

	// Size band
	if fund.MarketCap == nil {
		degraded = append(degraded, "market_cap")
	} else if *fund.MarketCap >= largeCapMin {
		net++
		factors = append(factors, "large-cap stability")
	} else if *fund.MarketCap < microCapMax {
		net--
		factors = append(factors, "micro-cap fragility")
	}

	// Leverage band
	if fund.DebtEquity == nil {
		degraded = append(degraded, "debt_equity")
	} else if *fund.DebtEquity < lowLeverageMax {
		net++
		factors = append(factors, "low leverage")
	} else if *fund.DebtEquity > highLeverageMin {
		net--
		factors = append(factors, "high leverage")
	}

	// Optional enrichment: 내부자/애널리스트 센티먼트
	switch sent.InsiderSentiment {
	case "positive":
		net++
		factors = append(factors, "insider buying")
	case "negative":
		net--
		factors = append(factors, "insider selling")
	}

	switch sent.AnalystRating {
	case "strong_buy", "buy":
		net++
		factors = append(factors, "analyst support")
	case "sell", "strong_sell":
		net--
		factors = append(factors, "analyst caution")
	}

	assessment := contracts.AssessmentNeutral
	if net > 0 {
		assessment = contracts.AssessmentPositive
	} else if net < 0 {
		assessment = contracts.AssessmentNegative
	}

	return contracts.SocialResult{
		Assessment: assessment,
		Factors:    factors,
		Points:     socialPoints[assessment],
	}, degraded
}
