package scoring

import (
	"fmt"
	"sort"
	"strings"

	"github.com/wonny/argus/internal/contracts"
)

// buildRationale renders a deterministic explanation of the verdict.
// Identical recommendations produce byte-identical rationale text.
func buildRationale(rec *contracts.Recommendation) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s: %s (score %.2f, confidence %.0f%%). ",
		rec.Symbol, rec.Action, rec.CombinedScore, rec.Confidence)

	switch rec.Verdict.Class {
	case contracts.DivergenceAgreement:
		fmt.Fprintf(&b, "All three pillars agree (spread %.1f). ", rec.Verdict.Spread)
	case contracts.DivergenceMinor:
		fmt.Fprintf(&b, "Pillars show minor disagreement (spread %.1f); thresholds tightened. ", rec.Verdict.Spread)
	case contracts.DivergenceMajor:
		fmt.Fprintf(&b, "Pillars disagree strongly (spread %.1f); recommendation biased toward HOLD. ", rec.Verdict.Spread)
	}

	for _, sub := range rec.SubScores {
		fmt.Fprintf(&b, "%s %.0f/100", sub.Kind, sub.Value)
		if top := topFactor(sub); top != "" {
			fmt.Fprintf(&b, " (driven by %s)", top)
		}
		b.WriteString(". ")
	}

	if len(rec.DegradedInputs) > 0 {
		degraded := append([]string(nil), rec.DegradedInputs...)
		sort.Strings(degraded)
		fmt.Fprintf(&b, "Degraded inputs defaulted to neutral: %s.", strings.Join(degraded, ", "))
	} else {
		b.WriteString("All inputs present.")
	}

	return b.String()
}

// topFactor names the highest-scoring factor of a sub-score.
// Ties resolve to the first factor in table order, keeping the text
// deterministic.
func topFactor(sub contracts.SubScore) string {
	var best string
	bestPoints := -1.0
	for _, factor := range sub.Factors {
		if factor.Points > bestPoints {
			best = factor.Name
			bestPoints = factor.Points
		}
	}
	return best
}
