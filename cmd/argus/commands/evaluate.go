package commands

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

// evaluateCmd represents the evaluate command
var evaluateCmd = &cobra.Command{
	Use:   "evaluate [symbol]",
	Short: "단일 종목 종합 평가",
	Long: `단일 종목의 시그널을 수집하고 종합 추천을 계산합니다.

Example:
  go run ./cmd/argus evaluate AAPL
  go run ./cmd/argus evaluate AAPL --dual`,
	Args: cobra.ExactArgs(1),
	RunE: runEvaluate,
}

var evaluateDual bool

func init() {
	rootCmd.AddCommand(evaluateCmd)

	evaluateCmd.Flags().BoolVar(&evaluateDual, "dual", false, "3-기둥 평가도 함께 출력")
}

func runEvaluate(cmd *cobra.Command, args []string) error {
	symbol := args[0]

	rt, err := initRuntime()
	if err != nil {
		return err
	}
	defer rt.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	set, err := rt.engine.BuildSignalSet(ctx, symbol)
	if err != nil {
		return fmt.Errorf("build signal set: %w", err)
	}

	rec := rt.engine.Evaluate(set)

	fmt.Printf("\n=== %s ===\n", rec.Symbol)
	fmt.Printf("Action      : %s\n", rec.Action)
	fmt.Printf("Score       : %.1f\n", rec.CombinedScore)
	fmt.Printf("Confidence  : %.0f\n", rec.Confidence)
	fmt.Printf("Verdict     : %v\n", rec.Verdict)
	fmt.Printf("Risk        : %s\n", rec.RiskLevel)
	fmt.Printf("Rationale   : %s\n", rec.Rationale)
	fmt.Printf("As Of       : %s\n", rec.AsOf.Format("2006-01-02 15:04:05"))

	for _, sub := range rec.SubScores {
		marker := ""
		if sub.IsDegraded() {
			marker = " (degraded)"
		}
		fmt.Printf("  %-12s %.1f%s\n", sub.Kind, sub.Value, marker)
	}

	if len(rec.DegradedInputs) > 0 {
		fmt.Printf("⚠️  Degraded inputs: %s\n", strings.Join(rec.DegradedInputs, ", "))
	}

	if evaluateDual {
		pillars := rt.engine.EvaluateBothLenses(set).Pillars

		fmt.Println("\n--- Pillars ---")
		fmt.Printf("Tide        : %.1f (%s, %s)\n",
			pillars.Tide.Points, pillars.Tide.Label, pillars.Tide.VolatilityRegime)
		fmt.Printf("Movement    : %s/%s (%d/%d votes)\n",
			pillars.Movement.Direction, pillars.Movement.Strength,
			pillars.Movement.BullishVotes+pillars.Movement.BearishVotes, pillars.Movement.VotesCast)
		fmt.Printf("Social      : %.1f (%s)\n", pillars.Social.Points, pillars.Social.Assessment)
		fmt.Printf("Weighted    : %.1f → %s (%s)\n",
			pillars.WeightedScore, pillars.Tier, pillars.SuccessProbability)
	}

	return nil
}
