package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

// correlateCmd represents the correlate command
var correlateCmd = &cobra.Command{
	Use:   "correlate [symbols...]",
	Short: "종목 간 상관관계 분석",
	Long: `종목 간 Pearson/Spearman 상관관계와 분산투자 점수를 계산합니다.

Example:
  go run ./cmd/argus correlate AAPL MSFT NVDA GOOG`,
	Args: cobra.MinimumNArgs(2),
	RunE: runCorrelate,
}

func init() {
	rootCmd.AddCommand(correlateCmd)
}

func runCorrelate(cmd *cobra.Command, args []string) error {
	rt, err := initRuntime()
	if err != nil {
		return err
	}
	defer rt.Close()

	ctx, cancel := context.WithTimeout(context.Background(), rt.cfg.Batch.Deadline)
	defer cancel()

	matrix, score, symbolErrs, err := rt.engine.Correlate(ctx, args)
	if err != nil {
		return fmt.Errorf("correlate: %w", err)
	}

	fmt.Printf("\n=== Correlation (%d symbols) ===\n", len(matrix.Symbols))

	// Pearson matrix
	fmt.Printf("%-8s", "")
	for _, s := range matrix.Symbols {
		fmt.Printf("%8s", s)
	}
	fmt.Println()
	for i, s := range matrix.Symbols {
		fmt.Printf("%-8s", s)
		for j := range matrix.Symbols {
			fmt.Printf("%8.2f", matrix.Pearson[i][j])
		}
		fmt.Println()
	}

	if len(matrix.HighPairs) > 0 {
		fmt.Println("\nRedundant pairs (|corr| > 0.7):")
		for _, p := range matrix.HighPairs {
			fmt.Printf("  %s / %s : %.2f\n", p.SymbolA, p.SymbolB, p.Correlation)
		}
	}

	if len(matrix.LowPairs) > 0 {
		fmt.Println("\nDiversifying pairs (|corr| < 0.3):")
		for _, p := range matrix.LowPairs {
			fmt.Printf("  %s / %s : %.2f\n", p.SymbolA, p.SymbolB, p.Correlation)
		}
	}

	fmt.Printf("\nDiversification: %.1f (%s)\n", score.Score, score.Recommendation)

	if len(symbolErrs) > 0 {
		fmt.Println("\n⚠️  Skipped symbols:")
		for _, se := range symbolErrs {
			fmt.Printf("  %s: %s\n", se.Symbol, se.Reason)
		}
	}

	return nil
}
