package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wonny/argus/internal/contracts"
)

// screenCmd represents the screen command
var screenCmd = &cobra.Command{
	Use:   "screen [symbols...]",
	Short: "복수 종목 스크리닝",
	Long: `복수 종목을 타임프레임별로 스크리닝하고 상위 종목을 랭킹합니다.

Example:
  go run ./cmd/argus screen AAPL MSFT NVDA
  go run ./cmd/argus screen AAPL MSFT NVDA --timeframe SHORT`,
	Args: cobra.MinimumNArgs(1),
	RunE: runScreen,
}

var screenTimeframe string

func init() {
	rootCmd.AddCommand(screenCmd)

	screenCmd.Flags().StringVar(&screenTimeframe, "timeframe", "MEDIUM", "타임프레임 (SHORT|MEDIUM|LONG)")
}

func runScreen(cmd *cobra.Command, args []string) error {
	tf := contracts.Timeframe(screenTimeframe)

	rt, err := initRuntime()
	if err != nil {
		return err
	}
	defer rt.Close()

	ctx, cancel := context.WithTimeout(context.Background(), rt.cfg.Batch.Deadline)
	defer cancel()

	entries, symbolErrs, err := rt.engine.Screen(ctx, args, tf)
	if err != nil {
		return fmt.Errorf("screen: %w", err)
	}

	fmt.Printf("\n=== Screener (%s, %d symbols) ===\n", tf, len(args))
	fmt.Printf("%-8s %-7s %-12s %-6s %-6s %-8s %-10s %-10s\n",
		"Symbol", "Score", "Tier", "Buy", "Sell", "Move%", "Support", "Resist")
	for _, e := range entries {
		fmt.Printf("%-8s %-7.1f %-12s %-6d %-6d %-8.1f %-10.2f %-10.2f\n",
			e.Symbol, e.Score, e.Tier, e.BuyVotes, e.SellVotes,
			e.ExpectedMovePct, e.Support, e.Resistance)
	}

	if len(symbolErrs) > 0 {
		fmt.Println("\n⚠️  Skipped symbols:")
		for _, se := range symbolErrs {
			fmt.Printf("  %s: %s\n", se.Symbol, se.Reason)
		}
	}

	return nil
}
