package commands

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/spf13/cobra"
)

// forecastCmd represents the forecast command
var forecastCmd = &cobra.Command{
	Use:   "forecast [symbol]",
	Short: "단기 가격 예측",
	Long: `앙상블 회귀 기반 단기 가격 예측을 실행합니다.

Example:
  go run ./cmd/argus forecast AAPL
  go run ./cmd/argus forecast AAPL --days 60`,
	Args: cobra.ExactArgs(1),
	RunE: runForecast,
}

// projectCmd represents the project command
var projectCmd = &cobra.Command{
	Use:   "project [symbol]",
	Short: "장기 시나리오 전망",
	Long: `로그노말 밴드 기반 장기 시나리오(강세/기준/약세)를 계산합니다.

Example:
  go run ./cmd/argus project AAPL --years 10`,
	Args: cobra.ExactArgs(1),
	RunE: runProject,
}

// riskCmd represents the risk command
var riskCmd = &cobra.Command{
	Use:   "risk [symbol]",
	Short: "하방 리스크 분석",
	Long: `일간 수익률 분포 기반 VaR와 포지션 사이징을 계산합니다.

Example:
  go run ./cmd/argus risk AAPL`,
	Args: cobra.ExactArgs(1),
	RunE: runRisk,
}

var (
	forecastDays int
	projectYears int
)

func init() {
	rootCmd.AddCommand(forecastCmd)
	rootCmd.AddCommand(projectCmd)
	rootCmd.AddCommand(riskCmd)

	forecastCmd.Flags().IntVar(&forecastDays, "days", 30, "예측 기간 (일)")
	projectCmd.Flags().IntVar(&projectYears, "years", 5, "전망 기간 (년)")
}

func runForecast(cmd *cobra.Command, args []string) error {
	rt, err := initRuntime()
	if err != nil {
		return err
	}
	defer rt.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	result, err := rt.engine.Forecast(ctx, args[0], forecastDays)
	if err != nil {
		return fmt.Errorf("forecast: %w", err)
	}

	fmt.Printf("\n=== %s (%d days) ===\n", result.Symbol, result.HorizonDays)
	fmt.Printf("Current     : %.2f\n", result.CurrentPrice)
	fmt.Printf("Estimate    : %.2f (%.2f ~ %.2f)\n",
		result.PointEstimate, result.RangeLow, result.RangeHigh)
	fmt.Printf("Tendency    : %s\n", result.Tendency)

	fmt.Println("\nModel weights:")
	names := make([]string, 0, len(result.ModelWeights))
	for name := range result.ModelWeights {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Printf("  %-12s %.3f\n", name, result.ModelWeights[name])
	}

	return nil
}

func runProject(cmd *cobra.Command, args []string) error {
	rt, err := initRuntime()
	if err != nil {
		return err
	}
	defer rt.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	proj, err := rt.engine.ProjectLongTerm(ctx, args[0], projectYears)
	if err != nil {
		return fmt.Errorf("project: %w", err)
	}

	fmt.Printf("\n=== %s (%d years) ===\n", proj.Symbol, proj.Years)
	fmt.Printf("Current     : %.2f\n", proj.CurrentPrice)
	fmt.Printf("Ann. Return : %.2f%%\n", proj.AnnualReturn*100)
	fmt.Printf("Ann. Vol    : %.2f%%\n", proj.AnnualVolatility*100)
	fmt.Printf("Bullish     : %.2f\n", proj.Bullish)
	fmt.Printf("Base        : %.2f\n", proj.Base)
	fmt.Printf("Bearish     : %.2f\n", proj.Bearish)

	return nil
}

func runRisk(cmd *cobra.Command, args []string) error {
	rt, err := initRuntime()
	if err != nil {
		return err
	}
	defer rt.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	risk, err := rt.engine.DownsideRisk(ctx, args[0])
	if err != nil {
		return fmt.Errorf("downside risk: %w", err)
	}

	fmt.Printf("\n=== %s ===\n", risk.Symbol)
	fmt.Printf("VaR 95      : %.2f%%\n", risk.VaR95*100)
	fmt.Printf("VaR 99      : %.2f%%\n", risk.VaR99*100)
	fmt.Printf("Worst Day   : %.2f%%\n", risk.WorstDay*100)
	fmt.Printf("Bottom Q    : %.2f%%\n", risk.BottomQuartileMean*100)
	fmt.Printf("Sizing      : %s\n", risk.PositionSizing)

	return nil
}
