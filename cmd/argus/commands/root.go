package commands

import (
	"github.com/spf13/cobra"
)

var (
	// Global flags
	configFile string
	env        string
	verbose    bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "argus",
	Short: "Argus - 시그널 집계 & 추천 엔진",
	Long: `Argus Unified CLI

기술적/펀더멘털/매크로/감성 시그널을 집계해
매수/매도 추천, 예측, 상관관계, 스크리닝을 제공합니다.

Usage:
  go run ./cmd/argus [command]

Examples:
  go run ./cmd/argus api
  go run ./cmd/argus evaluate AAPL
  go run ./cmd/argus screen AAPL MSFT NVDA --timeframe MEDIUM
  go run ./cmd/argus scheduler start`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file (default is .env)")
	rootCmd.PersistentFlags().StringVar(&env, "env", "development", "environment (development|staging|production)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
