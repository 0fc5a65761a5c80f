package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/wonny/argus/internal/api"
	"github.com/wonny/argus/internal/api/handlers"
)

// apiCmd represents the api command
var apiCmd = &cobra.Command{
	Use:   "api",
	Short: "API 서버 시작",
	Long: `REST API 서버를 시작합니다.

이 명령어는:
- HTTP API 서버 시작
- 평가/예측/스크리닝 엔드포인트 제공

Endpoints:
  GET  /health                        - Health check
  GET  /api/evaluate/{symbol}         - 종합 추천
  GET  /api/evaluate/{symbol}/dual    - 추천 + 3-기둥 평가
  GET  /api/forecast/{symbol}         - 단기 예측
  GET  /api/forecast/{symbol}/project - 장기 시나리오
  GET  /api/forecast/{symbol}/risk    - 하방 리스크
  POST /api/screener                  - 스크리너
  POST /api/correlation               - 상관관계 분석

Example:
  go run ./cmd/argus api
  go run ./cmd/argus api --port 8090`,
	RunE: runAPIServer,
}

var (
	apiPort string
)

func init() {
	rootCmd.AddCommand(apiCmd)

	// Flags
	apiCmd.Flags().StringVar(&apiPort, "port", "", "API 서버 포트 (기본값: config)")
}

func runAPIServer(cmd *cobra.Command, args []string) error {
	fmt.Println("=== Argus API Server ===")

	rt, err := initRuntime()
	if err != nil {
		return err
	}
	defer rt.Close()

	// Override port if flag is set
	if apiPort != "" {
		rt.cfg.Port = apiPort
	}

	log := rt.log

	log.WithFields(map[string]interface{}{
		"port": rt.cfg.Port,
		"env":  rt.cfg.Env,
	}).Info("Initializing API server")

	// Create handlers
	evaluateHandler := handlers.NewEvaluateHandler(rt.engine, log)
	forecastHandler := handlers.NewForecastHandler(rt.engine, log)
	screenerHandler := handlers.NewScreenerHandler(rt.engine, log)

	// Create router and server
	router := api.NewRouter(evaluateHandler, forecastHandler, screenerHandler, log)
	server := api.New(rt.cfg, log, router)

	// Start server with graceful shutdown
	go func() {
		if err := server.Start(); err != nil {
			log.WithError(err).Fatal("Failed to start server")
		}
	}()

	log.Info("API server started successfully")
	fmt.Printf("\n✅ Server running on http://localhost:%s\n", rt.cfg.Port)
	fmt.Println("\nAvailable endpoints:")
	fmt.Println("  GET  /health")
	fmt.Println("  GET  /api/evaluate/{symbol}")
	fmt.Println("  GET  /api/evaluate/{symbol}/dual")
	fmt.Println("  GET  /api/forecast/{symbol}")
	fmt.Println("  GET  /api/forecast/{symbol}/project")
	fmt.Println("  GET  /api/forecast/{symbol}/risk")
	fmt.Println("  POST /api/screener")
	fmt.Println("  POST /api/correlation")
	fmt.Println("\nPress Ctrl+C to stop")

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	log.Info("Server stopped")
	return nil
}
