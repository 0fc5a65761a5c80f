package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
// ⭐ SSOT: 모든 환경변수는 여기서만 읽음
type Config struct {
	// Server
	Port string
	Env  string // development, staging, production

	// Database
	Database DatabaseConfig

	// Redis
	Redis RedisConfig

	// Data acquisition gateway
	Gateway GatewayConfig

	// Upstream data providers
	Providers ProvidersConfig

	// Batch evaluation
	Batch BatchConfig

	// Screener
	Screener ScreenerConfig

	// Logging
	LogLevel  string
	LogFormat string
}

// DatabaseConfig holds PostgreSQL configuration
type DatabaseConfig struct {
	URL string

	// Connection Pool
	MaxConns        int
	MinConns        int
	MaxConnLifetime time.Duration
	MaxConnIdleTime time.Duration

	Enabled bool
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
	Enabled  bool
}

// GatewayConfig holds data acquisition gateway settings
type GatewayConfig struct {
	MinRequestInterval time.Duration // 심볼당 최소 요청 간격
	FetchTimeout       time.Duration // 단일 외부 호출 타임아웃
	MaxRetries         int
	RetryInitialDelay  time.Duration

	// Kind-specific cache TTLs
	QuoteTTL       time.Duration // 실시간 시세
	IndicatorTTL   time.Duration // 기술적 지표
	FundamentalTTL time.Duration // 재무 지표
	MacroTTL       time.Duration // 매크로 지표
	SentimentTTL   time.Duration
	HistoryTTL     time.Duration

	// Cross-instance upstream quota, enforced via Redis when enabled
	UpstreamRateLimit  int
	UpstreamRateWindow time.Duration
}

// ProvidersConfig holds base URLs for upstream data services
type ProvidersConfig struct {
	MarketDataURL   string
	FundamentalsURL string
	MacroURL        string
	SentimentURL    string
}

// BatchConfig holds batch evaluation settings
type BatchConfig struct {
	Workers  int           // Bounded worker pool size
	Deadline time.Duration // Overall batch deadline
}

// ScreenerConfig holds screener defaults
type ScreenerConfig struct {
	TopN          int
	AuditSchedule string   // cron expression for the daily screener run
	Universe      []string // symbols screened by the scheduled run
}

// Load reads configuration from environment variables
// ⭐ SSOT: 이 함수만 os.Getenv()를 호출함
func Load() (*Config, error) {
	loadEnvFile()

	cfg := &Config{
		// Server
		Port: getEnv("PORT", "8090"),
		Env:  getEnv("ENV", "development"),

		// Database
		Database: DatabaseConfig{
			URL:             getEnv("DATABASE_URL", ""),
			MaxConns:        getEnvAsInt("DB_MAX_CONNS", 10),
			MinConns:        getEnvAsInt("DB_MIN_CONNS", 2),
			MaxConnLifetime: getEnvAsDuration("DB_MAX_CONN_LIFETIME", "1h"),
			MaxConnIdleTime: getEnvAsDuration("DB_MAX_CONN_IDLE_TIME", "30m"),
			Enabled:         getEnvAsBool("DB_ENABLED", false),
		},

		// Redis
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
			Enabled:  getEnvAsBool("REDIS_ENABLED", false),
		},

		// Gateway
		Gateway: GatewayConfig{
			MinRequestInterval: getEnvAsDuration("GATEWAY_MIN_INTERVAL", "500ms"),
			FetchTimeout:       getEnvAsDuration("GATEWAY_FETCH_TIMEOUT", "15s"),
			MaxRetries:         getEnvAsInt("GATEWAY_MAX_RETRIES", 3),
			RetryInitialDelay:  getEnvAsDuration("GATEWAY_RETRY_DELAY", "1s"),
			QuoteTTL:           getEnvAsDuration("GATEWAY_QUOTE_TTL", "1m"),
			IndicatorTTL:       getEnvAsDuration("GATEWAY_INDICATOR_TTL", "10m"),
			FundamentalTTL:     getEnvAsDuration("GATEWAY_FUNDAMENTAL_TTL", "24h"),
			MacroTTL:           getEnvAsDuration("GATEWAY_MACRO_TTL", "1h"),
			SentimentTTL:       getEnvAsDuration("GATEWAY_SENTIMENT_TTL", "1h"),
			HistoryTTL:         getEnvAsDuration("GATEWAY_HISTORY_TTL", "1h"),
			UpstreamRateLimit:  getEnvAsInt("GATEWAY_UPSTREAM_RATE_LIMIT", 300),
			UpstreamRateWindow: getEnvAsDuration("GATEWAY_UPSTREAM_RATE_WINDOW", "1m"),
		},

		// Providers
		Providers: ProvidersConfig{
			MarketDataURL:   getEnv("MARKETDATA_BASE_URL", "http://localhost:8091"),
			FundamentalsURL: getEnv("FUNDAMENTALS_BASE_URL", "http://localhost:8092"),
			MacroURL:        getEnv("MACRO_BASE_URL", "http://localhost:8093"),
			SentimentURL:    getEnv("SENTIMENT_BASE_URL", "http://localhost:8094"),
		},

		// Batch
		Batch: BatchConfig{
			Workers:  getEnvAsInt("BATCH_WORKERS", 8),
			Deadline: getEnvAsDuration("BATCH_DEADLINE", "5m"),
		},

		// Screener
		Screener: ScreenerConfig{
			TopN:          getEnvAsInt("SCREENER_TOP_N", 20),
			AuditSchedule: getEnv("SCREENER_SCHEDULE", "0 0 17 * * 1-5"),
			Universe:      getEnvAsSlice("SCREENER_UNIVERSE", nil),
		},

		// Logging
		LogLevel:  getEnv("LOG_LEVEL", "debug"),
		LogFormat: getEnv("LOG_FORMAT", "json"),
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// validate checks if required configuration values are set
func (c *Config) validate() error {
	// Database URL is required only when persistence is enabled
	if c.Database.Enabled && c.Database.URL == "" {
		return fmt.Errorf("DATABASE_URL is required when DB_ENABLED=true")
	}

	// Validate environment
	if c.Env != "development" && c.Env != "staging" && c.Env != "production" {
		return fmt.Errorf("ENV must be one of: development, staging, production")
	}

	if c.Gateway.MinRequestInterval <= 0 {
		return fmt.Errorf("GATEWAY_MIN_INTERVAL must be positive")
	}

	if c.Batch.Workers <= 0 {
		return fmt.Errorf("BATCH_WORKERS must be positive")
	}

	return nil
}

// Helper functions (private, only used within this file)

// loadEnvFile tries to load .env from multiple locations
func loadEnvFile() {
	// Try paths in order of priority
	paths := []string{
		".env", // Current directory
	}

	// Also try relative to executable
	if exe, err := os.Executable(); err == nil {
		exeDir := filepath.Dir(exe)
		paths = append(paths,
			filepath.Join(exeDir, ".env"),
			filepath.Join(exeDir, "..", ".env"),
			filepath.Join(exeDir, "..", "..", ".env"),
		)
	}

	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			_ = godotenv.Load(path)
			return
		}
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}

	return value
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}

	return value
}

func getEnvAsSlice(key string, defaultValue []string) []string {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	parts := strings.Split(valueStr, ",")
	values := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			values = append(values, p)
		}
	}
	if len(values) == 0 {
		return defaultValue
	}
	return values
}

func getEnvAsDuration(key string, defaultValue string) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		valueStr = defaultValue
	}

	duration, err := time.ParseDuration(valueStr)
	if err != nil {
		// Fallback to default
		duration, _ = time.ParseDuration(defaultValue)
	}

	return duration
}
