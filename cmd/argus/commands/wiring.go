package commands

import (
	"fmt"

	"github.com/wonny/argus/internal/correlation"
	"github.com/wonny/argus/internal/engine"
	"github.com/wonny/argus/internal/forecast"
	"github.com/wonny/argus/internal/gateway"
	"github.com/wonny/argus/internal/providers"
	"github.com/wonny/argus/internal/screener"
	"github.com/wonny/argus/pkg/config"
	"github.com/wonny/argus/pkg/database"
	"github.com/wonny/argus/pkg/httputil"
	"github.com/wonny/argus/pkg/logger"
	"github.com/wonny/argus/pkg/redis"
)

// runtime bundles the wired dependencies shared by every command.
// ⭐ SSOT: 의존성 조립은 여기서만 (API 서버, 스케줄러, 단발 명령 공용)
type runtime struct {
	cfg    *config.Config
	log    *logger.Logger
	engine *engine.Engine
	db     *database.DB // nil unless cfg.Database.Enabled
}

// Close releases held resources (database pool).
func (r *runtime) Close() {
	if r.db != nil {
		r.db.Close()
	}
}

// initRuntime loads config and wires the full engine stack.
func initRuntime() (*runtime, error) {
	// 1. Load config
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	// 2. Initialize logger
	log := logger.New(cfg)

	// 3. Connect to database (optional, audit persistence only)
	var db *database.DB
	var auditStore engine.AuditStore
	if cfg.Database.Enabled {
		db, err = database.New(cfg)
		if err != nil {
			return nil, fmt.Errorf("connect to database: %w", err)
		}
		auditStore = screener.NewRepository(db.Pool)
	}

	// 4. Create HTTP client (with distributed rate limiting when Redis is on)
	httpClient := httputil.New(cfg, log)
	var l2 *redis.Cache
	if cfg.Redis.Enabled {
		redisClient, err := redis.New(cfg)
		if err != nil {
			return nil, fmt.Errorf("connect to redis: %w", err)
		}
		httpClient = httpClient.WithRateLimiter(
			redis.NewRateLimiter(redisClient, "argus"),
			redis.RateLimitConfig{
				Key:    "providers",
				Limit:  cfg.Gateway.UpstreamRateLimit,
				Window: cfg.Gateway.UpstreamRateWindow,
			},
		)
		l2 = redis.NewCache(redisClient, "argus")
	}

	// 5. Create data providers and gateway
	gw := gateway.New(cfg.Gateway, providers.All(cfg, httpClient, log), log)
	if l2 != nil {
		gw = gw.WithL2Cache(l2)
	}

	// 6. Create analytic components
	forecaster := forecast.NewForecaster(log.Zerolog())
	correlator := correlation.NewEngine(log.Zerolog())
	ranker := screener.NewRanker(log)

	// 7. Create engine facade
	eng := engine.New(gw, forecaster, correlator, ranker, auditStore, cfg, log)

	return &runtime{cfg: cfg, log: log, engine: eng, db: db}, nil
}
