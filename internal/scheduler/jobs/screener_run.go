package jobs

import (
	"context"
	"fmt"

	"github.com/wonny/argus/internal/contracts"
	"github.com/wonny/argus/internal/engine"
	"github.com/wonny/argus/pkg/config"
	"github.com/wonny/argus/pkg/logger"
)

// ScreenerJob runs the configured screener universe every trading day.
// 감사 기록은 엔진이 저장 (repository 주입 시)
type ScreenerJob struct {
	engine   *engine.Engine
	universe []string
	schedule string
	logger   *logger.Logger
}

// NewScreenerJob creates a new screener job from config
func NewScreenerJob(eng *engine.Engine, cfg *config.Config, log *logger.Logger) *ScreenerJob {
	return &ScreenerJob{
		engine:   eng,
		universe: cfg.Screener.Universe,
		schedule: cfg.Screener.AuditSchedule,
		logger:   log.WithField("job", "screener_run"),
	}
}

// Name returns the job name
func (j *ScreenerJob) Name() string {
	return "screener_run"
}

// Schedule returns the cron schedule expression
func (j *ScreenerJob) Schedule() string {
	return j.schedule
}

// Run screens the configured universe across all three timeframes
func (j *ScreenerJob) Run(ctx context.Context) error {
	if len(j.universe) == 0 {
		j.logger.Warn("Screener universe is empty, skipping run")
		return nil
	}

	timeframes := []contracts.Timeframe{
		contracts.TimeframeShort,
		contracts.TimeframeMedium,
		contracts.TimeframeLong,
	}

	for _, tf := range timeframes {
		entries, symbolErrs, err := j.engine.Screen(ctx, j.universe, tf)
		if err != nil {
			return fmt.Errorf("screen %s: %w", tf, err)
		}

		j.logger.WithFields(map[string]interface{}{
			"timeframe": string(tf),
			"universe":  len(j.universe),
			"ranked":    len(entries),
			"failed":    len(symbolErrs),
		}).Info("Scheduled screener run completed")
	}

	return nil
}
