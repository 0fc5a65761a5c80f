package screener

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/wonny/argus/internal/contracts"
)

// Repository persists screener audit records
// ⭐ SSOT: 스크리너 감사 기록 저장/조회는 여기서만
// Write-only from the scoring pipeline's view.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a new screener repository
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// NewRun builds the audit record for one completed screener run
func NewRun(tf contracts.Timeframe, symbolCount int, top []contracts.ScreenerEntry, at time.Time) *contracts.ScreenerRun {
	topSymbols := make([]string, len(top))
	for i, entry := range top {
		topSymbols[i] = entry.Symbol
	}
	return &contracts.ScreenerRun{
		ID:          uuid.New().String(),
		Timeframe:   tf,
		SymbolCount: symbolCount,
		TopSymbols:  topSymbols,
		CreatedAt:   at,
	}
}

// SaveRun inserts one screener-run audit record
func (r *Repository) SaveRun(ctx context.Context, run *contracts.ScreenerRun) error {
	query := `
		INSERT INTO screener.runs (
			id, timeframe, symbol_count, top_symbols, created_at
		) VALUES ($1, $2, $3, $4, $5)
	`

	_, err := r.pool.Exec(ctx, query,
		run.ID, string(run.Timeframe), run.SymbolCount, run.TopSymbols, run.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to save screener run: %w", err)
	}

	return nil
}

// RecentRuns returns the latest audit records, newest first
func (r *Repository) RecentRuns(ctx context.Context, limit int) ([]contracts.ScreenerRun, error) {
	query := `
		SELECT id, timeframe, symbol_count, top_symbols, created_at
		FROM screener.runs
		ORDER BY created_at DESC
		LIMIT $1
	`

	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query screener runs: %w", err)
	}
	defer rows.Close()

	var runs []contracts.ScreenerRun
	for rows.Next() {
		var run contracts.ScreenerRun
		var tf string
		if err := rows.Scan(&run.ID, &tf, &run.SymbolCount, &run.TopSymbols, &run.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan screener run: %w", err)
		}
		run.Timeframe = contracts.Timeframe(tf)
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate screener runs: %w", err)
	}

	return runs, nil
}
