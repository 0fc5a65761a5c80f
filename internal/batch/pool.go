package batch

import (
	"context"
	"fmt"
	"sync"

	"github.com/wonny/argus/internal/contracts"
	"github.com/wonny/argus/pkg/logger"
)

// Config holds worker-pool configuration
type Config struct {
	Workers int // Number of concurrent workers
}

// Result pairs one symbol's output with its per-item error.
// 한 종목 실패가 배치를 중단시키지 않는다.
type Result[T any] struct {
	Symbol string
	Value  T
	Err    error
}

// Run fans work out over a bounded worker pool, one call per symbol.
// The context carries the batch deadline: items not yet started when it
// expires are marked TIMEOUT, completed ones are kept. Workers stop
// cooperatively between items, never mid-call.
func Run[T any](ctx context.Context, log *logger.Logger, cfg Config, symbols []string, work func(ctx context.Context, symbol string) (T, error)) []Result[T] {
	workers := cfg.Workers
	if workers <= 0 {
		workers = 1
	}
	if workers > len(symbols) {
		workers = len(symbols)
	}

	symbolCh := make(chan string, len(symbols))
	resultCh := make(chan Result[T], len(symbols))

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for symbol := range symbolCh {
				select {
				case <-ctx.Done():
					resultCh <- Result[T]{
						Symbol: symbol,
						Err:    fmt.Errorf("batch item %s not started: %w", symbol, contracts.ErrTimeout),
					}
					continue
				default:
				}

				value, err := work(ctx, symbol)
				resultCh <- Result[T]{Symbol: symbol, Value: value, Err: err}
			}
		}()
	}

	for _, symbol := range symbols {
		symbolCh <- symbol
	}
	close(symbolCh)

	go func() {
		wg.Wait()
		close(resultCh)
	}()

	// Preserve input order for deterministic aggregation
	bySymbol := make(map[string]Result[T], len(symbols))
	for result := range resultCh {
		bySymbol[result.Symbol] = result
	}

	results := make([]Result[T], 0, len(symbols))
	succeeded := 0
	for _, symbol := range symbols {
		result := bySymbol[symbol]
		results = append(results, result)
		if result.Err == nil {
			succeeded++
		}
	}

	log.WithFields(map[string]interface{}{
		"total":   len(symbols),
		"success": succeeded,
		"failed":  len(symbols) - succeeded,
		"workers": workers,
	}).Info("Batch completed")

	return results
}

// Errors extracts the per-symbol failures from a result set
func Errors[T any](results []Result[T]) []contracts.SymbolError {
	var errs []contracts.SymbolError
	for _, result := range results {
		if result.Err != nil {
			errs = append(errs, contracts.SymbolError{
				Symbol: result.Symbol,
				Err:    result.Err,
				Reason: result.Err.Error(),
			})
		}
	}
	return errs
}
