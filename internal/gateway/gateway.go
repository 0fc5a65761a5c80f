package gateway

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/wonny/argus/internal/contracts"
	"github.com/wonny/argus/pkg/config"
	"github.com/wonny/argus/pkg/logger"
)

// Provider performs the actual upstream retrieval for one data kind.
// Wire protocols live behind this interface; the gateway only owns the
// caching/rate-limiting/validation contract around it.
type Provider interface {
	Kind() contracts.DataKind
	Fetch(ctx context.Context, symbol string) (any, error)
}

// SecondLevelCache shares payloads across processes. *redis.Cache
// satisfies this; a disabled Redis client degrades to always-miss.
type SecondLevelCache interface {
	Get(ctx context.Context, key string, dest interface{}) (bool, error)
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
}

// CacheEntry is one cached payload with its expiry metadata
type CacheEntry struct {
	Key        string
	Value      any
	SourceTag  string
	InsertedAt time.Time
	TTL        time.Duration
}

// expired reports whether the entry is past its TTL
func (e *CacheEntry) expired(now time.Time) bool {
	return now.Sub(e.InsertedAt) >= e.TTL
}

// symbolState guards per-symbol fetch discipline: the mutex allows at
// most one in-flight fetch per symbol, the limiter spaces requests by
// the minimum interval.
type symbolState struct {
	mu      sync.Mutex
	limiter *rate.Limiter
}

// Gateway is the single choke point for all external reads
// ⭐ SSOT: 외부 데이터 조회는 이 게이트웨이를 통해서만
type Gateway struct {
	providers map[contracts.DataKind]Provider
	cfg       config.GatewayConfig
	retry     RetryPolicy

	cacheMu sync.RWMutex
	cache   map[string]*CacheEntry
	l2      SecondLevelCache // optional

	statesMu sync.Mutex
	states   map[string]*symbolState

	now    func() time.Time // injectable for tests
	logger *logger.Logger
}

// New creates a gateway over the given providers
func New(cfg config.GatewayConfig, providers []Provider, log *logger.Logger) *Gateway {
	byKind := make(map[contracts.DataKind]Provider, len(providers))
	for _, p := range providers {
		byKind[p.Kind()] = p
	}

	return &Gateway{
		providers: byKind,
		cfg:       cfg,
		retry:     DefaultRetryPolicy(cfg.MaxRetries, cfg.RetryInitialDelay),
		cache:     make(map[string]*CacheEntry),
		states:    make(map[string]*symbolState),
		now:       time.Now,
		logger:    log.WithField("module", "gateway"),
	}
}

// WithRetryPolicy overrides the retry policy (used by tests)
func (g *Gateway) WithRetryPolicy(policy RetryPolicy) *Gateway {
	g.retry = policy
	return g
}

// WithClock overrides the time source (used by tests)
func (g *Gateway) WithClock(now func() time.Time) *Gateway {
	g.now = now
	return g
}

// WithL2Cache attaches a shared second-level cache
func (g *Gateway) WithL2Cache(l2 SecondLevelCache) *Gateway {
	g.l2 = l2
	return g
}

// Fetch serves a payload from cache or retrieves, validates, and
// caches it. Invalid payloads are neither cached nor retried.
func (g *Gateway) Fetch(ctx context.Context, symbol string, kind contracts.DataKind) (any, error) {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	if symbol == "" {
		return nil, fmt.Errorf("%w: empty symbol", contracts.ErrInvalidInput)
	}

	provider, ok := g.providers[kind]
	if !ok {
		return nil, fmt.Errorf("%w: no provider for kind %q", contracts.ErrInvalidInput, kind)
	}

	key := cacheKey(symbol, kind)

	// Fast path: unexpired cache hit
	if value, ok := g.lookup(key); ok {
		return value, nil
	}

	// Per-symbol discipline: one in-flight fetch, minimum spacing
	state := g.symbolState(symbol)
	state.mu.Lock()
	defer state.mu.Unlock()

	// Another goroutine may have populated the cache while we waited
	if value, ok := g.lookup(key); ok {
		return value, nil
	}

	// Shared cache beats an upstream round trip
	if value, ok := g.lookupL2(ctx, key, kind); ok {
		g.store(key, value, "l2:"+string(kind), g.ttlFor(kind))
		return value, nil
	}

	if err := state.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("%w: rate limit wait: %v", contracts.ErrTimeout, err)
	}

	fetchCtx, cancel := context.WithTimeout(ctx, g.cfg.FetchTimeout)
	defer cancel()

	var payload any
	err := g.retry.Do(fetchCtx, func() error {
		value, err := provider.Fetch(fetchCtx, symbol)
		if err != nil {
			return err
		}
		if err := validatePayload(kind, value); err != nil {
			return err
		}
		payload = value
		return nil
	})
	if err != nil {
		g.logger.WithError(err).WithFields(map[string]interface{}{
			"symbol": symbol,
			"kind":   string(kind),
		}).Warn("Fetch failed")
		return nil, err
	}

	g.store(key, payload, string(kind), g.ttlFor(kind))
	g.storeL2(ctx, key, kind, payload)

	g.logger.WithFields(map[string]interface{}{
		"symbol": symbol,
		"kind":   string(kind),
		"ttl":    g.ttlFor(kind),
	}).Debug("Fetched and cached")

	return payload, nil
}

// Invalidate drops the cached entry for one symbol/kind pair
func (g *Gateway) Invalidate(symbol string, kind contracts.DataKind) {
	g.cacheMu.Lock()
	defer g.cacheMu.Unlock()
	delete(g.cache, cacheKey(strings.ToUpper(strings.TrimSpace(symbol)), kind))
}

// Clear drops the entire cache
func (g *Gateway) Clear() {
	g.cacheMu.Lock()
	defer g.cacheMu.Unlock()
	g.cache = make(map[string]*CacheEntry)
}

// CacheSize returns the number of cached entries, expired or not
func (g *Gateway) CacheSize() int {
	g.cacheMu.RLock()
	defer g.cacheMu.RUnlock()
	return len(g.cache)
}

func (g *Gateway) lookup(key string) (any, bool) {
	g.cacheMu.RLock()
	entry, ok := g.cache[key]
	g.cacheMu.RUnlock()

	if !ok || entry.expired(g.now()) {
		return nil, false
	}
	return entry.Value, true
}

// lookupL2 consults the shared cache, decoding into the kind's payload type
func (g *Gateway) lookupL2(ctx context.Context, key string, kind contracts.DataKind) (any, bool) {
	if g.l2 == nil {
		return nil, false
	}

	dest := emptyPayload(kind)
	found, err := g.l2.Get(ctx, key, dest)
	if err != nil {
		g.logger.WithError(err).WithField("key", key).Warn("L2 cache read failed")
		return nil, false
	}
	return dest, found
}

// storeL2 writes through to the shared cache, best effort
func (g *Gateway) storeL2(ctx context.Context, key string, kind contracts.DataKind, value any) {
	if g.l2 == nil {
		return
	}
	if err := g.l2.Set(ctx, key, value, g.ttlFor(kind)); err != nil {
		g.logger.WithError(err).WithField("key", key).Warn("L2 cache write failed")
	}
}

// emptyPayload returns a zero payload of the kind's concrete type,
// matching what providers return from Fetch
func emptyPayload(kind contracts.DataKind) any {
	switch kind {
	case contracts.KindQuote:
		return &contracts.Quote{}
	case contracts.KindIndicators:
		return &contracts.TechnicalIndicators{}
	case contracts.KindFundamentals:
		return &contracts.FundamentalRatios{}
	case contracts.KindMacro:
		return &contracts.MacroSnapshot{}
	case contracts.KindSentiment:
		return &contracts.SentimentSnapshot{}
	case contracts.KindHistory:
		return &contracts.PriceHistory{}
	}
	return nil
}

func (g *Gateway) store(key string, value any, sourceTag string, ttl time.Duration) {
	g.cacheMu.Lock()
	defer g.cacheMu.Unlock()
	g.cache[key] = &CacheEntry{
		Key:        key,
		Value:      value,
		SourceTag:  sourceTag,
		InsertedAt: g.now(),
		TTL:        ttl,
	}
}

// symbolState returns (creating if needed) the per-symbol state.
// RateLimitState lives for the process lifetime, keyed by symbol.
func (g *Gateway) symbolState(symbol string) *symbolState {
	g.statesMu.Lock()
	defer g.statesMu.Unlock()

	state, ok := g.states[symbol]
	if !ok {
		state = &symbolState{
			limiter: rate.NewLimiter(rate.Every(g.cfg.MinRequestInterval), 1),
		}
		g.states[symbol] = state
	}
	return state
}

// ttlFor maps a data kind to its source-specific TTL:
// 시세는 짧게, 재무/매크로는 길게
func (g *Gateway) ttlFor(kind contracts.DataKind) time.Duration {
	switch kind {
	case contracts.KindQuote:
		return g.cfg.QuoteTTL
	case contracts.KindIndicators:
		return g.cfg.IndicatorTTL
	case contracts.KindFundamentals:
		return g.cfg.FundamentalTTL
	case contracts.KindMacro:
		return g.cfg.MacroTTL
	case contracts.KindSentiment:
		return g.cfg.SentimentTTL
	case contracts.KindHistory:
		return g.cfg.HistoryTTL
	}
	return g.cfg.QuoteTTL
}

func cacheKey(symbol string, kind contracts.DataKind) string {
	return string(kind) + ":" + symbol
}
