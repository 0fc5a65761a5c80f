// Package providers wires the upstream service clients into the
// gateway's provider set.
package providers

import (
	"github.com/wonny/argus/internal/gateway"
	"github.com/wonny/argus/internal/providers/fundamentals"
	"github.com/wonny/argus/internal/providers/macro"
	"github.com/wonny/argus/internal/providers/marketdata"
	"github.com/wonny/argus/internal/providers/sentiment"
	"github.com/wonny/argus/pkg/config"
	"github.com/wonny/argus/pkg/httputil"
	"github.com/wonny/argus/pkg/logger"
)

// All builds the full provider set from configuration
func All(cfg *config.Config, httpClient *httputil.Client, log *logger.Logger) []gateway.Provider {
	md := marketdata.NewClient(httpClient, cfg.Providers.MarketDataURL, log)

	return []gateway.Provider{
		marketdata.QuoteProvider{Client: md},
		marketdata.IndicatorProvider{Client: md},
		marketdata.HistoryProvider{Client: md},
		fundamentals.Provider{Client: fundamentals.NewClient(httpClient, cfg.Providers.FundamentalsURL, log)},
		macro.Provider{Client: macro.NewClient(httpClient, cfg.Providers.MacroURL, log)},
		sentiment.Provider{Client: sentiment.NewClient(httpClient, cfg.Providers.SentimentURL, log)},
	}
}
