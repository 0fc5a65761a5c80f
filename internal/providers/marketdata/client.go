package marketdata

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/wonny/argus/internal/contracts"
	"github.com/wonny/argus/pkg/httputil"
	"github.com/wonny/argus/pkg/logger"
)

// Client handles communication with the market-data service
// ⭐ SSOT: 시세/지표/가격이력 API 호출은 이 클라이언트에서만
type Client struct {
	httpClient *httputil.Client
	logger     *logger.Logger
	baseURL    string

	historyDays int
}

// NewClient creates a new market-data client
func NewClient(httpClient *httputil.Client, baseURL string, log *logger.Logger) *Client {
	return &Client{
		httpClient:  httpClient,
		logger:      log.WithField("module", "marketdata"),
		baseURL:     baseURL,
		historyDays: 365,
	}
}

// quoteDTO mirrors the service's quote payload
type quoteDTO struct {
	Symbol    string    `json:"symbol"`
	Price     float64   `json:"price"`
	Open      float64   `json:"open"`
	High      float64   `json:"high"`
	Low       float64   `json:"low"`
	Volume    float64   `json:"volume"`
	ChangePct float64   `json:"change_pct"`
	AsOf      time.Time `json:"as_of"`
}

type historyDTO struct {
	Symbol string `json:"symbol"`
	Points []struct {
		Date   string  `json:"date"` // 2006-01-02
		Open   float64 `json:"open"`
		High   float64 `json:"high"`
		Low    float64 `json:"low"`
		Close  float64 `json:"close"`
		Volume float64 `json:"volume"`
	} `json:"points"`
}

// FetchQuote retrieves the latest market snapshot for one symbol
func (c *Client) FetchQuote(ctx context.Context, symbol string) (*contracts.Quote, error) {
	var dto quoteDTO
	url := fmt.Sprintf("%s/v1/quote/%s", c.baseURL, symbol)
	if err := c.getJSON(ctx, url, &dto); err != nil {
		return nil, fmt.Errorf("fetch quote %s: %w", symbol, err)
	}

	return &contracts.Quote{
		Symbol:    dto.Symbol,
		Price:     dto.Price,
		Open:      dto.Open,
		High:      dto.High,
		Low:       dto.Low,
		Volume:    dto.Volume,
		ChangePct: dto.ChangePct,
		AsOf:      dto.AsOf,
	}, nil
}

// FetchIndicators retrieves the pre-computed technical indicators
func (c *Client) FetchIndicators(ctx context.Context, symbol string) (*contracts.TechnicalIndicators, error) {
	var indicators contracts.TechnicalIndicators
	url := fmt.Sprintf("%s/v1/indicators/%s", c.baseURL, symbol)
	if err := c.getJSON(ctx, url, &indicators); err != nil {
		return nil, fmt.Errorf("fetch indicators %s: %w", symbol, err)
	}
	return &indicators, nil
}

// FetchHistory retrieves the daily OHLCV series, oldest first
func (c *Client) FetchHistory(ctx context.Context, symbol string) (*contracts.PriceHistory, error) {
	var dto historyDTO
	url := fmt.Sprintf("%s/v1/history/%s?days=%d", c.baseURL, symbol, c.historyDays)
	if err := c.getJSON(ctx, url, &dto); err != nil {
		return nil, fmt.Errorf("fetch history %s: %w", symbol, err)
	}

	history := &contracts.PriceHistory{
		Symbol: dto.Symbol,
		Points: make([]contracts.PricePoint, 0, len(dto.Points)),
	}
	for _, p := range dto.Points {
		date, err := time.Parse("2006-01-02", p.Date)
		if err != nil {
			c.logger.WithFields(map[string]interface{}{
				"symbol": symbol,
				"date":   p.Date,
			}).Warn("Skipping point with unparseable date")
			continue
		}
		history.Points = append(history.Points, contracts.PricePoint{
			Date:   date,
			Open:   p.Open,
			High:   p.High,
			Low:    p.Low,
			Close:  p.Close,
			Volume: p.Volume,
		})
	}

	c.logger.WithFields(map[string]interface{}{
		"symbol": symbol,
		"count":  len(history.Points),
	}).Debug("Fetched history")
	return history, nil
}

// getJSON performs a GET and decodes the JSON body
func (c *Client) getJSON(ctx context.Context, url string, out any) error {
	resp, err := c.httpClient.Get(ctx, url)
	if err != nil {
		return fmt.Errorf("%w: %v", contracts.ErrFetchFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return fmt.Errorf("%w: not found", contracts.ErrInvalidData)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: unexpected status code %d", contracts.ErrFetchFailed, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: decode response: %v", contracts.ErrInvalidData, err)
	}
	return nil
}

// QuoteProvider adapts the client to the gateway's quote kind
type QuoteProvider struct{ Client *Client }

func (p QuoteProvider) Kind() contracts.DataKind { return contracts.KindQuote }
func (p QuoteProvider) Fetch(ctx context.Context, symbol string) (any, error) {
	return p.Client.FetchQuote(ctx, symbol)
}

// IndicatorProvider adapts the client to the gateway's indicator kind
type IndicatorProvider struct{ Client *Client }

func (p IndicatorProvider) Kind() contracts.DataKind { return contracts.KindIndicators }
func (p IndicatorProvider) Fetch(ctx context.Context, symbol string) (any, error) {
	return p.Client.FetchIndicators(ctx, symbol)
}

// HistoryProvider adapts the client to the gateway's history kind
type HistoryProvider struct{ Client *Client }

func (p HistoryProvider) Kind() contracts.DataKind { return contracts.KindHistory }
func (p HistoryProvider) Fetch(ctx context.Context, symbol string) (any, error) {
	return p.Client.FetchHistory(ctx, symbol)
}
