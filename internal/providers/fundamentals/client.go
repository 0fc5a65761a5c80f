package fundamentals

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/wonny/argus/internal/contracts"
	"github.com/wonny/argus/pkg/httputil"
	"github.com/wonny/argus/pkg/logger"
)

// Client handles communication with the fundamentals service
// ⭐ SSOT: 재무 지표 API 호출은 이 클라이언트에서만
type Client struct {
	httpClient *httputil.Client
	logger     *logger.Logger
	baseURL    string
}

// NewClient creates a new fundamentals client
func NewClient(httpClient *httputil.Client, baseURL string, log *logger.Logger) *Client {
	return &Client{
		httpClient: httpClient,
		logger:     log.WithField("module", "fundamentals"),
		baseURL:    baseURL,
	}
}

// FetchRatios retrieves the valuation ratios for one symbol.
// 결측 필드는 null로 내려오며 그대로 nil 유지 (중립 처리 책임은 스코어러)
func (c *Client) FetchRatios(ctx context.Context, symbol string) (*contracts.FundamentalRatios, error) {
	url := fmt.Sprintf("%s/v1/ratios/%s", c.baseURL, symbol)

	resp, err := c.httpClient.Get(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("fetch ratios %s: %w: %v", symbol, contracts.ErrFetchFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("fetch ratios %s: %w: not found", symbol, contracts.ErrInvalidData)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch ratios %s: %w: unexpected status code %d",
			symbol, contracts.ErrFetchFailed, resp.StatusCode)
	}

	var ratios contracts.FundamentalRatios
	if err := json.NewDecoder(resp.Body).Decode(&ratios); err != nil {
		return nil, fmt.Errorf("fetch ratios %s: %w: decode response: %v",
			symbol, contracts.ErrInvalidData, err)
	}

	c.logger.WithField("symbol", symbol).Debug("Fetched fundamental ratios")
	return &ratios, nil
}

// Provider adapts the client to the gateway's fundamentals kind
type Provider struct{ Client *Client }

func (p Provider) Kind() contracts.DataKind { return contracts.KindFundamentals }
func (p Provider) Fetch(ctx context.Context, symbol string) (any, error) {
	return p.Client.FetchRatios(ctx, symbol)
}
