package macro

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/wonny/argus/internal/contracts"
	"github.com/wonny/argus/pkg/httputil"
	"github.com/wonny/argus/pkg/logger"
)

// Client handles communication with the macro service
// ⭐ SSOT: 매크로 지표 API 호출은 이 클라이언트에서만
type Client struct {
	httpClient *httputil.Client
	logger     *logger.Logger
	baseURL    string
}

// NewClient creates a new macro client
func NewClient(httpClient *httputil.Client, baseURL string, log *logger.Logger) *Client {
	return &Client{
		httpClient: httpClient,
		logger:     log.WithField("module", "macro"),
		baseURL:    baseURL,
	}
}

// FetchSnapshot retrieves the current market-regime snapshot.
// 종목 독립적: 심볼과 무관하게 동일 응답
func (c *Client) FetchSnapshot(ctx context.Context) (*contracts.MacroSnapshot, error) {
	url := fmt.Sprintf("%s/v1/snapshot", c.baseURL)

	resp, err := c.httpClient.Get(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("fetch macro snapshot: %w: %v", contracts.ErrFetchFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch macro snapshot: %w: unexpected status code %d",
			contracts.ErrFetchFailed, resp.StatusCode)
	}

	var snapshot contracts.MacroSnapshot
	if err := json.NewDecoder(resp.Body).Decode(&snapshot); err != nil {
		return nil, fmt.Errorf("fetch macro snapshot: %w: decode response: %v",
			contracts.ErrInvalidData, err)
	}

	c.logger.Debug("Fetched macro snapshot")
	return &snapshot, nil
}

// Provider adapts the client to the gateway's macro kind.
// The gateway caches per symbol; the upstream response is the same for
// every symbol, so the per-symbol cache entries simply share content.
type Provider struct{ Client *Client }

func (p Provider) Kind() contracts.DataKind { return contracts.KindMacro }
func (p Provider) Fetch(ctx context.Context, _ string) (any, error) {
	return p.Client.FetchSnapshot(ctx)
}
