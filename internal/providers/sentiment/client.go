package sentiment

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/wonny/argus/internal/contracts"
	"github.com/wonny/argus/pkg/httputil"
	"github.com/wonny/argus/pkg/logger"
)

// Client scrapes the sentiment summary page
// ⭐ SSOT: 센티먼트 페이지 스크래핑은 이 클라이언트에서만
type Client struct {
	httpClient *httputil.Client
	logger     *logger.Logger
	baseURL    string
}

// NewClient creates a new sentiment client
func NewClient(httpClient *httputil.Client, baseURL string, log *logger.Logger) *Client {
	return &Client{
		httpClient: httpClient,
		logger:     log.WithField("module", "sentiment"),
		baseURL:    baseURL,
	}
}

// FetchSnapshot scrapes the categorical sentiment summary for one
// symbol. 결측 카테고리는 빈 문자열 유지 (중립 처리는 스코어러 책임)
func (c *Client) FetchSnapshot(ctx context.Context, symbol string) (*contracts.SentimentSnapshot, error) {
	url := fmt.Sprintf("%s/sentiment/%s", c.baseURL, symbol)

	resp, err := c.httpClient.Get(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("fetch sentiment %s: %w: %v", symbol, contracts.ErrFetchFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("fetch sentiment %s: %w: not found", symbol, contracts.ErrInvalidData)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch sentiment %s: %w: unexpected status code %d",
			symbol, contracts.ErrFetchFailed, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("fetch sentiment %s: %w: read response body: %v",
			symbol, contracts.ErrFetchFailed, err)
	}

	snapshot, err := parseSentimentHTML(string(body))
	if err != nil {
		return nil, fmt.Errorf("fetch sentiment %s: %w: %v", symbol, contracts.ErrInvalidData, err)
	}

	c.logger.WithFields(map[string]interface{}{
		"symbol":  symbol,
		"analyst": snapshot.AnalystRating,
		"news":    snapshot.NewsSentiment,
	}).Debug("Fetched sentiment")
	return snapshot, nil
}

// parseSentimentHTML extracts the labeled rows of the summary table.
// 페이지 구조: table.sentiment-summary 내부의 (라벨, 값) 행
func parseSentimentHTML(html string) (*contracts.SentimentSnapshot, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("parse document: %w", err)
	}

	table := doc.Find("table.sentiment-summary")
	if table.Length() == 0 {
		return nil, fmt.Errorf("sentiment summary table not found")
	}

	snapshot := &contracts.SentimentSnapshot{}

	table.Find("tr").Each(func(_ int, row *goquery.Selection) {
		cells := row.Find("td")
		if cells.Length() < 2 {
			return
		}
		label := normalize(cells.Eq(0).Text())
		value := normalize(cells.Eq(1).Text())

		switch label {
		case "analyst_rating":
			snapshot.AnalystRating = value
		case "insider_sentiment":
			snapshot.InsiderSentiment = value
		case "news_sentiment":
			snapshot.NewsSentiment = value
		case "technical_sentiment":
			snapshot.TechnicalSentiment = value
		case "relative_strength_3m":
			if rs, ok := parsePercent(cells.Eq(1).Text()); ok {
				snapshot.RelativeStrength = &rs
			}
		}
	})

	return snapshot, nil
}

// normalize lowercases and snake-cases a cell label or value
func normalize(s string) string {
	s = strings.TrimSpace(strings.ToLower(s))
	s = strings.ReplaceAll(s, " ", "_")
	s = strings.ReplaceAll(s, "(", "")
	s = strings.ReplaceAll(s, ")", "")
	return s
}

// parsePercent parses values like "+4.2%" or "-1.8 %"
func parsePercent(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, "%")
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "+")
	if s == "" || s == "-" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// Provider adapts the client to the gateway's sentiment kind
type Provider struct{ Client *Client }

func (p Provider) Kind() contracts.DataKind { return contracts.KindSentiment }
func (p Provider) Fetch(ctx context.Context, symbol string) (any, error) {
	return p.Client.FetchSnapshot(ctx, symbol)
}
