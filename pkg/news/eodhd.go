package news

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"
)

const eodhdBaseURL = "https://eodhistoricaldata.com/api/news"

type EODHDClient struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

func NewEODHDClient(apiKey string) *EODHDClient {
	return &EODHDClient{
		apiKey:     apiKey,
		baseURL:    eodhdBaseURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

func (c *EODHDClient) Name() string {
	return "EODHD"
}

func (c *EODHDClient) FetchSymbol(ctx context.Context, symbol string) ([]Headline, error) {
	return c.fetch(ctx, symbol, 100)
}

// VerifySymbol uses a small news query as a stand-in for a lookup endpoint.
func (c *EODHDClient) VerifySymbol(ctx context.Context, symbol string) (bool, error) {
	headlines, err := c.fetch(ctx, symbol, 10)
	if err != nil {
		return false, err
	}
	return len(headlines) > 0, nil
}

func (c *EODHDClient) fetch(ctx context.Context, symbol string, limit int) ([]Headline, error) {
	reqURL := fmt.Sprintf(
		"%s?api_token=%s&s=%s.US&limit=%d",
		c.baseURL, c.apiKey, url.QueryEscape(symbol), limit,
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("eodhd request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("eodhd fetch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("eodhd fetch: unexpected status %d", resp.StatusCode)
	}

	var raw []eodhdItem
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("eodhd decode: %w", err)
	}

	headlines := make([]Headline, 0, len(raw))
	for _, item := range raw {
		publishedAt, err := parseEODHDDate(item.Date)
		if err != nil {
			// no usable timestamp means no window filtering, drop it here
			slog.Warn("dropping headline with unparseable date", "symbol", symbol, "date", item.Date)
			continue
		}

		headlines = append(headlines, Headline{
			Title:       item.Title,
			Detail:      item.Content,
			URL:         item.Link,
			Source:      c.Name(),
			PublishedAt: publishedAt,
		})
	}

	return headlines, nil
}

// EODHD emits offsets both with and without a colon ("+00:00" and "+0000").
func parseEODHDDate(date string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, date)
	if err != nil {
		t, err = time.Parse("2006-01-02T15:04:05-0700", date)
	}
	return t, err
}

type eodhdItem struct {
	Date    string   `json:"date"`
	Title   string   `json:"title"`
	Content string   `json:"content"`
	Link    string   `json:"link"`
	Symbols []string `json:"symbols"`
}
