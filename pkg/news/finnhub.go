package news

import (
	"context"
	"time"

	finnhub "github.com/Finnhub-Stock-API/finnhub-go/v2"
)

// fetch a few days back and let the window filter trim
const finnhubLookbackDays = 3

type FinnhubClient struct {
	client *finnhub.DefaultApiService
}

func NewFinnhubClient(apiKey string) *FinnhubClient {
	cfg := finnhub.NewConfiguration()
	cfg.AddDefaultHeader("X-Finnhub-Token", apiKey)
	client := finnhub.NewAPIClient(cfg).DefaultApi
	return &FinnhubClient{client: client}
}

func (c *FinnhubClient) Name() string {
	return "Finnhub"
}

func (c *FinnhubClient) FetchSymbol(ctx context.Context, symbol string) ([]Headline, error) {
	to := time.Now()
	from := to.AddDate(0, 0, -finnhubLookbackDays)

	res, _, err := c.client.CompanyNews(ctx).
		Symbol(symbol).
		From(from.Format("2006-01-02")).
		To(to.Format("2006-01-02")).
		Execute()
	if err != nil {
		return nil, err
	}

	var headlines []Headline

	for _, item := range res {
		h := Headline{
			Source: c.Name(),
		}

		if item.Headline != nil {
			h.Title = *item.Headline
		}

		if item.Summary != nil {
			h.Detail = *item.Summary
		}

		if item.Url != nil {
			h.URL = *item.Url
		}

		if item.Datetime != nil {
			h.PublishedAt = time.Unix(*item.Datetime, 0)
		}

		headlines = append(headlines, h)
	}

	return headlines, nil
}

func (c *FinnhubClient) VerifySymbol(ctx context.Context, symbol string) (bool, error) {
	headlines, err := c.FetchSymbol(ctx, symbol)
	if err != nil {
		return false, err
	}
	return len(headlines) > 0, nil
}
