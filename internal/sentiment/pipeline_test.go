package sentiment

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/go-playground/assert/v2"

	"sentibot/internal/model"
	"sentibot/pkg/news"
)

type fakeFetcher struct {
	headlines map[string][]news.Headline
	failing   map[string]bool
}

func (f *fakeFetcher) FetchSymbol(ctx context.Context, symbol string) ([]news.Headline, error) {
	if f.failing[symbol] {
		return nil, errors.New("connection refused")
	}
	return f.headlines[symbol], nil
}

func (f *fakeFetcher) VerifySymbol(ctx context.Context, symbol string) (bool, error) {
	return len(f.headlines[symbol]) > 0, nil
}

func (f *fakeFetcher) Name() string { return "fake" }

func fixedNow() time.Time {
	return time.Date(2024, time.June, 12, 12, 0, 0, 0, eastern)
}

func newTestPipeline(fetcher news.SymbolNewsClient, classifier *fakeClassifier) *Pipeline {
	p := NewPipeline(fetcher, classifier)
	p.now = fixedNow
	return p
}

func TestPipeline_EndToEnd(t *testing.T) {
	w := ResolveWindow(fixedNow())

	fetcher := &fakeFetcher{headlines: map[string][]news.Headline{
		"AAPL": {
			{Title: "Great quarter", PublishedAt: w.Start.Add(time.Hour)},
			{Title: "Missed targets", PublishedAt: w.End.Add(-time.Hour)},
		},
	}}
	classifier := &fakeClassifier{labels: map[string]string{
		"Great quarter":  "Positive",
		"Missed targets": "Negative",
	}}

	p := newTestPipeline(fetcher, classifier)
	results, window := p.Run(context.Background(), []model.Company{{Symbol: "AAPL"}})

	assert.Equal(t, w, window)
	assert.Equal(t, 1, len(results))
	assert.Equal(t, "AAPL", results[0].Symbol)
	assert.Equal(t, model.ReportScore, results[0].Report.Kind)
	assert.Equal(t, 0.0, results[0].Report.Score)
	assert.Equal(t, 2, results[0].Report.Headlines)
}

func TestPipeline_FetchFailureIsolated(t *testing.T) {
	w := ResolveWindow(fixedNow())

	fetcher := &fakeFetcher{
		headlines: map[string][]news.Headline{
			"AAPL": {{Title: "Great quarter", PublishedAt: w.Start.Add(time.Hour)}},
			"MSFT": {{Title: "Cloud growth", PublishedAt: w.Start.Add(time.Hour)}},
		},
		failing: map[string]bool{"XYZ": true},
	}
	classifier := &fakeClassifier{labels: map[string]string{
		"Great quarter": "Positive",
		"Cloud growth":  "Positive",
	}}

	p := newTestPipeline(fetcher, classifier)
	results, _ := p.Run(context.Background(), []model.Company{
		{Symbol: "AAPL"}, {Symbol: "XYZ"}, {Symbol: "MSFT"},
	})

	assert.Equal(t, 3, len(results))
	assert.Equal(t, model.ReportScore, results[0].Report.Kind)
	assert.Equal(t, model.ReportNoData, results[1].Report.Kind)
	assert.Equal(t, model.ReportScore, results[2].Report.Kind)
}

func TestPipeline_ResultsMatchInputOrder(t *testing.T) {
	w := ResolveWindow(fixedNow())

	symbols := []string{"TSLA", "AAPL", "NVDA", "MSFT", "AMZN", "GOOG"}
	headlines := map[string][]news.Headline{}
	labels := map[string]string{}
	for _, s := range symbols {
		headlines[s] = []news.Headline{{Title: s + " news", PublishedAt: w.Start.Add(time.Hour)}}
		labels[s+" news"] = "Neutral"
	}

	fetcher := &fakeFetcher{headlines: headlines}
	classifier := &fakeClassifier{labels: labels}

	p := newTestPipeline(fetcher, classifier)

	companies := make([]model.Company, 0, len(symbols))
	for _, s := range symbols {
		companies = append(companies, model.Company{Symbol: s})
	}

	results, _ := p.Run(context.Background(), companies)

	assert.Equal(t, len(symbols), len(results))
	for i, s := range symbols {
		assert.Equal(t, s, results[i].Symbol)
	}
}

func TestPipeline_HeadlinesOutsideWindowExcluded(t *testing.T) {
	w := ResolveWindow(fixedNow())

	fetcher := &fakeFetcher{headlines: map[string][]news.Headline{
		"AAPL": {
			{Title: "stale", PublishedAt: w.Start.AddDate(0, 0, -2)},
			{Title: "future", PublishedAt: w.End.Add(time.Hour)},
		},
	}}
	classifier := &fakeClassifier{}

	p := newTestPipeline(fetcher, classifier)
	results, _ := p.Run(context.Background(), []model.Company{{Symbol: "AAPL"}})

	// everything fetched fell outside the window: no-data sentinel
	assert.Equal(t, model.ReportNoData, results[0].Report.Kind)
	assert.Equal(t, 0, classifier.calls)
}
