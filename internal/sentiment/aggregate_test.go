package sentiment

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/go-playground/assert/v2"

	"sentibot/internal/model"
	"sentibot/pkg/news"
)

// fakeClassifier returns a canned label per headline title; safe for
// concurrent workers.
type fakeClassifier struct {
	mu      sync.Mutex
	labels  map[string]string
	failing map[string]bool
	calls   int
}

func (f *fakeClassifier) Classify(ctx context.Context, company string, headline string) (string, error) {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()
	if f.failing[headline] {
		return "", errors.New("quota exceeded")
	}
	return f.labels[headline], nil
}

func headlinesFor(titles ...string) []news.Headline {
	h := make([]news.Headline, 0, len(titles))
	for _, title := range titles {
		h = append(h, news.Headline{Title: title, PublishedAt: time.Now()})
	}
	return h
}

func TestAggregateCompany_NoHeadlines(t *testing.T) {
	classifier := &fakeClassifier{}

	report := AggregateCompany(context.Background(), classifier, "AAPL", nil)

	assert.Equal(t, model.ReportNoData, report.Kind)
	assert.Equal(t, 0, classifier.calls)
}

func TestAggregateCompany_MixedScoresAverageToZero(t *testing.T) {
	classifier := &fakeClassifier{labels: map[string]string{
		"up":   "Positive",
		"down": "Negative",
		"flat": "Neutral",
	}}

	report := AggregateCompany(context.Background(), classifier, "AAPL", headlinesFor("up", "down", "flat"))

	assert.Equal(t, model.ReportScore, report.Kind)
	assert.Equal(t, 0.0, report.Score)
	assert.Equal(t, 3, report.Headlines)
}

func TestAggregateCompany_AllPositive(t *testing.T) {
	classifier := &fakeClassifier{labels: map[string]string{
		"a": "Positive",
		"b": "Positive",
	}}

	report := AggregateCompany(context.Background(), classifier, "MSFT", headlinesFor("a", "b"))

	assert.Equal(t, 1.0, report.Score)
}

func TestAggregateCompany_SingleNegative(t *testing.T) {
	classifier := &fakeClassifier{labels: map[string]string{
		"a": "Negative",
	}}

	report := AggregateCompany(context.Background(), classifier, "TSLA", headlinesFor("a"))

	assert.Equal(t, -1.0, report.Score)
}

func TestAggregateCompany_Rounding(t *testing.T) {
	classifier := &fakeClassifier{labels: map[string]string{
		"a": "Positive",
		"b": "Positive",
		"c": "Negative",
	}}

	// (1 + 1 - 1) / 3 = 0.333... rounds to 0.33
	report := AggregateCompany(context.Background(), classifier, "NVDA", headlinesFor("a", "b", "c"))

	assert.Equal(t, 0.33, report.Score)
}

func TestAggregateCompany_ClassifierFailureScoresNeutral(t *testing.T) {
	classifier := &fakeClassifier{
		labels:  map[string]string{"good": "Positive"},
		failing: map[string]bool{"broken": true},
	}

	// failed headline counts as 0 in the denominator: (1 + 0) / 2
	report := AggregateCompany(context.Background(), classifier, "AAPL", headlinesFor("good", "broken"))

	assert.Equal(t, model.ReportScore, report.Kind)
	assert.Equal(t, 0.5, report.Score)
}

func TestAggregateCompany_AllClassificationsFail(t *testing.T) {
	classifier := &fakeClassifier{
		failing: map[string]bool{"a": true, "b": true},
	}

	// still a numeric report, not the sentinel: headlines existed
	report := AggregateCompany(context.Background(), classifier, "AAPL", headlinesFor("a", "b"))

	assert.Equal(t, model.ReportScore, report.Kind)
	assert.Equal(t, 0.0, report.Score)
}
