package sentiment

import (
	"context"
	"log/slog"
	"math"

	"sentibot/internal/model"
	"sentibot/pkg/llm"
	"sentibot/pkg/news"
)

// AggregateCompany averages ternary scores rounded to two decimals. No
// headlines yields the no-data sentinel, distinct from a zero average.
func AggregateCompany(ctx context.Context, classifier llm.Classifier, symbol string, headlines []news.Headline) model.CompanyReport {
	if len(headlines) == 0 {
		return model.CompanyReport{Kind: model.ReportNoData}
	}

	total := 0
	for _, h := range headlines {
		label, err := classifier.Classify(ctx, symbol, h.Title)
		if err != nil {
			slog.Warn("classification failed, scoring neutral", "symbol", symbol, "headline", h.Title, "error", err)
			continue
		}
		total += ScoreLabel(label)
	}

	avg := float64(total) / float64(len(headlines))

	return model.CompanyReport{
		Kind:      model.ReportScore,
		Score:     math.Round(avg*100) / 100,
		Headlines: len(headlines),
	}
}
