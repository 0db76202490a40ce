package sentiment

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"sentibot/internal/model"
	"sentibot/pkg/llm"
	"sentibot/pkg/news"
)

const defaultCompanyWorkers = 4

type Pipeline struct {
	fetcher    news.SymbolNewsClient
	classifier llm.Classifier
	workers    int
	now        func() time.Time
}

func NewPipeline(fetcher news.SymbolNewsClient, classifier llm.Classifier) *Pipeline {
	return &Pipeline{
		fetcher:    fetcher,
		classifier: classifier,
		workers:    defaultCompanyWorkers,
		now:        time.Now,
	}
}

// Run processes companies with bounded parallelism; each goroutine writes
// only its own slot, so results land in input order.
func (p *Pipeline) Run(ctx context.Context, companies []model.Company) ([]model.CompanyResult, Window) {
	window := ResolveWindow(p.now())
	results := make([]model.CompanyResult, len(companies))

	g := new(errgroup.Group)
	g.SetLimit(p.workers)

	for i, company := range companies {
		i, company := i, company
		g.Go(func() error {
			results[i] = model.CompanyResult{
				Symbol: company.Symbol,
				Report: p.runCompany(ctx, company.Symbol, window),
			}
			return nil
		})
	}

	g.Wait()

	return results, window
}

func (p *Pipeline) runCompany(ctx context.Context, symbol string, window Window) model.CompanyReport {
	headlines, err := p.fetcher.FetchSymbol(ctx, symbol)
	if err != nil {
		slog.Error("headline fetch failed", "symbol", symbol, "source", p.fetcher.Name(), "error", err)
		return model.CompanyReport{Kind: model.ReportNoData}
	}

	inWindow := FilterWindow(headlines, window)
	slog.Info("headlines collected", "symbol", symbol, "fetched", len(headlines), "in_window", len(inWindow))

	return AggregateCompany(ctx, p.classifier, symbol, inWindow)
}
