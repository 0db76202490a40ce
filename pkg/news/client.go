package news

import (
	"context"
	"time"
)

type Headline struct {
	Title       string
	Detail      string
	URL         string
	Source      string
	PublishedAt time.Time
}

type SymbolNewsClient interface {
	FetchSymbol(ctx context.Context, symbol string) ([]Headline, error)
	VerifySymbol(ctx context.Context, symbol string) (bool, error)
	Name() string
}
