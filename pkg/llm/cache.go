package llm

import (
	"context"
	"crypto/sha256"
	"fmt"
	"log/slog"
)

// LabelCache stores raw classifier output; Get reports a miss with ok=false.
type LabelCache interface {
	Get(ctx context.Context, key string) (label string, ok bool, err error)
	Set(ctx context.Context, key string, label string) error
}

// CachedClassifier memoizes classifications; cache errors count as misses.
type CachedClassifier struct {
	inner Classifier
	cache LabelCache
}

func NewCachedClassifier(inner Classifier, cache LabelCache) *CachedClassifier {
	return &CachedClassifier{inner: inner, cache: cache}
}

func (c *CachedClassifier) Classify(ctx context.Context, company string, headline string) (string, error) {
	key := cacheKey(company, headline)

	label, ok, err := c.cache.Get(ctx, key)
	if err != nil {
		slog.Warn("classification cache read failed", "error", err)
	}
	if ok {
		return label, nil
	}

	label, err = c.inner.Classify(ctx, company, headline)
	if err != nil {
		return "", err
	}

	if err := c.cache.Set(ctx, key, label); err != nil {
		slog.Warn("classification cache write failed", "error", err)
	}

	return label, nil
}

func cacheKey(company string, headline string) string {
	sum := sha256.Sum256([]byte(company + "\n" + headline))
	return fmt.Sprintf("%x", sum)[:16]
}
