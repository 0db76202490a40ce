package llm

import "context"

// Classifier returns free-form model output; callers normalize it.
type Classifier interface {
	Classify(ctx context.Context, company string, headline string) (string, error)
}
