package edit

import (
	"context"
	"errors"
	"fmt"

	"promptglot/internal/domain"

	"golang.org/x/sync/errgroup"
)

// MaxBatchSize caps the number of texts in one batch resolution.
const MaxBatchSize = 50

// ResolveBatch resolves every text concurrently. Results keep the input
// order. The first failure cancels the remaining calls and is returned.
func (r *Resolver) ResolveBatch(ctx context.Context, texts []string, sourceLocale, targetLocale string) ([]domain.IntentResolution, *domain.Error) {
	if len(texts) == 0 {
		return nil, domain.Validation(domain.CodeInvalidRequest, "Texts array cannot be empty")
	}
	if len(texts) > MaxBatchSize {
		return nil, domain.Validation(domain.CodeInvalidRequest, fmt.Sprintf("Maximum %d texts per batch request", MaxBatchSize))
	}

	results := make([]domain.IntentResolution, len(texts))
	g, gctx := errgroup.WithContext(ctx)
	for i, text := range texts {
		g.Go(func() error {
			res := r.Resolve(gctx, text, sourceLocale, targetLocale)
			if res.Err != nil {
				return res.Err
			}
			results[i] = *res.Intent
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		var de *domain.Error
		if errors.As(err, &de) {
			return nil, de
		}
		return nil, resolutionError(err)
	}
	return results, nil
}
