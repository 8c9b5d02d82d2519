package edit

import (
	"context"

	"promptglot/internal/domain"
)

// Translator produces a literal translation of text.
type Translator interface {
	Name() string
	Translate(ctx context.Context, text, sourceLocale, targetLocale string) (string, error)
}

// Classifier extracts a structured edit intent from a prompt and its literal
// translation.
type Classifier interface {
	Name() string
	Classify(ctx context.Context, in domain.ClassifyInput) (*domain.Classification, error)
}

// ImageEditor is the downstream image edit provider. Implementations must be
// safe for concurrent use.
type ImageEditor interface {
	Name() string
	Inpaint(ctx context.Context, in domain.InpaintInput) (*domain.EditedImage, error)
	SearchAndReplace(ctx context.Context, in domain.SearchReplaceInput) (*domain.EditedImage, error)
}
