package edit

import (
	"context"
	"errors"
	"strings"
	"time"

	"promptglot/internal/domain"
	"promptglot/internal/infra"
)

const (
	SourceLocaleAfrikaans = "af"
	TargetLocaleEnglish   = "en-US"
)

// IntentResult is the outcome of one resolution. Exactly one field is set.
type IntentResult struct {
	Intent *domain.IntentResolution
	Err    *domain.Error
}

func (r IntentResult) OK() bool { return r.Err == nil && r.Intent != nil }

// Resolver turns a prompt into an IntentResolution using a translator and a
// classifier. Failures are returned as values; callers decide whether to
// degrade or surface them.
type Resolver struct {
	translator Translator
	classifier Classifier
	timeout    time.Duration
	logger     *infra.Logger
}

func NewResolver(translator Translator, classifier Classifier, timeout time.Duration, logger *infra.Logger) *Resolver {
	if logger == nil {
		logger = infra.DiscardLogger()
	}
	return &Resolver{translator: translator, classifier: classifier, timeout: timeout, logger: logger}
}

// Resolve sanitizes text, translates it and classifies the edit intent.
func (r *Resolver) Resolve(ctx context.Context, text, sourceLocale, targetLocale string) IntentResult {
	original := Sanitize(text)
	if original == "" {
		return IntentResult{Err: domain.Validation(domain.CodeInvalidRequest, "Text must be a non-empty string")}
	}
	if r.translator == nil || r.classifier == nil {
		return IntentResult{Err: resolutionError(domain.Internal(errors.New("resolver is not wired")))}
	}

	intent := &domain.IntentResolution{
		Original:          original,
		HasDoubleNegation: HasDoubleNegation(original),
		SourceLocale:      sourceLocale,
		TargetLocale:      targetLocale,
	}

	literal, err := callProvider(ctx, r.timeout, r.translator.Name(), "translate", func(ctx context.Context) (string, error) {
		return r.translator.Translate(ctx, original, sourceLocale, targetLocale)
	})
	if err != nil {
		return IntentResult{Err: resolutionError(err)}
	}
	literal = strings.TrimSpace(literal)
	if literal == "" {
		return IntentResult{Err: domain.Translation(errors.New("translation provider returned empty text"))}
	}

	cls, err := callProvider(ctx, r.timeout, r.classifier.Name(), "classify", func(ctx context.Context) (*domain.Classification, error) {
		return r.classifier.Classify(ctx, domain.ClassifyInput{
			Original:          original,
			Literal:           literal,
			HasDoubleNegation: intent.HasDoubleNegation,
			SourceLocale:      sourceLocale,
		})
	})
	if err != nil {
		return IntentResult{Err: resolutionError(err)}
	}
	if cls == nil {
		cls = &domain.Classification{}
	}

	intent.Translated = literal
	if refined := Sanitize(cls.RefinedPrompt); refined != "" {
		intent.Translated = refined
	}
	intent.Action = domain.NormalizeAction(cls.Action)
	if intent.Action == "" && intent.HasDoubleNegation {
		intent.Action = domain.ActionRemove
	}
	intent.Subject = strings.TrimSpace(cls.Subject)

	r.logger.Debug().
		Str("action", string(intent.Action)).
		Str("subject", intent.Subject).
		Bool("double_negation", intent.HasDoubleNegation).
		Msg("intent resolved")
	return IntentResult{Intent: intent}
}

// resolutionError keeps timeouts and configuration problems recognisable and
// reports every other failure as a translation error.
func resolutionError(err error) *domain.Error {
	de := domain.AsError(err)
	switch de.Kind {
	case domain.KindTimeout, domain.KindConfiguration, domain.KindTranslation, domain.KindValidation:
		return de
	case domain.KindProvider:
		return &domain.Error{Kind: domain.KindTranslation, Code: domain.CodeTranslation, Message: de.Message, Err: de}
	default:
		return &domain.Error{Kind: domain.KindTranslation, Code: domain.CodeTranslation, Message: "Translation failed", Err: de}
	}
}
