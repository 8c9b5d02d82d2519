package intent

import (
	"context"
	"net/http"
	"strings"

	"promptglot/internal/infra"
)

// Config lists the credentials of every supported classifier.
type Config struct {
	Preferred     string
	OpenAIAPIKey  string
	OpenAIModel   string
	OpenAIBaseURL string
	GeminiAPIKey  string
	GeminiModel   string
	GeminiBaseURL string
	HTTPClient    *http.Client
	Logger        *infra.Logger
}

// SelectProvider returns the preferred provider unless it has no key while
// the other one does.
func SelectProvider(preferred, openAIKey, geminiKey string) string {
	preferred = strings.ToLower(strings.TrimSpace(preferred))
	hasOpenAI := strings.TrimSpace(openAIKey) != ""
	hasGemini := strings.TrimSpace(geminiKey) != ""
	switch preferred {
	case ProviderGemini:
		if !hasGemini && hasOpenAI {
			return ProviderOpenAI
		}
		return ProviderGemini
	default:
		if !hasOpenAI && hasGemini {
			return ProviderGemini
		}
		return ProviderOpenAI
	}
}

// New builds the classifier chosen by SelectProvider.
func New(ctx context.Context, cfg Config) (Classifier, error) {
	name := SelectProvider(cfg.Preferred, cfg.OpenAIAPIKey, cfg.GeminiAPIKey)
	if cfg.Logger != nil && name != strings.ToLower(strings.TrimSpace(cfg.Preferred)) && cfg.Preferred != "" {
		cfg.Logger.Warn().
			Str("preferred", cfg.Preferred).
			Str("selected", name).
			Msg("intent provider has no api key, using fallback provider")
	}
	if name == ProviderGemini {
		g, err := NewGeminiClassifier(ctx, GeminiOptions{
			APIKey:     cfg.GeminiAPIKey,
			Model:      cfg.GeminiModel,
			BaseURL:    cfg.GeminiBaseURL,
			HTTPClient: cfg.HTTPClient,
			Logger:     cfg.Logger,
		})
		if err != nil {
			return nil, err
		}
		return g, nil
	}
	return NewOpenAIClassifier(OpenAIOptions{
		APIKey:     cfg.OpenAIAPIKey,
		Model:      cfg.OpenAIModel,
		BaseURL:    cfg.OpenAIBaseURL,
		HTTPClient: cfg.HTTPClient,
		Logger:     cfg.Logger,
	}), nil
}
