package intent

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"promptglot/internal/domain"
	"promptglot/internal/infra"

	"google.golang.org/genai"
)

const defaultGeminiModel = "gemini-2.5-flash"

type GeminiOptions struct {
	APIKey     string
	Model      string
	BaseURL    string
	HTTPClient *http.Client
	Logger     *infra.Logger
}

// GeminiClassifier classifies prompts with a JSON-typed Gemini generation.
type GeminiClassifier struct {
	client *genai.Client
	model  string
	logger *infra.Logger
}

// NewGeminiClassifier builds the classifier. Without a key no SDK client is
// created and Classify reports a configuration error.
func NewGeminiClassifier(ctx context.Context, opts GeminiOptions) (*GeminiClassifier, error) {
	logger := opts.Logger
	if logger == nil {
		logger = infra.DiscardLogger()
	}
	g := &GeminiClassifier{model: coalesce(opts.Model, defaultGeminiModel), logger: logger}
	apiKey := strings.TrimSpace(opts.APIKey)
	if apiKey == "" {
		return g, nil
	}
	cfg := &genai.ClientConfig{
		APIKey:     apiKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: opts.HTTPClient,
	}
	if base := strings.TrimSpace(opts.BaseURL); base != "" {
		cfg.HTTPOptions = genai.HTTPOptions{BaseURL: strings.TrimRight(base, "/") + "/"}
	}
	client, err := genai.NewClient(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("gemini: new client: %w", err)
	}
	g.client = client
	return g, nil
}

func (g *GeminiClassifier) Name() string { return ProviderGemini }

func (g *GeminiClassifier) HasCredentials() bool { return g.client != nil }

func (g *GeminiClassifier) Classify(ctx context.Context, in domain.ClassifyInput) (*domain.Classification, error) {
	if !g.HasCredentials() {
		return nil, domain.Configuration(ProviderGemini)
	}
	resp, err := g.client.Models.GenerateContent(ctx, g.model,
		genai.Text(buildUserPrompt(in)),
		&genai.GenerateContentConfig{
			SystemInstruction: genai.NewContentFromText(systemInstruction, genai.RoleUser),
			ResponseMIMEType:  "application/json",
			Temperature:       genai.Ptr[float32](0.1),
		},
	)
	if err != nil {
		return nil, mapGeminiError(err)
	}
	text := responseText(resp)
	if text == "" {
		return nil, errors.New("gemini: empty response")
	}
	out, err := parseClassification(text)
	if err != nil {
		return nil, fmt.Errorf("gemini: parse payload: %w", err)
	}
	g.logger.Debug().Str("model", g.model).Str("action", out.Action).Msg("gemini: classified prompt")
	return out, nil
}

func responseText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return ""
	}
	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if part != nil && part.Text != "" {
			sb.WriteString(part.Text)
		}
	}
	return strings.TrimSpace(sb.String())
}

func mapGeminiError(err error) error {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) && apiErr.Code > 0 {
		return domain.Provider(ProviderGemini, apiErr.Code, apiErr.Message)
	}
	var apiErrPtr *genai.APIError
	if errors.As(err, &apiErrPtr) && apiErrPtr.Code > 0 {
		return domain.Provider(ProviderGemini, apiErrPtr.Code, apiErrPtr.Message)
	}
	return fmt.Errorf("gemini: generate content: %w", err)
}
