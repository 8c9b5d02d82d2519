package intent

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"promptglot/internal/domain"
	"promptglot/internal/infra"

	openai "github.com/sashabaranov/go-openai"
)

const defaultOpenAIModel = "gpt-4o-mini"

type OpenAIOptions struct {
	APIKey     string
	Model      string
	BaseURL    string
	HTTPClient *http.Client
	Logger     *infra.Logger
}

// OpenAIClassifier classifies prompts with a JSON-mode chat completion.
type OpenAIClassifier struct {
	client *openai.Client
	apiKey string
	model  string
	logger *infra.Logger
}

func NewOpenAIClassifier(opts OpenAIOptions) *OpenAIClassifier {
	apiKey := strings.TrimSpace(opts.APIKey)
	cfg := openai.DefaultConfig(apiKey)
	if base := strings.TrimRight(strings.TrimSpace(opts.BaseURL), "/"); base != "" {
		cfg.BaseURL = base
	}
	if opts.HTTPClient != nil {
		cfg.HTTPClient = opts.HTTPClient
	}
	logger := opts.Logger
	if logger == nil {
		logger = infra.DiscardLogger()
	}
	return &OpenAIClassifier{
		client: openai.NewClientWithConfig(cfg),
		apiKey: apiKey,
		model:  coalesce(opts.Model, defaultOpenAIModel),
		logger: logger,
	}
}

func (o *OpenAIClassifier) Name() string { return ProviderOpenAI }

func (o *OpenAIClassifier) HasCredentials() bool { return o.apiKey != "" }

func (o *OpenAIClassifier) Classify(ctx context.Context, in domain.ClassifyInput) (*domain.Classification, error) {
	if !o.HasCredentials() {
		return nil, domain.Configuration(ProviderOpenAI)
	}
	resp, err := o.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       o.model,
		Temperature: 0.1,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemInstruction},
			{Role: openai.ChatMessageRoleUser, Content: buildUserPrompt(in)},
		},
	})
	if err != nil {
		return nil, mapOpenAIError(err)
	}
	if len(resp.Choices) == 0 {
		return nil, errors.New("openai: no choices")
	}
	text := strings.TrimSpace(resp.Choices[0].Message.Content)
	if text == "" {
		return nil, errors.New("openai: empty response")
	}
	out, err := parseClassification(text)
	if err != nil {
		return nil, fmt.Errorf("openai: parse payload: %w", err)
	}
	o.logger.Debug().Str("model", o.model).Str("action", out.Action).Msg("openai: classified prompt")
	return out, nil
}

func mapOpenAIError(err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) && apiErr.HTTPStatusCode > 0 {
		return domain.Provider(ProviderOpenAI, apiErr.HTTPStatusCode, apiErr.Message)
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) && reqErr.HTTPStatusCode > 0 {
		return domain.Provider(ProviderOpenAI, reqErr.HTTPStatusCode, "")
	}
	return fmt.Errorf("openai: chat completion: %w", err)
}
