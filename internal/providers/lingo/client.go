package lingo

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"promptglot/internal/domain"
	"promptglot/internal/infra"

	"github.com/go-resty/resty/v2"
)

const (
	providerName   = "lingo"
	defaultBaseURL = "https://engine.lingo.dev"
)

// Options configures the Lingo.dev localization client.
type Options struct {
	APIKey     string
	BaseURL    string
	WorkflowID string
	HTTPClient *http.Client
	Logger     *infra.Logger
}

// Client calls the Lingo.dev localization engine. It is safe for concurrent use.
type Client struct {
	apiKey     string
	workflowID string
	http       *resty.Client
	logger     *infra.Logger
}

type localizeRequest struct {
	Params localizeParams    `json:"params"`
	Locale localizeLocale    `json:"locale"`
	Data   map[string]string `json:"data"`
}

type localizeParams struct {
	WorkflowID string `json:"workflowId,omitempty"`
	Fast       bool   `json:"fast"`
}

type localizeLocale struct {
	Source string `json:"source"`
	Target string `json:"target"`
}

type localizeResponse struct {
	Data map[string]string `json:"data"`
}

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// NewClient builds a client. A missing key is accepted so the service can
// start; every call then fails with a configuration error.
func NewClient(opts Options) *Client {
	baseURL := strings.TrimRight(strings.TrimSpace(opts.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	var rc *resty.Client
	if opts.HTTPClient != nil {
		rc = resty.NewWithClient(opts.HTTPClient)
	} else {
		rc = resty.New()
	}
	rc.SetBaseURL(baseURL).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")

	logger := opts.Logger
	if logger == nil {
		logger = infra.DiscardLogger()
	}
	return &Client{
		apiKey:     strings.TrimSpace(opts.APIKey),
		workflowID: strings.TrimSpace(opts.WorkflowID),
		http:       rc,
		logger:     logger,
	}
}

func (c *Client) Name() string { return providerName }

// HasCredentials reports whether the client can perform remote calls.
func (c *Client) HasCredentials() bool {
	return c.apiKey != ""
}

// Translate localizes text from sourceLocale to targetLocale in one call.
func (c *Client) Translate(ctx context.Context, text, sourceLocale, targetLocale string) (string, error) {
	if !c.HasCredentials() {
		return "", domain.Configuration(providerName)
	}
	payload := localizeRequest{
		Params: localizeParams{WorkflowID: c.workflowID, Fast: true},
		Locale: localizeLocale{Source: sourceLocale, Target: targetLocale},
		Data:   map[string]string{"text": text},
	}
	resp, err := c.http.R().
		SetContext(ctx).
		SetAuthToken(c.apiKey).
		SetBody(payload).
		Post("/i18n")
	if err != nil {
		return "", fmt.Errorf("lingo: http request: %w", err)
	}
	if resp.IsError() {
		return "", domain.Provider(providerName, resp.StatusCode(), errorDetail(resp.Body()))
	}

	var decoded localizeResponse
	if err := json.Unmarshal(resp.Body(), &decoded); err != nil {
		return "", fmt.Errorf("lingo: decode response: %w", err)
	}
	out := strings.TrimSpace(decoded.Data["text"])
	c.logger.Debug().
		Str("source", sourceLocale).
		Str("target", targetLocale).
		Int("chars", len(text)).
		Msg("lingo: localized text")
	return out, nil
}

func errorDetail(body []byte) string {
	var detail errorResponse
	if err := json.Unmarshal(body, &detail); err == nil {
		if msg := strings.TrimSpace(detail.Error); msg != "" {
			return msg
		}
		if msg := strings.TrimSpace(detail.Message); msg != "" {
			return msg
		}
	}
	raw := strings.TrimSpace(string(body))
	if len(raw) > 300 {
		raw = raw[:300]
	}
	return raw
}
