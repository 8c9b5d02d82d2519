package stability

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"promptglot/internal/domain"
	"promptglot/internal/infra"

	"github.com/go-resty/resty/v2"
)

const (
	providerName        = "stability"
	defaultBaseURL      = "https://api.stability.ai"
	defaultOutputFormat = "png"

	inpaintPath       = "/v2beta/stable-image/edit/inpaint"
	searchReplacePath = "/v2beta/stable-image/edit/search-and-replace"
)

// Options configures the Stability AI image edit client.
type Options struct {
	APIKey       string
	BaseURL      string
	OutputFormat string
	HTTPClient   *http.Client
	Logger       *infra.Logger
}

// Client calls the Stability AI v2beta edit endpoints. It is safe for
// concurrent use.
type Client struct {
	apiKey       string
	outputFormat string
	http         *resty.Client
	logger       *infra.Logger
}

// errorResponse is the body Stability returns for non-2xx answers.
type errorResponse struct {
	ID      string   `json:"id"`
	Name    string   `json:"name"`
	Errors  []string `json:"errors"`
	Message string   `json:"message"`
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
	rc.SetBaseURL(baseURL).SetHeader("Accept", "image/*")

	format := normalizeFormat(opts.OutputFormat)
	if format == "" {
		format = defaultOutputFormat
	}
	logger := opts.Logger
	if logger == nil {
		logger = infra.DiscardLogger()
	}
	return &Client{
		apiKey:       strings.TrimSpace(opts.APIKey),
		outputFormat: format,
		http:         rc,
		logger:       logger,
	}
}

func (c *Client) Name() string { return providerName }

// HasCredentials reports whether the client can perform remote calls.
func (c *Client) HasCredentials() bool {
	return c.apiKey != ""
}

// Inpaint regenerates the masked region, or the whole image when no mask is
// given, following the prompt.
func (c *Client) Inpaint(ctx context.Context, in domain.InpaintInput) (*domain.EditedImage, error) {
	if in.Image == nil || len(in.Image.Data) == 0 {
		return nil, fmt.Errorf("stability: image is required")
	}
	format := c.formatFor(in.OutputFormat)
	form := map[string]string{
		"prompt":        in.Prompt,
		"output_format": format,
		"strength":      strconv.FormatFloat(in.Strength, 'f', -1, 64),
	}
	if neg := strings.TrimSpace(in.NegativePrompt); neg != "" {
		form["negative_prompt"] = neg
	}
	files := []part{{field: "image", upload: in.Image}}
	if in.Mask != nil && len(in.Mask.Data) > 0 {
		files = append(files, part{field: "mask", upload: in.Mask})
	}
	return c.post(ctx, inpaintPath, form, files, format)
}

// SearchAndReplace locates SearchPrompt in the image and replaces it
// following Prompt.
func (c *Client) SearchAndReplace(ctx context.Context, in domain.SearchReplaceInput) (*domain.EditedImage, error) {
	if in.Image == nil || len(in.Image.Data) == 0 {
		return nil, fmt.Errorf("stability: image is required")
	}
	if strings.TrimSpace(in.SearchPrompt) == "" {
		return nil, fmt.Errorf("stability: search prompt is required")
	}
	format := c.formatFor(in.OutputFormat)
	form := map[string]string{
		"prompt":        in.Prompt,
		"search_prompt": in.SearchPrompt,
		"output_format": format,
	}
	if neg := strings.TrimSpace(in.NegativePrompt); neg != "" {
		form["negative_prompt"] = neg
	}
	return c.post(ctx, searchReplacePath, form, []part{{field: "image", upload: in.Image}}, format)
}

type part struct {
	field  string
	upload *domain.Upload
}

func (c *Client) post(ctx context.Context, path string, form map[string]string, files []part, format string) (*domain.EditedImage, error) {
	if !c.HasCredentials() {
		return nil, domain.Configuration(providerName)
	}
	req := c.http.R().
		SetContext(ctx).
		SetAuthToken(c.apiKey).
		SetMultipartFormData(form)
	for _, f := range files {
		req.SetMultipartField(f.field, fileName(f), f.upload.ContentType, bytes.NewReader(f.upload.Data))
	}

	resp, err := req.Post(path)
	if err != nil {
		return nil, fmt.Errorf("stability: http request: %w", err)
	}
	if resp.IsError() {
		detail := errorDetail(resp.Body())
		c.logger.Error().
			Int("status", resp.StatusCode()).
			Str("path", path).
			Str("detail", detail).
			Msg("stability: request rejected")
		return nil, domain.Provider(providerName, resp.StatusCode(), detail)
	}

	out := &domain.EditedImage{
		Data:         resp.Body(),
		OutputFormat: format,
		FinishReason: resp.Header().Get("finish-reason"),
		Seed:         resp.Header().Get("seed"),
	}
	if ct := resp.Header().Get("Content-Type"); strings.HasPrefix(ct, "image/") {
		out.OutputFormat = ct
	}
	c.logger.Debug().
		Str("path", path).
		Str("finish_reason", out.FinishReason).
		Int("bytes", len(out.Data)).
		Msg("stability: edit completed")
	return out, nil
}

func (c *Client) formatFor(requested string) string {
	if f := normalizeFormat(requested); f != "" {
		return f
	}
	return c.outputFormat
}

func normalizeFormat(format string) string {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "png":
		return "png"
	case "jpeg", "jpg":
		return "jpeg"
	case "webp":
		return "webp"
	}
	return ""
}

func fileName(p part) string {
	if name := strings.TrimSpace(p.upload.Filename); name != "" {
		return name
	}
	switch p.upload.ContentType {
	case "image/jpeg", "image/jpg":
		return p.field + ".jpg"
	case "image/webp":
		return p.field + ".webp"
	}
	return p.field + ".png"
}

func errorDetail(body []byte) string {
	var detail errorResponse
	if err := json.Unmarshal(body, &detail); err == nil {
		if len(detail.Errors) > 0 {
			msg := strings.Join(detail.Errors, "; ")
			if detail.Name != "" {
				msg = detail.Name + ": " + msg
			}
			return msg
		}
		if detail.Message != "" {
			return detail.Message
		}
		if detail.Name != "" {
			return detail.Name
		}
	}
	raw := strings.TrimSpace(string(body))
	if len(raw) > 300 {
		raw = raw[:300]
	}
	return raw
}
