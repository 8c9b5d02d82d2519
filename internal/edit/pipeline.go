package edit

import (
	"context"
	"time"

	"promptglot/internal/domain"
	"promptglot/internal/infra"
	"promptglot/internal/metrics"
)

// Options wires the pipeline to its providers.
type Options struct {
	Translator      Translator
	Classifier      Classifier
	Editor          ImageEditor
	OutputFormat    string
	ProviderTimeout time.Duration
	Logger          *infra.Logger
}

// Pipeline runs a validated EditRequest through intent resolution, routing
// and the image edit provider.
type Pipeline struct {
	resolver     *Resolver
	editor       ImageEditor
	outputFormat string
	timeout      time.Duration
	logger       *infra.Logger
}

// Result is everything the transport needs to answer one edit.
type Result struct {
	Outcome          domain.EditOutcome
	OriginalPrompt   string
	TranslatedPrompt string
	// Intent is nil for English prompts and when resolution degraded.
	Intent       *domain.IntentResolution
	Route        Route
	FinishReason string
	Seed         string
	// Err holds the full failure detail; only its public part reaches clients.
	Err *domain.Error
}

func NewPipeline(opts Options) *Pipeline {
	logger := opts.Logger
	if logger == nil {
		logger = infra.DiscardLogger()
	}
	timeout := opts.ProviderTimeout
	if timeout <= 0 {
		timeout = DefaultProviderTimeout
	}
	return &Pipeline{
		resolver:     NewResolver(opts.Translator, opts.Classifier, timeout, logger),
		editor:       opts.Editor,
		outputFormat: opts.OutputFormat,
		timeout:      timeout,
		logger:       logger,
	}
}

// Resolver exposes the intent resolver for the translate endpoint.
func (p *Pipeline) Resolver() *Resolver { return p.resolver }

// Run executes one edit. It never returns a Go error: failures are carried in
// Result.Outcome and Result.Err.
func (p *Pipeline) Run(ctx context.Context, req domain.EditRequest) Result {
	res := Result{OriginalPrompt: req.Prompt}

	if req.Language == domain.LanguageAfrikaans {
		resolved := p.resolver.Resolve(ctx, req.Prompt, SourceLocaleAfrikaans, TargetLocaleEnglish)
		if resolved.OK() {
			ApplyIntent(&req, resolved.Intent)
			res.Intent = resolved.Intent
		} else {
			metrics.RecordIntentFallback(resolved.Err.Code)
			p.logger.Warn().
				Err(resolved.Err).
				Str("code", resolved.Err.Code).
				Msg("intent resolution failed, continuing with original prompt")
		}
	}
	res.TranslatedPrompt = req.Prompt

	width, height := req.Image.Dimensions()
	res.Route = SelectRoute(req)
	metrics.RecordEditRoute(string(res.Route))
	p.logger.Debug().
		Str("route", string(res.Route)).
		Str("action", string(req.Action)).
		Bool("mask", req.Mask != nil).
		Int("width", width).
		Int("height", height).
		Msg("edit route selected")

	if p.editor == nil {
		res.Err = domain.Internal(nil)
		res.Outcome = domain.FailedOutcome(res.Err)
		return res
	}

	img, err := p.dispatch(ctx, res.Route, req)
	res.Outcome, res.Err = Assemble(p.editor.Name(), img, err)
	if res.Err != nil {
		p.logger.Error().
			Err(res.Err).
			Str("code", res.Err.Code).
			Str("route", string(res.Route)).
			Msg("image edit failed")
		return res
	}
	res.FinishReason, res.Seed = img.FinishReason, img.Seed
	if img.FinishReason == "CONTENT_FILTERED" {
		p.logger.Warn().Str("route", string(res.Route)).Msg("image edit output was content filtered")
	}
	return res
}

func (p *Pipeline) dispatch(ctx context.Context, route Route, req domain.EditRequest) (*domain.EditedImage, error) {
	name := p.editor.Name()
	if route == RouteSearchAndReplace {
		return callProvider(ctx, p.timeout, name, string(route), func(ctx context.Context) (*domain.EditedImage, error) {
			return p.editor.SearchAndReplace(ctx, domain.SearchReplaceInput{
				Image:          req.Image,
				SearchPrompt:   req.Subject,
				Prompt:         req.Prompt,
				NegativePrompt: req.Subject,
				OutputFormat:   p.outputFormat,
			})
		})
	}
	return callProvider(ctx, p.timeout, name, string(route), func(ctx context.Context) (*domain.EditedImage, error) {
		return p.editor.Inpaint(ctx, domain.InpaintInput{
			Image:          req.Image,
			Mask:           req.Mask,
			Prompt:         req.Prompt,
			NegativePrompt: req.NegativePrompt,
			Strength:       req.EffectiveStrength(),
			OutputFormat:   p.outputFormat,
		})
	})
}
