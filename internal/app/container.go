package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"promptglot/internal/edit"
	"promptglot/internal/infra"
	"promptglot/internal/infra/geoip"
	"promptglot/internal/providers/intent"
	"promptglot/internal/providers/lingo"
	"promptglot/internal/providers/stability"
)

// Container holds the provider clients and the edit pipeline shared by the
// HTTP server and the CLI. Everything in it is safe for concurrent use.
type Container struct {
	Config     *infra.Config
	Logger     *infra.Logger
	Translator *lingo.Client
	Classifier intent.Classifier
	Editor     *stability.Client
	Pipeline   *edit.Pipeline
	GeoIP      *geoip.Resolver
}

// New builds every provider from cfg. Missing API keys are not errors here;
// they are reported by Readiness and fail the first call that needs them.
func New(ctx context.Context, cfg *infra.Config, logger *infra.Logger) (*Container, error) {
	if logger == nil {
		logger = infra.DiscardLogger()
	}
	httpClient := &http.Client{}

	translator := lingo.NewClient(lingo.Options{
		APIKey:     cfg.LingoAPIKey,
		BaseURL:    cfg.LingoBaseURL,
		HTTPClient: httpClient,
		Logger:     logger,
	})
	classifier, err := intent.New(ctx, intent.Config{
		Preferred:     cfg.IntentProvider,
		OpenAIAPIKey:  cfg.OpenAIAPIKey,
		OpenAIModel:   cfg.OpenAIModel,
		OpenAIBaseURL: cfg.OpenAIBaseURL,
		GeminiAPIKey:  cfg.GeminiAPIKey,
		GeminiModel:   cfg.GeminiModel,
		HTTPClient:    httpClient,
		Logger:        logger,
	})
	if err != nil {
		return nil, fmt.Errorf("intent classifier: %w", err)
	}
	editor := stability.NewClient(stability.Options{
		APIKey:       cfg.StabilityAPIKey,
		BaseURL:      cfg.StabilityBaseURL,
		OutputFormat: cfg.StabilityOutputFormat,
		HTTPClient:   httpClient,
		Logger:       logger,
	})

	resolver, err := geoip.NewResolver(cfg.GeoIPDBPath)
	if err != nil {
		return nil, fmt.Errorf("geoip: %w", err)
	}

	return &Container{
		Config:     cfg,
		Logger:     logger,
		Translator: translator,
		Classifier: classifier,
		Editor:     editor,
		GeoIP:      resolver,
		Pipeline: edit.NewPipeline(edit.Options{
			Translator:      translator,
			Classifier:      classifier,
			Editor:          editor,
			OutputFormat:    cfg.StabilityOutputFormat,
			ProviderTimeout: cfg.ProviderTimeout,
			Logger:          logger,
		}),
	}, nil
}

func (c *Container) Close() error {
	if c == nil || c.GeoIP == nil {
		return nil
	}
	return c.GeoIP.Close()
}

const (
	StatusHealthy     = "healthy"
	StatusDegraded    = "degraded"
	StatusConfigured  = "configured"
	StatusMissingKey  = "missing_api_key"
	StatusOperational = "operational"
)

type ServiceStatus struct {
	Status string `json:"status"`
	Ready  bool   `json:"ready"`
}

// Readiness is the body of the health endpoint.
type Readiness struct {
	Status      string                   `json:"status"`
	Timestamp   string                   `json:"timestamp"`
	Services    map[string]ServiceStatus `json:"services"`
	Version     string                   `json:"version"`
	Environment string                   `json:"environment"`
}

// Readiness reports which providers have credentials. The service is
// degraded when any of them is missing a key.
func (c *Container) Readiness(now time.Time) Readiness {
	services := map[string]ServiceStatus{
		"lingo":             credentialStatus(c.Translator.HasCredentials()),
		"stability":         credentialStatus(c.Editor.HasCredentials()),
		c.Classifier.Name(): credentialStatus(c.Classifier.HasCredentials()),
		"api":               {Status: StatusOperational, Ready: true},
	}
	status := StatusHealthy
	for _, s := range services {
		if !s.Ready {
			status = StatusDegraded
			break
		}
	}
	return Readiness{
		Status:      status,
		Timestamp:   now.UTC().Format(time.RFC3339),
		Services:    services,
		Version:     c.Config.AppVersion,
		Environment: c.Config.AppEnv,
	}
}

func credentialStatus(ok bool) ServiceStatus {
	if ok {
		return ServiceStatus{Status: StatusConfigured, Ready: true}
	}
	return ServiceStatus{Status: StatusMissingKey, Ready: false}
}
