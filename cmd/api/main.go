package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"promptglot/internal/app"
	"promptglot/internal/http/handlers"
	httpapi "promptglot/internal/http/httpapi"
	"promptglot/internal/infra"
)

func main() {
	// .env is optional
	_ = godotenv.Load()

	cfg, err := infra.LoadConfig()
	if err != nil {
		panic(err)
	}
	logger := infra.NewLogger(cfg)

	ctx := context.Background()
	container, err := app.New(ctx, cfg, &logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to build providers")
	}
	defer container.Close()

	router := httpapi.NewRouter(handlers.NewApp(container), httpapi.Options{
		Logger:          logger,
		AllowedOrigins:  cfg.CORSAllowedOrigins,
		RateLimitPerMin: cfg.RateLimitPerMin,
		TrustProxy:      cfg.TrustProxyHeaders,
		CountryLookup:   container.GeoIP.Lookup(),
	})
	server := infra.NewHTTPServer(cfg, router)

	readiness := container.Readiness(time.Now())
	logger.Info().
		Str("status", readiness.Status).
		Str("intent_provider", container.Classifier.Name()).
		Msg("provider readiness")

	go func() {
		logger.Info().Msgf("API listening on %s", server.Addr())
		if err := server.Start(); err != nil {
			logger.Fatal().Err(err).Msg("http server failed")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPIdleTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("failed to shutdown server")
	}
	logger.Info().Msg("server stopped")
}
