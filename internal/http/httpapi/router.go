package httpapi

import (
	"net/http"
	"time"

	"promptglot/internal/http/handlers"
	"promptglot/internal/infra"
	"promptglot/internal/middleware"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
)

// Options carries the cross-cutting settings of the router.
type Options struct {
	Logger          infra.Logger
	AllowedOrigins  []string
	RateLimitPerMin int
	CountryLookup   middleware.CountryLookup
	// TrustProxy rewrites RemoteAddr from proxy headers. Clients can forge
	// those headers, so only set it behind a proxy that overwrites them.
	TrustProxy bool
}

func NewRouter(app *handlers.App, opts Options) http.Handler {
	r := chi.NewRouter()

	if opts.TrustProxy {
		r.Use(chimw.RealIP)
	}
	r.Use(
		middleware.RequestID,
		middleware.Logger(opts.Logger),
		chimw.Recoverer,
		middleware.CORS(opts.AllowedOrigins),
		middleware.I18N(middleware.LocaleEnglish, opts.CountryLookup),
	)

	r.Method(http.MethodGet, "/metrics", handlers.MetricsHandler())

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", app.Health)
		r.Get("/locale", app.Locale)
		r.Get("/openapi.json", app.OpenAPIJSON)
		r.Get("/docs", app.OpenAPIDocs)

		r.Get("/translate", app.TranslateInfo)
		r.Post("/translate", app.Translate)

		r.Get("/inpaint", app.InpaintInfo)
		r.With(middleware.RateLimit(opts.RateLimitPerMin, time.Minute)).Post("/inpaint", app.Inpaint)
	})

	return r
}
