package handlers

import (
	"net/http"

	"promptglot/internal/middleware"
)

// Locale reports the UI bundle picked by the I18N middleware.
func (a *App) Locale(w http.ResponseWriter, r *http.Request) {
	body := map[string]any{
		"locale":           middleware.LocaleFromContext(r.Context()),
		"supportedLocales": middleware.SupportedLocales,
	}
	if country := middleware.CountryFromContext(r.Context()); country != "" {
		body["country"] = country
	}
	a.json(w, http.StatusOK, body)
}
