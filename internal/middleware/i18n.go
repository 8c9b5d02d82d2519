package middleware

import (
	"context"
	"net"
	"net/http"
	"strings"

	"golang.org/x/text/language"
)

type localeContextKey struct{}
type countryContextKey struct{}

var (
	LocaleKey  = localeContextKey{}
	CountryKey = countryContextKey{}
)

const (
	LocaleEnglish   = "en"
	LocaleAfrikaans = "af"
)

// SupportedLocales lists the UI bundles the service can pick from.
var SupportedLocales = []string{LocaleEnglish, LocaleAfrikaans}

// afrikaansCountries default to Afrikaans when no language preference is sent.
var afrikaansCountries = map[string]struct{}{"ZA": {}, "NA": {}}

// CountryLookup resolves ISO country codes for an IP address.
type CountryLookup func(ip string) (string, error)

// I18N stores the detected UI locale and country hint on the request context.
func I18N(defaultLocale string, lookup CountryLookup) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			country := ResolveCountry(r, lookup)
			locale := detectLocale(r, defaultLocale, country)
			ctx := context.WithValue(r.Context(), LocaleKey, locale)
			if country != "" {
				ctx = context.WithValue(ctx, CountryKey, country)
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func detectLocale(r *http.Request, fallback string, country string) string {
	if v := normalizeLocale(r.Header.Get("X-Locale")); v != "" {
		return v
	}
	if v := parseAcceptLanguage(r.Header.Get("Accept-Language")); v != "" {
		return v
	}
	if _, ok := afrikaansCountries[strings.ToUpper(country)]; ok {
		return LocaleAfrikaans
	}
	if country != "" {
		return LocaleEnglish
	}
	if v := normalizeLocale(fallback); v != "" {
		return v
	}
	return LocaleEnglish
}

// parseAcceptLanguage returns the highest weighted supported locale.
func parseAcceptLanguage(header string) string {
	if strings.TrimSpace(header) == "" {
		return ""
	}
	tags, _, err := language.ParseAcceptLanguage(header)
	if err != nil {
		return ""
	}
	for _, tag := range tags {
		if v := supportedBase(tag); v != "" {
			return v
		}
	}
	return ""
}

// normalizeLocale maps a single tag such as "af-ZA" onto a supported locale.
func normalizeLocale(locale string) string {
	locale = strings.TrimSpace(locale)
	if locale == "" {
		return ""
	}
	tag, err := language.Parse(strings.ReplaceAll(locale, "_", "-"))
	if err != nil {
		return ""
	}
	return supportedBase(tag)
}

func supportedBase(tag language.Tag) string {
	base, conf := tag.Base()
	if conf == language.No {
		return ""
	}
	switch base.String() {
	case LocaleEnglish:
		return LocaleEnglish
	case LocaleAfrikaans:
		return LocaleAfrikaans
	}
	return ""
}

// ClientIP returns the best-effort client IP address for the request.
func ClientIP(r *http.Request) string {
	if r == nil {
		return ""
	}
	if xf := r.Header.Get("X-Forwarded-For"); xf != "" {
		parts := strings.Split(xf, ",")
		if ip := strings.TrimSpace(parts[0]); ip != "" {
			return ip
		}
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

func LocaleFromContext(ctx context.Context) string {
	if v, ok := ctx.Value(LocaleKey).(string); ok {
		return v
	}
	return LocaleEnglish
}

// CountryFromContext returns the ISO country code stored in the request context.
func CountryFromContext(ctx context.Context) string {
	if v, ok := ctx.Value(CountryKey).(string); ok {
		return v
	}
	return ""
}

// ResolveCountry resolves a best-effort ISO country code from proxy headers,
// an explicit locale region or the GeoIP lookup, in that order.
func ResolveCountry(r *http.Request, lookup CountryLookup) string {
	if r == nil {
		return ""
	}
	headerHints := []string{"X-Country-Code", "X-IP-Country", "CF-IPCountry", "X-Appengine-Country"}
	for _, key := range headerHints {
		if val := strings.TrimSpace(r.Header.Get(key)); val != "" && !strings.EqualFold(val, "XX") {
			return strings.ToUpper(val)
		}
	}
	if region := localeRegion(r.Header.Get("X-Locale")); region != "" {
		return region
	}
	if region := localeRegion(r.Header.Get("Accept-Language")); region != "" {
		return region
	}
	if lookup != nil {
		if ip := ClientIP(r); ip != "" {
			if country, err := lookup(ip); err == nil && country != "" {
				return strings.ToUpper(country)
			}
		}
	}
	return ""
}

// localeRegion returns the region subtag of the first tag that states one
// explicitly. Inferred regions ("en" => US) are ignored.
func localeRegion(header string) string {
	for _, part := range strings.Split(header, ",") {
		token := strings.TrimSpace(strings.Split(part, ";")[0])
		if token == "" {
			continue
		}
		tag, err := language.Parse(strings.ReplaceAll(token, "_", "-"))
		if err != nil {
			continue
		}
		if region, conf := tag.Region(); conf == language.Exact {
			return region.String()
		}
	}
	return ""
}
