package edit

import (
	"encoding/base64"
	"strings"

	"promptglot/internal/domain"
)

const defaultContentType = "image/png"

// Assemble folds a provider answer into an EditOutcome. The returned error
// carries the full failure detail for logging and is nil on success.
func Assemble(provider string, img *domain.EditedImage, err error) (domain.EditOutcome, *domain.Error) {
	if err != nil {
		de := domain.AsError(err)
		return domain.FailedOutcome(de), de
	}
	if img == nil {
		de := domain.EmptyPayload(provider)
		return domain.FailedOutcome(de), de
	}

	contentType := ContentTypeFor(img.OutputFormat)
	payload := strings.TrimSpace(img.Base64)
	if payload != "" {
		if prefixType, rest, ok := splitDataURL(payload); ok {
			payload = rest
			if prefixType != "" && strings.TrimSpace(img.OutputFormat) == "" {
				contentType = prefixType
			}
		}
	} else if len(img.Data) > 0 {
		payload = base64.StdEncoding.EncodeToString(img.Data)
	}
	if payload == "" {
		de := domain.EmptyPayload(provider)
		return domain.FailedOutcome(de), de
	}
	return domain.SucceededOutcome(payload, contentType), nil
}

// ContentTypeFor maps a provider output format ("png", "jpeg", "webp" or a
// full MIME type) to a MIME type. Unknown values fall back to image/png.
func ContentTypeFor(format string) string {
	f := strings.ToLower(strings.TrimSpace(format))
	if idx := strings.IndexByte(f, ';'); idx >= 0 {
		f = strings.TrimSpace(f[:idx])
	}
	switch f {
	case "png", "image/png":
		return "image/png"
	case "jpeg", "jpg", "image/jpeg", "image/jpg":
		return "image/jpeg"
	case "webp", "image/webp":
		return "image/webp"
	}
	return defaultContentType
}

// splitDataURL separates "data:image/webp;base64,AAAA" into its MIME type and
// payload.
func splitDataURL(s string) (string, string, bool) {
	if !strings.HasPrefix(s, "data:") {
		return "", s, false
	}
	comma := strings.IndexByte(s, ',')
	if comma < 0 {
		return "", s, false
	}
	meta := s[len("data:"):comma]
	if idx := strings.IndexByte(meta, ';'); idx >= 0 {
		meta = meta[:idx]
	}
	return meta, s[comma+1:], true
}
