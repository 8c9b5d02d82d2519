package domain

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
)

// ErrMissingAPIKey indicates that a provider client was built without credentials.
var ErrMissingAPIKey = errors.New("api key is required")

// Kind classifies failures so transports can map them without inspecting messages.
type Kind string

const (
	KindValidation    Kind = "validation"
	KindTranslation   Kind = "translation"
	KindProvider      Kind = "provider"
	KindTimeout       Kind = "timeout"
	KindConfiguration Kind = "configuration"
	KindInternal      Kind = "internal"
)

// Machine readable codes returned to API clients.
const (
	CodeMissingImage     = "MISSING_IMAGE"
	CodeMissingPrompt    = "MISSING_PROMPT"
	CodeInvalidLanguage  = "INVALID_LANGUAGE"
	CodeInvalidStrength  = "INVALID_STRENGTH"
	CodeInvalidImageType = "INVALID_IMAGE_TYPE"
	CodeImageTooLarge    = "IMAGE_TOO_LARGE"
	CodeMaskMismatch     = "MASK_SIZE_MISMATCH"
	CodeInvalidRequest   = "INVALID_REQUEST"
	CodeTranslation      = "TRANSLATION_ERROR"
	CodeTimeout          = "PROVIDER_TIMEOUT"
	CodeMissingAPIKey    = "MISSING_API_KEY"
	CodeInternal         = "INTERNAL_ERROR"
	CodeRateLimited      = "RATE_LIMITED"
)

const internalMessage = "An unexpected error occurred"

// HTTPStatus maps a failure kind to the status code used by the HTTP layer.
func (k Kind) HTTPStatus() int {
	if k == KindValidation {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

// Error is the single error shape shared by the pipeline and the HTTP layer.
type Error struct {
	Kind    Kind
	Code    string
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// PublicMessage is the text safe to hand to API clients.
func (e *Error) PublicMessage() string {
	if e.Kind == KindInternal {
		return internalMessage
	}
	return e.Message
}

func Validation(code, message string) *Error {
	return &Error{Kind: KindValidation, Code: code, Message: message}
}

func Translation(err error) *Error {
	msg := "Translation failed"
	if err != nil {
		msg = err.Error()
	}
	return &Error{Kind: KindTranslation, Code: CodeTranslation, Message: msg, Err: err}
}

// Provider describes a non-2xx answer from a remote provider. The code embeds
// both the provider name and the upstream status, e.g. STABILITY_HTTP_402.
func Provider(provider string, status int, detail string) *Error {
	name := strings.ToUpper(strings.TrimSpace(provider))
	if name == "" {
		name = "PROVIDER"
	}
	msg := fmt.Sprintf("%s request failed with status %d", strings.ToLower(name), status)
	if detail = strings.TrimSpace(detail); detail != "" {
		msg += ": " + detail
	}
	return &Error{Kind: KindProvider, Code: fmt.Sprintf("%s_HTTP_%d", name, status), Message: msg}
}

// EmptyPayload describes a 2xx provider answer that carried no image.
func EmptyPayload(provider string) *Error {
	name := strings.ToUpper(strings.TrimSpace(provider))
	if name == "" {
		name = "PROVIDER"
	}
	return &Error{
		Kind:    KindProvider,
		Code:    name + "_EMPTY_RESPONSE",
		Message: fmt.Sprintf("%s returned no image data", strings.ToLower(name)),
	}
}

func Timeout(provider string, err error) *Error {
	return &Error{Kind: KindTimeout, Code: CodeTimeout, Message: fmt.Sprintf("%s request timed out", provider), Err: err}
}

func Configuration(provider string) *Error {
	return &Error{
		Kind:    KindConfiguration,
		Code:    CodeMissingAPIKey,
		Message: fmt.Sprintf("%s api key is not configured", provider),
		Err:     ErrMissingAPIKey,
	}
}

func Internal(err error) *Error {
	return &Error{Kind: KindInternal, Code: CodeInternal, Message: internalMessage, Err: err}
}

// AsError folds any error into the taxonomy. Timeouts and missing credentials
// are recognised even when they arrive wrapped by an HTTP client.
func AsError(err error) *Error {
	if err == nil {
		return nil
	}
	var de *Error
	if errors.As(err, &de) {
		return de
	}
	if IsTimeout(err) {
		return Timeout("provider", err)
	}
	if errors.Is(err, ErrMissingAPIKey) {
		return &Error{Kind: KindConfiguration, Code: CodeMissingAPIKey, Message: err.Error(), Err: err}
	}
	return Internal(err)
}

// IsTimeout reports whether err is a deadline expiry or a network timeout.
func IsTimeout(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
