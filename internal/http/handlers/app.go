package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"promptglot/internal/app"
	"promptglot/internal/domain"
	"promptglot/internal/edit"
	"promptglot/internal/infra"
)

// maxRequestBytes bounds a whole inpaint form: image, mask and fields.
const maxRequestBytes = 25 << 20

// ReadinessReporter reports provider credential status for the health route.
type ReadinessReporter interface {
	Readiness(now time.Time) app.Readiness
}

type App struct {
	Pipeline     *edit.Pipeline
	Status       ReadinessReporter
	Logger       *infra.Logger
	MaxBodyBytes int64
	Now          func() time.Time
}

func NewApp(c *app.Container) *App {
	return &App{
		Pipeline:     c.Pipeline,
		Status:       c,
		Logger:       c.Logger,
		MaxBodyBytes: maxRequestBytes,
		Now:          time.Now,
	}
}

type errorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
}

func (a *App) json(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func (a *App) error(w http.ResponseWriter, status int, code, message string) {
	a.json(w, status, errorResponse{Success: false, Error: message, Code: code})
}

// fail writes the public view of err; the full detail only reaches the log.
func (a *App) fail(w http.ResponseWriter, err *domain.Error) {
	if err == nil {
		err = domain.Internal(nil)
	}
	if err.Kind != domain.KindValidation {
		a.logger().Error().Err(err).Str("code", err.Code).Str("kind", string(err.Kind)).Msg("request failed")
	}
	a.error(w, err.Kind.HTTPStatus(), err.Code, err.PublicMessage())
}

func (a *App) logger() *infra.Logger {
	if a.Logger == nil {
		return infra.DiscardLogger()
	}
	return a.Logger
}

func (a *App) now() time.Time {
	if a.Now == nil {
		return time.Now()
	}
	return a.Now()
}
