package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"promptglot/internal/app"
)

func TestHealthReportsReadiness(t *testing.T) {
	a := newTestApp(stubTranslator{}, stubClassifier{}, &stubEditor{})
	a.Status = stubReadiness{r: app.Readiness{
		Status:      app.StatusDegraded,
		Timestamp:   "2024-01-02T03:04:05Z",
		Version:     "1.0.0",
		Environment: "test",
		Services: map[string]app.ServiceStatus{
			"lingo":     {Status: app.StatusMissingKey},
			"stability": {Status: app.StatusConfigured, Ready: true},
			"openai":    {Status: app.StatusConfigured, Ready: true},
			"api":       {Status: app.StatusOperational, Ready: true},
		},
	}}

	rr := httptest.NewRecorder()
	a.Health(rr, httptest.NewRequest(http.MethodGet, "/api/health", nil))

	if rr.Code != http.StatusOK {
		t.Fatalf("unexpected status code: got %d, want 200", rr.Code)
	}
	var payload struct {
		Status   string `json:"status"`
		Services map[string]struct {
			Status string `json:"status"`
			Ready  bool   `json:"ready"`
		} `json:"services"`
	}
	if err := json.NewDecoder(rr.Body).Decode(&payload); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if payload.Status != "degraded" {
		t.Fatalf("status mismatch: %q", payload.Status)
	}
	if s := payload.Services["lingo"]; s.Status != "missing_api_key" || s.Ready {
		t.Fatalf("lingo status mismatch: %#v", s)
	}
}
