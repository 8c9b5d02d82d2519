package intent

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"promptglot/internal/domain"
)

func TestGeminiClassifierClassify(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.Contains(r.URL.Path, "gemini-test:generateContent") {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		body, _ := io.ReadAll(r.Body)
		if !strings.Contains(string(body), "application/json") {
			t.Fatalf("request should ask for a JSON response: %s", body)
		}
		var req struct {
			SystemInstruction struct {
				Parts []struct {
					Text string `json:"text"`
				} `json:"parts"`
			} `json:"systemInstruction"`
			Contents []struct {
				Parts []struct {
					Text string `json:"text"`
				} `json:"parts"`
			} `json:"contents"`
		}
		if err := json.Unmarshal(body, &req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if len(req.SystemInstruction.Parts) != 1 || req.SystemInstruction.Parts[0].Text != systemInstruction {
			t.Fatalf("system instruction not sent separately: %s", body)
		}
		if len(req.Contents) != 1 || len(req.Contents[0].Parts) != 1 || strings.Contains(req.Contents[0].Parts[0].Text, systemInstruction) {
			t.Fatalf("user content should carry only the prompt: %s", body)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"candidates":[{"content":{"role":"model","parts":[`+
			`{"text":"{\"action\":\"add\",\"subject\":\"hat\","},{"text":"\"refined_prompt\":\"Add a red hat\"}"}]}}]}`)
	}))
	defer srv.Close()

	c, err := NewGeminiClassifier(context.Background(), GeminiOptions{
		APIKey:     "g-test",
		Model:      "gemini-test",
		BaseURL:    srv.URL,
		HTTPClient: srv.Client(),
	})
	if err != nil {
		t.Fatalf("NewGeminiClassifier returned error: %v", err)
	}
	out, err := c.Classify(context.Background(), domain.ClassifyInput{Original: "Voeg 'n rooi hoed by", Literal: "Add a red hat"})
	if err != nil {
		t.Fatalf("Classify returned error: %v", err)
	}
	if out.Action != "ADD" || out.Subject != "hat" || out.RefinedPrompt != "Add a red hat" {
		t.Fatalf("unexpected classification: %#v", out)
	}
}

func TestGeminiClassifierMissingKey(t *testing.T) {
	c, err := NewGeminiClassifier(context.Background(), GeminiOptions{})
	if err != nil {
		t.Fatalf("NewGeminiClassifier returned error: %v", err)
	}
	if c.HasCredentials() {
		t.Fatalf("classifier without key should report no credentials")
	}
	_, err = c.Classify(context.Background(), domain.ClassifyInput{Original: "x", Literal: "x"})
	var de *domain.Error
	if !errors.As(err, &de) || de.Code != domain.CodeMissingAPIKey {
		t.Fatalf("expected missing api key error, got %v", err)
	}
}

func TestGeminiClassifierReportsHTTPErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusForbidden)
		_, _ = io.WriteString(w, `{"error":{"code":403,"message":"key denied","status":"PERMISSION_DENIED"}}`)
	}))
	defer srv.Close()

	c, err := NewGeminiClassifier(context.Background(), GeminiOptions{APIKey: "g-test", BaseURL: srv.URL, HTTPClient: srv.Client()})
	if err != nil {
		t.Fatalf("NewGeminiClassifier returned error: %v", err)
	}
	if _, err := c.Classify(context.Background(), domain.ClassifyInput{Original: "x", Literal: "x"}); err == nil {
		t.Fatalf("expected error for 403 response")
	}
}

func TestNewSelectsClassifier(t *testing.T) {
	c, err := New(context.Background(), Config{Preferred: "gemini", OpenAIAPIKey: "k"})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	if c.Name() != ProviderOpenAI || !c.HasCredentials() {
		t.Fatalf("expected openai fallback with credentials, got %s", c.Name())
	}
}
