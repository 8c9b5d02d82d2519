package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"promptglot/internal/domain"
	"promptglot/internal/edit"

	"golang.org/x/text/language"
)

type translateRequest struct {
	Text         json.RawMessage `json:"text"`
	Texts        json.RawMessage `json:"texts"`
	SourceLocale *string         `json:"sourceLocale"`
	TargetLocale *string         `json:"targetLocale"`
}

type translationMetadata struct {
	HasDoubleNegation bool   `json:"hasDoubleNegation"`
	SourceLocale      string `json:"sourceLocale"`
	TargetLocale      string `json:"targetLocale"`
}

type translationView struct {
	Original   string              `json:"original"`
	Translated string              `json:"translated"`
	Action     domain.Action       `json:"action,omitempty"`
	Subject    string              `json:"subject,omitempty"`
	Metadata   translationMetadata `json:"metadata"`
}

func newTranslationView(in domain.IntentResolution) translationView {
	return translationView{
		Original:   in.Original,
		Translated: in.Translated,
		Action:     in.Action,
		Subject:    in.Subject,
		Metadata: translationMetadata{
			HasDoubleNegation: in.HasDoubleNegation,
			SourceLocale:      in.SourceLocale,
			TargetLocale:      in.TargetLocale,
		},
	}
}

// Translate resolves one text or a batch of texts into English intents.
func (a *App) Translate(w http.ResponseWriter, r *http.Request) {
	var req translateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, domain.CodeInvalidRequest, "Invalid JSON body")
		return
	}

	source := edit.SourceLocaleAfrikaans
	if req.SourceLocale != nil {
		source = *req.SourceLocale
	}
	if _, ok := domain.ParseLanguage(source); !ok {
		a.error(w, http.StatusBadRequest, domain.CodeInvalidLanguage,
			fmt.Sprintf("Invalid source language: %s. Supported: en, af", source))
		return
	}
	target, ok := canonicalTarget(req.TargetLocale)
	if !ok {
		a.error(w, http.StatusBadRequest, domain.CodeInvalidLanguage,
			fmt.Sprintf("Invalid target language: %s", *req.TargetLocale))
		return
	}

	// Provider calls outlive a disconnected client.
	ctx := context.WithoutCancel(r.Context())
	resolver := a.Pipeline.Resolver()

	if present(req.Text) {
		var text string
		if err := json.Unmarshal(req.Text, &text); err != nil || strings.TrimSpace(text) == "" {
			a.error(w, http.StatusBadRequest, domain.CodeInvalidRequest, "Text must be a non-empty string")
			return
		}
		res := resolver.Resolve(ctx, text, source, target)
		if !res.OK() {
			a.fail(w, res.Err)
			return
		}
		a.json(w, http.StatusOK, map[string]any{"success": true, "translation": newTranslationView(*res.Intent)})
		return
	}

	var items []json.RawMessage
	if present(req.Texts) && json.Unmarshal(req.Texts, &items) == nil {
		texts := make([]string, len(items))
		allStrings := true
		for i, item := range items {
			if bytes.Equal(bytes.TrimSpace(item), []byte("null")) || json.Unmarshal(item, &texts[i]) != nil {
				allStrings = false
			}
		}
		if !allStrings && len(items) <= edit.MaxBatchSize {
			a.error(w, http.StatusBadRequest, domain.CodeInvalidRequest, "All texts must be strings")
			return
		}
		results, derr := resolver.ResolveBatch(ctx, texts, source, target)
		if derr != nil {
			a.fail(w, derr)
			return
		}
		views := make([]translationView, len(results))
		for i, res := range results {
			views[i] = newTranslationView(res)
		}
		a.json(w, http.StatusOK, map[string]any{"success": true, "translations": views})
		return
	}

	a.error(w, http.StatusBadRequest, domain.CodeInvalidRequest, "Invalid request: provide text or texts")
}

// present treats a missing field, null and the empty string as absent.
func present(raw json.RawMessage) bool {
	v := bytes.TrimSpace(raw)
	return len(v) > 0 && !bytes.Equal(v, []byte("null")) && !bytes.Equal(v, []byte(`""`))
}

// canonicalTarget normalises a BCP 47 tag, e.g. en-us becomes en-US.
func canonicalTarget(raw *string) (string, bool) {
	if raw == nil || strings.TrimSpace(*raw) == "" {
		return edit.TargetLocaleEnglish, true
	}
	tag, err := language.Parse(strings.TrimSpace(*raw))
	if err != nil {
		return "", false
	}
	return tag.String(), true
}
