package intent

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"promptglot/internal/domain"
)

const (
	ProviderOpenAI = "openai"
	ProviderGemini = "gemini"
)

// Classifier extracts an edit action and subject from a prompt.
type Classifier interface {
	Name() string
	HasCredentials() bool
	Classify(ctx context.Context, in domain.ClassifyInput) (*domain.Classification, error)
}

const systemInstruction = "You analyse image editing instructions written by users of a photo editor. " +
	"Respond only with a JSON object of the form " +
	`{"action":"REMOVE"|"ADD"|"CHANGE","subject":string,"refined_prompt":string}. ` +
	"action is the edit the user wants. subject is the single object the edit targets, in English, " +
	"as a short noun phrase. refined_prompt is a clear English instruction for an image model."

// buildUserPrompt describes one prompt to the model. Afrikaans marks negation
// twice ("nie ... nie"); a literal translation then reads as a double
// negative even though the user means a removal.
func buildUserPrompt(in domain.ClassifyInput) string {
	sb := &strings.Builder{}
	fmt.Fprintf(sb, "Source language: %s.\n", coalesce(in.SourceLocale, "af"))
	fmt.Fprintf(sb, "Original instruction: %q\n", in.Original)
	fmt.Fprintf(sb, "Literal English translation: %q\n", in.Literal)
	if in.HasDoubleNegation {
		sb.WriteString("The original uses Afrikaans double negation (nie ... nie). Treat it as a single negation: the user wants something REMOVED. Set action to REMOVE and subject to the thing to remove.\n")
	} else {
		sb.WriteString("Decide between ADD (introduce something new) and CHANGE (alter something present). Use REMOVE only when the instruction clearly asks to delete something.\n")
	}
	sb.WriteString("Respond with the JSON object only.")
	return sb.String()
}

func parseClassification(raw string) (*domain.Classification, error) {
	cleaned := extractJSONFragment(raw)
	if cleaned == "" {
		return nil, errors.New("empty payload")
	}
	var out domain.Classification
	if err := json.Unmarshal([]byte(cleaned), &out); err != nil {
		return nil, err
	}
	out.Action = strings.ToUpper(strings.TrimSpace(out.Action))
	out.Subject = strings.TrimSpace(out.Subject)
	out.RefinedPrompt = strings.TrimSpace(out.RefinedPrompt)
	return &out, nil
}

func extractJSONFragment(raw string) string {
	text := trimCodeFence(strings.TrimSpace(raw))
	if text == "" {
		return ""
	}
	start := strings.IndexByte(text, '{')
	end := strings.LastIndexByte(text, '}')
	if start >= 0 && end >= start {
		text = text[start : end+1]
	}
	return strings.TrimSpace(text)
}

func trimCodeFence(text string) string {
	trimmed := strings.TrimSpace(text)
	if !strings.HasPrefix(trimmed, "```") {
		return trimmed
	}
	trimmed = strings.TrimPrefix(trimmed, "```json")
	trimmed = strings.TrimPrefix(trimmed, "```JSON")
	trimmed = strings.TrimPrefix(trimmed, "```")
	if idx := strings.LastIndex(trimmed, "```"); idx >= 0 {
		trimmed = trimmed[:idx]
	}
	return strings.TrimSpace(trimmed)
}

func coalesce(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}
