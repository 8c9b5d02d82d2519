package intent

import (
	"strings"
	"testing"

	"promptglot/internal/domain"
)

func TestParseClassificationHandlesFencesAndCase(t *testing.T) {
	raw := "```json\n{\"action\":\" remove \",\"subject\":\" the cat \",\"refined_prompt\":\"Remove the cat\"}\n```"
	out, err := parseClassification(raw)
	if err != nil {
		t.Fatalf("parseClassification returned error: %v", err)
	}
	if out.Action != "REMOVE" || out.Subject != "the cat" || out.RefinedPrompt != "Remove the cat" {
		t.Fatalf("unexpected classification: %#v", out)
	}
}

func TestParseClassificationRejectsGarbage(t *testing.T) {
	cases := []string{"", "   ", "not json at all", "{\"action\":"}
	for _, raw := range cases {
		if _, err := parseClassification(raw); err == nil {
			t.Fatalf("expected error for %q", raw)
		}
	}
}

func TestBuildUserPromptMentionsDoubleNegation(t *testing.T) {
	prompt := buildUserPrompt(domain.ClassifyInput{
		Original:          "Ek wil nie die kat hê nie",
		Literal:           "I do not want the cat not",
		HasDoubleNegation: true,
		SourceLocale:      "af",
	})
	if !strings.Contains(prompt, "REMOVE") {
		t.Fatalf("double negation prompt should steer to REMOVE: %s", prompt)
	}
	if !strings.Contains(prompt, "I do not want the cat not") {
		t.Fatalf("prompt should carry the literal translation: %s", prompt)
	}

	plain := buildUserPrompt(domain.ClassifyInput{Original: "Voeg 'n hoed by", Literal: "Add a hat"})
	if strings.Contains(plain, "double negation") {
		t.Fatalf("plain prompt should not mention double negation: %s", plain)
	}
	if !strings.Contains(plain, "Source language: af") {
		t.Fatalf("source locale should default to af: %s", plain)
	}
}

func TestSelectProvider(t *testing.T) {
	cases := []struct {
		name      string
		preferred string
		openAI    string
		gemini    string
		want      string
	}{
		{name: "default openai", preferred: "", openAI: "k", want: ProviderOpenAI},
		{name: "preferred gemini with key", preferred: "gemini", gemini: "g", openAI: "k", want: ProviderGemini},
		{name: "gemini without key falls back", preferred: "gemini", openAI: "k", want: ProviderOpenAI},
		{name: "openai without key falls back", preferred: "openai", gemini: "g", want: ProviderGemini},
		{name: "no keys keeps preference", preferred: "Gemini", want: ProviderGemini},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := SelectProvider(tc.preferred, tc.openAI, tc.gemini); got != tc.want {
				t.Fatalf("SelectProvider mismatch: got %q want %q", got, tc.want)
			}
		})
	}
}
