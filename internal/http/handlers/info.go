package handlers

import (
	"net/http"

	"promptglot/internal/domain"
	"promptglot/internal/edit"
)

func supportedLanguages() []domain.Language {
	return domain.SupportedLanguages
}

func (a *App) TranslateInfo(w http.ResponseWriter, _ *http.Request) {
	a.json(w, http.StatusOK, map[string]any{
		"name":               "Translation API",
		"version":            "1.0.0",
		"description":        "Translates Afrikaans text to English and extracts the edit intent",
		"supportedLanguages": supportedLanguages(),
		"endpoints": map[string]any{
			"POST": map[string]any{
				"description": "Translate text",
				"parameters": map[string]string{
					"text":         "string - Single text to translate",
					"texts":        "string[] - Multiple texts to translate (max 50)",
					"sourceLocale": "string - Source language (default: af)",
					"targetLocale": "string - Target language (default: en-US)",
				},
			},
		},
	})
}

func (a *App) InpaintInfo(w http.ResponseWriter, _ *http.Request) {
	a.json(w, http.StatusOK, map[string]any{
		"name":               "Inpainting API",
		"version":            "1.0.0",
		"description":        "Image editing with Afrikaans language support",
		"supportedLanguages": supportedLanguages(),
		"endpoints": map[string]any{
			"POST": map[string]any{
				"description": "Edit an image",
				"contentType": "multipart/form-data",
				"parameters": map[string]string{
					"image":    "File - Source image (required, max 10MB)",
					"prompt":   "string - Editing prompt (required)",
					"language": "string - Prompt language (optional, default: af)",
					"mask":     "File - Mask image (optional)",
					"strength": "number - Inpainting strength 0-1 (optional, default: 0.8)",
				},
				"supportedImageTypes": edit.AllowedImageTypes,
			},
		},
		"features": []string{
			"Afrikaans to English translation",
			"Double negation handling (nie...nie)",
			"Linguistic intent parsing (REMOVE/ADD/CHANGE)",
			"Search-and-replace removal when no mask is given",
		},
	})
}
