package edit

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"promptglot/internal/domain"
)

// RawInput holds the inpaint form fields as received.
type RawInput struct {
	Image    *domain.Upload
	Mask     *domain.Upload
	Prompt   string
	Language string
	Strength string
}

// Validate turns raw form input into an EditRequest. Checks run in a fixed
// order and the first failure wins: image presence, prompt, language,
// strength, file types, file sizes, mask dimensions.
func Validate(in RawInput) (domain.EditRequest, *domain.Error) {
	if in.Image == nil || len(in.Image.Data) == 0 {
		return domain.EditRequest{}, domain.Validation(domain.CodeMissingImage, "Image is required")
	}

	prompt := Sanitize(in.Prompt)
	if prompt == "" {
		return domain.EditRequest{}, domain.Validation(domain.CodeMissingPrompt, "Prompt is required")
	}

	langCode := strings.TrimSpace(in.Language)
	if langCode == "" {
		langCode = string(domain.LanguageAfrikaans)
	}
	lang, ok := domain.ParseLanguage(langCode)
	if !ok {
		return domain.EditRequest{}, domain.Validation(domain.CodeInvalidLanguage,
			fmt.Sprintf("Invalid language: %s. Supported: %s", langCode, supportedLanguageList()))
	}

	var strength *float64
	if raw := strings.TrimSpace(in.Strength); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil || math.IsNaN(v) || v < 0 || v > 1 {
			return domain.EditRequest{}, domain.Validation(domain.CodeInvalidStrength, "Strength must be between 0 and 1")
		}
		strength = &v
	}

	mask := in.Mask
	if mask != nil && len(mask.Data) == 0 {
		mask = nil
	}

	PrepareUpload(in.Image)
	PrepareUpload(mask)
	for _, u := range []*domain.Upload{in.Image, mask} {
		if u != nil && !allowedImageType(u.ContentType) {
			return domain.EditRequest{}, domain.Validation(domain.CodeInvalidImageType,
				"Invalid image type. Supported types: "+strings.Join(AllowedImageTypes, ", "))
		}
	}
	for _, u := range []*domain.Upload{in.Image, mask} {
		if u != nil && u.Size() > MaxUploadBytes {
			return domain.EditRequest{}, domain.Validation(domain.CodeImageTooLarge, "Image size must be less than 10MB")
		}
	}

	if mask != nil && !sameDimensions(in.Image, mask) {
		return domain.EditRequest{}, domain.Validation(domain.CodeMaskMismatch,
			fmt.Sprintf("Mask dimensions %dx%d must match image dimensions %dx%d",
				mask.Width, mask.Height, in.Image.Width, in.Image.Height))
	}

	return domain.EditRequest{
		Image:    in.Image,
		Mask:     mask,
		Prompt:   prompt,
		Language: lang,
		Strength: strength,
	}, nil
}

// sameDimensions reports false only when both sizes are known and differ.
func sameDimensions(a, b *domain.Upload) bool {
	if a.Width == 0 || b.Width == 0 {
		return true
	}
	return a.Width == b.Width && a.Height == b.Height
}

func supportedLanguageList() string {
	codes := make([]string, len(domain.SupportedLanguages))
	for i, l := range domain.SupportedLanguages {
		codes[i] = string(l)
	}
	return strings.Join(codes, ", ")
}
