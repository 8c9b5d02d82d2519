package handlers

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"promptglot/internal/domain"
	"promptglot/internal/edit"
)

const multipartMemory = 32 << 20

type inpaintMetadata struct {
	Action            domain.Action `json:"action,omitempty"`
	Subject           string        `json:"subject,omitempty"`
	HasDoubleNegation bool          `json:"hasDoubleNegation"`
}

type inpaintResponse struct {
	Success          bool             `json:"success"`
	ImageBase64      string           `json:"imageBase64"`
	ContentType      string           `json:"contentType"`
	TranslatedPrompt string           `json:"translatedPrompt"`
	OriginalPrompt   string           `json:"originalPrompt"`
	Metadata         *inpaintMetadata `json:"metadata,omitempty"`
}

// Inpaint validates the form, runs the edit pipeline and returns the image
// inline as base64.
func (a *App) Inpaint(w http.ResponseWriter, r *http.Request) {
	limit := a.MaxBodyBytes
	if limit <= 0 {
		limit = maxRequestBytes
	}
	r.Body = http.MaxBytesReader(w, r.Body, limit)
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			a.error(w, http.StatusBadRequest, domain.CodeImageTooLarge, "Image size must be less than 10MB")
			return
		}
		// A body that is not a form cannot carry an image.
		if errors.Is(err, http.ErrNotMultipart) {
			a.fail(w, domain.Validation(domain.CodeMissingImage, "Image is required"))
			return
		}
		a.error(w, http.StatusBadRequest, domain.CodeInvalidRequest, "Request must be multipart/form-data")
		return
	}
	defer func() { _ = r.MultipartForm.RemoveAll() }()

	image, err := readUpload(r, "image")
	if err != nil {
		a.fail(w, domain.Internal(err))
		return
	}
	mask, err := readUpload(r, "mask")
	if err != nil {
		a.fail(w, domain.Internal(err))
		return
	}

	req, verr := edit.Validate(edit.RawInput{
		Image:    image,
		Mask:     mask,
		Prompt:   r.FormValue("prompt"),
		Language: r.FormValue("language"),
		Strength: r.FormValue("strength"),
	})
	if verr != nil {
		a.fail(w, verr)
		return
	}

	res := a.Pipeline.Run(context.WithoutCancel(r.Context()), req)
	if res.Err != nil {
		a.fail(w, res.Err)
		return
	}

	body := inpaintResponse{
		Success:          true,
		ImageBase64:      res.Outcome.ImageBase64,
		ContentType:      res.Outcome.ContentType,
		TranslatedPrompt: res.TranslatedPrompt,
		OriginalPrompt:   res.OriginalPrompt,
	}
	if res.Intent != nil {
		body.Metadata = &inpaintMetadata{
			Action:            res.Intent.Action,
			Subject:           res.Intent.Subject,
			HasDoubleNegation: res.Intent.HasDoubleNegation,
		}
	}
	a.json(w, http.StatusOK, body)
}

// readUpload returns nil when the form has no file under field.
func readUpload(r *http.Request, field string) (*domain.Upload, error) {
	file, header, err := r.FormFile(field)
	if errors.Is(err, http.ErrMissingFile) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", field, err)
	}
	defer file.Close()
	data, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", field, err)
	}
	return &domain.Upload{
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Data:        data,
	}, nil
}
