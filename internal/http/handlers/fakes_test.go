package handlers

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"sync"
	"testing"
	"time"

	"promptglot/internal/app"
	"promptglot/internal/domain"
	"promptglot/internal/edit"
)

type stubTranslator struct {
	fn func(text string) (string, error)
}

func (s stubTranslator) Name() string { return "lingo" }

func (s stubTranslator) Translate(_ context.Context, text, _, _ string) (string, error) {
	if s.fn == nil {
		return "translated: " + text, nil
	}
	return s.fn(text)
}

type stubClassifier struct {
	fn func(in domain.ClassifyInput) (*domain.Classification, error)
}

func (s stubClassifier) Name() string { return "openai" }

func (s stubClassifier) Classify(_ context.Context, in domain.ClassifyInput) (*domain.Classification, error) {
	if s.fn == nil {
		return &domain.Classification{Action: "CHANGE"}, nil
	}
	return s.fn(in)
}

type stubEditor struct {
	mu            sync.Mutex
	inpaint       []domain.InpaintInput
	searchReplace []domain.SearchReplaceInput
	err           error
}

func (s *stubEditor) Name() string { return "stability" }

func (s *stubEditor) Inpaint(_ context.Context, in domain.InpaintInput) (*domain.EditedImage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.inpaint = append(s.inpaint, in)
	return s.answer()
}

func (s *stubEditor) SearchAndReplace(_ context.Context, in domain.SearchReplaceInput) (*domain.EditedImage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.searchReplace = append(s.searchReplace, in)
	return s.answer()
}

func (s *stubEditor) answer() (*domain.EditedImage, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &domain.EditedImage{Data: []byte("edited"), OutputFormat: "webp"}, nil
}

type stubReadiness struct{ r app.Readiness }

func (s stubReadiness) Readiness(time.Time) app.Readiness { return s.r }

func newTestApp(tr edit.Translator, cl edit.Classifier, ed edit.ImageEditor) *App {
	return &App{
		Pipeline: edit.NewPipeline(edit.Options{
			Translator:      tr,
			Classifier:      cl,
			Editor:          ed,
			OutputFormat:    "webp",
			ProviderTimeout: time.Second,
		}),
		MaxBodyBytes: maxRequestBytes,
		Now:          func() time.Time { return time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC) },
	}
}

func pngBytes(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	img.Set(1, 1, color.RGBA{G: 255, A: 255})
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return buf.Bytes()
}

type formFile struct {
	field       string
	filename    string
	contentType string
	data        []byte
}

func multipartRequest(t *testing.T, fields map[string]string, files ...formFile) *http.Request {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	for k, v := range fields {
		if err := mw.WriteField(k, v); err != nil {
			t.Fatalf("write field %s: %v", k, err)
		}
	}
	for _, f := range files {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", `form-data; name="`+f.field+`"; filename="`+f.filename+`"`)
		h.Set("Content-Type", f.contentType)
		part, err := mw.CreatePart(h)
		if err != nil {
			t.Fatalf("create part %s: %v", f.field, err)
		}
		if _, err := part.Write(f.data); err != nil {
			t.Fatalf("write part %s: %v", f.field, err)
		}
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("close multipart writer: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, "/api/inpaint", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}
