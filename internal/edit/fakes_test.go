package edit

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"sync"
	"testing"

	"promptglot/internal/domain"
)

type fakeTranslator struct {
	mu    sync.Mutex
	calls int
	fn    func(ctx context.Context, text, source, target string) (string, error)
}

func (f *fakeTranslator) Name() string { return "lingo" }

func (f *fakeTranslator) Translate(ctx context.Context, text, source, target string) (string, error) {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()
	if f.fn == nil {
		return "translated: " + text, nil
	}
	return f.fn(ctx, text, source, target)
}

func (f *fakeTranslator) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

type fakeClassifier struct {
	mu    sync.Mutex
	calls int
	last  domain.ClassifyInput
	fn    func(ctx context.Context, in domain.ClassifyInput) (*domain.Classification, error)
}

func (f *fakeClassifier) Name() string { return "openai" }

func (f *fakeClassifier) Classify(ctx context.Context, in domain.ClassifyInput) (*domain.Classification, error) {
	f.mu.Lock()
	f.calls++
	f.last = in
	f.mu.Unlock()
	if f.fn == nil {
		return &domain.Classification{Action: "CHANGE"}, nil
	}
	return f.fn(ctx, in)
}

type fakeEditor struct {
	mu            sync.Mutex
	inpaint       []domain.InpaintInput
	searchReplace []domain.SearchReplaceInput
	result        *domain.EditedImage
	err           error
	// hang makes every call wait for its context to end.
	hang bool
}

func (f *fakeEditor) Name() string { return "stability" }

func (f *fakeEditor) Inpaint(ctx context.Context, in domain.InpaintInput) (*domain.EditedImage, error) {
	f.mu.Lock()
	f.inpaint = append(f.inpaint, in)
	f.mu.Unlock()
	return f.answer(ctx)
}

func (f *fakeEditor) SearchAndReplace(ctx context.Context, in domain.SearchReplaceInput) (*domain.EditedImage, error) {
	f.mu.Lock()
	f.searchReplace = append(f.searchReplace, in)
	f.mu.Unlock()
	return f.answer(ctx)
}

func (f *fakeEditor) answer(ctx context.Context) (*domain.EditedImage, error) {
	if f.hang {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	if f.err != nil {
		return nil, f.err
	}
	if f.result != nil {
		return f.result, nil
	}
	return &domain.EditedImage{Data: []byte("edited-image"), OutputFormat: "png", FinishReason: "SUCCESS", Seed: "42"}, nil
}

func (f *fakeEditor) totalCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.inpaint) + len(f.searchReplace)
}

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	img.Set(0, 0, color.RGBA{R: 255, A: 255})
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return buf.Bytes()
}

func pngUpload(t *testing.T) *domain.Upload {
	t.Helper()
	return &domain.Upload{Filename: "photo.png", ContentType: "image/png", Data: pngBytes(t, 4, 3)}
}
