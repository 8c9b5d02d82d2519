package storage

import (
	"bytes"
	"context"
	"os"
	"strings"
	"testing"
	"time"
)

func TestSanitizeKey(t *testing.T) {
	cases := []struct {
		key     string
		want    string
		wantErr bool
	}{
		{key: "edits/a.png", want: "edits/a.png"},
		{key: "/edits//a.png", want: "edits/a.png"},
		{key: "./edits/a.png", want: "edits/a.png"},
		{key: `edits\a.png`, want: "edits/a.png"},
		{key: "edits/../a.png", want: "a.png"},
		{key: "../secret", wantErr: true},
		{key: "..", wantErr: true},
		{key: "  ", wantErr: true},
	}
	for _, tc := range cases {
		got, err := sanitizeKey(tc.key)
		if tc.wantErr {
			if err == nil {
				t.Fatalf("sanitizeKey(%q) expected error, got %q", tc.key, got)
			}
			continue
		}
		if err != nil {
			t.Fatalf("sanitizeKey(%q) returned error: %v", tc.key, err)
		}
		if got != tc.want {
			t.Fatalf("sanitizeKey(%q) = %q want %q", tc.key, got, tc.want)
		}
	}
}

func TestFileStoreSaveEdit(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore returned error: %v", err)
	}
	store.now = func() time.Time { return time.Date(2024, 5, 6, 23, 0, 0, 0, time.UTC) }

	key, err := store.SaveEdit(context.Background(), "jpg", []byte("jpeg-bytes"))
	if err != nil {
		t.Fatalf("SaveEdit returned error: %v", err)
	}
	if !strings.HasPrefix(key, "edits/2024-05-06/") || !strings.HasSuffix(key, ".jpeg") {
		t.Fatalf("unexpected key %q", key)
	}
	path, err := store.Path(key)
	if err != nil {
		t.Fatalf("Path returned error: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read stored file: %v", err)
	}
	if !bytes.Equal(data, []byte("jpeg-bytes")) {
		t.Fatalf("stored data mismatch: %q", data)
	}

	if _, err := store.SaveEdit(context.Background(), "png", nil); err == nil {
		t.Fatalf("expected error for empty image")
	}
}

func TestFileStoreWriteHonoursContext(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore returned error: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := store.Write(ctx, "a.png", []byte("x")); err == nil {
		t.Fatalf("expected context error")
	}
	if _, err := NewFileStore(" "); err == nil {
		t.Fatalf("expected error for blank base path")
	}
}
