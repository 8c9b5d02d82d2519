package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestReadUpload(t *testing.T) {
	if u, err := readUpload("  "); err != nil || u != nil {
		t.Fatalf("blank path should yield no upload, got %#v %v", u, err)
	}
	if _, err := readUpload(filepath.Join(t.TempDir(), "missing.png")); err == nil || !strings.Contains(err.Error(), "file not found") {
		t.Fatalf("expected file not found error, got %v", err)
	}

	path := filepath.Join(t.TempDir(), "cat.png")
	if err := os.WriteFile(path, []byte("data"), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	u, err := readUpload(path)
	if err != nil {
		t.Fatalf("readUpload returned error: %v", err)
	}
	if u.Filename != "cat.png" || string(u.Data) != "data" || u.ContentType != "" {
		t.Fatalf("unexpected upload: %#v", u)
	}
}

func TestHealthCommandPrintsReadiness(t *testing.T) {
	t.Setenv("APP_ENV", "test")
	t.Setenv("LINGODOTDEV_API_KEY", "")
	t.Setenv("STABILITY_API_KEY", "")
	t.Setenv("OPENAI_API_KEY", "")
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("GEOIP_DB_PATH", "")

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"health"})
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("health command returned error: %v", err)
	}

	var payload struct {
		Status   string         `json:"status"`
		Services map[string]any `json:"services"`
	}
	if err := json.Unmarshal(out.Bytes(), &payload); err != nil {
		t.Fatalf("decode output %q: %v", out.String(), err)
	}
	if payload.Status != "degraded" {
		t.Fatalf("status mismatch: got %q want degraded", payload.Status)
	}
	if _, ok := payload.Services["stability"]; !ok {
		t.Fatalf("stability status missing: %#v", payload.Services)
	}
}
