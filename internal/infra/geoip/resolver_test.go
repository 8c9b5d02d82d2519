package geoip

import (
	"errors"
	"testing"
)

func TestNewResolverEmptyPath(t *testing.T) {
	r, err := NewResolver("  ")
	if err != nil {
		t.Fatalf("NewResolver returned error: %v", err)
	}
	if r != nil {
		t.Fatalf("expected nil resolver for empty path")
	}
	if r.Lookup() != nil {
		t.Fatalf("expected nil lookup for nil resolver")
	}
	if err := r.Close(); err != nil {
		t.Fatalf("Close on nil resolver returned error: %v", err)
	}
}

func TestNewResolverMissingFile(t *testing.T) {
	if _, err := NewResolver(t.TempDir() + "/missing.mmdb"); err == nil {
		t.Fatalf("expected error for missing database")
	}
}

func TestCountryCodeUnavailable(t *testing.T) {
	var r *Resolver
	if _, err := r.CountryCode("203.0.113.7"); !errors.Is(err, ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable, got %v", err)
	}
}
