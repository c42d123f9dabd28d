package secrets

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadPrecedence(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "secret")
	if err := os.WriteFile(file, []byte("  from-file\n"), 0o600); err != nil {
		t.Fatalf("write secret: %v", err)
	}
	t.Setenv("SWIPEHIRE_TEST_SECRET", " from-env ")

	tests := []struct {
		name   string
		src    Source
		expect string
	}{
		{"file wins", Source{File: file, Value: "inline", Env: "SWIPEHIRE_TEST_SECRET"}, "from-file"},
		{"value before env", Source{Value: " inline ", Env: "SWIPEHIRE_TEST_SECRET"}, "inline"},
		{"env fallback", Source{Env: "SWIPEHIRE_TEST_SECRET"}, "from-env"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Load(tt.src)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.expect {
				t.Fatalf("expected %q, got %q", tt.expect, got)
			}
		})
	}
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()
	empty := filepath.Join(dir, "empty")
	if err := os.WriteFile(empty, []byte("\n"), 0o600); err != nil {
		t.Fatalf("write secret: %v", err)
	}

	if _, err := Load(Source{Name: "jwt secret"}); err == nil || !strings.Contains(err.Error(), "jwt secret is not configured") {
		t.Fatalf("expected not configured error, got %v", err)
	}
	if _, err := Load(Source{Name: "api key", File: empty, Value: "inline"}); err == nil || !strings.Contains(err.Error(), "is empty") {
		t.Fatalf("expected empty file error, got %v", err)
	}
	if _, err := Load(Source{File: filepath.Join(dir, "missing")}); err == nil {
		t.Fatalf("expected error for missing file")
	}
	if _, err := Load(Source{Env: "SWIPEHIRE_TEST_UNSET_SECRET"}); err == nil {
		t.Fatalf("expected error for unset env")
	}
}
