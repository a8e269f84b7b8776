package secret

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestResolveLiteral(t *testing.T) {
	got, err := Default.Resolve("  AIzaLiteral  ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "AIzaLiteral" {
		t.Errorf("expected literal key, got %q", got)
	}
}

func TestResolveEnv(t *testing.T) {
	t.Setenv("GSS_TEST_KEY", "from-env")

	got, err := Default.Resolve("env:GSS_TEST_KEY")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "from-env" {
		t.Errorf("expected from-env, got %q", got)
	}

	_, err = Default.Resolve("env:GSS_TEST_KEY_MISSING")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestResolveFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "key")
	if err := os.WriteFile(path, []byte("from-file\n"), 0600); err != nil {
		t.Fatal(err)
	}

	got, err := Default.Resolve("file:" + path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "from-file" {
		t.Errorf("expected from-file, got %q", got)
	}

	_, err = Default.Resolve("file:" + filepath.Join(dir, "missing"))
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound for missing file, got %v", err)
	}

	empty := filepath.Join(dir, "empty")
	if err := os.WriteFile(empty, []byte("  \n"), 0600); err != nil {
		t.Fatal(err)
	}
	_, err = Default.Resolve("file:" + empty)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound for empty file, got %v", err)
	}
}

func TestResolveEmpty(t *testing.T) {
	_, err := Default.Resolve("   ")
	if !errors.Is(err, ErrEmptyReference) {
		t.Errorf("expected ErrEmptyReference, got %v", err)
	}
}

func TestDescribe(t *testing.T) {
	tests := map[string]string{
		"":                "(none)",
		"env:GSS_API_KEY": "env:GSS_API_KEY",
		"file:/etc/key":   "file:/etc/key",
		"abc":             "****",
		"AIzaSyDsecret":   "AIza****",
	}
	for in, want := range tests {
		if got := Describe(in); got != want {
			t.Errorf("Describe(%q): expected %q, got %q", in, want, got)
		}
	}
}
