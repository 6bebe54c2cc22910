package file

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestStorage_GetSet(t *testing.T) {
	t.Parallel()

	dir := filepath.Join(t.TempDir(), "data")
	s, err := NewStorage(dir)
	if err != nil {
		t.Fatalf("NewStorage returned error: %v", err)
	}

	ctx := context.Background()
	if _, found, err := s.Get(ctx, "employees_v1"); err != nil || found {
		t.Fatalf("expected absent key, got found=%t err=%v", found, err)
	}

	if err := s.Set(ctx, "employees_v1", `[{"id":"a1"}]`); err != nil {
		t.Fatalf("Set returned error: %v", err)
	}
	if err := s.Set(ctx, "employees_v1", `[]`); err != nil {
		t.Fatalf("second Set returned error: %v", err)
	}

	v, found, err := s.Get(ctx, "employees_v1")
	if err != nil || !found {
		t.Fatalf("expected stored value, got found=%t err=%v", found, err)
	}
	if v != "[]" {
		t.Fatalf("expected overwritten value, got %q", v)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir returned error: %v", err)
	}
	if len(entries) != 1 || entries[0].Name() != "employees_v1.json" {
		t.Fatalf("expected only the value file, got %v", entries)
	}
}

func TestStorage_InvalidKey(t *testing.T) {
	t.Parallel()

	s, err := NewStorage(t.TempDir())
	if err != nil {
		t.Fatalf("NewStorage returned error: %v", err)
	}

	for _, key := range []string{"", "../escape", "a/b", ".."} {
		if err := s.Set(context.Background(), key, "x"); !errors.Is(err, ErrInvalidKey) {
			t.Fatalf("expected ErrInvalidKey for %q, got %v", key, err)
		}
	}
}
