package storage

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dvinubius/bootcamp-backend/internal/config"
)

func TestDiskStoreRoundtrip(t *testing.T) {
	dir := t.TempDir()
	store := New(config.UploadConfig{Path: filepath.Join(dir, "uploads")})

	if err := store.Save("photo_org-1.jpg", strings.NewReader("jpeg bytes")); err != nil {
		t.Fatalf("Save: %v", err)
	}

	raw, err := os.ReadFile(filepath.Join(dir, "uploads", "photo_org-1.jpg"))
	if err != nil {
		t.Fatalf("reading stored file: %v", err)
	}
	if string(raw) != "jpeg bytes" {
		t.Fatalf("stored content mismatch: %q", raw)
	}
}

func TestDiskStoreStripsPathSegments(t *testing.T) {
	dir := t.TempDir()
	store := New(config.UploadConfig{Path: dir})

	if err := store.Save("../escape.jpg", strings.NewReader("x")); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "escape.jpg")); err != nil {
		t.Fatalf("expected the file inside the upload dir: %v", err)
	}
}

func TestDisabledStore(t *testing.T) {
	store := New(config.UploadConfig{})
	err := store.Save("photo_org-1.jpg", strings.NewReader("x"))
	if !errors.Is(err, ErrNotConfigured) {
		t.Fatalf("expected ErrNotConfigured, got %v", err)
	}
}
