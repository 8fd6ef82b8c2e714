// Package storage provides the file store collaborator backing photo uploads.
package storage

import (
	"errors"
	"io"
	"os"
	"path/filepath"

	"github.com/dvinubius/bootcamp-backend/internal/config"
)

// ErrNotConfigured is returned by the disabled store when no upload directory
// is configured.
var ErrNotConfigured = errors.New("file storage is not configured")

// Store persists uploaded files under a flat name.
type Store interface {
	Save(name string, r io.Reader) error
}

// New builds a file store from configuration. Without an upload path the
// disabled implementation is returned.
func New(cfg config.UploadConfig) Store {
	if cfg.Path == "" {
		return disabled{}
	}
	return &diskStore{dir: cfg.Path}
}

type disabled struct{}

func (disabled) Save(_ string, _ io.Reader) error {
	return ErrNotConfigured
}

// diskStore writes files into a single directory, created on first use.
type diskStore struct {
	dir string
}

func (s *diskStore) Save(name string, r io.Reader) error {
	if err := os.MkdirAll(s.dir, 0o750); err != nil {
		return err
	}
	// names are generated by the caller; Base guards against path segments
	dst, err := os.Create(filepath.Join(s.dir, filepath.Base(name)))
	if err != nil {
		return err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, r); err != nil {
		return err
	}
	return dst.Sync()
}
