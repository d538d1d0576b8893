package storage

import (
	"context"
	"io"
	"os"
	"path"
	"path/filepath"
)

// DiskStore keeps uploads in a local directory served under URLPrefix.
// Used when no GCS bucket is configured.
type DiskStore struct {
	Dir       string
	URLPrefix string
}

func NewDiskStore(dir, urlPrefix string) *DiskStore {
	return &DiskStore{Dir: dir, URLPrefix: urlPrefix}
}

func (s *DiskStore) Put(_ context.Context, objectPath, _ string, r io.Reader) (string, error) {
	dst := filepath.Join(s.Dir, filepath.FromSlash(objectPath))
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return "", err
	}
	f, err := os.Create(dst)
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(f, r); err != nil {
		_ = f.Close()
		return "", err
	}
	if err := f.Close(); err != nil {
		return "", err
	}
	return path.Join(s.URLPrefix, objectPath), nil
}
