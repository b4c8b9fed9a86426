package image

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// LocalURLPrefix is the route the app serves local media under.
const LocalURLPrefix = "/media/"

// LocalStore keeps images on disk below dir.
type LocalStore struct {
	dir       string
	urlPrefix string
}

func NewLocalStore(dir, urlPrefix string) (*LocalStore, error) {
	if err := os.MkdirAll(filepath.Join(dir, keyPrefix), 0o755); err != nil {
		return nil, fmt.Errorf("create media dir: %w", err)
	}
	if !strings.HasSuffix(urlPrefix, "/") {
		urlPrefix += "/"
	}
	return &LocalStore{dir: dir, urlPrefix: urlPrefix}, nil
}

// Dir returns the media root, for serving files.
func (s *LocalStore) Dir() string { return s.dir }

func (s *LocalStore) Save(_ context.Context, originalName string, data []byte) (string, error) {
	if err := checkSize(data); err != nil {
		return "", err
	}
	key, _, err := buildKey(originalName)
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(filepath.Join(s.dir, filepath.FromSlash(key)), data, 0o644); err != nil {
		return "", err
	}
	return key, nil
}

func (s *LocalStore) Delete(_ context.Context, key string) error {
	if !validKey(key) {
		return nil
	}
	err := os.Remove(filepath.Join(s.dir, filepath.FromSlash(key)))
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}

func (s *LocalStore) URL(key string) string {
	if key == "" {
		return ""
	}
	return s.urlPrefix + key
}
