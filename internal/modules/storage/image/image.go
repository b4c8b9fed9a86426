// Package image stores pictures attached to posts.
package image

import (
	"context"
	"errors"
	"fmt"
	"path"
	"path/filepath"
	"strings"

	"github.com/blogicum/core/internal/config"
	"github.com/google/uuid"
)

// MaxSize is the largest accepted upload in bytes.
const MaxSize = 5 << 20

const keyPrefix = "posts_images"

var (
	ErrUnsupportedType = errors.New("upload a valid image: jpg, jpeg, png, gif or webp")
	ErrTooLarge        = errors.New("image is larger than 5 MB")
)

var allowedExt = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".gif":  "image/gif",
	".webp": "image/webp",
}

// Store keeps uploaded images and maps their keys to public URLs.
type Store interface {
	Save(ctx context.Context, originalName string, data []byte) (key string, err error)
	Delete(ctx context.Context, key string) error
	URL(key string) string
}

// New picks the backend named by cfg.Storage.Driver.
func New(ctx context.Context, cfg *config.AppConfig) (Store, error) {
	switch cfg.Storage.Driver {
	case config.StorageDriverS3:
		store, err := NewS3Store(ctx, cfg.Storage.S3)
		if err != nil {
			return nil, err
		}
		return store, nil
	case config.StorageDriverLocal, "":
		store, err := NewLocalStore(cfg.MediaDir(), LocalURLPrefix)
		if err != nil {
			return nil, err
		}
		return store, nil
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
	}
}

// buildKey generates a collision-resistant object key that keeps the
// original extension.
func buildKey(originalName string) (string, string, error) {
	ext := strings.ToLower(filepath.Ext(strings.TrimSpace(originalName)))
	contentType, ok := allowedExt[ext]
	if !ok {
		return "", "", ErrUnsupportedType
	}
	name := strings.ReplaceAll(uuid.NewString(), "-", "")[:18] + ext
	return path.Join(keyPrefix, name), contentType, nil
}

func checkSize(data []byte) error {
	if len(data) == 0 {
		return ErrUnsupportedType
	}
	if len(data) > MaxSize {
		return ErrTooLarge
	}
	return nil
}

// validKey rejects keys that could escape the storage root.
func validKey(key string) bool {
	if key == "" || strings.Contains(key, "..") || strings.HasPrefix(key, "/") {
		return false
	}
	return strings.HasPrefix(key, keyPrefix+"/")
}
