package resume

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"resume-builder/internal/shared/storage/object"
)

// AssetPathPrefix prefixes every image path stored in a record.
const AssetPathPrefix = "uploads/"

// AssetStore persists profile images.
type AssetStore interface {
	Save(ctx context.Context, ownerID, fileName string, r io.Reader) (string, error)
	Open(ctx context.Context, path string) (io.ReadCloser, error)
	Delete(ctx context.Context, path string) error
}

// ObjectAssets adapts an object store to AssetStore. Only content that sniffs
// as an image is kept.
type ObjectAssets struct {
	Store object.ObjectStore
}

func (a ObjectAssets) Save(ctx context.Context, ownerID, fileName string, r io.Reader) (string, error) {
	key, _, mimeType, err := a.Store.Save(ctx, ownerID, fileName, r)
	if err != nil {
		return "", fmt.Errorf("store image: %w", err)
	}
	if !strings.HasPrefix(mimeType, "image/") {
		_ = a.Store.Delete(ctx, key)
		return "", &ValidationError{Message: "Image must be a PNG, JPEG, GIF or WebP file"}
	}
	return AssetPathPrefix + key, nil
}

func (a ObjectAssets) Open(ctx context.Context, path string) (io.ReadCloser, error) {
	key, ok := strings.CutPrefix(path, AssetPathPrefix)
	if !ok || key == "" || strings.Contains(key, "..") {
		return nil, ErrNotFound
	}
	rc, err := a.Store.Open(ctx, key)
	if errors.Is(err, object.ErrNotFound) {
		return nil, ErrNotFound
	}
	return rc, err
}

// Delete removes the asset behind path. Paths outside the asset namespace are
// ignored.
func (a ObjectAssets) Delete(ctx context.Context, path string) error {
	key, ok := strings.CutPrefix(path, AssetPathPrefix)
	if !ok || key == "" {
		return nil
	}
	return a.Store.Delete(ctx, key)
}
