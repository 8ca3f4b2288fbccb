package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"eventmanagement/internal/domain"
)

// MaxImageSize is the largest accepted upload, in bytes.
const MaxImageSize = 5 << 20

var allowedImageExt = map[string]struct{}{
	".jpg": {}, ".jpeg": {}, ".png": {}, ".gif": {}, ".webp": {},
}

type localImageStore struct {
	dir       string
	urlPrefix string
}

// NewLocalImageStore stores images under dir and returns URLs under urlPrefix
// (e.g. "/uploads"). The directory is created if missing.
func NewLocalImageStore(dir, urlPrefix string) (domain.ImageStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &localImageStore{dir: dir, urlPrefix: "/" + strings.Trim(urlPrefix, "/")}, nil
}

// Save writes r under a random name keeping the original extension. Files over
// MaxImageSize or with an unsupported extension are rejected with a validation error.
func (s *localImageStore) Save(ctx context.Context, originalName string, r io.Reader) (string, error) {
	ext := strings.ToLower(filepath.Ext(originalName))
	if _, ok := allowedImageExt[ext]; !ok {
		return "", domain.NewValidationError("image must be a jpg, jpeg, png, gif or webp file")
	}
	name := uuid.NewString() + ext
	full := filepath.Join(s.dir, name)
	f, err := os.OpenFile(full, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", fmt.Errorf("create image file: %w", err)
	}
	n, copyErr := io.Copy(f, io.LimitReader(r, MaxImageSize+1))
	closeErr := f.Close()
	if err := errors.Join(copyErr, closeErr); err != nil {
		_ = os.Remove(full)
		return "", fmt.Errorf("write image file: %w", err)
	}
	if n > MaxImageSize {
		_ = os.Remove(full)
		return "", domain.NewValidationError("image must not exceed 5 MiB")
	}
	if err := ctx.Err(); err != nil {
		_ = os.Remove(full)
		return "", err
	}
	return path.Join(s.urlPrefix, name), nil
}
