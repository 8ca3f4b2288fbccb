package domain

import (
	"context"
	"io"
)

// ImageStore persists uploaded images and returns the public relative URL.
type ImageStore interface {
	Save(ctx context.Context, originalName string, r io.Reader) (url string, err error)
}
