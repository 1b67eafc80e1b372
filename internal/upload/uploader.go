package upload

import (
	"context"
	"errors"
	"log/slog"
	"path"
	"strings"

	"github.com/google/uuid"

	"github.com/exactfit/customer-web/internal/models"
)

const keyPrefix = "tickets/"

// Uploader normalises a file and puts it into the configured store.
type Uploader struct {
	store  Store
	logger *slog.Logger
}

func NewUploader(store Store, logger *slog.Logger) *Uploader {
	return &Uploader{store: store, logger: logger}
}

func NewKey(ext string) string {
	return keyPrefix + uuid.NewString() + ext
}

// CanPresign reports whether the store hands out browser upload URLs.
func (u *Uploader) CanPresign() bool {
	_, ok := u.store.(Presigner)
	return ok
}

// Owns reports whether rawURL points into the store's attachment space.
// Stores that cannot presign own nothing.
func (u *Uploader) Owns(rawURL string) bool {
	p, ok := u.store.(Presigner)
	return ok && p.Owns(rawURL)
}

// Presign returns a signed PUT for a file the browser uploads itself. Only
// PDFs and WebP images are accepted this way, since they skip Normalize.
func (u *Uploader) Presign(ctx context.Context, name, contentType string) (*PresignedPut, error) {
	p, ok := u.store.(Presigner)
	if !ok {
		return nil, ErrNoPresign
	}

	var ext string
	switch contentType {
	case "application/pdf":
		ext = ".pdf"
	case "image/webp":
		ext = ".webp"
	default:
		return nil, ErrUnsupported
	}
	if e := strings.ToLower(path.Ext(name)); e != "" && e != ext {
		return nil, ErrUnsupported
	}
	return p.Presign(ctx, NewKey(ext), contentType)
}

func (u *Uploader) Upload(ctx context.Context, name string, body []byte) (*models.Attachment, error) {
	f, err := Normalize(body)
	if err != nil {
		outcome := "rejected"
		if !errors.Is(err, ErrTooLarge) && !errors.Is(err, ErrUnsupported) {
			outcome = "error"
		}
		uploadsTotal.WithLabelValues("unknown", outcome).Inc()
		return nil, err
	}

	key := NewKey(f.Ext)
	url, err := u.store.Put(ctx, key, f.ContentType, f.Body)
	if err != nil {
		uploadsTotal.WithLabelValues(f.ContentType, "error").Inc()
		u.logger.Error("upload failed", "key", key, "error", err)
		return nil, err
	}
	uploadsTotal.WithLabelValues(f.ContentType, "ok").Inc()

	return &models.Attachment{
		Name:        displayName(name, f.Ext),
		URL:         url,
		ContentType: f.ContentType,
		Size:        int64(len(f.Body)),
	}, nil
}

// displayName keeps the user's file name but with the stored extension.
func displayName(name, ext string) string {
	name = path.Base(strings.ReplaceAll(name, "\\", "/"))
	if name == "." || name == "/" || name == "" {
		return "attachment" + ext
	}
	return strings.TrimSuffix(name, path.Ext(name)) + ext
}
