// Package upload stores ticket attachments and hands back their public URL.
package upload

import (
	"context"
	"errors"
	"net/http"
	"time"
)

const (
	MaxSize       = 10 << 20
	PresignExpiry = 15 * time.Minute
)

var (
	ErrTooLarge    = errors.New("upload: file too large")
	ErrUnsupported = errors.New("upload: unsupported media type")
	ErrNoPresign   = errors.New("upload: backend cannot presign")
)

// Store puts one object and returns the URL it can be read from.
type Store interface {
	Put(ctx context.Context, key, contentType string, body []byte) (string, error)
}

// PresignedPut lets the browser upload straight to the bucket.
type PresignedPut struct {
	URL       string      `json:"url"`
	Method    string      `json:"method"`
	Headers   http.Header `json:"headers"`
	PublicURL string      `json:"public_url"`
	ExpiresAt time.Time   `json:"expires_at"`
}

type Presigner interface {
	Presign(ctx context.Context, key, contentType string) (*PresignedPut, error)
	// Owns reports whether rawURL is a public URL this store could have
	// handed out for an attachment.
	Owns(rawURL string) bool
}
