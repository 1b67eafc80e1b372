package upload

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/chai2010/webp"
	"github.com/gabriel-vasile/mimetype"
	"golang.org/x/image/draw"
)

const (
	MaxEdge     = 1600
	webpQuality = 80

	// MaxPixels bounds the decoded size of an image, whatever its file size.
	MaxPixels = 40_000_000
)

// File is an attachment ready to be stored.
type File struct {
	Body        []byte
	ContentType string
	Ext         string
}

// Normalize sniffs body. Images are scaled down to MaxEdge and re-encoded as
// WebP; PDFs are kept as they are; anything else is refused.
func Normalize(body []byte) (*File, error) {
	if len(body) > MaxSize {
		return nil, ErrTooLarge
	}

	mt := mimetype.Detect(body)
	switch {
	case mt.Is("application/pdf"):
		return &File{Body: body, ContentType: "application/pdf", Ext: ".pdf"}, nil
	case mt.Is("image/jpeg"), mt.Is("image/png"), mt.Is("image/gif"), mt.Is("image/webp"):
		return toWebP(body)
	}
	return nil, ErrUnsupported
}

func toWebP(body []byte) (*File, error) {
	cfg, _, err := image.DecodeConfig(bytes.NewReader(body))
	if err != nil {
		return nil, ErrUnsupported
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, ErrUnsupported
	}
	if int64(cfg.Width)*int64(cfg.Height) > MaxPixels {
		return nil, fmt.Errorf("%w: %dx%d pixels", ErrTooLarge, cfg.Width, cfg.Height)
	}

	src, _, err := image.Decode(bytes.NewReader(body))
	if err != nil {
		return nil, ErrUnsupported
	}

	img := fit(src, MaxEdge)

	var buf bytes.Buffer
	if err := webp.Encode(&buf, img, &webp.Options{Quality: webpQuality}); err != nil {
		return nil, err
	}
	return &File{Body: buf.Bytes(), ContentType: "image/webp", Ext: ".webp"}, nil
}

// fit scales src so that its longest edge is at most edge.
func fit(src image.Image, edge int) image.Image {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	if w <= edge && h <= edge {
		return src
	}

	if w >= h {
		h = h * edge / w
		w = edge
	} else {
		w = w * edge / h
		h = edge
	}
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, b, draw.Over, nil)
	return dst
}
