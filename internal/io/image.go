package ioutils

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"

	"golang.org/x/image/draw"
)

// ImageService downscales comic images that exceed a size limit.
//
// Images keep their encoding (PNG, JPEG or GIF) so the artifact's file
// extension keeps matching its content.
//
// Example usage:
//
//	svc := NewImageService()
//
//	// Shrink to fit within 1000x1000
//	smaller, err := svc.Downscale(ctx, imageData, 1000)
type ImageService struct{}

// NewImageService creates a new ImageService.
func NewImageService() *ImageService {
	return &ImageService{}
}

// Downscale resizes an image to fit within maxSize x maxSize pixels.
//
// The aspect ratio is preserved. Images that already fit are returned
// unchanged, without re-encoding. Animated GIFs are reduced to their
// first frame, so they are returned unchanged as well.
//
// The Catmull-Rom algorithm is used for high-quality resizing.
//
// Example:
//
//	// A 1500x1000 image becomes 1000x666
//	resized, err := svc.Downscale(ctx, imageData, 1000)
func (s *ImageService) Downscale(ctx context.Context, data []byte, maxSize int) ([]byte, error) {
	if maxSize <= 0 {
		return data, nil
	}

	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	if cfg.Width <= maxSize && cfg.Height <= maxSize {
		return data, nil
	}
	if format == "gif" {
		if g, err := gif.DecodeAll(bytes.NewReader(data)); err == nil && len(g.Image) > 1 {
			return data, nil
		}
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}

	width, height := fit(cfg.Width, cfg.Height, maxSize)
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, img.Bounds(), draw.Over, nil)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	switch format {
	case "png":
		err = png.Encode(&buf, dst)
	case "jpeg":
		err = jpeg.Encode(&buf, dst, &jpeg.Options{Quality: 90})
	case "gif":
		err = gif.Encode(&buf, dst, nil)
	default:
		return nil, fmt.Errorf("unsupported image format %q", format)
	}
	if err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// fit scales width x height down to fit within maxSize, keeping the ratio.
func fit(width, height, maxSize int) (int, int) {
	if width >= height {
		h := height * maxSize / width
		if h < 1 {
			h = 1
		}
		return maxSize, h
	}
	w := width * maxSize / height
	if w < 1 {
		w = 1
	}
	return w, maxSize
}
