package media

import (
	"bytes"
	"image"
	"image/color"
	"log"

	"github.com/disintegration/imaging"
)

const (
	maxImageWidth  = 1920
	maxImageHeight = 1080
	jpegQuality    = 82
)

// Transform bounds the stored size of image payloads: alpha and palette modes
// are composed onto a white background, oversized images are downscaled to fit
// 1920x1080, and the result is re-encoded as JPEG at a fixed quality. Video
// and animated formats pass through untouched. Any failure keeps the original
// bytes; an upload never fails because compression failed.
func Transform(payload []byte, ext string) []byte {
	if CategoryFor(ext) != CategoryImage || ext == "gif" {
		return payload
	}

	img, err := imaging.Decode(bytes.NewReader(payload))
	if err != nil {
		log.Printf("⚠️  Image compression skipped (.%s): %v", ext, err)
		return payload
	}

	img = flattenOntoWhite(img)

	bounds := img.Bounds()
	if bounds.Dx() > maxImageWidth || bounds.Dy() > maxImageHeight {
		img = imaging.Fit(img, maxImageWidth, maxImageHeight, imaging.Lanczos)
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(jpegQuality)); err != nil {
		log.Printf("⚠️  Image compression skipped (.%s): %v", ext, err)
		return payload
	}
	return buf.Bytes()
}

// flattenOntoWhite composes transparent pixels onto an opaque white canvas so
// the lossy re-encode does not produce black-background artifacts.
func flattenOntoWhite(img image.Image) image.Image {
	if opaque, ok := img.(interface{ Opaque() bool }); ok && opaque.Opaque() {
		return img
	}
	bounds := img.Bounds()
	canvas := imaging.New(bounds.Dx(), bounds.Dy(), color.White)
	return imaging.Overlay(canvas, img, image.Pt(0, 0), 1.0)
}
