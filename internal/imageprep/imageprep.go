// Package imageprep normalizes uploaded images into bounded payloads for the
// vision service: accepted formats are decoded, oversized images are
// downscaled to a maximum side length, and the result is re-encoded as JPEG
// or PNG depending on transparency.
package imageprep

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"path/filepath"
	"strings"

	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
	"golang.org/x/image/draw"
)

// ErrUnsupportedFormat is returned for file extensions outside the accepted
// set (png, jpg, jpeg, gif, svg).
var ErrUnsupportedFormat = errors.New("unsupported image format")

// JPEG quality bounds; configured values outside this range are clamped.
const (
	minJPEGQuality = 40
	maxJPEGQuality = 95
)

// Fallback raster size for SVG documents without usable dimensions.
const defaultSVGSide = 512

// Config bounds the prepared payload.
type Config struct {
	// MaxSide is the maximum pixel length of the longer image side. Zero
	// or negative disables downscaling.
	MaxSide int

	// JPEGQuality is the re-encode quality for opaque images.
	JPEGQuality int
}

// Prepared is a normalized image payload ready for transport.
type Prepared struct {
	Data     []byte
	MIMEType string
}

// Prepare decodes the uploaded image, downscales it when it exceeds the
// configured bound, and re-encodes it. PNG and JPEG files within bounds pass
// through untouched; GIF and SVG are always converted to a raster payload.
func Prepare(filename string, data []byte, cfg Config) (Prepared, error) {
	ext := strings.ToLower(filepath.Ext(filename))

	switch ext {
	case ".png", ".jpg", ".jpeg":
		return prepareRaster(data, ext, cfg)
	case ".gif":
		img, err := gif.Decode(bytes.NewReader(data))
		if err != nil {
			return Prepared{}, fmt.Errorf("decoding gif: %w", err)
		}
		return encodeBounded(img, cfg)
	case ".svg":
		img, err := rasterizeSVG(data)
		if err != nil {
			return Prepared{}, fmt.Errorf("rasterizing svg: %w", err)
		}
		return encodeBounded(img, cfg)
	default:
		return Prepared{}, fmt.Errorf("%w: %s", ErrUnsupportedFormat, ext)
	}
}

// prepareRaster handles formats that can pass through unchanged when they
// already fit within the configured bound.
func prepareRaster(data []byte, ext string, cfg Config) (Prepared, error) {
	imgCfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return Prepared{}, fmt.Errorf("decoding image header: %w", err)
	}

	if !exceedsBound(imgCfg.Width, imgCfg.Height, cfg.MaxSide) {
		mime := "image/png"
		if ext == ".jpg" || ext == ".jpeg" {
			mime = "image/jpeg"
		}
		return Prepared{Data: data, MIMEType: mime}, nil
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return Prepared{}, fmt.Errorf("decoding image: %w", err)
	}

	return encodeBounded(img, cfg)
}

// encodeBounded downscales the image if needed and encodes it: PNG when the
// image carries transparency, JPEG at the configured quality otherwise.
func encodeBounded(img image.Image, cfg Config) (Prepared, error) {
	bounds := img.Bounds()
	if exceedsBound(bounds.Dx(), bounds.Dy(), cfg.MaxSide) {
		img = downscale(img, cfg.MaxSide)
	}

	var buf bytes.Buffer
	if hasAlpha(img) {
		if err := png.Encode(&buf, img); err != nil {
			return Prepared{}, fmt.Errorf("encoding png: %w", err)
		}
		return Prepared{Data: buf.Bytes(), MIMEType: "image/png"}, nil
	}

	quality := cfg.JPEGQuality
	if quality < minJPEGQuality {
		quality = minJPEGQuality
	}
	if quality > maxJPEGQuality {
		quality = maxJPEGQuality
	}
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: quality}); err != nil {
		return Prepared{}, fmt.Errorf("encoding jpeg: %w", err)
	}
	return Prepared{Data: buf.Bytes(), MIMEType: "image/jpeg"}, nil
}

func exceedsBound(width, height, maxSide int) bool {
	if maxSide <= 0 {
		return false
	}
	return width > maxSide || height > maxSide
}

// downscale resizes the image so its longer side equals maxSide, preserving
// aspect ratio.
func downscale(img image.Image, maxSide int) image.Image {
	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()

	var newWidth, newHeight int
	if width >= height {
		newWidth = maxSide
		newHeight = height * maxSide / width
	} else {
		newHeight = maxSide
		newWidth = width * maxSide / height
	}
	if newWidth < 1 {
		newWidth = 1
	}
	if newHeight < 1 {
		newHeight = 1
	}

	dst := image.NewRGBA(image.Rect(0, 0, newWidth, newHeight))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Src, nil)
	return dst
}

// hasAlpha reports whether the image has any non-opaque pixel.
func hasAlpha(img image.Image) bool {
	if opaquer, ok := img.(interface{ Opaque() bool }); ok {
		return !opaquer.Opaque()
	}
	return false
}

// rasterizeSVG renders an SVG document to an RGBA image at its declared
// size, falling back to a square default when the document has none.
func rasterizeSVG(data []byte) (image.Image, error) {
	icon, err := oksvg.ReadIconStream(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}

	width := int(icon.ViewBox.W + 0.5)
	height := int(icon.ViewBox.H + 0.5)
	if width <= 0 || height <= 0 {
		width, height = defaultSVGSide, defaultSVGSide
	}

	icon.SetTarget(0, 0, float64(width), float64(height))

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	scanner := rasterx.NewScannerGV(width, height, img, img.Bounds())
	icon.Draw(rasterx.NewDasher(width, height, scanner), 1.0)

	return img, nil
}
