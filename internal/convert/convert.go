// Package convert wraps the external LibreOffice binary used to turn
// presentation files into ordered slide images.
package convert

import (
	"context"
	"errors"
)

// Common errors returned by slide converters
var (
	// ErrConversionFailed is returned when the external converter crashed,
	// rejected the document, or produced no slides.
	ErrConversionFailed = errors.New("presentation conversion failed")

	// ErrConverterNotFound is returned when the LibreOffice binary cannot
	// be located.
	ErrConverterNotFound = errors.New("soffice binary not found")
)

// SlideConverter turns one presentation file into an ordered sequence of
// raster slide images. Implementations must be safe to invoke repeatedly and
// concurrently; each call is independent with no shared mutable state.
type SlideConverter interface {
	// Convert renders every slide of the given presentation file and
	// returns the slides as PNG-encoded images in slide order.
	Convert(ctx context.Context, filename string, data []byte) ([][]byte, error)
}
