package generation

import "context"

// Image is one prepared image payload with its transport content type.
type Image struct {
	Data     []byte
	MIMEType string
}

// Describer defines the interface for generating metadata text for a single
// image. This interface serves as a boundary between the application core and
// the external vision service.
type Describer interface {
	// Describe sends one image and its instruction text to the vision
	// service and returns the raw text response. Each call is stateless
	// and independent; the caller owns concurrency limiting and retry
	// policy.
	//
	// Failures are classified with the sentinel errors in this package so
	// callers can distinguish transport problems, service rejections, and
	// unusable responses via errors.Is.
	Describe(ctx context.Context, img Image, instructions string) (string, error)
}
