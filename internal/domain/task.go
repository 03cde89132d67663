package domain

// Task represents one independent unit of metadata-generation work: a single
// image, or a single slide extracted from a presentation file, together with
// the instruction text sent to the vision service. Tasks are immutable once
// decomposition has produced them; Index is the task's identity and defines
// the order of the final result list.
type Task struct {
	// Index is the task's position in the decomposed batch, starting at 0.
	// Results are reassembled by this index, never by arrival order.
	Index int

	// SourceName is the name of the uploaded file the task came from.
	SourceName string

	// SlideNumber is the 1-based slide position for tasks extracted from a
	// presentation file, or 0 for plain image uploads.
	SlideNumber int

	// DisplayName identifies the task in exported output, e.g.
	// "deck.pptx (slide 3)" or "logo.png".
	DisplayName string

	// Payload is the prepared (resized, re-encoded) image content.
	Payload []byte

	// MIMEType is the transport content type of Payload.
	MIMEType string

	// Instructions is the prompt text sent alongside the image.
	Instructions string
}
