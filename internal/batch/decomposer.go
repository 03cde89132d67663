package batch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/assetdesk/metagen/internal/convert"
	"github.com/assetdesk/metagen/internal/domain"
	"github.com/assetdesk/metagen/internal/imageprep"
	"github.com/assetdesk/metagen/internal/redact"
)

// File is one uploaded file queued for decomposition.
type File struct {
	Name string
	Data []byte
}

// Presentation formats handed to the conversion collaborator; everything
// else goes through image preparation directly.
var presentationExts = map[string]bool{
	".ppt":  true,
	".pptx": true,
}

// Decomposer turns uploaded files into a flat ordered task list. A plain
// image yields one task; a presentation yields one task per slide. Files
// that cannot be decomposed are rejected individually with a typed warning
// and never abort the rest of the batch.
type Decomposer struct {
	converter convert.SlideConverter
	imageCfg  imageprep.Config
	logger    *slog.Logger
}

// NewDecomposer creates a decomposer using the given slide converter and
// image preparation bounds.
func NewDecomposer(converter convert.SlideConverter, imageCfg imageprep.Config, logger *slog.Logger) *Decomposer {
	return &Decomposer{
		converter: converter,
		imageCfg:  imageCfg,
		logger:    logger,
	}
}

// Decompose produces the ordered task list for one upload. Task order
// preserves file submission order and, within a presentation, slide order;
// this is the ordering contract the rest of the pipeline honors. The
// returned warnings list the files that were rejected outright.
func (d *Decomposer) Decompose(ctx context.Context, files []File, instructions string) ([]domain.Task, []domain.Warning) {
	var tasks []domain.Task
	var warnings []domain.Warning

	for _, file := range files {
		ext := strings.ToLower(filepath.Ext(file.Name))

		var fileTasks []domain.Task
		var warning *domain.Warning
		if presentationExts[ext] {
			fileTasks, warning = d.decomposePresentation(ctx, file, instructions)
		} else {
			fileTasks, warning = d.decomposeImage(file, instructions)
		}

		if warning != nil {
			d.logger.WarnContext(ctx, "file rejected during decomposition",
				"file", file.Name,
				"code", warning.Code,
				"reason", warning.Reason)
			warnings = append(warnings, *warning)
			continue
		}
		tasks = append(tasks, fileTasks...)
	}

	// Sequence indices are assigned over the surviving tasks only, so the
	// result list lines up one-to-one with them.
	for i := range tasks {
		tasks[i].Index = i
	}

	return tasks, warnings
}

// decomposePresentation converts the file to slide images and produces one
// task per slide, tagged with its 1-based slide number. A conversion or
// preparation failure rejects the whole file's tasks.
func (d *Decomposer) decomposePresentation(ctx context.Context, file File, instructions string) ([]domain.Task, *domain.Warning) {
	slides, err := d.converter.Convert(ctx, file.Name, file.Data)
	if err != nil {
		return nil, &domain.Warning{
			FileName: file.Name,
			Code:     domain.WarningConversionFailed,
			Reason:   redact.Error(err),
		}
	}

	tasks := make([]domain.Task, 0, len(slides))
	for i, slide := range slides {
		slideNumber := i + 1
		prepared, err := imageprep.Prepare(fmt.Sprintf("slide_%d.png", slideNumber), slide, d.imageCfg)
		if err != nil {
			return nil, &domain.Warning{
				FileName: file.Name,
				Code:     domain.WarningConversionFailed,
				Reason:   fmt.Sprintf("slide %d could not be prepared: %s", slideNumber, redact.Error(err)),
			}
		}
		tasks = append(tasks, domain.Task{
			SourceName:   file.Name,
			SlideNumber:  slideNumber,
			DisplayName:  fmt.Sprintf("%s (slide %d)", file.Name, slideNumber),
			Payload:      prepared.Data,
			MIMEType:     prepared.MIMEType,
			Instructions: instructions,
		})
	}
	return tasks, nil
}

// decomposeImage prepares a plain image file into exactly one task.
func (d *Decomposer) decomposeImage(file File, instructions string) ([]domain.Task, *domain.Warning) {
	prepared, err := imageprep.Prepare(file.Name, file.Data, d.imageCfg)
	if err != nil {
		code := domain.WarningConversionFailed
		if errors.Is(err, imageprep.ErrUnsupportedFormat) {
			code = domain.WarningUnsupportedFileType
		}
		return nil, &domain.Warning{
			FileName: file.Name,
			Code:     code,
			Reason:   redact.Error(err),
		}
	}

	return []domain.Task{{
		SourceName:   file.Name,
		DisplayName:  file.Name,
		Payload:      prepared.Data,
		MIMEType:     prepared.MIMEType,
		Instructions: instructions,
	}}, nil
}
