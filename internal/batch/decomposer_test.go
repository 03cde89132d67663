package batch

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/assetdesk/metagen/internal/domain"
	"github.com/assetdesk/metagen/internal/imageprep"
)

// mockConverter implements convert.SlideConverter with canned slide output.
type mockConverter struct {
	slides [][]byte
	err    error
}

func (m *mockConverter) Convert(_ context.Context, _ string, _ []byte) ([][]byte, error) {
	return m.slides, m.err
}

func smallPNG(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			img.Set(x, y, color.RGBA{R: 200, G: 120, B: 40, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func smallJPEG(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, img, nil))
	return buf.Bytes()
}

func testImageCfg() imageprep.Config {
	return imageprep.Config{MaxSide: 768, JPEGQuality: 70}
}

func TestDecomposeSingleImage(t *testing.T) {
	t.Parallel()

	d := NewDecomposer(&mockConverter{}, testImageCfg(), testLogger())

	tasks, warnings := d.Decompose(context.Background(), []File{
		{Name: "chair.png", Data: smallPNG(t)},
	}, "describe it")

	require.Empty(t, warnings)
	require.Len(t, tasks, 1)
	assert.Equal(t, 0, tasks[0].Index)
	assert.Equal(t, "chair.png", tasks[0].SourceName)
	assert.Equal(t, "chair.png", tasks[0].DisplayName)
	assert.Zero(t, tasks[0].SlideNumber)
	assert.Equal(t, "image/png", tasks[0].MIMEType)
	assert.Equal(t, "describe it", tasks[0].Instructions)
}

func TestDecomposePresentationFansOutSlides(t *testing.T) {
	t.Parallel()

	slide := smallPNG(t)
	conv := &mockConverter{slides: [][]byte{slide, slide, slide}}
	d := NewDecomposer(conv, testImageCfg(), testLogger())

	tasks, warnings := d.Decompose(context.Background(), []File{
		{Name: "deck.pptx", Data: []byte("pptx bytes")},
	}, "")

	require.Empty(t, warnings)
	require.Len(t, tasks, 3)
	for i, task := range tasks {
		assert.Equal(t, i, task.Index)
		assert.Equal(t, "deck.pptx", task.SourceName)
		assert.Equal(t, i+1, task.SlideNumber)
	}
	assert.Equal(t, "deck.pptx (slide 1)", tasks[0].DisplayName)
	assert.Equal(t, "deck.pptx (slide 3)", tasks[2].DisplayName)
}

func TestDecomposeUnsupportedFileType(t *testing.T) {
	t.Parallel()

	d := NewDecomposer(&mockConverter{}, testImageCfg(), testLogger())

	tasks, warnings := d.Decompose(context.Background(), []File{
		{Name: "notes.txt", Data: []byte("hello")},
	}, "")

	assert.Empty(t, tasks)
	require.Len(t, warnings, 1)
	assert.Equal(t, "notes.txt", warnings[0].FileName)
	assert.Equal(t, domain.WarningUnsupportedFileType, warnings[0].Code)
}

func TestDecomposeUndecodableImage(t *testing.T) {
	t.Parallel()

	d := NewDecomposer(&mockConverter{}, testImageCfg(), testLogger())

	tasks, warnings := d.Decompose(context.Background(), []File{
		{Name: "broken.png", Data: []byte("not a png")},
	}, "")

	assert.Empty(t, tasks)
	require.Len(t, warnings, 1)
	assert.Equal(t, domain.WarningConversionFailed, warnings[0].Code)
}

func TestDecomposeConversionFailure(t *testing.T) {
	t.Parallel()

	conv := &mockConverter{err: errors.New("soffice exited with status 1")}
	d := NewDecomposer(conv, testImageCfg(), testLogger())

	tasks, warnings := d.Decompose(context.Background(), []File{
		{Name: "deck.pptx", Data: []byte("pptx bytes")},
	}, "")

	assert.Empty(t, tasks)
	require.Len(t, warnings, 1)
	assert.Equal(t, "deck.pptx", warnings[0].FileName)
	assert.Equal(t, domain.WarningConversionFailed, warnings[0].Code)
	assert.NotEmpty(t, warnings[0].Reason)
}

func TestDecomposeMixedUploadKeepsOrderAndSkipsRejects(t *testing.T) {
	t.Parallel()

	slide := smallPNG(t)
	conv := &mockConverter{slides: [][]byte{slide, slide}}
	d := NewDecomposer(conv, testImageCfg(), testLogger())

	tasks, warnings := d.Decompose(context.Background(), []File{
		{Name: "a.png", Data: smallPNG(t)},
		{Name: "skip.bin", Data: []byte{0}},
		{Name: "deck.pptx", Data: []byte("pptx bytes")},
		{Name: "b.jpg", Data: smallJPEG(t)},
	}, "")

	require.Len(t, warnings, 1)
	assert.Equal(t, "skip.bin", warnings[0].FileName)

	require.Len(t, tasks, 4)
	wantNames := []string{"a.png", "deck.pptx (slide 1)", "deck.pptx (slide 2)", "b.jpg"}
	for i, task := range tasks {
		assert.Equal(t, i, task.Index)
		assert.Equal(t, wantNames[i], task.DisplayName)
	}
}
