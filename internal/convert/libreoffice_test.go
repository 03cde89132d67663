package convert

import (
	"context"
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

func TestSortNatural(t *testing.T) {
	paths := []string{
		"/tmp/out/slide_10.png",
		"/tmp/out/slide_2.png",
		"/tmp/out/slide_1.png",
		"/tmp/out/slide_21.png",
	}

	sortNatural(paths)

	assert.Equal(t, []string{
		"/tmp/out/slide_1.png",
		"/tmp/out/slide_2.png",
		"/tmp/out/slide_10.png",
		"/tmp/out/slide_21.png",
	}, paths)
}

func TestSortNatural_MixedNames(t *testing.T) {
	paths := []string{"b1.png", "a10.png", "a2.png", "a.png"}

	sortNatural(paths)

	assert.Equal(t, []string{"a.png", "a2.png", "a10.png", "b1.png"}, paths)
}

func TestNaturalLess(t *testing.T) {
	tests := []struct {
		a, b string
		want bool
	}{
		{"slide_2.png", "slide_10.png", true},
		{"slide_10.png", "slide_2.png", false},
		{"deck_1_2.png", "deck_1_10.png", true},
		{"Alpha.png", "beta.png", true},
		{"same.png", "same.png", false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, naturalLess(tt.a, tt.b), "%s < %s", tt.a, tt.b)
	}
}

func TestConvert_MissingBinary(t *testing.T) {
	conv := NewLibreOffice("/nonexistent/soffice", testLogger())

	_, err := conv.Convert(context.Background(), "deck.pptx", []byte("not a real deck"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrConverterNotFound)
}
