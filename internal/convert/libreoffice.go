package convert

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"unicode"
)

// LibreOffice converts presentations by shelling out to soffice in headless
// mode. Each Convert call uses its own temporary directory, so concurrent
// conversions do not interfere with each other.
type LibreOffice struct {
	// BinPath overrides the soffice binary location. When empty the binary
	// is resolved from PATH.
	BinPath string

	logger *slog.Logger
}

// NewLibreOffice creates a converter using the given binary override (may be
// empty) and logger.
func NewLibreOffice(binPath string, logger *slog.Logger) *LibreOffice {
	return &LibreOffice{BinPath: binPath, logger: logger}
}

// Convert renders the presentation to PNG slide images via
// `soffice --headless --convert-to png` and returns them in slide order.
func (l *LibreOffice) Convert(ctx context.Context, filename string, data []byte) ([][]byte, error) {
	bin, err := l.resolveBinary()
	if err != nil {
		return nil, err
	}

	workDir, err := os.MkdirTemp("", "metagen-convert-*")
	if err != nil {
		return nil, fmt.Errorf("creating conversion directory: %w", err)
	}
	defer func() {
		if rmErr := os.RemoveAll(workDir); rmErr != nil {
			l.logger.Warn("failed to clean up conversion directory",
				"dir", workDir, "error", rmErr)
		}
	}()

	inputPath := filepath.Join(workDir, filepath.Base(filename))
	if err := os.WriteFile(inputPath, data, 0o600); err != nil {
		return nil, fmt.Errorf("writing presentation to disk: %w", err)
	}

	outDir := filepath.Join(workDir, "slides")
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating slide output directory: %w", err)
	}

	cmd := exec.CommandContext(ctx, bin,
		"--headless",
		"--convert-to", "png",
		"--outdir", outDir,
		inputPath,
	)
	output, err := cmd.CombinedOutput()
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %s",
			ErrConversionFailed, filepath.Base(filename), strings.TrimSpace(string(output)))
	}

	pngFiles, err := filepath.Glob(filepath.Join(outDir, "*.png"))
	if err != nil {
		return nil, fmt.Errorf("locating converted slides: %w", err)
	}
	sortNatural(pngFiles)

	if len(pngFiles) == 0 {
		return nil, fmt.Errorf("%w: no slides were exported for %s",
			ErrConversionFailed, filepath.Base(filename))
	}

	slides := make([][]byte, 0, len(pngFiles))
	for _, path := range pngFiles {
		slide, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading converted slide %s: %w", filepath.Base(path), err)
		}
		slides = append(slides, slide)
	}

	l.logger.Debug("presentation converted",
		"file", filepath.Base(filename),
		"slide_count", len(slides))

	return slides, nil
}

// resolveBinary finds the soffice executable, preferring the configured
// override over PATH lookup.
func (l *LibreOffice) resolveBinary() (string, error) {
	if l.BinPath != "" {
		if _, err := os.Stat(l.BinPath); err == nil {
			return l.BinPath, nil
		}
		if found, err := exec.LookPath(l.BinPath); err == nil {
			return found, nil
		}
		return "", fmt.Errorf("%w: configured path %q is not usable",
			ErrConverterNotFound, l.BinPath)
	}

	found, err := exec.LookPath("soffice")
	if err != nil {
		return "", fmt.Errorf("%w: install LibreOffice or set the soffice path", ErrConverterNotFound)
	}
	return found, nil
}

// sortNatural orders file paths so that embedded numbers compare numerically:
// slide_2.png sorts before slide_10.png.
func sortNatural(paths []string) {
	sort.Slice(paths, func(i, j int) bool {
		return naturalLess(filepath.Base(paths[i]), filepath.Base(paths[j]))
	})
}

func naturalLess(a, b string) bool {
	ai, bi := 0, 0
	for ai < len(a) && bi < len(b) {
		ar, br := rune(a[ai]), rune(b[bi])
		if unicode.IsDigit(ar) && unicode.IsDigit(br) {
			aNum, aEnd := readNumber(a, ai)
			bNum, bEnd := readNumber(b, bi)
			if aNum != bNum {
				return aNum < bNum
			}
			ai, bi = aEnd, bEnd
			continue
		}
		if ar != br {
			return unicode.ToLower(ar) < unicode.ToLower(br)
		}
		ai++
		bi++
	}
	return len(a)-ai < len(b)-bi
}

func readNumber(s string, start int) (int, int) {
	end := start
	for end < len(s) && unicode.IsDigit(rune(s[end])) {
		end++
	}
	n, _ := strconv.Atoi(s[start:end])
	return n, end
}
