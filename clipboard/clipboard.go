// Package clipboard models the acquisition side of the attachment
// pipeline: something hands over a saved file and its kind.
//
// The OS clipboard itself is an external collaborator; by the time this
// package is involved the bytes are already on disk. FileSource covers
// the common cases of a dropped file or a clipboard capture saved by a
// platform helper. Normalize converts macOS clipboard TIFFs to PNG so the
// rest of the pipeline deals with a single image kind.
package clipboard

import (
	"context"
	"errors"
	"fmt"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/tiff"

	"github.com/tsawler/paperclip/format"
)

// ErrNoContent is returned when a source holds nothing usable.
var ErrNoContent = errors.New("clipboard: no usable content")

// Capture is a saved file together with its declared kind.
type Capture struct {
	Path string
	Kind format.Kind
}

// Source supplies a saved file path plus its declared kind. Acquire is a
// single synchronous call; sources do not retry.
type Source interface {
	Acquire(ctx context.Context) (Capture, error)
}

// FileSource acquires an existing file, as from a drag-and-drop or a file
// chooser.
type FileSource struct {
	Path string
}

// Acquire verifies the file exists and detects its kind. A file of an
// unsupported kind yields ErrNoContent.
func (s FileSource) Acquire(ctx context.Context) (Capture, error) {
	if err := ctx.Err(); err != nil {
		return Capture{}, err
	}

	info, err := os.Stat(s.Path)
	if err != nil {
		return Capture{}, fmt.Errorf("clipboard: %w", err)
	}
	if info.IsDir() {
		return Capture{}, fmt.Errorf("clipboard: %s is a directory: %w", s.Path, ErrNoContent)
	}

	kind, err := format.DetectFile(s.Path)
	if err != nil {
		return Capture{}, err
	}
	if kind == format.Unknown {
		return Capture{}, fmt.Errorf("clipboard: %s: %w", s.Path, ErrNoContent)
	}

	return Capture{Path: s.Path, Kind: kind}, nil
}

// Normalize converts a TIFF capture (the native clipboard image format on
// macOS) into a PNG file alongside it in dir, returning the new capture.
// Captures of any other kind are returned unchanged.
func Normalize(c Capture, dir string) (Capture, error) {
	if c.Kind != format.TIFF {
		return c, nil
	}

	src, err := os.Open(c.Path)
	if err != nil {
		return Capture{}, fmt.Errorf("clipboard: failed to open capture: %w", err)
	}
	defer src.Close()

	img, err := tiff.Decode(src)
	if err != nil {
		return Capture{}, fmt.Errorf("clipboard: failed to decode TIFF: %w", err)
	}

	base := filepath.Base(c.Path)
	base = strings.TrimSuffix(base, filepath.Ext(base)) + ".png"
	dstPath := filepath.Join(dir, base)

	dst, err := os.Create(dstPath)
	if err != nil {
		return Capture{}, fmt.Errorf("clipboard: failed to create PNG: %w", err)
	}

	if err := png.Encode(dst, img); err != nil {
		dst.Close()
		os.Remove(dstPath)
		return Capture{}, fmt.Errorf("clipboard: failed to encode PNG: %w", err)
	}
	if err := dst.Close(); err != nil {
		return Capture{}, fmt.Errorf("clipboard: failed to write PNG: %w", err)
	}

	return Capture{Path: dstPath, Kind: format.PNG}, nil
}
