// Package format provides file-kind detection for attachment sources.
package format

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Kind represents a supported attachment file kind.
type Kind int

const (
	// Unknown indicates an unrecognized kind.
	Unknown Kind = iota
	// PDF indicates a PDF document.
	PDF
	// PNG indicates a PNG image.
	PNG
	// TIFF indicates a TIFF image (the native clipboard image format on macOS).
	TIFF
)

// String returns the string representation of the kind.
func (k Kind) String() string {
	switch k {
	case PDF:
		return "PDF"
	case PNG:
		return "PNG"
	case TIFF:
		return "TIFF"
	default:
		return "Unknown"
	}
}

// Extension returns the typical file extension for the kind.
func (k Kind) Extension() string {
	switch k {
	case PDF:
		return ".pdf"
	case PNG:
		return ".png"
	case TIFF:
		return ".tiff"
	default:
		return ""
	}
}

// IsImage reports whether the kind is a raster image.
func (k Kind) IsImage() bool {
	return k == PNG || k == TIFF
}

var (
	pdfMagic    = []byte("%PDF-")
	pngMagic    = []byte{0x89, 'P', 'N', 'G', 0x0D, 0x0A, 0x1A, 0x0A}
	tiffMagicLE = []byte{'I', 'I', 0x2A, 0x00}
	tiffMagicBE = []byte{'M', 'M', 0x00, 0x2A}
)

// Detect determines the file kind from the filename extension.
func Detect(filename string) Kind {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".pdf":
		return PDF
	case ".png":
		return PNG
	case ".tif", ".tiff":
		return TIFF
	default:
		return Unknown
	}
}

// DetectFromMagic checks magic bytes to determine the kind. This provides
// more reliable detection than extension-based detection. Returns Unknown
// if the bytes match no supported kind.
func DetectFromMagic(data []byte) Kind {
	switch {
	case bytes.HasPrefix(data, pdfMagic):
		return PDF
	case bytes.HasPrefix(data, pngMagic):
		return PNG
	case bytes.HasPrefix(data, tiffMagicLE), bytes.HasPrefix(data, tiffMagicBE):
		return TIFF
	default:
		return Unknown
	}
}

// DetectFromReader reads the leading bytes from r and detects the kind
// from them.
func DetectFromReader(r io.Reader) (Kind, error) {
	magic := make([]byte, 8)
	n, err := io.ReadFull(r, magic)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return Unknown, fmt.Errorf("failed to read magic bytes: %w", err)
	}
	return DetectFromMagic(magic[:n]), nil
}

// DetectFile determines the kind of the file at path, preferring magic
// bytes and falling back to the extension when the content is inconclusive.
func DetectFile(path string) (Kind, error) {
	f, err := os.Open(path)
	if err != nil {
		return Unknown, fmt.Errorf("failed to open file: %w", err)
	}
	defer f.Close()

	kind, err := DetectFromReader(f)
	if err != nil {
		return Unknown, err
	}
	if kind != Unknown {
		return kind, nil
	}
	return Detect(path), nil
}
