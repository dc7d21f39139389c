package report

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"os"

	"github.com/tsawler/paperclip/format"
)

// ErrNoResolution is returned when an image carries no resolution
// information. Callers treat this as "not high-density".
var ErrNoResolution = errors.New("report: no resolution information")

// ImageReporter obtains image resolution natively, for hosts without
// sips. It reads the PNG pHYs chunk or the TIFF resolution tags and
// renders them in the sips report shape.
type ImageReporter struct{}

// ReportResolution reads the resolution of the image at path.
func (r *ImageReporter) ReportResolution(ctx context.Context, path string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("report: failed to read image: %w", err)
	}

	var w, h float64
	var ok bool
	switch format.DetectFromMagic(data) {
	case format.PNG:
		w, h, ok = pngDPI(data)
	case format.TIFF:
		w, h, ok = tiffDPI(data)
	default:
		return "", fmt.Errorf("report: %s: unsupported image format", path)
	}
	if !ok {
		return "", fmt.Errorf("report: %s: %w", path, ErrNoResolution)
	}

	return fmt.Sprintf("%s\n  dpiWidth: %.3f\n  dpiHeight: %.3f\n", path, w, h), nil
}

const (
	pngHeaderLen   = 8
	metresPerInch  = 0.0254
	pngUnitIsMetre = 1
)

// pngDPI walks the PNG chunk stream looking for a pHYs chunk with a
// per-metre unit. Screenshots written by macOS carry one (144 DPI on
// Retina displays); images without it have no defined resolution.
func pngDPI(data []byte) (w, h float64, ok bool) {
	off := pngHeaderLen
	for off+8 <= len(data) {
		length := int(binary.BigEndian.Uint32(data[off : off+4]))
		typ := string(data[off+4 : off+8])
		body := off + 8
		if length < 0 || body+length > len(data) {
			return 0, 0, false
		}

		if typ == "pHYs" && length >= 9 {
			if data[body+8] != pngUnitIsMetre {
				return 0, 0, false
			}
			ppmX := binary.BigEndian.Uint32(data[body : body+4])
			ppmY := binary.BigEndian.Uint32(data[body+4 : body+8])
			return float64(ppmX) * metresPerInch, float64(ppmY) * metresPerInch, true
		}
		if typ == "IDAT" || typ == "IEND" {
			// pHYs must precede IDAT; stop scanning.
			return 0, 0, false
		}

		off = body + length + 4 // skip CRC
	}
	return 0, 0, false
}

// TIFF tags relevant to resolution.
const (
	tagXResolution    = 282
	tagYResolution    = 283
	tagResolutionUnit = 296

	unitInch       = 2
	unitCentimetre = 3
)

// tiffDPI reads the XResolution/YResolution rational tags from the first
// IFD. The x/image tiff decoder does not surface these tags, so the IFD
// walk is done directly.
func tiffDPI(data []byte) (w, h float64, ok bool) {
	if len(data) < 8 {
		return 0, 0, false
	}

	var bo binary.ByteOrder
	switch {
	case data[0] == 'I' && data[1] == 'I':
		bo = binary.LittleEndian
	case data[0] == 'M' && data[1] == 'M':
		bo = binary.BigEndian
	default:
		return 0, 0, false
	}

	ifd := int(bo.Uint32(data[4:8]))
	if ifd+2 > len(data) {
		return 0, 0, false
	}

	count := int(bo.Uint16(data[ifd : ifd+2]))
	unit := unitInch // TIFF default

	var xRes, yRes float64
	var haveX, haveY bool

	for i := 0; i < count; i++ {
		entry := ifd + 2 + i*12
		if entry+12 > len(data) {
			return 0, 0, false
		}

		tag := bo.Uint16(data[entry : entry+2])
		switch tag {
		case tagXResolution:
			xRes, haveX = tiffRational(data, bo, entry)
		case tagYResolution:
			yRes, haveY = tiffRational(data, bo, entry)
		case tagResolutionUnit:
			unit = int(bo.Uint16(data[entry+8 : entry+10]))
		}
	}

	if !haveX || !haveY {
		return 0, 0, false
	}
	if unit == unitCentimetre {
		xRes *= 2.54
		yRes *= 2.54
	}
	return xRes, yRes, true
}

// tiffRational dereferences a RATIONAL entry's value offset and divides
// numerator by denominator.
func tiffRational(data []byte, bo binary.ByteOrder, entry int) (float64, bool) {
	off := int(bo.Uint32(data[entry+8 : entry+12]))
	if off+8 > len(data) {
		return 0, false
	}
	num := bo.Uint32(data[off : off+4])
	den := bo.Uint32(data[off+4 : off+8])
	if den == 0 {
		return 0, false
	}
	return float64(num) / float64(den), true
}
