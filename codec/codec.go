// Package codec encodes derived display geometry into attachment
// filenames and decodes it back.
//
// The filename is the only durable artifact of the pipeline, so geometry
// must survive storage as plain text inside it. Two encodings exist, one
// per file kind:
//
//   - PDF crop suffix: report_100.0_200.0_10.0_20.0.pdf carries a crop
//     rectangle of width 100, height 200 at origin (10, 20), each field
//     formatted to exactly one decimal place.
//   - Image density tag: shot@2x.png marks a high-density capture.
//
// The two kinds are disjoint: a name carries a crop suffix or a density
// tag, never both. Decoding is lossless to one-decimal precision:
// DecodeFilename(AppendSuffix(name, r)) returns r for any rectangle with
// one-decimal fields. The exact textual formats are load-bearing; stored
// attachments depend on them for backward compatibility.
package codec

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/tsawler/paperclip/descriptor"
	"github.com/tsawler/paperclip/format"
)

// DensityTag is the filename marker for high-density images.
const DensityTag = "@2x"

// CropRect is a crop rectangle in an upper-left-origin coordinate system,
// in points. It is derived from a BoxDescriptor whose crop and trim boxes
// differ; absence of a CropRect means no crop applies.
type CropRect struct {
	Width   float64
	Height  float64
	OriginX float64
	OriginY float64
}

// CropFromBoxes derives the crop rectangle implied by a box descriptor.
// When the crop and trim boxes are identical in all four coordinates no
// crop applies and ok is false.
//
// The source geometry uses a lower-left origin while consumers require an
// upper-left origin, so OriginY is the distance from the trim box's top
// edge down to the crop box's top edge, not an inversion against the crop
// box's own height.
func CropFromBoxes(d descriptor.BoxDescriptor) (rect CropRect, ok bool) {
	if d.CropBox == d.TrimBox {
		return CropRect{}, false
	}

	return CropRect{
		Width:   d.CropBox.X1 - d.CropBox.X0,
		Height:  d.CropBox.Y1 - d.CropBox.Y0,
		OriginX: d.CropBox.X0,
		OriginY: d.TrimBox.Y1 - d.CropBox.Y1,
	}, true
}

// Suffix renders the rectangle as a filename suffix, each field formatted
// to exactly one decimal place and underscore-joined.
func (r CropRect) Suffix() string {
	return fmt.Sprintf("_%.1f_%.1f_%.1f_%.1f", r.Width, r.Height, r.OriginX, r.OriginY)
}

// AppendSuffix inserts the rectangle's suffix into filename immediately
// before the extension.
func AppendSuffix(filename string, r CropRect) string {
	ext := filepath.Ext(filename)
	return strings.TrimSuffix(filename, ext) + r.Suffix() + ext
}

// cropSuffixRe matches four trailing underscore-separated decimal numbers
// at the end of a filename base (extension already stripped).
var cropSuffixRe = regexp.MustCompile(
	`_(-?(?:\d+(?:\.\d+)?|\.\d+))_(-?(?:\d+(?:\.\d+)?|\.\d+))_(-?(?:\d+(?:\.\d+)?|\.\d+))_(-?(?:\d+(?:\.\d+)?|\.\d+))$`)

// DecodeFilename reconstructs the crop rectangle embedded in filename. A
// name without a crop suffix (the common case) returns ok false; a decode
// miss is never an error. Only filenames with a recognized extension are
// considered.
func DecodeFilename(filename string) (rect CropRect, ok bool) {
	if format.Detect(filename) == format.Unknown {
		return CropRect{}, false
	}

	base := strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
	m := cropSuffixRe.FindStringSubmatch(base)
	if m == nil {
		return CropRect{}, false
	}

	var nums [4]float64
	for i := 0; i < 4; i++ {
		n, err := strconv.ParseFloat(m[i+1], 64)
		if err != nil {
			return CropRect{}, false
		}
		nums[i] = n
	}

	return CropRect{Width: nums[0], Height: nums[1], OriginX: nums[2], OriginY: nums[3]}, true
}

// AppendDensityTag inserts the high-density tag into filename immediately
// before the extension.
func AppendDensityTag(filename string) string {
	ext := filepath.Ext(filename)
	return strings.TrimSuffix(filename, ext) + DensityTag + ext
}

// HasDensityTag reports whether filename carries the high-density tag.
func HasDensityTag(filename string) bool {
	base := strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
	return strings.HasSuffix(base, DensityTag)
}
