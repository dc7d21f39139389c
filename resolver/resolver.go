package resolver

import (
	"math"

	"github.com/tsawler/paperclip/codec"
)

// Property keys understood by this resolver. The mapping is open: callers
// may carry additional hints and they pass through untouched.
const (
	KeyWidth      = "width"
	KeyScale      = "scale"
	KeyCrop       = "crop"
	KeyBackground = "background"
)

// Properties is an open mapping of rendering hints consumed by the
// external renderer.
type Properties map[string]any

// clone returns a copy so that resolution never mutates the caller's map.
func (p Properties) clone() Properties {
	out := make(Properties, len(p)+3)
	for k, v := range p {
		out[k] = v
	}
	return out
}

// CropValues is a pixel-aligned crop rectangle, each field rounded to the
// nearest integer with ties to even.
type CropValues struct {
	Width  int `json:"width"`
	Height int `json:"height"`
	X      int `json:"x"`
	Y      int `json:"y"`
}

// Resolve produces the final display properties for the attachment stored
// under filename, reconciling the high-density and crop cases with the
// caller's requested properties.
//
// Policy, in order:
//
//  1. background is always "white"; PDF transparency otherwise renders
//     inconsistently across viewers.
//  2. A high-density image with no explicit width gets scale 0.5.
//  3. A filename carrying a crop rectangle:
//     a. an explicit width becomes scale = width / crop width and the
//     width key is removed (scale supersedes width);
//     b. crop is the rectangle with each field scaled by the resolved
//     scale (1.0 when none) and rounded to the nearest integer, ties
//     to even.
//  4. A width key whose value is nil is dropped entirely.
func Resolve(filename string, requested Properties) Properties {
	props := requested.clone()
	props[KeyBackground] = "white"

	width, hasWidth := number(props[KeyWidth])

	if codec.HasDensityTag(filename) && !hasWidth {
		props[KeyScale] = 0.5
	}

	if rect, ok := codec.DecodeFilename(filename); ok {
		if hasWidth && rect.Width > 0 {
			props[KeyScale] = width / rect.Width
			delete(props, KeyWidth)
		}

		scale := 1.0
		if s, ok := number(props[KeyScale]); ok {
			scale = s
		}

		props[KeyCrop] = CropValues{
			Width:  roundEven(rect.Width * scale),
			Height: roundEven(rect.Height * scale),
			X:      roundEven(rect.OriginX * scale),
			Y:      roundEven(rect.OriginY * scale),
		}
	}

	if v, ok := props[KeyWidth]; ok && v == nil {
		delete(props, KeyWidth)
	}

	return props
}

// roundEven rounds to the nearest integer, ties to even. Pixel-aligned
// cropping needs one consistent rule at exact .5 boundaries.
func roundEven(v float64) int {
	return int(math.RoundToEven(v))
}

// number extracts a numeric property value. A nil or non-numeric value is
// treated as absent.
func number(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	default:
		return 0, false
	}
}
