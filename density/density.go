// Package density classifies image resolution samples as standard or
// high-density (Retina). High-density images are rendered at half scale so
// that one logical pixel maps onto the multiple physical pixels the image
// was captured with.
package density

import (
	"math"

	"github.com/tsawler/paperclip/descriptor"
)

// DefaultThreshold is the effective DPI above which an image is considered
// high-density. 115 sits comfortably between the common 72/96 DPI standard
// displays and the 144+ DPI of Retina captures.
const DefaultThreshold = 115.0

// Density is the classification of an image's resolution.
type Density int

const (
	// Standard indicates a conventional-resolution image.
	Standard Density = iota
	// High indicates a high-density (Retina) image.
	High
)

// String returns the string representation of the density class.
func (d Density) String() string {
	switch d {
	case High:
		return "high"
	default:
		return "standard"
	}
}

// EffectiveDPI reduces a width/height DPI pair to a single figure using the
// geometric mean. The geometric mean damps asymmetric reporting between the
// two axes: a sample of 50x200 yields 100, not the arithmetic 125.
// Samples with a non-positive axis yield 0.
func EffectiveDPI(s descriptor.ResolutionSample) float64 {
	if s.DPIWidth <= 0 || s.DPIHeight <= 0 {
		return 0
	}
	return math.Sqrt(s.DPIWidth * s.DPIHeight)
}

// Classify returns High when the sample's effective DPI strictly exceeds
// threshold, Standard otherwise. A sample exactly at the threshold is
// Standard. Samples missing either axis classify as Standard.
func Classify(s descriptor.ResolutionSample, threshold float64) Density {
	if EffectiveDPI(s) > threshold {
		return High
	}
	return Standard
}
