package density

import (
	"testing"

	"github.com/tsawler/paperclip/descriptor"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name      string
		width     float64
		height    float64
		threshold float64
		want      Density
	}{
		{"retina screenshot", 144, 144, DefaultThreshold, High},
		{"standard screenshot", 72, 72, DefaultThreshold, Standard},
		{"96 dpi export", 96, 96, DefaultThreshold, Standard},
		{"exactly at threshold", 115, 115, DefaultThreshold, Standard},
		{"just above threshold", 115.01, 115.01, DefaultThreshold, High},
		{"asymmetric axes damped", 50, 200, DefaultThreshold, Standard}, // geometric mean 100
		{"asymmetric axes high", 72, 288, DefaultThreshold, High},      // geometric mean 144
		{"missing width", 0, 144, DefaultThreshold, Standard},
		{"missing height", 144, 0, DefaultThreshold, Standard},
		{"negative sample", -144, 144, DefaultThreshold, Standard},
		{"custom threshold", 144, 144, 150, Standard},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := descriptor.ResolutionSample{DPIWidth: tt.width, DPIHeight: tt.height}
			if got := Classify(s, tt.threshold); got != tt.want {
				t.Errorf("Classify(%v, %v) = %v, want %v", s, tt.threshold, got, tt.want)
			}
		})
	}
}

// TestClassifyMonotonic verifies that for a fixed height, increasing the
// width DPI never flips the classification from High back to Standard.
func TestClassifyMonotonic(t *testing.T) {
	const height = 100.0

	seenHigh := false
	for width := 1.0; width <= 400; width += 0.5 {
		s := descriptor.ResolutionSample{DPIWidth: width, DPIHeight: height}
		got := Classify(s, DefaultThreshold)
		if seenHigh && got != High {
			t.Fatalf("classification flipped back to Standard at width %v", width)
		}
		if got == High {
			seenHigh = true
		}
	}

	if !seenHigh {
		t.Fatal("classification never reached High")
	}
}

func TestEffectiveDPI(t *testing.T) {
	s := descriptor.ResolutionSample{DPIWidth: 72, DPIHeight: 288}
	if got := EffectiveDPI(s); got != 144 {
		t.Errorf("EffectiveDPI(72, 288) = %v, want 144", got)
	}

	if got := EffectiveDPI(descriptor.ResolutionSample{}); got != 0 {
		t.Errorf("EffectiveDPI(zero sample) = %v, want 0", got)
	}
}

func TestDensityString(t *testing.T) {
	if Standard.String() != "standard" {
		t.Errorf("Standard.String() = %q", Standard.String())
	}
	if High.String() != "high" {
		t.Errorf("High.String() = %q", High.String())
	}
	if Density(99).String() != "standard" {
		t.Errorf("unknown density should read standard, got %q", Density(99).String())
	}
}
