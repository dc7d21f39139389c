package descriptor

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	// ErrMissingDescriptor is returned when a required labeled box line
	// (CropBox: or TrimBox:) is absent from a geometry report.
	ErrMissingDescriptor = errors.New("descriptor: missing labeled section")

	// ErrMalformedNumbers is returned when a labeled box line is present
	// but is followed by fewer than four numeric tokens.
	ErrMalformedNumbers = errors.New("descriptor: malformed numeric fields")

	// ErrMissingField is returned when a resolution report lacks a
	// dpiWidth: or dpiHeight: field.
	ErrMissingField = errors.New("descriptor: missing resolution field")
)

// Box is a rectangle in a lower-left-origin coordinate system, in points.
// Invariant: X1 >= X0 and Y1 >= Y0.
type Box struct {
	X0, Y0, X1, Y1 float64
}

// Width returns the horizontal extent of the box.
func (b Box) Width() float64 {
	return b.X1 - b.X0
}

// Height returns the vertical extent of the box.
func (b Box) Height() float64 {
	return b.Y1 - b.Y0
}

// BoxDescriptor holds the crop and trim boxes extracted from a
// page-geometry report. It is immutable once constructed.
type BoxDescriptor struct {
	CropBox Box
	TrimBox Box
}

// ResolutionSample holds the horizontal and vertical DPI values extracted
// from a resolution report.
type ResolutionSample struct {
	DPIWidth  float64
	DPIHeight float64
}

const (
	cropLabel = "CropBox:"
	trimLabel = "TrimBox:"

	dpiWidthLabel  = "dpiWidth:"
	dpiHeightLabel = "dpiHeight:"
)

// ParseBoxReport extracts a BoxDescriptor from the raw text of a
// page-geometry report. The report must contain a line beginning with
// "CropBox:" and a later line beginning with "TrimBox:", each followed by
// at least four whitespace-separated decimal numbers.
func ParseBoxReport(report string) (BoxDescriptor, error) {
	lines := strings.Split(report, "\n")

	crop, at, err := findBox(lines, 0, cropLabel)
	if err != nil {
		return BoxDescriptor{}, err
	}

	trim, _, err := findBox(lines, at+1, trimLabel)
	if err != nil {
		return BoxDescriptor{}, err
	}

	return BoxDescriptor{CropBox: crop, TrimBox: trim}, nil
}

// ParseResolutionReport extracts a ResolutionSample from the raw text of a
// resolution report. The dpiWidth: and dpiHeight: lines may appear in
// either order.
func ParseResolutionReport(report string) (ResolutionSample, error) {
	width, err := findField(report, dpiWidthLabel)
	if err != nil {
		return ResolutionSample{}, err
	}

	height, err := findField(report, dpiHeightLabel)
	if err != nil {
		return ResolutionSample{}, err
	}

	return ResolutionSample{DPIWidth: width, DPIHeight: height}, nil
}

// findBox scans lines[start:] for a line beginning with label and parses
// the four numbers that follow it. It returns the index of the matched
// line so callers can enforce label ordering.
func findBox(lines []string, start int, label string) (Box, int, error) {
	for i := start; i < len(lines); i++ {
		line := strings.TrimSpace(lines[i])
		if !strings.HasPrefix(line, label) {
			continue
		}

		fields := strings.Fields(strings.TrimPrefix(line, label))
		if len(fields) < 4 {
			return Box{}, 0, fmt.Errorf("%s: %w", label, ErrMalformedNumbers)
		}

		var nums [4]float64
		for j := 0; j < 4; j++ {
			n, err := strconv.ParseFloat(fields[j], 64)
			if err != nil {
				return Box{}, 0, fmt.Errorf("%s field %d: %w", label, j+1, ErrMalformedNumbers)
			}
			nums[j] = n
		}

		return Box{X0: nums[0], Y0: nums[1], X1: nums[2], Y1: nums[3]}, i, nil
	}

	return Box{}, 0, fmt.Errorf("%s: %w", label, ErrMissingDescriptor)
}

// findField locates a line containing label and parses the decimal number
// that follows it.
func findField(report, label string) (float64, error) {
	for _, line := range strings.Split(report, "\n") {
		idx := strings.Index(line, label)
		if idx < 0 {
			continue
		}

		rest := strings.Fields(line[idx+len(label):])
		if len(rest) == 0 {
			return 0, fmt.Errorf("%s: %w", label, ErrMissingField)
		}

		n, err := strconv.ParseFloat(rest[0], 64)
		if err != nil {
			return 0, fmt.Errorf("%s: %w", label, ErrMissingField)
		}

		return n, nil
	}

	return 0, fmt.Errorf("%s: %w", label, ErrMissingField)
}
