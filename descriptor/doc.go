// Package descriptor parses the textual reports produced by external
// geometry and resolution tools into structured records.
//
// Two report shapes are understood:
//
//   - Page-geometry reports (pdfinfo-style), containing labeled box lines:
//
//     CropBox:       10.00    20.00   110.00   220.00
//     TrimBox:        0.00     0.00   120.00   240.00
//
//     Parsed by [ParseBoxReport] into a [BoxDescriptor].
//
//   - Resolution reports (sips-style), containing labeled DPI lines in
//     either order:
//
//     dpiWidth: 144.000
//     dpiHeight: 144.000
//
//     Parsed by [ParseResolutionReport] into a [ResolutionSample].
//
// Parsing is pure: text in, record out. Failures are reported through the
// sentinel errors [ErrMissingDescriptor], [ErrMalformedNumbers], and
// [ErrMissingField], wrapped with the label that caused them.
package descriptor
