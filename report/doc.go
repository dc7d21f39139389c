// Package report obtains the raw geometry and resolution report text that
// package descriptor parses.
//
// Two reporter families are provided. The exec-based reporters shell out
// to the platform tools whose output the parser was written against:
// pdfinfo for PDF page geometry and sips for image resolution. The native
// reporters read the same facts directly from the file (via pdfcpu for
// PDFs, and the PNG pHYs chunk or TIFF resolution tags for images) and
// render them in the identical textual shape, so a single parser serves
// both sources.
//
// A reporter failure aborts only the metadata derivation for that file;
// callers keep the original file and attach it as a standard-density,
// uncropped attachment.
package report
