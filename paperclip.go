// Package paperclip turns clipboard captures and dropped files into
// document attachments with display metadata embedded in their filenames.
//
// A captured PDF is probed for a crop region (its CropBox differing from
// its TrimBox) and the crop geometry is encoded into the stored filename;
// a captured image is probed for high-density (Retina) resolution and
// tagged @2x. At render time the filename alone is enough to reconstruct
// scale, crop rectangle, and background for the host document's renderer.
//
// Basic usage:
//
//	st, _ := store.NewDirStore("attachments")
//	result, err := paperclip.Capture("shot.png").Store(st).Attach(ctx)
//	if err != nil {
//	    // handle error
//	}
//	if len(result.Warnings) > 0 {
//	    log.Println("Warnings:", paperclip.FormatWarnings(result.Warnings))
//	}
//
// With options:
//
//	result, err := paperclip.Capture("report.pdf").
//	    Width(320).
//	    Threshold(130).
//	    Store(st).
//	    Attach(ctx)
//
// Metadata derivation failures degrade gracefully: the file is attached
// under its original name as a standard-density, uncropped attachment and
// the failure surfaces as a warning.
package paperclip

import (
	"go.uber.org/zap"

	"github.com/tsawler/paperclip/format"
	"github.com/tsawler/paperclip/report"
	"github.com/tsawler/paperclip/resolver"
	"github.com/tsawler/paperclip/store"
)

// Capture starts a pipeline for the saved file at path.
//
// Example:
//
//	name, _, err := paperclip.Capture("report.pdf").Name(ctx)
func Capture(path string) *Pipeline {
	p := &Pipeline{
		path: path,
		opts: defaultOptions(),
	}
	if path == "" {
		p.err = errNoPath
	}
	return p
}

// Kind declares the file kind explicitly, skipping detection.
func (p *Pipeline) Kind(k format.Kind) *Pipeline {
	np := p.clone()
	np.opts.kind = k
	return np
}

// Width requests an explicit display width in document units. For
// attachments carrying a crop rectangle the width is reinterpreted as a
// derived scale; see the resolver package.
func (p *Pipeline) Width(w float64) *Pipeline {
	np := p.clone()
	np.opts.width = w
	np.opts.hasWidth = true
	return np
}

// Threshold sets the effective DPI above which an image is considered
// high-density. Defaults to density.DefaultThreshold.
func (p *Pipeline) Threshold(t float64) *Pipeline {
	np := p.clone()
	np.opts.threshold = t
	return np
}

// Geometry sets the page-geometry reporter used for PDFs. Defaults to
// the pdfinfo tool.
func (p *Pipeline) Geometry(r report.GeometryReporter) *Pipeline {
	np := p.clone()
	np.opts.geometry = r
	return np
}

// Resolution sets the resolution reporter used for images. Defaults to
// the sips tool.
func (p *Pipeline) Resolution(r report.ResolutionReporter) *Pipeline {
	np := p.clone()
	np.opts.resolution = r
	return np
}

// Store sets the attachment store that Attach moves files into.
func (p *Pipeline) Store(s store.Store) *Pipeline {
	np := p.clone()
	np.opts.store = s
	return np
}

// Annotate sets an annotator used to extract alt text from image
// attachments. An ocr.Client satisfies this when built with -tags ocr.
func (p *Pipeline) Annotate(a Annotator) *Pipeline {
	np := p.clone()
	np.opts.annotator = a
	return np
}

// Logger sets the logger used at the orchestration edge. Defaults to a
// no-op logger.
func (p *Pipeline) Logger(l *zap.Logger) *Pipeline {
	np := p.clone()
	np.opts.logger = l
	return np
}

// Display resolves the final display properties for an attachment stored
// under name, given the caller's requested properties.
func Display(name string, requested resolver.Properties) resolver.Properties {
	return resolver.Resolve(name, requested)
}

// Must is a helper that wraps a call to a function returning (T, error)
// and panics if the error is non-nil. It is intended for use in scripts
// or tests where error handling would be cumbersome.
func Must[T any](val T, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}
