package paperclip

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/tsawler/paperclip/clipboard"
	"github.com/tsawler/paperclip/codec"
	"github.com/tsawler/paperclip/density"
	"github.com/tsawler/paperclip/descriptor"
	"github.com/tsawler/paperclip/format"
	"github.com/tsawler/paperclip/resolver"
	"github.com/tsawler/paperclip/store"
)

var (
	errNoPath  = errors.New("paperclip: no capture path specified")
	errNoStore = errors.New("paperclip: no attachment store configured")
)

// Pipeline carries one captured file through metadata derivation, naming,
// storage, and property resolution. Each configuration method returns a
// new Pipeline instance, making chains safe to fork and reuse.
type Pipeline struct {
	path string
	opts pipelineOptions

	// Accumulated error (fail-fast)
	err error
}

// clone creates a copy of the Pipeline so chain methods never mutate
// their receiver.
func (p *Pipeline) clone() *Pipeline {
	return &Pipeline{
		path: p.path,
		opts: p.opts.clone(),
		err:  p.err,
	}
}

// Warning records a non-fatal problem encountered while deriving
// metadata. The attachment itself still succeeds.
type Warning struct {
	Stage   string
	Message string
}

// FormatWarnings renders warnings one per line for display.
func FormatWarnings(warnings []Warning) string {
	var b strings.Builder
	for i, w := range warnings {
		if i > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "%s: %s", w.Stage, w.Message)
	}
	return b.String()
}

// Result is the outcome of a completed Attach.
type Result struct {
	// Attachment is the stored record.
	Attachment store.Attachment
	// Name is the final stored filename, including metadata suffixes.
	Name string
	// Properties are the resolved display properties for the attachment.
	Properties resolver.Properties
	// Warnings lists non-fatal problems hit along the way.
	Warnings []Warning
}

// Name derives the attachment's final filename without touching the
// file: the crop suffix for a cropped PDF, the @2x tag for a
// high-density image, or the original base name when no metadata
// applies or derivation fails. The rename itself belongs to the store.
func (p *Pipeline) Name(ctx context.Context) (string, []Warning, error) {
	if p.err != nil {
		return "", nil, p.err
	}

	kind, err := p.resolveKind()
	if err != nil {
		return "", nil, err
	}

	name, warnings := p.deriveName(ctx, p.path, kind)
	return name, warnings, nil
}

// Attach runs the full pipeline: derive metadata, move the file into the
// configured store under its final name, and resolve display properties.
func (p *Pipeline) Attach(ctx context.Context) (*Result, error) {
	if p.err != nil {
		return nil, p.err
	}
	if p.opts.store == nil {
		return nil, errNoStore
	}

	kind, err := p.resolveKind()
	if err != nil {
		return nil, err
	}

	path := p.path
	var warnings []Warning

	// macOS clipboard images arrive as TIFF; store them as PNG so one
	// image kind reaches the document.
	if kind == format.TIFF {
		tmpDir, err := os.MkdirTemp("", "paperclip-")
		if err != nil {
			return nil, fmt.Errorf("paperclip: failed to create work directory: %w", err)
		}
		defer os.RemoveAll(tmpDir)

		normalized, err := clipboard.Normalize(clipboard.Capture{Path: path, Kind: kind}, tmpDir)
		if err != nil {
			warnings = p.warn(warnings, "normalize", err)
		} else {
			path, kind = normalized.Path, normalized.Kind
		}
	}

	name, nameWarnings := p.deriveName(ctx, path, kind)
	warnings = append(warnings, nameWarnings...)

	altText := ""
	if p.opts.annotator != nil && kind.IsImage() {
		text, err := p.annotate(path)
		if err != nil {
			warnings = p.warn(warnings, "annotate", err)
		} else {
			altText = text
		}
	}

	att, err := p.opts.store.Put(ctx, path, name)
	if err != nil {
		return nil, err
	}
	att.AltText = altText

	p.opts.logger.Info("stored attachment",
		zap.String("ref", att.Ref),
		zap.String("name", att.Name),
		zap.Int64("size", att.Size))

	return &Result{
		Attachment: att,
		Name:       att.Name,
		Properties: resolver.Resolve(att.Name, p.requestedProperties()),
		Warnings:   warnings,
	}, nil
}

// resolveKind returns the declared kind, detecting it from the file when
// unknown.
func (p *Pipeline) resolveKind() (format.Kind, error) {
	if p.opts.kind != format.Unknown {
		return p.opts.kind, nil
	}

	kind, err := format.DetectFile(p.path)
	if err != nil {
		return format.Unknown, fmt.Errorf("paperclip: %w", err)
	}
	if kind == format.Unknown {
		return format.Unknown, fmt.Errorf("paperclip: unsupported file kind for %s", p.path)
	}
	return kind, nil
}

// deriveName computes the final base name for the file. Derivation
// failures are warnings, never errors; the original name is kept and the
// attachment degrades to standard-density, uncropped.
func (p *Pipeline) deriveName(ctx context.Context, path string, kind format.Kind) (string, []Warning) {
	base := filepath.Base(path)
	var warnings []Warning

	switch kind {
	case format.PDF:
		text, err := p.opts.geometry.ReportGeometry(ctx, path)
		if err != nil {
			return base, p.warn(warnings, "geometry", err)
		}

		desc, err := descriptor.ParseBoxReport(text)
		if err != nil {
			return base, p.warn(warnings, "geometry", err)
		}

		rect, ok := codec.CropFromBoxes(desc)
		if !ok {
			return base, warnings
		}
		return codec.AppendSuffix(base, rect), warnings

	case format.PNG, format.TIFF:
		if codec.HasDensityTag(base) {
			return base, warnings
		}

		text, err := p.opts.resolution.ReportResolution(ctx, path)
		if err != nil {
			return base, p.warn(warnings, "resolution", err)
		}

		sample, err := descriptor.ParseResolutionReport(text)
		if err != nil {
			return base, p.warn(warnings, "resolution", err)
		}

		if density.Classify(sample, p.opts.threshold) == density.High {
			return codec.AppendDensityTag(base), warnings
		}
		return base, warnings

	default:
		return base, warnings
	}
}

// annotate extracts alt text from the image at path.
func (p *Pipeline) annotate(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return p.opts.annotator.AltText(data)
}

// requestedProperties builds the property map implied by the chain
// configuration.
func (p *Pipeline) requestedProperties() resolver.Properties {
	if !p.opts.hasWidth {
		return nil
	}
	return resolver.Properties{resolver.KeyWidth: p.opts.width}
}

// warn records a non-fatal problem and logs it.
func (p *Pipeline) warn(warnings []Warning, stage string, err error) []Warning {
	p.opts.logger.Warn("metadata derivation degraded",
		zap.String("stage", stage),
		zap.String("path", p.path),
		zap.Error(err))
	return append(warnings, Warning{Stage: stage, Message: err.Error()})
}
