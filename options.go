package paperclip

import (
	"go.uber.org/zap"

	"github.com/tsawler/paperclip/density"
	"github.com/tsawler/paperclip/format"
	"github.com/tsawler/paperclip/report"
	"github.com/tsawler/paperclip/store"
)

// Annotator extracts alt text from image bytes.
type Annotator interface {
	AltText(imageData []byte) (string, error)
}

// pipelineOptions holds configuration for one pipeline run.
type pipelineOptions struct {
	// kind is the declared file kind; Unknown means detect from content.
	kind format.Kind

	// width is the explicitly requested display width; hasWidth
	// distinguishes zero from absent.
	width    float64
	hasWidth bool

	// threshold is the high-density DPI boundary, threaded explicitly so
	// the core carries no ambient configuration.
	threshold float64

	geometry   report.GeometryReporter
	resolution report.ResolutionReporter
	store      store.Store
	annotator  Annotator
	logger     *zap.Logger
}

// defaultOptions returns the default pipeline options.
func defaultOptions() pipelineOptions {
	return pipelineOptions{
		kind:       format.Unknown,
		threshold:  density.DefaultThreshold,
		geometry:   &report.PDFInfoReporter{},
		resolution: &report.SipsReporter{},
		logger:     zap.NewNop(),
	}
}

// clone copies the options. All fields are values or shared collaborators,
// so a plain copy keeps chained pipelines independent.
func (o pipelineOptions) clone() pipelineOptions {
	return o
}
