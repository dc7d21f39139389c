// Command paperclip drives the attachment pipeline from the shell: it
// computes metadata-bearing filenames for captured files, moves them into
// a managed attachment directory, and prints resolved display properties
// as JSON.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/bytedance/sonic"
	"go.uber.org/zap"

	"github.com/tsawler/paperclip"
	"github.com/tsawler/paperclip/density"
	"github.com/tsawler/paperclip/descriptor"
	"github.com/tsawler/paperclip/format"
	"github.com/tsawler/paperclip/logging"
	"github.com/tsawler/paperclip/report"
	"github.com/tsawler/paperclip/resolver"
	"github.com/tsawler/paperclip/store"
)

const usage = `Usage: paperclip <command> [flags] <arg>

Commands:
  name <file>      compute the metadata-bearing filename for a capture
  attach <file>    move a capture into the attachment store
  resolve <name>   print resolved display properties for a stored name
  classify <file>  print an image's effective DPI and density class

Run "paperclip <command> -h" for command flags.
`

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "paperclip:", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	if len(args) < 1 {
		fmt.Fprint(os.Stderr, usage)
		return fmt.Errorf("missing command")
	}

	switch args[0] {
	case "name":
		return runName(args[1:])
	case "attach":
		return runAttach(args[1:])
	case "resolve":
		return runResolve(args[1:])
	case "classify":
		return runClassify(args[1:])
	default:
		fmt.Fprint(os.Stderr, usage)
		return fmt.Errorf("unknown command %q", args[0])
	}
}

// commonFlags registers the flags shared by every subcommand.
type commonFlags struct {
	native    bool
	threshold float64
	logStyle  string
	logLevel  string
}

func (c *commonFlags) register(fs *flag.FlagSet) {
	fs.BoolVar(&c.native, "native", false, "read geometry and resolution directly instead of running pdfinfo/sips")
	fs.Float64Var(&c.threshold, "threshold", density.DefaultThreshold, "effective DPI above which an image is high-density")
	fs.StringVar(&c.logStyle, "log-style", "terminal", "log output style: terminal, json, noop")
	fs.StringVar(&c.logLevel, "log-level", "warn", "log level")
}

func (c *commonFlags) logger() (*zap.Logger, error) {
	return logging.New(logging.Style(c.logStyle), c.logLevel)
}

// pipeline builds a configured pipeline for path.
func (c *commonFlags) pipeline(path string, logger *zap.Logger) *paperclip.Pipeline {
	p := paperclip.Capture(path).
		Threshold(c.threshold).
		Logger(logger)
	if c.native {
		p = p.Geometry(&report.PDFCPUReporter{}).
			Resolution(&report.ImageReporter{})
	}
	return p
}

func runName(args []string) error {
	fs := flag.NewFlagSet("name", flag.ExitOnError)
	var common commonFlags
	common.register(fs)
	fs.Parse(args)

	if fs.NArg() != 1 {
		return fmt.Errorf("usage: paperclip name [flags] <file>")
	}

	logger, err := common.logger()
	if err != nil {
		return err
	}
	defer logger.Sync()

	name, warnings, err := common.pipeline(fs.Arg(0), logger).Name(context.Background())
	if err != nil {
		return err
	}

	for _, w := range warnings {
		fmt.Fprintf(os.Stderr, "warning: %s: %s\n", w.Stage, w.Message)
	}
	fmt.Println(name)
	return nil
}

func runAttach(args []string) error {
	fs := flag.NewFlagSet("attach", flag.ExitOnError)
	var common commonFlags
	common.register(fs)
	dir := fs.String("dir", "", "attachment store root directory (required)")
	width := fs.Float64("width", 0, "requested display width (0 = none)")
	fs.Parse(args)

	if fs.NArg() != 1 {
		return fmt.Errorf("usage: paperclip attach [flags] <file>")
	}
	if *dir == "" {
		return fmt.Errorf("attach requires -dir")
	}

	logger, err := common.logger()
	if err != nil {
		return err
	}
	defer logger.Sync()

	st, err := store.NewDirStore(*dir)
	if err != nil {
		return err
	}

	p := common.pipeline(fs.Arg(0), logger).Store(st)
	if *width > 0 {
		p = p.Width(*width)
	}

	result, err := p.Attach(context.Background())
	if err != nil {
		return err
	}

	for _, w := range result.Warnings {
		fmt.Fprintf(os.Stderr, "warning: %s: %s\n", w.Stage, w.Message)
	}
	return printJSON(struct {
		Attachment store.Attachment    `json:"attachment"`
		Properties resolver.Properties `json:"properties"`
	}{result.Attachment, result.Properties})
}

func runResolve(args []string) error {
	fs := flag.NewFlagSet("resolve", flag.ExitOnError)
	width := fs.Float64("width", 0, "requested display width (0 = none)")
	fs.Parse(args)

	if fs.NArg() != 1 {
		return fmt.Errorf("usage: paperclip resolve [flags] <name>")
	}

	var requested resolver.Properties
	if *width > 0 {
		requested = resolver.Properties{resolver.KeyWidth: *width}
	}

	return printJSON(paperclip.Display(fs.Arg(0), requested))
}

func runClassify(args []string) error {
	fs := flag.NewFlagSet("classify", flag.ExitOnError)
	var common commonFlags
	common.register(fs)
	fs.Parse(args)

	if fs.NArg() != 1 {
		return fmt.Errorf("usage: paperclip classify [flags] <file>")
	}
	path := fs.Arg(0)

	kind, err := format.DetectFile(path)
	if err != nil {
		return err
	}
	if !kind.IsImage() {
		return fmt.Errorf("classify requires an image, got %s", kind)
	}

	var rep report.ResolutionReporter = &report.SipsReporter{}
	if common.native {
		rep = &report.ImageReporter{}
	}

	text, err := rep.ReportResolution(context.Background(), path)
	if err != nil {
		return err
	}

	sample, err := descriptor.ParseResolutionReport(text)
	if err != nil {
		return err
	}

	return printJSON(struct {
		DPIWidth     float64 `json:"dpi_width"`
		DPIHeight    float64 `json:"dpi_height"`
		EffectiveDPI float64 `json:"effective_dpi"`
		Density      string  `json:"density"`
	}{
		sample.DPIWidth,
		sample.DPIHeight,
		density.EffectiveDPI(sample),
		density.Classify(sample, common.threshold).String(),
	})
}

func printJSON(v any) error {
	out, err := sonic.ConfigDefault.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	fmt.Println(string(out))
	return nil
}
