package report

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
	"time"
)

// DefaultTimeout bounds a single external tool invocation.
const DefaultTimeout = 10 * time.Second

// GeometryReporter produces the raw text of a page-geometry report for a
// PDF file.
type GeometryReporter interface {
	ReportGeometry(ctx context.Context, path string) (string, error)
}

// ResolutionReporter produces the raw text of a resolution report for an
// image file.
type ResolutionReporter interface {
	ReportResolution(ctx context.Context, path string) (string, error)
}

// PDFInfoReporter obtains page geometry by running the pdfinfo tool.
type PDFInfoReporter struct {
	// Path is the pdfinfo binary to run. Defaults to "pdfinfo".
	Path string
	// Timeout bounds the invocation. Defaults to DefaultTimeout.
	Timeout time.Duration
}

// ReportGeometry runs pdfinfo -box on path and returns its stdout.
func (r *PDFInfoReporter) ReportGeometry(ctx context.Context, path string) (string, error) {
	bin := r.Path
	if bin == "" {
		bin = "pdfinfo"
	}
	return runTool(ctx, r.Timeout, bin, "-box", path)
}

// SipsReporter obtains image resolution by running the sips tool
// (available on macOS, where clipboard captures originate).
type SipsReporter struct {
	// Path is the sips binary to run. Defaults to "sips".
	Path string
	// Timeout bounds the invocation. Defaults to DefaultTimeout.
	Timeout time.Duration
}

// ReportResolution runs sips -g dpiWidth -g dpiHeight on path and returns
// its stdout.
func (r *SipsReporter) ReportResolution(ctx context.Context, path string) (string, error) {
	bin := r.Path
	if bin == "" {
		bin = "sips"
	}
	return runTool(ctx, r.Timeout, bin, "-g", "dpiWidth", "-g", "dpiHeight", path)
}

// runTool executes a report tool as a single synchronous call bounded by
// timeout and returns its stdout text.
func runTool(ctx context.Context, timeout time.Duration, bin string, args ...string) (string, error) {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, bin, args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg != "" {
			return "", fmt.Errorf("report: %s failed: %w: %s", bin, err, msg)
		}
		return "", fmt.Errorf("report: %s failed: %w", bin, err)
	}

	return stdout.String(), nil
}
