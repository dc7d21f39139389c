package report

import (
	"context"
	"errors"
	"fmt"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"
)

// ErrNoGeometry is returned when a PDF carries no usable page boxes.
var ErrNoGeometry = errors.New("report: no page geometry available")

// PDFCPUReporter obtains page geometry natively through pdfcpu, for hosts
// without pdfinfo installed. It reads the boxes of the first page and
// renders them in the pdfinfo report shape.
type PDFCPUReporter struct{}

// ReportGeometry reads the CropBox and TrimBox of the first page of the
// PDF at path. Per PDF semantics a missing CropBox defaults to the
// MediaBox and a missing TrimBox defaults to the CropBox.
func (r *PDFCPUReporter) ReportGeometry(ctx context.Context, path string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	pdfCtx, err := api.ReadContextFile(path)
	if err != nil {
		return "", fmt.Errorf("report: failed to read PDF: %w", err)
	}

	pageDict, _, _, err := pdfCtx.PageDict(1, false)
	if err != nil {
		return "", fmt.Errorf("report: failed to read page dictionary: %w", err)
	}

	media, haveMedia := pageBox(pdfCtx, pageDict, "MediaBox")
	crop, haveCrop := pageBox(pdfCtx, pageDict, "CropBox")
	if !haveCrop {
		crop, haveCrop = media, haveMedia
	}
	if !haveCrop {
		return "", ErrNoGeometry
	}

	trim, haveTrim := pageBox(pdfCtx, pageDict, "TrimBox")
	if !haveTrim {
		trim = crop
	}

	return fmt.Sprintf("CropBox: %9.2f %9.2f %9.2f %9.2f\nTrimBox: %9.2f %9.2f %9.2f %9.2f\n",
		crop[0], crop[1], crop[2], crop[3],
		trim[0], trim[1], trim[2], trim[3]), nil
}

// pageBox extracts a four-number box entry from a page dictionary,
// dereferencing indirect values.
func pageBox(pdfCtx *model.Context, dict types.Dict, key string) ([4]float64, bool) {
	obj, found := dict.Find(key)
	if !found {
		return [4]float64{}, false
	}

	obj, err := pdfCtx.Dereference(obj)
	if err != nil {
		return [4]float64{}, false
	}

	arr, ok := obj.(types.Array)
	if !ok || len(arr) < 4 {
		return [4]float64{}, false
	}

	var box [4]float64
	for i := 0; i < 4; i++ {
		elem, err := pdfCtx.Dereference(arr[i])
		if err != nil {
			return [4]float64{}, false
		}
		switch n := elem.(type) {
		case types.Integer:
			box[i] = float64(n)
		case types.Float:
			box[i] = float64(n)
		default:
			return [4]float64{}, false
		}
	}

	// Box corners may come in any order; normalize to x0 y0 x1 y1.
	if box[0] > box[2] {
		box[0], box[2] = box[2], box[0]
	}
	if box[1] > box[3] {
		box[1], box[3] = box[3], box[1]
	}

	return box, true
}
