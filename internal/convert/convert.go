// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package convert turns PDF files into plain text or .docx documents. Text
// comes from the embedded text layer when present and from OCR of rendered
// pages otherwise. Engines are injected so the pipeline never inspects the
// environment itself.
package convert

import (
	"context"
	"fmt"
	"io"

	"github.com/pdiddy/pdfconv/pkg/types"
)

// Converter runs a single conversion request. Pipeline is the production
// implementation.
type Converter interface {
	Convert(ctx context.Context, req types.ConversionRequest) types.ConversionResult
}

// BatchResult holds the outcome of a batch conversion run.
type BatchResult struct {
	Converted int
	Failed    int
	// Skipped counts requests never attempted because the batch stopped
	// early.
	Skipped int
	Results []types.ConversionResult
}

// Total returns the number of requests in the batch.
func (r BatchResult) Total() int {
	return r.Converted + r.Failed + r.Skipped
}

// HasFailures reports whether any request failed.
func (r BatchResult) HasFailures() bool {
	return r.Failed > 0
}

// BatchOptions controls ConvertBatch.
type BatchOptions struct {
	// FailFast stops the batch at the first failed request.
	FailFast bool

	// Progress, if set, is called after each request with the fraction of
	// the batch completed.
	Progress func(done, total int)

	// OnResult, if set, is called after each request with its outcome.
	OnResult func(req types.ConversionRequest, res types.ConversionResult)

	// Out receives per-file status lines and the summary. Nil discards them.
	Out io.Writer
}

// ConvertBatch processes requests sequentially through c, printing per-file
// status and returning a summary. Cancelling ctx stops the batch before the
// next request; requests not attempted count as skipped.
func ConvertBatch(ctx context.Context, c Converter, reqs []types.ConversionRequest, opts BatchOptions) BatchResult {
	w := opts.Out
	if w == nil {
		w = io.Discard
	}

	result := BatchResult{Results: make([]types.ConversionResult, 0, len(reqs))}
	for i, req := range reqs {
		if ctx.Err() != nil {
			result.Skipped = len(reqs) - i
			break
		}

		res := c.Convert(ctx, req)
		result.Results = append(result.Results, res)
		if res.OK {
			result.Converted++
			fmt.Fprintf(w, "converted: %s -> %s\n", req.Source, res.OutputPath)
		} else {
			result.Failed++
			fmt.Fprintf(w, "failed:  %s (%s)\n", req.Source, res.Message)
		}

		if opts.OnResult != nil {
			opts.OnResult(req, res)
		}
		if opts.Progress != nil {
			opts.Progress(i+1, len(reqs))
		}

		if !res.OK && opts.FailFast {
			result.Skipped = len(reqs) - i - 1
			break
		}
	}

	fmt.Fprintf(w, "\nBatch summary: %d converted, %d failed, %d skipped (total: %d)\n",
		result.Converted, result.Failed, result.Skipped, result.Total())
	return result
}

// ConvertPaths builds requests from raw PDF paths and delegates to
// ConvertBatch. With outDir empty each output lands beside its source.
func ConvertPaths(ctx context.Context, c Converter, pdfPaths []string, outDir string, kind types.OutputKind, mode types.OCRMode, opts BatchOptions) BatchResult {
	return ConvertBatch(ctx, c, Requests(pdfPaths, outDir, kind, mode), opts)
}

// Requests builds one request per path.
func Requests(pdfPaths []string, outDir string, kind types.OutputKind, mode types.OCRMode) []types.ConversionRequest {
	reqs := make([]types.ConversionRequest, len(pdfPaths))
	for i, p := range pdfPaths {
		dst := ""
		if outDir != "" {
			dst = types.DestinationIn(outDir, p, kind)
		}
		reqs[i] = types.NewConversionRequest(p, dst, kind, mode)
	}
	return reqs
}
