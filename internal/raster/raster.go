// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package raster renders PDF pages to PNG images for OCR. The default backend
// shells out to Poppler's pdftoppm; the mupdf backend renders in-process.
package raster

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/pdiddy/pdfconv/internal/toolchain"
	"github.com/pdiddy/pdfconv/pkg/types"
)

// Rasterizer renders every page of a PDF into dir and returns the images in
// page order.
type Rasterizer interface {
	Name() string

	// Available reports whether the backend can run. Errors wrap
	// toolchain.ErrRasterizerUnavailable.
	Available() error

	Rasterize(ctx context.Context, pdfPath, dir string) ([]types.PageImage, error)
}

// New returns the rasterizer for backend. Runner is used by backends that
// execute an external program.
func New(backend types.RasterBackend, env types.Environment, run toolchain.Runner) (Rasterizer, error) {
	switch backend {
	case types.RasterPdftoppm, "":
		return NewPdftoppm(env, run), nil
	case types.RasterMuPDF:
		return NewMuPDF(env.DPI), nil
	}
	return nil, fmt.Errorf("unknown rasterizer %q (want pdftoppm or mupdf)", backend)
}

// collectPages finds the PNGs named <prefix>-<n>.png in dir and orders them
// by page number. pdftoppm zero-pads n to the width of the page count, so a
// lexical sort is not enough.
func collectPages(dir, prefix string) ([]types.PageImage, error) {
	matches, err := filepath.Glob(filepath.Join(dir, prefix+"-*.png"))
	if err != nil {
		return nil, err
	}

	pages := make([]types.PageImage, 0, len(matches))
	for _, m := range matches {
		stem := strings.TrimSuffix(filepath.Base(m), ".png")
		n, err := strconv.Atoi(strings.TrimPrefix(stem, prefix+"-"))
		if err != nil {
			continue
		}
		pages = append(pages, types.PageImage{Number: n, Path: m})
	}
	sort.Slice(pages, func(i, j int) bool { return pages[i].Number < pages[j].Number })
	return pages, nil
}
