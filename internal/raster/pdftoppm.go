// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package raster

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strconv"

	"github.com/pdiddy/pdfconv/internal/toolchain"
	"github.com/pdiddy/pdfconv/pkg/types"
)

const pagePrefix = "page"

// Pdftoppm rasterizes with Poppler's pdftoppm executable.
type Pdftoppm struct {
	bin string
	dpi int
	run toolchain.Runner
}

// NewPdftoppm creates a rasterizer using the pdftoppm located in env.
func NewPdftoppm(env types.Environment, run toolchain.Runner) *Pdftoppm {
	if run == nil {
		run = toolchain.ExecRunner{}
	}
	dpi := env.DPI
	if dpi <= 0 {
		dpi = types.DefaultDPI
	}
	return &Pdftoppm{bin: env.Pdftoppm, dpi: dpi, run: run}
}

// Name implements Rasterizer.
func (p *Pdftoppm) Name() string { return string(types.RasterPdftoppm) }

// Available implements Rasterizer.
func (p *Pdftoppm) Available() error {
	if p.bin == "" {
		return fmt.Errorf("%w: pdftoppm not found; install Poppler or set engine.poppler_dir",
			toolchain.ErrRasterizerUnavailable)
	}
	return nil
}

// Rasterize implements Rasterizer.
func (p *Pdftoppm) Rasterize(ctx context.Context, pdfPath, dir string) ([]types.PageImage, error) {
	if err := p.Available(); err != nil {
		return nil, err
	}

	args := []string{
		"-png",
		"-r", strconv.Itoa(p.dpi),
		pdfPath,
		filepath.Join(dir, pagePrefix),
	}
	if err := p.run.Run(ctx, p.bin, args, io.Discard); err != nil {
		return nil, fmt.Errorf("rasterizing %s: %w", pdfPath, err)
	}
	return collectPages(dir, pagePrefix)
}
