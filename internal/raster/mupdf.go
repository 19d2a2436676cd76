// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package raster

import (
	"context"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"

	"github.com/gen2brain/go-fitz"

	"github.com/pdiddy/pdfconv/pkg/types"
)

// MuPDF renders pages in-process with go-fitz. It needs no external
// executable, so Available always succeeds.
type MuPDF struct {
	dpi int
}

// NewMuPDF creates a MuPDF rasterizer rendering at dpi.
func NewMuPDF(dpi int) *MuPDF {
	if dpi <= 0 {
		dpi = types.DefaultDPI
	}
	return &MuPDF{dpi: dpi}
}

// Name implements Rasterizer.
func (m *MuPDF) Name() string { return string(types.RasterMuPDF) }

// Available implements Rasterizer.
func (m *MuPDF) Available() error { return nil }

// Rasterize implements Rasterizer.
func (m *MuPDF) Rasterize(ctx context.Context, pdfPath, dir string) ([]types.PageImage, error) {
	doc, err := fitz.New(pdfPath)
	if err != nil {
		return nil, fmt.Errorf("opening PDF %s: %w", pdfPath, err)
	}
	defer doc.Close()

	n := doc.NumPage()
	pages := make([]types.PageImage, 0, n)
	for i := 0; i < n; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		img, err := doc.ImageDPI(i, float64(m.dpi))
		if err != nil {
			return nil, fmt.Errorf("rendering page %d of %s: %w", i+1, pdfPath, err)
		}

		path := filepath.Join(dir, fmt.Sprintf("%s-%d.png", pagePrefix, i+1))
		if err := writePNG(path, img); err != nil {
			return nil, err
		}
		pages = append(pages, types.PageImage{Number: i + 1, Path: path})
	}
	return pages, nil
}

func writePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("encoding %s: %w", path, err)
	}
	return f.Close()
}
