// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package textlayer

import (
	"context"
	"fmt"

	"github.com/gen2brain/go-fitz"

	"github.com/pdiddy/pdfconv/pkg/types"
)

// MuPDF extracts text through MuPDF (github.com/gen2brain/go-fitz).
type MuPDF struct{}

// NewMuPDF creates the MuPDF-backed extractor.
func NewMuPDF() *MuPDF {
	return &MuPDF{}
}

// Name implements Extractor.
func (m *MuPDF) Name() string { return string(types.ExtractMuPDF) }

// ExtractText implements Extractor.
func (m *MuPDF) ExtractText(ctx context.Context, pdfPath string) (types.PageText, error) {
	doc, err := fitz.New(pdfPath)
	if err != nil {
		return nil, fmt.Errorf("opening PDF %s: %w", pdfPath, err)
	}
	defer doc.Close()

	numPages := doc.NumPage()
	pages := make(types.PageText, 0, numPages)
	for i := 0; i < numPages; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		text, err := doc.Text(i)
		if err != nil {
			return nil, fmt.Errorf("reading page %d of %s: %w", i+1, pdfPath, err)
		}
		pages = append(pages, text)
	}
	return pages, nil
}
