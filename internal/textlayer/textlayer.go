// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package textlayer reads the embedded text layer of a PDF, page by page,
// without rendering. Two backends are available: a pure-Go reader and MuPDF.
package textlayer

import (
	"context"
	"fmt"

	"github.com/pdiddy/pdfconv/pkg/types"
)

// Extractor returns the text of every page of a PDF in page order. Pages
// without a text layer yield an empty string rather than being skipped.
type Extractor interface {
	Name() string
	ExtractText(ctx context.Context, pdfPath string) (types.PageText, error)
}

// New returns the extractor for backend.
func New(backend types.ExtractBackend) (Extractor, error) {
	switch backend {
	case types.ExtractNative, "":
		return NewNative(), nil
	case types.ExtractMuPDF:
		return NewMuPDF(), nil
	}
	return nil, fmt.Errorf("unknown text extractor %q (want native or mupdf)", backend)
}
