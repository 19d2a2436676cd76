// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package textlayer

import (
	"context"
	"fmt"

	"github.com/ledongthuc/pdf"

	"github.com/pdiddy/pdfconv/pkg/types"
)

// Native extracts text with the pure-Go github.com/ledongthuc/pdf reader.
type Native struct{}

// NewNative creates the pure-Go extractor.
func NewNative() *Native {
	return &Native{}
}

// Name implements Extractor.
func (n *Native) Name() string { return string(types.ExtractNative) }

// ExtractText implements Extractor. The reader panics on some malformed
// files; panics are converted to errors.
func (n *Native) ExtractText(ctx context.Context, pdfPath string) (pages types.PageText, err error) {
	defer func() {
		if r := recover(); r != nil {
			pages = nil
			err = fmt.Errorf("parsing PDF %s: %v", pdfPath, r)
		}
	}()

	f, r, err := pdf.Open(pdfPath)
	if err != nil {
		return nil, fmt.Errorf("opening PDF %s: %w", pdfPath, err)
	}
	defer f.Close()

	numPages := r.NumPage()
	fonts := make(map[string]*pdf.Font)
	pages = make(types.PageText, 0, numPages)

	for i := 1; i <= numPages; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		p := r.Page(i)
		if p.V.IsNull() {
			pages = append(pages, "")
			continue
		}

		for _, name := range p.Fonts() {
			if _, ok := fonts[name]; !ok {
				font := p.Font(name)
				fonts[name] = &font
			}
		}

		text, err := p.GetPlainText(fonts)
		if err != nil {
			return nil, fmt.Errorf("reading page %d of %s: %w", i, pdfPath, err)
		}
		pages = append(pages, text)
	}

	return pages, nil
}
