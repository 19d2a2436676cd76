// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

//go:build !gosseract

package ocr

import (
	"context"
	"fmt"

	"github.com/pdiddy/pdfconv/internal/toolchain"
	"github.com/pdiddy/pdfconv/pkg/types"
)

// Gosseract is unavailable in this build. Rebuild with -tags gosseract to
// link libtesseract.
type Gosseract struct{}

// NewGosseract returns the unavailable stub.
func NewGosseract(types.Environment) *Gosseract {
	return &Gosseract{}
}

// Name implements Recognizer.
func (g *Gosseract) Name() string { return string(types.OCRGosseract) }

// Available implements Recognizer.
func (g *Gosseract) Available() error {
	return fmt.Errorf("%w: binary built without the gosseract tag", toolchain.ErrOCRUnavailable)
}

// Recognize implements Recognizer.
func (g *Gosseract) Recognize(context.Context, string) (string, error) {
	return "", g.Available()
}
