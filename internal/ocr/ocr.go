// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package ocr recognizes text in page images. The tesseract backend runs the
// executable located at startup; the gosseract backend links libtesseract
// and is only functional in binaries built with the gosseract tag.
package ocr

import (
	"context"
	"fmt"
	"strings"

	"github.com/pdiddy/pdfconv/internal/toolchain"
	"github.com/pdiddy/pdfconv/pkg/types"
)

// Recognizer turns one page image into text.
type Recognizer interface {
	Name() string

	// Available reports whether the engine and its language data are
	// present. Errors wrap toolchain.ErrOCRUnavailable or
	// toolchain.ErrLanguageMissing.
	Available() error

	Recognize(ctx context.Context, imagePath string) (string, error)
}

// New returns the recognizer for backend.
func New(backend types.OCRBackend, env types.Environment, run toolchain.Runner) (Recognizer, error) {
	switch backend {
	case types.OCRTesseract, "":
		return NewTesseract(env, run), nil
	case types.OCRGosseract:
		return NewGosseract(env), nil
	}
	return nil, fmt.Errorf("unknown OCR engine %q (want tesseract or gosseract)", backend)
}

func language(env types.Environment) string {
	if env.Language == "" {
		return types.DefaultLanguage
	}
	return env.Language
}

func languageMissing(lang string) error {
	return fmt.Errorf("%w: %s.traineddata not found; install the tesseract language pack or set engine.tessdata_dir",
		toolchain.ErrLanguageMissing, lang)
}

// clean drops the form feed tesseract emits after each page along with
// trailing whitespace.
func clean(s string) string {
	return strings.TrimRight(s, " \t\r\n\f")
}
