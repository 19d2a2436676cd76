// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package ocr

import (
	"bytes"
	"context"
	"fmt"
	"strconv"

	"github.com/pdiddy/pdfconv/internal/toolchain"
	"github.com/pdiddy/pdfconv/pkg/types"
)

// Tesseract runs the tesseract executable once per page image.
type Tesseract struct {
	bin      string
	tessdata string
	langData string
	lang     string
	dpi      int
	run      toolchain.Runner
}

// NewTesseract creates a recognizer from the resolved environment.
func NewTesseract(env types.Environment, run toolchain.Runner) *Tesseract {
	if run == nil {
		run = toolchain.ExecRunner{}
	}
	return &Tesseract{
		bin:      env.Tesseract,
		tessdata: env.TessdataDir,
		langData: env.LanguageData,
		lang:     language(env),
		dpi:      env.DPI,
		run:      run,
	}
}

// Name implements Recognizer.
func (t *Tesseract) Name() string { return string(types.OCRTesseract) }

// Available implements Recognizer.
func (t *Tesseract) Available() error {
	if t.bin == "" {
		return fmt.Errorf("%w: tesseract executable not found; install Tesseract or set engine.tesseract_path",
			toolchain.ErrOCRUnavailable)
	}
	if t.langData == "" {
		return languageMissing(t.lang)
	}
	return nil
}

// Recognize implements Recognizer.
func (t *Tesseract) Recognize(ctx context.Context, imagePath string) (string, error) {
	if err := t.Available(); err != nil {
		return "", err
	}

	args := []string{imagePath, "stdout", "-l", t.lang}
	if t.tessdata != "" {
		args = append(args, "--tessdata-dir", t.tessdata)
	}
	if t.dpi > 0 {
		args = append(args, "--dpi", strconv.Itoa(t.dpi))
	}

	var out bytes.Buffer
	if err := t.run.Run(ctx, t.bin, args, &out); err != nil {
		return "", fmt.Errorf("recognizing %s: %w", imagePath, err)
	}
	return clean(out.String()), nil
}
