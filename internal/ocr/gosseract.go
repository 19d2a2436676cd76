// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

//go:build gosseract

package ocr

import (
	"context"
	"fmt"
	"strconv"

	"github.com/otiai10/gosseract/v2"

	"github.com/pdiddy/pdfconv/pkg/types"
)

// Gosseract recognizes text through the libtesseract bindings.
type Gosseract struct {
	tessdata string
	langData string
	lang     string
	dpi      int
}

// NewGosseract creates a recognizer bound to libtesseract.
func NewGosseract(env types.Environment) *Gosseract {
	return &Gosseract{
		tessdata: env.TessdataDir,
		langData: env.LanguageData,
		lang:     language(env),
		dpi:      env.DPI,
	}
}

// Name implements Recognizer.
func (g *Gosseract) Name() string { return string(types.OCRGosseract) }

// Available implements Recognizer. The library is linked in, so only the
// language data can be missing.
func (g *Gosseract) Available() error {
	if g.langData == "" {
		return languageMissing(g.lang)
	}
	return nil
}

// Recognize implements Recognizer. A client is created per page; gosseract
// clients are not safe for concurrent use.
func (g *Gosseract) Recognize(ctx context.Context, imagePath string) (string, error) {
	if err := g.Available(); err != nil {
		return "", err
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	client := gosseract.NewClient()
	defer client.Close()

	if g.tessdata != "" {
		if err := client.SetTessdataPrefix(g.tessdata); err != nil {
			return "", fmt.Errorf("setting tessdata prefix: %w", err)
		}
	}
	if err := client.SetLanguage(g.lang); err != nil {
		return "", fmt.Errorf("setting language %s: %w", g.lang, err)
	}
	if g.dpi > 0 {
		if err := client.SetVariable(gosseract.SettableVariable("user_defined_dpi"), strconv.Itoa(g.dpi)); err != nil {
			return "", fmt.Errorf("setting dpi: %w", err)
		}
	}
	if err := client.SetImage(imagePath); err != nil {
		return "", fmt.Errorf("loading %s: %w", imagePath, err)
	}

	text, err := client.Text()
	if err != nil {
		return "", fmt.Errorf("recognizing %s: %w", imagePath, err)
	}
	return clean(text), nil
}
