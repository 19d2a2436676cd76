// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/pdiddy/pdfconv/internal/docx"
	"github.com/pdiddy/pdfconv/internal/logging"
	"github.com/pdiddy/pdfconv/pkg/types"
)

// TextExtractor reads the embedded text layer of a PDF, one entry per page.
type TextExtractor interface {
	ExtractText(ctx context.Context, pdfPath string) (types.PageText, error)
}

// Rasterizer renders every page of a PDF to an image file inside dir.
type Rasterizer interface {
	Available() error
	Rasterize(ctx context.Context, pdfPath, dir string) ([]types.PageImage, error)
}

// Recognizer runs OCR on one page image.
type Recognizer interface {
	Available() error
	Recognize(ctx context.Context, imagePath string) (string, error)
}

// Pipeline converts one PDF per call. It holds no per-request state and is
// safe to reuse across sequential requests.
type Pipeline struct {
	extractor  TextExtractor
	rasterizer Rasterizer
	recognizer Recognizer
	style      docx.Style
	tempDir    string
	log        logrus.FieldLogger
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithLogger sets the logger used for progress and failures.
func WithLogger(log logrus.FieldLogger) Option {
	return func(p *Pipeline) { p.log = log }
}

// WithStyle sets the document style for Document output.
func WithStyle(s docx.Style) Option {
	return func(p *Pipeline) { p.style = s }
}

// WithTempDir sets the parent directory for per-request page images. The
// default is os.TempDir.
func WithTempDir(dir string) Option {
	return func(p *Pipeline) { p.tempDir = dir }
}

// New assembles a pipeline from its engines.
func New(ext TextExtractor, ras Rasterizer, rec Recognizer, opts ...Option) *Pipeline {
	p := &Pipeline{
		extractor:  ext,
		rasterizer: ras,
		recognizer: rec,
		style:      docx.DefaultStyle(),
		log:        logging.Discard(),
	}
	for _, o := range opts {
		o(p)
	}
	return p
}

// Convert runs one request to completion. Failures are reported in the
// result; Convert never panics on bad input and never returns an error.
func (p *Pipeline) Convert(ctx context.Context, req types.ConversionRequest) types.ConversionResult {
	if req.Kind == "" {
		req.Kind = types.OutputText
	}
	if req.Destination == "" {
		req.Destination = types.DefaultDestination(req.Source, req.Kind)
	}
	log := p.log.WithFields(logrus.Fields{"source": req.Source, "kind": req.Kind})

	pages, method, err := p.extract(ctx, req, log)
	if err == nil {
		err = p.write(req, pages)
	}
	if err != nil {
		kind := KindOf(err)
		log.WithFields(logrus.Fields{"error_kind": kind, "method": method}).Error(err.Error())
		return types.ConversionResult{
			OK:      false,
			Message: err.Error(),
			Kind:    string(kind),
			Method:  method,
		}
	}

	log.WithFields(logrus.Fields{
		"method": method,
		"pages":  len(pages),
		"output": req.Destination,
	}).Info("conversion complete")
	return types.ConversionResult{
		OK:         true,
		OutputPath: req.Destination,
		Method:     method,
		Pages:      len(pages),
	}
}

type state int

const (
	stateDirect state = iota
	stateOCR
)

// extract walks the DirectExtraction -> OCRExtraction state machine and
// returns the page text ready for serialization.
func (p *Pipeline) extract(ctx context.Context, req types.ConversionRequest, log logrus.FieldLogger) (types.PageText, types.ExtractionMethod, error) {
	if err := checkSource(req.Source); err != nil {
		return nil, types.MethodNone, err
	}
	mode, err := checkOptions(req)
	if err != nil {
		return nil, types.MethodNone, err
	}

	st := stateDirect
	if mode == types.OCRForced {
		st = stateOCR
	}

	for {
		switch st {
		case stateDirect:
			log.Debug("extracting text layer")
			pages, err := p.extractor.ExtractText(ctx, req.Source)
			if err != nil {
				return nil, types.MethodDirect, newError(KindExtractionFailure, "extracting text layer", err)
			}
			if !pages.Empty() {
				return pages, types.MethodDirect, nil
			}
			if mode == types.OCRDisabled {
				return nil, types.MethodDirect, newError(KindExtractionFailure, "no text layer found and OCR is disabled", nil)
			}
			log.Info("no text layer found, falling back to OCR")
			st = stateOCR

		case stateOCR:
			pages, err := p.recognize(ctx, req.Source, log)
			if err != nil {
				return nil, types.MethodOCR, err
			}
			if pages.Empty() {
				return nil, types.MethodOCR, newError(KindExtractionFailure, "OCR recognized no text", nil)
			}
			return pages, types.MethodOCR, nil
		}
	}
}

func checkSource(src string) error {
	info, err := os.Stat(src)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return newError(KindSourceNotFound, fmt.Sprintf("source not found: %s", src), nil)
		}
		return newError(KindSourceNotFound, fmt.Sprintf("cannot access source %s", src), err)
	}
	if info.IsDir() {
		return newError(KindSourceNotFound, fmt.Sprintf("source is a directory: %s", src), nil)
	}
	if !strings.EqualFold(filepath.Ext(src), ".pdf") {
		return newError(KindInvalidSourceType, fmt.Sprintf("not a PDF file: %s", src), nil)
	}
	return nil
}

// checkOptions rejects an output kind the writer cannot produce before any
// engine runs, and returns the OCR mode in canonical form.
func checkOptions(req types.ConversionRequest) (types.OCRMode, error) {
	switch req.Kind {
	case types.OutputText, types.OutputDocument:
	default:
		return "", newError(KindSerializationFailure, fmt.Sprintf("unsupported output kind %q", req.Kind), nil)
	}
	mode, err := types.ParseOCRMode(string(req.OCR))
	if err != nil {
		return "", newError(KindExtractionFailure, "invalid OCR mode", err)
	}
	return mode, nil
}

// recognize rasterizes src into a private temp directory and OCRs each page
// in order. Any page failure fails the request.
func (p *Pipeline) recognize(ctx context.Context, src string, log logrus.FieldLogger) (types.PageText, error) {
	if err := p.recognizer.Available(); err != nil {
		return nil, dependencyError(err)
	}
	if err := p.rasterizer.Available(); err != nil {
		return nil, dependencyError(err)
	}

	dir, err := os.MkdirTemp(p.tempDir, "pdfconv-pages-*")
	if err != nil {
		return nil, newError(KindExtractionFailure, "creating page image directory", err)
	}
	defer os.RemoveAll(dir)

	images, err := p.rasterizer.Rasterize(ctx, src, dir)
	if err != nil {
		return nil, newError(KindExtractionFailure, "rasterizing pages", err)
	}
	if len(images) == 0 {
		return nil, newError(KindExtractionFailure, "rasterizer produced no pages", nil)
	}

	pages := make(types.PageText, 0, len(images))
	for i, img := range images {
		if err := ctx.Err(); err != nil {
			return nil, newError(KindExtractionFailure, "OCR interrupted", err)
		}
		log.WithFields(logrus.Fields{"page": i + 1, "pages": len(images)}).
			Infof("processing page %d of %d", i+1, len(images))

		text, err := p.recognizer.Recognize(ctx, img.Path)
		if err != nil {
			return nil, newError(KindExtractionFailure, fmt.Sprintf("recognizing page %d", i+1), err)
		}
		pages = append(pages, text)
	}
	return pages, nil
}
