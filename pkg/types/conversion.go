// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"fmt"
	"path/filepath"
	"strings"
)

// OutputKind selects the serialization of a conversion.
type OutputKind string

const (
	OutputText     OutputKind = "txt"
	OutputDocument OutputKind = "docx"
)

// Ext returns the file extension, including the dot, for the output kind.
func (k OutputKind) Ext() string {
	return "." + string(k)
}

// ParseOutputKind maps user input ("txt", "text", "docx", "document") to an
// OutputKind.
func ParseOutputKind(s string) (OutputKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "txt", "text":
		return OutputText, nil
	case "docx", "doc", "document":
		return OutputDocument, nil
	}
	return "", fmt.Errorf("unknown output kind %q (want txt or docx)", s)
}

// OCRMode controls when optical character recognition runs.
type OCRMode string

const (
	// OCRAuto extracts the text layer and falls back to OCR when it is empty.
	OCRAuto OCRMode = "auto"
	// OCRForced skips text-layer extraction and always runs OCR.
	OCRForced OCRMode = "forced"
	// OCRDisabled extracts the text layer only; an empty layer fails the request.
	OCRDisabled OCRMode = "disabled"
)

// ParseOCRMode validates a mode string. An empty string yields OCRAuto.
func ParseOCRMode(s string) (OCRMode, error) {
	switch m := OCRMode(strings.ToLower(strings.TrimSpace(s))); m {
	case "":
		return OCRAuto, nil
	case OCRAuto, OCRForced, OCRDisabled:
		return m, nil
	}
	return "", fmt.Errorf("unknown OCR mode %q (want auto, forced, or disabled)", s)
}

// ConversionRequest describes one PDF conversion. Build it with
// NewConversionRequest so the destination is always resolved.
type ConversionRequest struct {
	// Source is the PDF to convert.
	Source string `json:"source" yaml:"source"`

	// Destination is the output file. Never empty once resolved.
	Destination string `json:"destination" yaml:"destination"`

	// Kind selects plain text or document output.
	Kind OutputKind `json:"kind" yaml:"kind"`

	// OCR selects the extraction strategy.
	OCR OCRMode `json:"ocr" yaml:"ocr"`
}

// NewConversionRequest builds a request, defaulting an empty destination to
// the source path with its extension replaced by the kind's extension.
func NewConversionRequest(source, destination string, kind OutputKind, mode OCRMode) ConversionRequest {
	if mode == "" {
		mode = OCRAuto
	}
	if kind == "" {
		kind = OutputText
	}
	if strings.TrimSpace(destination) == "" {
		destination = DefaultDestination(source, kind)
	}
	return ConversionRequest{
		Source:      source,
		Destination: destination,
		Kind:        kind,
		OCR:         mode,
	}
}

// DefaultDestination returns source stem + kind extension, in the source's
// directory.
func DefaultDestination(source string, kind OutputKind) string {
	return strings.TrimSuffix(source, filepath.Ext(source)) + kind.Ext()
}

// DestinationIn returns the output path for source inside dir, named after the
// source stem.
func DestinationIn(dir, source string, kind OutputKind) string {
	base := filepath.Base(source)
	return filepath.Join(dir, strings.TrimSuffix(base, filepath.Ext(base))+kind.Ext())
}

// PageText holds extracted text, one entry per source page in page order.
type PageText []string

// Text joins pages with a newline and terminates the last page with one, so
// ["A", "B"] becomes "A\nB\n".
func (p PageText) Text() string {
	if len(p) == 0 {
		return ""
	}
	return strings.Join(p, "\n") + "\n"
}

// Empty reports whether the aggregate text is blank after trimming.
func (p PageText) Empty() bool {
	for _, page := range p {
		if strings.TrimSpace(page) != "" {
			return false
		}
	}
	return true
}

// ExtractionMethod records which strategy produced the page text.
type ExtractionMethod string

const (
	MethodNone   ExtractionMethod = ""
	MethodDirect ExtractionMethod = "direct"
	MethodOCR    ExtractionMethod = "ocr"
)

// ConversionResult is the outcome of one request. There is no partial
// success: either OK is true and OutputPath names the written file, or OK is
// false and Message explains why.
type ConversionResult struct {
	OK         bool             `json:"ok" yaml:"ok"`
	OutputPath string           `json:"output_path,omitempty" yaml:"output_path,omitempty"`
	Message    string           `json:"message,omitempty" yaml:"message,omitempty"`
	Kind       string           `json:"kind,omitempty" yaml:"kind,omitempty"`
	Method     ExtractionMethod `json:"method,omitempty" yaml:"method,omitempty"`
	Pages      int              `json:"pages" yaml:"pages"`
}

// PageImage is one rasterized page, numbered from 1.
type PageImage struct {
	Number int
	Path   string
}
