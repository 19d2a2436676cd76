// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"errors"
	"fmt"

	"github.com/pdiddy/pdfconv/internal/toolchain"
)

// Kind classifies a conversion failure.
type Kind string

const (
	KindSourceNotFound        Kind = "SourceNotFound"
	KindInvalidSourceType     Kind = "InvalidSourceType"
	KindOCRUnavailable        Kind = "OCRUnavailable"
	KindOCRLanguageMissing    Kind = "OCRLanguageMissing"
	KindRasterizerUnavailable Kind = "RasterizerUnavailable"
	KindExtractionFailure     Kind = "ExtractionFailure"
	KindSerializationFailure  Kind = "SerializationFailure"
)

// Error is a classified conversion failure. Err, when set, is the underlying
// cause.
type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Msg, e.Err)
	}
	return e.Msg
}

func (e *Error) Unwrap() error { return e.Err }

func newError(kind Kind, msg string, err error) *Error {
	return &Error{Kind: kind, Msg: msg, Err: err}
}

// KindOf returns the Kind of err. Unclassified errors are extraction
// failures.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindExtractionFailure
}

// dependencyError maps a toolchain availability error onto its Kind.
func dependencyError(err error) *Error {
	switch {
	case errors.Is(err, toolchain.ErrOCRUnavailable):
		return newError(KindOCRUnavailable, "OCR engine unavailable", err)
	case errors.Is(err, toolchain.ErrLanguageMissing):
		return newError(KindOCRLanguageMissing, "OCR language data missing", err)
	case errors.Is(err, toolchain.ErrRasterizerUnavailable):
		return newError(KindRasterizerUnavailable, "page rasterizer unavailable", err)
	}
	return newError(KindExtractionFailure, "OCR dependency check failed", err)
}
