// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"context"

	"github.com/pdiddy/pdfconv/pkg/types"
)

// ConvertToText converts src to a UTF-8 text file at dst. With useOCR the
// text layer is ignored and every page is recognized; otherwise OCR runs only
// when the text layer is empty. On success message is the output path; on
// failure it explains why.
func (p *Pipeline) ConvertToText(ctx context.Context, src, dst string, useOCR bool) (bool, string) {
	return p.convertTo(ctx, src, dst, types.OutputText, useOCR)
}

// ConvertToDocument converts src to a .docx document at dst. See
// ConvertToText for the meaning of useOCR and the return values.
func (p *Pipeline) ConvertToDocument(ctx context.Context, src, dst string, useOCR bool) (bool, string) {
	return p.convertTo(ctx, src, dst, types.OutputDocument, useOCR)
}

func (p *Pipeline) convertTo(ctx context.Context, src, dst string, kind types.OutputKind, useOCR bool) (bool, string) {
	mode := types.OCRAuto
	if useOCR {
		mode = types.OCRForced
	}
	res := p.Convert(ctx, types.NewConversionRequest(src, dst, kind, mode))
	if !res.OK {
		return false, res.Message
	}
	return true, res.OutputPath
}
