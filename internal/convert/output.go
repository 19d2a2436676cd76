// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pdiddy/pdfconv/internal/docx"
	"github.com/pdiddy/pdfconv/pkg/types"
)

// write serializes pages to req.Destination. The bytes go to a temp file in
// the destination directory which is then renamed into place, so a failed
// write never leaves a partial file or disturbs an existing one.
func (p *Pipeline) write(req types.ConversionRequest, pages types.PageText) (err error) {
	dir := filepath.Dir(req.Destination)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(req.Destination)+".*.tmp")
	if err != nil {
		return newError(KindSerializationFailure, fmt.Sprintf("creating output in %s", dir), err)
	}
	tmpPath := tmp.Name()
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmpPath)
		}
	}()

	switch req.Kind {
	case types.OutputText:
		_, err = io.WriteString(tmp, strings.ToValidUTF8(pages.Text(), "�"))
	case types.OutputDocument:
		err = docx.Write(tmp, pages, p.style)
	default:
		err = fmt.Errorf("unsupported output kind %q", req.Kind)
	}
	if err != nil {
		return newError(KindSerializationFailure, fmt.Sprintf("writing %s", req.Destination), err)
	}

	if err = tmp.Close(); err != nil {
		return newError(KindSerializationFailure, fmt.Sprintf("writing %s", req.Destination), err)
	}
	if err = os.Chmod(tmpPath, 0o644); err != nil {
		return newError(KindSerializationFailure, fmt.Sprintf("writing %s", req.Destination), err)
	}
	if err = os.Rename(tmpPath, req.Destination); err != nil {
		return newError(KindSerializationFailure, fmt.Sprintf("replacing %s", req.Destination), err)
	}
	return nil
}
