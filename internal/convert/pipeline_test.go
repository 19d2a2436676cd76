// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/pdfconv/internal/docx"
	"github.com/pdiddy/pdfconv/internal/toolchain"
	"github.com/pdiddy/pdfconv/pkg/types"
)

type stubExtractor struct {
	pages types.PageText
	err   error
	calls int
}

func (s *stubExtractor) ExtractText(context.Context, string) (types.PageText, error) {
	s.calls++
	return s.pages, s.err
}

// stubRasterizer writes one placeholder image per page into the directory it
// is given, so tests can check the directory is cleaned up.
type stubRasterizer struct {
	pages       int
	unavailable error
	err         error
	calls       int
	dir         string
}

func (s *stubRasterizer) Available() error { return s.unavailable }

func (s *stubRasterizer) Rasterize(_ context.Context, _ string, dir string) ([]types.PageImage, error) {
	s.calls++
	s.dir = dir
	if s.err != nil {
		return nil, s.err
	}
	imgs := make([]types.PageImage, s.pages)
	for i := range imgs {
		path := filepath.Join(dir, fmt.Sprintf("page-%d.png", i+1))
		if err := os.WriteFile(path, []byte("png"), 0o644); err != nil {
			return nil, err
		}
		imgs[i] = types.PageImage{Number: i + 1, Path: path}
	}
	return imgs, nil
}

// stubRecognizer returns texts[i] for the i-th call.
type stubRecognizer struct {
	texts       []string
	unavailable error
	failOn      int // 1-based call that fails; 0 never
	calls       int
	images      []string
}

func (s *stubRecognizer) Available() error { return s.unavailable }

func (s *stubRecognizer) Recognize(_ context.Context, imagePath string) (string, error) {
	s.calls++
	s.images = append(s.images, imagePath)
	if s.failOn == s.calls {
		return "", errors.New("engine crashed")
	}
	if s.calls <= len(s.texts) {
		return s.texts[s.calls-1], nil
	}
	return "", nil
}

type engines struct {
	ext *stubExtractor
	ras *stubRasterizer
	rec *stubRecognizer
}

func (e engines) pipeline(opts ...Option) *Pipeline {
	return New(e.ext, e.ras, e.rec, opts...)
}

// textEngines has a text layer; scanEngines has none but OCR works.
func textEngines(pages ...string) engines {
	return engines{
		ext: &stubExtractor{pages: pages},
		ras: &stubRasterizer{pages: len(pages)},
		rec: &stubRecognizer{},
	}
}

func scanEngines(ocrPages ...string) engines {
	return engines{
		ext: &stubExtractor{pages: make(types.PageText, len(ocrPages))},
		ras: &stubRasterizer{pages: len(ocrPages)},
		rec: &stubRecognizer{texts: ocrPages},
	}
}

func writeSource(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte("%PDF-1.4 stub"), 0o644))
	return path
}

func request(src, dst string, kind types.OutputKind, mode types.OCRMode) types.ConversionRequest {
	return types.NewConversionRequest(src, dst, kind, mode)
}

func TestConvert_TextLayerSkipsOCR(t *testing.T) {
	dir := t.TempDir()
	src := writeSource(t, dir, "report.pdf")
	e := textEngines("A", "B")

	res := e.pipeline().Convert(context.Background(), request(src, "", types.OutputText, types.OCRAuto))

	require.True(t, res.OK, res.Message)
	assert.Equal(t, types.MethodDirect, res.Method)
	assert.Equal(t, 2, res.Pages)
	assert.Equal(t, filepath.Join(dir, "report.txt"), res.OutputPath)
	assert.Equal(t, 1, e.ext.calls)
	assert.Zero(t, e.ras.calls, "rasterizer must not run")
	assert.Zero(t, e.rec.calls, "recognizer must not run")
}

func TestConvert_FallsBackToOCR(t *testing.T) {
	tests := []struct {
		name      string
		textLayer types.PageText
	}{
		{name: "no text", textLayer: types.PageText{"", ""}},
		{name: "whitespace only", textLayer: types.PageText{"  \n", "\t"}},
		{name: "no pages", textLayer: nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := writeSource(t, t.TempDir(), "scan.pdf")
			e := scanEngines("first", "second")
			e.ext.pages = tt.textLayer

			res := e.pipeline().Convert(context.Background(), request(src, "", types.OutputText, types.OCRAuto))

			require.True(t, res.OK, res.Message)
			assert.Equal(t, types.MethodOCR, res.Method)
			assert.Equal(t, 1, e.ext.calls)
			assert.Equal(t, 1, e.ras.calls)
			assert.Equal(t, 2, e.rec.calls)

			got, err := os.ReadFile(res.OutputPath)
			require.NoError(t, err)
			assert.Equal(t, "first\nsecond\n", string(got))
		})
	}
}

func TestConvert_OCRDisabledFailsWithoutTextLayer(t *testing.T) {
	dir := t.TempDir()
	src := writeSource(t, dir, "scan.pdf")
	e := scanEngines("never")

	res := e.pipeline().Convert(context.Background(), request(src, "", types.OutputText, types.OCRDisabled))

	assert.False(t, res.OK)
	assert.Equal(t, string(KindExtractionFailure), res.Kind)
	assert.Contains(t, res.Message, "OCR is disabled")
	assert.Zero(t, e.ras.calls)
	assert.Zero(t, e.rec.calls)
	assert.NoFileExists(t, filepath.Join(dir, "scan.txt"))
}

func TestConvert_OCRDisabledUsesTextLayer(t *testing.T) {
	src := writeSource(t, t.TempDir(), "doc.pdf")
	e := textEngines("body")

	res := e.pipeline().Convert(context.Background(), request(src, "", types.OutputText, types.OCRDisabled))

	require.True(t, res.OK, res.Message)
	assert.Equal(t, types.MethodDirect, res.Method)
}

func TestConvert_ForcedOCRSkipsTextLayer(t *testing.T) {
	src := writeSource(t, t.TempDir(), "doc.pdf")
	e := scanEngines("ocr text")
	e.ext.pages = types.PageText{"embedded text"}

	res := e.pipeline().Convert(context.Background(), request(src, "", types.OutputText, types.OCRForced))

	require.True(t, res.OK, res.Message)
	assert.Equal(t, types.MethodOCR, res.Method)
	assert.Zero(t, e.ext.calls)
	assert.Equal(t, 1, e.rec.calls)

	got, err := os.ReadFile(res.OutputPath)
	require.NoError(t, err)
	assert.Equal(t, "ocr text\n", string(got))
}

func TestConvert_SourceChecks(t *testing.T) {
	dir := t.TempDir()
	notPDF := filepath.Join(dir, "notes.txt")
	require.NoError(t, os.WriteFile(notPDF, []byte("%PDF-1.4 real pdf bytes"), 0o644))
	noExt := filepath.Join(dir, "README")
	require.NoError(t, os.WriteFile(noExt, []byte("%PDF-1.4"), 0o644))
	dirPDF := filepath.Join(dir, "folder.pdf")
	require.NoError(t, os.Mkdir(dirPDF, 0o755))

	tests := []struct {
		name     string
		src      string
		wantKind Kind
	}{
		{name: "missing", src: filepath.Join(dir, "missing.pdf"), wantKind: KindSourceNotFound},
		{name: "missing non-pdf", src: filepath.Join(dir, "missing.doc"), wantKind: KindSourceNotFound},
		{name: "directory", src: dirPDF, wantKind: KindSourceNotFound},
		{name: "pdf bytes with txt extension", src: notPDF, wantKind: KindInvalidSourceType},
		{name: "no extension", src: noExt, wantKind: KindInvalidSourceType},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := textEngines("text")
			dst := filepath.Join(dir, tt.name+".out")

			res := e.pipeline().Convert(context.Background(), request(tt.src, dst, types.OutputText, types.OCRAuto))

			assert.False(t, res.OK)
			assert.Equal(t, string(tt.wantKind), res.Kind)
			assert.NotEmpty(t, res.Message)
			assert.Zero(t, e.ext.calls, "no extraction on precondition failure")
			assert.NoFileExists(t, dst)
		})
	}
}

func TestConvert_ExtensionCaseInsensitive(t *testing.T) {
	dir := t.TempDir()
	src := writeSource(t, dir, "UPPER.PDF")

	res := textEngines("x").pipeline().Convert(context.Background(), request(src, "", types.OutputText, types.OCRAuto))

	require.True(t, res.OK, res.Message)
	assert.Equal(t, filepath.Join(dir, "UPPER.txt"), res.OutputPath)
}

func TestConvert_TextOutputFormat(t *testing.T) {
	src := writeSource(t, t.TempDir(), "ab.pdf")

	res := textEngines("A", "B").pipeline().Convert(context.Background(), request(src, "", types.OutputText, types.OCRAuto))
	require.True(t, res.OK, res.Message)

	got, err := os.ReadFile(res.OutputPath)
	require.NoError(t, err)
	assert.Equal(t, "A\nB\n", string(got))
}

func TestConvert_DocumentOutput(t *testing.T) {
	dir := t.TempDir()
	src := writeSource(t, dir, "ab.pdf")

	res := textEngines("A", "B").pipeline().Convert(context.Background(), request(src, "", types.OutputDocument, types.OCRAuto))
	require.True(t, res.OK, res.Message)
	assert.Equal(t, filepath.Join(dir, "ab.docx"), res.OutputPath)

	sum, err := docx.ReadFile(res.OutputPath)
	require.NoError(t, err)
	require.Len(t, sum.Paragraphs, 2)
	assert.Equal(t, "A", sum.Paragraphs[0].Text)
	assert.Equal(t, "B", sum.Paragraphs[1].Text)
	assert.Equal(t, 1, sum.PageBreaks)
	assert.Equal(t, 1, sum.Paragraphs[0].PageBreaks)
	assert.Zero(t, sum.Paragraphs[1].PageBreaks)
	assert.Equal(t, "Arial", sum.FontFamily)
	assert.Equal(t, 11, sum.FontSize)
}

func TestConvert_DocumentStyleOption(t *testing.T) {
	src := writeSource(t, t.TempDir(), "a.pdf")
	p := textEngines("A").pipeline(WithStyle(docx.Style{FontFamily: "Georgia", FontSize: 12}))

	res := p.Convert(context.Background(), request(src, "", types.OutputDocument, types.OCRAuto))
	require.True(t, res.OK, res.Message)

	sum, err := docx.ReadFile(res.OutputPath)
	require.NoError(t, err)
	assert.Equal(t, "Georgia", sum.FontFamily)
	assert.Equal(t, 12, sum.FontSize)
}

func TestConvert_Idempotent(t *testing.T) {
	for _, kind := range []types.OutputKind{types.OutputText, types.OutputDocument} {
		t.Run(string(kind), func(t *testing.T) {
			src := writeSource(t, t.TempDir(), "same.pdf")
			p := textEngines("Página 1", "Página 2").pipeline()
			req := request(src, "", kind, types.OCRAuto)

			require.True(t, p.Convert(context.Background(), req).OK)
			first, err := os.ReadFile(req.Destination)
			require.NoError(t, err)

			require.True(t, p.Convert(context.Background(), req).OK)
			second, err := os.ReadFile(req.Destination)
			require.NoError(t, err)

			assert.True(t, bytes.Equal(first, second), "second run must reproduce the first byte for byte")
		})
	}
}

func TestConvert_MissingDependencies(t *testing.T) {
	tests := []struct {
		name     string
		setup    func(e engines)
		wantKind Kind
	}{
		{
			name: "ocr engine absent",
			setup: func(e engines) {
				e.rec.unavailable = fmt.Errorf("%w: tesseract not found", toolchain.ErrOCRUnavailable)
			},
			wantKind: KindOCRUnavailable,
		},
		{
			name: "language data absent",
			setup: func(e engines) {
				e.rec.unavailable = fmt.Errorf("%w: por.traineddata", toolchain.ErrLanguageMissing)
			},
			wantKind: KindOCRLanguageMissing,
		},
		{
			name: "rasterizer absent",
			setup: func(e engines) {
				e.ras.unavailable = fmt.Errorf("%w: pdftoppm", toolchain.ErrRasterizerUnavailable)
			},
			wantKind: KindRasterizerUnavailable,
		},
		{
			name: "engine checked before rasterizer",
			setup: func(e engines) {
				e.rec.unavailable = toolchain.ErrOCRUnavailable
				e.ras.unavailable = toolchain.ErrRasterizerUnavailable
			},
			wantKind: KindOCRUnavailable,
		},
	}
	for _, tt := range tests {
		for _, mode := range []types.OCRMode{types.OCRForced, types.OCRAuto} {
			t.Run(tt.name+"/"+string(mode), func(t *testing.T) {
				dir := t.TempDir()
				src := writeSource(t, dir, "scan.pdf")
				dst := filepath.Join(dir, "scan.docx")
				e := scanEngines("unreachable")
				tt.setup(e)

				res := e.pipeline().Convert(context.Background(), request(src, dst, types.OutputDocument, mode))

				assert.False(t, res.OK)
				assert.Equal(t, string(tt.wantKind), res.Kind)
				assert.Zero(t, e.ras.calls)
				assert.Zero(t, e.rec.calls)
				assert.NoFileExists(t, dst)
				assertNoTempFiles(t, dir)
			})
		}
	}
}

func TestConvert_FailureLeavesPriorOutput(t *testing.T) {
	tests := []struct {
		name  string
		setup func(e engines)
	}{
		{name: "extractor error", setup: func(e engines) { e.ext.err = errors.New("corrupt xref") }},
		{name: "ocr unavailable", setup: func(e engines) {
			e.ext.pages = types.PageText{""}
			e.rec.unavailable = toolchain.ErrOCRUnavailable
		}},
		{name: "page failure", setup: func(e engines) {
			e.ext.pages = types.PageText{""}
			e.rec.failOn = 1
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			src := writeSource(t, dir, "doc.pdf")
			dst := filepath.Join(dir, "doc.txt")
			require.NoError(t, os.WriteFile(dst, []byte("previous run"), 0o644))

			e := textEngines("new text")
			tt.setup(e)
			res := e.pipeline().Convert(context.Background(), request(src, dst, types.OutputText, types.OCRAuto))

			assert.False(t, res.OK)
			got, err := os.ReadFile(dst)
			require.NoError(t, err)
			assert.Equal(t, "previous run", string(got))
			assertNoTempFiles(t, dir)
		})
	}
}

func TestConvert_ExtractorErrorIsExtractionFailure(t *testing.T) {
	src := writeSource(t, t.TempDir(), "bad.pdf")
	e := textEngines()
	e.ext.err = errors.New("malformed PDF")

	res := e.pipeline().Convert(context.Background(), request(src, "", types.OutputText, types.OCRAuto))

	assert.False(t, res.OK)
	assert.Equal(t, string(KindExtractionFailure), res.Kind)
	assert.Contains(t, res.Message, "malformed PDF")
	assert.Zero(t, e.rec.calls, "library errors do not trigger OCR")
}

func TestConvert_PageFailureFailsRequest(t *testing.T) {
	tmp := t.TempDir()
	src := writeSource(t, t.TempDir(), "scan.pdf")
	e := scanEngines("one", "two", "three")
	e.rec.failOn = 2

	res := e.pipeline(WithTempDir(tmp)).Convert(context.Background(), request(src, "", types.OutputText, types.OCRAuto))

	assert.False(t, res.OK)
	assert.Equal(t, string(KindExtractionFailure), res.Kind)
	assert.Contains(t, res.Message, "page 2")
	assert.Equal(t, 2, e.rec.calls, "no pages after the failing one")
	assert.NoFileExists(t, types.DefaultDestination(src, types.OutputText))
	assertEmptyDir(t, tmp)
}

func TestConvert_RasterizeError(t *testing.T) {
	src := writeSource(t, t.TempDir(), "scan.pdf")
	e := scanEngines("x")
	e.ras.err = errors.New("pdftoppm: exit status 1")

	res := e.pipeline().Convert(context.Background(), request(src, "", types.OutputText, types.OCRForced))

	assert.False(t, res.OK)
	assert.Equal(t, string(KindExtractionFailure), res.Kind)
	assert.Zero(t, e.rec.calls)
}

func TestConvert_EmptyOCRResult(t *testing.T) {
	src := writeSource(t, t.TempDir(), "blank.pdf")
	e := scanEngines("", " ")

	res := e.pipeline().Convert(context.Background(), request(src, "", types.OutputText, types.OCRAuto))

	assert.False(t, res.OK)
	assert.Equal(t, string(KindExtractionFailure), res.Kind)
	assert.Equal(t, types.MethodOCR, res.Method)
	assert.NoFileExists(t, types.DefaultDestination(src, types.OutputText))
}

func TestConvert_PageImagesInOrderAndCleanedUp(t *testing.T) {
	tmp := t.TempDir()
	src := writeSource(t, t.TempDir(), "scan.pdf")
	e := scanEngines("1", "2", "3")

	res := e.pipeline(WithTempDir(tmp)).Convert(context.Background(), request(src, "", types.OutputText, types.OCRAuto))
	require.True(t, res.OK, res.Message)

	require.Len(t, e.rec.images, 3)
	for i, img := range e.rec.images {
		assert.Equal(t, fmt.Sprintf("page-%d.png", i+1), filepath.Base(img))
		assert.Equal(t, e.ras.dir, filepath.Dir(img))
	}
	assert.NoDirExists(t, e.ras.dir)
	assertEmptyDir(t, tmp)
}

func TestConvert_LogsPageProgress(t *testing.T) {
	logger, hook := logtest.NewNullLogger()
	src := writeSource(t, t.TempDir(), "scan.pdf")
	e := scanEngines("a", "b")

	res := e.pipeline(WithLogger(logger)).Convert(context.Background(), request(src, "", types.OutputText, types.OCRAuto))
	require.True(t, res.OK, res.Message)

	var progress []string
	for _, entry := range hook.AllEntries() {
		if _, ok := entry.Data["page"]; ok {
			progress = append(progress, entry.Message)
			assert.Equal(t, 2, entry.Data["pages"])
			assert.Equal(t, src, entry.Data["source"])
		}
	}
	assert.Equal(t, []string{"processing page 1 of 2", "processing page 2 of 2"}, progress)
	assert.Equal(t, "conversion complete", hook.LastEntry().Message)
}

func TestConvert_LogsFailureKind(t *testing.T) {
	logger, hook := logtest.NewNullLogger()
	res := New(&stubExtractor{}, &stubRasterizer{}, &stubRecognizer{}, WithLogger(logger)).
		Convert(context.Background(), request("/nope/x.pdf", "", types.OutputText, types.OCRAuto))

	require.False(t, res.OK)
	entry := hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, logrus.ErrorLevel, entry.Level)
	assert.Equal(t, KindSourceNotFound, entry.Data["error_kind"])
}

func TestConvert_MissingDestinationDir(t *testing.T) {
	dir := t.TempDir()
	src := writeSource(t, dir, "a.pdf")
	dst := filepath.Join(dir, "no", "such", "dir", "a.txt")

	res := textEngines("A").pipeline().Convert(context.Background(), request(src, dst, types.OutputText, types.OCRAuto))

	assert.False(t, res.OK)
	assert.Equal(t, string(KindSerializationFailure), res.Kind)
	assert.NoFileExists(t, dst)
}

func TestConvert_UnsupportedKind(t *testing.T) {
	for _, kind := range []types.OutputKind{"rtf", "document", "DOCX"} {
		t.Run(string(kind), func(t *testing.T) {
			dir := t.TempDir()
			src := writeSource(t, dir, "a.pdf")
			dst := types.DestinationIn(dir, src, kind)
			e := scanEngines("ocr text")

			res := e.pipeline().Convert(context.Background(),
				types.NewConversionRequest(src, dst, kind, types.OCRAuto))

			assert.False(t, res.OK)
			assert.Equal(t, string(KindSerializationFailure), res.Kind)
			assert.Contains(t, res.Message, "unsupported output kind")
			assert.Zero(t, e.ext.calls, "extractor must not run for an unwritable kind")
			assert.Zero(t, e.rec.calls, "recognizer must not run for an unwritable kind")
			assert.NoFileExists(t, dst)
			assertNoTempFiles(t, dir)
		})
	}
}

func TestConvert_OCRModeIsCaseInsensitive(t *testing.T) {
	dir := t.TempDir()
	src := writeSource(t, dir, "report.pdf")
	e := textEngines("text layer")
	e.rec.texts = []string{"from ocr"}

	res := e.pipeline().Convert(context.Background(),
		request(src, "", types.OutputText, types.OCRMode("FORCED")))

	require.True(t, res.OK, res.Message)
	assert.Equal(t, types.MethodOCR, res.Method)
	assert.Zero(t, e.ext.calls, "forced OCR skips the text layer")
	assert.Equal(t, 1, e.rec.calls)

	e = textEngines("")
	res = e.pipeline().Convert(context.Background(),
		request(src, "", types.OutputText, types.OCRMode(" Disabled ")))
	assert.False(t, res.OK)
	assert.Equal(t, string(KindExtractionFailure), res.Kind)
	assert.Zero(t, e.rec.calls, "disabled OCR never recognizes")
}

func TestConvert_InvalidOCRMode(t *testing.T) {
	dir := t.TempDir()
	src := writeSource(t, dir, "report.pdf")
	e := textEngines("A")

	res := e.pipeline().Convert(context.Background(),
		request(src, "", types.OutputText, types.OCRMode("sometimes")))

	assert.False(t, res.OK)
	assert.Equal(t, string(KindExtractionFailure), res.Kind)
	assert.Contains(t, res.Message, "invalid OCR mode")
	assert.Zero(t, e.ext.calls)
	assert.NoFileExists(t, filepath.Join(dir, "report.txt"))
}

func TestConvert_ZeroValueRequestDefaults(t *testing.T) {
	dir := t.TempDir()
	src := writeSource(t, dir, "plain.pdf")

	res := textEngines("A").pipeline().Convert(context.Background(), types.ConversionRequest{Source: src})

	require.True(t, res.OK, res.Message)
	assert.Equal(t, filepath.Join(dir, "plain.txt"), res.OutputPath)
}

func TestConvert_Cancelled(t *testing.T) {
	src := writeSource(t, t.TempDir(), "scan.pdf")
	e := scanEngines("a", "b")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res := e.pipeline().Convert(ctx, request(src, "", types.OutputText, types.OCRForced))

	assert.False(t, res.OK)
	assert.Equal(t, string(KindExtractionFailure), res.Kind)
	assert.Zero(t, e.rec.calls)
}

func TestConvertToTextAndDocument(t *testing.T) {
	dir := t.TempDir()
	src := writeSource(t, dir, "in.pdf")
	e := scanEngines("from ocr")
	e.ext.pages = types.PageText{"from text layer"}
	p := e.pipeline()

	ok, msg := p.ConvertToText(context.Background(), src, filepath.Join(dir, "out.txt"), false)
	require.True(t, ok, msg)
	assert.Equal(t, filepath.Join(dir, "out.txt"), msg)
	got, err := os.ReadFile(msg)
	require.NoError(t, err)
	assert.Equal(t, "from text layer\n", string(got))

	ok, msg = p.ConvertToDocument(context.Background(), src, filepath.Join(dir, "out.docx"), true)
	require.True(t, ok, msg)
	paras, err := docx.ReadParagraphs(msg)
	require.NoError(t, err)
	require.Len(t, paras, 1)
	assert.Equal(t, "from ocr", paras[0].Text)

	ok, msg = p.ConvertToText(context.Background(), filepath.Join(dir, "gone.pdf"), "", false)
	assert.False(t, ok)
	assert.Contains(t, msg, "source not found")
}

func TestKindOf(t *testing.T) {
	err := fmt.Errorf("outer: %w", newError(KindOCRLanguageMissing, "missing", nil))
	assert.Equal(t, KindOCRLanguageMissing, KindOf(err))
	assert.Equal(t, KindExtractionFailure, KindOf(errors.New("plain")))

	wrapped := newError(KindOCRUnavailable, "ocr", toolchain.ErrOCRUnavailable)
	assert.ErrorIs(t, wrapped, toolchain.ErrOCRUnavailable)
	assert.Equal(t, "ocr: OCR engine not found", wrapped.Error())
}

func assertNoTempFiles(t *testing.T, dir string) {
	t.Helper()
	matches, err := filepath.Glob(filepath.Join(dir, ".*.tmp"))
	require.NoError(t, err)
	assert.Empty(t, matches, "temporary output files left behind")
}

func assertEmptyDir(t *testing.T, dir string) {
	t.Helper()
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}
