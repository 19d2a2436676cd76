// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package docx writes minimal WordprocessingML (.docx) documents: one
// paragraph per page of text, separated by explicit page breaks, in a single
// default font. Output is deterministic; the same pages and style always
// produce the same bytes.
package docx

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/pdiddy/pdfconv/pkg/types"
)

// Style is the document-wide default run formatting.
type Style struct {
	FontFamily string
	FontSize   int // points
}

// DefaultStyle is Arial 11pt.
func DefaultStyle() Style {
	return Style{FontFamily: types.DefaultFontFamily, FontSize: types.DefaultFontSize}
}

// StyleFrom builds a Style from configuration, falling back to defaults for
// unset fields.
func StyleFrom(cfg types.DocumentConfig) Style {
	s := DefaultStyle()
	if cfg.FontFamily != "" {
		s.FontFamily = cfg.FontFamily
	}
	if cfg.FontSize > 0 {
		s.FontSize = cfg.FontSize
	}
	return s
}

const (
	nsMain     = "http://schemas.openxmlformats.org/wordprocessingml/2006/main"
	nsPkgRels  = "http://schemas.openxmlformats.org/package/2006/relationships"
	nsCTypes   = "http://schemas.openxmlformats.org/package/2006/content-types"
	relDoc     = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument"
	relStyles  = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/styles"
	xmlHeader  = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` + "\n"
	partDoc    = "word/document.xml"
	partStyles = "word/styles.xml"
)

// modTime is stamped on every zip entry.
var modTime = time.Date(1980, time.January, 1, 0, 0, 0, 0, time.UTC)

// Write encodes pages as a .docx package to w. Page i becomes paragraph i;
// every paragraph except the last ends with a page break. Line breaks inside
// a page become <w:br/> within the paragraph.
func Write(w io.Writer, pages types.PageText, style Style) error {
	if style.FontFamily == "" || style.FontSize <= 0 {
		return fmt.Errorf("invalid document style %+v", style)
	}

	parts := []struct {
		name string
		body []byte
	}{
		{"[Content_Types].xml", contentTypes()},
		{"_rels/.rels", packageRels()},
		{partDoc, document(pages)},
		{"word/_rels/document.xml.rels", documentRels()},
		{partStyles, styles(style)},
	}

	zw := zip.NewWriter(w)
	for _, p := range parts {
		fw, err := zw.CreateHeader(&zip.FileHeader{
			Name:     p.name,
			Method:   zip.Deflate,
			Modified: modTime,
		})
		if err != nil {
			return fmt.Errorf("adding %s: %w", p.name, err)
		}
		if _, err := fw.Write(p.body); err != nil {
			return fmt.Errorf("writing %s: %w", p.name, err)
		}
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("finishing docx: %w", err)
	}
	return nil
}

// WriteFile writes the document to path, replacing any existing file.
func WriteFile(path string, pages types.PageText, style Style) error {
	var buf bytes.Buffer
	if err := Write(&buf, pages, style); err != nil {
		return err
	}
	return os.WriteFile(path, buf.Bytes(), 0o644)
}

func document(pages types.PageText) []byte {
	var b bytes.Buffer
	b.WriteString(xmlHeader)
	fmt.Fprintf(&b, `<w:document xmlns:w="%s"><w:body>`, nsMain)
	for i, page := range pages {
		b.WriteString("<w:p>")
		writeRun(&b, sanitize(page))
		if i < len(pages)-1 {
			b.WriteString(`<w:r><w:br w:type="page"/></w:r>`)
		}
		b.WriteString("</w:p>")
	}
	// A4 with 1in margins.
	b.WriteString(`<w:sectPr><w:pgSz w:w="11906" w:h="16838"/>` +
		`<w:pgMar w:top="1440" w:right="1440" w:bottom="1440" w:left="1440" w:header="708" w:footer="708" w:gutter="0"/>` +
		`</w:sectPr></w:body></w:document>`)
	return b.Bytes()
}

// writeRun emits text as a single run. Newlines map to <w:br/> and tabs to
// <w:tab/>; carriage returns are dropped.
func writeRun(b *bytes.Buffer, text string) {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	if text == "" {
		return
	}

	b.WriteString("<w:r>")
	for i, line := range strings.Split(text, "\n") {
		if i > 0 {
			b.WriteString("<w:br/>")
		}
		for j, seg := range strings.Split(line, "\t") {
			if j > 0 {
				b.WriteString("<w:tab/>")
			}
			if seg == "" {
				continue
			}
			b.WriteString(`<w:t xml:space="preserve">`)
			escape(b, seg)
			b.WriteString("</w:t>")
		}
	}
	b.WriteString("</w:r>")
}

func styles(s Style) []byte {
	var font bytes.Buffer
	escape(&font, sanitize(s.FontFamily))
	f := font.String()
	halfPoints := s.FontSize * 2

	rPr := fmt.Sprintf(`<w:rPr><w:rFonts w:ascii="%s" w:hAnsi="%s" w:eastAsia="%s" w:cs="%s"/>`+
		`<w:sz w:val="%d"/><w:szCs w:val="%d"/></w:rPr>`, f, f, f, f, halfPoints, halfPoints)

	var b bytes.Buffer
	b.WriteString(xmlHeader)
	fmt.Fprintf(&b, `<w:styles xmlns:w="%s">`, nsMain)
	fmt.Fprintf(&b, `<w:docDefaults><w:rPrDefault>%s</w:rPrDefault><w:pPrDefault/></w:docDefaults>`, rPr)
	fmt.Fprintf(&b, `<w:style w:type="paragraph" w:default="1" w:styleId="Normal"><w:name w:val="Normal"/><w:qFormat/>%s</w:style>`, rPr)
	b.WriteString(`</w:styles>`)
	return b.Bytes()
}

func contentTypes() []byte {
	return []byte(xmlHeader + `<Types xmlns="` + nsCTypes + `">` +
		`<Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>` +
		`<Default Extension="xml" ContentType="application/xml"/>` +
		`<Override PartName="/` + partDoc + `" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/>` +
		`<Override PartName="/` + partStyles + `" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.styles+xml"/>` +
		`</Types>`)
}

func packageRels() []byte {
	return []byte(xmlHeader + `<Relationships xmlns="` + nsPkgRels + `">` +
		`<Relationship Id="rId1" Type="` + relDoc + `" Target="` + partDoc + `"/>` +
		`</Relationships>`)
}

func documentRels() []byte {
	return []byte(xmlHeader + `<Relationships xmlns="` + nsPkgRels + `">` +
		`<Relationship Id="rId1" Type="` + relStyles + `" Target="styles.xml"/>` +
		`</Relationships>`)
}

// sanitize replaces invalid UTF-8 and drops code points XML 1.0 cannot carry
// (C0 controls other than tab, newline and carriage return; U+FFFE; U+FFFF).
func sanitize(s string) string {
	s = strings.ToValidUTF8(s, string(utf8.RuneError))
	return strings.Map(func(r rune) rune {
		switch {
		case r == '\t', r == '\n', r == '\r':
			return r
		case r < 0x20, r == 0xFFFE, r == 0xFFFF:
			return -1
		}
		return r
	}, s)
}

func escape(b *bytes.Buffer, s string) {
	for _, r := range s {
		switch r {
		case '&':
			b.WriteString("&amp;")
		case '<':
			b.WriteString("&lt;")
		case '>':
			b.WriteString("&gt;")
		case '"':
			b.WriteString("&quot;")
		case '\'':
			b.WriteString("&apos;")
		default:
			b.WriteRune(r)
		}
	}
}
