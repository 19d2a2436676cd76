// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package docx

import (
	"archive/zip"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Paragraph is one <w:p> read back from a document.
type Paragraph struct {
	// Text holds the paragraph text with <w:br/> as "\n" and <w:tab/> as "\t".
	Text string

	// PageBreaks counts <w:br w:type="page"/> elements in the paragraph.
	PageBreaks int
}

// Summary describes the structure of a document.
type Summary struct {
	Paragraphs []Paragraph
	PageBreaks int
	FontFamily string
	FontSize   int // points
}

// ReadFile opens a .docx file and summarizes its body and default style.
func ReadFile(path string) (Summary, error) {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return Summary{}, fmt.Errorf("opening %s: %w", path, err)
	}
	defer zr.Close()
	return read(&zr.Reader)
}

// ReadParagraphs returns the body paragraphs of the .docx file at path.
func ReadParagraphs(path string) ([]Paragraph, error) {
	s, err := ReadFile(path)
	if err != nil {
		return nil, err
	}
	return s.Paragraphs, nil
}

// Read summarizes a .docx package held in r.
func Read(r io.ReaderAt, size int64) (Summary, error) {
	zr, err := zip.NewReader(r, size)
	if err != nil {
		return Summary{}, fmt.Errorf("reading docx: %w", err)
	}
	return read(zr)
}

func read(zr *zip.Reader) (Summary, error) {
	var s Summary

	doc, err := openPart(zr, partDoc)
	if err != nil {
		return s, err
	}
	defer doc.Close()
	if s.Paragraphs, err = parseBody(doc); err != nil {
		return s, fmt.Errorf("parsing %s: %w", partDoc, err)
	}
	for _, p := range s.Paragraphs {
		s.PageBreaks += p.PageBreaks
	}

	st, err := openPart(zr, partStyles)
	if errors.Is(err, errNoPart) {
		return s, nil
	}
	if err != nil {
		return s, err
	}
	defer st.Close()
	if s.FontFamily, s.FontSize, err = parseDefaults(st); err != nil {
		return s, fmt.Errorf("parsing %s: %w", partStyles, err)
	}
	return s, nil
}

var errNoPart = errors.New("part not found")

func openPart(zr *zip.Reader, name string) (io.ReadCloser, error) {
	for _, f := range zr.File {
		if f.Name == name {
			return f.Open()
		}
	}
	return nil, fmt.Errorf("%s: %w", name, errNoPart)
}

func parseBody(r io.Reader) ([]Paragraph, error) {
	dec := xml.NewDecoder(r)
	var (
		paras []Paragraph
		cur   *Paragraph
		text  strings.Builder
		inT   bool
	)
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			return paras, nil
		}
		if err != nil {
			return nil, err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Space != nsMain {
				continue
			}
			switch t.Name.Local {
			case "p":
				cur = &Paragraph{}
				text.Reset()
			case "t":
				inT = true
			case "tab":
				if cur != nil {
					text.WriteByte('\t')
				}
			case "br":
				if cur == nil {
					continue
				}
				if attr(t, "type") == "page" {
					cur.PageBreaks++
				} else {
					text.WriteByte('\n')
				}
			}
		case xml.EndElement:
			if t.Name.Space != nsMain {
				continue
			}
			switch t.Name.Local {
			case "t":
				inT = false
			case "p":
				if cur != nil {
					cur.Text = text.String()
					paras = append(paras, *cur)
					cur = nil
				}
			}
		case xml.CharData:
			if inT && cur != nil {
				text.Write(t)
			}
		}
	}
}

// parseDefaults reads the font family and size from <w:docDefaults>.
func parseDefaults(r io.Reader) (string, int, error) {
	dec := xml.NewDecoder(r)
	var (
		family     string
		halfPoints int
		inDefaults bool
	)
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			return family, halfPoints / 2, nil
		}
		if err != nil {
			return "", 0, err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Space != nsMain {
				continue
			}
			switch t.Name.Local {
			case "docDefaults":
				inDefaults = true
			case "rFonts":
				if inDefaults && family == "" {
					family = attr(t, "ascii")
				}
			case "sz":
				if inDefaults && halfPoints == 0 {
					fmt.Sscan(attr(t, "val"), &halfPoints)
				}
			}
		case xml.EndElement:
			if t.Name.Space == nsMain && t.Name.Local == "docDefaults" {
				inDefaults = false
			}
		}
	}
}

func attr(el xml.StartElement, local string) string {
	for _, a := range el.Attr {
		if a.Name.Local == local {
			return a.Value
		}
	}
	return ""
}
