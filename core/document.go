package core

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/tsawler/pdfkit/internal/filters"
)

// Letter page size in points.
const (
	pageWidth  = 612
	pageHeight = 792
)

// Document lays out pages of plain text lines in Helvetica. It is
// deliberately simple: one font, one column, no wrapping.
type Document struct {
	info     Dict
	pages    [][]string
	compress bool
}

// NewDocument returns a Document with no pages. Writing it as-is yields a
// valid zero-page PDF.
func NewDocument() *Document {
	return &Document{info: make(Dict)}
}

// SetInfo sets an entry of the document information dictionary,
// e.g. SetInfo("Title", "Quarterly report").
func (d *Document) SetInfo(key, value string) {
	d.info[key] = String(value)
}

// AddPage appends a page showing each line on its own text line.
func (d *Document) AddPage(lines ...string) {
	d.pages = append(d.pages, append([]string(nil), lines...))
}

// Compress makes WriteTo store content streams Flate-compressed.
func (d *Document) Compress() {
	d.compress = true
}

// PageCount returns the number of pages added.
func (d *Document) PageCount() int {
	return len(d.pages)
}

// WriteTo serializes the document.
func (d *Document) WriteTo(out io.Writer) (int64, error) {
	w := NewWriter()

	catalog := w.Reserve()
	pageTree := w.Reserve()

	kids := make(Array, 0, len(d.pages))
	if len(d.pages) > 0 {
		font := w.Add(Dict{
			"Type":     Name("Font"),
			"Subtype":  Name("Type1"),
			"BaseFont": Name("Helvetica"),
			"Encoding": Name("WinAnsiEncoding"),
		})

		for _, lines := range d.pages {
			stream, err := d.newContentStream(lines)
			if err != nil {
				return 0, err
			}
			contents := w.Add(stream)
			page := w.Add(Dict{
				"Type":     Name("Page"),
				"Parent":   pageTree,
				"MediaBox": Array{Int(0), Int(0), Int(pageWidth), Int(pageHeight)},
				"Resources": Dict{
					"Font": Dict{"F1": font},
				},
				"Contents": contents,
			})
			kids = append(kids, page)
		}
	}

	if err := w.Set(pageTree, Dict{
		"Type":  Name("Pages"),
		"Kids":  kids,
		"Count": Int(len(kids)),
	}); err != nil {
		return 0, err
	}
	if err := w.Set(catalog, Dict{
		"Type":  Name("Catalog"),
		"Pages": pageTree,
	}); err != nil {
		return 0, err
	}
	w.SetRoot(catalog)

	if len(d.info) > 0 {
		w.SetInfo(w.Add(d.info))
	}

	return w.WriteTo(out)
}

// Bytes returns the serialized document.
func (d *Document) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	if _, err := d.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("writing document: %w", err)
	}
	return buf.Bytes(), nil
}

func (d *Document) newContentStream(lines []string) (*Stream, error) {
	data := contentStream(lines)
	if !d.compress {
		return &Stream{Dict: Dict{}, Data: data}, nil
	}

	encoded, err := filters.FlateEncode(data)
	if err != nil {
		return nil, fmt.Errorf("compressing content stream: %w", err)
	}
	return &Stream{Dict: Dict{"Filter": Name(filters.FlateName)}, Data: encoded}, nil
}

// contentStream renders lines top-down starting one inch from the top-left,
// 14pt leading, moving to the next line with T*.
func contentStream(lines []string) []byte {
	if len(lines) == 0 {
		return nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "BT\n/F1 12 Tf\n14 TL\n72 %d Td\n", pageHeight-72)
	for i, line := range lines {
		if i > 0 {
			b.WriteString("T*\n")
		}
		b.WriteString(String(line).String())
		b.WriteString(" Tj\n")
	}
	b.WriteString("ET")
	return []byte(b.String())
}
