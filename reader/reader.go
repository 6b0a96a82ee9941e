package reader

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/tsawler/pdfkit/format"
)

// DefaultPageSeparator is placed between the text of consecutive pages.
const DefaultPageSeparator = "\n\n"

// ErrNotPDF is returned when the data does not start with a PDF header.
var ErrNotPDF = errors.New("not a PDF: missing %PDF- header")

// Info holds the document information dictionary entries pdfkit reports.
type Info struct {
	Title    string `json:"title,omitempty"`
	Author   string `json:"author,omitempty"`
	Subject  string `json:"subject,omitempty"`
	Creator  string `json:"creator,omitempty"`
	Producer string `json:"producer,omitempty"`
}

// IsZero reports whether no entry is set.
func (i Info) IsZero() bool {
	return i == Info{}
}

// Result is the decoded content of a document.
type Result struct {
	Text     string
	NumPages int
	Info     Info
}

// Decoder turns raw PDF bytes into text and a page count.
type Decoder interface {
	Decode(data []byte) (*Result, error)
}

// DecoderFunc adapts an ordinary function to the Decoder interface.
type DecoderFunc func(data []byte) (*Result, error)

// Decode calls f(data).
func (f DecoderFunc) Decode(data []byte) (*Result, error) {
	return f(data)
}

// Ledongthuc implements Decoder using github.com/ledongthuc/pdf.
// It is stateless and safe for concurrent use.
type Ledongthuc struct {
	// PageSeparator is inserted between page texts.
	PageSeparator string
}

// Ensure Ledongthuc implements Decoder
var _ Decoder = (*Ledongthuc)(nil)

// NewLedongthuc creates a decoder that separates pages with a blank line.
func NewLedongthuc() *Ledongthuc {
	return &Ledongthuc{PageSeparator: DefaultPageSeparator}
}

// Decode extracts the plain text of every page in order. Pages that cannot be
// resolved contribute an empty string but still count. Panics raised inside
// the PDF library on malformed input are returned as errors.
func (d *Ledongthuc) Decode(data []byte) (res *Result, err error) {
	if format.DetectFromMagic(data) != format.PDF {
		return nil, ErrNotPDF
	}

	defer func() {
		if r := recover(); r != nil {
			res = nil
			err = fmt.Errorf("malformed PDF: %v", r)
		}
	}()

	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("failed to open PDF: %w", err)
	}

	numPages := r.NumPage()
	texts := make([]string, 0, numPages)
	for i := 1; i <= numPages; i++ {
		p := r.Page(i)
		if p.V.IsNull() {
			texts = append(texts, "")
			continue
		}

		text, err := p.GetPlainText(nil)
		if err != nil {
			return nil, fmt.Errorf("page %d: %w", i, err)
		}
		texts = append(texts, text)
	}

	return &Result{
		Text:     strings.Join(texts, d.PageSeparator),
		NumPages: numPages,
		Info:     readInfo(r.Trailer().Key("Info")),
	}, nil
}

// readInfo reads the Info dictionary. A missing dictionary yields a zero Info.
func readInfo(v pdf.Value) Info {
	return Info{
		Title:    v.Key("Title").Text(),
		Author:   v.Key("Author").Text(),
		Subject:  v.Key("Subject").Text(),
		Creator:  v.Key("Creator").Text(),
		Producer: v.Key("Producer").Text(),
	}
}
