package pdfkit

import (
	"path/filepath"
	"unicode/utf8"

	"github.com/tsawler/pdfkit/reader"
)

// Metadata describes a document. It is computed on every call.
type Metadata struct {
	TotalPages int    `json:"totalPages"`
	TotalText  string `json:"totalText"`
	// TextLength is the number of characters (Unicode code points) in TotalText.
	TextLength int    `json:"textLength"`
	Filename   string `json:"filename"`
	// Info holds the document information dictionary, nil when the document has none.
	Info *reader.Info `json:"info,omitempty"`
}

// GetMetadata decodes the document and reports its page count, full text,
// text length and base file name.
//
// Errors: FileNotFound, InvalidFileType, MetadataError.
func (k *Kit) GetMetadata(path string) (*Metadata, error) {
	res, err := k.decode(path, true)
	if err != nil {
		return nil, wrapError(MetadataError, "failed to get metadata", err)
	}

	md := &Metadata{
		TotalPages: res.NumPages,
		TotalText:  res.Text,
		TextLength: utf8.RuneCountInString(res.Text),
		Filename:   filepath.Base(path),
	}
	if !res.Info.IsZero() {
		info := res.Info
		md.Info = &info
	}
	return md, nil
}
