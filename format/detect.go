// Package format provides file format detection for the pdfkit library.
package format

import (
	"bytes"
	"path/filepath"
	"strings"
)

// Format represents a file format pdfkit reads or writes.
type Format int

const (
	// Unknown indicates an unrecognized format.
	Unknown Format = iota
	// PDF indicates a PDF document.
	PDF
	// Text indicates a plain text file, the output of text conversion.
	Text
)

// pdfMagic is the signature every PDF file begins with.
var pdfMagic = []byte("%PDF-")

// String returns the string representation of the format.
func (f Format) String() string {
	switch f {
	case PDF:
		return "PDF"
	case Text:
		return "Text"
	default:
		return "Unknown"
	}
}

// Extension returns the typical file extension for the format.
func (f Format) Extension() string {
	switch f {
	case PDF:
		return ".pdf"
	case Text:
		return ".txt"
	default:
		return ""
	}
}

// Detect determines file format from filename extension.
// The comparison is case-insensitive, so "REPORT.PDF" is a PDF.
func Detect(filename string) Format {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".pdf":
		return PDF
	case ".txt", ".text":
		return Text
	default:
		return Unknown
	}
}

// DetectFromMagic checks leading bytes to determine format.
// Only PDF has a signature; everything else is Unknown.
func DetectFromMagic(data []byte) Format {
	if bytes.HasPrefix(data, pdfMagic) {
		return PDF
	}
	return Unknown
}
