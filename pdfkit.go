// Package pdfkit reads text from PDF files and builds new PDFs from a
// selection of their pages.
//
// Text decoding is delegated to github.com/ledongthuc/pdf and page
// manipulation to github.com/pdfcpu/pdfcpu; pdfkit validates inputs, reshapes
// results and reports every failure as an *Error tagged with an ErrorType.
//
// Basic usage:
//
//	lines, err := pdfkit.IntoArray("document.pdf")
//	if err != nil {
//	    // handle error
//	}
//
//	matches, err := pdfkit.SearchText("document.pdf", "invoice", pdfkit.SearchOptions{})
//
//	err = pdfkit.ExtractPages("document.pdf", "summary.pdf", []int{3, 1, 3})
//
// With configuration:
//
//	kit := pdfkit.New().
//	    WithLogger(logger).
//	    StrictPages()
//	err := kit.ExtractPages("in.pdf", "out.pdf", []int{1, 2})
//
// The package-level functions use a Kit with default settings.
package pdfkit

import "sync"

var (
	defaultKitOnce sync.Once
	defaultKitInst *Kit
)

// defaultKit returns the Kit behind the package-level functions. It is
// created on first use so importing pdfkit has no side effects.
func defaultKit() *Kit {
	defaultKitOnce.Do(func() {
		defaultKitInst = New()
	})
	return defaultKitInst
}

// IntoArray returns the document's text split into lines.
// See Kit.IntoArray.
func IntoArray(path string) ([]string, error) {
	return defaultKit().IntoArray(path)
}

// PageCount returns the number of pages in the document.
// See Kit.PageCount.
func PageCount(path string) (int, error) {
	return defaultKit().PageCount(path)
}

// SearchText returns the lines containing term.
// See Kit.SearchText.
func SearchText(path, term string, opts SearchOptions) ([]string, error) {
	return defaultKit().SearchText(path, term, opts)
}

// ExtractPages writes a new PDF made of the given pages.
// See Kit.ExtractPages.
func ExtractPages(inputPath, outputPath string, pageNumbers []int) error {
	return defaultKit().ExtractPages(inputPath, outputPath, pageNumbers)
}

// GetMetadata returns page count, text and file name of the document.
// See Kit.GetMetadata.
func GetMetadata(path string) (*Metadata, error) {
	return defaultKit().GetMetadata(path)
}

// ConvertToText returns the document's text, or writes it to outputPath.
// See Kit.ConvertToText.
func ConvertToText(inputPath, outputPath string) (string, error) {
	return defaultKit().ConvertToText(inputPath, outputPath)
}

// Must is a helper that wraps a call to a function returning (T, error)
// and panics if the error is non-nil. It is intended for use in scripts
// or tests where error handling would be cumbersome.
//
// Example:
//
//	count := pdfkit.Must(pdfkit.PageCount("document.pdf"))
func Must[T any](val T, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}
