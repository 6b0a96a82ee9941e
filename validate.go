package pdfkit

import (
	"os"

	"github.com/tsawler/pdfkit/format"
)

// validatePDF checks that path names an existing regular file with a .pdf
// extension, in that order.
func validatePDF(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return &Error{Type: FileNotFound, Message: "file not found: " + path, Err: err}
	}
	if info.IsDir() {
		return newError(FileNotFound, "file not found: %s is a directory", path)
	}

	if format.Detect(path) != format.PDF {
		return newError(InvalidFileType, "invalid file type: %s is not a PDF", path)
	}
	return nil
}
