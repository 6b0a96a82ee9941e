package pdfkit

import (
	"bytes"
	"os"

	"go.uber.org/zap"

	"github.com/tsawler/pdfkit/core"
)

// PageCount returns the number of pages reported by the text decoder.
//
// Errors: FileNotFound, InvalidFileType, PageCountError.
func (k *Kit) PageCount(path string) (int, error) {
	res, err := k.decode(path, false)
	if err != nil {
		return 0, wrapError(PageCountError, "failed to get page count", err)
	}
	return res.NumPages, nil
}

// ExtractPages writes to outputPath a new PDF holding the requested pages of
// inputPath, in the requested order. Page numbers are 1-based and may repeat:
// [3, 1, 3] produces a three-page document.
//
// Numbers outside 1..pageCount are skipped with a warning, unless the Kit is
// configured with StrictPages. If no number is in range the output is a valid
// document with zero pages.
//
// Errors: FileNotFound, InvalidFileType, InvalidOutputPath,
// InvalidPageNumbers, ExtractPagesError.
func (k *Kit) ExtractPages(inputPath, outputPath string, pageNumbers []int) error {
	if err := validatePDF(inputPath); err != nil {
		return err
	}
	if outputPath == "" {
		return newError(InvalidOutputPath, "output path must be a non-empty string")
	}
	if len(pageNumbers) == 0 {
		return newError(InvalidPageNumbers, "page numbers must be a non-empty list")
	}

	data, err := os.ReadFile(inputPath)
	if err != nil {
		return wrapError(ExtractPagesError, "failed to extract pages", err)
	}

	pageCount, err := k.editor.PageCount(data)
	if err != nil {
		return wrapError(ExtractPagesError, "failed to extract pages", err)
	}

	selected, err := k.selectPages(inputPath, pageNumbers, pageCount)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if len(selected) == 0 {
		k.logger.Warn("no requested page in range, writing empty document",
			zap.String("file", inputPath),
			zap.String("output", outputPath))
		_, err = core.NewDocument().WriteTo(&buf)
	} else {
		err = k.editor.Collect(data, selected, &buf)
	}
	if err != nil {
		return wrapError(ExtractPagesError, "failed to extract pages", err)
	}

	if err := os.WriteFile(outputPath, buf.Bytes(), 0o644); err != nil {
		return wrapError(ExtractPagesError, "failed to extract pages", err)
	}

	k.logger.Debug("extracted pages",
		zap.String("file", inputPath),
		zap.String("output", outputPath),
		zap.Ints("pages", selected))
	return nil
}

// selectPages keeps the page numbers within 1..pageCount, preserving order and
// duplicates.
func (k *Kit) selectPages(path string, pageNumbers []int, pageCount int) ([]int, error) {
	selected := make([]int, 0, len(pageNumbers))
	for _, p := range pageNumbers {
		if p >= 1 && p <= pageCount {
			selected = append(selected, p)
			continue
		}

		if k.options.strictPages {
			return nil, newError(InvalidPageNumbers, "page %d out of range (1-%d)", p, pageCount)
		}
		k.logger.Warn("page number out of range, skipping",
			zap.String("file", path),
			zap.Int("page", p),
			zap.Int("pageCount", pageCount))
	}
	return selected, nil
}
