package pdfkit

import (
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/tsawler/pdfkit/ocr"
	"github.com/tsawler/pdfkit/pages"
	"github.com/tsawler/pdfkit/reader"
)

// Kit runs pdfkit operations with a particular configuration.
// Each configuration method returns a new Kit instance, making it
// safe for concurrent use and allowing method chaining.
type Kit struct {
	// Delegates
	decoder reader.Decoder
	editor  pages.Editor

	logger *zap.Logger

	// Configuration
	options kitOptions

	newRecognizer func() (recognizer, error)
}

// recognizer is the subset of *ocr.Client used by the OCR fallback.
type recognizer interface {
	SetLanguage(lang string) error
	RecognizeImage(imageData []byte) (string, error)
	Close() error
}

// New returns a Kit decoding text with ledongthuc/pdf, editing pages with
// pdfcpu and discarding log output.
func New() *Kit {
	return &Kit{
		decoder:       reader.NewLedongthuc(),
		editor:        pages.NewPDFCPU(),
		logger:        zap.NewNop(),
		options:       defaultOptions(),
		newRecognizer: newOCRClient,
	}
}

// clone creates a shallow copy of the Kit with a copy of options.
func (k *Kit) clone() *Kit {
	return &Kit{
		decoder:       k.decoder,
		editor:        k.editor,
		logger:        k.logger,
		options:       k.options.clone(),
		newRecognizer: k.newRecognizer,
	}
}

// ============================================================================
// Configuration Methods (return new Kit instance)
// ============================================================================

// WithLogger sets the logger used for warnings such as skipped page numbers.
// A nil logger discards output.
//
// Example:
//
//	logger, _ := zap.NewProduction()
//	kit := pdfkit.New().WithLogger(logger)
func (k *Kit) WithLogger(logger *zap.Logger) *Kit {
	newKit := k.clone()
	if logger == nil {
		logger = zap.NewNop()
	}
	newKit.logger = logger
	return newKit
}

// WithTextDecoder replaces the text decoding library.
func (k *Kit) WithTextDecoder(d reader.Decoder) *Kit {
	newKit := k.clone()
	newKit.decoder = d
	return newKit
}

// WithPageEditor replaces the page manipulation library.
func (k *Kit) WithPageEditor(e pages.Editor) *Kit {
	newKit := k.clone()
	newKit.editor = e
	return newKit
}

// WithOCR enables OCR for documents whose text layer is blank, as produced
// by scanners. Page images are recognized with Tesseract in the given
// language ("eng" when empty). Requires a build with -tags ocr; otherwise
// text operations on such documents fail with ParseError.
//
// Example:
//
//	lines, err := pdfkit.New().WithOCR("eng+deu").IntoArray("scan.pdf")
func (k *Kit) WithOCR(language string) *Kit {
	newKit := k.clone()
	if language == "" {
		language = ocr.DefaultLanguage
	}
	newKit.options.ocr = true
	newKit.options.ocrLanguage = language
	return newKit
}

// StrictPages makes ExtractPages fail with InvalidPageNumbers when a page
// number is out of range, instead of skipping it with a warning.
func (k *Kit) StrictPages() *Kit {
	newKit := k.clone()
	newKit.options.strictPages = true
	return newKit
}

// ============================================================================
// Internal helpers
// ============================================================================

// decode validates path, reads it and runs the text decoder. With useOCR set
// and OCR enabled, a blank text layer is replaced by recognized text.
// Validation errors are returned as *Error; everything else is a plain error
// for the caller to tag.
func (k *Kit) decode(path string, useOCR bool) (*reader.Result, error) {
	if err := validatePDF(path); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	res, err := k.decoder.Decode(data)
	if err != nil {
		return nil, err
	}

	if useOCR && k.options.ocr && res.NumPages > 0 && strings.TrimSpace(res.Text) == "" {
		text, err := k.recognize(data)
		if err != nil {
			return nil, fmt.Errorf("OCR fallback: %w", err)
		}
		k.logger.Debug("text layer empty, used OCR",
			zap.String("file", path),
			zap.Int("chars", len(text)))

		withText := *res
		withText.Text = text
		res = &withText
	}

	return res, nil
}
