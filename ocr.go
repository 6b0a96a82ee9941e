package pdfkit

import (
	"fmt"
	"strings"

	"github.com/tsawler/pdfkit/ocr"
	"github.com/tsawler/pdfkit/reader"
)

// newOCRClient adapts ocr.New to the recognizer interface without leaking a
// typed nil.
func newOCRClient() (recognizer, error) {
	c, err := ocr.New()
	if err != nil {
		return nil, err
	}
	return c, nil
}

// recognize runs OCR over every page image. Text of images on the same page
// is joined with "\n", pages with reader.DefaultPageSeparator.
func (k *Kit) recognize(data []byte) (string, error) {
	images, err := k.editor.Images(data)
	if err != nil {
		return "", err
	}
	if len(images) == 0 {
		return "", nil
	}

	client, err := k.newRecognizer()
	if err != nil {
		return "", err
	}
	defer client.Close()

	if err := client.SetLanguage(k.options.ocrLanguage); err != nil {
		return "", fmt.Errorf("setting OCR language %q: %w", k.options.ocrLanguage, err)
	}

	var pageTexts []string
	lastPage := -1
	for _, img := range images {
		text, err := client.RecognizeImage(img.Data)
		if err != nil {
			return "", fmt.Errorf("page %d image %s: %w", img.PageNumber, img.Name, err)
		}

		if img.PageNumber == lastPage {
			pageTexts[len(pageTexts)-1] += "\n" + text
			continue
		}
		pageTexts = append(pageTexts, text)
		lastPage = img.PageNumber
	}

	return strings.Join(pageTexts, reader.DefaultPageSeparator), nil
}
