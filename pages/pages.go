package pages

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"sort"
	"strconv"
	"sync"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// ErrNoPages is returned by Collect when the selection is empty.
var ErrNoPages = errors.New("no pages selected")

// Image is an image resource found on a page.
type Image struct {
	PageNumber int
	Name       string
	// FileType is the extension pdfcpu derived from the image filter, e.g. "png", "jpg", "tif".
	FileType string
	Data     []byte
}

// Editor loads a document's page objects and builds new documents from them.
type Editor interface {
	// PageCount returns the number of pages in the document.
	PageCount(data []byte) (int, error)
	// Collect writes a new document made of the given pages, in the given
	// order. Numbers may repeat. All numbers must be in range.
	Collect(data []byte, pageNumbers []int, w io.Writer) error
	// Images returns the images of every page, in page order.
	Images(data []byte) ([]Image, error)
}

var disableConfigDir sync.Once

// PDFCPU implements Editor with pdfcpu's api package. pdfcpu mutates its
// configuration during a call, so each call gets a fresh one.
type PDFCPU struct{}

// Ensure PDFCPU implements Editor
var _ Editor = (*PDFCPU)(nil)

// NewPDFCPU returns an editor using relaxed validation, which tolerates the
// minor syntax errors common in real-world files. pdfcpu's on-disk
// configuration directory is disabled on first use.
func NewPDFCPU() *PDFCPU {
	disableConfigDir.Do(api.DisableConfigDir)
	return &PDFCPU{}
}

func (e *PDFCPU) config() *model.Configuration {
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	return conf
}

// PageCount returns the number of pages in the document.
func (e *PDFCPU) PageCount(data []byte) (int, error) {
	n, err := api.PageCount(bytes.NewReader(data), e.config())
	if err != nil {
		return 0, fmt.Errorf("failed to count pages: %w", err)
	}
	return n, nil
}

// Collect writes the selected pages, in order, to w.
func (e *PDFCPU) Collect(data []byte, pageNumbers []int, w io.Writer) error {
	if len(pageNumbers) == 0 {
		return ErrNoPages
	}

	selection := make([]string, len(pageNumbers))
	for i, n := range pageNumbers {
		if n < 1 {
			return fmt.Errorf("page %d out of range", n)
		}
		selection[i] = strconv.Itoa(n)
	}

	if err := api.Collect(bytes.NewReader(data), w, selection, e.config()); err != nil {
		return fmt.Errorf("failed to collect pages: %w", err)
	}
	return nil
}

// Images returns every image resource on every page.
func (e *PDFCPU) Images(data []byte) ([]Image, error) {
	var images []Image

	digest := func(img model.Image, singleImgPerPage bool, maxPageDigits int) error {
		b, err := io.ReadAll(img)
		if err != nil {
			return fmt.Errorf("reading image %s on page %d: %w", img.Name, img.PageNr, err)
		}
		images = append(images, Image{
			PageNumber: img.PageNr,
			Name:       img.Name,
			FileType:   img.FileType,
			Data:       b,
		})
		return nil
	}

	if err := api.ExtractImages(bytes.NewReader(data), nil, digest, e.config()); err != nil {
		return nil, fmt.Errorf("failed to extract images: %w", err)
	}

	sort.SliceStable(images, func(i, j int) bool {
		return images[i].PageNumber < images[j].PageNumber
	})
	return images, nil
}
