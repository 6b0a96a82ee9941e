package pdfkit

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/tsawler/pdfkit/pages"
	"github.com/tsawler/pdfkit/reader"
)

var errDelegate = errors.New("delegate exploded")

// fakeDecoder returns a fixed result and counts calls.
type fakeDecoder struct {
	res   *reader.Result
	err   error
	calls int
}

func (f *fakeDecoder) Decode(data []byte) (*reader.Result, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	res := *f.res
	return &res, nil
}

// fakeEditor records Collect calls and writes a marker instead of a PDF.
type fakeEditor struct {
	count      int
	countErr   error
	collectErr error
	collected  [][]int
	images     []pages.Image
	imagesErr  error
	calls      int
}

const collectedMarker = "collected"

func (f *fakeEditor) PageCount(data []byte) (int, error) {
	f.calls++
	return f.count, f.countErr
}

func (f *fakeEditor) Collect(data []byte, pageNumbers []int, w io.Writer) error {
	f.calls++
	if f.collectErr != nil {
		return f.collectErr
	}
	f.collected = append(f.collected, append([]int(nil), pageNumbers...))
	_, err := io.WriteString(w, collectedMarker)
	return err
}

func (f *fakeEditor) Images(data []byte) ([]pages.Image, error) {
	f.calls++
	return f.images, f.imagesErr
}

// fakeRecognizer returns each image's bytes as its text.
type fakeRecognizer struct {
	lang   string
	err    error
	closed bool
}

func (f *fakeRecognizer) SetLanguage(lang string) error {
	f.lang = lang
	return nil
}

func (f *fakeRecognizer) RecognizeImage(data []byte) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return string(data), nil
}

func (f *fakeRecognizer) Close() error {
	f.closed = true
	return nil
}

// newTestKit returns a Kit wired to fakes. The decoder yields text and
// pageCount, the editor reports pageCount.
func newTestKit(text string, pageCount int) (*Kit, *fakeDecoder, *fakeEditor) {
	dec := &fakeDecoder{res: &reader.Result{Text: text, NumPages: pageCount}}
	ed := &fakeEditor{count: pageCount}
	kit := New().WithTextDecoder(dec).WithPageEditor(ed)
	return kit, dec, ed
}

// observedKit attaches an in-memory logger to kit.
func observedKit(kit *Kit) (*Kit, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.DebugLevel)
	return kit.WithLogger(zap.New(core)), logs
}

// writeFile creates name in a temp dir with the given content.
func writeFile(t *testing.T, name string, content []byte) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, content, 0o644); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
	return path
}

// writeFakePDF creates a file the fakes accept; its content is never parsed.
func writeFakePDF(t *testing.T) string {
	t.Helper()
	return writeFile(t, "input.pdf", []byte("%PDF-1.4\n%fake\n"))
}

// assertErrorType fails unless err is an *Error of the wanted type.
func assertErrorType(t *testing.T, err error, want ErrorType) {
	t.Helper()

	if err == nil {
		t.Fatalf("expected %s error, got nil", want)
	}
	var pe *Error
	if !errors.As(err, &pe) {
		t.Fatalf("expected *Error, got %T: %v", err, err)
	}
	if pe.Type != want {
		t.Fatalf("error type = %s, want %s (message: %s)", pe.Type, want, pe.Message)
	}
}
