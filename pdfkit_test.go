package pdfkit

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/tsawler/pdfkit/pages"
	"github.com/tsawler/pdfkit/reader"
)

// operations runs every public operation against path so validation can be
// checked uniformly.
var operations = []struct {
	name string
	run  func(k *Kit, path string) error
}{
	{"IntoArray", func(k *Kit, p string) error { _, err := k.IntoArray(p); return err }},
	{"PageCount", func(k *Kit, p string) error { _, err := k.PageCount(p); return err }},
	{"SearchText", func(k *Kit, p string) error { _, err := k.SearchText(p, "x", SearchOptions{}); return err }},
	{"ExtractPages", func(k *Kit, p string) error {
		return k.ExtractPages(p, filepath.Join(os.TempDir(), "never-written.pdf"), []int{1})
	}},
	{"GetMetadata", func(k *Kit, p string) error { _, err := k.GetMetadata(p); return err }},
	{"ConvertToText", func(k *Kit, p string) error { _, err := k.ConvertToText(p, ""); return err }},
}

func TestValidationFileNotFound(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "missing.pdf")

	for _, op := range operations {
		t.Run(op.name, func(t *testing.T) {
			kit, dec, ed := newTestKit("text", 1)
			assertErrorType(t, op.run(kit, missing), FileNotFound)
			if dec.calls != 0 || ed.calls != 0 {
				t.Error("delegates must not be called for a missing file")
			}
		})
	}
}

func TestValidationDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "folder.pdf")
	if err := os.Mkdir(dir, 0o755); err != nil {
		t.Fatal(err)
	}

	for _, op := range operations {
		t.Run(op.name, func(t *testing.T) {
			kit, _, _ := newTestKit("text", 1)
			assertErrorType(t, op.run(kit, dir), FileNotFound)
		})
	}
}

func TestValidationInvalidFileType(t *testing.T) {
	notPDF := writeFile(t, "notes.txt", []byte("%PDF-1.4 but named .txt"))

	for _, op := range operations {
		t.Run(op.name, func(t *testing.T) {
			kit, dec, ed := newTestKit("text", 1)
			assertErrorType(t, op.run(kit, notPDF), InvalidFileType)
			if dec.calls != 0 || ed.calls != 0 {
				t.Error("delegates must not be called for a non-PDF file")
			}
		})
	}
}

func TestValidationUppercaseExtension(t *testing.T) {
	path := writeFile(t, "REPORT.PDF", []byte("%PDF-1.4\n"))
	kit, _, _ := newTestKit("ok", 1)

	if _, err := kit.IntoArray(path); err != nil {
		t.Errorf("upper-case .PDF should be accepted: %v", err)
	}
}

func TestIntoArray(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{"three lines", "a\nb\nc", []string{"a", "b", "c"}},
		{"empty document", "", []string{""}},
		{"no newline", "single line", []string{"single line"}},
		{"trailing newline", "a\n", []string{"a", ""}},
		{"blank lines kept", "a\n\nb", []string{"a", "", "b"}},
	}

	path := writeFakePDF(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kit, _, _ := newTestKit(tt.text, 1)
			got, err := kit.IntoArray(path)
			if err != nil {
				t.Fatalf("IntoArray() error = %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("IntoArray() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestIntoArrayParseError(t *testing.T) {
	kit, dec, _ := newTestKit("", 0)
	dec.err = errDelegate

	_, err := kit.IntoArray(writeFakePDF(t))
	assertErrorType(t, err, ParseError)
	if !strings.Contains(err.Error(), errDelegate.Error()) {
		t.Errorf("message %q should include the cause", err.Error())
	}
	if !errors.Is(err, errDelegate) {
		t.Error("cause should be reachable with errors.Is")
	}
}

func TestPageCount(t *testing.T) {
	kit, _, _ := newTestKit("x", 7)

	got, err := kit.PageCount(writeFakePDF(t))
	if err != nil {
		t.Fatalf("PageCount() error = %v", err)
	}
	if got != 7 {
		t.Errorf("PageCount() = %d, want 7", got)
	}
}

func TestPageCountError(t *testing.T) {
	kit, dec, _ := newTestKit("", 0)
	dec.err = errDelegate

	_, err := kit.PageCount(writeFakePDF(t))
	assertErrorType(t, err, PageCountError)
}

func TestSearchText(t *testing.T) {
	text := "foo bar\nFOO\nnothing here\nfOo\nFoo exact"
	path := writeFakePDF(t)

	tests := []struct {
		name string
		term string
		opts SearchOptions
		want []string
	}{
		{"case insensitive", "Foo", SearchOptions{}, []string{"foo bar", "FOO", "fOo", "Foo exact"}},
		{"case sensitive", "Foo", SearchOptions{CaseSensitive: true}, []string{"Foo exact"}},
		{"no match", "zebra", SearchOptions{}, []string{}},
		{"substring", "her", SearchOptions{}, []string{"nothing here"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kit, _, _ := newTestKit(text, 1)
			got, err := kit.SearchText(path, tt.term, tt.opts)
			if err != nil {
				t.Fatalf("SearchText() error = %v", err)
			}
			if got == nil {
				t.Fatal("SearchText() returned nil, want empty slice")
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("SearchText() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSearchTextUnicode(t *testing.T) {
	// Line holds "é" decomposed as e + combining acute accent.
	text := "Cafe\u0301 CRÈME\nplain"
	kit, _, _ := newTestKit(text, 1)
	path := writeFakePDF(t)

	got, err := kit.SearchText(path, "café crème", SearchOptions{})
	if err != nil {
		t.Fatalf("SearchText() error = %v", err)
	}
	if len(got) != 1 || got[0] != "Cafe\u0301 CRÈME" {
		t.Errorf("SearchText() = %q, want the first line", got)
	}
}

func TestSearchTextInvalidTerm(t *testing.T) {
	kit, dec, _ := newTestKit("text", 1)

	// Checked before the path, even when the path is bad.
	for _, path := range []string{writeFakePDF(t), "/does/not/exist.pdf", "notes.txt"} {
		_, err := kit.SearchText(path, "", SearchOptions{})
		assertErrorType(t, err, InvalidSearchTerm)
	}
	if dec.calls != 0 {
		t.Error("decoder must not be called for an empty term")
	}
}

func TestSearchTextPropagatesParseError(t *testing.T) {
	kit, dec, _ := newTestKit("", 0)
	dec.err = errDelegate

	_, err := kit.SearchText(writeFakePDF(t), "x", SearchOptions{})
	assertErrorType(t, err, ParseError)
}

func TestExtractPages(t *testing.T) {
	in := writeFakePDF(t)
	out := filepath.Join(t.TempDir(), "out.pdf")
	kit, _, ed := newTestKit("", 5)
	kit, logs := observedKit(kit)

	if err := kit.ExtractPages(in, out, []int{2, 5, 2}); err != nil {
		t.Fatalf("ExtractPages() error = %v", err)
	}

	if len(ed.collected) != 1 || !reflect.DeepEqual(ed.collected[0], []int{2, 5, 2}) {
		t.Errorf("collected %v, want [[2 5 2]]", ed.collected)
	}
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("output not written: %v", err)
	}
	if string(data) != collectedMarker {
		t.Errorf("output = %q, want editor output", data)
	}
	if n := logs.FilterMessage("page number out of range, skipping").Len(); n != 0 {
		t.Errorf("%d warnings logged, want none", n)
	}
}

func TestExtractPagesOutOfRange(t *testing.T) {
	in := writeFakePDF(t)
	out := filepath.Join(t.TempDir(), "out.pdf")
	kit, _, ed := newTestKit("", 5)
	kit, logs := observedKit(kit)

	if err := kit.ExtractPages(in, out, []int{0, 6}); err != nil {
		t.Fatalf("ExtractPages() error = %v", err)
	}

	if len(ed.collected) != 0 {
		t.Errorf("Collect should not be called, got %v", ed.collected)
	}

	warnings := logs.FilterMessage("page number out of range, skipping").All()
	if len(warnings) != 2 {
		t.Fatalf("%d warnings logged, want 2", len(warnings))
	}
	if got := warnings[0].ContextMap()["page"]; got != int64(0) {
		t.Errorf("first warning page = %v, want 0", got)
	}
	if got := warnings[1].ContextMap()["pageCount"]; got != int64(5) {
		t.Errorf("second warning pageCount = %v, want 5", got)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("output not written: %v", err)
	}
	if !strings.HasPrefix(string(data), "%PDF-") || !strings.Contains(string(data), "/Count 0") {
		t.Errorf("output is not an empty PDF:\n%s", data)
	}
}

func TestExtractPagesMixedRange(t *testing.T) {
	in := writeFakePDF(t)
	out := filepath.Join(t.TempDir(), "out.pdf")
	kit, _, ed := newTestKit("", 3)

	if err := kit.ExtractPages(in, out, []int{4, 3, -1, 1}); err != nil {
		t.Fatalf("ExtractPages() error = %v", err)
	}
	if len(ed.collected) != 1 || !reflect.DeepEqual(ed.collected[0], []int{3, 1}) {
		t.Errorf("collected %v, want [[3 1]]", ed.collected)
	}
}

func TestExtractPagesStrict(t *testing.T) {
	in := writeFakePDF(t)
	out := filepath.Join(t.TempDir(), "out.pdf")
	kit, _, ed := newTestKit("", 5)
	kit = kit.StrictPages()

	err := kit.ExtractPages(in, out, []int{1, 6})
	assertErrorType(t, err, InvalidPageNumbers)
	if !strings.Contains(err.Error(), "page 6 out of range (1-5)") {
		t.Errorf("message = %q", err.Error())
	}
	if len(ed.collected) != 0 {
		t.Error("nothing should be collected")
	}
	if _, err := os.Stat(out); !os.IsNotExist(err) {
		t.Error("output should not be written")
	}
}

func TestExtractPagesInvalidArguments(t *testing.T) {
	in := writeFakePDF(t)
	out := filepath.Join(t.TempDir(), "out.pdf")

	tests := []struct {
		name  string
		in    string
		out   string
		pages []int
		want  ErrorType
	}{
		{"empty output", in, "", []int{1}, InvalidOutputPath},
		{"nil pages", in, out, nil, InvalidPageNumbers},
		{"empty pages", in, out, []int{}, InvalidPageNumbers},
		{"input checked first", "/missing.pdf", "", nil, FileNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kit, _, ed := newTestKit("", 5)
			assertErrorType(t, kit.ExtractPages(tt.in, tt.out, tt.pages), tt.want)
			if ed.calls != 0 {
				t.Error("editor must not be called")
			}
		})
	}
}

func TestExtractPagesDelegateErrors(t *testing.T) {
	in := writeFakePDF(t)
	out := filepath.Join(t.TempDir(), "out.pdf")

	t.Run("page count", func(t *testing.T) {
		kit, _, ed := newTestKit("", 5)
		ed.countErr = errDelegate
		assertErrorType(t, kit.ExtractPages(in, out, []int{1}), ExtractPagesError)
	})

	t.Run("collect", func(t *testing.T) {
		kit, _, ed := newTestKit("", 5)
		ed.collectErr = errDelegate
		err := kit.ExtractPages(in, out, []int{1})
		assertErrorType(t, err, ExtractPagesError)
		if !errors.Is(err, errDelegate) {
			t.Error("cause should be preserved")
		}
	})

	t.Run("write", func(t *testing.T) {
		kit, _, _ := newTestKit("", 5)
		badOut := filepath.Join(t.TempDir(), "missing-dir", "out.pdf")
		assertErrorType(t, kit.ExtractPages(in, badOut, []int{1}), ExtractPagesError)
	})
}

func TestGetMetadata(t *testing.T) {
	path := writeFakePDF(t)
	kit, dec, _ := newTestKit("héllo\nwörld", 2)
	dec.res.Info = reader.Info{Title: "Report", Author: "Ann"}

	md, err := kit.GetMetadata(path)
	if err != nil {
		t.Fatalf("GetMetadata() error = %v", err)
	}

	if md.TotalPages != 2 {
		t.Errorf("TotalPages = %d, want 2", md.TotalPages)
	}
	if md.TotalText != "héllo\nwörld" {
		t.Errorf("TotalText = %q", md.TotalText)
	}
	if md.TextLength != 11 {
		t.Errorf("TextLength = %d, want 11", md.TextLength)
	}
	if md.Filename != "input.pdf" {
		t.Errorf("Filename = %q, want input.pdf", md.Filename)
	}
	if md.Info == nil || md.Info.Title != "Report" || md.Info.Author != "Ann" {
		t.Errorf("Info = %+v", md.Info)
	}
}

func TestGetMetadataTextLengthInvariant(t *testing.T) {
	path := writeFakePDF(t)
	for _, text := range []string{"", "ascii", "日本語のテキスト", "mixed ü\n\n€"} {
		kit, _, _ := newTestKit(text, 1)
		md, err := kit.GetMetadata(path)
		if err != nil {
			t.Fatalf("GetMetadata() error = %v", err)
		}
		if md.TextLength != len([]rune(md.TotalText)) {
			t.Errorf("TextLength = %d, want %d for %q", md.TextLength, len([]rune(md.TotalText)), text)
		}
		if md.Info != nil {
			t.Errorf("Info = %+v, want nil when the document has none", md.Info)
		}
	}
}

func TestGetMetadataError(t *testing.T) {
	kit, dec, _ := newTestKit("", 0)
	dec.err = errDelegate

	_, err := kit.GetMetadata(writeFakePDF(t))
	assertErrorType(t, err, MetadataError)
}

func TestConvertToText(t *testing.T) {
	path := writeFakePDF(t)
	kit, _, _ := newTestKit("line one\nline two\n", 1)

	lines, err := kit.IntoArray(path)
	if err != nil {
		t.Fatalf("IntoArray() error = %v", err)
	}
	want := strings.Join(lines, "\n")

	got, err := kit.ConvertToText(path, "")
	if err != nil {
		t.Fatalf("ConvertToText() error = %v", err)
	}
	if got != want {
		t.Errorf("ConvertToText() = %q, want %q", got, want)
	}

	out := filepath.Join(t.TempDir(), "out.txt")
	got, err = kit.ConvertToText(path, out)
	if err != nil {
		t.Fatalf("ConvertToText(out) error = %v", err)
	}
	if got != "" {
		t.Errorf("ConvertToText(out) = %q, want empty string", got)
	}
	written, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("output not written: %v", err)
	}
	if string(written) != want {
		t.Errorf("written = %q, want %q", written, want)
	}
}

func TestConvertToTextErrors(t *testing.T) {
	path := writeFakePDF(t)

	t.Run("decoder failure keeps ParseError", func(t *testing.T) {
		kit, dec, _ := newTestKit("", 0)
		dec.err = errDelegate
		_, err := kit.ConvertToText(path, "")
		assertErrorType(t, err, ParseError)
	})

	t.Run("write failure", func(t *testing.T) {
		kit, _, _ := newTestKit("text", 1)
		out := filepath.Join(t.TempDir(), "missing-dir", "out.txt")
		_, err := kit.ConvertToText(path, out)
		assertErrorType(t, err, ConvertToTextError)
	})
}

func TestOCRFallback(t *testing.T) {
	path := writeFakePDF(t)
	kit, _, ed := newTestKit("  \n ", 2)
	ed.images = []pages.Image{
		{PageNumber: 1, Name: "Im0", Data: []byte("first")},
		{PageNumber: 1, Name: "Im1", Data: []byte("second")},
		{PageNumber: 2, Name: "Im0", Data: []byte("third")},
	}
	rec := &fakeRecognizer{}
	kit = kit.WithOCR("")
	kit.newRecognizer = func() (recognizer, error) { return rec, nil }

	got, err := kit.IntoArray(path)
	if err != nil {
		t.Fatalf("IntoArray() error = %v", err)
	}
	want := []string{"first", "second", "", "third"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("IntoArray() = %q, want %q", got, want)
	}
	if rec.lang != "eng" {
		t.Errorf("language = %q, want eng", rec.lang)
	}
	if !rec.closed {
		t.Error("recognizer should be closed")
	}

	// Page count never needs OCR.
	ed.calls = 0
	if _, err := kit.PageCount(path); err != nil {
		t.Fatalf("PageCount() error = %v", err)
	}
	if ed.calls != 0 {
		t.Error("PageCount should not extract images")
	}
}

func TestOCRNotUsedWithText(t *testing.T) {
	path := writeFakePDF(t)
	kit, _, ed := newTestKit("has text", 1)
	kit = kit.WithOCR("deu")
	kit.newRecognizer = func() (recognizer, error) {
		t.Fatal("recognizer should not be created")
		return nil, nil
	}

	if _, err := kit.IntoArray(path); err != nil {
		t.Fatalf("IntoArray() error = %v", err)
	}
	if ed.calls != 0 {
		t.Error("images should not be extracted when text exists")
	}
}

func TestOCRFailure(t *testing.T) {
	path := writeFakePDF(t)
	kit, _, ed := newTestKit("", 1)
	ed.images = []pages.Image{{PageNumber: 1, Name: "Im0", Data: []byte("x")}}
	kit = kit.WithOCR("eng")
	kit.newRecognizer = func() (recognizer, error) { return &fakeRecognizer{err: errDelegate}, nil }

	_, err := kit.IntoArray(path)
	assertErrorType(t, err, ParseError)
	if !errors.Is(err, errDelegate) {
		t.Error("OCR cause should be preserved")
	}
}

func TestChainImmutability(t *testing.T) {
	base := New()
	strict := base.StrictPages()
	withOCR := base.WithOCR("fra")

	if base.options.strictPages || base.options.ocr {
		t.Error("base kit should be unchanged")
	}
	if !strict.options.strictPages || strict.options.ocr {
		t.Error("strict kit should only have strictPages")
	}
	if !withOCR.options.ocr || withOCR.options.ocrLanguage != "fra" {
		t.Error("OCR kit should have ocr and language set")
	}
	if base.WithLogger(nil).logger == nil {
		t.Error("nil logger should be replaced by a no-op logger")
	}
}

func TestMust(t *testing.T) {
	// Test Must with successful result
	result := Must("hello", nil)
	if result != "hello" {
		t.Errorf("expected 'hello', got %q", result)
	}

	// Test Must with error (should panic)
	defer func() {
		if r := recover(); r == nil {
			t.Error("expected Must to panic on error")
		}
	}()
	Must("", os.ErrNotExist)
}
