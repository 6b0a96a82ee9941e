package core

import (
	"bytes"
	"errors"
	"fmt"
	"io"
)

// header is the version line. The binary comment on the second line marks the
// file as binary for transfer tools.
const header = "%PDF-1.4\n%\xE2\xE3\xCF\xD3\n"

// ErrNoRoot is returned when a Writer is flushed without a catalog.
var ErrNoRoot = errors.New("no root object set")

// Writer numbers indirect objects and serializes them with a cross-reference
// table. Object numbers start at 1 and follow insertion order.
type Writer struct {
	objects []Object
	root    IndirectRef
	info    IndirectRef
}

// NewWriter returns an empty Writer.
func NewWriter() *Writer {
	return &Writer{}
}

// Add appends obj and returns its reference.
func (w *Writer) Add(obj Object) IndirectRef {
	w.objects = append(w.objects, obj)
	return IndirectRef{Number: len(w.objects)}
}

// Reserve allocates an object number to be filled later with Set. This is how
// forward references (a page pointing at its parent) are written.
func (w *Writer) Reserve() IndirectRef {
	return w.Add(Null{})
}

// Set replaces the object behind ref.
func (w *Writer) Set(ref IndirectRef, obj Object) error {
	if ref.Number < 1 || ref.Number > len(w.objects) {
		return fmt.Errorf("object %d not allocated", ref.Number)
	}
	w.objects[ref.Number-1] = obj
	return nil
}

// SetRoot sets the document catalog referenced from the trailer.
func (w *Writer) SetRoot(ref IndirectRef) {
	w.root = ref
}

// SetInfo sets the document information dictionary referenced from the trailer.
func (w *Writer) SetInfo(ref IndirectRef) {
	w.info = ref
}

// Len returns the number of objects written so far.
func (w *Writer) Len() int {
	return len(w.objects)
}

// WriteTo writes the complete file: header, objects, xref table, trailer.
func (w *Writer) WriteTo(out io.Writer) (int64, error) {
	if w.root.IsZero() {
		return 0, ErrNoRoot
	}

	var buf bytes.Buffer
	buf.WriteString(header)

	offsets := make([]int, len(w.objects))
	for i, obj := range w.objects {
		offsets[i] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", i+1, obj.String())
	}

	xrefOffset := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n", len(w.objects)+1)
	// Each entry is exactly 20 bytes including the two-byte EOL.
	buf.WriteString("0000000000 65535 f \n")
	for _, off := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", off)
	}

	trailer := Dict{
		"Size": Int(len(w.objects) + 1),
		"Root": w.root,
	}
	if !w.info.IsZero() {
		trailer["Info"] = w.info
	}
	fmt.Fprintf(&buf, "trailer\n%s\nstartxref\n%d\n%%%%EOF\n", trailer.String(), xrefOffset)

	return buf.WriteTo(out)
}
