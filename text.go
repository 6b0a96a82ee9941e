package pdfkit

import (
	"os"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// IntoArray decodes the document's text and splits it on "\n". The result
// always has at least one element; a document without text yields [""].
//
// Errors: FileNotFound, InvalidFileType, ParseError.
func (k *Kit) IntoArray(path string) ([]string, error) {
	res, err := k.decode(path, true)
	if err != nil {
		return nil, wrapError(ParseError, "failed to parse PDF", err)
	}
	return strings.Split(res.Text, "\n"), nil
}

// SearchText returns the lines of the document that contain term, in
// document order. Unless opts.CaseSensitive is set, both sides are case
// folded and NFC-normalized before comparing, so "Foo" matches "FOO" and
// "fOo". The result is empty, not nil, when nothing matches.
//
// Errors: InvalidSearchTerm (checked first), FileNotFound, InvalidFileType,
// ParseError, SearchError.
func (k *Kit) SearchText(path, term string, opts SearchOptions) ([]string, error) {
	if term == "" {
		return nil, newError(InvalidSearchTerm, "search term must be a non-empty string")
	}

	lines, err := k.IntoArray(path)
	if err != nil {
		return nil, wrapError(SearchError, "failed to search text", err)
	}

	contains := newMatcher(term, opts.CaseSensitive)
	matches := make([]string, 0)
	for _, line := range lines {
		if contains(line) {
			matches = append(matches, line)
		}
	}
	return matches, nil
}

// newMatcher returns a substring test for term. A Caser is stateful, so each
// matcher owns one.
func newMatcher(term string, caseSensitive bool) func(string) bool {
	if caseSensitive {
		return func(s string) bool {
			return strings.Contains(s, term)
		}
	}

	fold := cases.Fold()
	normalize := func(s string) string {
		return norm.NFC.String(fold.String(s))
	}
	needle := normalize(term)
	return func(s string) bool {
		return strings.Contains(normalize(s), needle)
	}
}

// ConvertToText returns the document's lines joined with "\n", the same
// string as strings.Join(IntoArray(inputPath), "\n").
//
// When outputPath is non-empty the text is written there instead and the
// returned string is empty. Callers that need the text as well should read
// the file back or call ConvertToText without an output path.
//
// Errors: FileNotFound, InvalidFileType, ParseError (from decoding),
// ConvertToTextError.
func (k *Kit) ConvertToText(inputPath, outputPath string) (string, error) {
	lines, err := k.IntoArray(inputPath)
	if err != nil {
		return "", wrapError(ConvertToTextError, "failed to convert to text", err)
	}

	text := strings.Join(lines, "\n")
	if outputPath == "" {
		return text, nil
	}

	if err := os.WriteFile(outputPath, []byte(text), 0o644); err != nil {
		return "", wrapError(ConvertToTextError, "failed to convert to text", err)
	}
	return "", nil
}
