// Package core provides the PDF object types and a minimal writer.
//
// pdfkit never parses PDF syntax itself; text decoding and page manipulation are
// delegated to third-party libraries. This package covers the one case those
// libraries cannot: producing a document from scratch. It is used to write
// zero-page documents when a page extraction selects nothing, and to build
// small fixture documents in tests.
//
// # Object Types
//
// The PDF object types are implemented as types satisfying the [Object]
// interface, whose String method returns the object's PDF syntax:
//
//   - [Null], [Bool], [Int], [Real]
//   - [String] - literal strings, escaped on output
//   - [Name] - name objects such as /Type
//   - [Array], [Dict] - dictionaries serialize with sorted keys
//   - [Stream] - dictionary plus data, Length is filled in on output
//   - [IndirectRef] - a reference to an object written by a [Writer]
//
// # Writing
//
// [Writer] numbers objects, writes them with a classic cross-reference table and
// trailer. [Document] builds on it to lay out simple text pages:
//
//	doc := core.NewDocument()
//	doc.SetInfo("Title", "Report")
//	doc.AddPage("first line", "second line")
//	data, err := doc.Bytes()
package core
