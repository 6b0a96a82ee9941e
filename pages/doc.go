// Package pages copies, counts and inspects the page objects of PDF documents.
//
// Page manipulation is delegated to github.com/pdfcpu/pdfcpu behind the
// [Editor] interface. The package works on in-memory bytes; reading and
// writing files is left to the caller.
//
// Page numbers are 1-based throughout, matching what users see in a viewer.
package pages
