package pdfkit

import (
	"errors"
	"fmt"
)

// ErrorType identifies which check or operation produced an Error.
type ErrorType string

// Error types. Validation types are returned before any file is decoded;
// the operation types wrap failures of the underlying PDF libraries.
const (
	FileNotFound       ErrorType = "FileNotFound"
	InvalidFileType    ErrorType = "InvalidFileType"
	ParseError         ErrorType = "ParseError"
	PageCountError     ErrorType = "PageCountError"
	InvalidSearchTerm  ErrorType = "InvalidSearchTerm"
	SearchError        ErrorType = "SearchError"
	InvalidOutputPath  ErrorType = "InvalidOutputPath"
	InvalidPageNumbers ErrorType = "InvalidPageNumbers"
	ExtractPagesError  ErrorType = "ExtractPagesError"
	MetadataError      ErrorType = "MetadataError"
	ConvertToTextError ErrorType = "ConvertToTextError"
)

// Error is the only error type returned by pdfkit operations.
//
// Use errors.As to inspect it, or errors.Is with a template carrying just the
// type:
//
//	if errors.Is(err, &pdfkit.Error{Type: pdfkit.FileNotFound}) {
//	    // ...
//	}
type Error struct {
	Type    ErrorType
	Message string
	// Err is the underlying cause, if any.
	Err error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches another *Error with the same Type. A template with an empty
// Message matches any message.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Type == e.Type && (t.Message == "" || t.Message == e.Message)
}

// TypeOf returns the type of the first *Error in err's chain, or "" when
// there is none.
func TypeOf(err error) ErrorType {
	var e *Error
	if errors.As(err, &e) {
		return e.Type
	}
	return ""
}

// newError creates an Error without a cause.
func newError(typ ErrorType, format string, args ...any) *Error {
	return &Error{Type: typ, Message: fmt.Sprintf(format, args...)}
}

// wrapError tags err with typ, appending its message to context. Errors that
// are already *Error pass through unchanged so a nested call's type survives.
func wrapError(typ ErrorType, context string, err error) error {
	var e *Error
	if errors.As(err, &e) {
		return err
	}
	return &Error{
		Type:    typ,
		Message: context + ": " + err.Error(),
		Err:     err,
	}
}
