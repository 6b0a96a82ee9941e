package pdfkit

// SearchOptions configures SearchText.
type SearchOptions struct {
	// CaseSensitive disables case folding. The default matches
	// regardless of case.
	CaseSensitive bool
}

// kitOptions holds configuration for a Kit.
type kitOptions struct {
	// Out-of-range page numbers fail ExtractPages instead of being skipped
	strictPages bool

	// OCR fallback for documents without a text layer
	ocr         bool
	ocrLanguage string
}

// defaultOptions returns the default Kit options.
func defaultOptions() kitOptions {
	return kitOptions{
		strictPages: false,
		ocr:         false,
		ocrLanguage: "",
	}
}

// clone creates a copy of kitOptions.
func (o kitOptions) clone() kitOptions {
	return kitOptions{
		strictPages: o.strictPages,
		ocr:         o.ocr,
		ocrLanguage: o.ocrLanguage,
	}
}
