// Package reader decodes the text layer and page count of PDF documents.
//
// Decoding is delegated to github.com/ledongthuc/pdf behind the [Decoder]
// interface, so callers can substitute another implementation (or a fake in
// tests) without touching the code that consumes the [Result].
//
// Basic usage:
//
//	data, err := os.ReadFile("document.pdf")
//	if err != nil {
//	    // handle error
//	}
//	res, err := reader.NewLedongthuc().Decode(data)
//	if err != nil {
//	    // handle error
//	}
//	fmt.Println(res.NumPages, len(res.Text))
package reader
