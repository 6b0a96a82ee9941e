// Package filters implements the PDF stream filters used when writing
// documents.
//
// FlateEncode (zlib/deflate):
//
//	encoded, err := filters.FlateEncode(data)
//
// The output is stored in a stream whose dictionary carries
// /Filter /FlateDecode. FlateDecode reverses it:
//
//	decoded, err := filters.FlateDecode(encoded)
package filters
