// Package compress implements the decompression codecs a SAS7BDAT row may
// use: no compression, row-level RLE, and the unsupported RDC scheme.
package compress

import (
	"fmt"

	"github.com/kadekirby/sas7bdat/format"
)

// Decompressor decodes one compressed row into a row_length-byte buffer.
//
// Unlike a general-purpose stream decompressor, a SAS7BDAT Decompressor
// always knows the exact decompressed length up front (row_length) and
// fails if the control-byte stream produces anything else (§4.6).
type Decompressor interface {
	// Decompress expands src into a buffer of exactly decompressedLen bytes.
	Decompress(src []byte, decompressedLen int) ([]byte, error)
}

// Codec identifies itself for diagnostics and error messages.
type Codec interface {
	Decompressor
	Type() format.CompressionType
}

// GetCodec returns the Decompressor for the given compression type.
//
// format.CompressionRDC is a recognized scheme the decoder declines to
// implement; GetCodec still returns a usable Codec for it so callers can
// report ErrUnsupportedCompression uniformly instead of special-casing RDC.
func GetCodec(compressionType format.CompressionType) (Codec, error) {
	switch compressionType {
	case format.CompressionNone:
		return NewNoOpCodec(), nil
	case format.CompressionRLE:
		return NewRLECodec(), nil
	case format.CompressionRDC:
		return NewRDCCodec(), nil
	default:
		return nil, fmt.Errorf("compress: unknown compression type %d", compressionType)
	}
}
