package compress

import (
	"fmt"

	"github.com/kadekirby/sas7bdat/errs"
	"github.com/kadekirby/sas7bdat/format"
)

// NoOpCodec passes uncompressed row bytes through unchanged.
type NoOpCodec struct{}

var _ Codec = NoOpCodec{}

// NewNoOpCodec returns a Codec for format.CompressionNone.
func NewNoOpCodec() NoOpCodec {
	return NoOpCodec{}
}

func (NoOpCodec) Type() format.CompressionType {
	return format.CompressionNone
}

// Decompress returns src unchanged, failing if its length doesn't already
// match decompressedLen — an uncompressed row is never resized.
func (NoOpCodec) Decompress(src []byte, decompressedLen int) ([]byte, error) {
	if len(src) != decompressedLen {
		return nil, fmt.Errorf("%w: got %d bytes, want %d", errs.ErrDecompressedLengthMismatch, len(src), decompressedLen)
	}

	return src, nil
}
