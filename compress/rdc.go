package compress

import (
	"fmt"

	"github.com/kadekirby/sas7bdat/errs"
	"github.com/kadekirby/sas7bdat/format"
)

// RDCCodec recognizes the RDC compression scheme without decoding it.
//
// RDC's control-byte vocabulary and bit-packing are undocumented outside
// SAS's own source; reverse-engineering it is out of scope here (see
// Open Questions). Any row compressed with RDC surfaces
// errs.ErrUnsupportedCompression instead of silently producing garbage.
type RDCCodec struct{}

var _ Codec = RDCCodec{}

// NewRDCCodec returns a Codec for format.CompressionRDC.
func NewRDCCodec() RDCCodec {
	return RDCCodec{}
}

func (RDCCodec) Type() format.CompressionType {
	return format.CompressionRDC
}

func (RDCCodec) Decompress(src []byte, decompressedLen int) ([]byte, error) {
	return nil, fmt.Errorf("%w: RDC", errs.ErrUnsupportedCompression)
}
