package compress

import (
	"fmt"

	"github.com/kadekirby/sas7bdat/errs"
	"github.com/kadekirby/sas7bdat/format"
	"github.com/kadekirby/sas7bdat/internal/pool"
)

// RLECodec implements the SAS row-level run-length decompressor.
//
// Each control byte's high nibble selects an operation; the low nibble and
// (usually) one following byte parametrize its length.
type RLECodec struct{}

var _ Codec = RLECodec{}

// NewRLECodec returns a Codec for format.CompressionRLE.
func NewRLECodec() RLECodec {
	return RLECodec{}
}

func (RLECodec) Type() format.CompressionType {
	return format.CompressionRLE
}

// Decompress expands an RLE-compressed row. src is the compressed bytes as
// they appear on the page; the result is exactly decompressedLen bytes.
func (RLECodec) Decompress(src []byte, decompressedLen int) ([]byte, error) {
	bb := pool.GetRowBuffer()
	defer pool.PutRowBuffer(bb)
	bb.Reset()

	out := bb.Bytes()[:0]
	pos := 0
	length := len(src)

	for pos < length {
		b := src[pos]
		hi := b & 0xF0
		lo := int(b & 0x0F)

		switch hi {
		case 0x00:
			if pos+1 >= length {
				pos = length
				break
			}
			next := int(src[pos+1])
			count := next + 64 + lo*256
			start := pos + 2
			if start+count > length {
				return nil, fmt.Errorf("%w: long copy overruns source at pos %d", errs.ErrDecompressedLengthMismatch, pos)
			}
			out = append(out, src[start:start+count]...)
			pos = start + count

		case 0x40:
			if pos+2 >= length {
				return nil, fmt.Errorf("%w: repeat-byte-long truncated at pos %d", errs.ErrDecompressedLengthMismatch, pos)
			}
			next := int(src[pos+1])
			fillByte := src[pos+2]
			count := lo*16 + next + 18
			out = appendRepeated(out, fillByte, count)
			pos += 3

		case 0x60:
			if pos+1 >= length {
				return nil, fmt.Errorf("%w: emit-space truncated at pos %d", errs.ErrDecompressedLengthMismatch, pos)
			}
			next := int(src[pos+1])
			count := lo*256 + next + 17
			out = appendRepeated(out, 0x20, count)
			pos += 2

		case 0x70:
			if pos+1 >= length {
				return nil, fmt.Errorf("%w: emit-nul truncated at pos %d", errs.ErrDecompressedLengthMismatch, pos)
			}
			next := int(src[pos+1])
			count := lo*256 + next + 17
			out = appendRepeated(out, 0x00, count)
			pos += 2

		case 0x80, 0x90, 0xA0, 0xB0:
			base := map[byte]int{0x80: 1, 0x90: 17, 0xA0: 33, 0xB0: 49}[hi]
			count := lo + base
			remaining := decompressedLen - len(out)
			if count > remaining {
				count = remaining
			}
			start := pos + 1
			if start+count > length {
				return nil, fmt.Errorf("%w: short copy overruns source at pos %d", errs.ErrDecompressedLengthMismatch, pos)
			}
			out = append(out, src[start:start+count]...)
			pos = start + count + 1

		case 0xC0:
			if pos+1 >= length {
				return nil, fmt.Errorf("%w: repeat-next-short truncated at pos %d", errs.ErrDecompressedLengthMismatch, pos)
			}
			fillByte := src[pos+1]
			count := lo + 3
			out = appendRepeated(out, fillByte, count)
			pos += 2

		case 0xD0:
			out = appendRepeated(out, 0x40, lo+2)
			pos += 2

		case 0xE0:
			out = appendRepeated(out, 0x20, lo+2)
			pos += 2

		case 0xF0:
			out = appendRepeated(out, 0x00, lo+2)
			pos += 2

		default:
			return nil, fmt.Errorf("%w: 0x%02x at pos %d", errs.ErrUnknownControlByte, b, pos)
		}
	}

	if len(out) != decompressedLen {
		return nil, fmt.Errorf("%w: got %d bytes, want %d", errs.ErrDecompressedLengthMismatch, len(out), decompressedLen)
	}

	result := make([]byte, len(out))
	copy(result, out)

	return result, nil
}

func appendRepeated(dst []byte, b byte, count int) []byte {
	for i := 0; i < count; i++ {
		dst = append(dst, b)
	}

	return dst
}
