// Package codec implements the primitive field decoders shared by header,
// metadata, and row parsing (§4.1): fixed-width integers, zero-padded
// doubles, and raw text extraction.
package codec

import (
	"math"

	"github.com/kadekirby/sas7bdat/endian"
)

// ReadInt decodes a signed integer of the given byte width (1, 2, 4, 6, or
// 8 bytes) using engine's byte order.
//
// The 6-byte case only arises in 64-bit layouts for values known to fit in
// 48 bits; the two high bytes of the 8-byte staging buffer are left zero.
func ReadInt(data []byte, size int, engine endian.EndianEngine) int64 {
	switch size {
	case 1:
		return int64(int8(data[0]))
	case 2:
		return int64(int16(engine.Uint16(data)))
	case 4:
		return int64(int32(engine.Uint32(data)))
	case 6, 8:
		var buf [8]byte
		if endian.IsLittleEndian(engine) {
			copy(buf[:size], data[:size])
		} else {
			copy(buf[8-size:], data[:size])
		}

		return int64(engine.Uint64(buf[:]))
	default:
		panic("codec: unsupported integer width")
	}
}

// ReadDouble decodes an IEEE-754 binary64 from a field that may be
// narrower than 8 bytes, zero-padding on the side that preserves magnitude
// for the declared byte order (§4.1 read_double). A NaN result is reported
// via the ok=false return so callers can render the null sentinel.
func ReadDouble(data []byte, size int, engine endian.EndianEngine) (value float64, ok bool) {
	var buf [8]byte
	if size >= 8 {
		copy(buf[:], data[:8])
	} else if endian.IsLittleEndian(engine) {
		copy(buf[8-size:], data[:size])
	} else {
		copy(buf[:size], data[:size])
	}

	bits := engine.Uint64(buf[:])
	value = math.Float64frombits(bits)

	return value, !math.IsNaN(value)
}

// ReadText returns the raw bytes of a fixed-width text field, trimmed of
// trailing NUL/space padding. Codepage decoding happens at a higher layer.
func ReadText(data []byte, size int) []byte {
	raw := data[:size]
	end := size
	for end > 0 && (raw[end-1] == 0x00 || raw[end-1] == ' ') {
		end--
	}

	return raw[:end]
}
