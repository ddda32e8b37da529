package section

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

// buildMinimalHeader constructs a 32-bit little-endian header of exactly
// HeaderPrefixSize bytes, matching the byte layout of §4.2.
func buildMinimalHeader(t *testing.T) []byte {
	t.Helper()

	buf := make([]byte, HeaderPrefixSize)
	copy(buf[:MagicSize], Magic[:])
	buf[32] = '2' // not '3' -> 32-bit
	buf[35] = '2' // not '3' -> no align1
	buf[37] = 0x01 // little endian
	buf[39] = '1'  // unix

	copy(buf[92:], []byte("dataset"))
	copy(buf[156:], []byte("DATA"))

	le := func(off int, v uint32) {
		buf[off] = byte(v)
		buf[off+1] = byte(v >> 8)
		buf[off+2] = byte(v >> 16)
		buf[off+3] = byte(v >> 24)
	}
	le(196, 288) // header_length
	le(200, 4096) // page_length
	le(204, 1) // page_count

	copy(buf[216:], []byte("9.4"))

	return buf
}

type readerAt struct{ data []byte }

func (r readerAt) ReadAt(p []byte, off int64) (int, error) {
	n := copy(p, r.data[off:])
	if n < len(p) {
		return n, bytes.ErrTooLarge
	}

	return n, nil
}

func TestParseHeader_Minimal32BitLE(t *testing.T) {
	buf := buildMinimalHeader(t)

	p, err := ParseHeader(readerAt{buf})
	require.NoError(t, err)
	require.False(t, p.U64)
	require.Equal(t, "dataset", p.Name)
	require.Equal(t, "DATA", p.FileType)
	require.Equal(t, 288, p.HeaderLength)
	require.Equal(t, 4096, p.PageLength)
	require.Equal(t, 1, p.PageCount)
	require.Equal(t, "9.4", p.SASRelease)
}

func TestParseHeader_BadMagic(t *testing.T) {
	buf := buildMinimalHeader(t)
	buf[0] = 0xFF

	_, err := ParseHeader(readerAt{buf})
	require.Error(t, err)
}

func TestParseHeader_TooShort(t *testing.T) {
	buf := make([]byte, 100)

	_, err := ParseHeader(readerAt{buf})
	require.Error(t, err)
}
