package compress

import (
	"testing"

	"github.com/kadekirby/sas7bdat/errs"
	"github.com/kadekirby/sas7bdat/format"
	"github.com/stretchr/testify/require"
)

func TestRLEDecompress_FillOperations(t *testing.T) {
	codec := NewRLECodec()

	// 0xE0 lo=0 -> 2 spaces; 0xC0 'X' lo=0 -> 3 copies of 'X'; 0xF0 lo=0 -> 2 NULs.
	src := []byte{0xE0, 0x00, 0xC0, 'X', 0xF0, 0x00}
	want := []byte{0x20, 0x20, 'X', 'X', 'X', 0x00, 0x00}

	got, err := codec.Decompress(src, len(want))
	require.NoError(t, err)
	require.Equal(t, want, got)
}

func TestRLEDecompress_ShortCopy(t *testing.T) {
	codec := NewRLECodec()

	// 0x80 lo=2 -> copy 3 bytes literally from pos+1.
	src := []byte{0x82, 'a', 'b', 'c'}
	got, err := codec.Decompress(src, 3)
	require.NoError(t, err)
	require.Equal(t, []byte("abc"), got)
}

func TestRLEDecompress_ShortCopyMultipleRecords(t *testing.T) {
	codec := NewRLECodec()

	// 0x80 lo=2 -> copy 3 bytes "abc", trailing byte 'Z' skipped; then
	// 0x90 lo=1 -> copy 18 bytes "012345678901234567", trailing byte 'Y'
	// skipped; a short copy that isn't the last record must still leave
	// pos pointing at the next control byte, not at the skipped byte.
	src := []byte{
		0x82, 'a', 'b', 'c', 'Z',
		0x91, '0', '1', '2', '3', '4', '5', '6', '7', '8', '9', '0', '1', '2', '3', '4', '5', '6', '7', 'Y',
		0xD0,
	}
	want := append([]byte("abc"), []byte("012345678901234567")...)
	want = append(want, '@', '@')

	got, err := codec.Decompress(src, len(want))
	require.NoError(t, err)
	require.Equal(t, want, got)
}

func TestRLEDecompress_LongCopy(t *testing.T) {
	codec := NewRLECodec()

	payload := make([]byte, 64)
	for i := range payload {
		payload[i] = byte('a' + i%26)
	}

	src := append([]byte{0x00, 0x00}, payload...)
	got, err := codec.Decompress(src, len(payload))
	require.NoError(t, err)
	require.Equal(t, payload, got)
}

func TestRLEDecompress_RepeatByteLong(t *testing.T) {
	codec := NewRLECodec()

	// 0x40 lo=0, next=0 -> 18 copies of the fill byte.
	src := []byte{0x40, 0x00, 'z'}
	got, err := codec.Decompress(src, 18)
	require.NoError(t, err)
	require.Equal(t, 18, len(got))
	for _, b := range got {
		require.Equal(t, byte('z'), b)
	}
}

func TestRLEDecompress_UnknownControlByte(t *testing.T) {
	codec := NewRLECodec()

	_, err := codec.Decompress([]byte{0x10, 0x00}, 4)
	require.ErrorIs(t, err, errs.ErrUnknownControlByte)
}

func TestRLEDecompress_LengthMismatch(t *testing.T) {
	codec := NewRLECodec()

	src := []byte{0xD0, 0x00} // fill '@' x 2
	_, err := codec.Decompress(src, 10)
	require.ErrorIs(t, err, errs.ErrDecompressedLengthMismatch)
}

func TestNoOpCodec_RoundTrip(t *testing.T) {
	codec := NewNoOpCodec()

	data := []byte("passthrough")
	got, err := codec.Decompress(data, len(data))
	require.NoError(t, err)
	require.Equal(t, data, got)

	_, err = codec.Decompress(data, len(data)+1)
	require.ErrorIs(t, err, errs.ErrDecompressedLengthMismatch)
}

func TestRDCCodec_Unsupported(t *testing.T) {
	codec := NewRDCCodec()

	_, err := codec.Decompress([]byte{0x01, 0x02}, 2)
	require.ErrorIs(t, err, errs.ErrUnsupportedCompression)
}

func TestGetCodec(t *testing.T) {
	codec, err := GetCodec(format.CompressionNone)
	require.NoError(t, err)
	require.Equal(t, format.CompressionNone, codec.Type())

	codec, err = GetCodec(format.CompressionRLE)
	require.NoError(t, err)
	require.Equal(t, format.CompressionRLE, codec.Type())

	codec, err = GetCodec(format.CompressionRDC)
	require.NoError(t, err)
	require.Equal(t, format.CompressionRDC, codec.Type())

	_, err = GetCodec(format.CompressionType(99))
	require.Error(t, err)
}
