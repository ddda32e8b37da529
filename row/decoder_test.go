package row

import (
	"math"
	"testing"

	"github.com/kadekirby/sas7bdat/compress"
	"github.com/kadekirby/sas7bdat/endian"
	"github.com/kadekirby/sas7bdat/format"
	"github.com/kadekirby/sas7bdat/internal/textenc"
	"github.com/kadekirby/sas7bdat/metadata"
	"github.com/stretchr/testify/require"
)

func newTestDecoder() *Decoder {
	return &Decoder{
		Columns: []metadata.Column{
			{Index: 0, Name: "id", Type: format.ColumnNumber, Length: 8},
			{Index: 1, Name: "name", Type: format.ColumnString, Length: 10},
		},
		DataOffsets: []int{0, 8},
		DataLengths: []int{8, 10},
		RowLength:   18,
		Engine:      endian.GetLittleEndianEngine(),
		Codec:       compress.NewNoOpCodec(),
		Formats:     NewDefaultFormatSets(),
		Text:        textenc.Default(),
	}
}

func float64Bytes(engine endian.EndianEngine, v float64) []byte {
	buf := make([]byte, 8)
	engine.PutUint64(buf, math.Float64bits(v))
	return buf
}

func TestDecodeRow_NumberAndString(t *testing.T) {
	d := newTestDecoder()

	row := make([]byte, 18)
	copy(row[0:8], float64Bytes(d.Engine, 42))
	copy(row[8:18], []byte("alpha\x00\x00\x00\x00\x00"))

	values, err := d.DecodeRow(row)
	require.NoError(t, err)
	require.Len(t, values, 2)
	require.Equal(t, float64(42), values[0])
	require.Equal(t, "alpha", values[1])
}

func TestDecodeRow_EarlyTermination(t *testing.T) {
	d := newTestDecoder()
	d.DataLengths = []int{8, 0}

	row := make([]byte, 18)
	copy(row[0:8], float64Bytes(d.Engine, 7))

	values, err := d.DecodeRow(row)
	require.NoError(t, err)
	require.Len(t, values, 1)
	require.Equal(t, float64(7), values[0])
}

func TestExtractRow_Uncompressed(t *testing.T) {
	d := newTestDecoder()
	page := make([]byte, 64)
	copy(page[10:], []byte("0123456789012345678"))

	rowBytes, err := d.ExtractRow(page, 10, 18)
	require.NoError(t, err)
	require.Len(t, rowBytes, 18)
}

func TestExtractRow_Compressed(t *testing.T) {
	d := newTestDecoder()
	d.Codec = compress.NewRLECodec()

	// 0x40 lo=0, next=0 -> 18 copies of fill byte 'z', in 3 physical bytes.
	compressed := []byte{0x40, 0x00, 'z'}
	require.Less(t, len(compressed), d.RowLength)

	page := make([]byte, 64)
	copy(page[0:], compressed)

	rowBytes, err := d.ExtractRow(page, 0, len(compressed))
	require.NoError(t, err)
	require.Len(t, rowBytes, d.RowLength)
	for _, b := range rowBytes {
		require.Equal(t, byte('z'), b)
	}
}
