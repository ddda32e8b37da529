package sas7bdat

import (
	"encoding/binary"
	"io"
	"math"
	"testing"

	"github.com/kadekirby/sas7bdat/format"
	"github.com/kadekirby/sas7bdat/section"
	"github.com/kadekirby/sas7bdat/source"
	"github.com/stretchr/testify/require"
)

// buildMinimalDataset constructs a complete 32-bit little-endian, uncompressed
// SAS7BDAT file with a single numeric column "x" and two rows, as one META
// page (row/column schema) followed by one DATA page (the two rows).
func buildMinimalDataset(t *testing.T) []byte {
	t.Helper()

	const pageLength = 1024
	const pageCount = 2
	const headerLength = section.HeaderPrefixSize

	buf := make([]byte, headerLength+pageCount*pageLength)

	copy(buf[:section.MagicSize], section.Magic[:])
	buf[32] = '2' // not '3' -> 32-bit
	buf[35] = '2' // not '3' -> no align1
	buf[37] = 0x01 // little endian
	buf[39] = '1'  // unix

	copy(buf[92:], []byte("testds"))
	copy(buf[156:], []byte("DATA"))

	le32 := func(off int, v uint32) { binary.LittleEndian.PutUint32(buf[off:], v) }
	le16 := func(off int, v uint16) { binary.LittleEndian.PutUint16(buf[off:], v) }

	le32(196, headerLength)
	le32(200, pageLength)
	le32(204, pageCount)
	copy(buf[216:], []byte("9.4"))

	// --- page 0: META page with six subheaders ---
	metaBase := headerLength

	le16(metaBase+16, 0) // page type META
	le16(metaBase+18, 0) // block_count
	le16(metaBase+20, 6) // subheader_count

	type ptr struct{ offset, length int }
	entries := []ptr{
		{96, 400},  // RowSize
		{496, 16},  // ColumnSize
		{512, 32},  // ColumnText
		{560, 28},  // ColumnName
		{588, 32},  // ColumnAttributes
		{620, 64},  // FormatAndLabel
	}

	ptrBase := metaBase + 24
	for i, e := range entries {
		rec := ptrBase + i*12
		le32(rec, uint32(e.offset))
		le32(rec+4, uint32(e.length))
		buf[rec+8] = 0 // compression
		buf[rec+9] = 0 // subtype
	}

	// RowSize subheader at relative offset 96.
	copy(buf[metaBase+96:], []byte{0xf7, 0xf7, 0xf7, 0xf7})
	le32(metaBase+96+5*4, 8) // row_length
	le32(metaBase+96+6*4, 2) // row_count
	le32(metaBase+96+9*4, 1) // col_count_p1
	le32(metaBase+96+10*4, 0) // col_count_p2

	// ColumnSize subheader at relative offset 496.
	copy(buf[metaBase+496:], []byte{0xf6, 0xf6, 0xf6, 0xf6})
	le32(metaBase+496+4, 1) // column_count

	// ColumnText subheader at relative offset 512: one text block "x".
	copy(buf[metaBase+512:], []byte{0xfd, 0xff, 0xff, 0xff})
	le16(metaBase+512+4, 1) // text_block_size
	buf[metaBase+512+6] = 'x'

	// ColumnName subheader at relative offset 560: name "x" at text[0][0:1].
	copy(buf[metaBase+560:], []byte{0xff, 0xff, 0xff, 0xff})
	le16(metaBase+560+12, 0) // text_index
	le16(metaBase+560+14, 0) // name_offset
	le16(metaBase+560+16, 1) // name_length

	// ColumnAttributes subheader at relative offset 588: offset 0, length 8, number.
	copy(buf[metaBase+588:], []byte{0xfc, 0xff, 0xff, 0xff})
	le32(metaBase+588+12, 0) // data_offset
	le32(metaBase+588+16, 8) // data_length
	buf[metaBase+588+20] = byte(format.ColumnNumber)

	// FormatAndLabel subheader at relative offset 620: empty format/label.
	copy(buf[metaBase+620:], []byte{0xfe, 0xfb, 0xff, 0xff})

	// --- page 1: DATA page with two 8-byte rows ---
	dataBase := headerLength + pageLength

	le16(dataBase+16, 256) // page type DATA
	le16(dataBase+18, 2)   // block_count (row count on this page)
	le16(dataBase+20, 0)   // subheader_count

	binary.LittleEndian.PutUint64(buf[dataBase+24:], math.Float64bits(42))
	binary.LittleEndian.PutUint64(buf[dataBase+32:], math.Float64bits(7.5))

	return buf
}

func TestReader_EndToEnd_MinimalFile(t *testing.T) {
	buf := buildMinimalDataset(t)

	r, err := NewReader(source.NewMemory(buf), WithSkipHeader(true))
	require.NoError(t, err)
	defer r.Close()

	props := r.Properties()
	require.False(t, props.U64)
	require.Equal(t, "testds", props.Name)
	require.Equal(t, format.CompressionNone, props.Compression)
	require.Equal(t, 8, props.RowLength)
	require.Equal(t, 2, props.RowCount)

	cols := r.Columns()
	require.Len(t, cols, 1)
	require.Equal(t, "x", cols[0].Name)
	require.Equal(t, format.ColumnNumber, cols[0].Type)
	require.Equal(t, 8, cols[0].Length)

	values, err := r.NextRow()
	require.NoError(t, err)
	require.Equal(t, []any{float64(42)}, values)

	values, err = r.NextRow()
	require.NoError(t, err)
	require.Equal(t, []any{float64(7.5)}, values)

	_, err = r.NextRow()
	require.ErrorIs(t, err, io.EOF)
}

func TestReader_HeaderRow(t *testing.T) {
	buf := buildMinimalDataset(t)

	r, err := NewReader(source.NewMemory(buf))
	require.NoError(t, err)
	defer r.Close()

	values, err := r.NextRow()
	require.NoError(t, err)
	require.Equal(t, []any{"x"}, values)

	values, err = r.NextRow()
	require.NoError(t, err)
	require.Equal(t, []any{float64(42)}, values)
}

func TestReader_All(t *testing.T) {
	buf := buildMinimalDataset(t)

	r, err := NewReader(source.NewMemory(buf), WithSkipHeader(true))
	require.NoError(t, err)
	defer r.Close()

	var got []any
	for row, err := range r.All() {
		require.NoError(t, err)
		got = append(got, row)
	}

	require.Equal(t, []any{
		[]any{float64(42)},
		[]any{float64(7.5)},
	}, got)
}

func TestReader_ColumnByName(t *testing.T) {
	buf := buildMinimalDataset(t)

	r, err := NewReader(source.NewMemory(buf), WithSkipHeader(true))
	require.NoError(t, err)
	defer r.Close()

	col, ok := r.ColumnByName("x")
	require.True(t, ok)
	require.Equal(t, format.ColumnNumber, col.Type)

	_, ok = r.ColumnByName("missing")
	require.False(t, ok)
}
