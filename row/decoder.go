// Package row implements the row decoder (§4.5): locating a row's bytes
// within a page, decompressing it when necessary, and converting each
// column's slice into a Go value.
package row

import (
	"fmt"

	"github.com/kadekirby/sas7bdat/compress"
	"github.com/kadekirby/sas7bdat/endian"
	"github.com/kadekirby/sas7bdat/internal/textenc"
	"github.com/kadekirby/sas7bdat/metadata"
)

// Decoder converts raw page bytes into rows of Go values, given a fixed
// schema and compression codec.
type Decoder struct {
	Columns    []metadata.Column
	DataOffsets []int
	DataLengths []int
	RowLength   int

	Engine  endian.EndianEngine
	Codec   compress.Codec
	Formats *FormatSets
	Text    *textenc.Decoder
}

// DecodeRow converts the physical bytes for one row (already decompressed
// if necessary) into a slice of column values, in column order. Decoding
// stops early at the first column whose declared length is zero (§4.5,
// §3 invariant "column_data_lengths[i] == 0 terminates row decoding early").
func (d *Decoder) DecodeRow(rowBytes []byte) ([]any, error) {
	values := make([]any, 0, len(d.Columns))

	for i, length := range d.DataLengths {
		if length == 0 {
			break
		}

		offset := d.DataOffsets[i]
		if offset+length > len(rowBytes) {
			return nil, fmt.Errorf("row: column %d slice [%d:%d] exceeds row of %d bytes", i, offset, offset+length, len(rowBytes))
		}

		raw := rowBytes[offset : offset+length]

		var col metadata.Column
		if i < len(d.Columns) {
			col = d.Columns[i]
		} else {
			col.Type = 0
		}

		v, err := DecodeColumn(col, raw, d.Engine, d.Formats, d.Text)
		if err != nil {
			return nil, fmt.Errorf("row: decoding column %d (%s): %w", i, col.Name, err)
		}

		values = append(values, v)
	}

	return values, nil
}

// ExtractRow slices or decompresses a physical row out of a page, per §4.5:
// when compression is active and the physical record is shorter than
// row_length, the bytes are handed to the codec; otherwise they are sliced
// directly.
func (d *Decoder) ExtractRow(page []byte, physicalOffset, physicalLength int) ([]byte, error) {
	if physicalLength >= d.RowLength {
		end := physicalOffset + d.RowLength
		if end > len(page) {
			return nil, fmt.Errorf("row: physical row at %d exceeds page of %d bytes", physicalOffset, len(page))
		}
		return page[physicalOffset:end], nil
	}

	end := physicalOffset + physicalLength
	if end > len(page) {
		return nil, fmt.Errorf("row: compressed row at %d exceeds page of %d bytes", physicalOffset, len(page))
	}

	return d.Codec.Decompress(page[physicalOffset:end], d.RowLength)
}
