package metadata

import (
	"bytes"
	"fmt"

	"github.com/kadekirby/sas7bdat/endian"
	"github.com/kadekirby/sas7bdat/errs"
	"github.com/kadekirby/sas7bdat/format"
	"github.com/kadekirby/sas7bdat/internal/codec"
	"github.com/kadekirby/sas7bdat/section"
)

func readInt(page []byte, at, size int, engine endian.EndianEngine) int {
	return int(codec.ReadInt(page[at:], size, engine))
}

// handleRowSize decodes the RowSize subheader (§4.4 "RowSize").
func (d *Decoder) handleRowSize(page []byte, sp section.SubheaderPointer, u64 bool, wordSize int, engine endian.EndianEngine) error {
	if d.Props.RowLength != 0 || d.Props.RowCount != 0 {
		return errs.ErrDuplicateRowSize
	}

	base := sp.Offset
	d.Props.RowLength = readInt(page, base+5*wordSize, wordSize, engine)
	d.Props.RowCount = readInt(page, base+6*wordSize, wordSize, engine)
	d.Props.MixPageRowCount = readInt(page, base+15*wordSize, wordSize, engine)
	d.Props.ColCountP1 = readInt(page, base+9*wordSize, wordSize, engine)
	d.Props.ColCountP2 = readInt(page, base+10*wordSize, wordSize, engine)

	lcsOff, lcpOff := 354, 378
	if u64 {
		lcsOff, lcpOff = 682, 706
	}
	d.Props.LCS = readInt(page, base+lcsOff, 2, engine)
	d.Props.LCP = readInt(page, base+lcpOff, 2, engine)

	return nil
}

// handleColumnSize decodes the ColumnSize subheader (§4.4 "ColumnSize").
func (d *Decoder) handleColumnSize(page []byte, sp section.SubheaderPointer, wordSize int, engine endian.EndianEngine) error {
	if d.Props.ColumnCount != 0 {
		return errs.ErrDuplicateColumnSize
	}

	d.Props.ColumnCount = readInt(page, sp.Offset+wordSize, wordSize, engine)

	if d.Props.ColCountP1+d.Props.ColCountP2 != d.Props.ColumnCount && d.Props.ColCountP1 != 0 {
		d.Props.Warn(fmt.Sprintf("col_count_p1(%d)+col_count_p2(%d) != column_count(%d)",
			d.Props.ColCountP1, d.Props.ColCountP2, d.Props.ColumnCount))
	}

	return nil
}

// handleColumnText decodes a ColumnText subheader (§4.4 "ColumnText"). The
// first blob additionally carries compression detection and creator strings.
func (d *Decoder) handleColumnText(page []byte, sp section.SubheaderPointer, u64 bool, wordSize int, engine endian.EndianEngine) error {
	textBlockSize := readInt(page, sp.Offset+wordSize, 2, engine)
	blobStart := sp.Offset + wordSize + 2
	if blobStart+textBlockSize > len(page) {
		textBlockSize = len(page) - blobStart
	}
	blob := page[blobStart : blobStart+textBlockSize]

	isFirst := len(d.textBlocks) == 0
	d.textBlocks = append(d.textBlocks, blob)

	if !isFirst {
		return nil
	}

	switch {
	case bytes.Contains(blob, []byte("SASYZCRL")):
		d.Props.Compression = format.CompressionRLE
	case bytes.Contains(blob, []byte("SASYZCR2")):
		d.Props.Compression = format.CompressionRDC
	default:
		d.Props.Compression = format.CompressionNone
	}

	creatorFieldOff := 16
	if u64 {
		creatorFieldOff = 20
	}
	creatorField := codec.ReadText(page[sp.Offset+creatorFieldOff:], 8)

	switch {
	case len(creatorField) == 0:
		d.Props.LCS = 0
		d.Props.CreatorProc = string(codec.ReadText(page[sp.Offset+16+creatorFieldOff:], d.Props.LCP))
	case string(creatorField) == "SASYZCRL":
		d.Props.CreatorProc = string(codec.ReadText(page[sp.Offset+24+creatorFieldOff:], d.Props.LCP))
	case d.Props.LCS > 0:
		d.Props.LCP = 0
		d.Props.Creator = string(codec.ReadText(page[sp.Offset+creatorFieldOff:], d.Props.LCS))
	}

	return nil
}

// handleColumnName decodes a ColumnName subheader (§4.4 "ColumnName").
func (d *Decoder) handleColumnName(page []byte, sp section.SubheaderPointer, wordSize int, engine endian.EndianEngine) error {
	count := (sp.Length - 2*wordSize - 12) / 8
	base := sp.Offset + wordSize + 8

	for i := 0; i < count; i++ {
		rec := page[base+i*8:]
		textIndex := int(codec.ReadInt(rec, 2, engine))
		nameOffset := int(codec.ReadInt(rec[2:], 2, engine))
		nameLength := int(codec.ReadInt(rec[4:], 2, engine))

		var name string
		if textIndex >= 0 && textIndex < len(d.textBlocks) {
			blob := d.textBlocks[textIndex]
			end := nameOffset + nameLength
			if end <= len(blob) {
				name = string(blob[nameOffset:end])
			}
		}
		d.columnNames = append(d.columnNames, name)
	}

	return nil
}

// handleColumnAttributes decodes a ColumnAttributes subheader
// (§4.4 "ColumnAttributes").
func (d *Decoder) handleColumnAttributes(page []byte, sp section.SubheaderPointer, wordSize int, engine endian.EndianEngine) error {
	recSize := wordSize + 8
	count := (sp.Length - 2*wordSize - 12) / recSize
	base := sp.Offset + wordSize + 8

	for i := 0; i < count; i++ {
		rec := page[base+i*recSize:]
		dataOffset := readInt(rec, 0, wordSize, engine)
		dataLength := readInt(rec, wordSize, 4, engine)
		colType := format.ColumnType(rec[wordSize+4])

		d.columnDataOffsets = append(d.columnDataOffsets, dataOffset)
		d.columnDataLengths = append(d.columnDataLengths, dataLength)
		d.columnTypes = append(d.columnTypes, colType)
	}

	return nil
}

// handleFormatAndLabel decodes a FormatAndLabel subheader
// (§4.4 "FormatAndLabel"), materializing the Column at the current position.
func (d *Decoder) handleFormatAndLabel(page []byte, sp section.SubheaderPointer, wordSize int, engine endian.EndianEngine) error {
	base := sp.Offset + 3*wordSize

	formatTextIndex := int(codec.ReadInt(page[base:], 2, engine))
	formatOffset := int(codec.ReadInt(page[base+2:], 2, engine))
	formatLength := int(codec.ReadInt(page[base+4:], 2, engine))
	labelTextIndex := int(codec.ReadInt(page[base+6:], 2, engine))
	labelOffset := int(codec.ReadInt(page[base+8:], 2, engine))
	labelLength := int(codec.ReadInt(page[base+10:], 2, engine))

	clamp := func(idx int) int {
		if idx >= len(d.textBlocks) {
			return len(d.textBlocks) - 1
		}
		if idx < 0 {
			return 0
		}
		return idx
	}
	formatTextIndex = clamp(formatTextIndex)
	labelTextIndex = clamp(labelTextIndex)

	slice := func(textIndex, offset, length int) string {
		if textIndex < 0 || textIndex >= len(d.textBlocks) {
			return ""
		}
		blob := d.textBlocks[textIndex]
		end := offset + length
		if offset < 0 || end > len(blob) || end < offset {
			return ""
		}
		return string(blob[offset:end])
	}

	formatStr := slice(formatTextIndex, formatOffset, formatLength)
	labelStr := slice(labelTextIndex, labelOffset, labelLength)

	pos := len(d.Columns)

	name := ""
	if pos < len(d.columnNames) {
		name = d.columnNames[pos]
	}
	colType := format.ColumnUnknown
	if pos < len(d.columnTypes) {
		colType = d.columnTypes[pos]
	}
	length := 0
	if pos < len(d.columnDataLengths) {
		length = d.columnDataLengths[pos]
	}

	d.Columns = append(d.Columns, Column{
		Index:  pos,
		Name:   name,
		Label:  labelStr,
		Format: formatStr,
		Type:   colType,
		Length: length,
	})

	return nil
}

// ColumnDataOffsets returns the byte offset of each column within a row, in
// column order, for the row decoder.
func (d *Decoder) ColumnDataOffsets() []int {
	return d.columnDataOffsets
}

// ColumnDataLengths returns the byte length of each column within a row.
func (d *Decoder) ColumnDataLengths() []int {
	return d.columnDataLengths
}
