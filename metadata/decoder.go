// Package metadata implements the nine subheader handlers that build a
// file's schema and Properties while the page reader walks META/MIX/AMD
// pages (§4.4).
package metadata

import (
	"fmt"

	"github.com/kadekirby/sas7bdat/endian"
	"github.com/kadekirby/sas7bdat/format"
	"github.com/kadekirby/sas7bdat/section"
)

// Decoder accumulates schema state across every META/MIX/AMD page's
// subheaders, in the processing order the file layout guarantees
// (ColumnName precedes ColumnAttributes precedes FormatAndLabel per column).
type Decoder struct {
	Props *section.Properties

	textBlocks [][]byte // one entry per ColumnText subheader, in arrival order.

	columnNames       []string
	columnDataOffsets []int
	columnDataLengths []int
	columnTypes       []format.ColumnType

	Columns []Column

	// DataPointers collects subheader pointers classified as row data
	// (§4.4 "Data subheader"), in encounter order, for the row decoder.
	DataPointers []section.SubheaderPointer
}

// NewDecoder creates a Decoder bound to props.
func NewDecoder(props *section.Properties) *Decoder {
	return &Decoder{Props: props}
}

// HandleSubheader classifies and dispatches one subheader (§4.4).
func (d *Decoder) HandleSubheader(page []byte, sp section.SubheaderPointer, u64 bool, engine endian.EndianEngine) error {
	if sp.Empty() {
		return nil
	}

	wordSize := section.WordSize(u64)
	sigLen := 4
	if u64 {
		sigLen = 8
	}
	if sp.Offset+sigLen > len(page) {
		return nil
	}

	sig := section.ReadSignature(page, sp.Offset, u64)
	kind := section.ClassifySubheader(sig, sp, d.Props.Compression)

	switch kind {
	case format.SubheaderRowSize:
		return d.handleRowSize(page, sp, u64, wordSize, engine)
	case format.SubheaderColumnSize:
		return d.handleColumnSize(page, sp, wordSize, engine)
	case format.SubheaderSubheaderCounts:
		return nil
	case format.SubheaderColumnText:
		return d.handleColumnText(page, sp, u64, wordSize, engine)
	case format.SubheaderColumnName:
		return d.handleColumnName(page, sp, wordSize, engine)
	case format.SubheaderColumnAttributes:
		return d.handleColumnAttributes(page, sp, wordSize, engine)
	case format.SubheaderFormatAndLabel:
		return d.handleFormatAndLabel(page, sp, wordSize, engine)
	case format.SubheaderColumnList:
		return nil
	case format.SubheaderData:
		d.DataPointers = append(d.DataPointers, sp)
		return nil
	default:
		d.Props.Warn(fmt.Sprintf("unknown subheader signature at page offset %d", sp.Offset))
		return nil
	}
}
