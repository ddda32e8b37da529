package section

import (
	"fmt"

	"github.com/kadekirby/sas7bdat/endian"
	"github.com/kadekirby/sas7bdat/format"
	"github.com/kadekirby/sas7bdat/internal/codec"
)

// PageHeader is the small fixed header at the start of every page (§4.3 step 1).
type PageHeader struct {
	Type            format.PageType
	BlockCount      int
	SubheaderCount  int
	BitOffset       int // PAGE_BIT_OFFSET used to locate this page's body.
}

// ParsePageHeader decodes the page header from a full page's bytes.
func ParsePageHeader(page []byte, u64 bool, engine endian.EndianEngine) (PageHeader, error) {
	off := PageBitOffset(u64)
	if off+6 > len(page) {
		return PageHeader{}, fmt.Errorf("section: page too short for page header (len=%d)", len(page))
	}

	typ := format.PageType(int16(codec.ReadInt(page[off:], 2, engine)))
	blockCount := int(codec.ReadInt(page[off+2:], 2, engine))
	subheaderCount := int(codec.ReadInt(page[off+4:], 2, engine))

	return PageHeader{
		Type:           typ,
		BlockCount:     blockCount,
		SubheaderCount: subheaderCount,
		BitOffset:      off,
	}, nil
}

// RowBaseOffset returns the byte offset, within the page, of the k-th row's
// first byte, for a DATA or MIX page (§4.5). alignCorrection is the 0- or
// 4-byte pad inserted before MIX-page rows; callers compute it per §4.5.
func RowBaseOffset(ph PageHeader, k, rowLength, subheaderCount, ptrLen, alignCorrection int, isMix bool) int {
	base := ph.BitOffset + SubheaderPointersOffset
	if isMix {
		base += alignCorrection + subheaderCount*ptrLen
	}

	return base + k*rowLength
}

// MixAlignCorrection computes the alignment pad inserted before MIX-page
// rows when alignment correction is enabled (§4.5).
func MixAlignCorrection(ph PageHeader, subheaderCount, ptrLen int, enabled bool) int {
	if !enabled {
		return 0
	}

	return (ph.BitOffset + SubheaderPointersOffset + subheaderCount*ptrLen) % 8
}
