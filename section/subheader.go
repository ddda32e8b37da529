package section

import (
	"github.com/kadekirby/sas7bdat/endian"
	"github.com/kadekirby/sas7bdat/format"
	"github.com/kadekirby/sas7bdat/internal/codec"
)

// SubheaderPointer is one (offset, length, compression, type) quadruple
// read from a page's subheader pointer array (§3 "Subheader pointer").
type SubheaderPointer struct {
	Offset      int
	Length      int
	Compression int8
	SubType     int8
}

// Empty reports whether this pointer is a zero-length slot, skipped per §4.4.
func (sp SubheaderPointer) Empty() bool {
	return sp.Length == 0 || sp.Compression == compressionTruncated
}

// ParseSubheaderPointers reads all subheader pointers for a page (§4.4).
func ParseSubheaderPointers(page []byte, ph PageHeader, u64 bool, engine endian.EndianEngine) []SubheaderPointer {
	ptrLen := SubheaderPointerLen(u64)
	wordSize := WordSize(u64)
	base := ph.BitOffset + SubheaderPointersOffset

	pointers := make([]SubheaderPointer, 0, ph.SubheaderCount)
	for i := 0; i < ph.SubheaderCount; i++ {
		recOff := base + i*ptrLen
		if recOff+ptrLen > len(page) {
			break
		}

		offset := int(codec.ReadInt(page[recOff:], wordSize, engine))
		length := int(codec.ReadInt(page[recOff+wordSize:], wordSize, engine))
		compression := int8(page[recOff+2*wordSize])
		subType := int8(page[recOff+2*wordSize+1])

		pointers = append(pointers, SubheaderPointer{
			Offset:      offset,
			Length:      length,
			Compression: compression,
			SubType:     subType,
		})
	}

	return pointers
}

// ReadSignature returns the 4 (32-bit) or 8 (64-bit) signature bytes at
// offset within page.
func ReadSignature(page []byte, offset int, u64 bool) []byte {
	n := 4
	if u64 {
		n = 8
	}

	return page[offset : offset+n]
}

// subheader signature variants, literal byte order as found on disk, for
// each of the four (word size x endianness) combinations (§4.4 table).
var signatureTable = map[string]format.SubheaderKind{
	"\xf7\xf7\xf7\xf7":                 format.SubheaderRowSize,
	"\x00\x00\x00\x00\xf7\xf7\xf7\xf7": format.SubheaderRowSize,
	"\xf7\xf7\xf7\xf7\x00\x00\x00\x00": format.SubheaderRowSize,

	"\xf6\xf6\xf6\xf6":                 format.SubheaderColumnSize,
	"\x00\x00\x00\x00\xf6\xf6\xf6\xf6": format.SubheaderColumnSize,
	"\xf6\xf6\xf6\xf6\x00\x00\x00\x00": format.SubheaderColumnSize,

	"\x00\xfc\xff\xff":                 format.SubheaderSubheaderCounts,
	"\xff\xff\xfc\x00":                 format.SubheaderSubheaderCounts,
	"\x00\xfc\xff\xff\xff\xff\xff\xff": format.SubheaderSubheaderCounts,
	"\xff\xff\xff\xff\xff\xff\xfc\x00": format.SubheaderSubheaderCounts,

	"\xfd\xff\xff\xff":                 format.SubheaderColumnText,
	"\xff\xff\xff\xfd":                 format.SubheaderColumnText,
	"\xfd\xff\xff\xff\xff\xff\xff\xff": format.SubheaderColumnText,
	"\xff\xff\xff\xff\xff\xff\xff\xfd": format.SubheaderColumnText,

	"\xff\xff\xff\xff":                 format.SubheaderColumnName,
	"\xff\xff\xff\xff\xff\xff\xff\xff": format.SubheaderColumnName,

	"\xfc\xff\xff\xff":                 format.SubheaderColumnAttributes,
	"\xff\xff\xff\xfc":                 format.SubheaderColumnAttributes,
	"\xfc\xff\xff\xff\xff\xff\xff\xff": format.SubheaderColumnAttributes,
	"\xff\xff\xff\xff\xff\xff\xff\xfc": format.SubheaderColumnAttributes,

	"\xfe\xfb\xff\xff":                 format.SubheaderFormatAndLabel,
	"\xff\xff\xfb\xfe":                 format.SubheaderFormatAndLabel,
	"\xfe\xfb\xff\xff\xff\xff\xff\xff": format.SubheaderFormatAndLabel,
	"\xff\xff\xff\xff\xff\xff\xfb\xfe": format.SubheaderFormatAndLabel,

	"\xfe\xff\xff\xff":                 format.SubheaderColumnList,
	"\xff\xff\xff\xfe":                 format.SubheaderColumnList,
	"\xfe\xff\xff\xff\xff\xff\xff\xff": format.SubheaderColumnList,
	"\xff\xff\xff\xff\xff\xff\xff\xfe": format.SubheaderColumnList,
}

// ClassifySubheader determines which handler a subheader dispatches to,
// given its signature bytes and the current compression state (§4.4).
func ClassifySubheader(signature []byte, sp SubheaderPointer, compression format.CompressionType) format.SubheaderKind {
	if kind, ok := signatureTable[string(signature)]; ok {
		return kind
	}

	if compression != format.CompressionNone && (sp.Compression == 4 || sp.Compression == 0) && sp.SubType == 1 {
		return format.SubheaderData
	}

	return format.SubheaderUnknown
}
