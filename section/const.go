package section

// MagicSize is the length, in bytes, of the fixed magic constant at the
// start of every SAS7BDAT file.
const MagicSize = 32

// Magic is the literal byte sequence every SAS7BDAT file begins with (§4.2 step 2).
var Magic = [MagicSize]byte{
	0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
	0x00, 0x00, 0x00, 0x00, 0xC2, 0xEA, 0x81, 0x60,
	0xB3, 0x14, 0x11, 0xCF, 0xBD, 0x92, 0x08, 0x00,
	0x09, 0xC7, 0x31, 0x8C, 0x18, 0x1F, 0x10, 0x11,
}

// HeaderPrefixSize is the number of bytes read before header_length is known.
const HeaderPrefixSize = 288

// SubheaderPointersOffset is the byte offset of the subheader pointer array
// relative to the page header's own offset (§4.3 step 3).
const SubheaderPointersOffset = 8

// pageBitOffset32/64 is PAGE_BIT_OFFSET for 32-bit and 64-bit layouts (§4.3 step 1).
const (
	pageBitOffset32 = 16
	pageBitOffset64 = 32
)

// PageBitOffset returns PAGE_BIT_OFFSET for the given layout.
func PageBitOffset(u64 bool) int {
	if u64 {
		return pageBitOffset64
	}

	return pageBitOffset32
}

// SubheaderPointerLen returns the size in bytes of one subheader pointer
// record: 24 for 64-bit layouts, 12 for 32-bit (§4.4).
func SubheaderPointerLen(u64 bool) int {
	if u64 {
		return 24
	}

	return 12
}

// WordSize returns L, the field-multiplier unit used throughout §4.4: 8
// bytes for 64-bit layouts, 4 for 32-bit.
func WordSize(u64 bool) int {
	if u64 {
		return 8
	}

	return 4
}

const (
	compressionTruncated = 1
)
