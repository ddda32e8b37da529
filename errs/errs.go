// Package errs defines the sentinel error values returned by the sas7bdat
// decoder. Call sites wrap these with fmt.Errorf("...: %w", err) to attach
// positional context; callers use errors.Is to distinguish error kinds.
package errs

import "errors"

// Structural header/page errors. These abort the current parse.
var (
	ErrHeaderTooShort = errors.New("sas7bdat: header shorter than 288 bytes")
	ErrBadMagic       = errors.New("sas7bdat: magic number mismatch")
	ErrShortRead      = errors.New("sas7bdat: short read from byte source")
	ErrIncompleteRead = errors.New("sas7bdat: page read returned fewer bytes than page_length")
)

// Metadata integrity errors. Exactly one RowSize/ColumnSize subheader is
// allowed per file; duplicates abort the parse.
var (
	ErrDuplicateRowSize          = errors.New("sas7bdat: duplicate RowSize subheader")
	ErrDuplicateColumnSize       = errors.New("sas7bdat: duplicate ColumnSize subheader")
	ErrDuplicateColCountP1       = errors.New("sas7bdat: duplicate col_count_p1 field")
	ErrDuplicateColCountP2       = errors.New("sas7bdat: duplicate col_count_p2 field")
	ErrDuplicateMixPageRowCount  = errors.New("sas7bdat: duplicate mix_page_row_count field")
	ErrDuplicateLCS              = errors.New("sas7bdat: duplicate lcs field")
	ErrDuplicateLCP              = errors.New("sas7bdat: duplicate lcp field")
)

// Decompression errors.
var (
	ErrUnknownControlByte         = errors.New("sas7bdat: unknown RLE control byte")
	ErrDecompressedLengthMismatch = errors.New("sas7bdat: decompressed row length does not match row_length")
	ErrUnsupportedCompression     = errors.New("sas7bdat: unsupported compression scheme")
)

// Page/subheader classification.
var (
	ErrUnknownPageType           = errors.New("sas7bdat: unknown page type")
	ErrUnknownSubheaderSignature = errors.New("sas7bdat: unknown subheader signature")
)

// Non-fatal, reported through Properties.Warnings rather than returned.
var (
	ErrColCountMismatch = errors.New("sas7bdat: col_count_p1 + col_count_p2 != column_count")
)

// Column/schema shape errors surfaced once metadata walking completes.
var (
	ErrSchemaLengthMismatch = errors.New("sas7bdat: column metadata slices have mismatched lengths")
	ErrInvalidHeaderSize    = errors.New("sas7bdat: invalid header size")
)

// Reader lifecycle errors.
var (
	ErrReaderClosed = errors.New("sas7bdat: reader is closed")
)
