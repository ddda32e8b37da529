package section

import (
	"time"

	"github.com/kadekirby/sas7bdat/endian"
	"github.com/kadekirby/sas7bdat/format"
)

// Properties holds everything learned about a file during header parsing
// and metadata walking (§3 "File-level properties").
//
// It is created once at reader construction, mutated only while parsing the
// header and walking metadata subheaders, and frozen before the first data
// row is emitted.
type Properties struct {
	U64        bool
	Endianness endian.EndianEngine
	Platform   format.Platform

	HeaderLength int
	PageLength   int
	PageCount    int

	RowLength        int
	RowCount         int
	ColumnCount      int
	ColCountP1       int
	ColCountP2       int
	MixPageRowCount  int
	LCS              int
	LCP              int
	Compression      format.CompressionType

	Name         string
	FileType     string
	DateCreated  time.Time
	DateModified time.Time
	SASRelease   string
	ServerType   string
	OSType       string
	OSName       string
	Creator      string
	CreatorProc  string

	// Warnings accumulates non-fatal integrity issues surfaced during
	// parsing (§7 ColCountMismatch, unknown subheader signatures, a 64-bit
	// header_length != 8192) instead of failing the read.
	Warnings []string

	// headerCache holds the bytes from offset 288 to header_length. The
	// metadata decoder does not read it; it is only returned by HeaderCache.
	headerCache []byte
}

// Warn appends a non-fatal diagnostic message.
func (p *Properties) Warn(msg string) {
	p.Warnings = append(p.Warnings, msg)
}

// HeaderCache returns the bytes following the 288-byte fixed header prefix,
// up to header_length. It is exposed (rather than kept private-only) so a
// caller debugging a malformed file can inspect the raw cached region.
func (p *Properties) HeaderCache() []byte {
	return p.headerCache
}
