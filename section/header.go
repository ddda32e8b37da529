package section

import (
	"bytes"
	"fmt"
	"io"
	"time"

	"github.com/kadekirby/sas7bdat/endian"
	"github.com/kadekirby/sas7bdat/errs"
	"github.com/kadekirby/sas7bdat/format"
	"github.com/kadekirby/sas7bdat/internal/codec"
)

// sasEpoch is the zero point for every date/time value in the file.
var sasEpoch = time.Date(1960, time.January, 1, 0, 0, 0, 0, time.UTC)

// ParseHeader reads and decodes the fixed file header (§4.2). r must
// provide at least HeaderPrefixSize bytes at offset 0; ParseHeader then also
// reads the remaining Properties.HeaderLength-HeaderPrefixSize header bytes
// into the header cache returned by Properties.HeaderCache.
func ParseHeader(r io.ReaderAt) (*Properties, error) {
	buf := make([]byte, HeaderPrefixSize)
	n, err := r.ReadAt(buf, 0)
	if n < HeaderPrefixSize {
		return nil, fmt.Errorf("%w: got %d bytes", errs.ErrHeaderTooShort, n)
	}
	if err != nil && err != io.EOF {
		return nil, fmt.Errorf("section: reading header: %w", err)
	}

	if !bytes.Equal(buf[:MagicSize], Magic[:]) {
		return nil, errs.ErrBadMagic
	}

	p := &Properties{}

	p.U64 = buf[32] == '3'
	align2 := 0
	if p.U64 {
		align2 = 4
	}

	align1 := 0
	if buf[35] == '3' {
		align1 = 4
	}
	total := align1 + align2

	p.Endianness = endian.FromByte(buf[37])

	switch buf[39] {
	case '1':
		p.Platform = format.PlatformUnix
	case '2':
		p.Platform = format.PlatformWindows
	default:
		p.Platform = format.PlatformUnknown
	}

	p.Name = string(codec.ReadText(buf[92:], 64))
	p.FileType = string(codec.ReadText(buf[156:], 8))

	dateCreatedRaw, _ := codec.ReadDouble(buf[164+align1:], 8, p.Endianness)
	p.DateCreated = sasEpoch.Add(time.Duration(dateCreatedRaw * float64(time.Second)))

	dateModifiedRaw, _ := codec.ReadDouble(buf[172+align1:], 8, p.Endianness)
	p.DateModified = sasEpoch.Add(time.Duration(dateModifiedRaw * float64(time.Second)))

	p.HeaderLength = int(codec.ReadInt(buf[196+align1:], 4, p.Endianness))
	p.PageLength = int(codec.ReadInt(buf[200+align1:], 4, p.Endianness))
	p.PageCount = int(codec.ReadInt(buf[204+align1:], 4+align2, p.Endianness))

	p.SASRelease = string(codec.ReadText(buf[216+total:], 8))
	p.ServerType = string(codec.ReadText(buf[224+total:], 16))
	p.OSType = string(codec.ReadText(buf[240+total:], 16))
	osMaker := string(codec.ReadText(buf[256+total:], 16))
	p.OSName = string(codec.ReadText(buf[272+total:], 16))
	if p.OSName == "" {
		p.OSName = osMaker
	}

	if p.U64 && p.HeaderLength != 8192 {
		p.Warn(fmt.Sprintf("64-bit file with unexpected header_length %d (expected 8192)", p.HeaderLength))
	}

	remaining := p.HeaderLength - HeaderPrefixSize
	if remaining > 0 {
		cache := make([]byte, remaining)
		n, err := r.ReadAt(cache, HeaderPrefixSize)
		if n < remaining {
			return nil, fmt.Errorf("%w: header cache, got %d of %d bytes", errs.ErrIncompleteRead, n, remaining)
		}
		if err != nil && err != io.EOF {
			return nil, fmt.Errorf("section: reading header cache: %w", err)
		}
		p.headerCache = cache
	}

	return p, nil
}
