// Package textenc resolves the `encoding` Reader option to a
// golang.org/x/text decoder, so string columns can be converted from the
// file's declared codepage (commonly windows-1252 for SAS on Windows, or
// UTF-8/latin1 on Unix producers) to Go strings.
package textenc

import (
	"fmt"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/htmlindex"
)

// Decoder converts raw column bytes in a declared codepage to UTF-8.
type Decoder struct {
	dec *encoding.Decoder
}

// Default returns the decoder used when no encoding option is set: windows-1252,
// the SAS default on Windows producers and a safe superset of ASCII/latin1.
func Default() *Decoder {
	return &Decoder{dec: charmap.Windows1252.NewDecoder()}
}

// Resolve looks up name (an IANA name such as "windows-1252", "utf-8", or
// "iso-8859-1") and returns a Decoder for it.
func Resolve(name string) (*Decoder, error) {
	if name == "" {
		return Default(), nil
	}

	enc, err := htmlindex.Get(name)
	if err != nil {
		return nil, fmt.Errorf("textenc: unknown encoding %q: %w", name, err)
	}

	return &Decoder{dec: enc.NewDecoder()}, nil
}

// Decode converts raw into a UTF-8 string. Bytes that don't round-trip
// cleanly fall back to their raw form rather than failing the row read.
func (d *Decoder) Decode(raw []byte) string {
	out, err := d.dec.Bytes(raw)
	if err != nil {
		return string(raw)
	}

	return string(out)
}
