// Package intern provides xxHash64 helpers over byte slices and strings.
// The decoder does not call them: subheader signatures are matched through
// a string-keyed map in package section, and the SASYZCRL/SASYZCR2 markers
// are found with bytes.Contains in package metadata.
package intern

import "github.com/cespare/xxhash/v2"

// Hash computes the xxHash64 of data.
func Hash(data []byte) uint64 {
	return xxhash.Sum64(data)
}

// HashString computes the xxHash64 of a string.
func HashString(s string) uint64 {
	return xxhash.Sum64String(s)
}
