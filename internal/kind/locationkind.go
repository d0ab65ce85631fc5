package kind

import "fmt"

// LocationKind identifies the role a source_location row plays. Unlike
// NodeKind and EdgeKind, this encoding is a dense 0..9 sequence with no
// UNKNOWN sentinel — an out-of-range integer is a hard error.
type LocationKind int32

const (
	LocationToken LocationKind = iota
	LocationScope
	LocationQualifier
	LocationLocalSymbol
	LocationSignature
	LocationAtomicRange
	LocationIndexerError
	LocationFulltextSearch
	LocationScreenSearch
	LocationUnsolved
)

// ErrBadLocationKind is returned by IntToLocationKind when v falls outside
// the defined 0..9 range.
var ErrBadLocationKind = fmt.Errorf("srctrail/kind: integer outside defined LocationKind range")

// IntToLocationKind decodes v into a LocationKind, returning
// ErrBadLocationKind for any integer outside 0..9.
func IntToLocationKind(v int32) (LocationKind, error) {
	if v < int32(LocationToken) || v > int32(LocationUnsolved) {
		return 0, fmt.Errorf("location kind %d: %w", v, ErrBadLocationKind)
	}
	return LocationKind(v), nil
}

// LocationKindToInt returns the on-disk integer for k.
func LocationKindToInt(k LocationKind) int32 {
	return int32(k)
}
