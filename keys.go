package chainhash

import "github.com/cespare/xxhash/v2"

// StringKey derives a deterministic int64 table key from a string
// identifier using xxHash. It lets callers whose natural keys are strings
// (names, UUIDs) use the integer-keyed table; the usual caveat applies that
// two distinct strings can map to the same key.
func StringKey(s string) int64 {
	return int64(xxhash.Sum64String(s))
}
