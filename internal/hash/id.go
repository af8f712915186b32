// Package hash computes the string fingerprint internal/intern uses to key
// its first-occurrence table of metadata strings.
package hash

import "github.com/cespare/xxhash/v2"

// Fingerprint computes the xxHash64 of data, used as the bucket key for
// intern.Tracker's hash-then-verify lookup.
func Fingerprint(data string) uint64 {
	return xxhash.Sum64String(data)
}
