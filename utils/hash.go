// utils/hash.go
package utils

import "strconv"

// HashString computes the 32-bit rolling checksum used to fingerprint
// backup payloads, rendered in base 36. Existing backup files carry
// checksums produced by this exact function, so the algorithm must not
// change.
func HashString(s string) string {
	var hash int32
	for _, r := range s {
		hash = (hash << 5) - hash + int32(r)
	}
	if hash < 0 {
		hash = -hash
	}
	return strconv.FormatInt(int64(hash), 36)
}
