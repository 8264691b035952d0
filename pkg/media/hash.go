package media

import (
	"crypto/sha1"
	"encoding/hex"
)

// HashText returns the SHA-1 hex digest of a string. Media target paths are
// derived from this before any remote call is made, so repeated identical
// inputs land on the same file.
func HashText(s string) string {
	sum := sha1.Sum([]byte(s))
	return hex.EncodeToString(sum[:])
}

// HashBytes returns the SHA-1 hex digest of raw content, used to key the
// transcript cache by upload bytes rather than by the randomized filename.
func HashBytes(b []byte) string {
	sum := sha1.Sum(b)
	return hex.EncodeToString(sum[:])
}
