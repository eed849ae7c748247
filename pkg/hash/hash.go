package hash

import (
	"crypto/sha256"
	"encoding/hex"
)

// SHA256Hex returns the hex-encoded SHA256 hash of the input string.
func SHA256Hex(input string) string {
	h := sha256.Sum256([]byte(input))
	return hex.EncodeToString(h[:])
}

// ShortHash returns the first 12 hex characters of SHA256(input). Used for
// log correlation of client IPs without storing raw PII.
func ShortHash(input string) string {
	return SHA256Hex(input)[:12]
}
