package utils

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// GenericMask is returned when the input is too short to show both ends
// without overlapping.
const GenericMask = "****"

// HashNIN returns the SHA-256 hex digest of the raw NIN. The digest is the
// unique lookup key, so the raw value never has to be stored or compared.
func HashNIN(nin string) string {
	sum := sha256.Sum256([]byte(nin))
	return hex.EncodeToString(sum[:])
}

// MaskNIN returns the display-safe form of a NIN: first four characters,
// a fixed run of asterisks, last four characters (e.g. 1234****5678).
func MaskNIN(nin string) string {
	if len(nin) < 8 {
		return GenericMask
	}
	return nin[:4] + strings.Repeat("*", 4) + nin[len(nin)-4:]
}
