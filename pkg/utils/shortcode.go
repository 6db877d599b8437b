package utils

import (
	"crypto/rand"
	"encoding/hex"
)

// DefaultCodeLength is the length of generated short-link codes.
const DefaultCodeLength = 6

// GenerateShortCode returns a random hex string of the given length.
// Uniqueness is not guaranteed here; the database unique index on url.code
// is the final arbiter and a collision surfaces as a creation failure.
func GenerateShortCode(length int) (string, error) {
	if length <= 0 {
		length = DefaultCodeLength
	}
	buf := make([]byte, length)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf)[:length], nil
}
