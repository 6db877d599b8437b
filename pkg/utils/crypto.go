package utils

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"

	"golang.org/x/crypto/argon2"
)

const (
	saltBytes    = 16
	argonTime    = 1
	argonMemory  = 64 * 1024
	argonThreads = 4
	argonKeyLen  = 32
)

// NewSalt returns a fresh random salt, hex-encoded.
func NewSalt() (string, error) {
	buf := make([]byte, saltBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}

// HashPassword derives an argon2id digest from the plaintext and salt.
// The same (plaintext, salt) pair always yields the same digest.
func HashPassword(plaintext, salt string) string {
	key := argon2.IDKey([]byte(plaintext), []byte(salt), argonTime, argonMemory, argonThreads, argonKeyLen)
	return hex.EncodeToString(key)
}

// CheckPassword reports whether the plaintext hashes to the stored digest
// under the stored salt. Comparison is constant-time.
func CheckPassword(plaintext, salt, digest string) bool {
	computed := HashPassword(plaintext, salt)
	return subtle.ConstantTimeCompare([]byte(computed), []byte(digest)) == 1
}
