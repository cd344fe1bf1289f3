package user

import (
	"crypto/rand"
	"crypto/sha512"
	"crypto/subtle"
	"encoding/hex"
	"strings"

	"golang.org/x/crypto/pbkdf2"
)

// Stored format is "<hex salt>:<hex pbkdf2-sha512 digest>".
const (
	saltBytes        = 16
	hashIterations   = 1000
	hashKeyLen       = 64
	hashSeparator    = ":"
	dummyStoredValue = "00000000000000000000000000000000:00"
)

func HashPassword(password string) (string, error) {
	raw := make([]byte, saltBytes)
	if _, err := rand.Read(raw); err != nil {
		return "", err
	}
	salt := hex.EncodeToString(raw)
	return salt + hashSeparator + derive(password, salt), nil
}

// CheckPasswordHash recomputes the digest with the stored salt. Malformed
// stored values never match.
func CheckPasswordHash(password, stored string) bool {
	salt, digest, ok := strings.Cut(stored, hashSeparator)
	if !ok || salt == "" || digest == "" {
		return false
	}
	computed := derive(password, salt)
	return subtle.ConstantTimeCompare([]byte(computed), []byte(digest)) == 1
}

func derive(password, salt string) string {
	key := pbkdf2.Key([]byte(password), []byte(salt), hashIterations, hashKeyLen, sha512.New)
	return hex.EncodeToString(key)
}
