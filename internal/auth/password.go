package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"fmt"

	"golang.org/x/crypto/pbkdf2"
)

// Stored password hashes are base64(salt || derived key): a 16-byte random
// salt followed by a 32-byte PBKDF2-SHA256 key at 10 000 iterations.
const (
	saltLength       = 16
	keyLength        = 32
	pbkdf2Iterations = 10_000
)

// HashPassword derives a storage encoding for the given password with a fresh
// random salt. Two hashes of the same password never compare equal as strings.
func HashPassword(password string) (string, error) {
	salt := make([]byte, saltLength)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("generate salt: %w", err)
	}

	key := pbkdf2.Key([]byte(password), salt, pbkdf2Iterations, keyLength, sha256.New)

	combined := make([]byte, 0, saltLength+keyLength)
	combined = append(combined, salt...)
	combined = append(combined, key...)
	return base64.StdEncoding.EncodeToString(combined), nil
}

// VerifyPassword recomputes the derived key with the stored salt and compares
// it in constant time. It reports false for malformed stored values rather
// than erroring so callers treat them as failed credentials.
func VerifyPassword(password, storedHash string) bool {
	combined, err := base64.StdEncoding.DecodeString(storedHash)
	if err != nil || len(combined) != saltLength+keyLength {
		return false
	}

	salt := combined[:saltLength]
	expected := combined[saltLength:]
	key := pbkdf2.Key([]byte(password), salt, pbkdf2Iterations, keyLength, sha256.New)

	return subtle.ConstantTimeCompare(key, expected) == 1
}
