// Package cryptox holds the password hashing used by the user directory.
//
// Passwords are never stored. Signup derives a key with Argon2id from the
// password and a random salt, then keeps only sha256(key) as the verifier.
// Login repeats the derivation with the stored salt and compares verifiers
// in constant time.
package cryptox

import (
	"crypto/sha256"
	"crypto/subtle"

	"github.com/dmitrijs2005/gophblog/internal/common"
	"golang.org/x/crypto/argon2"
)

// SaltSize is the length of freshly generated salts, in bytes.
const SaltSize = 32

// Argon2id parameters.
const (
	argonTime    = 1
	argonMemory  = 64 * 1024
	argonThreads = 4
	argonKeyLen  = 32
)

// DeriveKey stretches password with salt using Argon2id.
func DeriveKey(password []byte, salt []byte) []byte {
	return argon2.IDKey(password, salt, argonTime, argonMemory, argonThreads, argonKeyLen)
}

// MakeVerifier returns the value persisted in place of the password.
func MakeVerifier(key []byte) []byte {
	hash := sha256.Sum256(key)
	return hash[:]
}

// NewCredentials generates a random salt and the matching verifier for password.
func NewCredentials(password []byte) (salt []byte, verifier []byte) {
	salt = common.GenerateRandByteArray(SaltSize)
	key := DeriveKey(password, salt)
	defer common.WipeByteArray(key)
	return salt, MakeVerifier(key)
}

// CheckPassword reports whether password matches the stored salt and verifier.
func CheckPassword(password []byte, salt []byte, verifier []byte) bool {
	if len(salt) == 0 || len(verifier) == 0 {
		return false
	}
	key := DeriveKey(password, salt)
	defer common.WipeByteArray(key)
	return subtle.ConstantTimeCompare(verifier, MakeVerifier(key)) == 1
}
