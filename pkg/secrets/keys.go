package secrets

import (
	"crypto/rand"

	"golang.org/x/crypto/argon2"
)

const (
	// KeySize is the derived key length for AES-256
	KeySize = 32

	// SaltSize is the random salt length stored with each ciphertext
	SaltSize = 16

	// Argon2id parameters per the RFC 9106 first recommended option,
	// scaled down to the second (64 MiB) for interactive CLI use.
	argonTime    = 1
	argonMemory  = 64 * 1024
	argonThreads = 4
)

// deriveKey stretches a passphrase into an AES-256 key with Argon2id.
func deriveKey(passphrase string, salt []byte) []byte {
	return argon2.IDKey([]byte(passphrase), salt, argonTime, argonMemory, argonThreads, KeySize)
}

// GenerateSalt returns a fresh random salt for key derivation.
func GenerateSalt() ([]byte, error) {
	salt := make([]byte, SaltSize)
	if _, err := rand.Read(salt); err != nil {
		return nil, err
	}
	return salt, nil
}

// clearBytes zeros a byte slice to shorten the window sensitive key
// material stays in memory.
func clearBytes(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
