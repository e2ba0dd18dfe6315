package secrets

import "errors"

var (
	// Passphrase validation errors
	ErrEmptyPassphrase = errors.New("passphrase cannot be empty")

	// Encryption/decryption errors
	ErrEncryptionFailed  = errors.New("encryption failed")
	ErrDecryptionFailed  = errors.New("decryption failed")
	ErrInvalidCiphertext = errors.New("invalid ciphertext format")
)
