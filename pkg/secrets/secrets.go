package secrets

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"io"
)

// EncryptString encrypts a string under a passphrase-derived key.
// Returns base64-encoded ciphertext.
func EncryptString(passphrase, plaintext string) (string, error) {
	ciphertext, err := EncryptBytes(passphrase, []byte(plaintext))
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(ciphertext), nil
}

// DecryptString decrypts a base64-encoded ciphertext back to string.
func DecryptString(passphrase, ciphertext string) (string, error) {
	ciphertextBytes, err := base64.StdEncoding.DecodeString(ciphertext)
	if err != nil {
		return "", errors.Join(ErrInvalidCiphertext, err)
	}

	plaintextBytes, err := DecryptBytes(passphrase, ciphertextBytes)
	if err != nil {
		return "", err
	}

	return string(plaintextBytes), nil
}

// EncryptBytes encrypts raw bytes with AES-256-GCM under a key derived from
// the passphrase. Output layout: salt + nonce + encrypted data + tag.
func EncryptBytes(passphrase string, data []byte) ([]byte, error) {
	if passphrase == "" {
		return nil, ErrEmptyPassphrase
	}

	salt, err := GenerateSalt()
	if err != nil {
		return nil, errors.Join(ErrEncryptionFailed, err)
	}

	key := deriveKey(passphrase, salt)
	defer clearBytes(key)

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, errors.Join(ErrEncryptionFailed, err)
	}

	aesGCM, err := cipher.NewGCM(block)
	if err != nil {
		return nil, errors.Join(ErrEncryptionFailed, err)
	}

	nonce := make([]byte, aesGCM.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, errors.Join(ErrEncryptionFailed, err)
	}

	out := make([]byte, 0, SaltSize+len(nonce)+len(data)+aesGCM.Overhead())
	out = append(out, salt...)
	out = append(out, nonce...)
	return aesGCM.Seal(out, nonce, data, nil), nil
}

// DecryptBytes decrypts ciphertext produced by EncryptBytes.
// Expects layout: salt + nonce + encrypted data + tag.
func DecryptBytes(passphrase string, ciphertext []byte) ([]byte, error) {
	if passphrase == "" {
		return nil, ErrEmptyPassphrase
	}
	if len(ciphertext) < SaltSize {
		return nil, ErrInvalidCiphertext
	}

	salt, rest := ciphertext[:SaltSize], ciphertext[SaltSize:]

	key := deriveKey(passphrase, salt)
	defer clearBytes(key)

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, errors.Join(ErrDecryptionFailed, err)
	}

	aesGCM, err := cipher.NewGCM(block)
	if err != nil {
		return nil, errors.Join(ErrDecryptionFailed, err)
	}

	nonceSize := aesGCM.NonceSize()
	if len(rest) < nonceSize {
		return nil, ErrInvalidCiphertext
	}

	nonce, rest := rest[:nonceSize], rest[nonceSize:]

	plaintext, err := aesGCM.Open(nil, nonce, rest, nil)
	if err != nil {
		return nil, errors.Join(ErrDecryptionFailed, err)
	}

	return plaintext, nil
}
