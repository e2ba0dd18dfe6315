// Package secrets protects generated credentials at rest with a passphrase.
//
// A 32-byte key is stretched from the passphrase with Argon2id using a fresh
// random salt per encryption, then used with AES-256 in GCM mode. The salt
// and nonce are prepended to the ciphertext so every blob is self-contained.
//
// # Architecture
//
//  1. Key derivation – Argon2id (t=1, m=64MiB, p=4) turns the passphrase and
//     a 16-byte salt into the AES key. Derived keys are zeroed after use.
//  2. Encryption / Decryption – AES-GCM via the standard library. Helpers
//     accept raw byte slices (EncryptBytes, DecryptBytes) or strings that are
//     transparently base64-encoded (EncryptString, DecryptString).
//
// # Usage
//
//	ct, err := secrets.EncryptString("correct horse", "super-secret")
//	if err != nil {
//	    // handle error
//	}
//
//	plain, err := secrets.DecryptString("correct horse", ct)
//	if err != nil {
//	    // handle error
//	}
//
// # Error Handling
//
// All public functions return rich errors that wrap a sentinel package error
// such as ErrDecryptionFailed or ErrInvalidCiphertext. Use errors.Is to
// match against these sentinels. A wrong passphrase surfaces as
// ErrDecryptionFailed from the GCM tag check.
package secrets
