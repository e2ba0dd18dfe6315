package secrets_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/TocConsulting/cryptex/pkg/secrets"
)

func TestEncryptDecryptString(t *testing.T) {
	t.Parallel()

	const passphrase = "correct horse battery staple"

	tests := []struct {
		name      string
		plaintext string
	}{
		{"empty string", ""},
		{"simple text", "Hello, World!"},
		{"api key", "sk_test_1234567890abcdef"},
		{"json", `{"id":1,"password":"xK9$mQ2!"}`},
		{"unicode", "Hello 世界 🌍"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			ciphertext, err := secrets.EncryptString(passphrase, tt.plaintext)
			require.NoError(t, err)
			require.NotEqual(t, tt.plaintext, ciphertext)

			decrypted, err := secrets.DecryptString(passphrase, ciphertext)
			require.NoError(t, err)
			require.Equal(t, tt.plaintext, decrypted)
		})
	}
}

func TestEncryptDecryptBytes(t *testing.T) {
	t.Parallel()

	const passphrase = "hunter2"

	tests := []struct {
		name string
		data []byte
	}{
		{"empty bytes", []byte{}},
		{"single byte", []byte{42}},
		{"binary data", []byte{0x00, 0x01, 0x02, 0x03, 0xFF, 0xFE, 0xFD}},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			ciphertext, err := secrets.EncryptBytes(passphrase, tt.data)
			require.NoError(t, err)
			if len(tt.data) > 0 {
				require.False(t, bytes.Equal(ciphertext, tt.data))
			}

			decrypted, err := secrets.DecryptBytes(passphrase, ciphertext)
			require.NoError(t, err)
			require.Equal(t, tt.data, decrypted)
		})
	}
}

func TestEncryptionIsSalted(t *testing.T) {
	t.Parallel()

	a, err := secrets.EncryptString("passphrase", "same input")
	require.NoError(t, err)
	b, err := secrets.EncryptString("passphrase", "same input")
	require.NoError(t, err)
	require.NotEqual(t, a, b)
}

func TestDecryptFailures(t *testing.T) {
	t.Parallel()

	t.Run("empty passphrase", func(t *testing.T) {
		t.Parallel()
		_, err := secrets.EncryptString("", "data")
		require.ErrorIs(t, err, secrets.ErrEmptyPassphrase)

		_, err = secrets.DecryptBytes("", []byte("whatever"))
		require.ErrorIs(t, err, secrets.ErrEmptyPassphrase)
	})

	t.Run("wrong passphrase", func(t *testing.T) {
		t.Parallel()
		ciphertext, err := secrets.EncryptString("right", "data")
		require.NoError(t, err)

		_, err = secrets.DecryptString("wrong", ciphertext)
		require.ErrorIs(t, err, secrets.ErrDecryptionFailed)
	})

	t.Run("truncated ciphertext", func(t *testing.T) {
		t.Parallel()
		_, err := secrets.DecryptBytes("pass", []byte{1, 2, 3})
		require.ErrorIs(t, err, secrets.ErrInvalidCiphertext)
	})

	t.Run("not base64", func(t *testing.T) {
		t.Parallel()
		_, err := secrets.DecryptString("pass", "%%%not-base64%%%")
		require.ErrorIs(t, err, secrets.ErrInvalidCiphertext)
	})

	t.Run("tampered ciphertext", func(t *testing.T) {
		t.Parallel()
		ciphertext, err := secrets.EncryptBytes("pass", []byte("payload"))
		require.NoError(t, err)
		ciphertext[len(ciphertext)-1] ^= 0x01

		_, err = secrets.DecryptBytes("pass", ciphertext)
		require.ErrorIs(t, err, secrets.ErrDecryptionFailed)
	})
}

func TestGenerateSalt(t *testing.T) {
	t.Parallel()

	a, err := secrets.GenerateSalt()
	require.NoError(t, err)
	require.Len(t, a, secrets.SaltSize)

	b, err := secrets.GenerateSalt()
	require.NoError(t, err)
	require.NotEqual(t, a, b)
}
