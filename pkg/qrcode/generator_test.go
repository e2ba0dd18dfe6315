package qrcode_test

import (
	"bytes"
	"encoding/base64"
	"image/png"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TocConsulting/cryptex/pkg/qr"
	"github.com/TocConsulting/cryptex/pkg/qrcode"
)

func TestGenerate(t *testing.T) {
	t.Parallel()

	t.Run("rejects empty content", func(t *testing.T) {
		t.Parallel()
		for _, content := range []string{"", "   \t\n"} {
			result, err := qrcode.Generate(content, 256)
			require.Error(t, err)
			require.Nil(t, result)
			assert.ErrorIs(t, err, qrcode.ErrEmptyContent)
		}
	})

	t.Run("produces a PNG of the requested size", func(t *testing.T) {
		t.Parallel()
		result, err := qrcode.Generate("otpauth://totp/vault:ops?secret=JBSWY3DPEHPK3PXP", 400)
		require.NoError(t, err)

		img, err := png.Decode(bytes.NewReader(result))
		require.NoError(t, err)
		assert.Equal(t, 400, img.Bounds().Dx())
		assert.Equal(t, 400, img.Bounds().Dy())
	})

	t.Run("applies the default size for zero or negative", func(t *testing.T) {
		t.Parallel()
		for _, size := range []int{0, -10} {
			result, err := qrcode.Generate("hello", size)
			require.NoError(t, err)

			img, err := png.Decode(bytes.NewReader(result))
			require.NoError(t, err)
			assert.Equal(t, 256, img.Bounds().Dx())
		}
	})

	t.Run("output scans with the first-party decoder", func(t *testing.T) {
		t.Parallel()
		const content = "otpauth://totp/Example:alice@example.com?secret=JBSWY3DPEHPK3PXP&issuer=Example"

		result, err := qrcode.Generate(content, 512)
		require.NoError(t, err)

		img, err := png.Decode(bytes.NewReader(result))
		require.NoError(t, err)

		got, err := qr.Decode(img)
		require.NoError(t, err)
		assert.Equal(t, content, got)
	})
}

func TestGenerateBase64Image(t *testing.T) {
	t.Parallel()

	t.Run("rejects empty content", func(t *testing.T) {
		t.Parallel()
		result, err := qrcode.GenerateBase64Image("", 256)
		require.Error(t, err)
		require.Empty(t, result)
		assert.ErrorIs(t, err, qrcode.ErrEmptyContent)
	})

	t.Run("wraps a valid PNG in a data URI", func(t *testing.T) {
		t.Parallel()
		result, err := qrcode.GenerateBase64Image("https://example.com", 256)
		require.NoError(t, err)

		const prefix = "data:image/png;base64,"
		require.True(t, strings.HasPrefix(result, prefix))

		decoded, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(result, prefix))
		require.NoError(t, err)

		img, err := png.Decode(bytes.NewReader(decoded))
		require.NoError(t, err)
		assert.Equal(t, 256, img.Bounds().Dx())
	})
}

func TestASCII(t *testing.T) {
	t.Parallel()

	t.Run("rejects empty content", func(t *testing.T) {
		t.Parallel()
		_, err := qrcode.ASCII("  ")
		assert.ErrorIs(t, err, qrcode.ErrEmptyContent)
	})

	t.Run("renders a square block drawing", func(t *testing.T) {
		t.Parallel()
		art, err := qrcode.ASCII("hunter2")
		require.NoError(t, err)

		lines := strings.Split(strings.TrimRight(art, "\n"), "\n")
		require.NotEmpty(t, lines)
		width := len([]rune(lines[0]))
		for _, line := range lines {
			assert.Equal(t, width, len([]rune(line)))
		}
		// Version 1 plus a two-module quiet zone, two rows per line.
		assert.Equal(t, 25, width)
		assert.Len(t, lines, 13)
		assert.Contains(t, art, "█")
	})
}

func TestTerminal(t *testing.T) {
	t.Parallel()

	m, err := qr.Encode("terminal render", qr.Medium)
	require.NoError(t, err)

	art := qrcode.Terminal(m)
	lines := strings.Split(strings.TrimRight(art, "\n"), "\n")
	assert.Len(t, lines, (m.Size()+2*2+1)/2)
}
