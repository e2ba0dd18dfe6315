package cli

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TocConsulting/cryptex/pkg/sink"
)

func TestVaultGet(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "vault.jsonl")
	ctx := context.Background()

	vault, err := sink.NewFileSink(path, "hunter2 horse battery")
	require.NoError(t, err)
	require.NoError(t, vault.Store(ctx, "db-password", "sw0rdf1sh!"))
	require.NoError(t, vault.Store(ctx, "db-password", "rotated-sw0rdf1sh!"))

	t.Run("returns the newest record", func(t *testing.T) {
		t.Parallel()

		got, err := vaultGet(ctx, path, "hunter2 horse battery", "db-password")
		require.NoError(t, err)
		assert.Equal(t, "rotated-sw0rdf1sh!", got)
	})

	t.Run("unknown name fails typed", func(t *testing.T) {
		t.Parallel()

		_, err := vaultGet(ctx, path, "hunter2 horse battery", "api-key")
		require.ErrorIs(t, err, sink.ErrSecretNotFound)
	})

	t.Run("wrong passphrase fails", func(t *testing.T) {
		t.Parallel()

		_, err := vaultGet(ctx, path, "not the passphrase", "db-password")
		require.Error(t, err)
	})
}
