package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommandTree(t *testing.T) {
	t.Parallel()

	var names []string
	for _, c := range rootCmd.Commands() {
		names = append(names, c.Name())
	}
	assert.Contains(t, names, "analyze")
	assert.Contains(t, names, "totp")
	assert.Contains(t, names, "templates")
	assert.Contains(t, names, "vault")

	for _, flag := range []string{
		"length", "count", "type", "special", "exclude", "no-similar",
		"template", "custom-charset", "api-format", "format", "separator",
		"kv", "copy", "qr", "qr-png",
		"save-aws", "aws-secret-name", "save-file", "sink-path", "save-env",
	} {
		assert.NotNil(t, rootCmd.Flags().Lookup(flag), "missing flag --%s", flag)
	}

	require.NotNil(t, totpNewCmd.Flags().Lookup("qr"))
	require.NotNil(t, totpNewCmd.Flags().Lookup("qr-png"))
	require.NotNil(t, totpNewCmd.Flags().Lookup("qr-data-uri"))
	require.NotNil(t, vaultGetCmd.Flags().Lookup("sink-path"))
}
