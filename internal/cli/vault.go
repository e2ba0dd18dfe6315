package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/TocConsulting/cryptex/pkg/sink"
)

var vaultCmd = &cobra.Command{
	Use:   "vault",
	Short: "Read back secrets stored with --save-file",
}

var vaultGetPath string

var vaultGetCmd = &cobra.Command{
	Use:   "get <name>",
	Short: "Decrypt and print one secret from the vault file",
	Long: `Get decrypts the named record from the encrypted vault file written by
--save-file and prints it to stdout. When a name was stored more than once
the newest record wins. The passphrase is prompted without echo.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := vaultGetPath
		if path == "" {
			path = app.VaultFile
		}
		passphrase, err := readPassphrase("Vault passphrase: ")
		if err != nil {
			return err
		}
		value, err := vaultGet(cmd.Context(), path, passphrase, args[0])
		if err != nil {
			return err
		}
		fmt.Println(value)
		return nil
	},
}

func vaultGet(ctx context.Context, path, passphrase, name string) (string, error) {
	fileSink, err := sink.NewFileSink(path, passphrase)
	if err != nil {
		return "", err
	}
	return fileSink.Retrieve(ctx, name)
}

func init() {
	vaultGetCmd.Flags().StringVar(&vaultGetPath, "sink-path", "", "vault file path (default from CRYPTEX_VAULT_FILE)")
	vaultCmd.AddCommand(vaultGetCmd)
}
