package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/TocConsulting/cryptex/pkg/password"
)

var analyzeJSON bool

var analyzeCmd = &cobra.Command{
	Use:   "analyze [password]",
	Short: "Score a password's strength without generating anything",
	Long: `Analyze scores an existing password: entropy estimate, additive
strength score, and the character classes present. When the password is
omitted it is read from the terminal without echo, so it never lands in
shell history.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		var secret string
		if len(args) == 1 {
			secret = args[0]
		} else {
			var err error
			secret, err = readPassphrase("Password: ")
			if err != nil {
				return err
			}
		}

		report := password.Analyze(secret, 0)
		if analyzeJSON {
			out, err := json.MarshalIndent(report, "", "  ")
			if err != nil {
				return err
			}
			fmt.Println(string(out))
			return nil
		}
		fmt.Println(formatReport(secret, report))
		return nil
	},
}

func init() {
	analyzeCmd.Flags().BoolVar(&analyzeJSON, "json", false, "emit the report as JSON")
}
