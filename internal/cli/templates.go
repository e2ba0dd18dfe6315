package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/TocConsulting/cryptex/pkg/password"
)

var templatesCmd = &cobra.Command{
	Use:   "templates",
	Short: "List the available compliance templates",
	Args:  cobra.NoArgs,
	RunE: func(_ *cobra.Command, _ []string) error {
		fmt.Println("Available Compliance Templates")
		fmt.Println()

		for _, entry := range password.Templates() {
			tpl, err := password.Describe(entry.Name)
			if err != nil {
				return err
			}
			fmt.Printf("  %s\n", entry.Name)
			fmt.Printf("    %s\n", tpl.Description)
			fmt.Printf("    Length: %d chars | Requirements: %s\n",
				tpl.Policy.Length, describeMinimums(tpl.Policy))
			if tpl.Policy.NoSimilar {
				fmt.Println("    Excludes similar characters (i, l, 1, L, o, 0, O)")
			}
			fmt.Printf("    Usage: cryptex --template %s\n", entry.Name)
			fmt.Println()
		}
		return nil
	},
}

func describeMinimums(p password.Policy) string {
	var reqs []string
	if p.MinUpper > 0 {
		reqs = append(reqs, fmt.Sprintf("%d+ uppercase", p.MinUpper))
	}
	if p.MinLower > 0 {
		reqs = append(reqs, fmt.Sprintf("%d+ lowercase", p.MinLower))
	}
	if p.MinDigit > 0 {
		reqs = append(reqs, fmt.Sprintf("%d+ digits", p.MinDigit))
	}
	if p.MinSpecial > 0 {
		reqs = append(reqs, fmt.Sprintf("%d+ special", p.MinSpecial))
	}
	if len(reqs) == 0 {
		return "flexible"
	}
	return strings.Join(reqs, ", ")
}
