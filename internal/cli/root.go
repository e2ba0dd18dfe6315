package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/TocConsulting/cryptex/pkg/config"
	"github.com/TocConsulting/cryptex/pkg/logger"
	"github.com/TocConsulting/cryptex/pkg/password"
)

// Version is stamped at build time via -ldflags.
var Version = "1.1.0"

// Global state shared by the subcommands. Populated once in setup before
// any RunE fires.
var (
	app config.App
	log *slog.Logger

	quiet   bool
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:     "cryptex [output-file]",
	Short:   "Generate cryptographically secure passwords, API keys, and TOTP secrets",
	Version: Version,
	Long: `Cryptex generates cryptographically secure passwords, API keys, and TOTP
secrets from the terminal.

Quick start:
  cryptex                       Generate a 16-char secure password
  cryptex -l 24                 Generate a 24-char password
  cryptex --template owasp      Use the OWASP compliance template
  cryptex templates             List all compliance templates

Password types (-t, --type):
  strong     Letters + digits + symbols (default)
  alpha      Letters only
  alphanum   Letters + digits
  numeric    Digits only (PINs)
  pronounce  Alternating syllables, readable aloud
  custom     Caller-supplied charset (--custom-charset)
  api-key    API keys (--api-format selects the layout)

DevOps:
  cryptex --kv "DB_PASS,API_KEY,JWT_SECRET" -f env > .env
  cryptex -l 32 --save-aws --aws-secret-name prod/db-password
  cryptex --save-file --sink-path vault.jsonl --sink-name db-password

TOTP:
  cryptex totp new --issuer GitHub --account user@example.com --qr
  cryptex totp code JBSWY3DPEHPK3PXP
  cryptex totp code ./enrollment-qr.png`,
	Args:              cobra.MaximumNArgs(1),
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
	RunE:              runGenerate,
}

// Execute runs the CLI. It is the only place the process exit code is
// decided; everything below returns errors.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// commandKey carries the active subcommand name in the context so the
// logger's context handler can stamp it onto every record.
type commandKey struct{}

// setup loads configuration and wires the logger before any command body
// runs. A missing .env file is fine; a present but broken one is not.
func setup(cmd *cobra.Command, _ []string) error {
	if err := config.Load(&app); err != nil {
		return err
	}

	cmd.SetContext(context.WithValue(cmd.Context(), commandKey{}, cmd.Name()))

	log = logger.New(
		logger.WithLevel(logger.ParseLevel(app.LogLevel)),
		logger.WithFormat(logger.ParseFormat(app.LogFormat)),
		logger.WithAttr(logger.Component("cli")),
		logger.WithContextValue("command", commandKey{}),
	)
	logger.SetAsDefault(log)

	if app.TemplatesFile != "" {
		if err := password.LoadTemplates(app.TemplatesFile); err != nil {
			if errors.Is(err, os.ErrNotExist) {
				log.Warn("templates file not found, using built-ins",
					slog.String("path", app.TemplatesFile), logger.Error(err))
				return nil
			}
			return err
		}
		log.Debug("loaded extra templates", slog.String("path", app.TemplatesFile))
	}
	return nil
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "suppress everything except the secret itself")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "show password strength analysis")

	rootCmd.AddCommand(analyzeCmd, totpCmd, templatesCmd, vaultCmd)
}

// banner prints a section header on stderr unless quiet mode is on. The
// secrets themselves always go to stdout so pipes stay clean.
func banner(text string) {
	if !quiet {
		fmt.Fprintln(os.Stderr, text)
		fmt.Fprintln(os.Stderr)
	}
}

// note prints a status line on stderr unless quiet mode is on.
func note(format string, args ...any) {
	if !quiet {
		fmt.Fprintf(os.Stderr, format+"\n", args...)
	}
}

// warn always prints, even in quiet mode. Warnings are recoverable;
// anything fatal is returned as an error instead.
func warn(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Warning: "+format+"\n", args...)
}
