package cli

import (
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"

	"github.com/spf13/cobra"

	"github.com/TocConsulting/cryptex/pkg/qr"
	"github.com/TocConsulting/cryptex/pkg/qrcode"
	"github.com/TocConsulting/cryptex/pkg/totp"
)

var totpCmd = &cobra.Command{
	Use:   "totp",
	Short: "Mint TOTP secrets and compute codes for 2FA apps",
}

var totpNewFlags struct {
	issuer    string
	account   string
	algorithm string
	digits    int
	period    int
	qrFlag    bool
	qrPNG     string
	qrDataURI bool
}

var totpNewCmd = &cobra.Command{
	Use:   "new",
	Short: "Mint a TOTP secret and print its otpauth URI",
	Long: `New mints a fresh TOTP secret and prints the base32 key plus the otpauth
URI any authenticator app understands. Pass --qr to render the enrollment
QR code right in the terminal, or --qr-png to write it to a file.`,
	Args: cobra.NoArgs,
	RunE: func(_ *cobra.Command, _ []string) error {
		alg, err := totp.ParseAlgorithm(totpNewFlags.algorithm)
		if err != nil {
			return err
		}
		secret, err := totp.NewSecret(totpNewFlags.issuer, totpNewFlags.account,
			totp.WithAlgorithm(alg),
			totp.WithDigits(totpNewFlags.digits),
			totp.WithPeriod(totpNewFlags.period),
		)
		if err != nil {
			return err
		}
		uri := secret.URI()

		if quiet {
			fmt.Println(secret.Base32)
			return nil
		}

		banner("Cryptex - TOTP Secret Generator")
		fmt.Fprintf(os.Stderr, "Issuer:  %s\n", secret.Issuer)
		fmt.Fprintf(os.Stderr, "Account: %s\n\n", secret.Account)

		if totpNewFlags.qrFlag {
			ascii, err := qrcode.ASCII(uri)
			if err != nil {
				return err
			}
			fmt.Fprintln(os.Stderr, ascii)
			note("Scan the QR code above with Google Authenticator, Authy, or any TOTP app")
			fmt.Fprintln(os.Stderr)
		}

		fmt.Println(secret.Base32)
		fmt.Println(uri)

		note("\nManual entry (if QR scan fails):")
		note("  Type: Time-based (TOTP)")
		note("  Algorithm: %s", secret.Algorithm)
		note("  Digits: %d", secret.Digits)
		note("  Period: %d seconds", secret.Period)

		if totpNewFlags.qrPNG != "" {
			png, err := qrcode.Generate(uri, 0)
			if err != nil {
				return err
			}
			if err := os.WriteFile(totpNewFlags.qrPNG, png, 0o600); err != nil {
				return fmt.Errorf("failed to write QR image: %w", err)
			}
			note("Enrollment QR code saved to %s", totpNewFlags.qrPNG)
		}
		if totpNewFlags.qrDataURI {
			dataURI, err := qrcode.GenerateBase64Image(uri, 0)
			if err != nil {
				return err
			}
			fmt.Println(dataURI)
		}
		return nil
	},
}

var totpCodeCopy bool

var totpCodeCmd = &cobra.Command{
	Use:   "code <secret|qr-image-path>",
	Short: "Compute the current TOTP code from a secret or a QR image",
	Long: `Code computes the current and next TOTP codes. The argument is either a
base32 secret or a path to a QR code image holding an otpauth URI; an
existing file is always treated as an image, never retried as a secret.`,
	Args: cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		secret, err := resolveTOTPSecret(args[0])
		if err != nil {
			return err
		}

		codes, err := totp.NewManager().Codes(secret)
		if err != nil {
			return err
		}

		if quiet {
			fmt.Println(codes.Current)
		} else {
			banner("Cryptex - TOTP Code Reader")
			if secret.Issuer != "" {
				fmt.Fprintf(os.Stderr, "Issuer:  %s\n", secret.Issuer)
			}
			if secret.Account != "" {
				fmt.Fprintf(os.Stderr, "Account: %s\n", secret.Account)
			}
			if secret.Issuer != "" || secret.Account != "" {
				fmt.Fprintln(os.Stderr)
			}
			fmt.Printf("TOTP Code: %s\n", codes.Current)
			fmt.Printf("Valid for: %d seconds\n", codes.Remaining)
			fmt.Printf("Next code: %s\n", codes.Next)
		}

		if totpCodeCopy {
			if err := copyToClipboard(codes.Current); err != nil {
				return err
			}
			note("TOTP code copied to clipboard!")
		}
		return nil
	},
}

// resolveTOTPSecret turns the command argument into a Secret: a file is
// decoded as a QR image holding an otpauth URI, anything else is parsed as
// a base32 secret.
func resolveTOTPSecret(token string) (totp.Secret, error) {
	switch in := totp.ResolveInput(token).(type) {
	case totp.FileInput:
		f, err := os.Open(string(in))
		if err != nil {
			return totp.Secret{}, err
		}
		defer f.Close()
		img, _, err := image.Decode(f)
		if err != nil {
			return totp.Secret{}, fmt.Errorf("could not read QR image %s: %w", token, err)
		}
		uri, err := qr.Decode(img)
		if err != nil {
			return totp.Secret{}, fmt.Errorf("could not decode QR code from %s: %w", token, err)
		}
		return totp.ParseURI(uri)
	case totp.RawInput:
		return totp.SecretFromBase32(string(in), "", "")
	default:
		return totp.Secret{}, fmt.Errorf("unsupported input %q", token)
	}
}

func init() {
	f := totpNewCmd.Flags()
	f.StringVar(&totpNewFlags.issuer, "issuer", "Cryptex", "issuer name shown in the 2FA app")
	f.StringVar(&totpNewFlags.account, "account", "", "account name shown in the 2FA app (e.g. user@example.com)")
	f.StringVar(&totpNewFlags.algorithm, "algorithm", "SHA1", "HMAC algorithm (SHA1|SHA256|SHA512)")
	f.IntVar(&totpNewFlags.digits, "digits", totp.DefaultDigits, "code length in digits")
	f.IntVar(&totpNewFlags.period, "period", totp.DefaultPeriod, "code validity window in seconds")
	f.BoolVar(&totpNewFlags.qrFlag, "qr", false, "render the enrollment QR code in the terminal")
	f.StringVar(&totpNewFlags.qrPNG, "qr-png", "", "write the enrollment QR code to a PNG file")
	f.BoolVar(&totpNewFlags.qrDataURI, "qr-data-uri", false, "print the enrollment QR code as a base64 data URI (for <img> tags)")
	_ = totpNewCmd.MarkFlagRequired("account")

	totpCodeCmd.Flags().BoolVar(&totpCodeCopy, "copy", false, "copy the current code to clipboard")

	totpCmd.AddCommand(totpNewCmd, totpCodeCmd)
}
