package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/TocConsulting/cryptex/pkg/apikey"
	"github.com/TocConsulting/cryptex/pkg/config"
	"github.com/TocConsulting/cryptex/pkg/logger"
	"github.com/TocConsulting/cryptex/pkg/password"
	"github.com/TocConsulting/cryptex/pkg/qrcode"
	"github.com/TocConsulting/cryptex/pkg/sink"
)

var genFlags struct {
	length        int
	count         int
	typ           string
	special       string
	exclude       string
	noSimilar     bool
	minUpper      int
	minLower      int
	minDigit      int
	minSpecial    int
	template      string
	customCharset string
	apiFormat     string

	format    string
	separator string
	kv        string

	copyFlag bool
	qrFlag   bool
	qrPNG    string

	saveAWS       bool
	awsSecretName string
	awsRegion     string
	awsProfile    string

	saveFile bool
	sinkPath string
	sinkName string

	saveEnv bool
	envFile string
}

func init() {
	f := rootCmd.Flags()
	f.IntVarP(&genFlags.length, "length", "l", 16, "password length (8-256)")
	f.IntVarP(&genFlags.count, "count", "c", 1, "number of passwords to generate")
	f.StringVarP(&genFlags.typ, "type", "t", "strong", "password type (strong|alpha|alphanum|numeric|pronounce|custom|api-key)")
	f.StringVarP(&genFlags.special, "special", "s", password.DefaultSpecial, "custom special characters")
	f.StringVarP(&genFlags.exclude, "exclude", "x", "", "exclude specific characters")
	f.BoolVar(&genFlags.noSimilar, "no-similar", false, "exclude similar looking characters (il1Lo0O)")
	f.IntVar(&genFlags.minUpper, "min-upper", 0, "minimum uppercase letters")
	f.IntVar(&genFlags.minLower, "min-lower", 0, "minimum lowercase letters")
	f.IntVar(&genFlags.minDigit, "min-digit", 0, "minimum digits")
	f.IntVar(&genFlags.minSpecial, "min-special", 0, "minimum special characters")
	f.StringVar(&genFlags.template, "template", "", "use a predefined compliance template (see 'cryptex templates')")
	f.StringVar(&genFlags.customCharset, "custom-charset", "", "custom character set (use with --type custom)")
	f.StringVar(&genFlags.apiFormat, "api-format", "alphanum", "API key format (uuid|uuid-hex|hex|base64|base64url|url-safe|alphanum)")

	f.StringVarP(&genFlags.format, "format", "f", "plain", "output format (plain|json|csv|env)")
	f.StringVar(&genFlags.separator, "separator", "\n", "separator for multiple passwords")
	f.StringVar(&genFlags.kv, "kv", "", "generate key-value pairs (comma-separated names): DATABASE_PASSWORD,API_KEY,JWT_SECRET")

	f.BoolVar(&genFlags.copyFlag, "copy", false, "copy to clipboard (requires pbcopy/xclip)")
	f.BoolVar(&genFlags.qrFlag, "qr", false, "print the password as a terminal QR code")
	f.StringVar(&genFlags.qrPNG, "qr-png", "", "write the password QR code to a PNG file")

	f.BoolVar(&genFlags.saveAWS, "save-aws", false, "save to AWS Secrets Manager")
	f.StringVar(&genFlags.awsSecretName, "aws-secret-name", "", "AWS secret name (required with --save-aws)")
	f.StringVar(&genFlags.awsRegion, "aws-region", "", "AWS region (default us-east-1)")
	f.StringVar(&genFlags.awsProfile, "aws-profile", "", "AWS profile from ~/.aws/credentials")

	f.BoolVar(&genFlags.saveFile, "save-file", false, "save to an encrypted vault file (passphrase prompted)")
	f.StringVar(&genFlags.sinkPath, "sink-path", "", "vault file path (default from CRYPTEX_VAULT_FILE)")
	f.StringVar(&genFlags.sinkName, "sink-name", "password", "record name for --save-file with a single password")

	f.BoolVar(&genFlags.saveEnv, "save-env", false, "append to a dotenv file")
	f.StringVar(&genFlags.envFile, "env-file", "", "dotenv file path (default from CRYPTEX_ENV_FILE)")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	if genFlags.count < 1 {
		return fmt.Errorf("count must be at least 1, got %d", genFlags.count)
	}
	if genFlags.typ == "custom" && genFlags.customCharset == "" {
		return ErrCustomCharsetRequired
	}
	if genFlags.saveAWS && genFlags.awsSecretName == "" {
		return ErrSecretNameRequired
	}

	policy, err := buildPolicy(cmd.Flags().Changed)
	if err != nil {
		return err
	}
	if genFlags.template != "" {
		log.Debug("resolved compliance template", logger.Template(genFlags.template))
	}

	var names []string
	count := genFlags.count
	if genFlags.kv != "" {
		for _, name := range strings.Split(genFlags.kv, ",") {
			names = append(names, strings.TrimSpace(name))
		}
		count = len(names)
	}

	banner("Cryptex - Enhanced Random Password Generator")

	start := time.Now()
	secrets, alphabetSize, err := generateSecrets(policy, count)
	if err != nil {
		return err
	}
	log.Debug("generated secrets", logger.Count(len(secrets)), logger.Duration(time.Since(start)))

	output, err := formatSecrets(secrets, names, genFlags.format, genFlags.separator)
	if err != nil {
		return err
	}

	if len(args) == 1 {
		if err := os.WriteFile(args[0], []byte(output+"\n"), 0o600); err != nil {
			return fmt.Errorf("failed to write output file: %w", err)
		}
		note("Password(s) saved to %s", args[0])
	} else {
		fmt.Println(output)
	}

	if verbose && !quiet {
		for _, s := range secrets {
			fmt.Fprintln(os.Stderr, formatReport(s, password.Analyze(s, alphabetSize)))
		}
	}

	if genFlags.copyFlag {
		if len(secrets) > 1 {
			warn("multiple passwords generated, only the first will be copied to clipboard")
		}
		if err := copyToClipboard(secrets[0]); err != nil {
			return err
		}
		note("Password copied to clipboard!")
	}

	if genFlags.qrFlag {
		if len(secrets) > 1 {
			warn("multiple passwords generated, only showing QR code for the first")
		}
		ascii, err := qrcode.ASCII(secrets[0])
		if err != nil {
			return err
		}
		note("QR Code:")
		fmt.Fprintln(os.Stderr, ascii)
	}
	if genFlags.qrPNG != "" {
		png, err := qrcode.Generate(secrets[0], 0)
		if err != nil {
			return err
		}
		if err := os.WriteFile(genFlags.qrPNG, png, 0o600); err != nil {
			return fmt.Errorf("failed to write QR image: %w", err)
		}
		note("QR code saved to %s", genFlags.qrPNG)
	}

	return storeSecrets(cmd.Context(), secrets, names)
}

// buildPolicy merges the generation flags with the selected compliance
// template. The template is the baseline; only explicitly set flags
// override it, and a template's minimums can be raised but never lowered.
// Flag exclusions append to the template's own.
func buildPolicy(changed func(name string) bool) (password.Policy, error) {
	policy := password.Policy{
		Length:     genFlags.length,
		Type:       password.Type(genFlags.typ),
		Special:    genFlags.special,
		Custom:     genFlags.customCharset,
		Exclude:    genFlags.exclude,
		NoSimilar:  genFlags.noSimilar,
		MinUpper:   genFlags.minUpper,
		MinLower:   genFlags.minLower,
		MinDigit:   genFlags.minDigit,
		MinSpecial: genFlags.minSpecial,
	}

	if genFlags.template == "" {
		return policy, nil
	}
	tpl, err := password.Resolve(genFlags.template)
	if err != nil {
		return password.Policy{}, err
	}

	if !changed("length") {
		policy.Length = tpl.Length
	}
	policy.MinUpper = max(tpl.MinUpper, policy.MinUpper)
	policy.MinLower = max(tpl.MinLower, policy.MinLower)
	policy.MinDigit = max(tpl.MinDigit, policy.MinDigit)
	policy.MinSpecial = max(tpl.MinSpecial, policy.MinSpecial)
	policy.NoSimilar = tpl.NoSimilar || policy.NoSimilar
	policy.Exclude = tpl.Exclude + genFlags.exclude
	return policy, nil
}

// generateSecrets produces count secrets for the requested type. The
// pronounce and api-key types bypass the policy engine; everything else
// goes through it. The returned alphabet size feeds the strength analyzer
// and is zero when unknown.
func generateSecrets(policy password.Policy, count int) ([]string, int, error) {
	switch genFlags.typ {
	case "pronounce":
		g := password.New()
		secrets := make([]string, count)
		for i := range secrets {
			s, err := g.GeneratePronounceable(policy.Length)
			if err != nil {
				return nil, 0, err
			}
			secrets[i] = s
		}
		return secrets, 0, nil

	case "api-key":
		format, err := apikey.ParseFormat(genFlags.apiFormat)
		if err != nil {
			return nil, 0, err
		}
		secrets := make([]string, count)
		for i := range secrets {
			s, err := apikey.Generate(format, policy.Length, nil)
			if err != nil {
				return nil, 0, err
			}
			secrets[i] = s
		}
		return secrets, 0, nil

	default:
		charset, err := password.BuildCharset(policy)
		if err != nil {
			return nil, 0, err
		}
		secrets, err := password.New().GenerateMany(policy, count)
		if err != nil {
			return nil, 0, err
		}
		return secrets, charset.Size(), nil
	}
}

// storeSecrets pushes the generated secrets into every requested sink.
// Key-value batches go to AWS as a single JSON secret, and to the file and
// dotenv sinks as one record per name. Every requested sink is attempted
// even when an earlier one fails, so a broken AWS profile does not skip the
// local vault.
func storeSecrets(ctx context.Context, secrets, names []string) error {
	var errs []error
	if genFlags.saveAWS {
		if err := storeAWS(ctx, secrets, names); err != nil {
			errs = append(errs, err)
		}
	}
	if genFlags.saveFile {
		if err := storeVault(ctx, secrets, names); err != nil {
			errs = append(errs, err)
		}
	}
	if genFlags.saveEnv {
		path := genFlags.envFile
		if path == "" {
			path = app.EnvFile
		}
		envSink, err := sink.NewEnvSink(path)
		if err != nil {
			errs = append(errs, err)
		} else if err := storeEach(ctx, envSink, secrets, names, genFlags.sinkName); err != nil {
			errs = append(errs, err)
		} else {
			note("Secret(s) saved to %s", path)
		}
	}
	if len(errs) > 0 {
		log.ErrorContext(ctx, "secret storage failed", logger.Errors(errs...))
		return errors.Join(errs...)
	}
	return nil
}

func storeVault(ctx context.Context, secrets, names []string) error {
	path := genFlags.sinkPath
	if path == "" {
		path = app.VaultFile
	}
	passphrase, err := readPassphrase("Vault passphrase: ")
	if err != nil {
		return err
	}
	fileSink, err := sink.NewFileSink(path, passphrase)
	if err != nil {
		return err
	}
	if err := storeEach(ctx, fileSink, secrets, names, genFlags.sinkName); err != nil {
		return err
	}
	note("Secret(s) saved to encrypted vault: %s", path)
	return nil
}

func storeAWS(ctx context.Context, secrets, names []string) error {
	var aws config.AWS
	if err := config.Load(&aws); err != nil {
		return err
	}
	cfg := sink.SecretsManagerConfig{
		Region:      firstNonEmpty(genFlags.awsRegion, aws.Region, "us-east-1"),
		Profile:     firstNonEmpty(genFlags.awsProfile, aws.Profile),
		AccessKeyID: aws.AccessKeyID,
		SecretKey:   aws.SecretKey,
		Endpoint:    aws.Endpoint,
	}
	smSink, err := sink.NewSecretsManagerSink(ctx, cfg)
	if err != nil {
		return err
	}
	log.DebugContext(ctx, "aws secrets manager configured",
		logger.Group("aws", slog.String("region", cfg.Region), slog.String("profile", cfg.Profile)))

	value := secrets[0]
	if names != nil {
		pairs := make(map[string]string, len(secrets))
		for i, s := range secrets {
			pairs[names[i]] = s
		}
		encoded, err := json.Marshal(pairs)
		if err != nil {
			return err
		}
		value = string(encoded)
	}
	if err := smSink.Store(ctx, genFlags.awsSecretName, value); err != nil {
		return err
	}
	log.DebugContext(ctx, "stored secret",
		logger.Sink(smSink.Name()), logger.SecretName(genFlags.awsSecretName))
	note("Secret saved to AWS Secrets Manager: %s", genFlags.awsSecretName)
	return nil
}

// storeEach writes one record per secret. Anonymous singles use
// fallbackName; anonymous batches get a numeric suffix.
func storeEach(ctx context.Context, dst sink.Sink, secrets, names []string, fallbackName string) error {
	for i, s := range secrets {
		name := fallbackName
		if names != nil {
			name = names[i]
		} else if len(secrets) > 1 {
			name = fmt.Sprintf("%s-%d", fallbackName, i+1)
		}
		if err := dst.Store(ctx, name, s); err != nil {
			return err
		}
		log.DebugContext(ctx, "stored secret", logger.Sink(dst.Name()), logger.SecretName(name))
	}
	return nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
