package sink

import (
	"context"
	"errors"
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/joho/godotenv"
)

var envKeyPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// EnvSink upserts KEY=value pairs into a dotenv file. Secret names are
// normalized to environment-variable form: uppercased, with slashes and
// dashes turned into underscores.
type EnvSink struct {
	path string
}

// NewEnvSink creates a dotenv sink writing to path.
func NewEnvSink(path string) (*EnvSink, error) {
	if path == "" {
		return nil, fmt.Errorf("%w: path is required", ErrInvalidConfig)
	}
	return &EnvSink{path: path}, nil
}

// EnvKey converts a secret name into a dotenv key.
func EnvKey(name string) (string, error) {
	key := strings.ToUpper(name)
	key = strings.NewReplacer("/", "_", "-", "_", ".", "_", " ", "_").Replace(key)
	if !envKeyPattern.MatchString(key) {
		return "", fmt.Errorf("%w: %q does not normalize to an env key", ErrEmptySecretName, name)
	}
	return key, nil
}

// Store rewrites the dotenv file with the new or replaced entry, keeping all
// existing entries.
func (s *EnvSink) Store(_ context.Context, name, value string) error {
	if name == "" {
		return ErrEmptySecretName
	}
	key, err := EnvKey(name)
	if err != nil {
		return err
	}

	env := map[string]string{}
	if _, statErr := os.Stat(s.path); statErr == nil {
		env, err = godotenv.Read(s.path)
		if err != nil {
			return errors.Join(ErrStoreFailed, err)
		}
	}
	env[key] = value

	if err := godotenv.Write(env, s.path); err != nil {
		return errors.Join(ErrStoreFailed, err)
	}
	return nil
}

func (s *EnvSink) Name() string { return "dotenv-file" }
