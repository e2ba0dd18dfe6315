package sink

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/TocConsulting/cryptex/pkg/secrets"
)

// fileRecord is one stored secret, serialized as a JSON line.
type fileRecord struct {
	Name       string    `json:"name"`
	Ciphertext string    `json:"ciphertext"`
	CreatedAt  time.Time `json:"created_at"`
}

// FileSink appends passphrase-encrypted records to a local file, one JSON
// object per line. Records are append-only; the newest entry for a name wins
// on retrieval.
type FileSink struct {
	path       string
	passphrase string
}

// NewFileSink creates a file sink. The parent directory must exist.
func NewFileSink(path, passphrase string) (*FileSink, error) {
	if path == "" {
		return nil, fmt.Errorf("%w: path is required", ErrInvalidConfig)
	}
	if passphrase == "" {
		return nil, fmt.Errorf("%w: passphrase is required", ErrInvalidConfig)
	}
	if dir := filepath.Dir(path); dir != "." {
		if info, err := os.Stat(dir); err != nil || !info.IsDir() {
			return nil, fmt.Errorf("%w: directory %s does not exist", ErrInvalidConfig, dir)
		}
	}
	return &FileSink{path: path, passphrase: passphrase}, nil
}

// Store encrypts the value and appends it to the file.
func (s *FileSink) Store(_ context.Context, name, value string) error {
	if name == "" {
		return ErrEmptySecretName
	}

	ciphertext, err := secrets.EncryptString(s.passphrase, value)
	if err != nil {
		return errors.Join(ErrStoreFailed, err)
	}

	line, err := json.Marshal(fileRecord{
		Name:       name,
		Ciphertext: ciphertext,
		CreatedAt:  time.Now().UTC(),
	})
	if err != nil {
		return errors.Join(ErrStoreFailed, err)
	}

	f, err := os.OpenFile(s.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
	if err != nil {
		return errors.Join(ErrStoreFailed, err)
	}
	defer f.Close()

	if _, err := f.Write(append(line, '\n')); err != nil {
		return errors.Join(ErrStoreFailed, err)
	}
	return nil
}

// Retrieve decrypts the newest record stored under name.
func (s *FileSink) Retrieve(_ context.Context, name string) (string, error) {
	if name == "" {
		return "", ErrEmptySecretName
	}

	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return "", fmt.Errorf("%w: %q", ErrSecretNotFound, name)
	}
	if err != nil {
		return "", errors.Join(ErrStoreFailed, err)
	}

	var found *fileRecord
	dec := json.NewDecoder(bytes.NewReader(data))
	for dec.More() {
		var rec fileRecord
		if err := dec.Decode(&rec); err != nil {
			return "", errors.Join(ErrStoreFailed, err)
		}
		if rec.Name == name {
			found = &rec
		}
	}
	if found == nil {
		return "", fmt.Errorf("%w: %q", ErrSecretNotFound, name)
	}
	return secrets.DecryptString(s.passphrase, found.Ciphertext)
}

func (s *FileSink) Name() string { return "encrypted-file" }
