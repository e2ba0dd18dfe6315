package sink

import (
	"context"
	"errors"
)

var (
	// ErrInvalidConfig is returned when a sink is constructed with missing or
	// contradictory settings.
	ErrInvalidConfig = errors.New("invalid sink configuration")
	// ErrFailedToLoadConfig is returned when the AWS configuration chain fails.
	ErrFailedToLoadConfig = errors.New("failed to load AWS config")
	// ErrEmptySecretName is returned when Store is called without a name.
	ErrEmptySecretName = errors.New("secret name cannot be empty")
	// ErrStoreFailed wraps delivery errors from the underlying destination.
	ErrStoreFailed = errors.New("failed to store secret")
	// ErrSecretNotFound is returned when a retrieval finds no matching record.
	ErrSecretNotFound = errors.New("secret not found")
)

// Sink writes a named secret to a destination.
type Sink interface {
	// Store delivers one secret value under the given name. Calling Store
	// again with the same name replaces the previous value.
	Store(ctx context.Context, name, value string) error

	// Name identifies the destination in logs and error messages.
	Name() string
}
