package sink

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager/types"
)

// SecretsManagerClient defines the API surface used by SecretsManagerSink.
type SecretsManagerClient interface {
	CreateSecret(ctx context.Context, params *secretsmanager.CreateSecretInput, optFns ...func(*secretsmanager.Options)) (*secretsmanager.CreateSecretOutput, error)
	PutSecretValue(ctx context.Context, params *secretsmanager.PutSecretValueInput, optFns ...func(*secretsmanager.Options)) (*secretsmanager.PutSecretValueOutput, error)
}

// SecretsManagerConfig contains configuration for the AWS Secrets Manager sink.
type SecretsManagerConfig struct {
	Region      string
	Profile     string // Optional: shared config profile
	AccessKeyID string // Optional: static credentials
	SecretKey   string
	Endpoint    string // Optional: for localstack and compatible services
}

// SecretsManagerOption configures the sink beyond SecretsManagerConfig.
type SecretsManagerOption func(*smOptions)

type smOptions struct {
	client        SecretsManagerClient
	configOptions []func(*config.LoadOptions) error
}

// WithSecretsManagerClient sets a pre-configured client.
// Useful for testing with mocks.
func WithSecretsManagerClient(client SecretsManagerClient) SecretsManagerOption {
	return func(o *smOptions) {
		o.client = client
	}
}

// WithConfigOption adds a custom AWS config option.
func WithConfigOption(option func(*config.LoadOptions) error) SecretsManagerOption {
	return func(o *smOptions) {
		o.configOptions = append(o.configOptions, option)
	}
}

// SecretsManagerSink stores secrets in AWS Secrets Manager. It is safe for
// concurrent use.
type SecretsManagerSink struct {
	client SecretsManagerClient
}

// NewSecretsManagerSink creates a Secrets Manager sink. Credentials resolve
// through the standard AWS chain unless static keys are supplied.
func NewSecretsManagerSink(ctx context.Context, cfg SecretsManagerConfig, opts ...SecretsManagerOption) (*SecretsManagerSink, error) {
	options := &smOptions{}
	for _, opt := range opts {
		opt(options)
	}

	if options.client != nil {
		return &SecretsManagerSink{client: options.client}, nil
	}

	if cfg.Region == "" {
		return nil, fmt.Errorf("%w: region is required", ErrInvalidConfig)
	}

	awsOptions := []func(*config.LoadOptions) error{
		config.WithRegion(cfg.Region),
	}
	if cfg.Profile != "" {
		awsOptions = append(awsOptions, config.WithSharedConfigProfile(cfg.Profile))
	}
	if cfg.AccessKeyID != "" && cfg.SecretKey != "" {
		awsOptions = append(awsOptions,
			config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
				cfg.AccessKeyID,
				cfg.SecretKey,
				"",
			)),
		)
	}
	awsOptions = append(awsOptions, options.configOptions...)

	awsConfig, err := config.LoadDefaultConfig(ctx, awsOptions...)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFailedToLoadConfig, err)
	}

	client := secretsmanager.NewFromConfig(awsConfig, func(o *secretsmanager.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
	})
	return &SecretsManagerSink{client: client}, nil
}

// Store creates the secret, or adds a new version when it already exists.
func (s *SecretsManagerSink) Store(ctx context.Context, name, value string) error {
	if name == "" {
		return ErrEmptySecretName
	}

	_, err := s.client.CreateSecret(ctx, &secretsmanager.CreateSecretInput{
		Name:         aws.String(name),
		SecretString: aws.String(value),
	})
	if err == nil {
		return nil
	}

	var exists *types.ResourceExistsException
	if !errors.As(err, &exists) {
		return errors.Join(ErrStoreFailed, err)
	}

	if _, err := s.client.PutSecretValue(ctx, &secretsmanager.PutSecretValueInput{
		SecretId:     aws.String(name),
		SecretString: aws.String(value),
	}); err != nil {
		return errors.Join(ErrStoreFailed, err)
	}
	return nil
}

func (s *SecretsManagerSink) Name() string { return "aws-secrets-manager" }
