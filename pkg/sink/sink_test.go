package sink_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TocConsulting/cryptex/pkg/sink"
)

var (
	_ sink.Sink = (*sink.SecretsManagerSink)(nil)
	_ sink.Sink = (*sink.FileSink)(nil)
	_ sink.Sink = (*sink.EnvSink)(nil)
)

type mockSMClient struct {
	created   map[string]string
	versions  map[string][]string
	createErr error
	putErr    error
}

func newMockSMClient() *mockSMClient {
	return &mockSMClient{
		created:  map[string]string{},
		versions: map[string][]string{},
	}
}

func (m *mockSMClient) CreateSecret(_ context.Context, params *secretsmanager.CreateSecretInput, _ ...func(*secretsmanager.Options)) (*secretsmanager.CreateSecretOutput, error) {
	if m.createErr != nil {
		return nil, m.createErr
	}
	name := *params.Name
	if _, ok := m.created[name]; ok {
		return nil, &types.ResourceExistsException{}
	}
	m.created[name] = *params.SecretString
	return &secretsmanager.CreateSecretOutput{}, nil
}

func (m *mockSMClient) PutSecretValue(_ context.Context, params *secretsmanager.PutSecretValueInput, _ ...func(*secretsmanager.Options)) (*secretsmanager.PutSecretValueOutput, error) {
	if m.putErr != nil {
		return nil, m.putErr
	}
	name := *params.SecretId
	m.created[name] = *params.SecretString
	m.versions[name] = append(m.versions[name], *params.SecretString)
	return &secretsmanager.PutSecretValueOutput{}, nil
}

func TestSecretsManagerSink(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("requires region without injected client", func(t *testing.T) {
		t.Parallel()
		_, err := sink.NewSecretsManagerSink(ctx, sink.SecretsManagerConfig{})
		assert.ErrorIs(t, err, sink.ErrInvalidConfig)
	})

	t.Run("creates a new secret", func(t *testing.T) {
		t.Parallel()
		client := newMockSMClient()
		s, err := sink.NewSecretsManagerSink(ctx, sink.SecretsManagerConfig{}, sink.WithSecretsManagerClient(client))
		require.NoError(t, err)

		require.NoError(t, s.Store(ctx, "prod/db/password", "hunter2"))
		assert.Equal(t, "hunter2", client.created["prod/db/password"])
		assert.Empty(t, client.versions["prod/db/password"])
	})

	t.Run("adds a version when the secret exists", func(t *testing.T) {
		t.Parallel()
		client := newMockSMClient()
		s, err := sink.NewSecretsManagerSink(ctx, sink.SecretsManagerConfig{}, sink.WithSecretsManagerClient(client))
		require.NoError(t, err)

		require.NoError(t, s.Store(ctx, "prod/api/key", "v1"))
		require.NoError(t, s.Store(ctx, "prod/api/key", "v2"))
		assert.Equal(t, "v2", client.created["prod/api/key"])
		assert.Equal(t, []string{"v2"}, client.versions["prod/api/key"])
	})

	t.Run("wraps transport errors", func(t *testing.T) {
		t.Parallel()
		client := newMockSMClient()
		client.createErr = errors.New("throttled")
		s, err := sink.NewSecretsManagerSink(ctx, sink.SecretsManagerConfig{}, sink.WithSecretsManagerClient(client))
		require.NoError(t, err)

		err = s.Store(ctx, "anything", "value")
		assert.ErrorIs(t, err, sink.ErrStoreFailed)
	})

	t.Run("rejects empty names", func(t *testing.T) {
		t.Parallel()
		s, err := sink.NewSecretsManagerSink(ctx, sink.SecretsManagerConfig{}, sink.WithSecretsManagerClient(newMockSMClient()))
		require.NoError(t, err)
		assert.ErrorIs(t, s.Store(ctx, "", "value"), sink.ErrEmptySecretName)
	})
}

func TestFileSink(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("round trips through encryption", func(t *testing.T) {
		t.Parallel()
		path := filepath.Join(t.TempDir(), "vault.jsonl")
		s, err := sink.NewFileSink(path, "passphrase")
		require.NoError(t, err)

		require.NoError(t, s.Store(ctx, "db-password", "xK9$mQ2!"))

		got, err := s.Retrieve(ctx, "db-password")
		require.NoError(t, err)
		assert.Equal(t, "xK9$mQ2!", got)

		// The plaintext must not appear in the file.
		raw, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.NotContains(t, string(raw), "xK9$mQ2!")
	})

	t.Run("newest record wins", func(t *testing.T) {
		t.Parallel()
		path := filepath.Join(t.TempDir(), "vault.jsonl")
		s, err := sink.NewFileSink(path, "passphrase")
		require.NoError(t, err)

		require.NoError(t, s.Store(ctx, "rotated", "old"))
		require.NoError(t, s.Store(ctx, "rotated", "new"))

		got, err := s.Retrieve(ctx, "rotated")
		require.NoError(t, err)
		assert.Equal(t, "new", got)
	})

	t.Run("missing record", func(t *testing.T) {
		t.Parallel()
		path := filepath.Join(t.TempDir(), "vault.jsonl")
		s, err := sink.NewFileSink(path, "passphrase")
		require.NoError(t, err)

		_, err = s.Retrieve(ctx, "never-stored")
		assert.ErrorIs(t, err, sink.ErrSecretNotFound)
	})

	t.Run("validates construction", func(t *testing.T) {
		t.Parallel()
		_, err := sink.NewFileSink("", "passphrase")
		assert.ErrorIs(t, err, sink.ErrInvalidConfig)

		_, err = sink.NewFileSink(filepath.Join(t.TempDir(), "vault.jsonl"), "")
		assert.ErrorIs(t, err, sink.ErrInvalidConfig)

		_, err = sink.NewFileSink("/no/such/dir/vault.jsonl", "passphrase")
		assert.ErrorIs(t, err, sink.ErrInvalidConfig)
	})
}

func TestEnvSink(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("writes and preserves entries", func(t *testing.T) {
		t.Parallel()
		path := filepath.Join(t.TempDir(), ".env")
		s, err := sink.NewEnvSink(path)
		require.NoError(t, err)

		require.NoError(t, s.Store(ctx, "db-password", "first"))
		require.NoError(t, s.Store(ctx, "api/key", "second"))

		raw, err := os.ReadFile(path)
		require.NoError(t, err)
		content := string(raw)
		assert.Contains(t, content, "DB_PASSWORD=")
		assert.Contains(t, content, "API_KEY=")
	})

	t.Run("replaces an existing key", func(t *testing.T) {
		t.Parallel()
		path := filepath.Join(t.TempDir(), ".env")
		s, err := sink.NewEnvSink(path)
		require.NoError(t, err)

		require.NoError(t, s.Store(ctx, "token", "old"))
		require.NoError(t, s.Store(ctx, "token", "new"))

		raw, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Contains(t, string(raw), `TOKEN="new"`)
		assert.NotContains(t, string(raw), "old")
	})
}

func TestEnvKey(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		in      string
		want    string
		wantErr bool
	}{
		{name: "simple", in: "token", want: "TOKEN"},
		{name: "path style", in: "prod/db/password", want: "PROD_DB_PASSWORD"},
		{name: "dashes and dots", in: "api-key.v2", want: "API_KEY_V2"},
		{name: "invalid characters", in: "???", wantErr: true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := sink.EnvKey(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
