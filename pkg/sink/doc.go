// Package sink delivers generated credentials to their destination: AWS
// Secrets Manager, an encrypted local file, or a dotenv file.
//
// # Architecture
//
// Every destination implements the Sink interface: a Store call that writes
// one named secret and a Name for log and error messages. Destinations are
// constructed individually:
//
//   - NewSecretsManagerSink wraps the AWS Secrets Manager API; an existing
//     secret gets a new version instead of failing.
//   - NewFileSink appends passphrase-encrypted records to a local file.
//   - NewEnvSink upserts KEY=value pairs into a dotenv file.
//
// # Usage
//
//	s, err := sink.NewSecretsManagerSink(ctx, sink.SecretsManagerConfig{
//		Region: "eu-central-1",
//	})
//	if err != nil {
//		return err
//	}
//	if err := s.Store(ctx, "prod/db/password", secret); err != nil {
//		return err
//	}
//
// # Error Handling
//
// Validation failures return package sentinels (ErrInvalidConfig,
// ErrEmptySecretName); delivery failures wrap ErrStoreFailed together with
// the underlying transport error, so errors.Is works at both levels.
package sink
