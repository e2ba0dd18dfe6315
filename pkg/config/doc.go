// Package config loads the cryptex CLI settings from environment variables
// with optional .env files.
//
// It wraps github.com/joho/godotenv and github.com/caarlos0/env/v11 to
// deliver a small API that:
//
//   - Loads values from one or multiple .env files (falling back to the
//     default .env in the current working directory).
//   - Parses the environment into any Go struct using field tags.
//   - Caches each successfully loaded configuration type so it is only
//     parsed once for the lifetime of the process.
//
// # Usage
//
//	var app config.App
//	if err := config.Load(&app); err != nil {
//	    log.Fatalf("parsing env: %v", err)
//	}
//
// App and AWS are the structs the CLI actually loads; the generic Load
// works with any annotated struct.
//
// # Error Handling
//
// The package defines sentinel errors that can be compared with errors.Is:
//
//   - ErrParsingConfig   – failed to parse env vars into struct.
//   - ErrConfigNotLoaded – requested config type has not been loaded yet.
//   - ErrNilPointer      – nil pointer passed to Load/MustLoad.
//
// # Testing Helpers
//
// Use ResetCache() to clear the global cache between tests that mutate the
// process environment.
package config
