// Package apikey renders cryptographically random material into common
// machine-credential shapes: RFC 4122 v4 UUIDs, hex and base64 tokens, and
// alphanumeric keys. Every format consumes exactly the random bytes it
// needs from an injectable source, so output is reproducible under test
// and unbiased in production.
package apikey
