// Package cli wires the cryptex command tree. It is deliberately thin:
// every operation lives in a pkg/ package and the commands here only parse
// flags, route, and format. Secrets always go to stdout and everything
// else (banners, analysis, QR renders, status lines) goes to stderr, so
// `cryptex -q | pbcopy` and `cryptex -f env > .env` stay clean.
//
// Commands:
//
//	cryptex [flags] [output-file]   generate passwords / API keys (root)
//	cryptex analyze [password]      strength report for an existing secret
//	cryptex totp new                mint a TOTP secret + otpauth URI
//	cryptex totp code <input>       current code from a secret or QR image
//	cryptex templates               list compliance templates
package cli
