// Package totp implements RFC 4226 HOTP and RFC 6238 TOTP code
// computation, base32 secret handling, and otpauth URI round-trips for
// enrolling with authenticator applications.
//
// # Architecture
//
// The package is layered leaf-first:
//
//   - base32.go — unpadded RFC 4648 encoding with a user-tolerant decoder
//     (case-insensitive, ignores spaces/dashes/padding).
//   - hotp.go — the code algorithms: HMAC over a big-endian counter with
//     dynamic truncation, for SHA1, SHA256, and SHA512.
//   - secret.go / uri.go — the Secret enrollment type, CSPRNG-backed
//     minting, and the canonical otpauth URI encoder/decoder, which are
//     inverses of each other modulo RFC defaults.
//   - manager.go — current/next code computation against an injectable
//     clock.
//   - input.go — the explicit file-vs-raw-secret input variant resolved by
//     a single existence check.
//
// # Usage
//
//	secret, err := totp.NewSecret("Acme", "alice@example.com")
//	if err != nil {
//		// handle error
//	}
//	fmt.Println(secret.URI()) // render as QR for the authenticator
//
//	codes, err := totp.NewManager().Codes(secret)
//	if err != nil {
//		// handle error
//	}
//	fmt.Printf("%s (%ds left)\n", codes.Current, codes.Remaining)
//
// # Error Handling
//
// Failures are sentinel errors (ErrInvalidBase32, ErrMalformedURI, ...)
// joined with the offending context; compare with errors.Is. Nothing in
// this package guesses: a malformed secret or URI is reported, never
// "corrected".
package totp
