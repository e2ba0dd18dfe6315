// Package qrcode renders QR codes for credential hand-off: raw PNG bytes, a
// data-URI string for HTML embedding, and a terminal render built from the
// first-party codec in pkg/qr.
//
// # Architecture
//
//   • Generate delegates to github.com/skip2/go-qrcode and returns PNG bytes
//     with input validation and a default size.
//   • GenerateBase64Image wraps Generate into a data-URI for an <img> tag.
//   • ASCII and Terminal draw a scannable symbol with half-block characters
//     for interactive terminal sessions.
//
// Errors that can be returned are declared as package-level variables so they
// can be compared with errors.Is.
//
// # Usage
//
//	png, err := qrcode.Generate("otpauth://totp/...", 256)
//	if err != nil {
//		// handle error
//	}
//
//	art, err := qrcode.ASCII("otpauth://totp/...")
//	if err != nil {
//		// handle error
//	}
//	fmt.Print(art)
//
// # Error Handling
//
// The functions return well-defined sentinel errors:
//
//   • ErrEmptyContent             – the content argument was empty.
//   • ErrorFailedToGenerateQRCode – the underlying codec could not
//     generate the QR code.
package qrcode
