package cli

import "errors"

var (
	// ErrClipboardUnavailable is returned when no clipboard helper
	// (pbcopy, xclip, wl-copy) is installed.
	ErrClipboardUnavailable = errors.New("no clipboard tool found: install pbcopy (macOS), xclip or wl-copy (Linux)")

	// ErrCustomCharsetRequired is returned for --type custom without
	// --custom-charset.
	ErrCustomCharsetRequired = errors.New("custom charset must be provided when using --type custom")

	// ErrSecretNameRequired is returned for --save-aws without
	// --aws-secret-name.
	ErrSecretNameRequired = errors.New("--aws-secret-name is required when using --save-aws")

	// ErrUnknownOutputFormat is returned for a -f value outside
	// plain|json|csv|env.
	ErrUnknownOutputFormat = errors.New("unknown output format")
)
