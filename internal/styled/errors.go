package styled

import "errors"

// Errors returned by styled operations. Editing operations never fail; these
// are reported by decoders and parsers.
var (
	// ErrInvalidColor indicates a color string that is not "#rgb" or "#rrggbb".
	ErrInvalidColor = errors.New("invalid color")

	// ErrUnknownStyle indicates an unrecognized style flag name.
	ErrUnknownStyle = errors.New("unknown style")

	// ErrTruncated indicates binary input ended before a full string was read.
	ErrTruncated = errors.New("truncated styled string data")

	// ErrTooLarge indicates text too long for the binary length prefix.
	ErrTooLarge = errors.New("styled string too large to encode")

	// ErrInvalidJSON indicates malformed JSON input.
	ErrInvalidJSON = errors.New("invalid styled string JSON")

	// ErrInvalidPattern indicates a regular expression that failed to compile.
	ErrInvalidPattern = errors.New("invalid regular expression")
)
