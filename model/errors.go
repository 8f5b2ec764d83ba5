package model

import "errors"

var (
	// ErrMalformedDescription is returned when a page description lacks its
	// definitions or drawing region, or a transform cannot be parsed.
	ErrMalformedDescription = errors.New("glyphtab: malformed page description")

	// ErrLayoutMismatch is returned when the transliteration and glyph streams
	// of a page do not correspond one to one.
	ErrLayoutMismatch = errors.New("glyphtab: layout mismatch")

	// ErrInvalidCodepoint is returned when a code label does not name a
	// Unicode scalar value.
	ErrInvalidCodepoint = errors.New("glyphtab: invalid codepoint")
)
