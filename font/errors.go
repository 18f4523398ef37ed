package font

import "errors"

var (
	// ErrEmptyFontData is returned when parsing zero bytes.
	ErrEmptyFontData = errors.New("font: empty font data")

	// ErrNotFound is returned when a font file exists neither at its path
	// nor as a system font.
	ErrNotFound = errors.New("font: not found")
)
