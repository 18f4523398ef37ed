package meshgen

import "errors"

var (
	// ErrNilFont is returned when generating without a font.
	ErrNilFont = errors.New("meshgen: nil font")

	// ErrInvalidSize is returned for a size that is not a positive number.
	ErrInvalidSize = errors.New("meshgen: size must be positive")

	// ErrInvalidDepth is returned for a negative or non-finite depth.
	ErrInvalidDepth = errors.New("meshgen: depth must be zero or positive")
)
