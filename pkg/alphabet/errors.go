package alphabet

import "errors"

// Sentinel errors for alphabet construction and decoding.
var (
	// ErrTooShort is returned when an alphabet has fewer than 2 symbols.
	ErrTooShort = errors.New("alphabet: must contain at least 2 symbols")

	// ErrTooLong is returned when an alphabet has more than 255 symbols.
	ErrTooLong = errors.New("alphabet: must contain at most 255 symbols")

	// ErrDuplicateSymbol is returned when an alphabet contains a symbol twice.
	ErrDuplicateSymbol = errors.New("alphabet: symbols must be unique")

	// ErrWideSymbol is returned when an alphabet contains a non-ASCII byte.
	ErrWideSymbol = errors.New("alphabet: symbols must be single-byte ASCII")

	// ErrUnknownSymbol is returned when decoding input that contains a byte
	// outside the alphabet.
	ErrUnknownSymbol = errors.New("alphabet: symbol not in alphabet")

	// ErrValueRange is returned when a decoded value does not fit in int64.
	ErrValueRange = errors.New("alphabet: decoded value out of range")
)
