package sortid

import "errors"

// Sentinel errors for generator construction and operation.
var (
	// ErrInvalidConfig is returned by New when the configuration cannot be
	// resolved: bad alphabet, end before start, unknown granularity or rate,
	// or a total length too small for the derived field widths. Construction
	// either succeeds fully or fails with this error.
	ErrInvalidConfig = errors.New("sortid: invalid configuration")

	// ErrTimestampExhausted is returned by Generate when the current time
	// bucket no longer fits the configured timestamp width. Only a wider
	// timestamp field, a later epoch start, or a coarser granularity recover
	// from it.
	ErrTimestampExhausted = errors.New("sortid: current time exceeds maximum supported timestamp")

	// ErrRateExceeded is returned by Generate when both the chrono field and
	// the chrono+suffix cascade are exhausted within one time bucket. Waiting
	// for the next bucket recovers.
	ErrRateExceeded = errors.New("sortid: id capacity exhausted for current time bucket")

	// ErrInvalidID is returned by Decode for input of the wrong length or
	// containing symbols outside the alphabet. It never affects generator
	// state.
	ErrInvalidID = errors.New("sortid: malformed identifier")
)
