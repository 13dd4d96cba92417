// Package sortid issues compact, lexicographically sortable unique
// identifiers whose creation order is recoverable from plain string
// comparison, without a central coordinator.
//
// An identifier is a fixed-length string of three contiguous fields:
//
//	[timestamp][chrono][suffix]
//
// The timestamp field encodes time buckets elapsed since a configurable
// epoch, the chrono field orders bursts issued within one bucket via an
// odometer-style cascade, and the random suffix disambiguates concurrent
// issuers and absorbs chrono overflow. Because the alphabet is sorted so
// that symbol order equals digit value, identifiers from one generator
// compare lexicographically in issuance order.
//
// Basic usage:
//
//	gen, err := sortid.New(sortid.DefaultConfig())
//	if err != nil {
//	    return err
//	}
//
//	id, err := gen.Generate()          // e.g. "0EKz3p00A8Zq1x..."
//	parts, err := gen.Decode(id)       // parts.Time, parts.Chrono, parts.Suffix
//
// # Configuration
//
// Config controls the alphabet, total length, epoch range, time-bucket
// granularity and the issuance rate the chrono field must absorb. Field
// widths are derived, not configured: the timestamp width covers the bucket
// count between Start and End, the chrono width covers the expected
// issuances per bucket, and the suffix takes the rest:
//
//	gen, err := sortid.New(sortid.Config{
//	    Alphabet:    alphabet.Base62,
//	    TotalLength: 24,
//	    Start:       time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
//	    Granularity: sortid.Millisecond,
//	    Rate:        sortid.Rate10PerMillisecond,
//	})
//
// Both Granularity and Rate are closed enumerations; New rejects values
// outside them.
//
// # Concurrency
//
// A Generator is safe for concurrent use. Each Generate call is one critical
// section over the last-issued state, so identifiers ordered by completion
// are non-decreasing. No ordering holds across distinct generator instances;
// uniqueness across them rests on suffix entropy alone.
//
// # Errors
//
// All failures are returned, never logged and swallowed:
//
//   - [ErrInvalidConfig] — construction failed; nothing was built
//   - [ErrTimestampExhausted] — the clock passed [Generator.MaxTime]
//   - [ErrRateExceeded] — a bucket's chrono+suffix capacity is spent
//   - [ErrInvalidID] — Decode input is malformed; generator state untouched
//
// [Generator.GenerateContext] adds the one sanctioned retry: on a full
// bucket it waits one bucket duration and tries again until the context is
// cancelled.
//
// # Testability
//
// The wall clock and the entropy source are injectable ([WithClock],
// [WithEntropy]), so bucket transitions and suffix contents can be made
// fully deterministic in tests.
package sortid
