package sortid

import (
	"math/big"
	"time"

	"github.com/dmitrymomot/sortid/pkg/alphabet"
)

// Granularity is the size of one time bucket. The timestamp field counts
// buckets of this size elapsed since the configured epoch start.
type Granularity string

// Supported time-bucket granularities.
const (
	Nanosecond  Granularity = "nanosecond"
	Microsecond Granularity = "microsecond"
	Millisecond Granularity = "millisecond"
	Second      Granularity = "second"
	Minute      Granularity = "minute"
	Hour        Granularity = "hour"
	Day         Granularity = "day"
	Month       Granularity = "month"
	Year        Granularity = "year"
)

// granularityUnit is the single source of truth mapping granularities to
// bucket durations. Month and Year are calendar approximations.
var granularityUnit = map[Granularity]time.Duration{
	Nanosecond:  time.Nanosecond,
	Microsecond: time.Microsecond,
	Millisecond: time.Millisecond,
	Second:      time.Second,
	Minute:      time.Minute,
	Hour:        time.Hour,
	Day:         24 * time.Hour,
	Month:       30 * 24 * time.Hour,
	Year:        365 * 24 * time.Hour,
}

// Duration returns the bucket duration for the granularity and whether the
// granularity is one of the supported values.
func (g Granularity) Duration() (time.Duration, bool) {
	d, ok := granularityUnit[g]
	return d, ok
}

// Rate is the maximum issuance rate the chrono field must absorb while
// keeping identifiers sortable. The set is closed; free-form rates are not
// accepted.
type Rate string

// Supported issuance rates.
const (
	Rate10PerNanosecond   Rate = "10_per_nanosecond"
	Rate100PerMicrosecond Rate = "100_per_microsecond"
	Rate1PerMicrosecond   Rate = "1_per_microsecond"
	Rate10PerMillisecond  Rate = "10_per_millisecond"
	Rate100PerSecond      Rate = "100_per_second"
	Rate1PerSecond        Rate = "1_per_second"
)

// ratePerSecond is the single source of truth mapping rates to issuances
// per second.
var ratePerSecond = map[Rate]int64{
	Rate10PerNanosecond:   10 * 1000 * 1000 * 1000,
	Rate100PerMicrosecond: 100 * 1000 * 1000,
	Rate1PerMicrosecond:   1000 * 1000,
	Rate10PerMillisecond:  10 * 1000,
	Rate100PerSecond:      100,
	Rate1PerSecond:        1,
}

// PerSecond returns the issuances per second for the rate and whether the
// rate is one of the supported values.
func (r Rate) PerSecond() (int64, bool) {
	n, ok := ratePerSecond[r]
	return n, ok
}

// Config describes a generator. Zero fields take the DefaultConfig values.
type Config struct {
	// Alphabet is the symbol set in any order; it is sorted and validated
	// during construction. Default: alphabet.Base64URL.
	Alphabet string

	// TotalLength is the fixed identifier length in symbols. Must cover the
	// derived timestamp and chrono widths plus at least one suffix symbol.
	// Default: 32.
	TotalLength int

	// Start is the epoch the timestamp field counts from. Default:
	// 2024-01-01 UTC.
	Start time.Time

	// End bounds the representable time range and thereby the timestamp
	// width. Nil means effectively unbounded (10000 years after Start).
	End *time.Time

	// Granularity is the time-bucket size. Default: Microsecond.
	Granularity Granularity

	// Rate sizes the chrono field. Default: Rate100PerMicrosecond.
	Rate Rate
}

// DefaultConfig returns the configuration used for zero Config fields:
// base64url alphabet, 32 symbols, microsecond buckets sized for 100
// issuances per microsecond, epoch starting 2024-01-01 UTC.
func DefaultConfig() Config {
	return Config{
		Alphabet:    alphabet.Base64URL,
		TotalLength: 32,
		Start:       time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		Granularity: Microsecond,
		Rate:        Rate100PerMicrosecond,
	}
}

func (c Config) withDefaults() Config {
	def := DefaultConfig()
	if c.Alphabet == "" {
		c.Alphabet = def.Alphabet
	}
	if c.TotalLength == 0 {
		c.TotalLength = def.TotalLength
	}
	if c.Start.IsZero() {
		c.Start = def.Start
	}
	if c.Granularity == "" {
		c.Granularity = def.Granularity
	}
	if c.Rate == "" {
		c.Rate = def.Rate
	}
	if c.End == nil {
		end := c.Start.AddDate(10000, 0, 0)
		c.End = &end
	}
	return c
}

var nsPerSecond = big.NewInt(int64(time.Second))

// bucketsBetween counts whole buckets of size unit between start and end.
// The span is computed from absolute seconds and nanoseconds, not from a
// time.Duration, so multi-millennium ranges do not saturate.
func bucketsBetween(start, end time.Time, unit time.Duration) *big.Int {
	span := new(big.Int).Sub(big.NewInt(end.Unix()), big.NewInt(start.Unix()))
	span.Mul(span, nsPerSecond)
	span.Add(span, big.NewInt(int64(end.Nanosecond()-start.Nanosecond())))
	return span.Quo(span, big.NewInt(int64(unit)))
}

// unitsPerBucket converts an issuance rate to the expected maximum number of
// issuances within one bucket, rounding up. Sub-unit loads yield zero, which
// still resolves to a one-digit chrono field.
func unitsPerBucket(perSecond int64, unit time.Duration) *big.Int {
	n := new(big.Int).Mul(big.NewInt(perSecond), big.NewInt(int64(unit)))
	q, r := n.QuoRem(n, nsPerSecond, new(big.Int))
	if r.Sign() > 0 {
		q.Add(q, big.NewInt(1))
	}
	return q
}
