package sortid

import (
	"io"
	"time"
)

// Option configures a Generator beyond what Config covers.
type Option func(*genOptions)

type genOptions struct {
	clock            func() time.Time
	entropy          io.Reader
	insecureFallback bool
	retryInterval    time.Duration
}

func defaultGenOptions() *genOptions {
	return &genOptions{
		clock: time.Now,
	}
}

// WithClock replaces the wall clock. Intended for tests that need to pin or
// replay time buckets.
func WithClock(now func() time.Time) Option {
	return func(o *genOptions) {
		if now != nil {
			o.clock = now
		}
	}
}

// WithEntropy replaces the secure random source feeding the suffix pool.
// Default: crypto/rand.Reader. Tests can pass a deterministic reader.
func WithEntropy(r io.Reader) Option {
	return func(o *genOptions) {
		o.entropy = r
	}
}

// WithInsecureFallback lets the suffix pool degrade to a time-seeded PRNG
// when the secure source fails, instead of failing generation. The downgrade
// is observable via Generator.Degraded. Off by default.
func WithInsecureFallback() Option {
	return func(o *genOptions) {
		o.insecureFallback = true
	}
}

// WithRetryInterval overrides how long GenerateContext sleeps before
// retrying a bucket whose capacity is exhausted.
// Default: one bucket duration, floored at 1ms.
func WithRetryInterval(d time.Duration) Option {
	return func(o *genOptions) {
		if d > 0 {
			o.retryInterval = d
		}
	}
}
