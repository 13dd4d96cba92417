package randpool

import "io"

// Option configures a Pool.
type Option func(*options)

type options struct {
	source           io.Reader
	bufferSize       int
	insecureFallback bool
}

func defaultOptions() *options {
	return &options{
		source:     nil, // nil = crypto/rand.Reader
		bufferSize: 1024,
	}
}

// WithSource sets the entropy source the pool refills from.
// Default: crypto/rand.Reader. Tests can pass a deterministic reader.
func WithSource(r io.Reader) Option {
	return func(o *options) {
		o.source = r
	}
}

// WithBufferSize sets how many bytes are prefetched per refill.
// Default: 1024.
func WithBufferSize(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.bufferSize = n
		}
	}
}

// WithInsecureFallback lets the pool switch to a time-seeded PRNG when the
// secure source fails instead of returning ErrEntropyFailed. The switch is
// reported by Degraded; it is never silent. Off by default.
func WithInsecureFallback() Option {
	return func(o *options) {
		o.insecureFallback = true
	}
}
