package sortid

import (
	"context"
	"errors"
	"fmt"
	"math"
	"math/big"
	"sync"
	"time"

	"github.com/dmitrymomot/sortid/pkg/alphabet"
	"github.com/dmitrymomot/sortid/pkg/randpool"
)

// farFuture caps MaxTime for configurations whose timestamp capacity reaches
// beyond what time.Time arithmetic tolerates.
var farFuture = time.Unix(1<<62, 0)

// Generator issues fixed-length, lexicographically sortable identifiers.
// Identifiers are partitioned as [timestamp][chrono][suffix]: the timestamp
// field counts time buckets since the epoch start, the chrono field orders
// issuances within a bucket and the suffix disambiguates concurrent issuers.
//
// A Generator is safe for concurrent use; each call to Generate runs as one
// critical section over the last-issued state.
type Generator struct {
	alpha     *alphabet.Alphabet
	totalLen  int
	tsLen     int
	chronoLen int
	suffixLen int
	start     time.Time
	gran      Granularity
	unit      time.Duration
	rate      Rate
	maxBucket *big.Int
	// maxBucket clamped into int64 space for the hot-path comparison;
	// buckets themselves are derived from a time.Duration and cannot pass it.
	maxBucketI64 int64
	clock        func() time.Time
	retry        time.Duration
	pool         *randpool.Pool

	mu         sync.Mutex
	lastBucket int64
	lastID     []byte
	lastChrono string
}

// Decoded is the result of taking an identifier apart. Time carries the
// bucket the identifier was issued in, truncated to the configured
// granularity; Chrono and Suffix are returned as opaque symbol strings.
type Decoded struct {
	Time   time.Time
	Chrono string
	Suffix string
}

// Info is a diagnostics snapshot of a resolved configuration. Reading it has
// no effect on generation state.
type Info struct {
	Alphabet        string
	TotalLength     int
	TimestampLength int
	ChronoLength    int
	SuffixLength    int
	Granularity     Granularity
	Rate            Rate
	Start           time.Time
	End             time.Time
}

// New resolves cfg into a Generator or fails with an error wrapping
// ErrInvalidConfig. Zero Config fields take DefaultConfig values. Field
// widths are derived exactly: the timestamp width is the minimum symbol
// count whose capacity exceeds the bucket count between Start and End, the
// chrono width the minimum whose capacity exceeds the expected issuances per
// bucket (at least one symbol each).
func New(cfg Config, opts ...Option) (*Generator, error) {
	cfg = cfg.withDefaults()

	unit, ok := cfg.Granularity.Duration()
	if !ok {
		return nil, fmt.Errorf("%w: unknown granularity %q", ErrInvalidConfig, cfg.Granularity)
	}
	perSecond, ok := cfg.Rate.PerSecond()
	if !ok {
		return nil, fmt.Errorf("%w: unknown rate %q", ErrInvalidConfig, cfg.Rate)
	}
	if cfg.End.Before(cfg.Start) {
		return nil, fmt.Errorf("%w: end date precedes start date", ErrInvalidConfig)
	}

	alpha, err := alphabet.New(cfg.Alphabet)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	tsLen := alpha.WidthFor(bucketsBetween(cfg.Start, *cfg.End, unit))
	chronoLen := alpha.WidthFor(unitsPerBucket(perSecond, unit))

	if minLen := tsLen + chronoLen + 1; cfg.TotalLength < minLen {
		return nil, fmt.Errorf("%w: total length %d is below minimum %d (timestamp %d + chrono %d + suffix 1)",
			ErrInvalidConfig, cfg.TotalLength, minLen, tsLen, chronoLen)
	}

	o := defaultGenOptions()
	for _, opt := range opts {
		opt(o)
	}

	poolOpts := []randpool.Option{}
	if o.entropy != nil {
		poolOpts = append(poolOpts, randpool.WithSource(o.entropy))
	}
	if o.insecureFallback {
		poolOpts = append(poolOpts, randpool.WithInsecureFallback())
	}

	maxBucket := alpha.Pow(tsLen)
	maxBucketI64 := int64(math.MaxInt64)
	if maxBucket.IsInt64() {
		maxBucketI64 = maxBucket.Int64()
	}

	retry := o.retryInterval
	if retry == 0 {
		retry = max(unit, time.Millisecond)
	}

	return &Generator{
		alpha:        alpha,
		totalLen:     cfg.TotalLength,
		tsLen:        tsLen,
		chronoLen:    chronoLen,
		suffixLen:    cfg.TotalLength - tsLen - chronoLen,
		start:        cfg.Start,
		gran:         cfg.Granularity,
		unit:         unit,
		rate:         cfg.Rate,
		maxBucket:    maxBucket,
		maxBucketI64: maxBucketI64,
		clock:        o.clock,
		retry:        retry,
		pool:         randpool.New(alpha, poolOpts...),
		lastBucket:   -1,
	}, nil
}

// Generate issues the next identifier. Within one time bucket successive
// identifiers advance the chrono field, overflowing into the suffix when the
// chrono field is exhausted; a new bucket re-encodes the timestamp, resets
// the chrono field and draws a fresh random suffix. Identifiers from one
// Generator are non-decreasing in issuance order under lexicographic
// comparison.
//
// Generate fails with ErrTimestampExhausted once the clock passes MaxTime
// and with ErrRateExceeded when a bucket's chrono+suffix capacity is spent.
func (g *Generator) Generate() (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.generateLocked()
}

func (g *Generator) generateLocked() (string, error) {
	bucket := g.bucketAt(g.clock())
	if bucket >= g.maxBucketI64 {
		return "", fmt.Errorf("%w: bucket %d does not fit %d timestamp symbols at %s granularity",
			ErrTimestampExhausted, bucket, g.tsLen, g.gran)
	}

	// A bucket at or before the last issued one means either a same-bucket
	// burst or a clock that stepped backwards; both keep issuing from the
	// last bucket via the cascade so ordering never regresses.
	if g.lastID != nil && bucket <= g.lastBucket {
		if next, ok := g.alpha.Next(g.lastChrono); ok {
			copy(g.lastID[g.tsLen:], next)
			g.lastChrono = next
			return string(g.lastID), nil
		}
		// Chrono exhausted: absorb the overflow in the suffix.
		if next, ok := g.alpha.Next(string(g.lastID[g.tsLen:])); ok {
			copy(g.lastID[g.tsLen:], next)
			g.lastChrono = next[:g.chronoLen]
			return string(g.lastID), nil
		}
		return "", fmt.Errorf("%w: chrono and suffix capacity spent within one %s bucket",
			ErrRateExceeded, g.gran)
	}

	id := make([]byte, g.totalLen)
	copy(id, g.alpha.Encode(bucket, g.tsLen))
	chrono := g.alpha.MinString(g.chronoLen)
	copy(id[g.tsLen:], chrono)
	if err := g.pool.Fill(id[g.tsLen+g.chronoLen:]); err != nil {
		return "", err
	}

	g.lastBucket = bucket
	g.lastID = id
	g.lastChrono = chrono
	return string(id), nil
}

// GenerateContext is Generate with the documented wait-and-retry policy for
// exhausted buckets: on ErrRateExceeded it sleeps one retry interval (one
// bucket duration by default, floored at 1ms) and tries again until ctx is
// done. Cancellation returns the context error joined with the last
// ErrRateExceeded. All other errors propagate immediately.
func (g *Generator) GenerateContext(ctx context.Context) (string, error) {
	for {
		id, err := g.Generate()
		if err == nil || !errors.Is(err, ErrRateExceeded) {
			return id, err
		}
		select {
		case <-ctx.Done():
			return "", errors.Join(ctx.Err(), err)
		case <-time.After(g.retry):
		}
	}
}

// Decode takes an identifier apart without touching generator state. It
// fails with ErrInvalidID for input whose length differs from the configured
// total length or that contains symbols outside the alphabet.
func (g *Generator) Decode(id string) (Decoded, error) {
	if len(id) != g.totalLen {
		return Decoded{}, fmt.Errorf("%w: length %d, want %d", ErrInvalidID, len(id), g.totalLen)
	}
	for i := 0; i < len(id); i++ {
		if !g.alpha.Contains(id[i]) {
			return Decoded{}, fmt.Errorf("%w: symbol %q not in alphabet", ErrInvalidID, id[i])
		}
	}

	bucket, err := g.alpha.Decode(id[:g.tsLen])
	if err != nil {
		return Decoded{}, fmt.Errorf("%w: %w", ErrInvalidID, err)
	}

	return Decoded{
		Time:   g.bucketTime(big.NewInt(bucket)),
		Chrono: id[g.tsLen : g.tsLen+g.chronoLen],
		Suffix: id[g.tsLen+g.chronoLen:],
	}, nil
}

// MaxTime returns the last instant the configured timestamp width can
// represent, saturating at a far-future bound for effectively unbounded
// configurations.
func (g *Generator) MaxTime() time.Time {
	return g.bucketTime(g.maxBucket)
}

// Info returns a snapshot of the resolved configuration for diagnostics and
// logging. It is pure.
func (g *Generator) Info() Info {
	return Info{
		Alphabet:        g.alpha.String(),
		TotalLength:     g.totalLen,
		TimestampLength: g.tsLen,
		ChronoLength:    g.chronoLen,
		SuffixLength:    g.suffixLen,
		Granularity:     g.gran,
		Rate:            g.rate,
		Start:           g.start,
		End:             g.MaxTime(),
	}
}

// Degraded reports whether the suffix pool has fallen back to insecure
// randomness (only possible when WithInsecureFallback was set).
func (g *Generator) Degraded() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.pool.Degraded()
}

// bucketAt converts an instant to a bucket index. Instants before the epoch
// start land in bucket zero.
func (g *Generator) bucketAt(t time.Time) int64 {
	d := t.Sub(g.start)
	if d < 0 {
		return 0
	}
	return int64(d / g.unit)
}

// bucketTime is the inverse of bucketAt, computed exactly and saturating at
// the far-future bound instead of overflowing duration arithmetic.
func (g *Generator) bucketTime(bucket *big.Int) time.Time {
	ns := new(big.Int).Mul(bucket, big.NewInt(int64(g.unit)))
	if !ns.IsInt64() {
		return farFuture
	}
	t := g.start.Add(time.Duration(ns.Int64()))
	if t.After(farFuture) || t.Before(g.start) {
		return farFuture
	}
	return t
}
