package randpool

import (
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	mathrand "math/rand/v2"
	"time"

	"github.com/dmitrymomot/sortid/pkg/alphabet"
)

// ErrEntropyFailed is returned when the secure byte source fails and no
// insecure fallback was opted into.
var ErrEntropyFailed = errors.New("randpool: entropy source failed")

// Pool serves uniformly distributed alphabet symbols from a batch-refilled
// random byte buffer. Not safe for concurrent use; callers serialize access.
type Pool struct {
	a        *alphabet.Alphabet
	source   io.Reader
	buf      []byte
	off      int
	mask     byte
	fallback bool
	degraded bool
	weak     *mathrand.Rand
}

// New creates a Pool drawing symbols from a. The buffer starts empty and is
// filled lazily on first use.
func New(a *alphabet.Alphabet, opts ...Option) *Pool {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	src := o.source
	if src == nil {
		src = rand.Reader
	}
	return &Pool{
		a:        a,
		source:   src,
		buf:      make([]byte, o.bufferSize),
		off:      o.bufferSize, // forces a refill on first draw
		mask:     mask(a.Len()),
		fallback: o.insecureFallback,
	}
}

// mask returns the smallest 2^k-1 covering alphabetSize-1, so masked bytes
// land in [0, 2^k) and rejection sampling only discards the tail above the
// alphabet instead of folding it back onto low indices.
func mask(alphabetSize int) byte {
	m := 1
	for m < alphabetSize-1 {
		m = m<<1 | 1
	}
	return byte(m)
}

// NextSymbol draws one symbol. Out-of-range masked bytes are rejected and
// redrawn, keeping the distribution uniform across the alphabet.
func (p *Pool) NextSymbol() (byte, error) {
	for {
		if p.off >= len(p.buf) {
			if err := p.refill(); err != nil {
				return 0, err
			}
		}
		idx := int(p.buf[p.off] & p.mask)
		p.off++
		if idx < p.a.Len() {
			return p.a.Symbol(idx), nil
		}
	}
}

// Fill overwrites buf with random symbols.
func (p *Pool) Fill(buf []byte) error {
	for i := range buf {
		sym, err := p.NextSymbol()
		if err != nil {
			return err
		}
		buf[i] = sym
	}
	return nil
}

// Degraded reports whether the pool has switched to the insecure fallback
// source after a secure-source failure.
func (p *Pool) Degraded() bool { return p.degraded }

func (p *Pool) refill() error {
	if p.degraded {
		p.weakFill()
		return nil
	}
	if _, err := io.ReadFull(p.source, p.buf); err != nil {
		if !p.fallback {
			return fmt.Errorf("%w: %w", ErrEntropyFailed, err)
		}
		p.degraded = true
		now := time.Now()
		p.weak = mathrand.New(mathrand.NewPCG(uint64(now.UnixNano()), uint64(now.Unix())))
		p.weakFill()
		return nil
	}
	p.off = 0
	return nil
}

func (p *Pool) weakFill() {
	for i := range p.buf {
		p.buf[i] = byte(p.weak.UintN(256))
	}
	p.off = 0
}
