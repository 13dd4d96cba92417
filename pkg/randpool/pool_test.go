package randpool_test

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/sortid/pkg/alphabet"
	"github.com/dmitrymomot/sortid/pkg/randpool"
)

// repeatReader yields a fixed byte sequence forever.
type repeatReader struct {
	seq []byte
	pos int
}

func (r *repeatReader) Read(p []byte) (int, error) {
	for i := range p {
		p[i] = r.seq[r.pos%len(r.seq)]
		r.pos++
	}
	return len(p), nil
}

// failReader always fails.
type failReader struct{}

func (failReader) Read([]byte) (int, error) {
	return 0, errors.New("no entropy")
}

func TestNextSymbol(t *testing.T) {
	t.Parallel()

	t.Run("maps bytes to alphabet symbols deterministically", func(t *testing.T) {
		t.Parallel()

		a := alphabet.MustNew(alphabet.Base16) // mask 0x0f
		pool := randpool.New(a,
			randpool.WithSource(&repeatReader{seq: []byte{0x00, 0x01, 0x1f, 0xae}}),
		)

		// 0x00&0x0f=0 -> '0', 0x01&0x0f=1 -> '1', 0x1f&0x0f=15 -> 'f', 0xae&0x0f=14 -> 'e'
		want := []byte{'0', '1', 'f', 'e'}
		for _, w := range want {
			sym, err := pool.NextSymbol()
			require.NoError(t, err)
			assert.Equal(t, string(w), string(sym))
		}
	})

	t.Run("rejects out-of-range indices instead of folding them", func(t *testing.T) {
		t.Parallel()

		// 10 symbols, mask 0x0f: masked values 10..15 must be discarded,
		// never mapped back onto symbols 0..5.
		a := alphabet.MustNew("0123456789")
		pool := randpool.New(a,
			randpool.WithSource(&repeatReader{seq: []byte{0x0f, 0x0e, 0x0a, 0x03}}),
		)

		sym, err := pool.NextSymbol()
		require.NoError(t, err)
		assert.Equal(t, "3", string(sym), "first three bytes map above the alphabet and must be skipped")
	})

	t.Run("refills transparently when the buffer drains", func(t *testing.T) {
		t.Parallel()

		a := alphabet.MustNew(alphabet.Binary)
		pool := randpool.New(a,
			randpool.WithSource(&repeatReader{seq: []byte{0x00, 0x01}}),
			randpool.WithBufferSize(4),
		)

		got := make([]byte, 0, 16)
		for range 16 {
			sym, err := pool.NextSymbol()
			require.NoError(t, err)
			got = append(got, sym)
		}
		assert.Equal(t, "0101010101010101", string(got))
	})

	t.Run("every symbol drawn belongs to the alphabet", func(t *testing.T) {
		t.Parallel()

		a := alphabet.MustNew(alphabet.Base62)
		pool := randpool.New(a)

		for range 5000 {
			sym, err := pool.NextSymbol()
			require.NoError(t, err)
			assert.True(t, a.Contains(sym), "symbol %q outside alphabet", sym)
		}
	})

	t.Run("distribution covers the whole alphabet", func(t *testing.T) {
		t.Parallel()

		a := alphabet.MustNew(alphabet.Base32Crockford)
		pool := randpool.New(a)

		counts := make(map[byte]int, a.Len())
		const draws = 32 * 1000
		for range draws {
			sym, err := pool.NextSymbol()
			require.NoError(t, err)
			counts[sym]++
		}

		require.Len(t, counts, a.Len(), "all symbols should appear")
		for sym, n := range counts {
			// Expected 1000 per symbol; a 2x band is far beyond any
			// plausible deviation for a uniform source.
			assert.Greater(t, n, 500, "symbol %q underrepresented", sym)
			assert.Less(t, n, 2000, "symbol %q overrepresented", sym)
		}
	})
}

func TestFill(t *testing.T) {
	t.Parallel()

	a := alphabet.MustNew(alphabet.Base62)
	pool := randpool.New(a)

	buf := make([]byte, 24)
	require.NoError(t, pool.Fill(buf))
	for _, sym := range buf {
		assert.True(t, a.Contains(sym))
	}
}

func TestEntropyFailure(t *testing.T) {
	t.Parallel()

	t.Run("hard error without fallback", func(t *testing.T) {
		t.Parallel()

		a := alphabet.MustNew(alphabet.Base62)
		pool := randpool.New(a, randpool.WithSource(failReader{}))

		_, err := pool.NextSymbol()
		assert.ErrorIs(t, err, randpool.ErrEntropyFailed)
		assert.False(t, pool.Degraded())
	})

	t.Run("visible degradation with fallback", func(t *testing.T) {
		t.Parallel()

		a := alphabet.MustNew(alphabet.Base62)
		pool := randpool.New(a,
			randpool.WithSource(failReader{}),
			randpool.WithInsecureFallback(),
		)

		sym, err := pool.NextSymbol()
		require.NoError(t, err)
		assert.True(t, a.Contains(sym))
		assert.True(t, pool.Degraded(), "fallback engagement must be visible")
	})

	t.Run("short source read is a failure", func(t *testing.T) {
		t.Parallel()

		a := alphabet.MustNew(alphabet.Base62)
		pool := randpool.New(a,
			randpool.WithSource(bytes.NewReader([]byte{0x01, 0x02})),
			randpool.WithBufferSize(64),
		)

		_, err := pool.NextSymbol()
		assert.ErrorIs(t, err, randpool.ErrEntropyFailed)
	})
}
