package alphabet_test

import (
	"math/big"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/sortid/pkg/alphabet"
)

func TestNew(t *testing.T) {
	t.Parallel()

	t.Run("sorts symbols by codepoint", func(t *testing.T) {
		t.Parallel()

		a, err := alphabet.New("zyx123")
		require.NoError(t, err)
		assert.Equal(t, "123xyz", a.String())
		assert.Equal(t, byte('1'), a.MinSymbol())
		assert.Equal(t, byte('z'), a.MaxSymbol())
	})

	t.Run("canonical order survives any input order", func(t *testing.T) {
		t.Parallel()

		a1, err := alphabet.New("ba01")
		require.NoError(t, err)
		a2, err := alphabet.New("01ab")
		require.NoError(t, err)
		assert.Equal(t, a1.String(), a2.String())
	})

	t.Run("rejects short alphabets", func(t *testing.T) {
		t.Parallel()

		_, err := alphabet.New("a")
		assert.ErrorIs(t, err, alphabet.ErrTooShort)

		_, err = alphabet.New("")
		assert.ErrorIs(t, err, alphabet.ErrTooShort)
	})

	t.Run("rejects oversized alphabets", func(t *testing.T) {
		t.Parallel()

		_, err := alphabet.New(strings.Repeat("ab", 128))
		assert.ErrorIs(t, err, alphabet.ErrTooLong)
	})

	t.Run("rejects duplicate symbols", func(t *testing.T) {
		t.Parallel()

		_, err := alphabet.New("abca")
		assert.ErrorIs(t, err, alphabet.ErrDuplicateSymbol)
	})

	t.Run("rejects multi-byte runes", func(t *testing.T) {
		t.Parallel()

		_, err := alphabet.New("abcé")
		assert.ErrorIs(t, err, alphabet.ErrWideSymbol)
	})

	t.Run("predefined alphabets are valid", func(t *testing.T) {
		t.Parallel()

		for _, symbols := range []string{
			alphabet.Base64URL,
			alphabet.Base62,
			alphabet.Base32Crockford,
			alphabet.Base16,
			alphabet.Binary,
		} {
			_, err := alphabet.New(symbols)
			assert.NoError(t, err, "alphabet %q should be valid", symbols)
		}
	})
}

func TestEncodeDecode(t *testing.T) {
	t.Parallel()

	hex := alphabet.MustNew(alphabet.Base16)

	t.Run("fixed width with left padding", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, "00ff", hex.Encode(255, 4))
		assert.Equal(t, "ff", hex.Encode(255, 2))
	})

	t.Run("zero encodes as repeated zero digit", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, "0000", hex.Encode(0, 4))
	})

	t.Run("round trip", func(t *testing.T) {
		t.Parallel()

		for _, v := range []int64{0, 1, 15, 16, 255, 4095, 1 << 40} {
			s := hex.Encode(v, 12)
			got, err := hex.Decode(s)
			require.NoError(t, err)
			assert.Equal(t, v, got, "round trip of %d via %q", v, s)
		}
	})

	t.Run("decode order matches lexicographic order", func(t *testing.T) {
		t.Parallel()

		a := alphabet.MustNew("z1A") // canonical: "1Az"
		prev := a.Encode(0, 3)
		for v := int64(1); v < 27; v++ {
			cur := a.Encode(v, 3)
			assert.Less(t, prev, cur, "encoding of %d should sort after %d", v, v-1)
			prev = cur
		}
	})

	t.Run("rejects foreign symbols", func(t *testing.T) {
		t.Parallel()

		_, err := hex.Decode("12g4")
		assert.ErrorIs(t, err, alphabet.ErrUnknownSymbol)
	})

	t.Run("rejects values beyond int64", func(t *testing.T) {
		t.Parallel()

		_, err := hex.Decode("ffffffffffffffff1")
		assert.ErrorIs(t, err, alphabet.ErrValueRange)
	})

	t.Run("decode is pure", func(t *testing.T) {
		t.Parallel()

		v1, err1 := hex.Decode("00ff")
		v2, err2 := hex.Decode("00ff")
		require.NoError(t, err1)
		require.NoError(t, err2)
		assert.Equal(t, v1, v2)
	})
}

func TestNext(t *testing.T) {
	t.Parallel()

	t.Run("binary odometer", func(t *testing.T) {
		t.Parallel()

		bin := alphabet.MustNew(alphabet.Binary)
		tests := []struct {
			in       string
			want     string
			overflow bool
		}{
			{in: "0000", want: "0001"},
			{in: "0001", want: "0010"},
			{in: "0111", want: "1000"},
			{in: "1110", want: "1111"},
			{in: "1111", overflow: true},
			{in: "0", want: "1"},
			{in: "1", overflow: true},
		}
		for _, tt := range tests {
			got, ok := bin.Next(tt.in)
			if tt.overflow {
				assert.False(t, ok, "Next(%q) should overflow", tt.in)
			} else {
				require.True(t, ok, "Next(%q) should succeed", tt.in)
				assert.Equal(t, tt.want, got)
			}
		}
	})

	t.Run("successor matches numeric increment", func(t *testing.T) {
		t.Parallel()

		a := alphabet.MustNew(alphabet.Base32Crockford)
		s := a.Encode(1000, 4)
		for v := int64(1001); v < 1100; v++ {
			next, ok := a.Next(s)
			require.True(t, ok)
			assert.Equal(t, a.Encode(v, 4), next)
			s = next
		}
	})

	t.Run("successor preserves lexicographic order for long fields", func(t *testing.T) {
		t.Parallel()

		// 64 binary digits exceed what a uint64 counter could track if the
		// field were one digit longer; Next never converts, so width is free.
		bin := alphabet.MustNew(alphabet.Binary)
		s := bin.MinString(64)
		for range 1000 {
			next, ok := bin.Next(s)
			require.True(t, ok)
			assert.Less(t, s, next)
			s = next
		}
	})
}

func TestWidthFor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		symbols string
		n       int64
		want    int
	}{
		{name: "zero needs one digit", symbols: alphabet.Base16, n: 0, want: 1},
		{name: "base minus one fits one digit", symbols: alphabet.Base16, n: 15, want: 1},
		{name: "base needs two digits", symbols: alphabet.Base16, n: 16, want: 2},
		{name: "base squared minus one fits two", symbols: alphabet.Base16, n: 255, want: 2},
		{name: "base squared needs three", symbols: alphabet.Base16, n: 256, want: 3},
		{name: "binary wide value", symbols: alphabet.Binary, n: 1023, want: 10},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			a := alphabet.MustNew(tt.symbols)
			assert.Equal(t, tt.want, a.WidthFor(big.NewInt(tt.n)))
		})
	}
}

func TestMinMaxString(t *testing.T) {
	t.Parallel()

	a := alphabet.MustNew(alphabet.Base62)
	assert.Equal(t, "0000", a.MinString(4))
	assert.Equal(t, "zzzz", a.MaxString(4))
	assert.Less(t, a.MinString(4), a.MaxString(4))
}
