package alphabet

import (
	"fmt"
	"math"
	"math/big"
	"sort"
	"strings"
	"unicode/utf8"
)

// Predefined symbol sets. All of them sort the same way they encode.
const (
	// Base64URL is the URL-safe set used by nanoid-style identifiers.
	Base64URL = "0123456789abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ-_"

	// Base62 is alphanumeric only.
	Base62 = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"

	// Base32Crockford excludes I, L, O, U to avoid visual confusion.
	Base32Crockford = "0123456789ABCDEFGHJKMNPQRSTVWXYZ"

	// Base16 is lowercase hex.
	Base16 = "0123456789abcdef"

	// Binary is the two-symbol alphabet, mostly useful in tests.
	Binary = "01"
)

// Alphabet is an immutable, codepoint-sorted set of single-byte symbols.
// A symbol's position in the set is its digit value, so lexicographic
// comparison of encoded strings matches numeric comparison of values.
type Alphabet struct {
	symbols []byte
	index   [256]int16 // -1 where the byte is not a symbol
}

// New builds an Alphabet from the given symbols. The input may arrive in any
// order; it is sorted ascending by byte value to become canonical. It must
// contain between 2 and 255 distinct single-byte symbols.
func New(symbols string) (*Alphabet, error) {
	if len(symbols) < 2 {
		return nil, ErrTooShort
	}
	if len(symbols) > 255 {
		return nil, ErrTooLong
	}
	for i := 0; i < len(symbols); i++ {
		if symbols[i] >= utf8.RuneSelf {
			return nil, fmt.Errorf("%w: %q", ErrWideSymbol, symbols[i])
		}
	}

	a := &Alphabet{symbols: []byte(symbols)}
	sort.Slice(a.symbols, func(i, j int) bool { return a.symbols[i] < a.symbols[j] })

	for i := range a.index {
		a.index[i] = -1
	}
	for i, b := range a.symbols {
		if a.index[b] >= 0 {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateSymbol, b)
		}
		a.index[b] = int16(i)
	}
	return a, nil
}

// MustNew is like New but panics on error. Intended for the predefined
// alphabets and package-level variables.
func MustNew(symbols string) *Alphabet {
	a, err := New(symbols)
	if err != nil {
		panic(err)
	}
	return a
}

// Len returns the number of symbols (the base of the codec).
func (a *Alphabet) Len() int { return len(a.symbols) }

// String returns the canonical (sorted) symbol string.
func (a *Alphabet) String() string { return string(a.symbols) }

// MinSymbol returns the lowest symbol, the zero digit.
func (a *Alphabet) MinSymbol() byte { return a.symbols[0] }

// MaxSymbol returns the highest symbol.
func (a *Alphabet) MaxSymbol() byte { return a.symbols[len(a.symbols)-1] }

// Symbol returns the symbol for digit value i.
func (a *Alphabet) Symbol(i int) byte { return a.symbols[i] }

// Contains reports whether b is one of the symbols.
func (a *Alphabet) Contains(b byte) bool { return a.index[b] >= 0 }

// Index returns the digit value of symbol b.
func (a *Alphabet) Index(b byte) (int, bool) {
	i := a.index[b]
	return int(i), i >= 0
}

// Encode renders v as a big-endian base-Len number of exactly width symbols,
// left-padded with the zero digit. v must be non-negative and fit the width;
// sizing is the caller's responsibility (see WidthFor).
func (a *Alphabet) Encode(v int64, width int) string {
	out := make([]byte, width)
	for i := range out {
		out[i] = a.symbols[0]
	}
	base := int64(len(a.symbols))
	for i := width - 1; i >= 0 && v > 0; i-- {
		out[i] = a.symbols[v%base]
		v /= base
	}
	return string(out)
}

// Decode is the strict inverse of Encode: it accumulates digit values left to
// right. It fails with ErrUnknownSymbol on a byte outside the alphabet and
// with ErrValueRange if the value does not fit in int64. Field-width checks
// are the caller's job.
func (a *Alphabet) Decode(s string) (int64, error) {
	base := int64(len(a.symbols))
	var total int64
	for i := 0; i < len(s); i++ {
		d, ok := a.Index(s[i])
		if !ok {
			return 0, fmt.Errorf("%w: %q", ErrUnknownSymbol, s[i])
		}
		if total > (math.MaxInt64-int64(d))/base {
			return 0, ErrValueRange
		}
		total = total*base + int64(d)
	}
	return total, nil
}

// Next returns the base-Len successor of s at fixed width: the rightmost
// symbol is advanced; symbols already at the maximum roll over to the zero
// digit and the carry moves left. When every symbol is at the maximum the
// value has no successor and Next returns ("", false).
//
// s must consist solely of alphabet symbols.
func (a *Alphabet) Next(s string) (string, bool) {
	out := []byte(s)
	for i := len(out) - 1; i >= 0; i-- {
		d, _ := a.Index(out[i])
		if d < len(a.symbols)-1 {
			out[i] = a.symbols[d+1]
			return string(out), true
		}
		out[i] = a.symbols[0]
	}
	return "", false
}

// MinString returns width repetitions of the zero digit, the smallest value
// of that width.
func (a *Alphabet) MinString(width int) string {
	return strings.Repeat(string(a.symbols[0]), width)
}

// MaxString returns width repetitions of the highest symbol, the largest
// value of that width.
func (a *Alphabet) MaxString(width int) string {
	return strings.Repeat(string(a.symbols[len(a.symbols)-1]), width)
}

// WidthFor returns the minimal number of digits w such that Len^w > n,
// never less than 1. The arithmetic is exact; no floating point is involved.
func (a *Alphabet) WidthFor(n *big.Int) int {
	base := big.NewInt(int64(len(a.symbols)))
	pow := new(big.Int).Set(base)
	width := 1
	for pow.Cmp(n) <= 0 {
		pow.Mul(pow, base)
		width++
	}
	return width
}

// Pow returns Len^width as a big integer; the count of distinct values a
// field of that width can hold.
func (a *Alphabet) Pow(width int) *big.Int {
	base := big.NewInt(int64(len(a.symbols)))
	return new(big.Int).Exp(base, big.NewInt(int64(width)), nil)
}
