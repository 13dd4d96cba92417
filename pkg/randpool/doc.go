// Package randpool supplies random alphabet symbols from a buffered,
// cryptographically secure byte source.
//
// Secure randomness is fetched in batches (1024 bytes by default) and served
// one symbol at a time, which amortizes the cost of the underlying source
// across many identifiers. Raw bytes are mapped to symbol indices with a
// bit mask sized to the alphabet and rejection sampling, so every symbol is
// drawn with the same probability; plain modulo mapping would skew toward
// low-index symbols.
//
// Basic usage:
//
//	a := alphabet.MustNew(alphabet.Base62)
//	pool := randpool.New(a)
//
//	sym, err := pool.NextSymbol()
//
// # Entropy Injection
//
// The byte source is an io.Reader (crypto/rand.Reader by default), so tests
// can inject a deterministic sequence:
//
//	pool := randpool.New(a, randpool.WithSource(bytes.NewReader(fixed)))
//
// # Degraded Mode
//
// A failing secure source is a hard error. A deployment that prefers
// availability over entropy quality can opt in to a weaker fallback:
//
//	pool := randpool.New(a, randpool.WithInsecureFallback())
//
// With the fallback enabled a source failure switches the pool to a
// time-seeded PRNG and Degraded() starts reporting true — the downgrade is
// visible, never silent.
//
// A Pool is not safe for concurrent use; the owning generator serializes
// access under its own lock.
package randpool
