// Package alphabet implements the symbol table behind sortable identifiers:
// a deduplicated, codepoint-sorted set of single-byte symbols together with
// a fixed-width base-N codec and an odometer-style successor operation.
//
// The sort order of the symbols equals their digit values, so lexicographic
// comparison of encoded strings equals numeric comparison of the values they
// encode. This is the property sortable IDs are built on.
//
// Basic usage:
//
//	a, err := alphabet.New(alphabet.Base62)
//	if err != nil {
//	    return err
//	}
//
//	s := a.Encode(12345, 6)      // fixed-width, left-padded with a.MinSymbol()
//	v, err := a.Decode(s)        // v == 12345
//
// # Successor Operation
//
// Next increments a string of symbols the way an odometer rolls over,
// rightmost digit first, without ever converting to a native integer:
//
//	next, ok := a.Next("0009")   // "000a" for Base62, ok == true
//	next, ok = a.Next("zzzz")    // overflow: ok == false
//
// Because Next works symbol-by-symbol it is independent of field width and
// never hits native integer limits, no matter how long the field is.
//
// # Predefined Alphabets
//
// The package ships the alphabets commonly used for identifiers:
// [Base64URL] (URL-safe, the sortid default), [Base62], [Base32Crockford],
// [Base16] and [Binary].
package alphabet
