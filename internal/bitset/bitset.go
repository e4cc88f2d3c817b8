// Package bitset implements the CS character-set bitmask: a fixed-width
// bitmask over infix-closure (IC) indices.
//
// The bit for an infix w is set iff w is in the language of the regex a CS
// value represents. Bit 0 is reserved for epsilon. Every CS produced during
// search is well-formed with respect to the IC that indexed it — any bit set
// corresponds to a real IC element — and forward operators preserve that
// well-formedness.
//
// CS is fixed at 256 bits (four uint64 words), the widest of the three
// widths the original algorithm allows (64/128/256); RequiredWidth still
// classifies a closure size into the band it would have needed, for
// diagnostics, even though every CS value here uses the same representation.
package bitset

import (
	"errors"
	"fmt"
	"math/bits"
)

// Words is the number of uint64 words backing a CS value.
const Words = 4

// MaxBits is the largest IC index a CS can represent.
const MaxBits = Words * 64

// ErrWidthExceeded indicates an infix closure is larger than CS can encode.
var ErrWidthExceeded = errors.New("bitset: required width exceeds 256 bits")

// CS is a fixed-width bitmask over infix-closure indices. The zero value is
// the empty set (the empty language). CS is comparable and usable as a map
// key.
type CS [Words]uint64

// Zero returns the empty CS (the empty language — no bits set).
func Zero() CS {
	return CS{}
}

// One returns the CS with only bit 0 set (epsilon).
func One() CS {
	var c CS
	c[0] = 1
	return c
}

// Bit returns the CS with only bit i set. Panics if i is out of range.
func Bit(i int) CS {
	var c CS
	c.SetBit(i)
	return c
}

// SetBit sets bit i in place. Panics if i < 0 or i >= MaxBits.
func (c *CS) SetBit(i int) {
	if i < 0 || i >= MaxBits {
		panic("bitset: bit index out of range")
	}
	c[i/64] |= 1 << uint(i%64)
}

// Test reports whether bit i is set. Out-of-range indices are false.
func (c CS) Test(i int) bool {
	if i < 0 || i >= MaxBits {
		return false
	}
	return c[i/64]&(1<<uint(i%64)) != 0
}

// ShiftLeft returns c shifted left by n bits, discarding bits that fall off
// the top. n must be small and non-negative (the engine only ever shifts by
// a single IC index at a time).
func (c CS) ShiftLeft(n int) CS {
	if n == 0 {
		return c
	}
	if n < 0 || n >= MaxBits {
		return CS{}
	}
	wordShift := n / 64
	bitShift := uint(n % 64)
	var out CS
	for i := Words - 1; i >= 0; i-- {
		srcIdx := i - wordShift
		if srcIdx < 0 {
			continue
		}
		var v uint64
		v = c[srcIdx] << bitShift
		if bitShift > 0 && srcIdx > 0 {
			v |= c[srcIdx-1] >> (64 - bitShift)
		}
		out[i] = v
	}
	return out
}

// And returns the bitwise AND of a and b.
func (a CS) And(b CS) CS {
	var out CS
	for i := range out {
		out[i] = a[i] & b[i]
	}
	return out
}

// Or returns the bitwise OR of a and b.
func (a CS) Or(b CS) CS {
	var out CS
	for i := range out {
		out[i] = a[i] | b[i]
	}
	return out
}

// Xor returns the bitwise XOR of a and b.
func (a CS) Xor(b CS) CS {
	var out CS
	for i := range out {
		out[i] = a[i] ^ b[i]
	}
	return out
}

// Not returns the bitwise complement of a over all 256 bits.
func (a CS) Not() CS {
	var out CS
	for i := range out {
		out[i] = ^a[i]
	}
	return out
}

// IsZero reports whether c is the empty set.
func (c CS) IsZero() bool {
	return c == CS{}
}

// Equal reports whether a and b represent the same set.
func (a CS) Equal(b CS) bool {
	return a == b
}

// Less defines a total order over CS values: lexicographic comparison of the
// underlying words, most-significant word first. Used for canonical
// deduplication (e.g. revertOr's s <= t^s ordering).
func (a CS) Less(b CS) bool {
	for i := Words - 1; i >= 0; i-- {
		if a[i] != b[i] {
			return a[i] < b[i]
		}
	}
	return false
}

// PopCount returns the number of set bits in c.
func (c CS) PopCount() int {
	n := 0
	for _, w := range c {
		n += bits.OnesCount64(w)
	}
	return n
}

// Hash128 returns a 128-bit hash of c as (hi, lo), suitable as a map key or
// for hash-table bucketing. CS already embeds cleanly as a Go map key on its
// own (it's a comparable array), but search code that wants a cheap
// pre-hashed bucket id can use this instead of hashing all four words again.
func (c CS) Hash128() (hi, lo uint64) {
	// A simple odd-constant mix; collisions only cost a map probe since Go
	// map keys are compared for full equality regardless of this hash.
	const m1 = 0x9E3779B97F4A7C15
	const m2 = 0xC2B2AE3D27D4EB4F
	lo = c[0]*m1 ^ c[1]*m2 ^ bits.RotateLeft64(c[2], 17)
	hi = c[2]*m1 ^ c[3]*m2 ^ bits.RotateLeft64(c[0], 31)
	return hi, lo
}

// Satisfies reports whether c contains every bit of posBits and excludes
// every bit of negBits — the examples-satisfaction predicate spec'd for the
// search engines: (c & posBits) == posBits && (^c & negBits) == negBits.
func (c CS) Satisfies(posBits, negBits CS) bool {
	if c.And(posBits) != posBits {
		return false
	}
	return c.Not().And(negBits) == negBits
}

// RequiredWidth classifies how many CS bits an infix closure of the given
// size needs, returning the band (64, 128, or 256) spec.md names as the
// selectable widths. It does not change how CS itself is represented — CS is
// always 256 bits — it exists purely so callers can report which width
// *would* have sufficed, and to detect the genuine overflow case.
func RequiredWidth(icSize int) (int, error) {
	switch {
	case icSize <= 64:
		return 64, nil
	case icSize <= 128:
		return 128, nil
	case icSize <= MaxBits:
		return 256, nil
	default:
		return 0, fmt.Errorf("%w: infix closure has %d entries, max is %d", ErrWidthExceeded, icSize, MaxBits)
	}
}
