// Package closure builds the infix closure of a set of example strings and
// the indices the rest of the engine keys off of: the shortlex ordering, the
// alphabet size, and the posBits/negBits masks.
package closure

import (
	"errors"
	"fmt"
	"sort"

	"github.com/coregx/reinfer/internal/bitset"
)

// ErrBadInput indicates a word was supplied as both positive and negative.
var ErrBadInput = errors.New("closure: word present in both positive and negative examples")

// BadInputError wraps ErrBadInput with the offending word.
type BadInputError struct {
	Word string
}

func (e *BadInputError) Error() string {
	return fmt.Sprintf("closure: %q is both a positive and a negative example", e.Word)
}

func (e *BadInputError) Unwrap() error {
	return ErrBadInput
}

// Closure is the shortlex-ordered infix closure of a set of examples,
// together with the indices derived from it.
type Closure struct {
	// Words is IC in shortlex order: shorter first, ties broken
	// lexicographically. Words[0] is always the empty string.
	Words []string
	// Index maps an infix to its bit position in Words/CS.
	Index map[string]int
	// AlphabetSize is the number of distinct single-character infixes
	// (|Σ|). Alphabet letters occupy bit indices 1..AlphabetSize.
	AlphabetSize int
	// PosBits has bit i set iff Words[i] is a positive example.
	PosBits bitset.CS
	// NegBits has bit i set iff Words[i] is a negative example.
	NegBits bitset.CS
}

// Build computes the infix closure of pos and neg, returning the ordered
// words, their index, the alphabet size, and the posBits/negBits masks.
//
// Build rejects a word appearing in both pos and neg with BadInputError; a
// word repeated within the same slice is tolerated (infixesOf naturally
// collapses duplicates).
func Build(pos, neg []string) (*Closure, error) {
	posSet := make(map[string]bool, len(pos))
	for _, w := range pos {
		posSet[w] = true
	}
	for _, w := range neg {
		if posSet[w] {
			return nil, &BadInputError{Word: w}
		}
	}

	seen := make(map[string]bool)
	for _, w := range pos {
		for _, inf := range infixesOf(w) {
			seen[inf] = true
		}
	}
	for _, w := range neg {
		for _, inf := range infixesOf(w) {
			seen[inf] = true
		}
	}
	seen[""] = true // epsilon is always in IC, even for an empty pos/neg pair

	words := make([]string, 0, len(seen))
	for w := range seen {
		words = append(words, w)
	}
	sort.Slice(words, func(i, j int) bool {
		return shortlexLess(words[i], words[j])
	})

	index := make(map[string]int, len(words))
	alphabetSize := 0
	for i, w := range words {
		index[w] = i
		if len(w) == 1 {
			alphabetSize++
		}
	}

	c := &Closure{
		Words:        words,
		Index:        index,
		AlphabetSize: alphabetSize,
	}
	for _, w := range pos {
		c.PosBits.SetBit(index[w])
	}
	for _, w := range neg {
		c.NegBits.SetBit(index[w])
	}
	return c, nil
}

// shortlexLess orders strings shorter-first, then lexicographically.
func shortlexLess(a, b string) bool {
	if len(a) != len(b) {
		return len(a) < len(b)
	}
	return a < b
}

// infixesOf returns every contiguous substring of w, including w itself and
// the empty string, deduplicated.
func infixesOf(w string) []string {
	seen := make(map[string]bool)
	var out []string
	for length := 0; length <= len(w); length++ {
		for start := 0; start+length <= len(w); start++ {
			inf := w[start : start+length]
			if !seen[inf] {
				seen[inf] = true
				out = append(out, inf)
			}
		}
	}
	return out
}
