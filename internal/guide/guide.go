// Package guide builds the guide table: for every infix-closure entry of
// length >= 2, the (leftIdx, rightIdx) pairs that concatenate to it, plus an
// adjacency view for "if this left word is reached, which right words
// produce which results" lookups.
package guide

// Pair is an ordered split of an IC entry into a left and right operand.
type Pair struct {
	Left, Right int
}

// Edge is an adjacency-list entry: reaching Right from a given left index
// produces the word at Result.
type Edge struct {
	Right, Result int
}

// Table is the guide table over an infix closure.
type Table struct {
	// Rows[i] holds every (left, right) split of Words[i] that reproduces
	// it via concatenation. Empty for length-0 and length-1 entries.
	Rows [][]Pair
	// Adjacency[left] lists every (right, result) pair reachable from the
	// word at index left. Spec-data-model-only: RevertConcat folds the
	// spec's "secondary expansion" directly into its row-union recursion
	// instead of walking this view, so no production operator reads
	// Adjacency today (only guide_test.go exercises it). Kept because it's
	// the natural companion structure to Rows and costs nothing unused
	// beyond the slice itself.
	Adjacency [][]Edge
}

// Build constructs the guide table for words (a shortlex-ordered infix
// closure) using index to look up operand positions.
func Build(words []string, index map[string]int) *Table {
	n := len(words)
	t := &Table{
		Rows:      make([][]Pair, n),
		Adjacency: make([][]Edge, n),
	}

	for i, w := range words {
		if len(w) < 2 {
			continue
		}
		rows := make([]Pair, 0, len(w)-1)
		for k := 1; k < len(w); k++ {
			left := index[w[:k]]
			right := index[w[k:]]
			rows = append(rows, Pair{Left: left, Right: right})
			t.Adjacency[left] = append(t.Adjacency[left], Edge{Right: right, Result: i})
		}
		t.Rows[i] = rows
	}
	return t
}

// Len returns the number of rows (== |IC|).
func (t *Table) Len() int {
	return len(t.Rows)
}
