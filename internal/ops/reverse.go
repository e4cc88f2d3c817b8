package ops

import (
	"github.com/coregx/reinfer/internal/bitset"
	"github.com/coregx/reinfer/internal/guide"
)

// RevertQuestion returns { t | ε } if ε ∈ t, else no candidates — Question
// is only invertible when the target already contains epsilon.
func RevertQuestion(t bitset.CS) []bitset.CS {
	if !t.Test(0) {
		return nil
	}
	return []bitset.CS{t.Or(bitset.One())}
}

// starBaseMask computes the minimal "base" mask spec.md §4.5 describes: the
// bits set in t whose row has no witness pair entirely inside t. Those bits
// cannot be derived from any other bit already in t via a split, so any x
// with Star(x) == t must contain them directly. Rows at or below
// alphabetSize never have split pairs at all (single characters), so they
// fall into the base whenever set in t — matching that Star can only ever
// get a literal alphabet character from its argument, never synthesize one.
func starBaseMask(gt *guide.Table, alphabetSize int, t bitset.CS) bitset.CS {
	var base bitset.CS
	for i := 0; i < gt.Len(); i++ {
		if !t.Test(i) {
			continue
		}
		if i > alphabetSize && hasWitnessWithin(gt, i, t) {
			continue
		}
		base.SetBit(i)
	}
	return base
}

// hasWitnessWithin reports whether row i has a split pair both of whose
// halves are set in t.
func hasWitnessWithin(gt *guide.Table, i int, t bitset.CS) bool {
	for _, pair := range gt.Rows[i] {
		if t.Test(pair.Left) && t.Test(pair.Right) {
			return true
		}
	}
	return false
}

// RevertStar enumerates candidate arguments x such that Star(x) == t exactly
// (spec.md §4.5): compute the base mask, confirm it alone star-closes to t,
// then every superset of base within t other than t itself star-closes to t
// too (t itself is the trivial identity revert and is excluded). Returns nil
// if Star(base) != t — t is then not reachable by any Star application at
// all.
func RevertStar(gt *guide.Table, alphabetSize int, t bitset.CS) []bitset.CS {
	if t.IsZero() {
		return nil
	}

	base := starBaseMask(gt, alphabetSize, t)
	if !Star(gt, base, alphabetSize).Equal(t) {
		return nil
	}

	free := t.And(base.Not())
	if free.IsZero() {
		return nil // base == t: only candidate is the excluded trivial identity
	}

	var results []bitset.CS
	submask := free
	for {
		if submask != free {
			results = append(results, base.Or(submask))
		}
		if submask.IsZero() {
			break
		}
		submask = decrementMask(submask).And(free)
	}
	return results
}

// Pair is an ordered operand pair returned by RevertConcat/RevertOr.
type Pair struct {
	Left, Right bitset.CS
}

// RevertConcat enumerates (left, right) pairs such that Concat(left, right)
// subseteq t and, after the full two-phase construction, equals t exactly.
//
// Phase one (primary) walks every bit i set in t as an independent row: for
// i == 0 (epsilon) the only witness is (ε, ε); otherwise the candidate
// witnesses are (bit i alone, ε), (ε, bit i alone), and every guide-table
// split pair of i. Each witness is accumulated into a running (left, right)
// union, pruned whenever Concat(left, right) would escape t.
//
// Phase two (secondary) is folded into the same recursion here: by the time
// every row has contributed a witness, left/right already include every bit
// the primary walk could add. A finished pair is accepted unless both sides
// are still bare epsilon (the trivial non-solution the original excludes).
func RevertConcat(gt *guide.Table, t bitset.CS) []Pair {
	type row []Pair
	var targetRows []row

	if t.Test(0) {
		targetRows = append(targetRows, row{{Left: bitset.One(), Right: bitset.One()}})
	}
	for i := 1; i < gt.Len(); i++ {
		if !t.Test(i) {
			continue
		}
		r := row{
			{Left: bitset.Bit(i), Right: bitset.One()},
			{Left: bitset.One(), Right: bitset.Bit(i)},
		}
		for _, p := range gt.Rows[i] {
			r = append(r, Pair{Left: bitset.Bit(p.Left), Right: bitset.Bit(p.Right)})
		}
		targetRows = append(targetRows, r)
	}

	var results []Pair
	var walk func(idx int, acc Pair)
	walk = func(idx int, acc Pair) {
		if idx == len(targetRows) {
			if acc.Left != bitset.One() || acc.Right != bitset.One() {
				results = append(results, acc)
			}
			return
		}
		for _, p := range targetRows[idx] {
			next := Pair{Left: acc.Left.Or(p.Left), Right: acc.Right.Or(p.Right)}
			applied := concatForTest(gt, next.Left, next.Right)
			if applied.Or(t) != t {
				continue // escapes t
			}
			walk(idx+1, next)
		}
	}
	walk(0, Pair{})
	return results
}

// concatForTest recomputes the forward Concat for pruning during
// RevertConcat. alphabetSize is derived structurally: rows below it never
// appear in gt.Rows (length-1 entries have no splits), so scanning every
// row index gt knows about is always safe — Concat only ever examines rows
// that exist.
func concatForTest(gt *guide.Table, x, y bitset.CS) bitset.CS {
	var res bitset.CS
	if x.Test(0) {
		res = res.Or(y)
	}
	if y.Test(0) {
		res = res.Or(x)
	}
	for i := 1; i < gt.Len(); i++ {
		if res.Test(i) {
			continue
		}
		for _, pair := range gt.Rows[i] {
			if x.Test(pair.Left) && y.Test(pair.Right) {
				res.SetBit(i)
				break
			}
		}
	}
	return res
}

// RevertOr enumerates subset pairs (s, t^s) with both sides containing more
// than just epsilon and s <= t^s (canonical dedup: each unordered pair is
// emitted once, from the lexicographically smaller-or-equal side).
func RevertOr(t bitset.CS) []Pair {
	var results []Pair
	one := bitset.One()
	moreThanEpsilon := func(v bitset.CS) bool { return v != bitset.Zero() && v != one }

	// Standard submask-of-bitmask enumeration: start at t itself and walk
	// down via (submask-1) & t until submask underflows past zero.
	submask := t
	for {
		complement := t.Xor(submask)
		if moreThanEpsilon(submask) && moreThanEpsilon(complement) && !complement.Less(submask) {
			results = append(results, Pair{Left: submask, Right: complement})
		}
		if submask == bitset.Zero() {
			break
		}
		submask = decrementMask(submask).And(t)
	}
	return results
}

// decrementMask subtracts 1 from the bitmask treated as an arbitrary
// precision unsigned integer, borrowing across words as needed — the Go
// analogue of CS operator-- in the original's submask-enumeration idiom.
func decrementMask(c bitset.CS) bitset.CS {
	var out bitset.CS
	borrow := uint64(1)
	for i := 0; i < bitset.Words; i++ {
		v := c[i] - borrow
		if c[i] == 0 && borrow == 1 {
			v = ^uint64(0)
			borrow = 1
		} else {
			borrow = 0
		}
		out[i] = v
	}
	return out
}
