// Package ops implements the four regex-building operators — Question,
// Star, Concat, Or — in both their forward (CS -> CS) and reverse
// (target CS -> candidate operand CS's) directions, guided by a guide.Table.
package ops

import "github.com/coregx/reinfer/internal/guide"
import "github.com/coregx/reinfer/internal/bitset"

// Question returns x | ε.
func Question(x bitset.CS) bitset.CS {
	return x.Or(bitset.One())
}

// Star computes the star-closure of x: start from x | ε, then for every
// non-alphabet row i (in increasing index order, so a single pass suffices —
// rows are ordered by infix length) set bit i if any of its split pairs has
// both halves already present in the running result.
func Star(gt *guide.Table, x bitset.CS, alphabetSize int) bitset.CS {
	res := x.Or(bitset.One())
	for i := alphabetSize + 1; i < gt.Len(); i++ {
		if res.Test(i) {
			continue
		}
		for _, pair := range gt.Rows[i] {
			if res.Test(pair.Left) && res.Test(pair.Right) {
				res.SetBit(i)
				break
			}
		}
	}
	return res
}

// Concat computes the concatenation closure of x and y: seeded with y if
// ε ∈ x and x if ε ∈ y (since xy then also contains the other operand
// whole), then for every non-alphabet row i, set bit i if any split pair
// has its left half inside x and its right half inside y.
func Concat(gt *guide.Table, x, y bitset.CS, alphabetSize int) bitset.CS {
	var res bitset.CS
	if x.Test(0) {
		res = res.Or(y)
	}
	if y.Test(0) {
		res = res.Or(x)
	}
	for i := alphabetSize + 1; i < gt.Len(); i++ {
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

// Or returns x | y.
func Or(x, y bitset.CS) bitset.CS {
	return x.Or(y)
}
