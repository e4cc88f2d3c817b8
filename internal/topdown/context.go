package topdown

import (
	"github.com/coregx/reinfer/internal/bitset"
	"github.com/coregx/reinfer/internal/sparse"
)

// context is the top-down search's arena: a flat, sibling-paired node array
// (even index / odd index = left / right operand of one reverted
// application) addressed by tagged int status values instead of pointers, so
// redirects and solved-ness never need an owning graph structure.
//
// status[i] semantics: 0 = unresolved interior node, -1 = given (resolved
// externally, look up idxToSolved), >1 = index of the child node that
// solves this one, <-1 = redirect to the first arena index this CS was ever
// inserted at (-status).
//
// Indices 0 and 1 are reserved (never populated) purely so every real node
// starts at an even index and pairs line up; lastIdx starts at 2.
type context struct {
	cache     []bitset.CS
	status    []int
	parentIdx []int

	idxToSolved map[int]bitset.CS
	visited     map[bitset.CS]int
	solved      map[bitset.CS]bool

	// pending tracks pair-root (even) indices that were not closed at
	// insertion and have at least one side that is a redirect or given node
	// (Visited, SelfSolved or Given) — sides that no propagation step ever
	// revisits on its own. checkAllVisited re-examines these once their
	// other side (or the redirect target) solves, instead of rescanning
	// the whole arena every level the way the original's "temporary"
	// CheckAllVisited sweep does.
	pending *sparse.Set

	lastIdx  int
	capacity int
	allCS    uint64
	counter  Counter
}

func newContext(capacity int) *context {
	size := capacity + 2
	c := &context{
		cache:       make([]bitset.CS, size),
		status:      make([]int, size),
		parentIdx:   make([]int, size),
		idxToSolved: make(map[int]bitset.CS),
		visited:     make(map[bitset.CS]int),
		solved:      make(map[bitset.CS]bool),
		pending:     sparse.NewSet(uint32(size)),
		lastIdx:     2,
		capacity:    capacity,
	}
	return c
}

// addSolutionSet seeds every member of the top-down solution set as a given
// node: visited but with no real arena slot (index -1).
func (c *context) addSolutionSet(set []bitset.CS) {
	for _, cs := range set {
		c.visited[cs] = -1
	}
}

// addSolvedNode pushes an externally materialised regex value (e.g. a CS the
// bottom-up engine just found at some cost level) in as solved. If cs was
// never seen, it becomes a fresh given node. If cs already labels a real,
// still-unresolved interior node, that node is retroactively resolved — its
// status becomes a leaf pointer into idxToSolved — and the resolution is
// propagated up toward the root the same way a self-solved pair would be.
// Returns the root index and true if this closed out the whole search.
func (c *context) addSolvedNode(cs bitset.CS) (rootIdx int, found bool) {
	idx, known := c.visited[cs]
	if !known {
		c.visited[cs] = -1
		c.solved[cs] = true
		return 0, false
	}
	if idx < 0 || c.solved[cs] {
		return 0, false
	}

	c.solved[cs] = true
	c.status[idx] = -1
	c.idxToSolved[idx] = cs
	c.counter.Solved++

	sIdx := sibling(idx)
	if !c.isSolved(sIdx) {
		return 0, false
	}
	pIdx := c.parentIdx[idx]
	lcIdx := idx
	if sIdx < lcIdx {
		lcIdx = sIdx
	}
	if pIdx < 0 {
		return lcIdx, true
	}
	if !c.propagate(pIdx, lcIdx) {
		return 0, false
	}
	root := c.getOutmostParent(idx)
	return root - root%2, true
}

// insertAndCheck inserts the two operands of a reverted application as a
// sibling pair rooted under parentIdx, and reports whether both sides are
// already solved (closing the pair immediately) or, if parentIdx is the
// synthetic root, whether the whole search is done.
func (c *context) insertAndCheck(parentIdx int, left, right bitset.CS) bool {
	c.allCS += 2

	lt := c.getNodeType(left)
	rt := c.getNodeType(right)
	c.counter.update(lt)
	c.counter.update(rt)

	if lt == Cyclic || rt == Cyclic {
		return false
	}

	c.insert(lt, left, parentIdx)
	c.insert(rt, right, parentIdx)
	pairIdx := c.lastIdx - 2

	if lt > Visited && rt > Visited {
		if parentIdx == -1 {
			return true
		}
		return c.propagate(parentIdx, pairIdx)
	}

	if lt > Cyclic || rt > Cyclic {
		c.pending.Insert(uint32(pairIdx))
	}
	return false
}

// checkAllVisited re-examines pending pairs (those with a redirect or given
// side at insertion time) to see whether both sides are now solved,
// propagating upward wherever both halves are now solved.
func (c *context) checkAllVisited() (solvedIdx int, found bool) {
	if c.pending.IsEmpty() {
		return 0, false
	}
	indices := append([]uint32(nil), c.pending.Values()...)
	for _, idx32 := range indices {
		idx := int(idx32)
		if !c.isSolved(idx) || !c.isSolved(idx+1) {
			continue
		}
		c.pending.Remove(idx32)

		ok := c.parentIdx[idx] == -1
		if !ok {
			ok = c.propagate(c.parentIdx[idx], idx)
		}
		if ok {
			root := c.getOutmostParent(idx)
			return root - root%2, true
		}
	}
	return 0, false
}

// lastOutmostParent walks from the just-inserted node up to its root,
// rounding down to the pair's left index so reconstruction always starts
// from an even slot.
func (c *context) lastOutmostParent() int {
	pIdx := c.getOutmostParent(c.lastIdx - 1)
	if pIdx%2 != 0 {
		pIdx--
	}
	return pIdx
}

func (c *context) getOutmostParent(idx int) int {
	for c.parentIdx[idx] != -1 {
		idx = c.parentIdx[idx]
	}
	return idx
}

func (c *context) getNodeType(cs bitset.CS) NodeType {
	idx, ok := c.visited[cs]
	if !ok {
		return NotVisited
	}
	if !c.solved[cs] {
		if idx == -1 {
			return Cyclic
		}
		return Visited
	}
	if idx == -1 {
		return Given
	}
	return SelfSolved
}

func (c *context) insert(nt NodeType, cs bitset.CS, pIdx int) {
	switch nt {
	case NotVisited:
		c.cache[c.lastIdx] = cs
		c.visited[cs] = c.lastIdx
		c.status[c.lastIdx] = 0
	case Visited:
		c.status[c.lastIdx] = -c.visited[cs]
	case SelfSolved:
		c.status[c.lastIdx] = -c.visited[cs]
		c.idxToSolved[c.lastIdx] = cs
	case Given:
		c.status[c.lastIdx] = -1
		c.idxToSolved[c.lastIdx] = cs
	}
	c.parentIdx[c.lastIdx] = pIdx
	c.lastIdx++
}

func (c *context) isSolved(idx int) bool {
	s := c.status[idx]
	if s == -1 || s > 1 {
		return true
	}
	if s < -1 {
		_, ok := c.idxToSolved[-s]
		return ok
	}
	return false
}

// propagate is the iterative form of the original's recursiveCheck: mark
// index solved via lcIdx, then climb to its parent as long as index's
// sibling is also solved, stopping at the synthetic root (parentIdx == -1).
func (c *context) propagate(index, lcIdx int) bool {
	for {
		if c.isSolved(index) {
			return false
		}
		c.solved[c.cache[index]] = true
		c.status[index] = lcIdx
		c.idxToSolved[index] = c.cache[index]
		c.counter.Solved++

		sIdx := sibling(index)
		if !c.isSolved(sIdx) {
			return false
		}
		pIdx := c.parentIdx[index]
		if pIdx < 0 {
			return true
		}
		if index < sIdx {
			lcIdx = index
		} else {
			lcIdx = sIdx
		}
		index = pIdx
	}
}

func sibling(idx int) int {
	if idx%2 == 0 {
		return idx + 1
	}
	return idx - 1
}
