// Package bottomup implements cost-ordered forward enumeration: starting
// from epsilon and each alphabet atom, it applies the forward operators in
// increasing cost order until a CS value satisfies the positive/negative
// examples.
package bottomup

import (
	"github.com/coregx/reinfer/internal/bitset"
	"github.com/coregx/reinfer/internal/guide"
	"github.com/coregx/reinfer/internal/level"
	"github.com/coregx/reinfer/internal/ops"
)

// State is the search's coarse lifecycle, mirroring the original's
// {Ready, Running, Found, Exhausted} state machine.
type State int

const (
	Ready State = iota
	Running
	Found
	Exhausted
)

// Result carries the outcome of a completed EnumerateCostLevel call that
// found a solution.
type Result struct {
	Cost   int
	RE     string
	AllREs uint64
}

// provenance records how a cache slot was produced: either a single parent
// (Question/Star, RIdx == -1) or a pair (Concat/Or).
type provenance struct {
	lIdx, rIdx int
}

// context is the enumeration cache: an append-only CS array, provenance per
// slot, and a visited index for O(1) dedup — the bottom-up analogue of the
// original Context struct, generalized past the original's fixed
// allocation-by-capacity arrays into growable slices.
type context struct {
	cache      []bitset.CS
	provenance []provenance
	visited    map[bitset.CS]int
	allREs     uint64

	capacity  int
	onTheFly  bool
	posBits   bitset.CS
	negBits   bitset.CS
}

func newContext(capacity int, posBits, negBits bitset.CS) *context {
	return &context{
		cache:      make([]bitset.CS, 0, capacity),
		provenance: make([]provenance, 0, capacity),
		visited:    make(map[bitset.CS]int, capacity),
		capacity:   capacity,
		posBits:    posBits,
		negBits:    negBits,
	}
}

// insertAndCheck increments the RE counter, and either reports the value
// satisfies the examples (Found, no insertion needed), inserts it as a new
// cache slot, or drops it as already-seen. lIdx/rIdx record provenance;
// rIdx == -1 means a single-operand operator (Question/Star) and -2 marks
// a literal epsilon provenance slot (mirrors the original's sentinel).
func (c *context) insertAndCheck(cs bitset.CS, lIdx, rIdx int) (found bool) {
	c.allREs++

	if c.onTheFly {
		return cs.Satisfies(c.posBits, c.negBits)
	}

	if _, ok := c.visited[cs]; ok {
		return false
	}

	if cs.Satisfies(c.posBits, c.negBits) {
		return true
	}

	idx := len(c.cache)
	c.visited[cs] = idx
	c.cache = append(c.cache, cs)
	c.provenance = append(c.provenance, provenance{lIdx: lIdx, rIdx: rIdx})
	if len(c.cache) >= c.capacity {
		c.onTheFly = true
	}
	return false
}

func (c *context) slice(start, end int) []bitset.CS {
	if start < 0 {
		start = 0
	}
	if end > len(c.cache) {
		end = len(c.cache)
	}
	if start >= end {
		return nil
	}
	return c.cache[start:end]
}

// Search is a bottom-up cost-ordered enumerator over one (pos, neg)
// instance.
type Search struct {
	gt           *guide.Table
	alphabetSize int
	alphabet     []string
	costs        level.Costs
	maxCost      uint16
	partitioner  *level.Partitioner
	ctx          *context
	concatCache  *ops.ConcatCache

	costLevel    int
	shortageCost int
	lastRound    bool

	// UseQuestionOverOr is the tie-break flag: Question is preferred over
	// Or when alpha+or >= question. Exposed rather than hardcoded so
	// callers/tests can observe which branch a given cost function takes.
	UseQuestionOverOr bool
}

// New builds a bottom-up search seeded with epsilon and one atom per
// alphabet letter. alphabet must list the single-character IC words in
// index order (alphabet[i] is the literal for bit index i+1).
func New(gt *guide.Table, alphabetSize int, alphabet []string, costs level.Costs, maxCost uint16, posBits, negBits bitset.CS, cacheCapacity, concatCacheSize int) (*Search, error) {
	cc, err := ops.NewConcatCache(concatCacheSize, func(x, y bitset.CS) bitset.CS {
		return ops.Concat(gt, x, y, alphabetSize)
	})
	if err != nil {
		return nil, err
	}

	s := &Search{
		gt:                gt,
		alphabetSize:      alphabetSize,
		alphabet:          alphabet,
		costs:             costs,
		maxCost:           maxCost,
		partitioner:       level.New(int(maxCost) + 1),
		ctx:               newContext(cacheCapacity, posBits, negBits),
		concatCache:       cc,
		costLevel:         int(costs.Alpha) + 1,
		shortageCost:      -1,
		UseQuestionOverOr: int(costs.Alpha)+int(costs.Alternation) >= int(costs.Question),
	}

	s.ctx.visited[bitset.Zero()] = -1
	s.ctx.visited[bitset.One()] = -1
	for i := 0; i < alphabetSize; i++ {
		atom := bitset.Bit(i + 1)
		s.ctx.visited[atom] = len(s.ctx.cache)
		s.ctx.cache = append(s.ctx.cache, atom)
		s.ctx.provenance = append(s.ctx.provenance, provenance{lIdx: -1, rIdx: -1})
	}
	s.partitioner.SetEnd(int(costs.Alpha), level.Concat, len(s.ctx.cache))
	s.partitioner.SetEnd(int(costs.Alpha), level.Or, len(s.ctx.cache))

	return s, nil
}

// AllREs returns the running count of generated (not necessarily stored)
// CS values, for Result.AllREs / diagnostics.
func (s *Search) AllREs() uint64 {
	return s.ctx.allREs
}

// CacheSize returns the number of CS values currently materialized.
func (s *Search) CacheSize() int {
	return len(s.ctx.cache)
}

// CostLevel returns the cost level the next EnumerateCostLevel call will
// process, for progress reporting.
func (s *Search) CostLevel() int {
	return s.costLevel
}

// CacheSlice returns the CS values materialized at cache indices
// [start, end) — the bidirectional driver's hook for reading back exactly
// what one EnumerateCostLevel call just added, to push into TopDown.
func (s *Search) CacheSlice(start, end int) []bitset.CS {
	return s.ctx.slice(start, end)
}

// Resolve returns the regex fragment for a CS value already known to this
// search — epsilon, an alphabet atom, or anything materialized at an
// earlier cost level — and reports whether cs has been resolved yet. It is
// the CSResolverInterface leaf lookup spec.md §9 describes for
// bidirectional mode: TopDown delegates leaf resolution here instead of to
// a bare alphabet map.
func (s *Search) Resolve(cs bitset.CS) (string, bool) {
	if cs.Equal(bitset.One()) {
		return "eps", true
	}
	idx, ok := s.ctx.visited[cs]
	if !ok || idx < 0 {
		return "", false
	}
	return s.ConstructRE(idx), true
}

// EnumerateCostLevel processes one cost level. It returns (Result, true) on
// Found, (Result{}, false) with no error when the level produced nothing,
// and sets exhausted when the search can make no further progress (either
// maxCost was reached or on-the-fly overflow exhausted every dependent
// level).
func (s *Search) EnumerateCostLevel() (res Result, found bool, exhausted bool) {
	if s.costLevel > int(s.maxCost) {
		return Result{}, false, true
	}

	solvedIdx, state := s.enumerateLevel()
	switch state {
	case stateFound:
		res = Result{
			Cost:   s.costLevel,
			RE:     s.ConstructRE(solvedIdx),
			AllREs: s.ctx.allREs,
		}
		found = true
	case stateEnd:
		exhausted = true
	}

	s.costLevel++
	return res, found, exhausted
}

type enumState int

const (
	stateNotFound enumState = iota
	stateFound
	stateEnd
)

func (s *Search) checkOnTheFlyLastRound() {
	if !s.ctx.onTheFly || s.shortageCost == -1 {
		return
	}
	dif := s.costLevel - s.shortageCost
	c := s.costs
	if dif == int(c.Question) || dif == int(c.Star) || dif == int(c.Alpha)+int(c.Concat) || dif == int(c.Alpha)+int(c.Alternation) {
		s.lastRound = true
	}
}

// appendSolved wraps an insertAndCheck success into a CS index usable by
// ConstructRE — since on-the-fly mode never actually stores the winning
// value, we stash it in a synthetic trailing slot so reconstruction (which
// only needs its provenance, already known to the caller of insertAndCheck)
// can still walk it the same way as a stored slot.
func (s *Search) appendSolved(cs bitset.CS, lIdx, rIdx int) int {
	idx := len(s.ctx.cache)
	s.ctx.cache = append(s.ctx.cache, cs)
	s.ctx.provenance = append(s.ctx.provenance, provenance{lIdx: lIdx, rIdx: rIdx})
	return idx
}

func (s *Search) enumerateLevel() (idx int, state enumState) {
	c := s.costs
	s.checkOnTheFlyLastRound()

	// Question
	if s.costLevel >= int(c.Alpha)+int(c.Question) && s.UseQuestionOverOr {
		start, end := s.partitioner.Interval(s.costLevel-int(c.Question), level.Concat, level.Or)
		for i := start; i < end; i++ {
			cs := s.ctx.slice(i, i+1)
			if len(cs) == 0 {
				continue
			}
			v := cs[0]
			if v.Test(0) {
				continue
			}
			q := ops.Question(v)
			if s.ctx.insertAndCheck(q, i, -1) {
				s.partitioner.MarkFound(s.costLevel, level.Question)
				return s.appendSolved(q, i, -1), stateFound
			}
		}
	}
	s.partitioner.SetEnd(s.costLevel, level.Question, len(s.ctx.cache))

	// Star
	if s.costLevel >= int(c.Alpha)+int(c.Star) {
		start, end := s.partitioner.Interval(s.costLevel-int(c.Star), level.Concat, level.Or)
		for i := start; i < end; i++ {
			cs := s.ctx.slice(i, i+1)
			if len(cs) == 0 {
				continue
			}
			star := ops.Star(s.gt, cs[0], s.alphabetSize)
			if s.ctx.insertAndCheck(star, i, -1) {
				s.partitioner.MarkFound(s.costLevel, level.Star)
				return s.appendSolved(star, i, -1), stateFound
			}
		}
	}
	s.partitioner.SetEnd(s.costLevel, level.Star, len(s.ctx.cache))

	// Concat
	for i := int(c.Alpha); 2*i <= s.costLevel-int(c.Concat); i++ {
		lStart, lEnd := s.partitioner.Interval(i, level.Question, level.Or)
		rStart, rEnd := s.partitioner.Interval(s.costLevel-i-int(c.Concat), level.Question, level.Or)
		lSlice := s.ctx.slice(lStart, lEnd)
		rSlice := s.ctx.slice(rStart, rEnd)
		for li, left := range lSlice {
			for ri, right := range rSlice {
				lIdx, rIdx := lStart+li, rStart+ri
				lr := s.concatCache.Concat(left, right)
				if s.ctx.insertAndCheck(lr, lIdx, rIdx) {
					s.partitioner.MarkFound(s.costLevel, level.Concat)
					return s.appendSolved(lr, lIdx, rIdx), stateFound
				}
				rl := s.concatCache.Concat(right, left)
				if s.ctx.insertAndCheck(rl, rIdx, lIdx) {
					s.partitioner.MarkFound(s.costLevel, level.Concat)
					return s.appendSolved(rl, rIdx, lIdx), stateFound
				}
			}
		}
	}
	s.partitioner.SetEnd(s.costLevel, level.Concat, len(s.ctx.cache))

	// Or
	if !s.UseQuestionOverOr && s.costLevel >= 2*int(c.Alpha)+int(c.Alternation) {
		rStart, rEnd := s.partitioner.Interval(s.costLevel-int(c.Alpha)-int(c.Alternation), level.Question, level.Or)
		rSlice := s.ctx.slice(rStart, rEnd)
		for ri, right := range rSlice {
			cs := ops.Or(bitset.One(), right)
			if s.ctx.insertAndCheck(cs, -2, rStart+ri) {
				s.partitioner.MarkFound(s.costLevel, level.Or)
				return s.appendSolved(cs, -2, rStart+ri), stateFound
			}
		}
	}
	for i := int(c.Alpha); 2*i <= s.costLevel-int(c.Alternation); i++ {
		lStart, lEnd := s.partitioner.Interval(i, level.Question, level.Or)
		rStart, rEnd := s.partitioner.Interval(s.costLevel-i-int(c.Alternation), level.Question, level.Or)
		lSlice := s.ctx.slice(lStart, lEnd)
		rSlice := s.ctx.slice(rStart, rEnd)
		for li, left := range lSlice {
			for ri, right := range rSlice {
				cs := ops.Or(left, right)
				lIdx, rIdx := lStart+li, rStart+ri
				if s.ctx.insertAndCheck(cs, lIdx, rIdx) {
					s.partitioner.MarkFound(s.costLevel, level.Or)
					return s.appendSolved(cs, lIdx, rIdx), stateFound
				}
			}
		}
	}
	s.partitioner.SetEnd(s.costLevel, level.Or, len(s.ctx.cache))

	if s.lastRound {
		return 0, stateEnd
	}
	if s.ctx.onTheFly && s.shortageCost == -1 {
		s.shortageCost = s.costLevel
	}
	return 0, stateNotFound
}

// ConstructRE stringifies the CS at cache index idx by walking provenance
// down to leaves, recovering the operator at each step from the level
// partitioner. Alphabet leaves (idx < alphabetSize) resolve to their
// single-character literal; idx == -2 resolves to "eps".
func (s *Search) ConstructRE(idx int) string {
	if idx == -2 {
		return "eps"
	}
	if idx < s.alphabetSize {
		return s.alphabet[idx]
	}

	_, op := s.partitioner.IndexToLevel(idx)
	p := s.ctx.provenance[idx]

	switch op {
	case level.Question:
		inner := s.ConstructRE(p.lIdx)
		if len(inner) == 1 {
			return inner + "?"
		}
		return "(" + inner + ")?"
	case level.Star:
		inner := s.ConstructRE(p.lIdx)
		if len(inner) == 1 {
			return inner + "*"
		}
		return "(" + inner + ")*"
	case level.Concat:
		left := bracket(s.ConstructRE(p.lIdx))
		right := bracket(s.ConstructRE(p.rIdx))
		return left + right
	case level.Or:
		left := s.ConstructRE(p.lIdx)
		right := s.ConstructRE(p.rIdx)
		return left + "|" + right
	}
	return ""
}

// bracket wraps s in parentheses iff it contains an unparenthesised "|" at
// top level — applied to Concat operands only.
func bracket(s string) string {
	depth := 0
	for _, r := range s {
		switch r {
		case '(':
			depth++
		case ')':
			depth--
		case '|':
			if depth <= 0 {
				return "(" + s + ")"
			}
		}
	}
	return s
}
