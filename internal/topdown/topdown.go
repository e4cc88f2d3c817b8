// Package topdown implements solution-graph search: starting from the set of
// CS values that satisfy the positive/negative examples by bit masking alone,
// it applies the reverse operators to expand backward toward the atoms and
// epsilon, looking for a path that bottoms out entirely in already-resolved
// nodes.
package topdown

import (
	"github.com/coregx/reinfer/internal/bitset"
	"github.com/coregx/reinfer/internal/guide"
	"github.com/coregx/reinfer/internal/level"
	"github.com/coregx/reinfer/internal/ops"
)

// Resolver turns a solved leaf CS into its regex text. Standalone top-down
// search resolves leaves to alphabet letters; in bidirectional mode it
// delegates to the bottom-up engine's cache, which may return a
// multi-character fragment.
type Resolver interface {
	Resolve(cs bitset.CS) string
}

// HeuristicConfig toggles bounded random sampling in place of exhaustive
// enumeration for each reverse operator and the initial solution set, for
// instances where the exhaustive candidate space would be impractically
// large.
type HeuristicConfig struct {
	SolutionSetUseRandomSampling bool
	SolutionSetMaxSamples        int

	InvertStarUseRandomSampling bool
	InvertStarMaxSamples        int

	InvertConcatUseRandomSampling bool
	InvertConcatMaxSamples        int

	InvertOrUseRandomSampling bool
	InvertOrMaxSamples        int
}

// EnableRandomSamplingForAll turns on sampling for every operator with the
// same cap.
func (h *HeuristicConfig) EnableRandomSamplingForAll(maxSamples int) {
	h.SolutionSetUseRandomSampling = true
	h.SolutionSetMaxSamples = maxSamples
	h.InvertStarUseRandomSampling = true
	h.InvertStarMaxSamples = maxSamples
	h.InvertConcatUseRandomSampling = true
	h.InvertConcatMaxSamples = maxSamples
	h.InvertOrUseRandomSampling = true
	h.InvertOrMaxSamples = maxSamples
}

// State is the outcome of one EnumerateLevel call.
type State int

const (
	NotFound State = iota
	Found
	End
)

// Result carries a completed search's regex and running CS counter.
type Result struct {
	RE    string
	AllCS uint64
}

// Search is a top-down solution-graph search over one (pos, neg) instance.
type Search struct {
	gt           *guide.Table
	alphabetSize int
	icSize       int
	resolver     Resolver
	posBits      bitset.CS
	negBits      bitset.CS

	partitioner *level.Partitioner
	ctx         *context
	sampler     *ops.Sampler
	heuristic   HeuristicConfig

	level    int
	maxLevel int
}

// New builds a top-down search. resolver is consulted for every leaf
// reached during reconstruction; sampleSeed seeds the sampler used when
// HeuristicConfig enables random sampling for any operator.
func New(gt *guide.Table, alphabetSize int, resolver Resolver, maxLevel int, posBits, negBits bitset.CS, cacheCapacity int, sampleSeed uint64) *Search {
	s := &Search{
		gt:           gt,
		alphabetSize: alphabetSize,
		icSize:       gt.Len(),
		resolver:     resolver,
		posBits:      posBits,
		negBits:      negBits,
		partitioner:  level.New(maxLevel + 1),
		ctx:          newContext(cacheCapacity),
		sampler:      ops.NewSampler(sampleSeed),
		maxLevel:     maxLevel,
	}
	s.partitioner.SetStart(0, level.Question, 2)
	return s
}

// SetHeuristic installs sampling toggles, replacing any previous config.
func (s *Search) SetHeuristic(h HeuristicConfig) {
	s.heuristic = h
}

// AllCS returns the running count of CS values generated (including both
// halves of every reverted pair), for Result.AllCS / diagnostics.
func (s *Search) AllCS() uint64 {
	return s.ctx.allCS
}

// PushSolved injects an externally materialised CS as a solved node — the
// bidirectional driver's hook for feeding bottom-up's growing library of
// named fragments into the top-down graph as short-cuts. Returns the
// reconstructed regex and true if this closes the whole search.
func (s *Search) PushSolved(cs bitset.CS) (string, bool) {
	idx, found := s.ctx.addSolvedNode(cs)
	if !found {
		return "", false
	}
	return s.constructDownward(idx), true
}

// EnumerateLevel processes one level of the solution graph: level 0 seeds
// the solution set, every later level expands the CS values the previous
// level inserted. Returns End once maxLevel is reached or no pending pair
// can ever resolve further.
func (s *Search) EnumerateLevel() (Result, State) {
	if s.level == s.maxLevel {
		return Result{}, End
	}

	var solvedIdx int
	var state State

	if s.level == 0 {
		solutionSet := s.generateSolutionSet()
		s.ctx.addSolutionSet(solutionSet)
		solvedIdx, state = s.enumerateOperators(solutionSet, 2, true, -1)
	} else {
		start, end := s.partitioner.Interval(s.level-1, level.Question, level.Or)
		if end-start < 1 {
			if idx, found := s.ctx.checkAllVisited(); found {
				solvedIdx, state = idx, Found
			} else {
				state = End
			}
		} else {
			solvedIdx, state = s.enumerateOperators(s.ctx.cache[start:end], start, false, 0)
		}
	}

	var res Result
	if state == Found {
		res = Result{RE: s.constructDownward(solvedIdx), AllCS: s.ctx.allCS}
	}
	s.level++
	return res, state
}

// generateSolutionSet computes every CS that satisfies pos/neg by bit
// masking alone: posBits fixed, every bit outside posBits|negBits free to
// toggle. Large don't-care counts fall back to (or are forced into, via
// HeuristicConfig) bounded sampling.
func (s *Search) generateSolutionSet() []bitset.CS {
	combined := s.posBits.Or(s.negBits)
	dontCare := make([]int, 0, s.icSize)
	for i := 0; i < s.icSize; i++ {
		if !combined.Test(i) {
			dontCare = append(dontCare, i)
		}
	}

	shift := uint(len(dontCare))
	total := 1 << 24
	if shift < 24 {
		total = 1 << shift
	}

	maxSamples := total
	if s.heuristic.SolutionSetUseRandomSampling {
		maxSamples = s.heuristic.SolutionSetMaxSamples
	}
	return ops.SampleSolutionSet(s.sampler, s.posBits, dontCare, maxSamples)
}

// enumerateOperators applies Question, Star, Concat and Or reversion in
// turn to every CS in css, inserting each candidate pair under parentIdx
// (parent[i] = startPIdx+i, or opIdx for every candidate when overrideParent
// is set — level 0's solution-set members all hang off the synthetic root).
func (s *Search) enumerateOperators(css []bitset.CS, startPIdx int, overrideParent bool, opIdx int) (idx int, state State) {
	parentFor := func(i int) int {
		if overrideParent {
			return opIdx
		}
		return startPIdx + i
	}

	// Question
	for i, parent := range css {
		if parent.IsZero() || !parent.Test(0) {
			continue
		}
		if s.ctx.lastIdx > s.ctx.capacity {
			return 0, End
		}
		child := parent.And(bitset.One().Not())
		if s.ctx.insertAndCheck(parentFor(i), child, bitset.One()) {
			s.partitioner.MarkFound(s.level, level.Question)
			return s.ctx.lastOutmostParent(), Found
		}
	}
	s.partitioner.SetEnd(s.level, level.Question, s.ctx.lastIdx)

	// Star
	for i, parent := range css {
		if parent.IsZero() || !parent.Test(0) {
			continue
		}
		candidates := ops.RevertStar(s.gt, s.alphabetSize, parent)
		if s.heuristic.InvertStarUseRandomSampling {
			candidates = s.sampler.SampleStar(s.gt, s.alphabetSize, parent, s.heuristic.InvertStarMaxSamples)
		}
		for _, child := range candidates {
			if s.ctx.lastIdx > s.ctx.capacity {
				return 0, End
			}
			if s.ctx.insertAndCheck(parentFor(i), child, bitset.One()) {
				s.partitioner.MarkFound(s.level, level.Star)
				return s.ctx.lastOutmostParent(), Found
			}
		}
	}
	s.partitioner.SetEnd(s.level, level.Star, s.ctx.lastIdx)

	// Concat
	for i, parent := range css {
		if parent.IsZero() {
			continue
		}
		pairs := ops.RevertConcat(s.gt, parent)
		if s.heuristic.InvertConcatUseRandomSampling {
			pairs = s.sampler.SampleConcat(s.gt, parent, s.heuristic.InvertConcatMaxSamples)
		}
		for _, p := range pairs {
			if s.ctx.lastIdx > s.ctx.capacity {
				return 0, End
			}
			if s.ctx.insertAndCheck(parentFor(i), p.Left, p.Right) {
				s.partitioner.MarkFound(s.level, level.Concat)
				return s.ctx.lastOutmostParent(), Found
			}
		}
	}
	s.partitioner.SetEnd(s.level, level.Concat, s.ctx.lastIdx)

	// Or
	for i, parent := range css {
		if parent.IsZero() {
			continue
		}
		pairs := ops.RevertOr(parent)
		if s.heuristic.InvertOrUseRandomSampling {
			pairs = s.sampler.SampleOr(parent, s.heuristic.InvertOrMaxSamples)
		}
		for _, p := range pairs {
			if s.ctx.lastIdx > s.ctx.capacity {
				return 0, End
			}
			if s.ctx.insertAndCheck(parentFor(i), p.Left, p.Right) {
				s.partitioner.MarkFound(s.level, level.Or)
				return s.ctx.lastOutmostParent(), Found
			}
		}
	}
	s.partitioner.SetEnd(s.level, level.Or, s.ctx.lastIdx)

	return 0, NotFound
}

// constructDownward stringifies the parent of the sibling pair starting at
// the even index: it resolves the pair's left (and, for binary operators,
// right) node and combines them with the operator the partitioner recorded
// for this position. resolveSide turns one node into its regex: a given
// node (status -1) goes through the resolver, a solved node recurses into
// the pair that solved it, and a redirect (status < -1) resolves the node it
// points at, the first arena index this CS was ever inserted at.
func (s *Search) constructDownward(index int) string {
	left := s.resolveSide(index)

	_, op := s.partitioner.IndexToLevel(index)

	switch op {
	case level.Question:
		if len(left) == 1 {
			return left + "?"
		}
		return "(" + left + ")?"
	case level.Star:
		if len(left) == 1 {
			return left + "*"
		}
		return "(" + left + ")*"
	}

	right := s.resolveSide(index + 1)

	switch op {
	case level.Concat:
		return bracket(left) + bracket(right)
	case level.Or:
		return left + "|" + right
	}
	return ""
}

func (s *Search) resolveSide(index int) string {
	st := s.ctx.status[index]
	if st == -1 {
		return s.resolver.Resolve(s.ctx.idxToSolved[index])
	}
	if st < -1 {
		return s.resolveSide(-st)
	}
	return s.constructDownward(st)
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
