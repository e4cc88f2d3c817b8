// Package level partitions a search's enumeration cache into contiguous,
// per-(level, operator) windows, so a later reconstruction pass can map a
// cache index back to the operator that produced it without storing that
// operator per entry.
package level

import "math"

// Operation identifies one of the four regex-building operators a level
// enumerates, in the fixed order the partitioner lays them out.
type Operation int

const (
	Question Operation = iota
	Star
	Concat
	Or
	opCount
)

func (op Operation) String() string {
	switch op {
	case Question:
		return "?"
	case Star:
		return "*"
	case Concat:
		return "concat"
	case Or:
		return "|"
	default:
		return "unknown"
	}
}

// Costs is the per-operator cost function [α, ?, *, concat, |].
type Costs struct {
	Alpha       uint16
	Question    uint16
	Star        uint16
	Concat      uint16
	Alternation uint16
}

// NewCosts builds a Costs from the five-element cost function ordering used
// throughout the external API: [alpha, question, star, concat, or].
func NewCosts(costFunc [5]uint16) Costs {
	return Costs{
		Alpha:       costFunc[0],
		Question:    costFunc[1],
		Star:        costFunc[2],
		Concat:      costFunc[3],
		Alternation: costFunc[4],
	}
}

// openEnd marks "solution found in this slab" — IndexToLevel treats an
// open-ended window as containing every index at or past its start, so the
// solved slot appended after MarkFound maps back to that window.
const openEnd = math.MaxInt32

// Partitioner tracks, for every (level, operator) pair, the [start, end)
// index range of the enumeration cache that operator produced at that level.
// Levels run 0..maxLevel inclusive; indexToLevel recovers (level, operator)
// by linear scan, which is fine since it's only used during reconstruction.
type Partitioner struct {
	// starts holds 2 ints (start, end) per (level, operator) slot, flattened
	// as starts[level*opCount*2 + op*2 + {0,1}].
	starts []int
}

// New creates a Partitioner with room for levels 0..maxLevel inclusive.
func New(maxLevel int) *Partitioner {
	return &Partitioner{
		starts: make([]int, (maxLevel+2)*int(opCount)*2),
	}
}

func (p *Partitioner) slot(level int, op Operation) int {
	return (level*int(opCount) + int(op)) * 2
}

// Start returns the start offset for (level, op).
func (p *Partitioner) Start(level int, op Operation) int {
	return p.starts[p.slot(level, op)]
}

// SetStart sets the start offset for (level, op).
func (p *Partitioner) SetStart(level int, op Operation, v int) {
	p.starts[p.slot(level, op)] = v
}

// End returns the end offset for (level, op).
func (p *Partitioner) End(level int, op Operation) int {
	return p.starts[p.slot(level, op)+1]
}

// SetEnd sets the end offset for (level, op), and primes the start of the
// very next (level, op) slot in enumeration order (Question -> Star ->
// Concat -> Or -> next level's Question) to the same value. An operator's
// end is always the next operator's start, so recording only ends, in the
// order they're produced, is enough to keep every window a correct,
// disjoint [start, end) slice without any window needing its start set
// explicitly.
func (p *Partitioner) SetEnd(level int, op Operation, v int) {
	p.starts[p.slot(level, op)+1] = v

	nextLevel, nextOp := level, op+1
	if nextOp > Or {
		nextLevel, nextOp = level+1, Question
	}
	if nextLevel*int(opCount)+int(nextOp) < len(p.starts)/2 {
		p.SetStart(nextLevel, nextOp, v)
	}
}

// MarkFound sets End(level, op) to the open-ended sentinel, without priming
// the next slot's start — once a solution is found the search stops, so
// there is no "next" window to prime.
func (p *Partitioner) MarkFound(level int, op Operation) {
	p.starts[p.slot(level, op)+1] = openEnd
}

// Interval returns [Start(level, startOp), End(level, endOp)) — the combined
// window spanning every operator from startOp through endOp at level.
func (p *Partitioner) Interval(level int, startOp, endOp Operation) (start, end int) {
	return p.Start(level, startOp), p.End(level, endOp)
}

// IndexToLevel recovers the (level, operator) pair whose window contains
// index, by linear scan over recorded starts. Only used during RE
// reconstruction, where lookups are rare.
func (p *Partitioner) IndexToLevel(index int) (lvl int, op Operation) {
	maxLevel := len(p.starts) / (int(opCount) * 2)
	for l := 0; l < maxLevel; l++ {
		for o := Question; o <= Or; o++ {
			start, end := p.Start(l, o), p.End(l, o)
			if end == openEnd {
				end = index + 1 // an open window always "contains" index
			}
			if index >= start && index < end && end > start {
				return l, o
			}
		}
	}
	return lvl, op
}
