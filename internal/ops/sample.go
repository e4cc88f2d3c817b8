package ops

import (
	"math/rand/v2"

	"github.com/coregx/reinfer/internal/bitset"
	"github.com/coregx/reinfer/internal/guide"
)

// Sampler draws bounded, reproducible samples from the candidate spaces the
// structured reverse operators enumerate exhaustively. Used when a
// HeuristicConfig toggle enables sampling for a given operator and the
// candidate space could otherwise blow up — the original calls this
// rejection/reservoir sampling over a bounded DFS; here, since the
// structured enumerators already materialize the candidate list, sampling
// degrades gracefully to reservoir sampling over that list, capped at N.
type Sampler struct {
	rng *rand.Rand
}

// NewSampler creates a Sampler seeded from seed. Two Samplers built from the
// same seed draw the same sequence, which is what makes Config.Seed give
// reproducible runs.
func NewSampler(seed uint64) *Sampler {
	return &Sampler{rng: rand.New(rand.NewPCG(seed, seed^0x9E3779B97F4A7C15))}
}

// reservoir keeps at most n items from a stream, each with equal
// probability, via the standard Algorithm R.
func (s *Sampler) reservoir(items []bitset.CS, n int) []bitset.CS {
	if n <= 0 || len(items) <= n {
		return items
	}
	out := make([]bitset.CS, n)
	copy(out, items[:n])
	for i := n; i < len(items); i++ {
		j := s.rng.IntN(i + 1)
		if j < n {
			out[j] = items[i]
		}
	}
	return out
}

func (s *Sampler) reservoirPairs(items []Pair, n int) []Pair {
	if n <= 0 || len(items) <= n {
		return items
	}
	out := make([]Pair, n)
	copy(out, items[:n])
	for i := n; i < len(items); i++ {
		j := s.rng.IntN(i + 1)
		if j < n {
			out[j] = items[i]
		}
	}
	return out
}

// SampleStar returns at most maxSamples candidates from RevertStar's full
// enumeration.
func (s *Sampler) SampleStar(gt *guide.Table, alphabetSize int, t bitset.CS, maxSamples int) []bitset.CS {
	return s.reservoir(RevertStar(gt, alphabetSize, t), maxSamples)
}

// SampleConcat returns at most maxSamples candidates from RevertConcat's
// full enumeration.
func (s *Sampler) SampleConcat(gt *guide.Table, t bitset.CS, maxSamples int) []Pair {
	return s.reservoirPairs(RevertConcat(gt, t), maxSamples)
}

// SampleOr returns at most maxSamples candidates from RevertOr's full
// enumeration.
func (s *Sampler) SampleOr(t bitset.CS, maxSamples int) []Pair {
	return s.reservoirPairs(RevertOr(t), maxSamples)
}

// SampleSolutionSet draws at most maxSamples combinations from the 2^d
// don't-care-bit subsets of the top-down solution set, instead of
// materializing every combination — used when d is large enough that 2^d
// would be impractical to enumerate up front.
func SampleSolutionSet(s *Sampler, posBits bitset.CS, dontCareBits []int, maxSamples int) []bitset.CS {
	total := 1 << uint(len(dontCareBits))
	if total <= maxSamples {
		return generateSolutionSet(posBits, dontCareBits)
	}
	seen := make(map[bitset.CS]bool, maxSamples)
	out := make([]bitset.CS, 0, maxSamples)
	// Rejection sampling over the subset space: for small maxSamples
	// relative to 2^d this converges quickly since collisions are rare.
	for len(out) < maxSamples {
		combo := posBits
		for _, bit := range dontCareBits {
			if s.rng.Uint64()&1 == 1 {
				combo.SetBit(bit)
			}
		}
		if !seen[combo] {
			seen[combo] = true
			out = append(out, combo)
		}
	}
	return out
}

// generateSolutionSet exhaustively enumerates every combination of the
// don't-care bits, seeded on top of posBits — the non-sampled path.
func generateSolutionSet(posBits bitset.CS, dontCareBits []int) []bitset.CS {
	n := len(dontCareBits)
	total := 1 << uint(n)
	out := make([]bitset.CS, 0, total)
	for subset := 0; subset < total; subset++ {
		combo := posBits
		for bit := 0; bit < n; bit++ {
			if subset&(1<<uint(bit)) != 0 {
				combo.SetBit(dontCareBits[bit])
			}
		}
		out = append(out, combo)
	}
	return out
}
