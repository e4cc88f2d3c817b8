package ops

import (
	"testing"

	"github.com/coregx/reinfer/internal/bitset"
	"github.com/coregx/reinfer/internal/closure"
	"github.com/coregx/reinfer/internal/guide"
)

func buildIC(t *testing.T, pos, neg []string) (*closure.Closure, *guide.Table) {
	t.Helper()
	c, err := closure.Build(pos, neg)
	if err != nil {
		t.Fatalf("closure.Build: %v", err)
	}
	gt := guide.Build(c.Words, c.Index)
	return c, gt
}

func TestQuestion(t *testing.T) {
	x := bitset.Bit(5)
	got := Question(x)
	if !got.Test(0) || !got.Test(5) {
		t.Errorf("Question(x) should contain both epsilon and x's bits: %v", got)
	}
}

func TestOr(t *testing.T) {
	x, y := bitset.Bit(1), bitset.Bit(2)
	got := Or(x, y)
	if !got.Test(1) || !got.Test(2) {
		t.Errorf("Or(x, y) should contain both bits: %v", got)
	}
}

func TestStarClosure(t *testing.T) {
	c, gt := buildIC(t, []string{"aa"}, nil)
	aIdx := c.Index["a"]

	closureCS := Star(gt, bitset.Bit(aIdx), c.AlphabetSize)
	aaIdx, ok := c.Index["aa"]
	if !ok {
		t.Fatal("\"aa\" should be in the infix closure")
	}
	if !closureCS.Test(aaIdx) {
		t.Error("Star({a}) should include \"aa\" (a concatenated with itself)")
	}
	if !closureCS.Test(0) {
		t.Error("Star(x) should always include epsilon")
	}
}

func TestConcatBasic(t *testing.T) {
	c, gt := buildIC(t, []string{"ab"}, nil)
	aBit := bitset.Bit(c.Index["a"])
	bBit := bitset.Bit(c.Index["b"])

	got := Concat(gt, aBit, bBit, c.AlphabetSize)
	if !got.Test(c.Index["ab"]) {
		t.Error("Concat(a, b) should contain \"ab\"")
	}
}

func TestConcatEpsilonIdentity(t *testing.T) {
	c, gt := buildIC(t, []string{"ab"}, nil)
	aBit := bitset.Bit(c.Index["a"])
	eps := bitset.One()

	got := Concat(gt, eps, aBit, c.AlphabetSize)
	if !got.Test(c.Index["a"]) {
		t.Error("Concat(eps, a) should contain \"a\" (eps is the concat identity)")
	}
}

func TestRevertQuestion(t *testing.T) {
	withEps := bitset.One().Or(bitset.Bit(3))
	got := RevertQuestion(withEps)
	if len(got) != 1 {
		t.Fatalf("expected exactly 1 candidate, got %d", len(got))
	}
	if got[0] != withEps {
		t.Errorf("RevertQuestion should return the target unchanged when eps is present")
	}

	noEps := bitset.Bit(3)
	if got := RevertQuestion(noEps); got != nil {
		t.Errorf("RevertQuestion without epsilon should return no candidates, got %v", got)
	}
}

func TestRevertStarRoundTrip(t *testing.T) {
	c, gt := buildIC(t, []string{"aa"}, nil)
	aIdx := c.Index["a"]
	target := Star(gt, bitset.Bit(aIdx), c.AlphabetSize)

	candidates := RevertStar(gt, c.AlphabetSize, target)
	found := false
	for _, cand := range candidates {
		if Star(gt, cand, c.AlphabetSize) == target {
			found = true
		}
	}
	if !found {
		t.Error("RevertStar should produce at least one candidate whose Star-closure reconstructs the target")
	}
}

func TestRevertConcatRoundTrip(t *testing.T) {
	c, gt := buildIC(t, []string{"ab"}, nil)
	aBit := bitset.Bit(c.Index["a"])
	bBit := bitset.Bit(c.Index["b"])
	target := Concat(gt, aBit, bBit, c.AlphabetSize)

	pairs := RevertConcat(gt, target)
	found := false
	for _, p := range pairs {
		if Concat(gt, p.Left, p.Right, c.AlphabetSize) == target {
			found = true
		}
	}
	if !found {
		t.Error("RevertConcat should produce at least one pair reconstructing the target exactly")
	}
}

func TestRevertOrRoundTrip(t *testing.T) {
	target := bitset.Bit(2).Or(bitset.Bit(5)).Or(bitset.Bit(9))
	pairs := RevertOr(target)
	if len(pairs) == 0 {
		t.Fatal("expected at least one subset pair")
	}
	for _, p := range pairs {
		if Or(p.Left, p.Right) != target {
			t.Errorf("pair %+v does not Or back to target", p)
		}
		if p.Right.Less(p.Left) {
			t.Errorf("pair %+v violates canonical s <= complement ordering", p)
		}
	}
}

func TestRevertOrExcludesEpsilonOnlySides(t *testing.T) {
	target := bitset.One().Or(bitset.Bit(4))
	pairs := RevertOr(target)
	for _, p := range pairs {
		if p.Left == bitset.One() || p.Right == bitset.One() {
			t.Errorf("pair %+v has a bare-epsilon side, should have been excluded", p)
		}
		if p.Left == bitset.Zero() || p.Right == bitset.Zero() {
			t.Errorf("pair %+v has an empty side, should have been excluded", p)
		}
	}
}

func TestConcatCache(t *testing.T) {
	calls := 0
	cache, err := NewConcatCache(16, func(x, y bitset.CS) bitset.CS {
		calls++
		return x.Or(y)
	})
	if err != nil {
		t.Fatalf("NewConcatCache: %v", err)
	}

	x, y := bitset.Bit(1), bitset.Bit(2)
	first := cache.Concat(x, y)
	second := cache.Concat(x, y)

	if first != second {
		t.Error("cached Concat should return the same value both times")
	}
	if calls != 1 {
		t.Errorf("forward func should be called once on cache hit, called %d times", calls)
	}
	if cache.Len() != 1 {
		t.Errorf("cache should have 1 entry, has %d", cache.Len())
	}

	cache.Purge()
	if cache.Len() != 0 {
		t.Error("Purge should empty the cache")
	}
}

func TestSamplerReproducible(t *testing.T) {
	gt := guide.Build([]string{"", "a", "b", "ab"}, map[string]int{"": 0, "a": 1, "b": 2, "ab": 3})
	target := bitset.Bit(1).Or(bitset.Bit(2)).Or(bitset.Bit(3))

	s1 := NewSampler(42)
	s2 := NewSampler(42)

	p1 := s1.SampleConcat(gt, target, 1)
	p2 := s2.SampleConcat(gt, target, 1)

	if len(p1) != len(p2) {
		t.Fatalf("expected same sample size, got %d vs %d", len(p1), len(p2))
	}
	for i := range p1 {
		if p1[i] != p2[i] {
			t.Errorf("same-seed samplers diverged at index %d: %+v vs %+v", i, p1[i], p2[i])
		}
	}
}

func TestSampleSolutionSetCoversAllWhenSmall(t *testing.T) {
	posBits := bitset.Bit(1)
	dontCare := []int{5, 6}
	s := NewSampler(7)

	out := SampleSolutionSet(s, posBits, dontCare, 100)
	if len(out) != 4 {
		t.Errorf("expected all 4 combinations when maxSamples exceeds 2^d, got %d", len(out))
	}
}
