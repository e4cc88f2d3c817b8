package reinfer

import (
	"time"

	"github.com/coregx/reinfer/internal/bitset"
	"github.com/coregx/reinfer/internal/bottomup"
	"github.com/coregx/reinfer/internal/closure"
	"github.com/coregx/reinfer/internal/guide"
	"github.com/coregx/reinfer/internal/level"
	"github.com/coregx/reinfer/internal/topdown"
)

// bidirectional runs the driver spec.md §4.9 describes: seed TopDown with
// epsilon and every alphabet atom as given-solved, then alternate one
// BottomUp cost level and one TopDown graph level per round, pushing every
// CS BottomUp just materialized into TopDown as a solved node so TopDown
// can pattern-match it as a short-cut instead of re-deriving it. After cfg
// budgets that, TopDown continues alone until Found or End.
func bidirectional(c *closure.Closure, gt *guide.Table, cfg Config, deadline time.Time, seed uint64) (Result, error) {
	costs := level.NewCosts(cfg.CostFunc)

	bu, err := bottomup.New(gt, c.AlphabetSize, alphabetWords(c), costs, cfg.MaxCost, c.PosBits, c.NegBits, cfg.CacheCapacity, cfg.ConcatCacheSize)
	if err != nil {
		return Result{}, err
	}

	td := topdown.New(gt, c.AlphabetSize, bottomUpResolver{bu}, cfg.MaxLevel, c.PosBits, c.NegBits, cfg.CacheCapacity, seed)
	td.SetHeuristic(cfg.Heuristic)

	if re, found := td.PushSolved(bitset.One()); found {
		return finish(re, len(c.Words), cfg, bu.AllREs()+td.AllCS())
	}
	for i := 0; i < c.AlphabetSize; i++ {
		if re, found := td.PushSolved(bitset.Bit(i + 1)); found {
			return finish(re, len(c.Words), cfg, bu.AllREs()+td.AllCS())
		}
	}

	buDone, tdDone := false, false
	round := 0
	for ; round < cfg.Rounds && !buDone; round++ {
		if timeUp(cfg.MaxTime, deadline) {
			return notFound(len(c.Words), bu.AllREs()+td.AllCS()), nil
		}

		before := bu.CacheSize()
		costLevel := bu.CostLevel()
		res, found, exhausted := bu.EnumerateCostLevel()
		reportProgress(cfg.OnProgress, Progress{Engine: "bottomup", Round: round, Cost: costLevel, Level: -1, CacheSize: bu.CacheSize(), AllCS: bu.AllREs()})
		if found {
			return finish(res.RE, len(c.Words), cfg, bu.AllREs()+td.AllCS())
		}
		if exhausted {
			buDone = true
		}

		if !tdDone {
			for _, cs := range bu.CacheSlice(before, bu.CacheSize()) {
				if re, found := td.PushSolved(cs); found {
					return finish(re, len(c.Words), cfg, bu.AllREs()+td.AllCS())
				}
			}
		}

		if tdDone {
			continue
		}
		tdRes, state := td.EnumerateLevel()
		reportProgress(cfg.OnProgress, Progress{Engine: "topdown", Round: round, Cost: -1, Level: round, CacheSize: 0, AllCS: td.AllCS()})
		switch state {
		case topdown.Found:
			return finish(tdRes.RE, len(c.Words), cfg, bu.AllREs()+td.AllCS())
		case topdown.End:
			tdDone = true
		}
	}

	for !tdDone {
		if timeUp(cfg.MaxTime, deadline) {
			return notFound(len(c.Words), bu.AllREs()+td.AllCS()), nil
		}
		tdRes, state := td.EnumerateLevel()
		reportProgress(cfg.OnProgress, Progress{Engine: "topdown", Round: round, Cost: -1, Level: round, CacheSize: 0, AllCS: td.AllCS()})
		round++
		switch state {
		case topdown.Found:
			return finish(tdRes.RE, len(c.Words), cfg, bu.AllREs()+td.AllCS())
		case topdown.End:
			tdDone = true
		}
	}

	return notFound(len(c.Words), bu.AllREs()+td.AllCS()), nil
}

func alphabetWords(c *closure.Closure) []string {
	words := make([]string, c.AlphabetSize)
	for _, w := range c.Words {
		if len(w) == 1 {
			words[c.Index[w]-1] = w
		}
	}
	return words
}

func timeUp(budget time.Duration, deadline time.Time) bool {
	return budget > 0 && time.Now().After(deadline)
}

func reportProgress(fn ProgressFunc, p Progress) {
	if fn != nil {
		fn(p)
	}
}

func finish(re string, icSize int, cfg Config, allREs uint64) (Result, error) {
	cost, err := CostOf(re, cfg.CostFunc)
	if err != nil {
		cost = -1
	}
	return Result{RE: re, ICSize: icSize, Cost: cost, AllREs: allREs}, nil
}

func notFound(icSize int, allREs uint64) Result {
	return Result{RE: "not_found", ICSize: icSize, Cost: -1, AllREs: allREs}
}
