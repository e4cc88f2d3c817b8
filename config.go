package reinfer

import (
	"time"

	"github.com/coregx/reinfer/internal/topdown"
)

// Progress reports one round of bidirectional search progress: which
// engine just ran, the level/cost it processed, and the running cache
// size. Progress printing is out of scope for the core (spec.md §1); this
// is the callback surface callers wire to their own logger instead.
type Progress struct {
	Engine    string // "bottomup" or "topdown"
	Round     int
	Cost      int // bottom-up's cost level; -1 for topdown rounds
	Level     int // topdown's level; -1 for bottomup rounds
	CacheSize int // bottom-up's cache size; 0 for topdown rounds
	AllCS     uint64
}

// ProgressFunc is called once per round of each engine when Config.OnProgress
// is set. It must not block; Infer calls it synchronously between rounds.
type ProgressFunc func(Progress)

// Config controls inference behavior: search cost function, resource
// ceilings, and the optional sampling/progress hooks.
//
// Use DefaultConfig and override only the fields that matter to the
// caller.
type Config struct {
	// CostFunc is the per-operator cost function [alpha, ?, *, concat, |],
	// every entry a positive 16-bit weight (spec.md §6).
	// Default: [1,1,1,1,1]
	CostFunc [5]uint16

	// MaxCost is the bottom-up cost ceiling; EnumerateCostLevel never
	// advances past it.
	// Default: 20
	MaxCost uint16

	// MaxLevel is the top-down graph-depth ceiling (spec.md §6).
	// Default: 500
	MaxLevel int

	// MaxTime is the wall-clock budget, polled between rounds. Zero means
	// no limit.
	// Default: 30s
	MaxTime time.Duration

	// CacheCapacity is the shared arena capacity for both engines' caches
	// (spec.md §5: "2M-100M entries").
	// Default: 2,000,000
	CacheCapacity int

	// Rounds is the bidirectional alternation budget K (spec.md §4.9):
	// bottom-up and top-down each advance one step per round before the
	// driver falls back to top-down alone.
	// Default: 13
	Rounds int

	// Heuristic toggles bounded random sampling in place of exhaustive
	// enumeration for top-down's reverse operators and initial solution
	// set (spec.md §4.8 HeuristicConfigs).
	// Default: disabled (exhaustive enumeration everywhere)
	Heuristic topdown.HeuristicConfig

	// ConcatCacheSize is the capacity of the bottom-up Concat memo
	// (internal/ops/cache.go).
	// Default: 4096
	ConcatCacheSize int

	// Seed fixes the sampler's RNG for reproducible runs (spec.md §8
	// Determinism). Nil draws a seed from crypto/rand once per Infer call.
	// Default: nil
	Seed *uint64

	// OnProgress, if set, is called after each engine's step: once for
	// bottom-up and once for top-down in every bidirectional round, then
	// once per top-down level after the driver falls back to top-down alone.
	// Default: nil
	OnProgress ProgressFunc
}

// DefaultConfig returns a Config with sensible defaults for small-to-medium
// example sets.
func DefaultConfig() Config {
	return Config{
		CostFunc:        [5]uint16{1, 1, 1, 1, 1},
		MaxCost:         20,
		MaxLevel:        500,
		MaxTime:         30 * time.Second,
		CacheCapacity:   2_000_000,
		Rounds:          13,
		ConcatCacheSize: 4096,
	}
}

// Validate checks that every Config field is in range.
func (c Config) Validate() error {
	for _, w := range c.CostFunc {
		if w == 0 {
			return &ConfigError{Field: "CostFunc", Message: "every operator weight must be positive"}
		}
	}
	if c.MaxCost == 0 {
		return &ConfigError{Field: "MaxCost", Message: "must be positive"}
	}
	if c.MaxLevel <= 0 {
		return &ConfigError{Field: "MaxLevel", Message: "must be positive"}
	}
	if c.MaxTime < 0 {
		return &ConfigError{Field: "MaxTime", Message: "must be non-negative (0 means no limit)"}
	}
	if c.CacheCapacity <= 0 {
		return &ConfigError{Field: "CacheCapacity", Message: "must be positive"}
	}
	if c.Rounds < 0 {
		return &ConfigError{Field: "Rounds", Message: "must be non-negative"}
	}
	if c.ConcatCacheSize <= 0 {
		return &ConfigError{Field: "ConcatCacheSize", Message: "must be positive"}
	}
	return nil
}
