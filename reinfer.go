// Package reinfer infers a regular expression from positive and negative
// string examples.
//
// Given two finite sets of strings P (must match) and N (must not match),
// Infer returns a regular expression R whose language contains every word
// of P and no word of N, preferring simpler regexes under a caller-supplied
// per-operator cost function.
//
// The search runs two complementary strategies and cooperates across them:
// a bottom-up enumerator that synthesizes regexes from the alphabet upward
// in strict cost order, and a top-down enumerator that starts from
// solution-class semantics and inverts each operator to expand a search
// graph of sub-problems. Both share a guide table built once over the
// infix closure of the examples.
//
// Basic usage:
//
//	res, err := reinfer.Infer([]string{"ab", "abab"}, []string{"a", "b"}, reinfer.DefaultConfig())
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(res.RE) // ((ab)?)*
//
// Out of scope (spec.md §1): input file parsing, command-line flag
// handling, the regex match verifier, logging, and progress printing.
// cmd/reinfer and internal/inputfile provide those as peripheral
// collaborators outside this package.
package reinfer

import (
	"crypto/rand"
	"encoding/binary"
	"errors"
	"time"

	"github.com/coregx/reinfer/internal/bitset"
	"github.com/coregx/reinfer/internal/closure"
	"github.com/coregx/reinfer/internal/guide"
)

// Result carries the outcome of one Infer call.
type Result struct {
	// RE is the inferred regex over the vocabulary spec.md §6 defines
	// (alphabet characters, `?`, `*`, `|`, concatenation, `(...)`), or one
	// of the special tokens "Empty" (P is empty), "eps" (P = {epsilon}),
	// or "not_found" (no solution within budget).
	RE string
	// ICSize is the size of the infix closure built from pos and neg, or 0
	// when the fast path answers without building one.
	ICSize int
	// Cost is the RE's cost under Config.CostFunc, or -1 if RE ==
	// "not_found".
	Cost int
	// AllREs is the combined number of CS values both engines generated
	// over the course of the search (diagnostic counter, spec.md §4.7/4.8).
	AllREs uint64
}

// Infer searches for a regex matching every word of pos and no word of
// neg. It returns a non-nil error only for caller mistakes the engine
// cannot search around — a word in both pos and neg (BadInputError,
// wrapping ErrBadInput), an invalid Config (ConfigError), or an infix
// closure too large for CS (ErrWidthExceeded). A search that exhausts its
// budget without finding a solution is not an error: it returns
// Result{RE: "not_found", ...}, nil.
func Infer(pos, neg []string, cfg Config) (Result, error) {
	if err := cfg.Validate(); err != nil {
		return Result{}, err
	}

	if re, ok := fastPath(pos, neg); ok {
		cost, _ := CostOf(re, cfg.CostFunc)
		return Result{RE: re, ICSize: 0, Cost: cost}, nil
	}

	c, err := closure.Build(pos, neg)
	if err != nil {
		var bad *closure.BadInputError
		if errors.As(err, &bad) {
			return Result{}, &BadInputError{Word: bad.Word}
		}
		return Result{}, err
	}

	if _, werr := bitset.RequiredWidth(len(c.Words)); werr != nil {
		return Result{RE: "not_found", ICSize: len(c.Words), Cost: -1}, ErrWidthExceeded
	}

	gt := guide.Build(c.Words, c.Index)

	seed, err := resolveSeed(cfg.Seed)
	if err != nil {
		return Result{}, err
	}

	var deadline time.Time
	if cfg.MaxTime > 0 {
		deadline = time.Now().Add(cfg.MaxTime)
	}

	return bidirectional(c, gt, cfg, deadline, seed)
}

// resolveSeed returns the caller-supplied seed, or draws one from
// crypto/rand (spec.md §5: "drawn once from a non-deterministic source").
func resolveSeed(seed *uint64) (uint64, error) {
	if seed != nil {
		return *seed, nil
	}
	var buf [8]byte
	if _, err := rand.Read(buf[:]); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(buf[:]), nil
}
