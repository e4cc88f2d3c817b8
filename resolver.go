package reinfer

import (
	"github.com/coregx/reinfer/internal/bitset"
	"github.com/coregx/reinfer/internal/bottomup"
)

// bottomUpResolver is the bidirectional CSResolverInterface variant
// (spec.md §9): topdown leaves resolve through bottom-up's own cache,
// which already seeds epsilon and every alphabet atom and grows a library
// of named fragments as the driver advances bottom-up's cost levels. This
// is the only Resolver the library needs — there is no standalone
// top-down mode in the public API, so the alphabet-only variant spec.md §9
// sketches never gets its own type here.
type bottomUpResolver struct {
	bu *bottomup.Search
}

// Resolve implements topdown.Resolver.
func (r bottomUpResolver) Resolve(cs bitset.CS) string {
	if re, ok := r.bu.Resolve(cs); ok {
		return re
	}
	// Unreachable in practice: every leaf topdown resolves was either
	// seeded at startup or pushed in by the driver right after bottom-up
	// materialized it.
	return "?"
}
