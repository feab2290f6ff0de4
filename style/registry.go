// Package style implements the Syntax Style registry: named styles mapped
// to stable numeric IDs, with an order-sensitive, memoized left-fold merge,
// the way aretext's display.Palette holds one pre-built tcell.Style per
// named role, generalized here from a closed set of struct fields to an
// open, runtime-registered name→ID table.
package style

import (
	"strconv"
	"strings"

	"github.com/gdamore/tcell/v2"
)

// Style is the concrete style value type threaded through this engine: a
// foreground color, background color, and attribute bitmask, exactly as
// tcell.Style already represents them.
type Style = tcell.Style

// ID is a stable, nonzero style handle returned by RegisterStyle.
type ID uint32

// Spec is the definition registered under a style name: a foreground and/or
// background color (each optional, since a style may intentionally leave a
// channel unset so it falls through to whatever it's layered over) plus an
// attribute bitmask.
type Spec struct {
	Fg    tcell.Color
	HasFg bool
	Bg    tcell.Color
	HasBg bool
	Attrs tcell.AttrMask
}

func (s Spec) build() tcell.Style {
	st := tcell.StyleDefault
	if s.HasFg {
		st = st.Foreground(s.Fg)
	}
	if s.HasBg {
		st = st.Background(s.Bg)
	}
	return st.Attributes(s.Attrs)
}

// Registry maps style names to stable IDs and their Spec definitions, and
// memoizes MergeStyles results keyed on the exact ID sequence requested.
type Registry struct {
	byName map[string]ID
	specs  map[ID]Spec
	nextID uint32

	mergeCache map[string]tcell.Style
}

// NewRegistry constructs an empty Registry. ID 0 is never issued, so it
// always denotes "no style" (the zero Style).
func NewRegistry() *Registry {
	return &Registry{
		byName:     make(map[string]ID),
		specs:      make(map[ID]Spec),
		nextID:     1,
		mergeCache: make(map[string]tcell.Style),
	}
}

// RegisterStyle registers or updates the style named name. Registering an
// unseen name allocates and returns a new, stable nonzero ID; registering an
// already-used name updates its Spec in place and returns the same ID,
// invalidating any cached merges (they may have folded in the old
// definition).
func (r *Registry) RegisterStyle(name string, spec Spec) ID {
	if id, ok := r.byName[name]; ok {
		r.specs[id] = spec
		r.ClearCache()
		return id
	}
	id := ID(r.nextID)
	r.nextID++
	r.byName[name] = id
	r.specs[id] = spec
	return id
}

// ResolveByID returns the built Style for id, or false if id is unknown.
func (r *Registry) ResolveByID(id ID) (tcell.Style, bool) {
	spec, ok := r.specs[id]
	if !ok {
		return tcell.StyleDefault, false
	}
	return spec.build(), true
}

// ResolveByName returns the ID and built Style registered under name, or
// false if name is unknown.
func (r *Registry) ResolveByName(name string) (ID, tcell.Style, bool) {
	id, ok := r.byName[name]
	if !ok {
		return 0, tcell.StyleDefault, false
	}
	st, _ := r.ResolveByID(id)
	return id, st, true
}

// MergeStyles folds ids left to right: a later style's foreground and
// background override an earlier one's wherever the later style sets that
// channel (HasFg/HasBg), and attribute bitmasks accumulate via OR. An empty
// or entirely-unknown sequence yields the zero Style. Results are memoized
// keyed on the exact ID sequence, so repeated calls with the same sequence
// are O(1) after the first.
func (r *Registry) MergeStyles(ids []ID) tcell.Style {
	if len(ids) == 0 {
		return tcell.StyleDefault
	}

	key := mergeKey(ids)
	if st, ok := r.mergeCache[key]; ok {
		return st
	}

	result := tcell.StyleDefault
	for _, id := range ids {
		spec, ok := r.specs[id]
		if !ok {
			continue
		}
		if spec.HasFg {
			result = result.Foreground(spec.Fg)
		}
		if spec.HasBg {
			result = result.Background(spec.Bg)
		}
		_, _, attrs := result.Decompose()
		result = result.Attributes(attrs | spec.Attrs)
	}

	r.mergeCache[key] = result
	return result
}

// ClearCache empties the merge cache only; registered names/IDs/specs are
// untouched.
func (r *Registry) ClearCache() {
	r.mergeCache = make(map[string]tcell.Style)
}

func mergeKey(ids []ID) string {
	var b strings.Builder
	for i, id := range ids {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.FormatUint(uint64(id), 10))
	}
	return b.String()
}
