package index

import (
	"github.com/aevon-lab/salary-crossfilter/internal/core/reduce"
)

// Entry is one bucket of a group.
type Entry[K comparable, S any] struct {
	Key   K `json:"key"`
	Value S `json:"value"`
}

// Group keeps one summary per distinct key of a dimension. It observes every
// filter except the one on its own dimension.
type Group[R any, K comparable, S any] struct {
	dim       *Dimension[R, K]
	reducer   reduce.Reducer[R, S]
	summaries []S
}

// NewGroup registers a group on dim. Every bucket starts from
// reducer.Initial() and is seeded with the records currently active for it.
func NewGroup[R any, K comparable, S any](dim *Dimension[R, K], reducer reduce.Reducer[R, S]) *Group[R, K, S] {
	g := &Group[R, K, S]{
		dim:       dim,
		reducer:   reducer,
		summaries: make([]S, len(dim.keys)),
	}
	for ord := range g.summaries {
		g.summaries[ord] = reducer.Initial()
	}

	idx := dim.idx
	for id, r := range idx.records {
		if idx.activeFor(id, dim.bit) {
			ord := dim.recOrd[id]
			g.summaries[ord] = reducer.Add(g.summaries[ord], r)
		}
	}

	idx.subscribe(g)
	return g
}

func (g *Group[R, K, S]) mask() uint64 { return g.dim.bit }

func (g *Group[R, K, S]) add(id uint32, r R) {
	ord := g.dim.recOrd[id]
	g.summaries[ord] = g.reducer.Add(g.summaries[ord], r)
}

func (g *Group[R, K, S]) remove(id uint32, r R) {
	ord := g.dim.recOrd[id]
	g.summaries[ord] = g.reducer.Remove(g.summaries[ord], r)
}

// All returns every bucket ordered by key.
func (g *Group[R, K, S]) All() []Entry[K, S] {
	out := make([]Entry[K, S], len(g.summaries))
	for ord, s := range g.summaries {
		out[ord] = Entry[K, S]{Key: g.dim.keys[ord], Value: s}
	}
	return out
}

// Get returns the summary of one bucket.
func (g *Group[R, K, S]) Get(key K) (S, bool) {
	ord, ok := g.dim.ordinals[key]
	if !ok {
		var zero S
		return zero, false
	}
	return g.summaries[ord], true
}

// Size returns the number of buckets.
func (g *Group[R, K, S]) Size() int { return len(g.summaries) }

// Dispose stops the group from receiving updates.
func (g *Group[R, K, S]) Dispose() {
	g.dim.idx.unsubscribe(g)
}

// GroupAll keeps a single summary over the records passing every filter.
type GroupAll[R any, S any] struct {
	idx     *Index[R]
	reducer reduce.Reducer[R, S]
	summary S
}

// NewGroupAll registers a whole-index aggregation.
func NewGroupAll[R any, S any](idx *Index[R], reducer reduce.Reducer[R, S]) *GroupAll[R, S] {
	g := &GroupAll[R, S]{
		idx:     idx,
		reducer: reducer,
		summary: reducer.Initial(),
	}
	for id, r := range idx.records {
		if idx.activeFor(id, 0) {
			g.summary = reducer.Add(g.summary, r)
		}
	}
	idx.subscribe(g)
	return g
}

func (g *GroupAll[R, S]) mask() uint64 { return 0 }

func (g *GroupAll[R, S]) add(_ uint32, r R) { g.summary = g.reducer.Add(g.summary, r) }

func (g *GroupAll[R, S]) remove(_ uint32, r R) { g.summary = g.reducer.Remove(g.summary, r) }

// Value returns the current summary.
func (g *GroupAll[R, S]) Value() S { return g.summary }

// Dispose stops the group from receiving updates.
func (g *GroupAll[R, S]) Dispose() {
	g.idx.unsubscribe(g)
}
