package index

import (
	"slices"

	"github.com/RoaringBitmap/roaring"
)

// Dimension projects every record onto a key and supports filtering by key.
type Dimension[R any, K comparable] struct {
	idx     *Index[R]
	name    string
	bit     uint64
	compare func(a, b K) int

	keys     []K               // distinct keys in ascending order
	ordinals map[K]int         // key -> position in keys
	recOrd   []int             // record id -> key ordinal
	postings []*roaring.Bitmap // key ordinal -> record ids

	selected []bool // key ordinal -> passes the current filter
	filtered bool
	disposed bool
}

// NewDimension registers a dimension on idx. compare orders keys for
// range filters and Top/Bottom; it must be a total order consistent with ==.
func NewDimension[R any, K comparable](
	idx *Index[R],
	name string,
	key func(R) K,
	compare func(a, b K) int,
) (*Dimension[R, K], error) {
	bit, err := idx.allocBit()
	if err != nil {
		return nil, err
	}

	d := &Dimension[R, K]{
		idx:      idx,
		name:     name,
		bit:      bit,
		compare:  compare,
		ordinals: make(map[K]int),
		recOrd:   make([]int, len(idx.records)),
	}

	recKeys := make([]K, len(idx.records))
	for id, r := range idx.records {
		k := key(r)
		recKeys[id] = k
		if _, ok := d.ordinals[k]; !ok {
			d.ordinals[k] = -1
			d.keys = append(d.keys, k)
		}
	}
	slices.SortFunc(d.keys, compare)

	d.postings = make([]*roaring.Bitmap, len(d.keys))
	d.selected = make([]bool, len(d.keys))
	for ord, k := range d.keys {
		d.ordinals[k] = ord
		d.postings[ord] = roaring.New()
		d.selected[ord] = true
	}
	for id, k := range recKeys {
		ord := d.ordinals[k]
		d.recOrd[id] = ord
		d.postings[ord].Add(uint32(id))
	}

	return d, nil
}

// Name returns the dimension name.
func (d *Dimension[R, K]) Name() string { return d.name }

// Keys returns the distinct keys in ascending order.
func (d *Dimension[R, K]) Keys() []K { return slices.Clone(d.keys) }

// HasFilter reports whether a filter other than "all" is active.
func (d *Dimension[R, K]) HasFilter() bool { return d.filtered }

// FilterExact keeps only records whose key equals v.
func (d *Dimension[R, K]) FilterExact(v K) {
	d.FilterFunc(func(k K) bool { return k == v })
}

// FilterIn keeps records whose key is one of vs. An empty list selects nothing.
func (d *Dimension[R, K]) FilterIn(vs ...K) {
	set := make(map[K]struct{}, len(vs))
	for _, v := range vs {
		set[v] = struct{}{}
	}
	d.FilterFunc(func(k K) bool {
		_, ok := set[k]
		return ok
	})
}

// FilterRange keeps records with lo <= key < hi.
func (d *Dimension[R, K]) FilterRange(lo, hi K) {
	d.FilterFunc(func(k K) bool {
		return d.compare(k, lo) >= 0 && d.compare(k, hi) < 0
	})
}

// FilterFunc keeps records whose key satisfies pred.
func (d *Dimension[R, K]) FilterFunc(pred func(K) bool) {
	d.refilter(pred)
	d.filtered = true
}

// FilterAll clears the filter.
func (d *Dimension[R, K]) FilterAll() {
	d.refilter(nil)
	d.filtered = false
}

func (d *Dimension[R, K]) refilter(pred func(K) bool) {
	if d.disposed {
		return
	}

	var leaving, entering []*roaring.Bitmap
	for ord, k := range d.keys {
		next := pred == nil || pred(k)
		if next == d.selected[ord] {
			continue
		}
		d.selected[ord] = next
		if next {
			entering = append(entering, d.postings[ord])
		} else {
			leaving = append(leaving, d.postings[ord])
		}
	}
	if len(leaving) == 0 && len(entering) == 0 {
		return
	}

	d.idx.apply(d.bit, roaring.FastOr(leaving...), roaring.FastOr(entering...))
}

// Top returns up to n records passing every filter, highest keys first.
func (d *Dimension[R, K]) Top(n int) []R {
	out := make([]R, 0, max(n, 0))
	for ord := len(d.keys) - 1; ord >= 0 && len(out) < n; ord-- {
		out = d.collect(out, ord, n)
	}
	return out
}

// Bottom returns up to n records passing every filter, lowest keys first.
func (d *Dimension[R, K]) Bottom(n int) []R {
	out := make([]R, 0, max(n, 0))
	for ord := 0; ord < len(d.keys) && len(out) < n; ord++ {
		out = d.collect(out, ord, n)
	}
	return out
}

func (d *Dimension[R, K]) collect(out []R, ord, n int) []R {
	it := d.postings[ord].Iterator()
	for it.HasNext() && len(out) < n {
		id := it.Next()
		if d.idx.filtered[id] == 0 {
			out = append(out, d.idx.records[id])
		}
	}
	return out
}

// Dispose clears the filter and frees the dimension slot. Groups built on the
// dimension must be disposed first.
func (d *Dimension[R, K]) Dispose() {
	if d.disposed {
		return
	}
	d.FilterAll()
	d.idx.releaseBit(d.bit)
	d.disposed = true
}
