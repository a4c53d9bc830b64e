// Package index is a small in-memory multidimensional index over an immutable
// record set. Dimensions bucket records by a key, filters on a dimension
// restrict the active set, and groups keep one incrementally maintained
// summary per bucket.
//
// A filter change only visits the records whose membership flipped: the
// predicate is evaluated once per distinct key and the posting lists of the
// flipped keys are merged into an entering and a leaving set. Every group
// whose active set one of those records entered or left gets exactly one Add
// or Remove call.
//
// The index is not safe for concurrent use.
package index

import (
	"errors"
	"math/bits"

	"github.com/RoaringBitmap/roaring"
)

// MaxDimensions is the number of dimensions one index can hold at a time.
const MaxDimensions = 64

// ErrTooManyDimensions is returned when every dimension slot is taken.
var ErrTooManyDimensions = errors.New("index: too many dimensions")

// listener is the type-erased view of a group that the index notifies.
type listener[R any] interface {
	// mask is the filter bit of the group's own dimension, 0 for GroupAll.
	mask() uint64
	add(id uint32, r R)
	remove(id uint32, r R)
}

// Index owns the records, the per-record filter state and the registered groups.
type Index[R any] struct {
	records []R

	// filtered holds one bit per dimension; a set bit means the record fails
	// that dimension's filter. A record is in the global active set iff its
	// word is zero.
	filtered []uint64
	used     uint64

	listeners []listener[R]
}

// New creates an index over records. The slice is retained, not copied, and
// must not be modified afterwards.
func New[R any](records []R) *Index[R] {
	return &Index[R]{
		records:  records,
		filtered: make([]uint64, len(records)),
	}
}

// Size returns the total number of records.
func (x *Index[R]) Size() int { return len(x.records) }

// Records returns every record regardless of filters.
func (x *Index[R]) Records() []R { return x.records }

// FilteredCount returns the number of records passing every filter.
func (x *Index[R]) FilteredCount() int {
	n := 0
	for _, m := range x.filtered {
		if m == 0 {
			n++
		}
	}
	return n
}

// Filtered returns the records passing every filter, in load order.
func (x *Index[R]) Filtered() []R {
	out := make([]R, 0, len(x.records))
	for id, m := range x.filtered {
		if m == 0 {
			out = append(out, x.records[id])
		}
	}
	return out
}

// Dimensions returns the number of live dimensions.
func (x *Index[R]) Dimensions() int { return bits.OnesCount64(x.used) }

func (x *Index[R]) allocBit() (uint64, error) {
	if x.used == ^uint64(0) {
		return 0, ErrTooManyDimensions
	}
	bit := uint64(1) << bits.TrailingZeros64(^x.used)
	x.used |= bit
	return bit, nil
}

func (x *Index[R]) releaseBit(bit uint64) {
	x.used &^= bit
}

func (x *Index[R]) subscribe(l listener[R]) {
	x.listeners = append(x.listeners, l)
}

func (x *Index[R]) unsubscribe(l listener[R]) {
	for i, cur := range x.listeners {
		if cur == l {
			x.listeners = append(x.listeners[:i], x.listeners[i+1:]...)
			return
		}
	}
}

// apply flips bit for the leaving and entering records and notifies the
// groups whose active set changed.
func (x *Index[R]) apply(bit uint64, leaving, entering *roaring.Bitmap) {
	it := leaving.Iterator()
	for it.HasNext() {
		id := it.Next()
		before := x.filtered[id]
		after := before | bit
		x.filtered[id] = after
		x.notify(id, before, after)
	}

	it = entering.Iterator()
	for it.HasNext() {
		id := it.Next()
		before := x.filtered[id]
		after := before &^ bit
		x.filtered[id] = after
		x.notify(id, before, after)
	}
}

func (x *Index[R]) notify(id uint32, before, after uint64) {
	r := x.records[id]
	for _, l := range x.listeners {
		own := l.mask()
		was := before&^own == 0
		is := after&^own == 0
		switch {
		case was && !is:
			l.remove(id, r)
		case !was && is:
			l.add(id, r)
		}
	}
}

// activeFor reports whether record id is in the active set of a group whose
// own dimension bit is own.
func (x *Index[R]) activeFor(id int, own uint64) bool {
	return x.filtered[id]&^own == 0
}
