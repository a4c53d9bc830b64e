package reduce

// Reducer defines the incremental semantics of one aggregation policy.
//
// The index calls Add exactly once for every record entering a bucket's active
// set and Remove exactly once for every record leaving it, so a Summary never
// needs to see the raw records again. Implementations must be pure: the
// returned Summary is the only output.
type Reducer[R, S any] interface {
	// Initial returns the zero state of a new bucket.
	Initial() S

	// Add folds an entering record into the summary.
	Add(summary S, record R) S

	// Remove unfolds a leaving record. For additive fields it is the exact
	// inverse of Add; derived fields are recomputed from the remaining totals.
	Remove(summary S, record R) S
}

// Funcs adapts three plain functions into a Reducer.
type Funcs[R, S any] struct {
	InitialFn func() S
	AddFn     func(S, R) S
	RemoveFn  func(S, R) S
}

func (f Funcs[R, S]) Initial() S        { return f.InitialFn() }
func (f Funcs[R, S]) Add(s S, r R) S    { return f.AddFn(s, r) }
func (f Funcs[R, S]) Remove(s S, r R) S { return f.RemoveFn(s, r) }
