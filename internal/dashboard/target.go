package dashboard

import (
	"cmp"
	"fmt"
	"strconv"

	v1 "github.com/aevon-lab/salary-crossfilter/internal/api/v1"
	"github.com/aevon-lab/salary-crossfilter/internal/core/index"
)

// target is a dimension that accepts selections parsed from request values.
// A nil values or rng func means that filter form does not apply.
type target struct {
	name    string
	values  func(vs []string) error
	rng     func(lo, hi int64)
	clear   func()
	dispose func()
}

func (t *target) selectValues(vs []string) error {
	if t.values == nil {
		return fmt.Errorf("%w: %s takes range filters only", ErrInvalidFilter, t.name)
	}
	return t.values(vs)
}

func (t *target) selectRange(lo, hi int64) error {
	if t.rng == nil {
		return fmt.Errorf("%w: range filters need a numeric key, %s is categorical", ErrInvalidFilter, t.name)
	}
	if hi < lo {
		return fmt.Errorf("%w: range [%d, %d) is inverted", ErrInvalidFilter, lo, hi)
	}
	t.rng(lo, hi)
	return nil
}

func categoryTarget(name string, dim *index.Dimension[record, string]) *target {
	return &target{
		name: name,
		values: func(vs []string) error {
			dim.FilterIn(vs...)
			return nil
		},
		clear:   dim.FilterAll,
		dispose: dim.Dispose,
	}
}

func measureTarget(name string, dim *index.Dimension[record, int64]) *target {
	return &target{
		name: name,
		values: func(vs []string) error {
			nums, err := parseInts(name, vs)
			if err != nil {
				return err
			}
			dim.FilterIn(nums...)
			return nil
		},
		rng:     dim.FilterRange,
		clear:   dim.FilterAll,
		dispose: dim.Dispose,
	}
}

// tupleTarget brushes a scatter panel along its x axis.
func tupleTarget(name string, dim *index.Dimension[record, tupleKey]) *target {
	return &target{
		name: name,
		rng: func(lo, hi int64) {
			dim.FilterFunc(func(k tupleKey) bool { return k.X >= lo && k.X < hi })
		},
		clear:   dim.FilterAll,
		dispose: dim.Dispose,
	}
}

// newFieldTarget builds a dimension on a record field. Field dimensions carry
// no groups, so every panel observes their filters.
func newFieldTarget(idx *index.Index[record], field string) (*target, error) {
	switch {
	case v1.IsCategory(field):
		dim, err := index.NewDimension(idx, field, categoryOf(field), cmp.Compare[string])
		if err != nil {
			return nil, fmt.Errorf("dimension %q: %w", field, err)
		}
		return categoryTarget(field, dim), nil

	case v1.IsMeasure(field):
		dim, err := index.NewDimension(idx, field, measureOf(field), cmp.Compare[int64])
		if err != nil {
			return nil, fmt.Errorf("dimension %q: %w", field, err)
		}
		return measureTarget(field, dim), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownDimension, field)
}

func parseInts(name string, raw []string) ([]int64, error) {
	nums := make([]int64, 0, len(raw))
	for _, s := range raw {
		n, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: %s value %q is not an integer", ErrInvalidFilter, name, s)
		}
		nums = append(nums, n)
	}
	return nums, nil
}
