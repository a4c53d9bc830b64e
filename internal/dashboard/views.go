package dashboard

import (
	"cmp"
	"fmt"

	v1 "github.com/aevon-lab/salary-crossfilter/internal/api/v1"
	"github.com/aevon-lab/salary-crossfilter/internal/core/index"
	"github.com/aevon-lab/salary-crossfilter/internal/core/panel"
	"github.com/aevon-lab/salary-crossfilter/internal/core/reduce"
	"github.com/shopspring/decimal"
)

type record = *v1.Record

// view renders one panel from the groups it owns.
type view interface {
	data() interface{}
	dispose()
}

var hundred = decimal.NewFromInt(100)

// newKeyedView builds the group-per-key panels on the panel's own dimension.
func newKeyedView[K comparable](dim *index.Dimension[record, K], p panel.Panel) (view, error) {
	switch p.Kind {
	case panel.KindSelector, panel.KindCount:
		return &countView[K]{group: index.NewGroup(dim, reduce.Count[record]{})}, nil

	case panel.KindAverage:
		avg := reduce.RunningAverage[record]{Measure: reduce.IntMeasure(measureOf(p.Measure))}
		return &averageView[K]{group: index.NewGroup(dim, avg)}, nil

	case panel.KindMatchRatio:
		v := &matchRatioView[K]{categories: p.Categories}
		for _, c := range p.Categories {
			ratio := reduce.MatchRatio[record]{Match: equals(p.Match.Field, c)}
			v.groups = append(v.groups, index.NewGroup(dim, ratio))
		}
		return v, nil
	}
	return nil, fmt.Errorf("panel %q: kind %q is not keyed", p.Name, p.Kind)
}

type countView[K comparable] struct {
	group *index.Group[record, K, reduce.CountSummary]
}

func (v *countView[K]) data() interface{} {
	entries := v.group.All()
	out := make([]KeyCount, 0, len(entries))
	for _, e := range entries {
		out = append(out, KeyCount{Key: keyString(e.Key), Count: e.Value.Count})
	}
	return out
}

func (v *countView[K]) dispose() { v.group.Dispose() }

type averageView[K comparable] struct {
	group *index.Group[record, K, reduce.AverageSummary]
}

func (v *averageView[K]) data() interface{} {
	entries := v.group.All()
	out := make([]AverageBucket, 0, len(entries))
	for _, e := range entries {
		out = append(out, AverageBucket{
			Key:     keyString(e.Key),
			Count:   e.Value.Count,
			Total:   e.Value.Total,
			Average: e.Value.Average.Round(2),
		})
	}
	return out
}

func (v *averageView[K]) dispose() { v.group.Dispose() }

// matchRatioView stacks one MatchRatio group per category over the same dimension.
type matchRatioView[K comparable] struct {
	categories []string
	groups     []*index.Group[record, K, reduce.MatchRatioSummary]
}

func (v *matchRatioView[K]) data() interface{} {
	if len(v.groups) == 0 {
		return []StackBucket{}
	}

	keys := v.groups[0].All()
	out := make([]StackBucket, 0, len(keys))
	for _, k := range keys {
		b := StackBucket{Key: keyString(k.Key), Series: make([]StackSeries, 0, len(v.groups))}
		for i, g := range v.groups {
			s, _ := g.Get(k.Key)
			b.Series = append(b.Series, StackSeries{
				Category: v.categories[i],
				Total:    s.Total,
				Match:    s.Match,
				Percent:  stackPercent(s),
			})
		}
		out = append(out, b)
	}
	return out
}

func (v *matchRatioView[K]) dispose() {
	for _, g := range v.groups {
		g.Dispose()
	}
}

// stackPercent rounds the ratio to two places before scaling, so 0.444 shows
// as 44. Rounding is exact decimal half-up: 29/200 = 0.145 gives 15.
func stackPercent(s reduce.MatchRatioSummary) decimal.Decimal {
	if s.Total == 0 {
		return decimal.Zero
	}
	return s.Ratio.Round(2).Mul(hundred)
}

type ratioView struct {
	group *index.GroupAll[record, reduce.ConditionalRatioSummary]
}

func newRatioView(idx *index.Index[record], p panel.Panel) *ratioView {
	ratio := reduce.ConditionalRatio[record]{
		Condition: equals(p.Condition.Field, p.Condition.Equals),
		Match:     equals(p.Match.Field, p.Match.Equals),
	}
	return &ratioView{group: index.NewGroupAll(idx, ratio)}
}

func (v *ratioView) data() interface{} {
	s := v.group.Value()
	return RatioView{
		Count:   s.Count,
		Matches: s.Matches,
		Ratio:   s.Ratio,
		Percent: formatPercent(s.Ratio),
	}
}

func (v *ratioView) dispose() { v.group.Dispose() }

// formatPercent renders a ratio with two decimals, 0.5 -> "50.00%".
func formatPercent(ratio decimal.Decimal) string {
	return ratio.Mul(hundred).StringFixed(2) + "%"
}

// tupleKey is the composite key of a scatter panel.
type tupleKey struct {
	X, Y int64
	A, B string
}

func compareTuple(a, b tupleKey) int {
	if c := cmp.Compare(a.X, b.X); c != 0 {
		return c
	}
	if c := cmp.Compare(a.Y, b.Y); c != 0 {
		return c
	}
	if c := cmp.Compare(a.A, b.A); c != 0 {
		return c
	}
	return cmp.Compare(a.B, b.B)
}

type tupleView struct {
	dim     *index.Dimension[record, tupleKey]
	group   *index.Group[record, tupleKey, reduce.CountSummary]
	xDomain []int64
}

// newTupleView groups records by their full tuple. Keys order by x first, so
// the lowest and highest keys at build time give the x domain, which stays
// fixed while filters change.
func newTupleView(idx *index.Index[record], p panel.Panel) (*tupleView, error) {
	x, y := measureOf(p.Fields[0]), measureOf(p.Fields[1])
	a, b := categoryOf(p.Fields[2]), categoryOf(p.Fields[3])

	dim, err := index.NewDimension(idx, "panel:"+p.Name, func(r record) tupleKey {
		return tupleKey{X: x(r), Y: y(r), A: a(r), B: b(r)}
	}, compareTuple)
	if err != nil {
		return nil, fmt.Errorf("panel %q: %w", p.Name, err)
	}

	v := &tupleView{
		dim:   dim,
		group: index.NewGroup(dim, reduce.Count[record]{}),
	}
	lo, hi := dim.Bottom(1), dim.Top(1)
	if len(lo) > 0 && len(hi) > 0 {
		v.xDomain = []int64{x(lo[0]), x(hi[0])}
	}
	return v, nil
}

func (v *tupleView) data() interface{} {
	out := TupleView{Points: []TuplePoint{}, XDomain: v.xDomain}
	for _, e := range v.group.All() {
		if e.Value.Count == 0 {
			continue
		}
		k := e.Key
		out.Points = append(out.Points, TuplePoint{
			Key:   []interface{}{k.X, k.Y, k.A, k.B},
			Count: e.Value.Count,
			Title: fmt.Sprintf("%s earned: $%s", k.A, decimal.NewFromInt(k.Y).StringFixed(2)),
		})
	}
	return out
}

func (v *tupleView) dispose() { v.group.Dispose() }

func keyString[K comparable](k K) string { return fmt.Sprint(k) }

func equals(field, want string) func(record) bool {
	return func(r record) bool {
		v, _ := r.Category(field)
		return v == want
	}
}

func measureOf(field string) func(record) int64 {
	return func(r record) int64 {
		v, _ := r.Measure(field)
		return v
	}
}

func categoryOf(field string) func(record) string {
	return func(r record) string {
		v, _ := r.Category(field)
		return v
	}
}
