// Package dashboard composes panel definitions over one multidimensional index
// and exposes filter selection and snapshot rendering.
package dashboard

import (
	"cmp"
	"errors"
	"fmt"
	"maps"
	"slices"

	v1 "github.com/aevon-lab/salary-crossfilter/internal/api/v1"
	"github.com/aevon-lab/salary-crossfilter/internal/core/index"
	"github.com/aevon-lab/salary-crossfilter/internal/core/panel"
)

var (
	// ErrUnknownDimension marks a filter on a field the records do not have.
	ErrUnknownDimension = errors.New("unknown dimension")

	// ErrUnknownPanel marks a lookup of a panel the dashboard was not built with.
	ErrUnknownPanel = errors.New("unknown panel")

	// ErrInvalidFilter marks a filter value that does not fit its field or panel.
	ErrInvalidFilter = errors.New("invalid filter")
)

// Dashboard is a set of panels over one index. It is not safe for concurrent
// use; callers serialize access.
//
// Every keyed or scatter panel owns its dimension. A selection on a panel
// filters every other panel while the panel itself keeps showing all of its
// buckets. A filter on a record field goes through a dimension no panel
// groups on, so every panel observes it.
type Dashboard struct {
	idx    *index.Index[record]
	panels []panel.Panel
	views  map[string]view

	targets    map[string]*target // panel name -> the panel's own dimension
	fields     map[string]*target // field name -> dimension seen by every panel
	filters    map[string]Filter  // by field
	selections map[string]Filter  // by panel
}

// New builds every panel on idx.
func New(idx *index.Index[record], panels []panel.Panel) (*Dashboard, error) {
	d := &Dashboard{
		idx:        idx,
		panels:     slices.Clone(panels),
		views:      make(map[string]view, len(panels)),
		targets:    make(map[string]*target, len(panels)),
		fields:     make(map[string]*target),
		filters:    make(map[string]Filter),
		selections: make(map[string]Filter),
	}

	for _, p := range d.panels {
		if _, dup := d.views[p.Name]; dup {
			d.Dispose()
			return nil, fmt.Errorf("panel %q: duplicate panel name", p.Name)
		}
		v, t, err := d.build(p)
		if err != nil {
			d.Dispose()
			return nil, err
		}
		d.views[p.Name] = v
		if t != nil {
			d.targets[p.Name] = t
		}
	}
	return d, nil
}

func (d *Dashboard) build(p panel.Panel) (view, *target, error) {
	if err := p.Validate(); err != nil {
		return nil, nil, err
	}

	switch p.Kind {
	case panel.KindConditionalRatio:
		return newRatioView(d.idx, p), nil, nil

	case panel.KindTuple:
		v, err := newTupleView(d.idx, p)
		if err != nil {
			return nil, nil, err
		}
		return v, tupleTarget(p.Name, v.dim), nil
	}

	if v1.IsCategory(p.Dimension) {
		dim, err := index.NewDimension(d.idx, "panel:"+p.Name, categoryOf(p.Dimension), cmp.Compare[string])
		if err != nil {
			return nil, nil, fmt.Errorf("panel %q: %w", p.Name, err)
		}
		v, err := newKeyedView(dim, p)
		if err != nil {
			dim.Dispose()
			return nil, nil, err
		}
		return v, categoryTarget(p.Name, dim), nil
	}

	dim, err := index.NewDimension(d.idx, "panel:"+p.Name, measureOf(p.Dimension), cmp.Compare[int64])
	if err != nil {
		return nil, nil, fmt.Errorf("panel %q: %w", p.Name, err)
	}
	v, err := newKeyedView(dim, p)
	if err != nil {
		dim.Dispose()
		return nil, nil, err
	}
	return v, measureTarget(p.Name, dim), nil
}

// Panels returns the panel definitions in display order.
func (d *Dashboard) Panels() []panel.Panel { return slices.Clone(d.panels) }

// Snapshot renders every panel against the current filters.
func (d *Dashboard) Snapshot() Snapshot {
	s := Snapshot{
		Total:      d.idx.Size(),
		Filtered:   d.idx.FilteredCount(),
		Filters:    d.Filters(),
		Selections: d.Selections(),
		Panels:     make([]PanelView, 0, len(d.panels)),
	}
	for _, p := range d.panels {
		s.Panels = append(s.Panels, d.render(p))
	}
	return s
}

// Panel renders a single panel.
func (d *Dashboard) Panel(name string) (PanelView, error) {
	for _, p := range d.panels {
		if p.Name == name {
			return d.render(p), nil
		}
	}
	return PanelView{}, fmt.Errorf("%w: %q", ErrUnknownPanel, name)
}

func (d *Dashboard) render(p panel.Panel) PanelView {
	return PanelView{
		Name:  p.Name,
		Title: p.Title,
		Kind:  p.Kind,
		Data:  d.views[p.Name].data(),
	}
}

// Filters returns the active filter per record field.
func (d *Dashboard) Filters() map[string]Filter { return maps.Clone(d.filters) }

// Selections returns the active selection per panel.
func (d *Dashboard) Selections() map[string]Filter { return maps.Clone(d.selections) }

// Select keeps records whose field equals one of values, in every panel. An
// empty selection clears the field's filter, like an unselected menu.
func (d *Dashboard) Select(field string, values ...string) error {
	if len(values) == 0 {
		return d.Clear(field)
	}
	t, err := d.fieldTarget(field)
	if err != nil {
		return err
	}
	if err := t.selectValues(values); err != nil {
		return err
	}
	d.filters[field] = Filter{Values: slices.Clone(values)}
	return nil
}

// SelectRange keeps records whose numeric field lies in [lo, hi), in every panel.
func (d *Dashboard) SelectRange(field string, lo, hi int64) error {
	t, err := d.fieldTarget(field)
	if err != nil {
		return err
	}
	if err := t.selectRange(lo, hi); err != nil {
		return err
	}
	d.filters[field] = Filter{Range: []int64{lo, hi}}
	return nil
}

// Clear removes the filter on field.
func (d *Dashboard) Clear(field string) error {
	if !v1.IsCategory(field) && !v1.IsMeasure(field) {
		return fmt.Errorf("%w: %q", ErrUnknownDimension, field)
	}
	if t, ok := d.fields[field]; ok {
		t.clear()
	}
	delete(d.filters, field)
	return nil
}

// SelectPanel selects buckets of a panel, the way clicking bars of a chart
// does. Every other panel observes the selection; the panel itself keeps
// showing all of its buckets. An empty selection clears it.
func (d *Dashboard) SelectPanel(name string, values ...string) error {
	if len(values) == 0 {
		return d.ClearPanel(name)
	}
	t, err := d.panelTarget(name)
	if err != nil {
		return err
	}
	if err := t.selectValues(values); err != nil {
		return err
	}
	d.selections[name] = Filter{Values: slices.Clone(values)}
	return nil
}

// SelectPanelRange brushes [lo, hi) on a panel keyed by a number, or along
// the x axis of a scatter panel.
func (d *Dashboard) SelectPanelRange(name string, lo, hi int64) error {
	t, err := d.panelTarget(name)
	if err != nil {
		return err
	}
	if err := t.selectRange(lo, hi); err != nil {
		return err
	}
	d.selections[name] = Filter{Range: []int64{lo, hi}}
	return nil
}

// ClearPanel removes the selection on a panel.
func (d *Dashboard) ClearPanel(name string) error {
	t, err := d.panelTarget(name)
	if err != nil {
		return err
	}
	t.clear()
	delete(d.selections, name)
	return nil
}

// ClearAll removes every field filter and panel selection.
func (d *Dashboard) ClearAll() {
	for _, t := range d.fields {
		t.clear()
	}
	for _, t := range d.targets {
		t.clear()
	}
	clear(d.filters)
	clear(d.selections)
}

// Dispose unregisters every group and dimension from the index.
func (d *Dashboard) Dispose() {
	for name, v := range d.views {
		v.dispose()
		delete(d.views, name)
	}
	for name, t := range d.targets {
		t.dispose()
		delete(d.targets, name)
	}
	for field, t := range d.fields {
		t.dispose()
		delete(d.fields, field)
	}
	clear(d.filters)
	clear(d.selections)
}

func (d *Dashboard) fieldTarget(field string) (*target, error) {
	if t, ok := d.fields[field]; ok {
		return t, nil
	}
	t, err := newFieldTarget(d.idx, field)
	if err != nil {
		return nil, err
	}
	d.fields[field] = t
	return t, nil
}

func (d *Dashboard) panelTarget(name string) (*target, error) {
	if _, ok := d.views[name]; !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownPanel, name)
	}
	t, ok := d.targets[name]
	if !ok {
		return nil, fmt.Errorf("%w: panel %q has no buckets to select", ErrInvalidFilter, name)
	}
	return t, nil
}
