package dashboard

import "github.com/shopspring/decimal"

// Snapshot is the presentation-facing state of every panel.
type Snapshot struct {
	Total      int               `json:"total"`      // records in the index
	Filtered   int               `json:"filtered"`   // records passing every filter
	Filters    map[string]Filter `json:"filters"`    // by record field
	Selections map[string]Filter `json:"selections"` // by panel
	Panels     []PanelView       `json:"panels"`
}

// PanelView is one panel's current value. Data depends on Kind.
type PanelView struct {
	Name  string      `json:"name"`
	Title string      `json:"title"`
	Kind  string      `json:"kind"`
	Data  interface{} `json:"data"`
}

// Filter describes the active selection on one field or panel.
type Filter struct {
	Values []string `json:"values,omitempty"`
	Range  []int64  `json:"range,omitempty"` // half-open [lo, hi)
}

// KeyCount is a selector or count bucket.
type KeyCount struct {
	Key   string `json:"key"`
	Count int64  `json:"count"`
}

// RatioView is a conditional_ratio panel value.
type RatioView struct {
	Count   int64           `json:"count"`
	Matches int64           `json:"matches"`
	Ratio   decimal.Decimal `json:"ratio"`
	Percent string          `json:"percent"` // ratio as "12.34%"
}

// AverageBucket is an average panel bucket. Average is rounded to cents.
type AverageBucket struct {
	Key     string          `json:"key"`
	Count   int64           `json:"count"`
	Total   decimal.Decimal `json:"total"`
	Average decimal.Decimal `json:"average"`
}

// StackBucket is one match_ratio bar with a series entry per category.
type StackBucket struct {
	Key    string        `json:"key"`
	Series []StackSeries `json:"series"`
}

// StackSeries is one stacked segment. Percent is round(match/total, 2) * 100.
type StackSeries struct {
	Category string          `json:"category"`
	Total    int64           `json:"total"`
	Match    int64           `json:"match"`
	Percent  decimal.Decimal `json:"percent"`
}

// TupleView is a scatter panel value.
type TupleView struct {
	Points  []TuplePoint `json:"points"`
	XDomain []int64      `json:"x_domain,omitempty"` // [min, max] of x when the panel was built
}

// TuplePoint is one distinct (x, y, category, category) combination.
type TuplePoint struct {
	Key   []interface{} `json:"key"`
	Count int64         `json:"count"`
	Title string        `json:"title"`
}

// FilterRequest is the body of PUT /v1/dashboard/:session_id/filters/:field
// and PUT /v1/dashboard/:session_id/panels/:panel/filter. Exactly one of
// Values or Range must be set.
type FilterRequest struct {
	Values *[]string `json:"values"`
	Range  []int64   `json:"range"`
}

// SessionResponse is returned when a session is created.
type SessionResponse struct {
	SessionID string   `json:"session_id"`
	Snapshot  Snapshot `json:"snapshot"`
}
