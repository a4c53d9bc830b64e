package panel

// Supported panel kinds. Each kind maps onto one reducer policy.
const (
	KindSelector         = "selector"          // count per key; drives a select menu
	KindCount            = "count"             // count per key
	KindConditionalRatio = "conditional_ratio" // whole-index matches/count
	KindAverage          = "average"           // running average per key
	KindMatchRatio       = "match_ratio"       // stacked match/total per key
	KindTuple            = "tuple"             // distinct (x, y, category, category) points
)

// KindSpec lists the panel attributes a kind requires.
type KindSpec struct {
	NeedsDimension  bool
	NeedsMeasure    bool
	NeedsCondition  bool
	NeedsMatch      bool
	NeedsCategories bool
	NeedsFields     bool
}

// Kinds is the registry of supported panel kinds.
// To add a kind: add an entry here and teach the dashboard builder about it.
var Kinds = map[string]KindSpec{
	KindSelector:         {NeedsDimension: true},
	KindCount:            {NeedsDimension: true},
	KindConditionalRatio: {NeedsCondition: true, NeedsMatch: true},
	KindAverage:          {NeedsDimension: true, NeedsMeasure: true},
	KindMatchRatio:       {NeedsDimension: true, NeedsMatch: true, NeedsCategories: true},
	KindTuple:            {NeedsFields: true},
}
