package v1

import "fmt"

// Field names shared by the loaders, the panel definitions and the HTTP filter API.
const (
	FieldRank        = "rank"
	FieldDiscipline  = "discipline"
	FieldSex         = "sex"
	FieldYrsSincePhD = "yrs_since_phd"
	FieldYrsService  = "yrs_service"
	FieldSalary      = "salary"
)

// Known category and measure values of the salaries dataset.
const (
	SexFemale = "Female"
	SexMale   = "Male"

	RankProf      = "Prof"
	RankAsstProf  = "AsstProf"
	RankAssocProf = "AssocProf"
)

// Record is one observed faculty member. Records are immutable once loaded:
// the index hands out pointers but nothing downstream writes through them.
type Record struct {
	// --- Categorical fields ---
	Rank       string `json:"rank"`
	Discipline string `json:"discipline"`
	Sex        string `json:"sex"`

	// --- Numeric measures (integers in the source data) ---
	YrsSincePhD int64 `json:"yrs_since_phd"`
	YrsService  int64 `json:"yrs_service"`
	Salary      int64 `json:"salary"`
}

// Validate ensures the categorical fields a dashboard groups on are present.
func (r *Record) Validate() error {
	if r.Rank == "" {
		return fmt.Errorf("rank is required")
	}
	if r.Discipline == "" {
		return fmt.Errorf("discipline is required")
	}
	if r.Sex == "" {
		return fmt.Errorf("sex is required")
	}
	if r.Salary < 0 {
		return fmt.Errorf("salary must not be negative")
	}
	return nil
}

// Category returns the value of a categorical field.
func (r *Record) Category(field string) (string, bool) {
	switch field {
	case FieldRank:
		return r.Rank, true
	case FieldDiscipline:
		return r.Discipline, true
	case FieldSex:
		return r.Sex, true
	}
	return "", false
}

// Measure returns the value of a numeric field.
func (r *Record) Measure(field string) (int64, bool) {
	switch field {
	case FieldYrsSincePhD:
		return r.YrsSincePhD, true
	case FieldYrsService:
		return r.YrsService, true
	case FieldSalary:
		return r.Salary, true
	}
	return 0, false
}

// IsCategory reports whether field names a categorical field.
func IsCategory(field string) bool {
	switch field {
	case FieldRank, FieldDiscipline, FieldSex:
		return true
	}
	return false
}

// IsMeasure reports whether field names a numeric field.
func IsMeasure(field string) bool {
	switch field {
	case FieldYrsSincePhD, FieldYrsService, FieldSalary:
		return true
	}
	return false
}
