package postgres

import (
	"fmt"

	v1 "github.com/aevon-lab/salary-crossfilter/internal/api/v1"
)

type scanner interface {
	Scan(dest ...interface{}) error
}

// scanRecordRow scans a salaries row into a Record.
// Compatible with both sql.Row (single) and sql.Rows (multiple).
func scanRecordRow(row scanner) (*v1.Record, error) {
	var rec v1.Record

	err := row.Scan(
		&rec.Rank,
		&rec.Discipline,
		&rec.YrsSincePhD,
		&rec.YrsService,
		&rec.Sex,
		&rec.Salary,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to scan record row: %w", err)
	}

	return &rec, nil
}

func recordArgs(rec *v1.Record) []interface{} {
	return []interface{}{
		rec.Rank,
		rec.Discipline,
		rec.YrsSincePhD,
		rec.YrsService,
		rec.Sex,
		rec.Salary,
	}
}
