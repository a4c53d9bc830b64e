// Package csvfile loads the salaries dataset from a CSV file laid out like the
// classic "Salaries" table: rank, discipline, yrs.since.phd, yrs.service, sex, salary.
package csvfile

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	v1 "github.com/aevon-lab/salary-crossfilter/internal/api/v1"
	"github.com/aevon-lab/salary-crossfilter/internal/core/storage"
)

var requiredColumns = []string{
	v1.FieldRank,
	v1.FieldDiscipline,
	v1.FieldYrsSincePhD,
	v1.FieldYrsService,
	v1.FieldSex,
	v1.FieldSalary,
}

// Store implements storage.RecordStore over a CSV file.
type Store struct {
	path string
}

// NewStore returns a store reading path on every LoadRecords call.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// LoadRecords reads and parses the whole file.
func (s *Store) LoadRecords(ctx context.Context) ([]*v1.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("open dataset: %w", err)
	}
	defer f.Close()

	records, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("dataset %s: %w", s.path, err)
	}

	slog.Info("[CSV] Loaded dataset", "path", s.path, "records", len(records))
	return records, nil
}

// Parse reads records from r. Columns are located by header name; dotted
// names such as "yrs.since.phd" match their snake_case field. Unknown columns
// (for example a leading row-number column) are ignored.
func Parse(r io.Reader) ([]*v1.Record, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	headers, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV headers: %w", err)
	}

	cols := make(map[string]int, len(headers))
	for i, h := range headers {
		cols[normalizeHeader(h)] = i
	}
	for _, name := range requiredColumns {
		if _, ok := cols[name]; !ok {
			return nil, fmt.Errorf("missing column %q", name)
		}
	}

	var records []*v1.Record
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", storage.ErrInvalidRecord, err)
		}
		line, _ := reader.FieldPos(0)

		rec, err := parseRow(row, cols)
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", storage.ErrInvalidRecord, line, err)
		}
		records = append(records, rec)
	}
	return records, nil
}

func parseRow(row []string, cols map[string]int) (*v1.Record, error) {
	get := func(name string) string {
		return strings.TrimSpace(row[cols[name]])
	}

	rec := &v1.Record{
		Rank:       get(v1.FieldRank),
		Discipline: get(v1.FieldDiscipline),
		Sex:        get(v1.FieldSex),
	}

	measures := []struct {
		field string
		dst   *int64
	}{
		{v1.FieldYrsSincePhD, &rec.YrsSincePhD},
		{v1.FieldYrsService, &rec.YrsService},
		{v1.FieldSalary, &rec.Salary},
	}
	for _, m := range measures {
		n, err := strconv.ParseInt(get(m.field), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%s: %q is not an integer", m.field, get(m.field))
		}
		*m.dst = n
	}

	if err := rec.Validate(); err != nil {
		return nil, err
	}
	return rec, nil
}

func normalizeHeader(h string) string {
	h = strings.ToLower(strings.TrimSpace(h))
	return strings.NewReplacer(".", "_", " ", "_", "-", "_").Replace(h)
}

var _ storage.RecordStore = (*Store)(nil)
