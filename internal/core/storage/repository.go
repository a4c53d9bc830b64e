package storage

import (
	"context"
	"errors"

	v1 "github.com/aevon-lab/salary-crossfilter/internal/api/v1"
)

// ErrInvalidRecord is returned when a source row cannot be turned into a valid record.
var ErrInvalidRecord = errors.New("invalid record")

// RecordStore loads the dataset a dashboard index is built over.
type RecordStore interface {
	// LoadRecords returns every record in source order. The slice is owned by
	// the caller and treated as immutable from then on.
	LoadRecords(ctx context.Context) ([]*v1.Record, error)
}

// RecordWriter persists a dataset, replacing whatever was stored before.
type RecordWriter interface {
	SaveRecords(ctx context.Context, records []*v1.Record) error
}
