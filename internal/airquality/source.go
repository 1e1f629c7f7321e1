package airquality

import (
	"context"
	"errors"
)

var (
	// ErrDatasetNotFound is returned by a Source when the dataset does not exist.
	ErrDatasetNotFound = errors.New("dataset not found")

	// ErrInvalidSchema is returned when a dataset lacks a required column.
	ErrInvalidSchema = errors.New("dataset is missing required columns")
)

// Source abstracts where the station dataset is read from (local file,
// HTTP, S3, SQLite).
type Source interface {
	Name() string
	Load(ctx context.Context) (Table, error)
}

// Store is the contract the in-memory snapshot store must satisfy.
type Store interface {
	SaveDataset(ds Dataset)
	Current() (Dataset, error)
	RecordLoad(info DatasetInfo)
	History() []DatasetInfo
}
