package repository

import "context"

// MergeFunc computes the replacement data rows of a table from its current ones.
type MergeFunc func(rows [][]string) ([][]string, error)

type RecordRepository interface {
	// AppendBatch adds raw batch rows to the batch log.
	AppendBatch(ctx context.Context, rows [][]string) error

	UpdateActivity(ctx context.Context, fn MergeFunc) error
	ListActivity(ctx context.Context) ([][]string, error)
	ResetActivity(ctx context.Context) error

	UpdateDevices(ctx context.Context, fn MergeFunc) error
	ListDevices(ctx context.Context) ([][]string, error)
	ResetDevices(ctx context.Context) error

	// ReadRange and WriteRange address any readable table by name; an empty
	// name means the batch log.
	ReadRange(ctx context.Context, table, span string) ([][]string, error)
	WriteRange(ctx context.Context, table, span string, rows [][]string) error
}
