// Package store defines the cell-range contract the services use to talk to the
// spreadsheet backend, plus the in-process and redis implementations of it.
package store

import (
	"context"
	"errors"
)

var (
	ErrInvalidSpan  = errors.New("invalid span")
	ErrSpanOverflow = errors.New("rows do not fit into span")
	// ErrRejected marks backend refusals (bad credentials, missing sheet)
	// that retrying cannot fix.
	ErrRejected = errors.New("rejected by backend")
)

// Store reads and writes rectangular cell ranges of named tables. Spans use A1
// notation without the table name ("A:I", "A2:I", "B5:H5").
//
// GetRange returns a row-major grid; rows may be ragged and trailing empty cells
// and rows are dropped. AppendRows writes after the last populated row of the
// span's columns. ReplaceRange overwrites the whole addressed rectangle: cells
// not covered by rows are cleared.
type Store interface {
	GetRange(ctx context.Context, table, span string) ([][]string, error)
	AppendRows(ctx context.Context, table, span string, rows [][]string) error
	ReplaceRange(ctx context.Context, table, span string, rows [][]string) error
	ClearRange(ctx context.Context, table, span string) error
}

// Pad returns row extended with empty cells up to width. Longer rows are
// returned unchanged.
func Pad(row []string, width int) []string {
	if len(row) >= width {
		return row
	}
	out := make([]string, width)
	copy(out, row)
	return out
}

func cloneRows(rows [][]string) [][]string {
	out := make([][]string, len(rows))
	for i, row := range rows {
		out[i] = append([]string{}, row...)
	}
	return out
}
