package store

import (
	"context"
	"fmt"
	"strconv"
)

// Table describes one sheet tab: its name, the columns it spans and the header
// written to row 1.
type Table struct {
	Name    string
	Columns Span
	Header  []string
}

// NewTable builds a table spanning len(header) columns starting at column A.
func NewTable(name string, header ...string) Table {
	return Table{
		Name:    name,
		Columns: Span{StartCol: 0, EndCol: len(header) - 1, StartRow: 1},
		Header:  header,
	}
}

// Width is the number of columns of a full row.
func (t Table) Width() int {
	return t.Columns.Width()
}

// Span addresses the whole table, header included.
func (t Table) Span() string {
	return ColumnName(t.Columns.StartCol) + ":" + ColumnName(t.Columns.EndCol)
}

// RowSpan addresses data row i (zero based, header excluded).
func (t Table) RowSpan(i int) string {
	n := strconv.Itoa(i + 2)
	return ColumnName(t.Columns.StartCol) + n + ":" + ColumnName(t.Columns.EndCol) + n
}

// Load returns the data rows of the table, header excluded.
func (t Table) Load(ctx context.Context, s Store) ([][]string, error) {
	rows, err := s.GetRange(ctx, t.Name, t.Span())
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", t.Name, err)
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return rows[1:], nil
}

// Save overwrites the table with the header followed by rows.
func (t Table) Save(ctx context.Context, s Store, rows [][]string) error {
	full := make([][]string, 0, len(rows)+1)
	full = append(full, t.Header)
	full = append(full, rows...)
	if err := s.ReplaceRange(ctx, t.Name, t.Span(), full); err != nil {
		return fmt.Errorf("replace %s: %w", t.Name, err)
	}
	return nil
}

// SaveRow overwrites data row i in place. Row 0 is written together with the
// header, so the first row saved into an empty table leaves it well formed.
func (t Table) SaveRow(ctx context.Context, s Store, i int, row []string) error {
	span, rows := t.RowSpan(i), [][]string{row}
	if i == 0 && len(t.Header) > 0 {
		span = ColumnName(t.Columns.StartCol) + "1:" + ColumnName(t.Columns.EndCol) + "2"
		rows = [][]string{t.Header, row}
	}
	if err := s.ReplaceRange(ctx, t.Name, span, rows); err != nil {
		return fmt.Errorf("replace %s row %d: %w", t.Name, i+2, err)
	}
	return nil
}

// AppendRow adds row after the last populated row.
func (t Table) AppendRow(ctx context.Context, s Store, row []string) error {
	if err := s.AppendRows(ctx, t.Name, t.Span(), [][]string{row}); err != nil {
		return fmt.Errorf("append %s: %w", t.Name, err)
	}
	return nil
}

// Reset clears the table and writes the header back.
func (t Table) Reset(ctx context.Context, s Store) error {
	return t.Save(ctx, s, nil)
}
