package store

import (
	"fmt"
	"strconv"
	"strings"
)

// Sheet limits: columns run from A to ZZZ and a sheet holds at most ten
// million rows. Spans beyond them are rejected before any grid is touched.
const (
	MaxColumns = 18278
	MaxRows    = 10_000_000
)

// Span is a parsed A1 range. Columns are zero based and inclusive, rows are one
// based and inclusive; EndRow 0 means the range is open at the bottom.
type Span struct {
	StartCol int
	EndCol   int
	StartRow int
	EndRow   int
}

// ParseSpan parses "A:I", "A1:D10", "A2:I" and single cells such as "B2".
func ParseSpan(s string) (Span, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	if s == "" {
		return Span{}, fmt.Errorf("%w: empty", ErrInvalidSpan)
	}

	left, right, hasRight := strings.Cut(s, ":")
	if !hasRight {
		right = left
	}

	startCol, startRow, err := parseRef(left)
	if err != nil {
		return Span{}, err
	}
	endCol, endRow, err := parseRef(right)
	if err != nil {
		return Span{}, err
	}

	if startRow == 0 {
		startRow = 1
	}
	if endRow != 0 && endRow < startRow {
		return Span{}, fmt.Errorf("%w: %s ends before it starts", ErrInvalidSpan, s)
	}
	if endCol < startCol {
		return Span{}, fmt.Errorf("%w: %s has reversed columns", ErrInvalidSpan, s)
	}

	return Span{StartCol: startCol, EndCol: endCol, StartRow: startRow, EndRow: endRow}, nil
}

func parseRef(ref string) (col, row int, err error) {
	i := 0
	for i < len(ref) && ref[i] >= 'A' && ref[i] <= 'Z' {
		i++
	}
	if i == 0 {
		return 0, 0, fmt.Errorf("%w: %q has no column", ErrInvalidSpan, ref)
	}

	if i > 3 {
		return 0, 0, fmt.Errorf("%w: column of %q is past ZZZ", ErrInvalidSpan, ref)
	}
	col = 0
	for _, c := range ref[:i] {
		col = col*26 + int(c-'A'+1)
	}
	col--

	if i == len(ref) {
		return col, 0, nil
	}
	row, err = strconv.Atoi(ref[i:])
	if err != nil || row < 1 {
		return 0, 0, fmt.Errorf("%w: bad row in %q", ErrInvalidSpan, ref)
	}
	if row > MaxRows {
		return 0, 0, fmt.Errorf("%w: row of %q is past %d", ErrInvalidSpan, ref, MaxRows)
	}
	return col, row, nil
}

// Width is the number of columns covered by the span.
func (s Span) Width() int {
	return s.EndCol - s.StartCol + 1
}

// Bounded reports whether the span has a last row.
func (s Span) Bounded() bool {
	return s.EndRow != 0
}

func (s Span) String() string {
	left := ColumnName(s.StartCol) + strconv.Itoa(s.StartRow)
	right := ColumnName(s.EndCol)
	if s.Bounded() {
		right += strconv.Itoa(s.EndRow)
	}
	return left + ":" + right
}

// ColumnName converts a zero based column index to its letter form (0 -> A, 26 -> AA).
func ColumnName(col int) string {
	name := ""
	for col >= 0 {
		name = string(rune('A'+col%26)) + name
		col = col/26 - 1
	}
	return name
}
