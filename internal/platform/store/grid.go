package store

import "fmt"

// grid is the full cell matrix of one table, row 0 being sheet row 1.
type grid [][]string

func (g grid) read(sp Span) [][]string {
	last := len(g)
	if sp.Bounded() && sp.EndRow < last {
		last = sp.EndRow
	}

	var out [][]string
	for r := sp.StartRow - 1; r < last; r++ {
		row := g[r]
		cells := []string{}
		for c := sp.StartCol; c <= sp.EndCol && c < len(row); c++ {
			cells = append(cells, row[c])
		}
		out = append(out, trimCells(cells))
	}
	return trimRows(out)
}

func (g grid) clear(sp Span) grid {
	last := len(g)
	if sp.Bounded() && sp.EndRow < last {
		last = sp.EndRow
	}
	for r := sp.StartRow - 1; r < last; r++ {
		for c := sp.StartCol; c <= sp.EndCol && c < len(g[r]); c++ {
			g[r][c] = ""
		}
	}
	return g.compact()
}

func (g grid) replace(sp Span, rows [][]string) (grid, error) {
	if err := sp.Fits(rows); err != nil {
		return g, err
	}
	g = g.clear(sp)
	return g.write(sp.StartRow-1, sp.StartCol, rows).compact(), nil
}

func (g grid) append(sp Span, rows [][]string) (grid, error) {
	if err := (Span{StartCol: sp.StartCol, EndCol: sp.EndCol, StartRow: 1}).Fits(rows); err != nil {
		return g, err
	}

	next := sp.StartRow - 1
	for r := len(g) - 1; r >= sp.StartRow-1; r-- {
		if g.populated(r, sp) {
			next = r + 1
			break
		}
	}
	return g.write(next, sp.StartCol, rows).compact(), nil
}

func (g grid) populated(r int, sp Span) bool {
	for c := sp.StartCol; c <= sp.EndCol && c < len(g[r]); c++ {
		if g[r][c] != "" {
			return true
		}
	}
	return false
}

func (g grid) write(firstRow, firstCol int, rows [][]string) grid {
	for i, row := range rows {
		r := firstRow + i
		for len(g) <= r {
			g = append(g, []string{})
		}
		if need := firstCol + len(row); len(g[r]) < need {
			g[r] = Pad(g[r], need)
		}
		copy(g[r][firstCol:], row)
	}
	return g
}

// compact drops trailing empty cells and rows so reads mirror the backend.
func (g grid) compact() grid {
	for r := range g {
		g[r] = trimCells(g[r])
	}
	return grid(trimRows(g))
}

// Fits checks that rows can be written into the span.
func (s Span) Fits(rows [][]string) error {
	if s.Bounded() && len(rows) > s.EndRow-s.StartRow+1 {
		return fmt.Errorf("%w: %d rows into %s", ErrSpanOverflow, len(rows), s)
	}
	for _, row := range rows {
		if len(row) > s.Width() {
			return fmt.Errorf("%w: %d cells into %s", ErrSpanOverflow, len(row), s)
		}
	}
	return nil
}

// Clip cuts rows down to the span's width. rows is not modified.
func (s Span) Clip(rows [][]string) [][]string {
	width := s.Width()
	out := make([][]string, len(rows))
	for i, row := range rows {
		if len(row) > width {
			row = row[:width:width]
		}
		out[i] = row
	}
	return out
}

func trimCells(row []string) []string {
	n := len(row)
	for n > 0 && row[n-1] == "" {
		n--
	}
	return row[:n]
}

func trimRows(rows [][]string) [][]string {
	n := len(rows)
	for n > 0 && len(rows[n-1]) == 0 {
		n--
	}
	return rows[:n]
}
