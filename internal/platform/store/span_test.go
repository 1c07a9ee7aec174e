package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSpan(t *testing.T) {
	tests := []struct {
		in   string
		want Span
	}{
		{in: "A:I", want: Span{StartCol: 0, EndCol: 8, StartRow: 1}},
		{in: "A1:D10", want: Span{StartCol: 0, EndCol: 3, StartRow: 1, EndRow: 10}},
		{in: "A2:I", want: Span{StartCol: 0, EndCol: 8, StartRow: 2}},
		{in: "B2", want: Span{StartCol: 1, EndCol: 1, StartRow: 2, EndRow: 2}},
		{in: "a5:h5", want: Span{StartCol: 0, EndCol: 7, StartRow: 5, EndRow: 5}},
		{in: "AA1:AB3", want: Span{StartCol: 26, EndCol: 27, StartRow: 1, EndRow: 3}},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseSpan(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseSpan_Invalid(t *testing.T) {
	for _, in := range []string{"", "1:2", "A0", "B:A", "A5:B2", "A1:Bx", "XFDXFDXFD1", "AAAA1", "A10000001", "A1:B99999999999999999999"} {
		_, err := ParseSpan(in)
		assert.ErrorIs(t, err, ErrInvalidSpan, in)
	}
}

func TestSpanString(t *testing.T) {
	sp, err := ParseSpan("A2:I")
	require.NoError(t, err)
	assert.Equal(t, "A2:I", sp.String())

	sp, err = ParseSpan("C3:D4")
	require.NoError(t, err)
	assert.Equal(t, "C3:D4", sp.String())
}

func TestColumnName(t *testing.T) {
	assert.Equal(t, "A", ColumnName(0))
	assert.Equal(t, "I", ColumnName(8))
	assert.Equal(t, "Z", ColumnName(25))
	assert.Equal(t, "AA", ColumnName(26))
	assert.Equal(t, "AZ", ColumnName(51))
	assert.Equal(t, "BA", ColumnName(52))
}

func TestParseSpan_SheetLimits(t *testing.T) {
	sp, err := ParseSpan("ZZZ10000000")
	require.NoError(t, err)
	assert.Equal(t, MaxColumns-1, sp.StartCol)
	assert.Equal(t, MaxRows, sp.StartRow)
	assert.Equal(t, "ZZZ", ColumnName(MaxColumns-1))
}

func TestSpan_Clip(t *testing.T) {
	sp := Span{StartCol: 0, EndCol: 2, StartRow: 1}
	rows := [][]string{{"a", "b", "c", "d"}, {"e"}}

	got := sp.Clip(rows)

	assert.Equal(t, [][]string{{"a", "b", "c"}, {"e"}}, got)
	assert.Len(t, rows[0], 4)
	require.NoError(t, sp.Fits(got))
}
