package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore_GetRange(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	s.Seed("t", [][]string{
		{"a1", "b1", "c1", "d1", "e1"},
		{"a2", "b2"},
		{},
		{"a4", "b4", "c4", "", ""},
	})

	rows, err := s.GetRange(ctx, "t", "A1:D10")
	require.NoError(t, err)
	assert.Equal(t, [][]string{
		{"a1", "b1", "c1", "d1"},
		{"a2", "b2"},
		{},
		{"a4", "b4", "c4"},
	}, rows)

	rows, err = s.GetRange(ctx, "t", "C2:D")
	require.NoError(t, err)
	assert.Equal(t, [][]string{{}, {}, {"c4"}}, rows)

	rows, err = s.GetRange(ctx, "missing", "A:B")
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestMemoryStore_AppendRows(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	s.Seed("t", [][]string{{"h1", "h2"}, {"x", "y"}})

	require.NoError(t, s.AppendRows(ctx, "t", "A:B", [][]string{{"1", "2"}, {"3"}}))

	rows, err := s.GetRange(ctx, "t", "A:B")
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"h1", "h2"}, {"x", "y"}, {"1", "2"}, {"3"}}, rows)

	err = s.AppendRows(ctx, "t", "A:B", [][]string{{"1", "2", "3"}})
	assert.ErrorIs(t, err, ErrSpanOverflow)
}

func TestMemoryStore_AppendToEmptyTable(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	require.NoError(t, s.AppendRows(ctx, "t", "A1", [][]string{{"only"}}))

	rows, err := s.GetRange(ctx, "t", "A:A")
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"only"}}, rows)
}

func TestMemoryStore_ReplaceRangeClearsRectangle(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	s.Seed("t", [][]string{
		{"h1", "h2", "keep"},
		{"a", "b", "keep"},
		{"c", "d", "keep"},
	})

	require.NoError(t, s.ReplaceRange(ctx, "t", "A:B", [][]string{{"H1", "H2"}}))

	rows, err := s.GetRange(ctx, "t", "A:C")
	require.NoError(t, err)
	assert.Equal(t, [][]string{
		{"H1", "H2", "keep"},
		{"", "", "keep"},
		{"", "", "keep"},
	}, rows)
}

func TestMemoryStore_ReplaceSingleRow(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	s.Seed("t", [][]string{{"h"}, {"a", "1"}, {"b", "2"}})

	require.NoError(t, s.ReplaceRange(ctx, "t", "A3:B3", [][]string{{"b", "3"}}))

	rows, err := s.GetRange(ctx, "t", "A:B")
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"h"}, {"a", "1"}, {"b", "3"}}, rows)

	err = s.ReplaceRange(ctx, "t", "A3:B3", [][]string{{"x"}, {"y"}})
	assert.ErrorIs(t, err, ErrSpanOverflow)
}

func TestMemoryStore_UpdateSingleCell(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	s.Seed("t", [][]string{{"a", "b"}, {"c", "d"}})

	require.NoError(t, s.ReplaceRange(ctx, "t", "B2", [][]string{{"new"}}))

	rows, err := s.GetRange(ctx, "t", "A1:D10")
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"a", "b"}, {"c", "new"}}, rows)
}

func TestMemoryStore_ClearRange(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	s.Seed("t", [][]string{{"h"}, {"a"}, {"b"}})

	require.NoError(t, s.ClearRange(ctx, "t", "A2:A"))

	rows, err := s.GetRange(ctx, "t", "A:A")
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"h"}}, rows)
}

func TestMemoryStore_ReadsAreCopies(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	s.Seed("t", [][]string{{"a"}})

	rows, err := s.GetRange(ctx, "t", "A:A")
	require.NoError(t, err)
	rows[0][0] = "mutated"

	rows, err = s.GetRange(ctx, "t", "A:A")
	require.NoError(t, err)
	assert.Equal(t, "a", rows[0][0])
}

func TestMemoryStore_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewMemoryStore().GetRange(ctx, "t", "A:A")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestTable_LoadSaveRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	table := NewTable("Feuille 3", "Device", "Users")

	rows, err := table.Load(ctx, s)
	require.NoError(t, err)
	assert.Empty(t, rows)

	want := [][]string{{"dev-1", "u1, u2"}, {"dev-2", "u3"}}
	require.NoError(t, table.Save(ctx, s, want))

	rows, err = table.Load(ctx, s)
	require.NoError(t, err)
	assert.Equal(t, want, rows)

	raw, err := s.GetRange(ctx, "Feuille 3", "A:B")
	require.NoError(t, err)
	assert.Equal(t, []string{"Device", "Users"}, raw[0])
}

func TestTable_SaveRowAndReset(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	table := NewTable("keys", "Key", "Counter")
	require.NoError(t, table.Save(ctx, s, [][]string{{"k1", "1"}, {"k2", "2"}}))

	assert.Equal(t, "A3:B3", table.RowSpan(1))
	require.NoError(t, table.SaveRow(ctx, s, 1, []string{"k2", "3"}))

	rows, err := table.Load(ctx, s)
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"k1", "1"}, {"k2", "3"}}, rows)

	require.NoError(t, table.Reset(ctx, s))
	rows, err = table.Load(ctx, s)
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestTable_SaveFirstRowWritesHeader(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	table := NewTable("user-keys", "User", "Keys")

	require.NoError(t, table.SaveRow(ctx, s, 0, []string{"alice", "k1"}))

	raw, err := s.GetRange(ctx, "user-keys", "A:B")
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"User", "Keys"}, {"alice", "k1"}}, raw)
}

func TestPad(t *testing.T) {
	assert.Equal(t, []string{"a", "", ""}, Pad([]string{"a"}, 3))
	assert.Equal(t, []string{"a", "b"}, Pad([]string{"a", "b"}, 1))
}
