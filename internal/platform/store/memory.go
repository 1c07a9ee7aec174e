package store

import (
	"context"
	"sync"
)

// MemoryStore keeps tables in process memory. It backs tests and the
// STORE_BACKEND=memory mode; contents are lost on restart.
type MemoryStore struct {
	mu     sync.RWMutex
	tables map[string]grid
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{tables: make(map[string]grid)}
}

// Seed replaces a whole table, starting at A1.
func (m *MemoryStore) Seed(table string, rows [][]string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tables[table] = grid(cloneRows(rows)).compact()
}

func (m *MemoryStore) GetRange(ctx context.Context, table, span string) ([][]string, error) {
	sp, err := ParseSpan(span)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.tables[table].read(sp), nil
}

func (m *MemoryStore) AppendRows(ctx context.Context, table, span string, rows [][]string) error {
	return m.mutate(ctx, table, span, func(g grid, sp Span) (grid, error) {
		return g.append(sp, cloneRows(rows))
	})
}

func (m *MemoryStore) ReplaceRange(ctx context.Context, table, span string, rows [][]string) error {
	return m.mutate(ctx, table, span, func(g grid, sp Span) (grid, error) {
		return g.replace(sp, cloneRows(rows))
	})
}

func (m *MemoryStore) ClearRange(ctx context.Context, table, span string) error {
	return m.mutate(ctx, table, span, func(g grid, sp Span) (grid, error) {
		return g.clear(sp), nil
	})
}

func (m *MemoryStore) mutate(ctx context.Context, table, span string, fn func(grid, Span) (grid, error)) error {
	sp, err := ParseSpan(span)
	if err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	g, err := fn(grid(cloneRows(m.tables[table])), sp)
	if err != nil {
		return err
	}
	m.tables[table] = g
	return nil
}
