// Package tables runs read-modify-write cycles on store tables while holding
// the table's exclusive lock, and translates store failures into AppErrors.
package tables

import (
	"context"
	stderrors "errors"
	"time"

	"sheet-gateway-backend/internal/common/errors"
	"sheet-gateway-backend/internal/observability"
	"sheet-gateway-backend/internal/platform/lock"
	"sheet-gateway-backend/internal/platform/store"
)

// Guard pairs a Store with the Locker guarding its tables. Locks are named
// after the table they protect.
type Guard struct {
	store  store.Store
	locker lock.Locker
}

func NewGuard(s store.Store, l lock.Locker) *Guard {
	return &Guard{store: s, locker: l}
}

func (g *Guard) Store() store.Store {
	return g.store
}

// Locked runs fn holding the locks of all named tables, acquired in the given
// order and released in reverse on every exit path. Callers touching several
// tables must always pass them in the same order.
func (g *Guard) Locked(ctx context.Context, names []string, fn func() error) error {
	for _, name := range names {
		start := time.Now()
		release, err := g.locker.Acquire(ctx, name)
		observability.ObserveLockWait(time.Since(start))
		if err != nil {
			return lockError(name, err)
		}
		defer release()
	}
	return fn()
}

// Load reads the data rows of t without locking.
func (g *Guard) Load(ctx context.Context, t store.Table) ([][]string, error) {
	rows, err := t.Load(ctx, g.store)
	if err != nil {
		return nil, StoreError(t.Name, "get", err)
	}
	return rows, nil
}

// Update loads t, passes its data rows to fn and saves what fn returns as the
// new table content. Nothing is written when fn fails.
func (g *Guard) Update(ctx context.Context, t store.Table, fn func(rows [][]string) ([][]string, error)) error {
	return g.Locked(ctx, []string{t.Name}, func() error {
		rows, err := g.Load(ctx, t)
		if err != nil {
			return err
		}

		next, err := fn(rows)
		if err != nil {
			return err
		}

		if err := t.Save(ctx, g.store, next); err != nil {
			return StoreError(t.Name, "replace", err)
		}
		return nil
	})
}

// Reset clears t down to its header row.
func (g *Guard) Reset(ctx context.Context, t store.Table) error {
	return g.Locked(ctx, []string{t.Name}, func() error {
		if err := t.Reset(ctx, g.store); err != nil {
			return StoreError(t.Name, "reset", err)
		}
		return nil
	})
}

// Append adds rows after the last populated row of t.
func (g *Guard) Append(ctx context.Context, t store.Table, rows [][]string) error {
	return g.Locked(ctx, []string{t.Name}, func() error {
		if err := g.store.AppendRows(ctx, t.Name, t.Span(), rows); err != nil {
			return StoreError(t.Name, "append", err)
		}
		return nil
	})
}

// ReadRange returns an arbitrary range of a table.
func (g *Guard) ReadRange(ctx context.Context, table, span string) ([][]string, error) {
	rows, err := g.store.GetRange(ctx, table, span)
	if err != nil {
		return nil, StoreError(table, "get", err)
	}
	return rows, nil
}

// WriteRange overwrites an arbitrary range of a table under its lock.
func (g *Guard) WriteRange(ctx context.Context, table, span string, rows [][]string) error {
	return g.Locked(ctx, []string{table}, func() error {
		if err := g.store.ReplaceRange(ctx, table, span, rows); err != nil {
			return StoreError(table, "replace", err)
		}
		return nil
	})
}

// StoreError converts a store failure into an AppError. Caller mistakes such as
// a malformed span become 400s; everything else is an upstream failure.
func StoreError(table, op string, err error) error {
	if err == nil {
		return nil
	}
	if _, ok := errors.AsAppError(err); ok {
		return err
	}
	if stderrors.Is(err, store.ErrInvalidSpan) || stderrors.Is(err, store.ErrSpanOverflow) {
		return errors.NewBadRequestError(err.Error()).WithDetail("table", table)
	}
	return errors.NewUpstreamStoreError(op+" "+table, err).WithDetail("table", table)
}

func lockError(table string, err error) error {
	if stderrors.Is(err, lock.ErrTimeout) {
		return errors.NewLockTimeoutError(table, err)
	}
	return errors.NewUpstreamStoreError("lock "+table, err).WithDetail("table", table)
}
