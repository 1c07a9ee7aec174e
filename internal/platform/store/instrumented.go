package store

import (
	"context"
	"time"

	"sheet-gateway-backend/internal/observability"
)

// Instrumented reports every call of the wrapped Store to prometheus.
type Instrumented struct {
	next Store
}

func NewInstrumented(next Store) *Instrumented {
	return &Instrumented{next: next}
}

func (s *Instrumented) GetRange(ctx context.Context, table, span string) ([][]string, error) {
	start := time.Now()
	rows, err := s.next.GetRange(ctx, table, span)
	observability.ObserveStoreCall("get", table, err, time.Since(start))
	return rows, err
}

func (s *Instrumented) AppendRows(ctx context.Context, table, span string, rows [][]string) error {
	start := time.Now()
	err := s.next.AppendRows(ctx, table, span, rows)
	observability.ObserveStoreCall("append", table, err, time.Since(start))
	return err
}

func (s *Instrumented) ReplaceRange(ctx context.Context, table, span string, rows [][]string) error {
	start := time.Now()
	err := s.next.ReplaceRange(ctx, table, span, rows)
	observability.ObserveStoreCall("replace", table, err, time.Since(start))
	return err
}

func (s *Instrumented) ClearRange(ctx context.Context, table, span string) error {
	start := time.Now()
	err := s.next.ClearRange(ctx, table, span)
	observability.ObserveStoreCall("clear", table, err, time.Since(start))
	return err
}
