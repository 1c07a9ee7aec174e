package store

import (
	"context"
	"errors"
	"time"

	"github.com/cenkalti/backoff/v4"
)

// RetryOptions bounds every call made through Retrying.
type RetryOptions struct {
	// Timeout caps a single attempt.
	Timeout time.Duration
	// MaxRetries is the number of extra attempts for idempotent calls.
	MaxRetries uint64
	// InitialInterval is the first backoff delay; zero keeps the backoff default.
	InitialInterval time.Duration
}

// Retrying decorates a Store with per-call timeouts and exponential backoff.
// AppendRows is attempted once: replaying it could duplicate rows.
type Retrying struct {
	next Store
	opts RetryOptions
}

func NewRetrying(next Store, opts RetryOptions) *Retrying {
	if opts.Timeout <= 0 {
		opts.Timeout = 10 * time.Second
	}
	return &Retrying{next: next, opts: opts}
}

func (r *Retrying) GetRange(ctx context.Context, table, span string) ([][]string, error) {
	var rows [][]string
	err := r.retry(ctx, func(ctx context.Context) error {
		var err error
		rows, err = r.next.GetRange(ctx, table, span)
		return err
	})
	return rows, err
}

func (r *Retrying) AppendRows(ctx context.Context, table, span string, rows [][]string) error {
	return r.once(ctx, func(ctx context.Context) error {
		return r.next.AppendRows(ctx, table, span, rows)
	})
}

func (r *Retrying) ReplaceRange(ctx context.Context, table, span string, rows [][]string) error {
	return r.retry(ctx, func(ctx context.Context) error {
		return r.next.ReplaceRange(ctx, table, span, rows)
	})
}

func (r *Retrying) ClearRange(ctx context.Context, table, span string) error {
	return r.retry(ctx, func(ctx context.Context) error {
		return r.next.ClearRange(ctx, table, span)
	})
}

func (r *Retrying) once(ctx context.Context, op func(context.Context) error) error {
	callCtx, cancel := context.WithTimeout(ctx, r.opts.Timeout)
	defer cancel()
	return op(callCtx)
}

func (r *Retrying) retry(ctx context.Context, op func(context.Context) error) error {
	eb := backoff.NewExponentialBackOff()
	if r.opts.InitialInterval > 0 {
		eb.InitialInterval = r.opts.InitialInterval
	}
	b := backoff.WithContext(backoff.WithMaxRetries(eb, r.opts.MaxRetries), ctx)

	return backoff.Retry(func() error {
		err := r.once(ctx, op)
		if err != nil && permanent(ctx, err) {
			return backoff.Permanent(err)
		}
		return err
	}, b)
}

// permanent reports errors that another attempt cannot fix.
func permanent(ctx context.Context, err error) bool {
	if ctx.Err() != nil {
		return true
	}
	return errors.Is(err, ErrInvalidSpan) ||
		errors.Is(err, ErrSpanOverflow) ||
		errors.Is(err, ErrRejected)
}
