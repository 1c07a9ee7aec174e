// Package lock provides the per-table exclusive locks that guard every
// read-modify-write cycle against the store.
package lock

import (
	"context"
	"errors"
)

var ErrTimeout = errors.New("failed to acquire lock: timeout")

// Locker hands out exclusive locks by name. The returned release func must be
// called exactly once.
type Locker interface {
	Acquire(ctx context.Context, name string) (release func(), err error)
}
