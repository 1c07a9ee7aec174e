package repository

import "context"

// KeyRepository stores the key and user-key tables. Rows are returned raw, as
// stored, so callers can restore them verbatim.
type KeyRepository interface {
	// Locked runs fn holding the key table lock and then the user-key table
	// lock. Every multi-table operation on keys goes through it.
	Locked(ctx context.Context, fn func() error) error

	LoadKeys(ctx context.Context) ([][]string, error)
	LoadUserKeys(ctx context.Context) ([][]string, error)

	// SaveKey and SaveUserKey overwrite data row index; index equal to the row
	// count adds a row at the end.
	SaveKey(ctx context.Context, index int, row []string) error
	SaveUserKey(ctx context.Context, index int, row []string) error

	ResetKeys(ctx context.Context) error
	ResetUserKeys(ctx context.Context) error
}
