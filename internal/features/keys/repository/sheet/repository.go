package sheet

import (
	"context"

	"sheet-gateway-backend/internal/features/keys/models"
	"sheet-gateway-backend/internal/features/keys/repository"
	"sheet-gateway-backend/internal/platform/store"
	"sheet-gateway-backend/internal/platform/tables"
)

type keyRepository struct {
	guard    *tables.Guard
	keys     store.Table
	userKeys store.Table
}

func NewKeyRepository(guard *tables.Guard, keysTable, userKeysTable string) repository.KeyRepository {
	return &keyRepository{
		guard:    guard,
		keys:     store.NewTable(keysTable, models.KeyHeader...),
		userKeys: store.NewTable(userKeysTable, models.UserKeyHeader...),
	}
}

func (r *keyRepository) Locked(ctx context.Context, fn func() error) error {
	return r.guard.Locked(ctx, []string{r.keys.Name, r.userKeys.Name}, fn)
}

func (r *keyRepository) LoadKeys(ctx context.Context) ([][]string, error) {
	return r.guard.Load(ctx, r.keys)
}

func (r *keyRepository) LoadUserKeys(ctx context.Context) ([][]string, error) {
	return r.guard.Load(ctx, r.userKeys)
}

func (r *keyRepository) SaveKey(ctx context.Context, index int, row []string) error {
	return r.save(ctx, r.keys, index, row)
}

func (r *keyRepository) SaveUserKey(ctx context.Context, index int, row []string) error {
	return r.save(ctx, r.userKeys, index, row)
}

func (r *keyRepository) save(ctx context.Context, t store.Table, index int, row []string) error {
	if err := t.SaveRow(ctx, r.guard.Store(), index, row); err != nil {
		return tables.StoreError(t.Name, "replace", err)
	}
	return nil
}

func (r *keyRepository) ResetKeys(ctx context.Context) error {
	return r.guard.Reset(ctx, r.keys)
}

func (r *keyRepository) ResetUserKeys(ctx context.Context) error {
	return r.guard.Reset(ctx, r.userKeys)
}
