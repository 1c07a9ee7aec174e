package sheet

import (
	"context"

	"sheet-gateway-backend/internal/common/errors"
	"sheet-gateway-backend/internal/features/records/models"
	"sheet-gateway-backend/internal/features/records/repository"
	"sheet-gateway-backend/internal/platform/store"
	"sheet-gateway-backend/internal/platform/tables"
)

// batchColumns is the column range of the raw batch log. Batch rows are stored
// as sent up to its last column; cells past it are dropped.
var batchColumns = store.Span{StartCol: 0, EndCol: 25, StartRow: 1}

// TableNames are the sheet tabs the records feature works on. Passthrough
// lists further tabs that raw range reads and writes may address.
type TableNames struct {
	Batch       string
	Activity    string
	Devices     string
	Passthrough []string
}

type recordRepository struct {
	guard    *tables.Guard
	batch    store.Table
	activity store.Table
	devices  store.Table
	known    map[string]bool
}

func NewRecordRepository(guard *tables.Guard, names TableNames) repository.RecordRepository {
	known := map[string]bool{
		names.Batch:    true,
		names.Activity: true,
		names.Devices:  true,
	}
	for _, name := range names.Passthrough {
		known[name] = true
	}

	return &recordRepository{
		guard:    guard,
		batch:    store.Table{Name: names.Batch, Columns: batchColumns},
		activity: store.NewTable(names.Activity, models.ActivityHeader...),
		devices:  store.NewTable(names.Devices, models.DeviceHeader...),
		known:    known,
	}
}

func (r *recordRepository) AppendBatch(ctx context.Context, rows [][]string) error {
	return r.guard.Append(ctx, r.batch, r.batch.Columns.Clip(rows))
}

func (r *recordRepository) UpdateActivity(ctx context.Context, fn repository.MergeFunc) error {
	return r.guard.Update(ctx, r.activity, fn)
}

func (r *recordRepository) ListActivity(ctx context.Context) ([][]string, error) {
	return r.guard.Load(ctx, r.activity)
}

func (r *recordRepository) ResetActivity(ctx context.Context) error {
	return r.guard.Reset(ctx, r.activity)
}

func (r *recordRepository) UpdateDevices(ctx context.Context, fn repository.MergeFunc) error {
	return r.guard.Update(ctx, r.devices, fn)
}

func (r *recordRepository) ListDevices(ctx context.Context) ([][]string, error) {
	return r.guard.Load(ctx, r.devices)
}

func (r *recordRepository) ResetDevices(ctx context.Context) error {
	return r.guard.Reset(ctx, r.devices)
}

func (r *recordRepository) ReadRange(ctx context.Context, table, span string) ([][]string, error) {
	name, err := r.resolve(table)
	if err != nil {
		return nil, err
	}
	return r.guard.ReadRange(ctx, name, span)
}

func (r *recordRepository) WriteRange(ctx context.Context, table, span string, rows [][]string) error {
	name, err := r.resolve(table)
	if err != nil {
		return err
	}
	return r.guard.WriteRange(ctx, name, span, rows)
}

func (r *recordRepository) resolve(table string) (string, error) {
	if table == "" {
		return r.batch.Name, nil
	}
	if !r.known[table] {
		return "", errors.NewNotFoundError("table", table)
	}
	return table, nil
}
