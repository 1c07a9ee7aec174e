package service

import (
	"context"
	"time"

	"sheet-gateway-backend/internal/common/errors"
	"sheet-gateway-backend/internal/common/logger"
	"sheet-gateway-backend/internal/features/records/models"
	"sheet-gateway-backend/internal/features/records/repository"
	"sheet-gateway-backend/internal/observability"
)

// DefaultReadRange is read when a range read names no range.
const DefaultReadRange = "A1:D10"

type RecordService interface {
	// Write appends a batch to the batch log and merges it into the activity
	// and device tables.
	Write(ctx context.Context, rows [][]string) (*models.WriteResult, error)

	ReadRange(ctx context.Context, table, span string) ([][]string, error)
	UpdateRange(ctx context.Context, table, span string, rows [][]string) error

	ListActivity(ctx context.Context) ([]models.ActivityRecord, error)
	ResetActivity(ctx context.Context) error
	ListDevices(ctx context.Context) ([]models.DeviceRecord, error)
	ResetDevices(ctx context.Context) error
}

type recordService struct {
	repo repository.RecordRepository
	now  func() time.Time
}

// NewRecordService builds the service. now defaults to time.Now.
func NewRecordService(repo repository.RecordRepository, now func() time.Time) RecordService {
	if now == nil {
		now = time.Now
	}
	return &recordService{repo: repo, now: now}
}

func (s *recordService) Write(ctx context.Context, rows [][]string) (*models.WriteResult, error) {
	if len(rows) == 0 {
		return nil, errors.NewValidationError("values", "at least one row is required")
	}

	log := logger.Ctx(ctx)
	now := s.now()

	if err := s.repo.AppendBatch(ctx, rows); err != nil {
		return nil, atStage(err, "batch")
	}

	var stats ActivityStats
	err := s.repo.UpdateActivity(ctx, func(existing [][]string) ([][]string, error) {
		var merged [][]string
		merged, stats = MergeActivity(existing, rows, now)
		return merged, nil
	})
	if err != nil {
		log.Error().Err(err).Int("rows", len(rows)).Msg("Activity merge failed after batch was logged")
		return nil, atStage(err, "activity", "batch")
	}

	var added int
	err = s.repo.UpdateDevices(ctx, func(existing [][]string) ([][]string, error) {
		var merged [][]string
		merged, added = MergeDevices(existing, rows)
		return merged, nil
	})
	if err != nil {
		log.Error().Err(err).Int("rows", len(rows)).Msg("Device merge failed after activity was updated")
		return nil, atStage(err, "devices", "batch", "activity")
	}

	observability.RecordBatch(len(rows)-stats.Skipped, stats.Skipped)
	log.Info().
		Int("rows", len(rows)).
		Int("users_updated", stats.Updated).
		Int("users_created", stats.Created).
		Int("skipped", stats.Skipped).
		Int("devices_added", added).
		Msg("Batch merged")

	return &models.WriteResult{
		Message:      "Data appended",
		Appended:     len(rows),
		Skipped:      stats.Skipped,
		UsersUpdated: stats.Updated,
		UsersCreated: stats.Created,
		DevicesAdded: added,
	}, nil
}

func (s *recordService) ReadRange(ctx context.Context, table, span string) ([][]string, error) {
	if span == "" {
		span = DefaultReadRange
	}
	rows, err := s.repo.ReadRange(ctx, table, span)
	if err != nil {
		return nil, err
	}
	if rows == nil {
		rows = [][]string{}
	}
	return rows, nil
}

func (s *recordService) UpdateRange(ctx context.Context, table, span string, rows [][]string) error {
	if span == "" {
		return errors.NewValidationError("range", "range is required")
	}
	if len(rows) == 0 {
		return errors.NewValidationError("values", "at least one row is required")
	}

	if err := s.repo.WriteRange(ctx, table, span, rows); err != nil {
		return err
	}
	logger.Ctx(ctx).Info().Str("table", table).Str("range", span).Int("rows", len(rows)).Msg("Range updated")
	return nil
}

func (s *recordService) ListActivity(ctx context.Context) ([]models.ActivityRecord, error) {
	rows, err := s.repo.ListActivity(ctx)
	if err != nil {
		return nil, err
	}

	records := make([]models.ActivityRecord, 0, len(rows))
	for _, row := range rows {
		if len(row) == 0 {
			continue
		}
		records = append(records, models.ParseActivityRecord(row))
	}
	return records, nil
}

func (s *recordService) ResetActivity(ctx context.Context) error {
	if err := s.repo.ResetActivity(ctx); err != nil {
		return err
	}
	logger.Ctx(ctx).Warn().Msg("Activity table reset")
	return nil
}

func (s *recordService) ListDevices(ctx context.Context) ([]models.DeviceRecord, error) {
	rows, err := s.repo.ListDevices(ctx)
	if err != nil {
		return nil, err
	}

	records := make([]models.DeviceRecord, 0, len(rows))
	for _, row := range rows {
		if len(row) == 0 {
			continue
		}
		records = append(records, models.ParseDeviceRecord(row))
	}
	return records, nil
}

func (s *recordService) ResetDevices(ctx context.Context) error {
	if err := s.repo.ResetDevices(ctx); err != nil {
		return err
	}
	logger.Ctx(ctx).Warn().Msg("Device table reset")
	return nil
}

// atStage tags a write failure with the step of the batch that failed and the
// steps already committed. Replaying the whole batch would apply those twice.
func atStage(err error, stage string, committed ...string) error {
	if committed == nil {
		committed = []string{}
	}
	appErr, ok := errors.AsAppError(err)
	if !ok {
		appErr = errors.Wrap(err, errors.ErrCodeInternal, "batch write failed")
	}
	return appErr.WithDetail("stage", stage).WithDetail("committed", committed)
}
