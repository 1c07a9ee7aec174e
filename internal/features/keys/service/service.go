package service

import (
	"context"
	"strings"
	"time"
	"unicode"

	"github.com/rs/zerolog"

	"sheet-gateway-backend/internal/common/errors"
	"sheet-gateway-backend/internal/common/logger"
	"sheet-gateway-backend/internal/features/keys/models"
	"sheet-gateway-backend/internal/features/keys/repository"
	"sheet-gateway-backend/internal/observability"
)

type KeyService interface {
	// Validate checks a key presented by a user and records the use.
	Validate(ctx context.Context, key, user string) (*models.ValidationResult, error)

	ListKeys(ctx context.Context) ([]models.KeyRecord, error)
	ListUserKeys(ctx context.Context) ([]models.UserKeyRecord, error)
	ResetKeys(ctx context.Context) error
	ResetUserKeys(ctx context.Context) error

	CreateKey(ctx context.Context, key string, limit int) (*models.KeyRecord, error)
	SetKeyStatus(ctx context.Context, key, status, message string) (*models.KeyRecord, error)
}

type keyService struct {
	repo repository.KeyRepository
	now  func() time.Time
}

// NewKeyService builds the service. now defaults to time.Now.
func NewKeyService(repo repository.KeyRepository, now func() time.Time) KeyService {
	if now == nil {
		now = time.Now
	}
	return &keyService{repo: repo, now: now}
}

func (s *keyService) Validate(ctx context.Context, key, user string) (*models.ValidationResult, error) {
	if err := checkID("key", key); err != nil {
		return nil, err
	}
	if err := checkID("user", user); err != nil {
		return nil, err
	}

	log := logger.Ctx(ctx).With().Str("key", key).Str("user", user).Logger()

	var result models.ValidationResult
	outcome := OutcomeNotFound
	err := s.repo.Locked(ctx, func() error {
		var err error
		result, outcome, err = s.validateLocked(ctx, &log, key, user)
		return err
	})
	if err != nil {
		if appErr, ok := errors.AsAppError(err); ok && appErr.IsNotFound() {
			observability.RecordValidation(OutcomeNotFound)
		}
		return nil, err
	}

	observability.RecordValidation(outcome)
	return &result, nil
}

// validateLocked runs with both tables locked. The key row is written first
// and the user-key row second; when the second write fails the key row is
// put back as it was, so a failed call leaves both tables unchanged.
func (s *keyService) validateLocked(ctx context.Context, log *zerolog.Logger, key, user string) (models.ValidationResult, string, error) {
	keyRows, err := s.repo.LoadKeys(ctx)
	if err != nil {
		return models.ValidationResult{}, "", err
	}
	ki := findRow(keyRows, key)
	if ki < 0 {
		return models.ValidationResult{}, "", errors.NewKeyNotFoundError(key)
	}
	stored := keyRows[ki]

	step := EvaluateKey(models.ParseKeyRecord(stored), user, s.now())
	if !step.Cascade {
		if step.Write {
			if err := s.repo.SaveKey(ctx, ki, step.Key.Row()); err != nil {
				return models.ValidationResult{}, "", err
			}
			log.Warn().Int("counter", step.Key.Counter).Int("limit", step.Key.Limit).Msg("Key blocked on quota")
		} else {
			log.Info().Msg("Blocked key presented")
		}
		return step.Result, step.Outcome, nil
	}

	userRows, err := s.repo.LoadUserKeys(ctx)
	if err != nil {
		return models.ValidationResult{}, "", err
	}
	ui := findRow(userRows, user)
	var existing *models.UserKeyRecord
	if ui >= 0 {
		rec := models.ParseUserKeyRecord(userRows[ui])
		existing = &rec
	} else {
		ui = len(userRows)
	}
	userStep := EvaluateUser(existing, user, step.Key)

	if err := s.repo.SaveKey(ctx, ki, step.Key.Row()); err != nil {
		return models.ValidationResult{}, "", err
	}

	if !userStep.Write {
		log.Info().Msg("Blocked user presented a key")
		return userStep.Result, userStep.Outcome, nil
	}

	if err := s.repo.SaveUserKey(ctx, ui, userStep.User.Row()); err != nil {
		if rbErr := s.repo.SaveKey(ctx, ki, stored); rbErr != nil {
			log.Error().Err(rbErr).AnErr("cause", err).Msg("Failed to restore key row after user-key write failed")
		} else {
			log.Warn().Err(err).Msg("User-key write failed, key row restored")
		}
		return models.ValidationResult{}, "", err
	}

	log.Debug().Int("counter", step.Key.Counter).Int("limit", step.Key.Limit).Msg("Key validated")
	return userStep.Result, userStep.Outcome, nil
}

func (s *keyService) ListKeys(ctx context.Context) ([]models.KeyRecord, error) {
	rows, err := s.repo.LoadKeys(ctx)
	if err != nil {
		return nil, err
	}

	records := make([]models.KeyRecord, 0, len(rows))
	for _, row := range rows {
		if len(row) == 0 {
			continue
		}
		records = append(records, models.ParseKeyRecord(row))
	}
	return records, nil
}

func (s *keyService) ListUserKeys(ctx context.Context) ([]models.UserKeyRecord, error) {
	rows, err := s.repo.LoadUserKeys(ctx)
	if err != nil {
		return nil, err
	}

	records := make([]models.UserKeyRecord, 0, len(rows))
	for _, row := range rows {
		if len(row) == 0 {
			continue
		}
		records = append(records, models.ParseUserKeyRecord(row))
	}
	return records, nil
}

func (s *keyService) ResetKeys(ctx context.Context) error {
	if err := s.repo.ResetKeys(ctx); err != nil {
		return err
	}
	logger.Ctx(ctx).Warn().Msg("Key table reset")
	return nil
}

func (s *keyService) ResetUserKeys(ctx context.Context) error {
	if err := s.repo.ResetUserKeys(ctx); err != nil {
		return err
	}
	logger.Ctx(ctx).Warn().Msg("User-key table reset")
	return nil
}

func (s *keyService) CreateKey(ctx context.Context, key string, limit int) (*models.KeyRecord, error) {
	if err := checkID("key", key); err != nil {
		return nil, err
	}
	if limit < 0 {
		return nil, errors.NewValidationError("limit", "limit must not be negative")
	}

	rec := models.KeyRecord{Key: key, Limit: limit, Status: models.StatusActive, Users: []string{}}
	err := s.repo.Locked(ctx, func() error {
		rows, err := s.repo.LoadKeys(ctx)
		if err != nil {
			return err
		}
		if findRow(rows, key) >= 0 {
			return errors.NewConflictError("key", "key already exists").WithDetail("key", key)
		}
		return s.repo.SaveKey(ctx, len(rows), rec.Row())
	})
	if err != nil {
		return nil, err
	}

	logger.Ctx(ctx).Info().Str("key", key).Int("limit", limit).Msg("Key created")
	return &rec, nil
}

func (s *keyService) SetKeyStatus(ctx context.Context, key, status, message string) (*models.KeyRecord, error) {
	switch status {
	case models.StatusActive, models.StatusBlocked:
	default:
		return nil, errors.NewValidationError("status", "status must be Active or Blocked")
	}

	var rec models.KeyRecord
	err := s.repo.Locked(ctx, func() error {
		rows, err := s.repo.LoadKeys(ctx)
		if err != nil {
			return err
		}
		i := findRow(rows, key)
		if i < 0 {
			return errors.NewKeyNotFoundError(key)
		}

		rec = models.ParseKeyRecord(rows[i])
		rec.Status = status
		rec.Message = message
		return s.repo.SaveKey(ctx, i, rec.Row())
	})
	if err != nil {
		return nil, err
	}

	logger.Ctx(ctx).Info().Str("key", key).Str("status", status).Msg("Key status changed")
	return &rec, nil
}

// findRow returns the index of the first row keyed by id, or -1.
func findRow(rows [][]string, id string) int {
	for i, row := range rows {
		if len(row) > 0 && row[0] == id {
			return i
		}
	}
	return -1
}

// checkID rejects empty ids and ids containing whitespace. Key and user lists
// are stored space separated, so such an id would not read back as one entry.
func checkID(field, id string) error {
	if id == "" {
		return errors.NewValidationError(field, field+" is required")
	}
	if strings.IndexFunc(id, unicode.IsSpace) >= 0 {
		return errors.NewValidationError(field, field+" must not contain whitespace")
	}
	return nil
}
