package service

import (
	"time"

	"sheet-gateway-backend/internal/features/keys/models"
	"sheet-gateway-backend/internal/utils/timestamp"
)

// Validation outcomes, also used as metric labels.
const (
	OutcomeValid        = "valid"
	OutcomeQuotaBlocked = "quota_blocked"
	OutcomeKeyBlocked   = "key_blocked"
	OutcomeUserBlocked  = "user_blocked"
	OutcomeNotFound     = "not_found"
)

// KeyStep is the key half of a validation.
type KeyStep struct {
	Key models.KeyRecord
	// Write is set when Key differs from the stored row.
	Write bool
	// Cascade is set when the user-key table must be consulted.
	Cascade bool
	Result  models.ValidationResult
	Outcome string
}

// UserStep is the user-key half of a validation.
type UserStep struct {
	User    models.UserKeyRecord
	Write   bool
	Result  models.ValidationResult
	Outcome string
}

// EvaluateKey applies one use of key by user at now. Blocked keys are left
// untouched. A key whose counter has reached its limit is blocked and the use
// is refused without cascading. Otherwise the use is recorded and the caller
// continues with EvaluateUser.
func EvaluateKey(key models.KeyRecord, user string, now time.Time) KeyStep {
	if key.IsBlocked() {
		return KeyStep{
			Key:     key,
			Result:  refusal(key.Message),
			Outcome: OutcomeKeyBlocked,
		}
	}

	if key.Counter >= key.Limit {
		key.Status = models.StatusBlocked
		return KeyStep{
			Key:     key,
			Write:   true,
			Result:  models.ValidationResult{Valid: false, Message: models.DefaultQuotaMessage},
			Outcome: OutcomeQuotaBlocked,
		}
	}

	key.Users = append([]string{}, key.Users...)
	key.AddUser(user)
	key.Counter++
	key.History = appendStamp(key.History, timestamp.Compact(key.LastUsed, now))
	key.LastUsed = timestamp.Date(now)

	return KeyStep{
		Key:     key,
		Write:   true,
		Cascade: true,
		Result:  models.ValidationResult{Valid: true},
		Outcome: OutcomeValid,
	}
}

// EvaluateUser records the use of key in the user's row. existing is nil for a
// user seen for the first time. A blocked user is refused and left untouched.
func EvaluateUser(existing *models.UserKeyRecord, user string, key models.KeyRecord) UserStep {
	if existing == nil {
		return UserStep{
			User: models.UserKeyRecord{
				User:    user,
				Keys:    []string{key.Key},
				Counter: 1,
				Status:  models.StatusActive,
			},
			Write:   true,
			Result:  models.ValidationResult{Valid: true},
			Outcome: OutcomeValid,
		}
	}

	rec := *existing
	if rec.IsBlocked() {
		return UserStep{
			User:    rec,
			Result:  refusal(rec.Message),
			Outcome: OutcomeUserBlocked,
		}
	}

	rec.Keys = append([]string{}, rec.Keys...)
	rec.AddKey(key.Key)
	rec.Counter++
	if key.Status == models.StatusBlocked {
		rec.Status, rec.Message = models.StatusBlocked, key.Message
	} else {
		rec.Status, rec.Message = models.StatusActive, ""
	}

	return UserStep{
		User:    rec,
		Write:   true,
		Result:  models.ValidationResult{Valid: true},
		Outcome: OutcomeValid,
	}
}

func refusal(message string) models.ValidationResult {
	if message == "" {
		message = models.DefaultBlockedMessage
	}
	return models.ValidationResult{Valid: false, Message: message}
}

// appendStamp adds a history entry, space separated.
func appendStamp(history, stamp string) string {
	if history == "" {
		return stamp
	}
	return history + " " + stamp
}
