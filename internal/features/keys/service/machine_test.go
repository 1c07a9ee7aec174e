package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"sheet-gateway-backend/internal/features/keys/models"
)

var morning = time.Date(2025, time.March, 1, 10, 0, 0, 0, time.Local)

func TestEvaluateKey(t *testing.T) {
	tests := []struct {
		name    string
		key     models.KeyRecord
		want    models.KeyRecord
		write   bool
		cascade bool
		result  models.ValidationResult
		outcome string
	}{
		{
			name: "first use",
			key:  models.KeyRecord{Key: "k", Limit: 2, Status: "Active", Users: []string{}},
			want: models.KeyRecord{
				Key: "k", Counter: 1, Limit: 2, Status: "Active", Users: []string{"u"},
				LastUsed: "01-03-25", History: "01-03-25 10:00:00",
			},
			write: true, cascade: true,
			result:  models.ValidationResult{Valid: true},
			outcome: OutcomeValid,
		},
		{
			name: "same day use appends time only",
			key: models.KeyRecord{
				Key: "k", Counter: 1, Limit: 2, Status: "Active", Users: []string{"u"},
				LastUsed: "01-03-25", History: "01-03-25 09:00:00",
			},
			want: models.KeyRecord{
				Key: "k", Counter: 2, Limit: 2, Status: "Active", Users: []string{"u"},
				LastUsed: "01-03-25", History: "01-03-25 09:00:00 10:00:00",
			},
			write: true, cascade: true,
			result:  models.ValidationResult{Valid: true},
			outcome: OutcomeValid,
		},
		{
			name: "limit reached blocks without cascade",
			key:  models.KeyRecord{Key: "k", Counter: 2, Limit: 2, Status: "Active", Users: []string{"u"}},
			want: models.KeyRecord{Key: "k", Counter: 2, Limit: 2, Status: "Blocked", Users: []string{"u"}},
			write: true,
			result:  models.ValidationResult{Valid: false, Message: models.DefaultQuotaMessage},
			outcome: OutcomeQuotaBlocked,
		},
		{
			name:    "manual block with message",
			key:     models.KeyRecord{Key: "k", Limit: 9, Status: "blocked by ops", Message: "Ask support"},
			want:    models.KeyRecord{Key: "k", Limit: 9, Status: "blocked by ops", Message: "Ask support"},
			result:  models.ValidationResult{Valid: false, Message: "Ask support"},
			outcome: OutcomeKeyBlocked,
		},
		{
			name:    "manual block without message",
			key:     models.KeyRecord{Key: "k", Limit: 9, Status: "BLOCKED"},
			want:    models.KeyRecord{Key: "k", Limit: 9, Status: "BLOCKED"},
			result:  models.ValidationResult{Valid: false, Message: models.DefaultBlockedMessage},
			outcome: OutcomeKeyBlocked,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			step := EvaluateKey(tt.key, "u", morning)

			assert.Equal(t, tt.want, step.Key)
			assert.Equal(t, tt.write, step.Write)
			assert.Equal(t, tt.cascade, step.Cascade)
			assert.Equal(t, tt.result, step.Result)
			assert.Equal(t, tt.outcome, step.Outcome)
		})
	}
}

func TestEvaluateKey_DoesNotShareUsers(t *testing.T) {
	users := make([]string, 1, 4)
	users[0] = "a"
	key := models.KeyRecord{Key: "k", Limit: 5, Status: "Active", Users: users}

	step := EvaluateKey(key, "b", morning)

	assert.Equal(t, []string{"a", "b"}, step.Key.Users)
	assert.Equal(t, []string{"a"}, key.Users)
	assert.Equal(t, "a", users[:2][0])
	assert.Equal(t, "", users[:2][1])
}

func TestEvaluateUser(t *testing.T) {
	key := models.KeyRecord{Key: "k2", Status: "Active"}

	t.Run("new user", func(t *testing.T) {
		step := EvaluateUser(nil, "u", key)

		assert.True(t, step.Write)
		assert.Equal(t, models.UserKeyRecord{User: "u", Keys: []string{"k2"}, Counter: 1, Status: "Active"}, step.User)
		assert.Equal(t, models.ValidationResult{Valid: true}, step.Result)
	})

	t.Run("known user", func(t *testing.T) {
		existing := &models.UserKeyRecord{User: "u", Keys: []string{"k1"}, Counter: 3, Status: "Active", Message: "stale"}

		step := EvaluateUser(existing, "u", key)

		assert.True(t, step.Write)
		assert.Equal(t, models.UserKeyRecord{User: "u", Keys: []string{"k1", "k2"}, Counter: 4, Status: "Active"}, step.User)
		assert.Equal(t, []string{"k1"}, existing.Keys)
	})

	t.Run("key already listed", func(t *testing.T) {
		existing := &models.UserKeyRecord{User: "u", Keys: []string{"k2"}, Counter: 1, Status: "Active"}

		step := EvaluateUser(existing, "u", key)

		assert.Equal(t, []string{"k2"}, step.User.Keys)
		assert.Equal(t, 2, step.User.Counter)
	})

	t.Run("blocked user", func(t *testing.T) {
		existing := &models.UserKeyRecord{User: "u", Keys: []string{"k1"}, Counter: 3, Status: "Blocked", Message: "Banned"}

		step := EvaluateUser(existing, "u", key)

		assert.False(t, step.Write)
		assert.Equal(t, *existing, step.User)
		assert.Equal(t, models.ValidationResult{Valid: false, Message: "Banned"}, step.Result)
		assert.Equal(t, OutcomeUserBlocked, step.Outcome)
	})

	t.Run("key carrying the block status", func(t *testing.T) {
		blocked := models.KeyRecord{Key: "k2", Status: models.StatusBlocked, Message: "Quota"}
		existing := &models.UserKeyRecord{User: "u", Counter: 1, Status: "Active"}

		step := EvaluateUser(existing, "u", blocked)

		assert.Equal(t, "Blocked", step.User.Status)
		assert.Equal(t, "Quota", step.User.Message)
	})
}
