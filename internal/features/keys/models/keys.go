package models

import (
	"strconv"
	"strings"

	"sheet-gateway-backend/internal/platform/store"
)

const (
	StatusActive  = "Active"
	StatusBlocked = "Blocked"

	// DefaultQuotaMessage is returned when a validation exhausts the key's limit.
	DefaultQuotaMessage = "Key usage limit reached"
	// DefaultBlockedMessage is returned for blocked keys and users that carry
	// no message of their own.
	DefaultBlockedMessage = "This key has been blocked"

	listSeparator = " "
)

var (
	KeyHeader     = []string{"Key", "Counter", "Limit", "Status", "Users", "LastUsed", "History", "Message"}
	UserKeyHeader = []string{"User", "Keys", "Counter", "Status", "Message"}
)

// IsBlocked reports whether a stored status blocks use. Operators type the
// status by hand, so any value mentioning "blocked" counts.
func IsBlocked(status string) bool {
	return strings.Contains(strings.ToLower(status), "blocked")
}

// KeyRecord is one row of the key table.
// @Description Access key with its usage quota
type KeyRecord struct {
	Key      string   `json:"key" example:"KEY-123"`
	Counter  int      `json:"counter" example:"4"`
	Limit    int      `json:"limit" example:"5"`
	Status   string   `json:"status" example:"Active" enums:"Active,Blocked"`
	Users    []string `json:"users" example:"user-1,user-2"`
	LastUsed string   `json:"last_used" example:"01-03-25"`
	History  string   `json:"history" example:"01-03-25 10:00:00 10:05:12"`
	Message  string   `json:"message,omitempty" example:"Contact support"`
}

// ParseKeyRecord reads a stored row, padding short rows.
func ParseKeyRecord(row []string) KeyRecord {
	row = store.Pad(row, len(KeyHeader))
	return KeyRecord{
		Key:      row[0],
		Counter:  atoi(row[1]),
		Limit:    atoi(row[2]),
		Status:   row[3],
		Users:    splitList(row[4]),
		LastUsed: row[5],
		History:  row[6],
		Message:  row[7],
	}
}

func (r KeyRecord) Row() []string {
	return []string{
		r.Key,
		strconv.Itoa(r.Counter),
		strconv.Itoa(r.Limit),
		r.Status,
		strings.Join(r.Users, listSeparator),
		r.LastUsed,
		r.History,
		r.Message,
	}
}

func (r KeyRecord) IsBlocked() bool {
	return IsBlocked(r.Status)
}

// UserKeyRecord is one row of the user-key table, the per-user view of key use.
// @Description Keys used by a user and the user's own status
type UserKeyRecord struct {
	User    string   `json:"user" example:"user-1"`
	Keys    []string `json:"keys" example:"KEY-123"`
	Counter int      `json:"counter" example:"3"`
	Status  string   `json:"status" example:"Active" enums:"Active,Blocked"`
	Message string   `json:"message,omitempty" example:"Contact support"`
}

// ParseUserKeyRecord reads a stored row, padding short rows.
func ParseUserKeyRecord(row []string) UserKeyRecord {
	row = store.Pad(row, len(UserKeyHeader))
	return UserKeyRecord{
		User:    row[0],
		Keys:    splitList(row[1]),
		Counter: atoi(row[2]),
		Status:  row[3],
		Message: row[4],
	}
}

func (r UserKeyRecord) Row() []string {
	return []string{
		r.User,
		strings.Join(r.Keys, listSeparator),
		strconv.Itoa(r.Counter),
		r.Status,
		r.Message,
	}
}

func (r UserKeyRecord) IsBlocked() bool {
	return IsBlocked(r.Status)
}

func splitList(s string) []string {
	fields := strings.Fields(s)
	if fields == nil {
		return []string{}
	}
	return fields
}

func atoi(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 0 {
		return 0
	}
	return n
}

func contains(list []string, item string) bool {
	for _, v := range list {
		if v == item {
			return true
		}
	}
	return false
}

// AddUser appends user to the key's users unless already listed.
func (r *KeyRecord) AddUser(user string) {
	if !contains(r.Users, user) {
		r.Users = append(r.Users, user)
	}
}

// AddKey appends key to the user's keys unless already listed.
func (r *UserKeyRecord) AddKey(key string) {
	if !contains(r.Keys, key) {
		r.Keys = append(r.Keys, key)
	}
}
