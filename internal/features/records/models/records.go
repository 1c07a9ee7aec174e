package models

import (
	"strconv"
	"strings"

	"sheet-gateway-backend/internal/platform/store"
)

const (
	StatusActive  = "Active"
	StatusBlocked = "Blocked"
)

var (
	ActivityHeader = []string{"User", "Status", "Requests", "Devices", "Balances", "Modes", "Strategies", "Dates", "LastActive"}
	DeviceHeader   = []string{"Device", "Users"}
)

const (
	// MinActivityFields is the shortest batch row the activity merge accepts.
	MinActivityFields = 5
	// MinDeviceFields is the shortest batch row the device merge accepts.
	MinDeviceFields = 2

	deviceUsersSeparator = ", "
)

// ActivityRecord is one row of the activity table, keyed by user.
// @Description User activity aggregated over every write batch
type ActivityRecord struct {
	User       string `json:"user" example:"user-42"`
	Status     string `json:"status" example:"Active" enums:"Active,Blocked"`
	Requests   int    `json:"requests" example:"3"`
	Devices    int    `json:"devices" example:"1"`
	Balances   string `json:"balances" example:"100 120 95"`
	Modes      string `json:"modes" example:"fixed fixed martingale"`
	Strategies string `json:"strategies" example:"s1 s1 s2"`
	Dates      string `json:"dates" example:"01-03-25 10:00:00 10:05:12 02-03-25 08:00:00"`
	LastActive string `json:"last_active" example:"02-03-25"`
}

// ParseActivityRecord reads a stored row; missing cells read as empty and
// unparsable counters as zero.
func ParseActivityRecord(row []string) ActivityRecord {
	row = store.Pad(row, len(ActivityHeader))
	return ActivityRecord{
		User:       row[0],
		Status:     row[1],
		Requests:   atoi(row[2]),
		Devices:    atoi(row[3]),
		Balances:   row[4],
		Modes:      row[5],
		Strategies: row[6],
		Dates:      row[7],
		LastActive: row[8],
	}
}

func (r ActivityRecord) Row() []string {
	return []string{
		r.User,
		r.Status,
		strconv.Itoa(r.Requests),
		strconv.Itoa(r.Devices),
		r.Balances,
		r.Modes,
		r.Strategies,
		r.Dates,
		r.LastActive,
	}
}

// DeviceRecord maps a device to the users seen on it, in first-seen order.
// @Description Users that have written from a device
type DeviceRecord struct {
	Device string   `json:"device" example:"device-a"`
	Users  []string `json:"users" example:"user-1,user-2"`
}

func ParseDeviceRecord(row []string) DeviceRecord {
	row = store.Pad(row, len(DeviceHeader))
	rec := DeviceRecord{Device: row[0], Users: []string{}}
	for _, u := range strings.Split(row[1], ",") {
		if u = strings.TrimSpace(u); u != "" {
			rec.Users = append(rec.Users, u)
		}
	}
	return rec
}

func (r DeviceRecord) Row() []string {
	return []string{r.Device, strings.Join(r.Users, deviceUsersSeparator)}
}

// HasUser reports whether user is already listed for the device.
func (r DeviceRecord) HasUser(user string) bool {
	for _, u := range r.Users {
		if u == user {
			return true
		}
	}
	return false
}

// BatchEntry is one incoming write row: [user, device, balance, mode, strategy, ...].
type BatchEntry struct {
	User     string
	Device   string
	Balance  string
	Mode     string
	Strategy string
}

// ParseBatchEntry reads the activity fields of a batch row. ok is false for
// rows too short to carry them.
func ParseBatchEntry(row []string) (BatchEntry, bool) {
	if len(row) < MinActivityFields {
		return BatchEntry{}, false
	}
	return BatchEntry{
		User:     row[0],
		Device:   row[1],
		Balance:  row[2],
		Mode:     row[3],
		Strategy: row[4],
	}, true
}

func atoi(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 0 {
		return 0
	}
	return n
}
