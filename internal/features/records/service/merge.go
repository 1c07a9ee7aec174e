package service

import (
	"time"

	"sheet-gateway-backend/internal/features/records/models"
	"sheet-gateway-backend/internal/utils/timestamp"
)

// ActivityStats counts what MergeActivity did with a batch.
type ActivityStats struct {
	Updated int
	Created int
	Skipped int
}

// MergeActivity folds batch into the activity table rows (header excluded)
// and returns the replacement rows: existing users in their stored order,
// then users seen for the first time in this batch, in first-seen order.
//
// Every accepted batch row counts as one request, so replaying a batch counts
// it again. Rows shorter than models.MinActivityFields are skipped.
func MergeActivity(existing, batch [][]string, now time.Time) ([][]string, ActivityStats) {
	var stats ActivityStats

	out := make([][]string, len(existing), len(existing)+len(batch))
	copy(out, existing)

	index := make(map[string]int, len(existing))
	for i, row := range existing {
		user := models.ParseActivityRecord(row).User
		if _, dup := index[user]; !dup {
			index[user] = i
		}
	}

	date := timestamp.Date(now)
	for _, row := range batch {
		entry, ok := models.ParseBatchEntry(row)
		if !ok {
			stats.Skipped++
			continue
		}

		i, known := index[entry.User]
		if !known {
			index[entry.User] = len(out)
			out = append(out, newActivityRecord(entry, now).Row())
			stats.Created++
			continue
		}

		rec := models.ParseActivityRecord(out[i])
		rec.Requests++
		rec.Balances = appendHistory(rec.Balances, entry.Balance)
		rec.Modes = appendHistory(rec.Modes, entry.Mode)
		rec.Strategies = appendHistory(rec.Strategies, entry.Strategy)
		rec.Dates = appendHistory(rec.Dates, timestamp.Compact(rec.LastActive, now))
		rec.LastActive = date
		out[i] = rec.Row()
		stats.Updated++
	}

	return out, stats
}

func newActivityRecord(entry models.BatchEntry, now time.Time) models.ActivityRecord {
	return models.ActivityRecord{
		User:       entry.User,
		Status:     models.StatusActive,
		Requests:   1,
		Devices:    1,
		Balances:   entry.Balance,
		Modes:      entry.Mode,
		Strategies: entry.Strategy,
		Dates:      timestamp.Full(now),
		LastActive: timestamp.Date(now),
	}
}

// MergeDevices adds the (user, device) pairs of batch to the device table
// rows (header excluded). Known devices keep their row and gain users they do
// not list yet; unknown devices are appended in first-seen order. Applying the
// same pair twice changes nothing the second time.
func MergeDevices(existing, batch [][]string) ([][]string, int) {
	out := make([][]string, len(existing), len(existing)+len(batch))
	copy(out, existing)

	index := make(map[string]int, len(existing))
	for i, row := range existing {
		device := models.ParseDeviceRecord(row).Device
		if _, dup := index[device]; !dup {
			index[device] = i
		}
	}

	added := 0
	for _, row := range batch {
		if len(row) < models.MinDeviceFields {
			continue
		}
		user, device := row[0], row[1]

		i, known := index[device]
		if !known {
			index[device] = len(out)
			out = append(out, models.DeviceRecord{Device: device, Users: []string{user}}.Row())
			added++
			continue
		}

		rec := models.ParseDeviceRecord(out[i])
		if rec.HasUser(user) {
			continue
		}
		rec.Users = append(rec.Users, user)
		out[i] = rec.Row()
	}

	return out, added
}

func appendHistory(history, value string) string {
	return history + " " + value
}
