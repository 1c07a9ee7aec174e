package timestamp

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormats(t *testing.T) {
	ts := time.Date(2025, time.March, 7, 9, 5, 3, 0, time.Local)

	assert.Equal(t, "07-03-25 09:05:03", Full(ts))
	assert.Equal(t, "07-03-25", Date(ts))
	assert.Equal(t, "09:05:03", Time(ts))
}

func TestParts(t *testing.T) {
	assert.Equal(t, "07-03-25", DatePart("07-03-25 09:05:03"))
	assert.Equal(t, "09:05:03", TimePart("07-03-25 09:05:03"))
	assert.Equal(t, "07-03-25", DatePart("07-03-25"))
	assert.Equal(t, "", TimePart("07-03-25"))
}

func TestCompact(t *testing.T) {
	ts := time.Date(2025, time.March, 7, 18, 0, 1, 0, time.Local)

	tests := []struct {
		name     string
		lastDate string
		want     string
	}{
		{name: "same day appends time only", lastDate: "07-03-25", want: "18:00:01"},
		{name: "other day appends full stamp", lastDate: "06-03-25", want: "07-03-25 18:00:01"},
		{name: "empty marker appends full stamp", lastDate: "", want: "07-03-25 18:00:01"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Compact(tt.lastDate, ts))
		})
	}
}

func TestParseRoundTrip(t *testing.T) {
	ts := time.Date(2024, time.December, 31, 23, 59, 59, 0, time.Local)

	parsed, err := Parse(Full(ts))
	require.NoError(t, err)
	assert.True(t, ts.Equal(parsed))
}
