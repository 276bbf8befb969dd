package attendance

import (
	"testing"
	"time"
)

func day(t time.Time, offset int) time.Time {
	return t.AddDate(0, 0, offset)
}

func TestCountActiveDays(t *testing.T) {
	asOf := time.Date(2024, time.March, 15, 10, 30, 0, 0, time.UTC)

	tests := []struct {
		name       string
		records    []DayRecord
		windowDays int
		want       int
	}{
		{
			name:       "no records",
			records:    nil,
			windowDays: 30,
			want:       0,
		},
		{
			name: "window boundaries inclusive",
			records: []DayRecord{
				{Date: asOf, Present: true},              // asOf itself counts
				{Date: day(asOf, -29), Present: true},    // inside
				{Date: day(asOf, -30), Present: true},    // start boundary counts
				{Date: day(asOf, -31), Present: true},    // strictly before -> excluded
			},
			windowDays: 30,
			want:       3,
		},
		{
			name: "absent records do not count",
			records: []DayRecord{
				{Date: day(asOf, -1), Present: true},
				{Date: day(asOf, -2), Present: false},
				{Date: day(asOf, -3), Present: false},
			},
			windowDays: 30,
			want:       1,
		},
		{
			name: "duplicates collapse last-write-wins",
			records: []DayRecord{
				{Date: day(asOf, -1), Present: true},
				{Date: day(asOf, -1), Present: false}, // correction wins
				{Date: day(asOf, -2), Present: false},
				{Date: day(asOf, -2), Present: true}, // correction wins
			},
			windowDays: 30,
			want:       1,
		},
		{
			name: "time of day is irrelevant",
			records: []DayRecord{
				{Date: day(asOf, -30).Add(2 * time.Hour), Present: true},
				{Date: time.Date(2024, time.March, 15, 23, 59, 0, 0, time.UTC), Present: true},
			},
			windowDays: 30,
			want:       2,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CountActiveDays(tt.records, tt.windowDays, asOf); got != tt.want {
				t.Errorf("CountActiveDays() = %d, want %d", got, tt.want)
			}
		})
	}
}
