package attendance

import "time"

// CountActiveDays counts the distinct calendar days in the trailing window
// [asOf - windowDays, asOf] (both boundaries inclusive) that have a present
// record. Days with no record do not count; days recorded absent do not count.
//
// Input order is irrelevant except that duplicate records for the same
// calendar day collapse last-write-wins: the latest record in the slice
// decides the day's presence.
func CountActiveDays(records []DayRecord, windowDays int, asOf time.Time) int {
	end := dateOf(asOf)
	start := end.AddDate(0, 0, -windowDays)

	byDay := make(map[time.Time]bool, len(records))
	for _, rec := range records {
		byDay[dateOf(rec.Date)] = rec.Present
	}

	var count int
	for day, present := range byDay {
		if present && !day.Before(start) && !day.After(end) {
			count++
		}
	}
	return count
}

// dateOf truncates t to its calendar day at midnight UTC.
func dateOf(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
