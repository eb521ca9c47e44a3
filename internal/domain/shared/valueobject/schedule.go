package valueobject

import "time"

// DayClampedDate builds a date whose day-of-month is clamped to the last
// valid day of the given month. DayClampedDate(2026, time.February, 31)
// yields 2026-02-28.
func DayClampedDate(year int, month time.Month, day int) time.Time {
	if day < 1 {
		day = 1
	}
	last := lastDayOfMonth(year, month)
	if day > last {
		day = last
	}
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// AddMonthsClamped advances t by n months keeping the anchor day-of-month,
// clamping to shorter months instead of overflowing into the next one.
// The anchor day is taken from t itself, so a Jan 31 schedule lands on
// Feb 28 (or 29) and returns to the 31st in March.
func AddMonthsClamped(t time.Time, n int) time.Time {
	year, month, day := t.Date()
	month += time.Month(n)
	// normalize month overflow/underflow into the year
	for month > 12 {
		month -= 12
		year++
	}
	for month < 1 {
		month += 12
		year--
	}
	return DayClampedDate(year, month, day)
}

func lastDayOfMonth(year int, month time.Month) int {
	// day 0 of the next month is the last day of this month
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
