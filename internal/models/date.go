package models

import "time"

// DateLayout is the wire format of calendar dates.
const DateLayout = "2006-01-02"

// DateOf returns the calendar date of t in t's location, as midnight UTC.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseDate parses a YYYY-MM-DD string into a calendar date.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, err
	}
	return DateOf(t), nil
}

func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

func AddDays(date time.Time, days int) time.Time {
	return DateOf(date).AddDate(0, 0, days)
}

// DaysBetween counts whole calendar days from a to b.
func DaysBetween(a, b time.Time) int {
	return int(DateOf(b).Sub(DateOf(a)).Hours() / 24)
}
