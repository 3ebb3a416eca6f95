package domain

import "time"

const dateStringLayout = "01/02/2006"

// Day truncates t to midnight UTC of its UTC calendar day.
func Day(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DayKey is the record key of the day containing t: epoch milliseconds of its UTC midnight.
func DayKey(t time.Time) int64 {
	return Day(t).UnixMilli()
}

func DayFromKey(key int64) time.Time {
	return time.UnixMilli(key).UTC()
}

// DateString formats the UTC day as MM/DD/YYYY, the form used by both the
// forum thread titles and the metadata service.
func DateString(t time.Time) string {
	return t.UTC().Format(dateStringLayout)
}

func DayName(t time.Time) string {
	return t.UTC().Weekday().String()
}
