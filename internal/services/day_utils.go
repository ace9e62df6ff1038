package services

import (
	"strings"
	"time"
)

const isoDateLayout = "2006-01-02"

func DateAtLocation(value time.Time, location *time.Location) time.Time {
	if location == nil {
		location = time.UTC
	}
	localized := value.In(location)
	year, month, day := localized.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, location)
}

// CalendarDate drops the time of day and zone, keeping the wall-clock date
// the value was expressed in.
func CalendarDate(value time.Time) time.Time {
	year, month, day := value.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func ParseISODate(raw string) (time.Time, error) {
	return time.ParseInLocation(isoDateLayout, strings.TrimSpace(raw), time.UTC)
}

func FormatISODate(value time.Time) string {
	return value.Format(isoDateLayout)
}

func MonthRange(year int, month time.Month) (time.Time, time.Time) {
	start := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(0, 1, 0)
}

func betweenInclusive(day, start, end time.Time) bool {
	if start.IsZero() || end.IsZero() {
		return false
	}
	return !day.Before(start) && !day.After(end)
}

func sameDay(a, b time.Time) bool {
	return FormatISODate(a) == FormatISODate(b)
}

func sameMonth(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month()
}
