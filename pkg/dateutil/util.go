package dateutil

import "time"

// CurrentWeek returns the beginning (Monday 00:00) of the week containing t.
func CurrentWeek(t time.Time) time.Time {
	weekday := int(t.Weekday())
	if weekday == 0 {
		weekday = 7
	}

	y, m, d := t.Date()
	return time.Date(y, m, d-weekday+1, 0, 0, 0, 0, t.Location())
}

// CurrentMonth returns the first day of the month containing t.
func CurrentMonth(t time.Time) time.Time {
	y, m, _ := t.Date()
	return time.Date(y, m, 1, 0, 0, 0, 0, t.Location())
}

func LastWeek(t time.Time) time.Time {
	return CurrentWeek(t).AddDate(0, 0, -7)
}

func LastMonth(t time.Time) time.Time {
	return CurrentMonth(t).AddDate(0, -1, 0)
}

// InWindow reports whether t is inside [start, end]. A nil bound is open.
func InWindow(t time.Time, start, end *time.Time) bool {
	if start != nil && t.Before(*start) {
		return false
	}

	if end != nil && t.After(*end) {
		return false
	}

	return true
}
