package calendar

import "time"

// The synthesized feed covers a sliding window around the current ISO week:
// twelve weeks back through four weeks ahead.
const (
	weeksBack  = 12
	weeksAhead = 4
)

// yearWeek addresses one ISO week. The year is the ISO week-numbering year,
// which differs from the calendar year around new year.
type yearWeek struct {
	year int
	week int
}

// weekWindow derives the 17 fetch targets for the given instant. Offsets are
// applied in whole-week steps from the Monday of the current ISO week and each
// shifted date is re-derived through ISOWeek, so targets near a year boundary
// resolve into the neighboring ISO year. A week number the upstream does not
// recognize (W53 in a 52-week year) is requested as-is; the failed fetch is
// swallowed like any other.
func weekWindow(now time.Time) []yearWeek {
	year, week := now.ISOWeek()
	monday := mondayOfISOWeek(year, week)

	window := make([]yearWeek, 0, weeksBack+weeksAhead+1)
	for offset := -weeksBack; offset <= weeksAhead; offset++ {
		shifted := monday.AddDate(0, 0, offset*7)
		y, w := shifted.ISOWeek()
		window = append(window, yearWeek{year: y, week: w})
	}
	return window
}

// mondayOfISOWeek returns the Monday starting the given ISO week. January 4th
// is always inside ISO week 1 of its year.
func mondayOfISOWeek(year, week int) time.Time {
	jan4 := time.Date(year, time.January, 4, 0, 0, 0, 0, time.UTC)
	monday := jan4.AddDate(0, 0, -((int(jan4.Weekday()) + 6) % 7))
	return monday.AddDate(0, 0, (week-1)*7)
}
