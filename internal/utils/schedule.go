package utils

import "time"

// DefaultScheduleMonths is the collection horizon generated per loan.
const DefaultScheduleMonths = 12

// MonthlyDueDates returns the due dates of a monthly collection schedule:
// start + 1 month, + 2 months, ..., + months months.
//
// Day-of-month is preserved. When the target month is shorter than the start
// day (a loan provided on the 31st, say), calendar arithmetic rolls the date
// into the following month; such dates are rewound to the last day of the
// intended month. A loan starting Jan 31 yields Feb 28/29, Mar 31, Apr 30.
// Due dates never skip a month and are strictly increasing.
func MonthlyDueDates(start time.Time, months int) []time.Time {
	dates := make([]time.Time, 0, months)
	for i := 1; i <= months; i++ {
		due := start.AddDate(0, i, 0)
		if due.Day() != start.Day() {
			due = LastDayOfPreviousMonth(due)
		}
		dates = append(dates, due)
	}
	return dates
}

// LastDayOfPreviousMonth rewinds t to the final day of the month before it,
// keeping the time of day.
func LastDayOfPreviousMonth(t time.Time) time.Time {
	firstOfMonth := time.Date(t.Year(), t.Month(), 1, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
	return firstOfMonth.AddDate(0, 0, -1)
}

// StartOfDay truncates t to midnight in its own location.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// StartOfMonth returns midnight on the first day of t's calendar month.
func StartOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}
