package view

import "time"

// WeekdayHeaders returns the grid column labels, Sunday first.
func WeekdayHeaders() []string {
	labels := make([]string, 0, 7)
	for d := time.Sunday; d <= time.Saturday; d++ {
		labels = append(labels, d.String()[:3])
	}
	return labels
}

// DateSpan renders "Jan 2 - Feb 5, 2006" for a window.
func DateSpan(start, end time.Time) string {
	return start.Format("Jan 2") + " - " + end.Format("Jan 2, 2006")
}
