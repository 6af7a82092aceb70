package service

import (
	"math"
	"time"
)

const workdayHours = 8.0

// EstimatedDays converts an hour estimate into working days at eight hours
// per day, rounded up to two decimals so a 1-hour task still shows 0.13.
func EstimatedDays(estimatedHours float64) float64 {
	if estimatedHours <= 0 {
		return 0
	}
	return math.Ceil(estimatedHours/workdayHours*100) / 100
}

// DueDate walks forward from the start date, counting only Mondays through
// Fridays, until ceil(estimatedDays)-1 working days beyond the start have
// passed. A result landing on a weekend advances to the next Monday.
func DueDate(start time.Time, estimatedDays float64) time.Time {
	due := start
	remaining := int(math.Ceil(estimatedDays)) - 1
	for remaining > 0 {
		due = due.AddDate(0, 0, 1)
		if isWorkday(due) {
			remaining--
		}
	}
	for !isWorkday(due) {
		due = due.AddDate(0, 0, 1)
	}
	return due
}

func isWorkday(t time.Time) bool {
	wd := t.Weekday()
	return wd != time.Saturday && wd != time.Sunday
}

// ClampHours forces an hour figure into [0, max] and rounds it to one
// decimal place, matching what the UI displays.
func ClampHours(v, max float64) float64 {
	if v < 0 {
		v = 0
	}
	if v > max {
		v = max
	}
	return math.Round(v*10) / 10
}
