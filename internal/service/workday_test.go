package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestEstimatedDays(t *testing.T) {
	cases := []struct {
		hours float64
		want  float64
	}{
		{0, 0},
		{-4, 0},
		{1, 0.13},
		{8, 1},
		{12, 1.5},
		{16, 2},
		{20, 2.5},
		{0.5, 0.07},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, EstimatedDays(tc.hours), "hours=%v", tc.hours)
	}
}

func TestDueDateStaysOnStartForSingleDay(t *testing.T) {
	monday := time.Date(2026, 8, 24, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, monday, DueDate(monday, 1))
	assert.Equal(t, monday, DueDate(monday, 0.5))
}

func TestDueDateSkipsWeekend(t *testing.T) {
	friday := time.Date(2026, 8, 28, 0, 0, 0, 0, time.UTC)
	// One extra working day beyond Friday lands on Monday.
	monday := time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, monday, DueDate(friday, 2))
}

func TestDueDateWeekendStartAdvancesToMonday(t *testing.T) {
	saturday := time.Date(2026, 8, 29, 0, 0, 0, 0, time.UTC)
	monday := time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, monday, DueDate(saturday, 1))
}

func TestDueDateLongEstimate(t *testing.T) {
	monday := time.Date(2026, 8, 24, 0, 0, 0, 0, time.UTC)
	// 5 working days starting Monday end on Friday of the same week.
	friday := time.Date(2026, 8, 28, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, friday, DueDate(monday, 5))
	// 6 working days roll into the next week.
	nextMonday := time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, nextMonday, DueDate(monday, 6))
}

func TestDueDateFractionalDaysRoundUp(t *testing.T) {
	monday := time.Date(2026, 8, 24, 0, 0, 0, 0, time.UTC)
	tuesday := time.Date(2026, 8, 25, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, tuesday, DueDate(monday, 1.5))
}

func TestClampHours(t *testing.T) {
	assert.Equal(t, 0.0, ClampHours(-3, 24))
	assert.Equal(t, 24.0, ClampHours(30, 24))
	assert.Equal(t, 7.5, ClampHours(7.49, 24))
	assert.Equal(t, 7.4, ClampHours(7.44, 24))
	assert.Equal(t, 8.0, ClampHours(8, 24))
}
