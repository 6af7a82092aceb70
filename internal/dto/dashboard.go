package dto

import (
	"time"

	"github.com/shubham1234-glitch/Timesheet-sub000/internal/models"
)

// CalendarDay is one cell of a calendar view with its entries rolled up.
type CalendarDay struct {
	Date          time.Time `json:"date"`
	InMonth       bool      `json:"in_month"`
	TotalHours    float64   `json:"total_hours"`
	ApprovedHours float64   `json:"approved_hours"`
	EntryCount    int       `json:"entry_count"`
	OnLeave       bool      `json:"on_leave"`
}

// CalendarWeek groups seven days starting on Monday.
type CalendarWeek struct {
	WeekStart time.Time     `json:"week_start"`
	Days      []CalendarDay `json:"days"`
	WeekHours float64       `json:"week_hours"`
}

// MonthGrid is the fixed six-by-seven Sunday-start grid rendered by the
// month view. Leading and trailing cells outside the month carry
// in_month=false.
type MonthGrid struct {
	Year  int           `json:"year"`
	Month int           `json:"month"`
	Cells []CalendarDay `json:"cells"`
}

// DashboardResponse is the personal dashboard rollup.
type DashboardResponse struct {
	UserCode      string                  `json:"user_code"`
	FromDate      time.Time               `json:"from_date"`
	ToDate        time.Time               `json:"to_date"`
	TotalHours    float64                 `json:"total_hours"`
	ApprovedHours float64                 `json:"approved_hours"`
	StatusCounts  []models.StatusCountRow `json:"status_counts"`
	DailyHours    []models.DailyHoursRow  `json:"daily_hours"`
	Weeks         []CalendarWeek          `json:"weeks"`
	Month         *MonthGrid              `json:"month,omitempty"`
	PendingLeave  int                     `json:"pending_leave"`
}

// TeamDashboardResponse is the approver view over one team.
type TeamDashboardResponse struct {
	TeamCode       string                  `json:"team_code"`
	FromDate       time.Time               `json:"from_date"`
	ToDate         time.Time               `json:"to_date"`
	Members        []models.MemberHoursRow `json:"members"`
	StatusCounts   []models.StatusCountRow `json:"status_counts"`
	PendingLeave   int                     `json:"pending_leave"`
	PendingEntries int                     `json:"pending_entries"`
}

// SuperAdminDashboardResponse is the organization-wide rollup.
type SuperAdminDashboardResponse struct {
	FromDate     time.Time               `json:"from_date"`
	ToDate       time.Time               `json:"to_date"`
	Teams        []models.TeamHoursRow   `json:"teams"`
	StatusCounts []models.StatusCountRow `json:"status_counts"`
	ActiveUsers  int                     `json:"active_users"`
}
