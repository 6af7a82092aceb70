package models

import "time"

// DailyHoursRow aggregates approved and total hours for one calendar day.
type DailyHoursRow struct {
	Day           time.Time `db:"day" json:"day"`
	TotalHours    float64   `db:"total_hours" json:"total_hours"`
	ApprovedHours float64   `db:"approved_hours" json:"approved_hours"`
	EntryCount    int       `db:"entry_count" json:"entry_count"`
}

// StatusCountRow counts entries per approval status.
type StatusCountRow struct {
	Status ApprovalStatus `db:"approval_status" json:"status"`
	Count  int            `db:"count" json:"count"`
}

// MemberHoursRow aggregates hours per team member for team dashboards.
type MemberHoursRow struct {
	UserCode      string  `db:"user_code" json:"user_code"`
	FullName      string  `db:"full_name" json:"full_name"`
	TotalHours    float64 `db:"total_hours" json:"total_hours"`
	ApprovedHours float64 `db:"approved_hours" json:"approved_hours"`
	PendingCount  int     `db:"pending_count" json:"pending_count"`
}

// TeamHoursRow aggregates hours per team for the super-admin rollup.
type TeamHoursRow struct {
	TeamCode      string  `db:"team_code" json:"team_code"`
	MemberCount   int     `db:"member_count" json:"member_count"`
	TotalHours    float64 `db:"total_hours" json:"total_hours"`
	ApprovedHours float64 `db:"approved_hours" json:"approved_hours"`
}
