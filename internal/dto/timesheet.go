package dto

import (
	"github.com/shubham1234-glitch/Timesheet-sub000/internal/models"
)

// EnterTimesheetRequest is the multipart form payload for creating or
// updating a draft timesheet entry. Exactly one reference group may be
// populated: epic/task codes, a ticket code, or an activity code.
type EnterTimesheetRequest struct {
	EntryID      string  `form:"entry_id"`
	EntryDate    string  `form:"entry_date" validate:"required"`
	HoursWorked  float64 `form:"hours_worked" validate:"required"`
	TravelTime   float64 `form:"travel_time"`
	WaitingTime  float64 `form:"waiting_time"`
	WorkLocation string  `form:"work_location"`
	Description  string  `form:"description" validate:"required"`
	EntryKind    string  `form:"entry_kind"`
	EpicCode     string  `form:"epic_code"`
	TaskCode     string  `form:"task_code"`
	TicketCode   string  `form:"ticket_code"`
	ActivityCode string  `form:"activity_code"`
	SubmitFlag   bool    `form:"submit_flag"`
}

// SubmitTimesheetRequest moves one or more draft entries to PENDING.
type SubmitTimesheetRequest struct {
	EntryIDs []string `json:"entry_ids" validate:"required,min=1,dive,required"`
}

// DecideTimesheetRequest approves or rejects a pending entry.
type DecideTimesheetRequest struct {
	EntryID         string `json:"entry_id" validate:"required"`
	Approve         bool   `json:"approve"`
	RejectionReason string `json:"rejection_reason"`
}

// TimesheetListResponse wraps a page of entries with pagination metadata.
type TimesheetListResponse struct {
	Entries    []models.TimesheetEntry `json:"entries"`
	Pagination models.Pagination       `json:"pagination"`
}

// EnterTimesheetResponse returns the persisted entry and a non-blocking
// warning when the day's total hours exceed the overtime threshold.
type EnterTimesheetResponse struct {
	Entry   models.TimesheetEntry `json:"entry"`
	Warning string                `json:"warning,omitempty"`
}
