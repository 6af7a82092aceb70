package models

import "time"

// ApprovalStatus is the lifecycle state shared by timesheet entries and leave applications.
type ApprovalStatus string

const (
	StatusDraft    ApprovalStatus = "DRAFT"
	StatusPending  ApprovalStatus = "PENDING"
	StatusApproved ApprovalStatus = "APPROVED"
	StatusRejected ApprovalStatus = "REJECTED"
)

// Valid returns true when the status is a supported value.
func (s ApprovalStatus) Valid() bool {
	switch s {
	case StatusDraft, StatusPending, StatusApproved, StatusRejected:
		return true
	default:
		return false
	}
}

// Final reports whether the status permits no further transitions.
func (s ApprovalStatus) Final() bool {
	return s == StatusApproved
}

// EntryKind discriminates the three mutually exclusive timesheet work kinds.
type EntryKind string

const (
	EntryKindEpicTask EntryKind = "EPIC_TASK"
	EntryKindTicket   EntryKind = "TICKET"
	EntryKindActivity EntryKind = "ACTIVITY"
)

// Valid returns true when the kind is a supported value.
func (k EntryKind) Valid() bool {
	switch k {
	case EntryKindEpicTask, EntryKindTicket, EntryKindActivity:
		return true
	default:
		return false
	}
}

// TimesheetEntry is a single logged work record, tagged with exactly one kind.
type TimesheetEntry struct {
	ID              string         `db:"id" json:"id"`
	UserCode        string         `db:"user_code" json:"user_code"`
	EntryDate       time.Time      `db:"entry_date" json:"entry_date"`
	HoursWorked     float64        `db:"hours_worked" json:"hours_worked"`
	TravelTime      float64        `db:"travel_time" json:"travel_time"`
	WaitingTime     float64        `db:"waiting_time" json:"waiting_time"`
	WorkLocation    string         `db:"work_location" json:"work_location"`
	Description     string         `db:"description" json:"description"`
	EntryKind       EntryKind      `db:"entry_kind" json:"entry_kind"`
	EpicCode        *string        `db:"epic_code" json:"epic_code,omitempty"`
	TaskCode        *string        `db:"task_code" json:"task_code,omitempty"`
	TicketCode      *string        `db:"ticket_code" json:"ticket_code,omitempty"`
	ActivityCode    *string        `db:"activity_code" json:"activity_code,omitempty"`
	ApprovalStatus  ApprovalStatus `db:"approval_status" json:"approval_status"`
	RejectionReason *string        `db:"rejection_reason" json:"rejection_reason,omitempty"`
	ApprovedBy      *string        `db:"approved_by" json:"approved_by,omitempty"`
	SubmittedAt     *time.Time     `db:"submitted_at" json:"submitted_at,omitempty"`
	DecidedAt       *time.Time     `db:"decided_at" json:"decided_at,omitempty"`
	CreatedAt       time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time      `db:"updated_at" json:"updated_at"`

	Attachments []Attachment `db:"-" json:"attachments"`
}

// TimesheetFilter captures the conjunctive list filters for timesheet entries.
// Nil/empty fields impose no constraint; date bounds are inclusive UTC calendar dates.
type TimesheetFilter struct {
	UserCode  string
	FromDate  *time.Time
	ToDate    *time.Time
	Status    *ApprovalStatus
	EntryKind *EntryKind
	Limit     int
	Offset    int
}
