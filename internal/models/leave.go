package models

import "time"

// LeaveApplication is a request for time off over an inclusive date range.
type LeaveApplication struct {
	ID              string         `db:"id" json:"id"`
	UserCode        string         `db:"user_code" json:"user_code"`
	LeaveTypeCode   string         `db:"leave_type_code" json:"leave_type_code"`
	FromDate        time.Time      `db:"from_date" json:"from_date"`
	ToDate          time.Time      `db:"to_date" json:"to_date"`
	Reason          string         `db:"reason" json:"reason"`
	ApprovalStatus  ApprovalStatus `db:"approval_status" json:"approval_status"`
	RejectionReason *string        `db:"rejection_reason" json:"rejection_reason,omitempty"`
	ApprovedBy      *string        `db:"approved_by" json:"approved_by,omitempty"`
	SubmittedAt     *time.Time     `db:"submitted_at" json:"submitted_at,omitempty"`
	DecidedAt       *time.Time     `db:"decided_at" json:"decided_at,omitempty"`
	CreatedAt       time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time      `db:"updated_at" json:"updated_at"`

	Attachments []Attachment `db:"-" json:"attachments"`
}

// LeaveFilter captures the conjunctive list filters for leave applications.
// The date bounds select applications whose range overlaps the filter window.
type LeaveFilter struct {
	UserCode string
	FromDate *time.Time
	ToDate   *time.Time
	Status   *ApprovalStatus
	Limit    int
	Offset   int
}
