package dto

import (
	"github.com/shubham1234-glitch/Timesheet-sub000/internal/models"
)

// ApplyLeaveRequest is the multipart form payload for submitting a leave
// application. Dates use the YYYY-MM-DD wire format.
type ApplyLeaveRequest struct {
	LeaveTypeCode string `form:"leave_type_code" validate:"required"`
	FromDate      string `form:"from_date" validate:"required"`
	ToDate        string `form:"to_date" validate:"required"`
	Reason        string `form:"reason" validate:"required"`
}

// DecideLeaveRequest approves or rejects a pending leave application.
type DecideLeaveRequest struct {
	ApplicationID   string `json:"application_id" validate:"required"`
	Approve         bool   `json:"approve"`
	RejectionReason string `json:"rejection_reason"`
}

// LeaveListResponse wraps a page of leave applications.
type LeaveListResponse struct {
	Applications []models.LeaveApplication `json:"applications"`
	Pagination   models.Pagination         `json:"pagination"`
}
