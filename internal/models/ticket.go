package models

import "time"

// Ticket is an external support ticket referenced (not owned) by timesheet
// entries when logging support work.
type Ticket struct {
	TicketCode    string     `db:"ticket_code" json:"ticket_code"`
	Subject       string     `db:"subject" json:"subject"`
	Status        string     `db:"status" json:"status"`
	Priority      Priority   `db:"priority" json:"priority"`
	RequesterName string     `db:"requester_name" json:"requester_name"`
	AssigneeCode  *string    `db:"assignee_code" json:"assignee_code,omitempty"`
	OpenedAt      time.Time  `db:"opened_at" json:"opened_at"`
	ClosedAt      *time.Time `db:"closed_at" json:"closed_at,omitempty"`
}

// TicketFilter scopes ticket listing.
type TicketFilter struct {
	Status       string
	AssigneeCode string
	Search       string
	Limit        int
	Offset       int
}
