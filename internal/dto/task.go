package dto

import (
	"github.com/shubham1234-glitch/Timesheet-sub000/internal/models"
)

// CreateTaskRequest is the payload for creating a task under an epic,
// optionally seeded from a predefined template.
type CreateTaskRequest struct {
	EpicCode       string  `json:"epic_code" validate:"required"`
	TemplateID     string  `json:"template_id"`
	Title          string  `json:"title" validate:"required,min=3,max=200"`
	Description    string  `json:"description" validate:"required,min=10,max=2000"`
	TaskTypeCode   string  `json:"task_type_code" validate:"required"`
	WorkMode       string  `json:"work_mode"`
	Priority       string  `json:"priority"`
	EstimatedHours float64 `json:"estimated_hours" validate:"required,gt=0,lte=1000"`
	StartDate      string  `json:"start_date"`
	ParentTaskCode string  `json:"parent_task_code"`
}

// EpicListResponse wraps a page of epics.
type EpicListResponse struct {
	Epics      []models.Epic     `json:"epics"`
	Pagination models.Pagination `json:"pagination"`
}

// TaskListResponse wraps a page of tasks.
type TaskListResponse struct {
	Tasks      []models.Task     `json:"tasks"`
	Pagination models.Pagination `json:"pagination"`
}

// TicketListResponse wraps a page of tickets.
type TicketListResponse struct {
	Tickets    []models.Ticket   `json:"tickets"`
	Pagination models.Pagination `json:"pagination"`
}
