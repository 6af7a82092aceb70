package models

import "time"

// WorkStatus tracks progress of epics and tasks.
type WorkStatus string

const (
	WorkStatusOpen       WorkStatus = "OPEN"
	WorkStatusInProgress WorkStatus = "IN_PROGRESS"
	WorkStatusOnHold     WorkStatus = "ON_HOLD"
	WorkStatusDone       WorkStatus = "DONE"
	WorkStatusCancelled  WorkStatus = "CANCELLED"
)

// Valid returns true when the status is a supported value.
func (s WorkStatus) Valid() bool {
	switch s {
	case WorkStatusOpen, WorkStatusInProgress, WorkStatusOnHold, WorkStatusDone, WorkStatusCancelled:
		return true
	default:
		return false
	}
}

// Priority orders work items for triage.
type Priority string

const (
	PriorityLow      Priority = "LOW"
	PriorityMedium   Priority = "MEDIUM"
	PriorityHigh     Priority = "HIGH"
	PriorityCritical Priority = "CRITICAL"
)

// Valid returns true when the priority is a supported value.
func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityCritical:
		return true
	default:
		return false
	}
}

// WorkMode describes where a task is expected to be performed.
type WorkMode string

const (
	WorkModeOffice WorkMode = "OFFICE"
	WorkModeRemote WorkMode = "REMOTE"
	WorkModeHybrid WorkMode = "HYBRID"
	WorkModeField  WorkMode = "FIELD"
)

// Epic is a hierarchical work item owning zero or more tasks.
type Epic struct {
	ID             string     `db:"id" json:"id"`
	EpicCode       string     `db:"epic_code" json:"epic_code"`
	Title          string     `db:"title" json:"title"`
	Description    string     `db:"description" json:"description"`
	Status         WorkStatus `db:"status" json:"status"`
	Priority       Priority   `db:"priority" json:"priority"`
	AssigneeCode   *string    `db:"assignee_code" json:"assignee_code,omitempty"`
	TeamCode       string     `db:"team_code" json:"team_code"`
	EstimatedHours float64    `db:"estimated_hours" json:"estimated_hours"`
	StartDate      *time.Time `db:"start_date" json:"start_date,omitempty"`
	DueDate        *time.Time `db:"due_date" json:"due_date,omitempty"`
	CreatedAt      time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time  `db:"updated_at" json:"updated_at"`

	Tasks       []Task       `db:"-" json:"tasks"`
	Attachments []Attachment `db:"-" json:"attachments"`
}

// Task belongs to an epic and additionally carries a type and work mode.
type Task struct {
	ID             string     `db:"id" json:"id"`
	TaskCode       string     `db:"task_code" json:"task_code"`
	EpicCode       string     `db:"epic_code" json:"epic_code"`
	Title          string     `db:"title" json:"title"`
	Description    string     `db:"description" json:"description"`
	Status         WorkStatus `db:"status" json:"status"`
	Priority       Priority   `db:"priority" json:"priority"`
	AssigneeCode   *string    `db:"assignee_code" json:"assignee_code,omitempty"`
	TeamCode       string     `db:"team_code" json:"team_code"`
	TaskTypeCode   string     `db:"task_type_code" json:"task_type_code"`
	WorkMode       WorkMode   `db:"work_mode" json:"work_mode"`
	EstimatedHours float64    `db:"estimated_hours" json:"estimated_hours"`
	EstimatedDays  float64    `db:"estimated_days" json:"estimated_days"`
	StartDate      *time.Time `db:"start_date" json:"start_date,omitempty"`
	DueDate        *time.Time `db:"due_date" json:"due_date,omitempty"`
	ParentTaskCode *string    `db:"parent_task_code" json:"parent_task_code,omitempty"`
	CreatedAt      time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time  `db:"updated_at" json:"updated_at"`

	Attachments []Attachment `db:"-" json:"attachments"`
}

// TaskFilter captures the conjunctive list filters for tasks and epics.
type TaskFilter struct {
	EpicCode     string
	AssigneeCode string
	TeamCode     string
	Status       *WorkStatus
	Priority     *Priority
	Search       string
	Limit        int
	Offset       int
}

// PredefinedTaskTemplate is a read-only catalog entry used to pre-populate
// a new task's fields. Templates are never mutated by this flow.
type PredefinedTaskTemplate struct {
	ID             string    `db:"id" json:"id"`
	Title          string    `db:"title" json:"title"`
	Description    string    `db:"description" json:"description"`
	TaskTypeCode   string    `db:"task_type_code" json:"task_type_code"`
	WorkMode       WorkMode  `db:"work_mode" json:"work_mode"`
	EstimatedHours float64   `db:"estimated_hours" json:"estimated_hours"`
	Priority       Priority  `db:"priority" json:"priority"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
}
