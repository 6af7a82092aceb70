package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/shubham1234-glitch/Timesheet-sub000/internal/models"
)

// TaskRepository manages persistence for epics, tasks, and the predefined
// task template catalog.
type TaskRepository struct {
	db *sqlx.DB
}

// NewTaskRepository constructs a TaskRepository.
func NewTaskRepository(db *sqlx.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

const epicColumns = `id, epic_code, title, description, status, priority, assignee_code, team_code,
        estimated_hours, start_date, due_date, created_at, updated_at`

const taskColumns = `id, task_code, epic_code, title, description, status, priority, assignee_code, team_code,
        task_type_code, work_mode, estimated_hours, estimated_days, start_date, due_date, parent_task_code, created_at, updated_at`

// ListEpics returns epics matching the filter plus the unpaginated total.
func (r *TaskRepository) ListEpics(ctx context.Context, filter models.TaskFilter) ([]models.Epic, int, error) {
	base := "FROM epics"
	args := []interface{}{}
	conditions := []string{"1=1"}

	if filter.TeamCode != "" {
		conditions = append(conditions, fmt.Sprintf("team_code = $%d", len(args)+1))
		args = append(args, filter.TeamCode)
	}
	if filter.Status != nil {
		conditions = append(conditions, fmt.Sprintf("status = $%d", len(args)+1))
		args = append(args, *filter.Status)
	}
	if filter.Priority != nil {
		conditions = append(conditions, fmt.Sprintf("priority = $%d", len(args)+1))
		args = append(args, *filter.Priority)
	}
	if filter.Search != "" {
		conditions = append(conditions, fmt.Sprintf("(LOWER(title) LIKE $%d OR LOWER(epic_code) LIKE $%d)", len(args)+1, len(args)+1))
		args = append(args, "%"+strings.ToLower(filter.Search)+"%")
	}

	base = fmt.Sprintf("%s WHERE %s", base, strings.Join(conditions, " AND "))

	query := fmt.Sprintf("SELECT %s %s ORDER BY created_at DESC LIMIT %d OFFSET %d",
		epicColumns, base, filter.Limit, filter.Offset)

	var epics []models.Epic
	if err := r.db.SelectContext(ctx, &epics, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list epics: %w", err)
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) %s", base)
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count epics: %w", err)
	}
	return epics, total, nil
}

// FindEpicByCode fetches one epic by its business code.
func (r *TaskRepository) FindEpicByCode(ctx context.Context, epicCode string) (*models.Epic, error) {
	query := fmt.Sprintf("SELECT %s FROM epics WHERE epic_code = $1", epicColumns)
	var epic models.Epic
	if err := r.db.GetContext(ctx, &epic, query, epicCode); err != nil {
		return nil, err
	}
	return &epic, nil
}

// ListTasks returns tasks matching the filter plus the unpaginated total.
// Listing goes through view_unified_epic_task so epic fields are joined in.
func (r *TaskRepository) ListTasks(ctx context.Context, filter models.TaskFilter) ([]models.Task, int, error) {
	base := "FROM view_unified_epic_task"
	args := []interface{}{}
	conditions := []string{"1=1"}

	if filter.EpicCode != "" {
		conditions = append(conditions, fmt.Sprintf("epic_code = $%d", len(args)+1))
		args = append(args, filter.EpicCode)
	}
	if filter.AssigneeCode != "" {
		conditions = append(conditions, fmt.Sprintf("assignee_code = $%d", len(args)+1))
		args = append(args, filter.AssigneeCode)
	}
	if filter.TeamCode != "" {
		conditions = append(conditions, fmt.Sprintf("team_code = $%d", len(args)+1))
		args = append(args, filter.TeamCode)
	}
	if filter.Status != nil {
		conditions = append(conditions, fmt.Sprintf("status = $%d", len(args)+1))
		args = append(args, *filter.Status)
	}
	if filter.Priority != nil {
		conditions = append(conditions, fmt.Sprintf("priority = $%d", len(args)+1))
		args = append(args, *filter.Priority)
	}
	if filter.Search != "" {
		conditions = append(conditions, fmt.Sprintf("(LOWER(title) LIKE $%d OR LOWER(task_code) LIKE $%d)", len(args)+1, len(args)+1))
		args = append(args, "%"+strings.ToLower(filter.Search)+"%")
	}

	base = fmt.Sprintf("%s WHERE %s", base, strings.Join(conditions, " AND "))

	query := fmt.Sprintf("SELECT %s %s ORDER BY created_at DESC LIMIT %d OFFSET %d",
		taskColumns, base, filter.Limit, filter.Offset)

	var tasks []models.Task
	if err := r.db.SelectContext(ctx, &tasks, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list tasks: %w", err)
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) %s", base)
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count tasks: %w", err)
	}
	return tasks, total, nil
}

// FindTaskByCode fetches one task by its business code.
func (r *TaskRepository) FindTaskByCode(ctx context.Context, taskCode string) (*models.Task, error) {
	query := fmt.Sprintf("SELECT %s FROM view_unified_epic_task WHERE task_code = $1", taskColumns)
	var task models.Task
	if err := r.db.GetContext(ctx, &task, query, taskCode); err != nil {
		return nil, err
	}
	return &task, nil
}

// ListSubtasks returns direct children of the given task.
func (r *TaskRepository) ListSubtasks(ctx context.Context, parentTaskCode string) ([]models.Task, error) {
	query := fmt.Sprintf("SELECT %s FROM view_unified_epic_task WHERE parent_task_code = $1 ORDER BY created_at", taskColumns)
	var tasks []models.Task
	if err := r.db.SelectContext(ctx, &tasks, query, parentTaskCode); err != nil {
		return nil, fmt.Errorf("list subtasks: %w", err)
	}
	return tasks, nil
}

// ListAvailable returns open, unassigned tasks visible to the given team,
// the pickup queue for self-assignment.
func (r *TaskRepository) ListAvailable(ctx context.Context, teamCode string, limit, offset int) ([]models.Task, int, error) {
	base := "FROM view_unified_epic_task WHERE assignee_code IS NULL AND status = $1 AND team_code = $2"
	args := []interface{}{models.WorkStatusOpen, teamCode}

	query := fmt.Sprintf("SELECT %s %s ORDER BY priority DESC, created_at LIMIT %d OFFSET %d",
		taskColumns, base, limit, offset)

	var tasks []models.Task
	if err := r.db.SelectContext(ctx, &tasks, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list available tasks: %w", err)
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) %s", base)
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count available tasks: %w", err)
	}
	return tasks, total, nil
}

// CreateTask inserts a new task under an epic.
func (r *TaskRepository) CreateTask(ctx context.Context, task *models.Task) error {
	if task.ID == "" {
		task.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if task.CreatedAt.IsZero() {
		task.CreatedAt = now
	}
	task.UpdatedAt = now
	const query = `INSERT INTO tasks (id, task_code, epic_code, title, description, status, priority, assignee_code, team_code,
        task_type_code, work_mode, estimated_hours, estimated_days, start_date, due_date, parent_task_code, created_at, updated_at)
        VALUES (:id, :task_code, :epic_code, :title, :description, :status, :priority, :assignee_code, :team_code,
        :task_type_code, :work_mode, :estimated_hours, :estimated_days, :start_date, :due_date, :parent_task_code, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, task); err != nil {
		return fmt.Errorf("create task: %w", err)
	}
	return nil
}

// AssignToUser claims an unassigned task for the given user. The NULL guard
// makes concurrent claims race-safe: the loser sees zero rows.
func (r *TaskRepository) AssignToUser(ctx context.Context, taskCode, userCode string) (int64, error) {
	const query = `UPDATE tasks SET assignee_code = $1, status = $2, updated_at = $3
        WHERE task_code = $4 AND assignee_code IS NULL AND status = $5`
	res, err := r.db.ExecContext(ctx, query, userCode, models.WorkStatusInProgress, time.Now().UTC(), taskCode, models.WorkStatusOpen)
	if err != nil {
		return 0, fmt.Errorf("assign task: %w", err)
	}
	return res.RowsAffected()
}

// DeleteTask removes one task of an epic unless timesheet entries reference
// it. Returns rows deleted so callers can report not-found.
func (r *TaskRepository) DeleteTask(ctx context.Context, epicCode, taskCode string) (int64, error) {
	const query = `DELETE FROM tasks WHERE epic_code = $1 AND task_code = $2
        AND NOT EXISTS (SELECT 1 FROM timesheet_entries te WHERE te.task_code = tasks.task_code)`
	res, err := r.db.ExecContext(ctx, query, epicCode, taskCode)
	if err != nil {
		return 0, fmt.Errorf("delete task: %w", err)
	}
	return res.RowsAffected()
}

// HasTimesheetReferences reports whether any timesheet entry points at the
// task, used to distinguish a conflict from a missing row on delete.
func (r *TaskRepository) HasTimesheetReferences(ctx context.Context, taskCode string) (bool, error) {
	const query = `SELECT COUNT(*) FROM timesheet_entries WHERE task_code = $1`
	var count int
	if err := r.db.GetContext(ctx, &count, query, taskCode); err != nil {
		return false, fmt.Errorf("check task references: %w", err)
	}
	return count > 0, nil
}

// ListTemplates returns the predefined task template catalog.
func (r *TaskRepository) ListTemplates(ctx context.Context) ([]models.PredefinedTaskTemplate, error) {
	const query = `SELECT id, title, description, task_type_code, work_mode, estimated_hours, priority, created_at
        FROM predefined_task_templates ORDER BY title`
	var templates []models.PredefinedTaskTemplate
	if err := r.db.SelectContext(ctx, &templates, query); err != nil {
		return nil, fmt.Errorf("list task templates: %w", err)
	}
	return templates, nil
}

// FindTemplateByID fetches one template.
func (r *TaskRepository) FindTemplateByID(ctx context.Context, id string) (*models.PredefinedTaskTemplate, error) {
	const query = `SELECT id, title, description, task_type_code, work_mode, estimated_hours, priority, created_at
        FROM predefined_task_templates WHERE id = $1`
	var template models.PredefinedTaskTemplate
	if err := r.db.GetContext(ctx, &template, query, id); err != nil {
		return nil, err
	}
	return &template, nil
}

// NextTaskCode allocates the next sequential code under an epic, e.g.
// EPIC-01-T003. Allocation takes the highest existing suffix, not the row
// count, so codes freed by deletions are never reissued. Concurrent
// allocations can still collide on insert; callers retry on the unique
// violation.
func (r *TaskRepository) NextTaskCode(ctx context.Context, epicCode string) (string, error) {
	const query = `SELECT COALESCE(MAX(NULLIF(substring(task_code from 'T(\d+)$'), '')::int), 0)
        FROM tasks WHERE epic_code = $1`
	var highest int
	if err := r.db.GetContext(ctx, &highest, query, epicCode); err != nil {
		return "", fmt.Errorf("next task code: %w", err)
	}
	return fmt.Sprintf("%s-T%03d", epicCode, highest+1), nil
}
