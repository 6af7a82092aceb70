package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/shubham1234-glitch/Timesheet-sub000/internal/models"
)

// TimesheetRepository manages persistence for timesheet entries. Reads go
// through view_timesheet_entry, writes hit the base table.
type TimesheetRepository struct {
	db *sqlx.DB
}

// NewTimesheetRepository constructs a TimesheetRepository.
func NewTimesheetRepository(db *sqlx.DB) *TimesheetRepository {
	return &TimesheetRepository{db: db}
}

const timesheetColumns = `id, user_code, entry_date, hours_worked, travel_time, waiting_time, work_location, description,
        entry_kind, epic_code, task_code, ticket_code, activity_code, approval_status, rejection_reason, approved_by,
        submitted_at, decided_at, created_at, updated_at`

// List returns entries matching the filter, newest entry date first, plus
// the unpaginated total for the same conditions.
func (r *TimesheetRepository) List(ctx context.Context, filter models.TimesheetFilter) ([]models.TimesheetEntry, int, error) {
	base := "FROM view_timesheet_entry"
	args := []interface{}{}
	conditions := []string{"1=1"}

	if filter.UserCode != "" {
		conditions = append(conditions, fmt.Sprintf("user_code = $%d", len(args)+1))
		args = append(args, filter.UserCode)
	}
	if filter.FromDate != nil {
		conditions = append(conditions, fmt.Sprintf("entry_date >= $%d", len(args)+1))
		args = append(args, *filter.FromDate)
	}
	if filter.ToDate != nil {
		conditions = append(conditions, fmt.Sprintf("entry_date <= $%d", len(args)+1))
		args = append(args, *filter.ToDate)
	}
	if filter.Status != nil {
		conditions = append(conditions, fmt.Sprintf("approval_status = $%d", len(args)+1))
		args = append(args, *filter.Status)
	}
	if filter.EntryKind != nil {
		conditions = append(conditions, fmt.Sprintf("entry_kind = $%d", len(args)+1))
		args = append(args, *filter.EntryKind)
	}

	base = fmt.Sprintf("%s WHERE %s", base, strings.Join(conditions, " AND "))

	query := fmt.Sprintf("SELECT %s %s ORDER BY entry_date DESC, created_at DESC LIMIT %d OFFSET %d",
		timesheetColumns, base, filter.Limit, filter.Offset)

	var entries []models.TimesheetEntry
	if err := r.db.SelectContext(ctx, &entries, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list timesheet entries: %w", err)
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) %s", base)
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count timesheet entries: %w", err)
	}
	return entries, total, nil
}

// FindByID fetches a single entry by ID.
func (r *TimesheetRepository) FindByID(ctx context.Context, id string) (*models.TimesheetEntry, error) {
	query := fmt.Sprintf("SELECT %s FROM view_timesheet_entry WHERE id = $1", timesheetColumns)
	var entry models.TimesheetEntry
	if err := r.db.GetContext(ctx, &entry, query, id); err != nil {
		return nil, err
	}
	return &entry, nil
}

// Create inserts a new draft entry.
func (r *TimesheetRepository) Create(ctx context.Context, entry *models.TimesheetEntry) error {
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = now
	}
	entry.UpdatedAt = now
	const query = `INSERT INTO timesheet_entries (id, user_code, entry_date, hours_worked, travel_time, waiting_time, work_location, description,
        entry_kind, epic_code, task_code, ticket_code, activity_code, approval_status, created_at, updated_at)
        VALUES (:id, :user_code, :entry_date, :hours_worked, :travel_time, :waiting_time, :work_location, :description,
        :entry_kind, :epic_code, :task_code, :ticket_code, :activity_code, :approval_status, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, entry); err != nil {
		return fmt.Errorf("create timesheet entry: %w", err)
	}
	return nil
}

// UpdateDraft rewrites an entry only while it is still editable. It returns
// the number of rows touched so callers can distinguish a finalized record
// from a missing one.
func (r *TimesheetRepository) UpdateDraft(ctx context.Context, entry *models.TimesheetEntry) (int64, error) {
	entry.UpdatedAt = time.Now().UTC()
	const query = `UPDATE timesheet_entries SET entry_date = :entry_date, hours_worked = :hours_worked, travel_time = :travel_time,
        waiting_time = :waiting_time, work_location = :work_location, description = :description, entry_kind = :entry_kind,
        epic_code = :epic_code, task_code = :task_code, ticket_code = :ticket_code, activity_code = :activity_code,
        approval_status = :approval_status, rejection_reason = NULL, updated_at = :updated_at
        WHERE id = :id AND user_code = :user_code AND approval_status IN ('DRAFT', 'REJECTED')`
	res, err := r.db.NamedExecContext(ctx, query, entry)
	if err != nil {
		return 0, fmt.Errorf("update timesheet entry: %w", err)
	}
	return res.RowsAffected()
}

// Submit moves the given draft or rejected entries owned by userCode to
// PENDING and stamps submitted_at. Returns how many rows transitioned.
func (r *TimesheetRepository) Submit(ctx context.Context, userCode string, entryIDs []string, submittedAt time.Time) (int64, error) {
	const query = `UPDATE timesheet_entries SET approval_status = $1, submitted_at = $2, rejection_reason = NULL, updated_at = $2
        WHERE id = ANY($3) AND user_code = $4 AND approval_status IN ('DRAFT', 'REJECTED')`
	res, err := r.db.ExecContext(ctx, query, models.StatusPending, submittedAt, pq.Array(entryIDs), userCode)
	if err != nil {
		return 0, fmt.Errorf("submit timesheet entries: %w", err)
	}
	return res.RowsAffected()
}

// Decide finalizes one PENDING entry. The status guard in the WHERE clause
// makes concurrent decisions race-safe: the loser sees zero rows.
func (r *TimesheetRepository) Decide(ctx context.Context, id, approverCode string, status models.ApprovalStatus, reason *string, decidedAt time.Time) (int64, error) {
	const query = `UPDATE timesheet_entries SET approval_status = $1, rejection_reason = $2, approved_by = $3, decided_at = $4, updated_at = $4
        WHERE id = $5 AND approval_status = 'PENDING'`
	res, err := r.db.ExecContext(ctx, query, status, reason, approverCode, decidedAt, id)
	if err != nil {
		return 0, fmt.Errorf("decide timesheet entry: %w", err)
	}
	return res.RowsAffected()
}

// DailyHours sums hours_worked for a user on one calendar day across all
// non-rejected entries, optionally excluding one entry (for updates).
func (r *TimesheetRepository) DailyHours(ctx context.Context, userCode string, day time.Time, excludeID string) (float64, error) {
	query := `SELECT COALESCE(SUM(hours_worked), 0) FROM timesheet_entries
        WHERE user_code = $1 AND entry_date = $2 AND approval_status <> 'REJECTED'`
	args := []interface{}{userCode, day}
	if excludeID != "" {
		query += " AND id <> $3"
		args = append(args, excludeID)
	}
	var total float64
	if err := r.db.GetContext(ctx, &total, query, args...); err != nil {
		return 0, fmt.Errorf("sum daily hours: %w", err)
	}
	return total, nil
}
