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

// LeaveRepository manages persistence for leave applications.
type LeaveRepository struct {
	db *sqlx.DB
}

// NewLeaveRepository constructs a LeaveRepository.
func NewLeaveRepository(db *sqlx.DB) *LeaveRepository {
	return &LeaveRepository{db: db}
}

const leaveColumns = `id, user_code, leave_type_code, from_date, to_date, reason, approval_status, rejection_reason,
        approved_by, submitted_at, decided_at, created_at, updated_at`

// List returns leave applications matching the filter, newest first. The
// date bounds match applications whose range overlaps the filter window.
func (r *LeaveRepository) List(ctx context.Context, filter models.LeaveFilter) ([]models.LeaveApplication, int, error) {
	base := "FROM view_leave_application"
	args := []interface{}{}
	conditions := []string{"1=1"}

	if filter.UserCode != "" {
		conditions = append(conditions, fmt.Sprintf("user_code = $%d", len(args)+1))
		args = append(args, filter.UserCode)
	}
	if filter.FromDate != nil {
		conditions = append(conditions, fmt.Sprintf("to_date >= $%d", len(args)+1))
		args = append(args, *filter.FromDate)
	}
	if filter.ToDate != nil {
		conditions = append(conditions, fmt.Sprintf("from_date <= $%d", len(args)+1))
		args = append(args, *filter.ToDate)
	}
	if filter.Status != nil {
		conditions = append(conditions, fmt.Sprintf("approval_status = $%d", len(args)+1))
		args = append(args, *filter.Status)
	}

	base = fmt.Sprintf("%s WHERE %s", base, strings.Join(conditions, " AND "))

	query := fmt.Sprintf("SELECT %s %s ORDER BY from_date DESC, created_at DESC LIMIT %d OFFSET %d",
		leaveColumns, base, filter.Limit, filter.Offset)

	var applications []models.LeaveApplication
	if err := r.db.SelectContext(ctx, &applications, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list leave applications: %w", err)
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) %s", base)
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count leave applications: %w", err)
	}
	return applications, total, nil
}

// FindByID fetches a single application by ID.
func (r *LeaveRepository) FindByID(ctx context.Context, id string) (*models.LeaveApplication, error) {
	query := fmt.Sprintf("SELECT %s FROM view_leave_application WHERE id = $1", leaveColumns)
	var application models.LeaveApplication
	if err := r.db.GetContext(ctx, &application, query, id); err != nil {
		return nil, err
	}
	return &application, nil
}

// Create inserts a new application, already in PENDING state.
func (r *LeaveRepository) Create(ctx context.Context, application *models.LeaveApplication) error {
	if application.ID == "" {
		application.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if application.CreatedAt.IsZero() {
		application.CreatedAt = now
	}
	application.UpdatedAt = now
	const query = `INSERT INTO leave_applications (id, user_code, leave_type_code, from_date, to_date, reason, approval_status, submitted_at, created_at, updated_at)
        VALUES (:id, :user_code, :leave_type_code, :from_date, :to_date, :reason, :approval_status, :submitted_at, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, application); err != nil {
		return fmt.Errorf("create leave application: %w", err)
	}
	return nil
}

// Decide finalizes one PENDING application. Concurrent decisions are
// serialized by the status guard; the loser sees zero rows.
func (r *LeaveRepository) Decide(ctx context.Context, id, approverCode string, status models.ApprovalStatus, reason *string, decidedAt time.Time) (int64, error) {
	const query = `UPDATE leave_applications SET approval_status = $1, rejection_reason = $2, approved_by = $3, decided_at = $4, updated_at = $4
        WHERE id = $5 AND approval_status = 'PENDING'`
	res, err := r.db.ExecContext(ctx, query, status, reason, approverCode, decidedAt, id)
	if err != nil {
		return 0, fmt.Errorf("decide leave application: %w", err)
	}
	return res.RowsAffected()
}

// HasOverlap reports whether the user already has a pending or approved
// application intersecting the given range.
func (r *LeaveRepository) HasOverlap(ctx context.Context, userCode string, from, to time.Time) (bool, error) {
	const query = `SELECT COUNT(*) FROM leave_applications
        WHERE user_code = $1 AND approval_status IN ('PENDING', 'APPROVED') AND from_date <= $3 AND to_date >= $2`
	var count int
	if err := r.db.GetContext(ctx, &count, query, userCode, from, to); err != nil {
		return false, fmt.Errorf("check leave overlap: %w", err)
	}
	return count > 0, nil
}

// ApprovedDays returns the distinct approved leave dates for a user within
// a window, for calendar rendering.
func (r *LeaveRepository) ApprovedDays(ctx context.Context, userCode string, from, to time.Time) ([]time.Time, error) {
	const query = `SELECT d::date FROM leave_applications, generate_series(from_date, to_date, interval '1 day') AS d
        WHERE user_code = $1 AND approval_status = 'APPROVED' AND d::date BETWEEN $2 AND $3`
	var days []time.Time
	if err := r.db.SelectContext(ctx, &days, query, userCode, from, to); err != nil {
		return nil, fmt.Errorf("list approved leave days: %w", err)
	}
	return days, nil
}

// CountPending counts PENDING applications, scoped to one user or one team
// when those arguments are non-empty.
func (r *LeaveRepository) CountPending(ctx context.Context, userCode, teamCode string) (int, error) {
	base := "FROM leave_applications l"
	args := []interface{}{}
	conditions := []string{"l.approval_status = 'PENDING'"}

	if userCode != "" {
		conditions = append(conditions, fmt.Sprintf("l.user_code = $%d", len(args)+1))
		args = append(args, userCode)
	}
	if teamCode != "" {
		base += " JOIN users u ON u.user_code = l.user_code"
		conditions = append(conditions, fmt.Sprintf("u.team_code = $%d", len(args)+1))
		args = append(args, teamCode)
	}

	query := fmt.Sprintf("SELECT COUNT(*) %s WHERE %s", base, strings.Join(conditions, " AND "))
	var count int
	if err := r.db.GetContext(ctx, &count, query, args...); err != nil {
		return 0, fmt.Errorf("count pending leave: %w", err)
	}
	return count, nil
}
