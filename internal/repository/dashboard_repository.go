package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/shubham1234-glitch/Timesheet-sub000/internal/models"
)

// DashboardRepository runs the aggregate queries behind the dashboard
// endpoints. All windows are inclusive date ranges.
type DashboardRepository struct {
	db *sqlx.DB
}

// NewDashboardRepository constructs a DashboardRepository.
func NewDashboardRepository(db *sqlx.DB) *DashboardRepository {
	return &DashboardRepository{db: db}
}

// DailyHours returns per-day totals for one user within the window.
func (r *DashboardRepository) DailyHours(ctx context.Context, userCode string, from, to time.Time) ([]models.DailyHoursRow, error) {
	const query = `SELECT entry_date AS day,
            COALESCE(SUM(hours_worked), 0) AS total_hours,
            COALESCE(SUM(hours_worked) FILTER (WHERE approval_status = 'APPROVED'), 0) AS approved_hours,
            COUNT(*) AS entry_count
        FROM timesheet_entries
        WHERE user_code = $1 AND entry_date BETWEEN $2 AND $3 AND approval_status <> 'REJECTED'
        GROUP BY entry_date ORDER BY entry_date`
	var rows []models.DailyHoursRow
	if err := r.db.SelectContext(ctx, &rows, query, userCode, from, to); err != nil {
		return nil, fmt.Errorf("daily hours: %w", err)
	}
	return rows, nil
}

// StatusCounts counts entries per approval status. userCode and teamCode
// each narrow the scope when non-empty.
func (r *DashboardRepository) StatusCounts(ctx context.Context, userCode, teamCode string, from, to time.Time) ([]models.StatusCountRow, error) {
	base := `FROM timesheet_entries te`
	args := []interface{}{from, to}
	where := "te.entry_date BETWEEN $1 AND $2"

	if userCode != "" {
		where += fmt.Sprintf(" AND te.user_code = $%d", len(args)+1)
		args = append(args, userCode)
	}
	if teamCode != "" {
		base += " JOIN users u ON u.user_code = te.user_code"
		where += fmt.Sprintf(" AND u.team_code = $%d", len(args)+1)
		args = append(args, teamCode)
	}

	query := fmt.Sprintf(`SELECT te.approval_status, COUNT(*) AS count %s WHERE %s GROUP BY te.approval_status`, base, where)
	var rows []models.StatusCountRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("status counts: %w", err)
	}
	return rows, nil
}

// MemberHours aggregates hours per member of one team within the window.
func (r *DashboardRepository) MemberHours(ctx context.Context, teamCode string, from, to time.Time) ([]models.MemberHoursRow, error) {
	const query = `SELECT u.user_code, u.full_name,
            COALESCE(SUM(te.hours_worked), 0) AS total_hours,
            COALESCE(SUM(te.hours_worked) FILTER (WHERE te.approval_status = 'APPROVED'), 0) AS approved_hours,
            COUNT(*) FILTER (WHERE te.approval_status = 'PENDING') AS pending_count
        FROM users u
        LEFT JOIN timesheet_entries te ON te.user_code = u.user_code AND te.entry_date BETWEEN $2 AND $3 AND te.approval_status <> 'REJECTED'
        WHERE u.team_code = $1 AND u.active = true
        GROUP BY u.user_code, u.full_name ORDER BY u.full_name`
	var rows []models.MemberHoursRow
	if err := r.db.SelectContext(ctx, &rows, query, teamCode, from, to); err != nil {
		return nil, fmt.Errorf("member hours: %w", err)
	}
	return rows, nil
}

// TeamHours aggregates hours per team across the organization.
func (r *DashboardRepository) TeamHours(ctx context.Context, from, to time.Time) ([]models.TeamHoursRow, error) {
	const query = `SELECT u.team_code,
            COUNT(DISTINCT u.user_code) AS member_count,
            COALESCE(SUM(te.hours_worked), 0) AS total_hours,
            COALESCE(SUM(te.hours_worked) FILTER (WHERE te.approval_status = 'APPROVED'), 0) AS approved_hours
        FROM users u
        LEFT JOIN timesheet_entries te ON te.user_code = u.user_code AND te.entry_date BETWEEN $1 AND $2 AND te.approval_status <> 'REJECTED'
        WHERE u.active = true
        GROUP BY u.team_code ORDER BY u.team_code`
	var rows []models.TeamHoursRow
	if err := r.db.SelectContext(ctx, &rows, query, from, to); err != nil {
		return nil, fmt.Errorf("team hours: %w", err)
	}
	return rows, nil
}

// CountPendingEntries counts PENDING timesheet entries for one team.
func (r *DashboardRepository) CountPendingEntries(ctx context.Context, teamCode string) (int, error) {
	const query = `SELECT COUNT(*) FROM timesheet_entries te JOIN users u ON u.user_code = te.user_code
        WHERE te.approval_status = 'PENDING' AND u.team_code = $1`
	var count int
	if err := r.db.GetContext(ctx, &count, query, teamCode); err != nil {
		return 0, fmt.Errorf("count pending entries: %w", err)
	}
	return count, nil
}
