package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shubham1234-glitch/Timesheet-sub000/internal/models"
)

func newTimesheetMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

func timesheetRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "user_code", "entry_date", "hours_worked", "travel_time", "waiting_time", "work_location", "description",
		"entry_kind", "epic_code", "task_code", "ticket_code", "activity_code", "approval_status", "rejection_reason",
		"approved_by", "submitted_at", "decided_at", "created_at", "updated_at",
	})
}

func TestTimesheetRepositoryList(t *testing.T) {
	db, mock, cleanup := newTimesheetMock(t)
	defer cleanup()
	repo := NewTimesheetRepository(db)

	rows := timesheetRows().
		AddRow("e1", "EMP001", time.Now(), 8.0, 0.5, 0.0, "OFFICE", "worked on feature",
			models.EntryKindEpicTask, "EPIC-01", "EPIC-01-T001", nil, nil, models.StatusDraft, nil,
			nil, nil, nil, time.Now(), time.Now())
	mock.ExpectQuery("FROM view_timesheet_entry WHERE 1=1 AND user_code = \\$1 ORDER BY entry_date DESC").
		WithArgs("EMP001").
		WillReturnRows(rows)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM view_timesheet_entry WHERE 1=1 AND user_code = $1")).
		WithArgs("EMP001").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	entries, total, err := repo.List(context.Background(), models.TimesheetFilter{UserCode: "EMP001", Limit: 20})
	require.NoError(t, err)
	assert.Len(t, entries, 1)
	assert.Equal(t, 1, total)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTimesheetRepositoryListWithStatusAndDates(t *testing.T) {
	db, mock, cleanup := newTimesheetMock(t)
	defer cleanup()
	repo := NewTimesheetRepository(db)

	from := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)
	status := models.StatusPending

	mock.ExpectQuery("FROM view_timesheet_entry WHERE 1=1 AND user_code = \\$1 AND entry_date >= \\$2 AND entry_date <= \\$3 AND approval_status = \\$4 ORDER BY").
		WithArgs("EMP001", from, to, status).
		WillReturnRows(timesheetRows())
	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM view_timesheet_entry WHERE 1=1 AND user_code = \\$1 AND entry_date >= \\$2 AND entry_date <= \\$3 AND approval_status = \\$4").
		WithArgs("EMP001", from, to, status).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

	entries, total, err := repo.List(context.Background(), models.TimesheetFilter{
		UserCode: "EMP001", FromDate: &from, ToDate: &to, Status: &status, Limit: 20,
	})
	require.NoError(t, err)
	assert.Empty(t, entries)
	assert.Equal(t, 0, total)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTimesheetRepositoryCreate(t *testing.T) {
	db, mock, cleanup := newTimesheetMock(t)
	defer cleanup()
	repo := NewTimesheetRepository(db)

	mock.ExpectExec("INSERT INTO timesheet_entries").
		WillReturnResult(sqlmock.NewResult(1, 1))

	entry := &models.TimesheetEntry{
		UserCode:       "EMP001",
		EntryDate:      time.Date(2026, 8, 24, 0, 0, 0, 0, time.UTC),
		HoursWorked:    8,
		Description:    "implementation work",
		EntryKind:      models.EntryKindEpicTask,
		ApprovalStatus: models.StatusDraft,
	}
	err := repo.Create(context.Background(), entry)
	require.NoError(t, err)
	assert.NotEmpty(t, entry.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTimesheetRepositoryUpdateDraftClearsRejectionReason(t *testing.T) {
	db, mock, cleanup := newTimesheetMock(t)
	defer cleanup()
	repo := NewTimesheetRepository(db)

	// Rewriting a REJECTED entry back to DRAFT must drop the old reviewer
	// reason along with it.
	mock.ExpectExec(`(?s)UPDATE timesheet_entries SET.+rejection_reason = NULL.+approval_status IN \('DRAFT', 'REJECTED'\)`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	entry := &models.TimesheetEntry{
		ID:             "e1",
		UserCode:       "EMP001",
		EntryDate:      time.Date(2026, 8, 24, 0, 0, 0, 0, time.UTC),
		HoursWorked:    6,
		Description:    "reworked after rejection",
		EntryKind:      models.EntryKindEpicTask,
		ApprovalStatus: models.StatusDraft,
	}
	rows, err := repo.UpdateDraft(context.Background(), entry)
	require.NoError(t, err)
	assert.Equal(t, int64(1), rows)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTimesheetRepositoryDecideGuardsPending(t *testing.T) {
	db, mock, cleanup := newTimesheetMock(t)
	defer cleanup()
	repo := NewTimesheetRepository(db)

	mock.ExpectExec("UPDATE timesheet_entries SET approval_status").
		WithArgs(models.StatusApproved, nil, "ADM001", sqlmock.AnyArg(), "e1").
		WillReturnResult(sqlmock.NewResult(0, 0))

	rows, err := repo.Decide(context.Background(), "e1", "ADM001", models.StatusApproved, nil, time.Now().UTC())
	require.NoError(t, err)
	assert.Equal(t, int64(0), rows)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTimesheetRepositorySubmit(t *testing.T) {
	db, mock, cleanup := newTimesheetMock(t)
	defer cleanup()
	repo := NewTimesheetRepository(db)

	mock.ExpectExec("UPDATE timesheet_entries SET approval_status").
		WillReturnResult(sqlmock.NewResult(0, 2))

	rows, err := repo.Submit(context.Background(), "EMP001", []string{"e1", "e2"}, time.Now().UTC())
	require.NoError(t, err)
	assert.Equal(t, int64(2), rows)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTimesheetRepositoryDailyHours(t *testing.T) {
	db, mock, cleanup := newTimesheetMock(t)
	defer cleanup()
	repo := NewTimesheetRepository(db)

	day := time.Date(2026, 8, 24, 0, 0, 0, 0, time.UTC)
	mock.ExpectQuery("SELECT COALESCE\\(SUM\\(hours_worked\\), 0\\) FROM timesheet_entries").
		WithArgs("EMP001", day).
		WillReturnRows(sqlmock.NewRows([]string{"coalesce"}).AddRow(7.5))

	total, err := repo.DailyHours(context.Background(), "EMP001", day, "")
	require.NoError(t, err)
	assert.Equal(t, 7.5, total)
	assert.NoError(t, mock.ExpectationsWereMet())
}
