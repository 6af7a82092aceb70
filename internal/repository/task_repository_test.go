package repository

import (
	"context"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shubham1234-glitch/Timesheet-sub000/internal/models"
)

func newTaskMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

func taskRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "task_code", "epic_code", "title", "description", "status", "priority", "assignee_code", "team_code",
		"task_type_code", "work_mode", "estimated_hours", "estimated_days", "start_date", "due_date", "parent_task_code",
		"created_at", "updated_at",
	})
}

func TestTaskRepositoryListTasks(t *testing.T) {
	db, mock, cleanup := newTaskMock(t)
	defer cleanup()
	repo := NewTaskRepository(db)

	rows := taskRows().AddRow("t1", "EPIC-01-T001", "EPIC-01", "Build API", "", models.WorkStatusOpen,
		models.PriorityMedium, nil, "TEAM-A", "DEV", models.WorkModeOffice, 16.0, 2.0, nil, nil, nil,
		time.Now(), time.Now())

	mock.ExpectQuery("FROM view_unified_epic_task WHERE 1=1 AND epic_code = \\$1 ORDER BY created_at DESC").
		WithArgs("EPIC-01").
		WillReturnRows(rows)
	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM view_unified_epic_task WHERE 1=1 AND epic_code = \\$1").
		WithArgs("EPIC-01").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	tasks, total, err := repo.ListTasks(context.Background(), models.TaskFilter{EpicCode: "EPIC-01", Limit: 20})
	require.NoError(t, err)
	assert.Len(t, tasks, 1)
	assert.Equal(t, 1, total)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTaskRepositoryListAvailable(t *testing.T) {
	db, mock, cleanup := newTaskMock(t)
	defer cleanup()
	repo := NewTaskRepository(db)

	mock.ExpectQuery("FROM view_unified_epic_task WHERE assignee_code IS NULL AND status = \\$1 AND team_code = \\$2 ORDER BY priority DESC").
		WithArgs(models.WorkStatusOpen, "TEAM-A").
		WillReturnRows(taskRows())
	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM view_unified_epic_task WHERE assignee_code IS NULL AND status = \\$1 AND team_code = \\$2").
		WithArgs(models.WorkStatusOpen, "TEAM-A").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

	tasks, total, err := repo.ListAvailable(context.Background(), "TEAM-A", 20, 0)
	require.NoError(t, err)
	assert.Empty(t, tasks)
	assert.Equal(t, 0, total)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTaskRepositoryAssignToUserAlreadyTaken(t *testing.T) {
	db, mock, cleanup := newTaskMock(t)
	defer cleanup()
	repo := NewTaskRepository(db)

	mock.ExpectExec("UPDATE tasks SET assignee_code").
		WithArgs("EMP001", models.WorkStatusInProgress, sqlmock.AnyArg(), "EPIC-01-T001", models.WorkStatusOpen).
		WillReturnResult(sqlmock.NewResult(0, 0))

	rows, err := repo.AssignToUser(context.Background(), "EPIC-01-T001", "EMP001")
	require.NoError(t, err)
	assert.Equal(t, int64(0), rows)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTaskRepositoryCreateTask(t *testing.T) {
	db, mock, cleanup := newTaskMock(t)
	defer cleanup()
	repo := NewTaskRepository(db)

	mock.ExpectExec("INSERT INTO tasks").
		WillReturnResult(sqlmock.NewResult(1, 1))

	task := &models.Task{
		TaskCode:       "EPIC-01-T002",
		EpicCode:       "EPIC-01",
		Title:          "Write docs",
		Status:         models.WorkStatusOpen,
		Priority:       models.PriorityLow,
		TeamCode:       "TEAM-A",
		TaskTypeCode:   "DOC",
		WorkMode:       models.WorkModeRemote,
		EstimatedHours: 4,
		EstimatedDays:  0.5,
	}
	err := repo.CreateTask(context.Background(), task)
	require.NoError(t, err)
	assert.NotEmpty(t, task.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTaskRepositoryNextTaskCodeSkipsDeletedGaps(t *testing.T) {
	db, mock, cleanup := newTaskMock(t)
	defer cleanup()
	repo := NewTaskRepository(db)

	// Epic holds T001 and T003 after T002 was deleted; the highest suffix
	// drives allocation, so T003 is never reissued.
	mock.ExpectQuery("SELECT COALESCE\\(MAX\\(.+ FROM tasks WHERE epic_code = \\$1").
		WithArgs("EPIC-01").
		WillReturnRows(sqlmock.NewRows([]string{"coalesce"}).AddRow(3))

	code, err := repo.NextTaskCode(context.Background(), "EPIC-01")
	require.NoError(t, err)
	assert.Equal(t, "EPIC-01-T004", code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTaskRepositoryNextTaskCodeEmptyEpic(t *testing.T) {
	db, mock, cleanup := newTaskMock(t)
	defer cleanup()
	repo := NewTaskRepository(db)

	mock.ExpectQuery("SELECT COALESCE\\(MAX\\(.+ FROM tasks WHERE epic_code = \\$1").
		WithArgs("EPIC-02").
		WillReturnRows(sqlmock.NewRows([]string{"coalesce"}).AddRow(0))

	code, err := repo.NextTaskCode(context.Background(), "EPIC-02")
	require.NoError(t, err)
	assert.Equal(t, "EPIC-02-T001", code)
	assert.NoError(t, mock.ExpectationsWereMet())
}
