package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/shubham1234-glitch/Timesheet-sub000/internal/dto"
	"github.com/shubham1234-glitch/Timesheet-sub000/internal/models"
	appErrors "github.com/shubham1234-glitch/Timesheet-sub000/pkg/errors"
)

func employeeClaims() *models.JWTClaims {
	return &models.JWTClaims{UserID: "u-1", UserCode: "EMP001", Role: models.RoleEmployee, TeamCode: "TEAM-A"}
}

func adminClaims() *models.JWTClaims {
	return &models.JWTClaims{UserID: "u-9", UserCode: "ADM001", Role: models.RoleAdmin, TeamCode: "TEAM-A"}
}

type mockTimesheetRepo struct {
	entries    map[string]models.TimesheetEntry
	lastFilter models.TimesheetFilter
	listTotal  int
	submitRows int64
	updateRows int64
	decideRows int64
	dailyHours float64
	submitted  []string
	err        error
}

func (m *mockTimesheetRepo) List(ctx context.Context, filter models.TimesheetFilter) ([]models.TimesheetEntry, int, error) {
	m.lastFilter = filter
	if m.err != nil {
		return nil, 0, m.err
	}
	entries := make([]models.TimesheetEntry, 0, len(m.entries))
	for _, e := range m.entries {
		entries = append(entries, e)
	}
	return entries, m.listTotal, nil
}

func (m *mockTimesheetRepo) FindByID(ctx context.Context, id string) (*models.TimesheetEntry, error) {
	if e, ok := m.entries[id]; ok {
		return &e, nil
	}
	return nil, sql.ErrNoRows
}

func (m *mockTimesheetRepo) Create(ctx context.Context, entry *models.TimesheetEntry) error {
	if m.entries == nil {
		m.entries = make(map[string]models.TimesheetEntry)
	}
	if entry.ID == "" {
		entry.ID = "generated"
	}
	m.entries[entry.ID] = *entry
	return nil
}

func (m *mockTimesheetRepo) UpdateDraft(ctx context.Context, entry *models.TimesheetEntry) (int64, error) {
	if m.updateRows > 0 {
		m.entries[entry.ID] = *entry
	}
	return m.updateRows, nil
}

func (m *mockTimesheetRepo) Submit(ctx context.Context, userCode string, entryIDs []string, submittedAt time.Time) (int64, error) {
	m.submitted = append(m.submitted, entryIDs...)
	return m.submitRows, nil
}

func (m *mockTimesheetRepo) Decide(ctx context.Context, id, approverCode string, status models.ApprovalStatus, reason *string, decidedAt time.Time) (int64, error) {
	if m.decideRows > 0 {
		if e, ok := m.entries[id]; ok {
			e.ApprovalStatus = status
			e.ApprovedBy = &approverCode
			e.RejectionReason = reason
			m.entries[id] = e
		}
	}
	return m.decideRows, nil
}

func (m *mockTimesheetRepo) DailyHours(ctx context.Context, userCode string, day time.Time, excludeID string) (float64, error) {
	return m.dailyHours, nil
}

type mockTaskReader struct {
	tasks map[string]models.Task
	epics map[string]models.Epic
}

func (m *mockTaskReader) FindTaskByCode(ctx context.Context, taskCode string) (*models.Task, error) {
	if t, ok := m.tasks[taskCode]; ok {
		return &t, nil
	}
	return nil, sql.ErrNoRows
}

func (m *mockTaskReader) FindEpicByCode(ctx context.Context, epicCode string) (*models.Epic, error) {
	if e, ok := m.epics[epicCode]; ok {
		return &e, nil
	}
	return nil, sql.ErrNoRows
}

type mockTicketReader struct {
	tickets map[string]models.Ticket
}

func (m *mockTicketReader) FindByCode(ctx context.Context, ticketCode string) (*models.Ticket, error) {
	if t, ok := m.tickets[ticketCode]; ok {
		return &t, nil
	}
	return nil, sql.ErrNoRows
}

type mockActivityReader struct {
	activities map[string]models.Activity
}

func (m *mockActivityReader) FindByCode(ctx context.Context, activityCode string) (*models.Activity, error) {
	if a, ok := m.activities[activityCode]; ok {
		return &a, nil
	}
	return nil, sql.ErrNoRows
}

func newTimesheetService(repo *mockTimesheetRepo) *TimesheetService {
	tasks := &mockTaskReader{
		tasks: map[string]models.Task{"EPIC-01-T001": {TaskCode: "EPIC-01-T001", EpicCode: "EPIC-01", TeamCode: "TEAM-A"}},
		epics: map[string]models.Epic{"EPIC-01": {EpicCode: "EPIC-01", TeamCode: "TEAM-A"}},
	}
	tickets := &mockTicketReader{tickets: map[string]models.Ticket{"TCK-100": {TicketCode: "TCK-100"}}}
	activities := &mockActivityReader{activities: map[string]models.Activity{
		"ACT-01": {ActivityCode: "ACT-01", Name: "Training", Active: true},
		"ACT-02": {ActivityCode: "ACT-02", Name: "Retired", Active: false},
	}}
	return NewTimesheetService(repo, tasks, tickets, activities, nil, nil, nil, validator.New(), zap.NewNop(), 8, 24)
}

func TestTimesheetServiceEnterCreatesActivityDraft(t *testing.T) {
	repo := &mockTimesheetRepo{}
	svc := newTimesheetService(repo)

	resp, err := svc.Enter(context.Background(), dto.EnterTimesheetRequest{
		EntryDate:    "2026-03-02",
		HoursWorked:  7.25,
		Description:  "safety training",
		ActivityCode: "ACT-01",
	}, nil, employeeClaims())
	require.NoError(t, err)
	assert.Equal(t, models.EntryKindActivity, resp.Entry.EntryKind)
	assert.Equal(t, models.StatusDraft, resp.Entry.ApprovalStatus)
	assert.Equal(t, "EMP001", resp.Entry.UserCode)
	assert.Empty(t, resp.Warning)
	assert.Len(t, repo.entries, 1)
}

func TestTimesheetServiceEnterAmbiguousReferences(t *testing.T) {
	repo := &mockTimesheetRepo{}
	svc := newTimesheetService(repo)

	_, err := svc.Enter(context.Background(), dto.EnterTimesheetRequest{
		EntryDate:    "2026-03-02",
		HoursWorked:  4,
		Description:  "mixed references",
		TicketCode:   "TCK-100",
		ActivityCode: "ACT-01",
	}, nil, employeeClaims())
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrAmbiguousEntry.Code, appErrors.FromError(err).Code)
}

func TestTimesheetServiceEnterBackfillsEpicFromTask(t *testing.T) {
	repo := &mockTimesheetRepo{}
	svc := newTimesheetService(repo)

	resp, err := svc.Enter(context.Background(), dto.EnterTimesheetRequest{
		EntryDate:   "2026-03-02",
		HoursWorked: 6,
		Description: "task work",
		TaskCode:    "EPIC-01-T001",
	}, nil, employeeClaims())
	require.NoError(t, err)
	require.NotNil(t, resp.Entry.EpicCode)
	assert.Equal(t, "EPIC-01", *resp.Entry.EpicCode)
	assert.Equal(t, models.EntryKindEpicTask, resp.Entry.EntryKind)
}

func TestTimesheetServiceEnterRejectsEpicMismatch(t *testing.T) {
	repo := &mockTimesheetRepo{}
	svc := newTimesheetService(repo)

	_, err := svc.Enter(context.Background(), dto.EnterTimesheetRequest{
		EntryDate:   "2026-03-02",
		HoursWorked: 6,
		Description: "task work",
		EpicCode:    "EPIC-99",
		TaskCode:    "EPIC-01-T001",
	}, nil, employeeClaims())
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestTimesheetServiceEnterRejectsUnknownKind(t *testing.T) {
	repo := &mockTimesheetRepo{}
	svc := newTimesheetService(repo)

	_, err := svc.Enter(context.Background(), dto.EnterTimesheetRequest{
		EntryDate:    "2026-03-02",
		HoursWorked:  4,
		Description:  "mislabeled entry",
		EntryKind:    "FOO",
		ActivityCode: "ACT-01",
	}, nil, employeeClaims())
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestTimesheetServiceEnterRejectsInactiveActivity(t *testing.T) {
	repo := &mockTimesheetRepo{}
	svc := newTimesheetService(repo)

	_, err := svc.Enter(context.Background(), dto.EnterTimesheetRequest{
		EntryDate:    "2026-03-02",
		HoursWorked:  2,
		Description:  "old activity",
		ActivityCode: "ACT-02",
	}, nil, employeeClaims())
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestTimesheetServiceEnterClampsHours(t *testing.T) {
	repo := &mockTimesheetRepo{}
	svc := newTimesheetService(repo)

	resp, err := svc.Enter(context.Background(), dto.EnterTimesheetRequest{
		EntryDate:    "2026-03-02",
		HoursWorked:  30,
		TravelTime:   -2,
		Description:  "long day",
		ActivityCode: "ACT-01",
	}, nil, employeeClaims())
	require.NoError(t, err)
	assert.Equal(t, 24.0, resp.Entry.HoursWorked)
	assert.Equal(t, 0.0, resp.Entry.TravelTime)
}

func TestTimesheetServiceEnterOvertimeWarning(t *testing.T) {
	repo := &mockTimesheetRepo{dailyHours: 5}
	svc := newTimesheetService(repo)

	resp, err := svc.Enter(context.Background(), dto.EnterTimesheetRequest{
		EntryDate:    "2026-03-02",
		HoursWorked:  4,
		Description:  "late shift",
		ActivityCode: "ACT-01",
	}, nil, employeeClaims())
	require.NoError(t, err)
	assert.Equal(t, "Overtime: 1.0h (total 9.0h)", resp.Warning)
}

func TestTimesheetServiceEnterWithSubmitFlag(t *testing.T) {
	repo := &mockTimesheetRepo{submitRows: 1}
	svc := newTimesheetService(repo)

	resp, err := svc.Enter(context.Background(), dto.EnterTimesheetRequest{
		EntryDate:    "2026-03-02",
		HoursWorked:  8,
		Description:  "log and submit",
		ActivityCode: "ACT-01",
		SubmitFlag:   true,
	}, nil, employeeClaims())
	require.NoError(t, err)
	assert.Equal(t, models.StatusPending, resp.Entry.ApprovalStatus)
	require.NotNil(t, resp.Entry.SubmittedAt)
	assert.Equal(t, []string{resp.Entry.ID}, repo.submitted)
}

func TestTimesheetServiceSubmitPartialConflict(t *testing.T) {
	repo := &mockTimesheetRepo{submitRows: 1}
	svc := newTimesheetService(repo)

	err := svc.Submit(context.Background(), dto.SubmitTimesheetRequest{EntryIDs: []string{"a", "b"}}, employeeClaims())
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrConflict.Code, appErrors.FromError(err).Code)
}

func TestTimesheetServiceSubmitAll(t *testing.T) {
	repo := &mockTimesheetRepo{submitRows: 2}
	svc := newTimesheetService(repo)

	err := svc.Submit(context.Background(), dto.SubmitTimesheetRequest{EntryIDs: []string{"a", "b"}}, employeeClaims())
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, repo.submitted)
}

func TestTimesheetServiceDecideRequiresApprover(t *testing.T) {
	repo := &mockTimesheetRepo{}
	svc := newTimesheetService(repo)

	_, err := svc.Decide(context.Background(), dto.DecideTimesheetRequest{EntryID: "e1", Approve: true}, employeeClaims())
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrForbidden.Code, appErrors.FromError(err).Code)
}

func TestTimesheetServiceDecideRejectNeedsReason(t *testing.T) {
	repo := &mockTimesheetRepo{}
	svc := newTimesheetService(repo)

	_, err := svc.Decide(context.Background(), dto.DecideTimesheetRequest{EntryID: "e1", Approve: false}, adminClaims())
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestTimesheetServiceDecideOwnEntryForbidden(t *testing.T) {
	repo := &mockTimesheetRepo{entries: map[string]models.TimesheetEntry{
		"e1": {ID: "e1", UserCode: "ADM001", ApprovalStatus: models.StatusPending},
	}}
	svc := newTimesheetService(repo)

	_, err := svc.Decide(context.Background(), dto.DecideTimesheetRequest{EntryID: "e1", Approve: true}, adminClaims())
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrForbidden.Code, appErrors.FromError(err).Code)
}

func TestTimesheetServiceDecideAlreadyFinal(t *testing.T) {
	repo := &mockTimesheetRepo{
		entries:    map[string]models.TimesheetEntry{"e1": {ID: "e1", UserCode: "EMP001", ApprovalStatus: models.StatusApproved}},
		decideRows: 0,
	}
	svc := newTimesheetService(repo)

	_, err := svc.Decide(context.Background(), dto.DecideTimesheetRequest{EntryID: "e1", Approve: true}, adminClaims())
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrFinalized.Code, appErrors.FromError(err).Code)
}

func TestTimesheetServiceDecideApproves(t *testing.T) {
	repo := &mockTimesheetRepo{
		entries:    map[string]models.TimesheetEntry{"e1": {ID: "e1", UserCode: "EMP001", ApprovalStatus: models.StatusPending}},
		decideRows: 1,
	}
	svc := newTimesheetService(repo)

	decided, err := svc.Decide(context.Background(), dto.DecideTimesheetRequest{EntryID: "e1", Approve: true}, adminClaims())
	require.NoError(t, err)
	assert.Equal(t, models.StatusApproved, decided.ApprovalStatus)
	require.NotNil(t, decided.ApprovedBy)
	assert.Equal(t, "ADM001", *decided.ApprovedBy)
}

func TestTimesheetServiceListScopesEmployee(t *testing.T) {
	repo := &mockTimesheetRepo{}
	svc := newTimesheetService(repo)

	_, err := svc.List(context.Background(), models.TimesheetFilter{UserCode: "SOMEONE_ELSE"}, employeeClaims())
	require.NoError(t, err)
	assert.Equal(t, "EMP001", repo.lastFilter.UserCode)
	assert.Equal(t, 20, repo.lastFilter.Limit)
}

func TestTimesheetServiceListApproverKeepsFilter(t *testing.T) {
	repo := &mockTimesheetRepo{}
	svc := newTimesheetService(repo)

	_, err := svc.List(context.Background(), models.TimesheetFilter{UserCode: "EMP002"}, adminClaims())
	require.NoError(t, err)
	assert.Equal(t, "EMP002", repo.lastFilter.UserCode)
}
