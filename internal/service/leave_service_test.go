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

type mockLeaveRepo struct {
	applications map[string]models.LeaveApplication
	lastFilter   models.LeaveFilter
	listTotal    int
	overlap      bool
	decideRows   int64
}

func (m *mockLeaveRepo) List(ctx context.Context, filter models.LeaveFilter) ([]models.LeaveApplication, int, error) {
	m.lastFilter = filter
	applications := make([]models.LeaveApplication, 0, len(m.applications))
	for _, a := range m.applications {
		applications = append(applications, a)
	}
	return applications, m.listTotal, nil
}

func (m *mockLeaveRepo) FindByID(ctx context.Context, id string) (*models.LeaveApplication, error) {
	if a, ok := m.applications[id]; ok {
		return &a, nil
	}
	return nil, sql.ErrNoRows
}

func (m *mockLeaveRepo) Create(ctx context.Context, application *models.LeaveApplication) error {
	if m.applications == nil {
		m.applications = make(map[string]models.LeaveApplication)
	}
	if application.ID == "" {
		application.ID = "generated"
	}
	m.applications[application.ID] = *application
	return nil
}

func (m *mockLeaveRepo) Decide(ctx context.Context, id, approverCode string, status models.ApprovalStatus, reason *string, decidedAt time.Time) (int64, error) {
	if m.decideRows > 0 {
		if a, ok := m.applications[id]; ok {
			a.ApprovalStatus = status
			a.ApprovedBy = &approverCode
			a.RejectionReason = reason
			m.applications[id] = a
		}
	}
	return m.decideRows, nil
}

func (m *mockLeaveRepo) HasOverlap(ctx context.Context, userCode string, from, to time.Time) (bool, error) {
	return m.overlap, nil
}

func newLeaveService(repo *mockLeaveRepo) *LeaveService {
	svc := NewLeaveService(repo, nil, nil, nil, validator.New(), zap.NewNop())
	svc.now = func() time.Time { return time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC) }
	return svc
}

func TestLeaveServiceApply(t *testing.T) {
	repo := &mockLeaveRepo{}
	svc := newLeaveService(repo)

	application, err := svc.Apply(context.Background(), dto.ApplyLeaveRequest{
		LeaveTypeCode: "ANNUAL",
		FromDate:      "2026-03-09",
		ToDate:        "2026-03-11",
		Reason:        "family event",
	}, nil, employeeClaims())
	require.NoError(t, err)
	assert.Equal(t, models.StatusPending, application.ApprovalStatus)
	assert.Equal(t, "EMP001", application.UserCode)
	require.NotNil(t, application.SubmittedAt)
	assert.Len(t, repo.applications, 1)
}

func TestLeaveServiceApplyRejectsInvertedRange(t *testing.T) {
	svc := newLeaveService(&mockLeaveRepo{})

	_, err := svc.Apply(context.Background(), dto.ApplyLeaveRequest{
		LeaveTypeCode: "ANNUAL",
		FromDate:      "2026-03-11",
		ToDate:        "2026-03-09",
		Reason:        "bad range",
	}, nil, employeeClaims())
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestLeaveServiceApplyRejectsPastStart(t *testing.T) {
	svc := newLeaveService(&mockLeaveRepo{})

	_, err := svc.Apply(context.Background(), dto.ApplyLeaveRequest{
		LeaveTypeCode: "ANNUAL",
		FromDate:      "2026-02-27",
		ToDate:        "2026-03-01",
		Reason:        "retroactive",
	}, nil, employeeClaims())
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestLeaveServiceApplyAllowsToday(t *testing.T) {
	repo := &mockLeaveRepo{}
	svc := newLeaveService(repo)

	_, err := svc.Apply(context.Background(), dto.ApplyLeaveRequest{
		LeaveTypeCode: "SICK",
		FromDate:      "2026-03-02",
		ToDate:        "2026-03-02",
		Reason:        "sick today",
	}, nil, employeeClaims())
	require.NoError(t, err)
}

func TestLeaveServiceApplyOverlapConflict(t *testing.T) {
	svc := newLeaveService(&mockLeaveRepo{overlap: true})

	_, err := svc.Apply(context.Background(), dto.ApplyLeaveRequest{
		LeaveTypeCode: "ANNUAL",
		FromDate:      "2026-03-09",
		ToDate:        "2026-03-11",
		Reason:        "double booked",
	}, nil, employeeClaims())
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrConflict.Code, appErrors.FromError(err).Code)
}

func TestLeaveServiceDecideApproves(t *testing.T) {
	repo := &mockLeaveRepo{
		applications: map[string]models.LeaveApplication{"l1": {ID: "l1", UserCode: "EMP001", ApprovalStatus: models.StatusPending}},
		decideRows:   1,
	}
	svc := newLeaveService(repo)

	decided, err := svc.Decide(context.Background(), dto.DecideLeaveRequest{ApplicationID: "l1", Approve: true}, adminClaims())
	require.NoError(t, err)
	assert.Equal(t, models.StatusApproved, decided.ApprovalStatus)
}

func TestLeaveServiceDecideRejectNeedsReason(t *testing.T) {
	svc := newLeaveService(&mockLeaveRepo{})

	_, err := svc.Decide(context.Background(), dto.DecideLeaveRequest{ApplicationID: "l1", Approve: false}, adminClaims())
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestLeaveServiceDecideOwnApplicationForbidden(t *testing.T) {
	repo := &mockLeaveRepo{
		applications: map[string]models.LeaveApplication{"l1": {ID: "l1", UserCode: "ADM001", ApprovalStatus: models.StatusPending}},
	}
	svc := newLeaveService(repo)

	_, err := svc.Decide(context.Background(), dto.DecideLeaveRequest{ApplicationID: "l1", Approve: true}, adminClaims())
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrForbidden.Code, appErrors.FromError(err).Code)
}

func TestLeaveServiceDecideAlreadyFinal(t *testing.T) {
	repo := &mockLeaveRepo{
		applications: map[string]models.LeaveApplication{"l1": {ID: "l1", UserCode: "EMP001", ApprovalStatus: models.StatusApproved}},
		decideRows:   0,
	}
	svc := newLeaveService(repo)

	_, err := svc.Decide(context.Background(), dto.DecideLeaveRequest{ApplicationID: "l1", Approve: true}, adminClaims())
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrFinalized.Code, appErrors.FromError(err).Code)
}

func TestLeaveServiceListScopesEmployee(t *testing.T) {
	repo := &mockLeaveRepo{}
	svc := newLeaveService(repo)

	_, err := svc.List(context.Background(), models.LeaveFilter{UserCode: "EMP999"}, employeeClaims())
	require.NoError(t, err)
	assert.Equal(t, "EMP001", repo.lastFilter.UserCode)
}
