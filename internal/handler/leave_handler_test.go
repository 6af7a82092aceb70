package handler

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/url"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/shubham1234-glitch/Timesheet-sub000/internal/models"
	"github.com/shubham1234-glitch/Timesheet-sub000/internal/service"
	"github.com/shubham1234-glitch/Timesheet-sub000/pkg/response"
)

type leaveRepoStub struct {
	applications map[string]models.LeaveApplication
	overlap      bool
}

func (s *leaveRepoStub) List(ctx context.Context, filter models.LeaveFilter) ([]models.LeaveApplication, int, error) {
	applications := make([]models.LeaveApplication, 0, len(s.applications))
	for _, a := range s.applications {
		applications = append(applications, a)
	}
	return applications, len(applications), nil
}

func (s *leaveRepoStub) FindByID(ctx context.Context, id string) (*models.LeaveApplication, error) {
	if a, ok := s.applications[id]; ok {
		return &a, nil
	}
	return nil, sql.ErrNoRows
}

func (s *leaveRepoStub) Create(ctx context.Context, application *models.LeaveApplication) error {
	if s.applications == nil {
		s.applications = make(map[string]models.LeaveApplication)
	}
	if application.ID == "" {
		application.ID = "generated"
	}
	s.applications[application.ID] = *application
	return nil
}

func (s *leaveRepoStub) Decide(ctx context.Context, id, approverCode string, status models.ApprovalStatus, reason *string, decidedAt time.Time) (int64, error) {
	return 1, nil
}

func (s *leaveRepoStub) HasOverlap(ctx context.Context, userCode string, from, to time.Time) (bool, error) {
	return s.overlap, nil
}

func newTestLeaveHandler(repo *leaveRepoStub) *LeaveHandler {
	svc := service.NewLeaveService(repo, nil, nil, nil, validator.New(), zap.NewNop())
	return NewLeaveHandler(svc)
}

func TestLeaveHandlerApplyCreates(t *testing.T) {
	handler := newTestLeaveHandler(&leaveRepoStub{})

	from := time.Now().UTC().AddDate(0, 0, 7).Format("2006-01-02")
	to := time.Now().UTC().AddDate(0, 0, 9).Format("2006-01-02")
	form := url.Values{}
	form.Set("leave_type_code", "ANNUAL")
	form.Set("from_date", from)
	form.Set("to_date", to)
	form.Set("reason", "family event")
	c, w := testContext(t, http.MethodPost, "/apply_leave", form.Encode(), "application/x-www-form-urlencoded", employeeTestClaims())

	handler.Apply(c)
	require.Equal(t, http.StatusCreated, w.Code)

	var envelope response.Envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	assert.True(t, envelope.SuccessFlag)
}

func TestLeaveHandlerApplyOverlapConflict(t *testing.T) {
	handler := newTestLeaveHandler(&leaveRepoStub{overlap: true})

	from := time.Now().UTC().AddDate(0, 0, 7).Format("2006-01-02")
	form := url.Values{}
	form.Set("leave_type_code", "ANNUAL")
	form.Set("from_date", from)
	form.Set("to_date", from)
	form.Set("reason", "double booked")
	c, w := testContext(t, http.MethodPost, "/apply_leave", form.Encode(), "application/x-www-form-urlencoded", employeeTestClaims())

	handler.Apply(c)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestLeaveHandlerDecideMissingIdentity(t *testing.T) {
	handler := newTestLeaveHandler(&leaveRepoStub{})

	body, _ := json.Marshal(map[string]interface{}{"application_id": "l1", "approve": true})
	c, w := testContext(t, http.MethodPost, "/approve_leave", string(body), "application/json", nil)

	handler.Decide(c)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLeaveHandlerListEnvelope(t *testing.T) {
	repo := &leaveRepoStub{applications: map[string]models.LeaveApplication{
		"l1": {ID: "l1", UserCode: "EMP001", ApprovalStatus: models.StatusPending},
	}}
	handler := newTestLeaveHandler(repo)

	c, w := testContext(t, http.MethodGet, "/get_leave_applications", "", "", employeeTestClaims())

	handler.List(c)
	require.Equal(t, http.StatusOK, w.Code)

	var envelope response.Envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	assert.True(t, envelope.SuccessFlag)
}
