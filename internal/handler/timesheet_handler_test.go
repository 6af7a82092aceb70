package handler

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/shubham1234-glitch/Timesheet-sub000/internal/middleware"
	"github.com/shubham1234-glitch/Timesheet-sub000/internal/models"
	"github.com/shubham1234-glitch/Timesheet-sub000/internal/service"
	"github.com/shubham1234-glitch/Timesheet-sub000/pkg/response"
)

type timesheetRepoStub struct {
	entries map[string]models.TimesheetEntry
}

func (s *timesheetRepoStub) List(ctx context.Context, filter models.TimesheetFilter) ([]models.TimesheetEntry, int, error) {
	entries := make([]models.TimesheetEntry, 0, len(s.entries))
	for _, e := range s.entries {
		entries = append(entries, e)
	}
	return entries, len(entries), nil
}

func (s *timesheetRepoStub) FindByID(ctx context.Context, id string) (*models.TimesheetEntry, error) {
	if e, ok := s.entries[id]; ok {
		return &e, nil
	}
	return nil, sql.ErrNoRows
}

func (s *timesheetRepoStub) Create(ctx context.Context, entry *models.TimesheetEntry) error {
	if s.entries == nil {
		s.entries = make(map[string]models.TimesheetEntry)
	}
	if entry.ID == "" {
		entry.ID = "generated"
	}
	s.entries[entry.ID] = *entry
	return nil
}

func (s *timesheetRepoStub) UpdateDraft(ctx context.Context, entry *models.TimesheetEntry) (int64, error) {
	return 1, nil
}

func (s *timesheetRepoStub) Submit(ctx context.Context, userCode string, entryIDs []string, submittedAt time.Time) (int64, error) {
	return int64(len(entryIDs)), nil
}

func (s *timesheetRepoStub) Decide(ctx context.Context, id, approverCode string, status models.ApprovalStatus, reason *string, decidedAt time.Time) (int64, error) {
	return 1, nil
}

func (s *timesheetRepoStub) DailyHours(ctx context.Context, userCode string, day time.Time, excludeID string) (float64, error) {
	return 0, nil
}

type taskReaderStub struct{}

func (taskReaderStub) FindTaskByCode(ctx context.Context, taskCode string) (*models.Task, error) {
	return nil, sql.ErrNoRows
}

func (taskReaderStub) FindEpicByCode(ctx context.Context, epicCode string) (*models.Epic, error) {
	return nil, sql.ErrNoRows
}

type ticketReaderStub struct{}

func (ticketReaderStub) FindByCode(ctx context.Context, ticketCode string) (*models.Ticket, error) {
	return nil, sql.ErrNoRows
}

type activityReaderStub struct{}

func (activityReaderStub) FindByCode(ctx context.Context, activityCode string) (*models.Activity, error) {
	return &models.Activity{ActivityCode: activityCode, Name: "Training", Active: true}, nil
}

func newTestTimesheetHandler(repo *timesheetRepoStub) *TimesheetHandler {
	svc := service.NewTimesheetService(repo, taskReaderStub{}, ticketReaderStub{}, activityReaderStub{}, nil, nil, nil, validator.New(), zap.NewNop(), 8, 24)
	return NewTimesheetHandler(svc)
}

func testContext(t *testing.T, method, target string, body string, contentType string, claims *models.JWTClaims) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, err := http.NewRequest(method, target, strings.NewReader(body))
	require.NoError(t, err)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	c.Request = req
	if claims != nil {
		c.Set(middleware.ContextUserKey, claims)
	}
	return c, w
}

func employeeTestClaims() *models.JWTClaims {
	return &models.JWTClaims{UserID: "u-1", UserCode: "EMP001", Role: models.RoleEmployee, TeamCode: "TEAM-A"}
}

func TestTimesheetHandlerEnterCreates(t *testing.T) {
	handler := newTestTimesheetHandler(&timesheetRepoStub{})

	form := url.Values{}
	form.Set("entry_date", "2026-03-02")
	form.Set("hours_worked", "7.5")
	form.Set("description", "safety training")
	form.Set("activity_code", "ACT-01")
	c, w := testContext(t, http.MethodPost, "/enter_timesheet", form.Encode(), "application/x-www-form-urlencoded", employeeTestClaims())

	handler.Enter(c)
	require.Equal(t, http.StatusCreated, w.Code)

	var envelope response.Envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	assert.True(t, envelope.SuccessFlag)
}

func TestTimesheetHandlerEnterInvalidPayload(t *testing.T) {
	handler := newTestTimesheetHandler(&timesheetRepoStub{})

	form := url.Values{}
	form.Set("entry_date", "2026-03-02")
	c, w := testContext(t, http.MethodPost, "/enter_timesheet", form.Encode(), "application/x-www-form-urlencoded", employeeTestClaims())

	handler.Enter(c)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestTimesheetHandlerListEnvelope(t *testing.T) {
	repo := &timesheetRepoStub{entries: map[string]models.TimesheetEntry{
		"e1": {ID: "e1", UserCode: "EMP001", ApprovalStatus: models.StatusDraft},
	}}
	handler := newTestTimesheetHandler(repo)

	c, w := testContext(t, http.MethodGet, "/get_timesheet_entries", "", "", employeeTestClaims())

	handler.List(c)
	require.Equal(t, http.StatusOK, w.Code)

	var envelope response.Envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	assert.True(t, envelope.SuccessFlag)
	assert.Equal(t, http.StatusOK, envelope.StatusCode)
}

func TestTimesheetHandlerListBadDate(t *testing.T) {
	handler := newTestTimesheetHandler(&timesheetRepoStub{})

	c, w := testContext(t, http.MethodGet, "/get_timesheet_entries?from_date=03-02-2026", "", "", employeeTestClaims())

	handler.List(c)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestTimesheetHandlerDecideForbiddenForEmployee(t *testing.T) {
	handler := newTestTimesheetHandler(&timesheetRepoStub{})

	body, _ := json.Marshal(map[string]interface{}{"entry_id": "e1", "approve": true})
	c, w := testContext(t, http.MethodPost, "/approve_timesheet", string(body), "application/json", employeeTestClaims())

	handler.Decide(c)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestTimesheetHandlerGetMissing(t *testing.T) {
	handler := newTestTimesheetHandler(&timesheetRepoStub{})

	c, w := testContext(t, http.MethodGet, "/get_timesheet_entry/none", "", "", employeeTestClaims())
	c.Params = gin.Params{{Key: "entry_id", Value: "none"}}

	handler.Get(c)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
